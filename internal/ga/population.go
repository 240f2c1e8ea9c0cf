package ga

import (
	"context"
	"fmt"
	"math/rand"
	"sort"

	"mealplanner/internal/recipe"
)

// Population is one generation of candidate plans
type Population []*Genome

// GenomeFactory builds one fresh genome for the initial population
type GenomeFactory func(ctx context.Context, rng *rand.Rand) (*Genome, error)

// Initialize calls factory size times. Duplicate genomes are allowed.
func Initialize(ctx context.Context, size int, factory GenomeFactory, rng *rand.Rand) (Population, error) {
	pop := make(Population, 0, size)
	for i := 0; i < size; i++ {
		g, err := factory(ctx, rng)
		if err != nil {
			return nil, fmt.Errorf("initialize genome %d: %w", i, err)
		}
		pop = append(pop, g)
	}
	return pop, nil
}

// RandomGenomeFactory fills every slot with a random compatible recipe
func RandomGenomeFactory(p recipe.Provider, slots []recipe.MealType, diet recipe.DietType) GenomeFactory {
	return func(ctx context.Context, rng *rand.Rand) (*Genome, error) {
		g := NewGenome(slots)
		for i, slot := range slots {
			r, err := p.FindRandom(ctx, slot, diet, rng)
			if err != nil {
				return nil, fmt.Errorf("slot %d (%s): %w", i, slot, err)
			}
			g.SetRecipe(i, r)
		}
		return g, nil
	}
}

// Size returns the population size
func (p Population) Size() int {
	return len(p)
}

// SortByFitness stable-sorts genomes by fitness (descending)
func (p Population) SortByFitness() {
	sort.SliceStable(p, func(i, j int) bool {
		return p[i].Fitness > p[j].Fitness
	})
}

// Sorted returns a fitness-descending copy, leaving p untouched
func (p Population) Sorted() Population {
	s := make(Population, len(p))
	copy(s, p)
	s.SortByFitness()
	return s
}

// TopK returns the top K genomes by fitness without reordering p
func (p Population) TopK(k int) Population {
	if k > len(p) {
		k = len(p)
	}
	if k < 0 {
		k = 0
	}
	return p.Sorted()[:k]
}

// Best returns the first genome with the highest fitness
func (p Population) Best() *Genome {
	if len(p) == 0 {
		return nil
	}
	best := p[0]
	for _, g := range p[1:] {
		if g.Fitness > best.Fitness {
			best = g
		}
	}
	return best
}

// BestTracker keeps a private copy of the best genome seen across
// generations
type BestTracker struct {
	best *Genome
}

// Update scans pop and records a copy of any genome strictly fitter than
// the current best. The very first genome seen seeds the best regardless
// of its score. Reports whether the best changed.
func (t *BestTracker) Update(pop Population) bool {
	improved := false
	for _, g := range pop {
		if t.best == nil || g.Fitness > t.best.Fitness {
			t.best = g.Clone()
			improved = true
		}
	}
	return improved
}

// Best returns the tracked genome, nil before the first Update
func (t *BestTracker) Best() *Genome {
	return t.best
}
