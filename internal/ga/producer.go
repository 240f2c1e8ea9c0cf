package ga

import (
	"context"
	"fmt"
	"math/rand"

	"mealplanner/internal/recipe"
)

// Producer builds generation g+1 from generation g
type Producer struct {
	PopulationSize int
	EliteCount     int
	TournamentSize int
	Diet           recipe.DietType
	Mutator        *Mutator
	Fitness        FitnessFunc
}

// Next carries over copies of the elites unchanged, then fills the rest
// of the generation with evaluated offspring.
func (p *Producer) Next(ctx context.Context, pop Population, rng *rand.Rand) (Population, error) {
	next := make(Population, 0, p.PopulationSize)

	// 1. Keep elites
	elites := min(p.EliteCount, p.PopulationSize)
	for _, g := range pop.TopK(elites) {
		next = append(next, g.Clone())
	}

	// 2. Fill rest with offspring
	for len(next) < p.PopulationSize {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		p1, p2 := SelectParents(pop, p.TournamentSize, rng)
		if p1 == nil || p2 == nil {
			return nil, fmt.Errorf("select parents: empty population")
		}

		child, err := TwoPointCrossover(p1, p2, rng)
		if err != nil {
			return nil, err
		}
		if err := p.Mutator.Mutate(ctx, child, p.Diet, rng); err != nil {
			return nil, err
		}
		p.Fitness.Evaluate(child).Apply(child)

		next = append(next, child)
	}

	return next, nil
}
