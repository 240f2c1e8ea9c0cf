package ga

import (
	"context"
	"fmt"
	"math/rand"

	"mealplanner/internal/recipe"
)

// Mutator replaces genes with fresh provider picks
type Mutator struct {
	Provider recipe.Provider
	Rate     float64
}

// Mutate replaces each gene independently with probability Rate, in place.
// The replacement always serves the gene's own slot and the given diet.
func (m *Mutator) Mutate(ctx context.Context, g *Genome, diet recipe.DietType, rng *rand.Rand) error {
	if m.Rate <= 0 {
		return nil
	}
	for i := range g.Genes {
		if rng.Float64() >= m.Rate {
			continue
		}
		slot := g.Genes[i].Slot
		r, err := m.Provider.FindRandom(ctx, slot, diet, rng)
		if err != nil {
			return fmt.Errorf("mutate slot %d (%s): %w", i, slot, err)
		}
		g.SetRecipe(i, r)
	}
	return nil
}
