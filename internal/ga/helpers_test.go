package ga

import (
	"context"
	"math/rand"
	"sync"

	"mealplanner/internal/recipe"
)

const testDiet recipe.DietType = "vegan"

var testSlots = []recipe.MealType{recipe.Breakfast, recipe.Lunch, recipe.Dinner}

func mkRecipe(id string, meal recipe.MealType, cal, carbs, protein, fat float64) *recipe.Recipe {
	return &recipe.Recipe{
		ID:        id,
		Name:      id,
		MealTypes: []recipe.MealType{meal},
		DietTypes: []recipe.DietType{testDiet},
		Macros:    recipe.Macros{Calories: cal, Carbs: carbs, Protein: protein, Fat: fat},
	}
}

// testCatalog contains exactly one breakfast/lunch/dinner combination that
// sums to {2000, 250, 100, 70}: b1 + l1 + d1.
func testCatalog() *recipe.Catalog {
	return recipe.NewCatalog([]*recipe.Recipe{
		mkRecipe("b1", recipe.Breakfast, 500, 60, 25, 20),
		mkRecipe("b2", recipe.Breakfast, 300, 30, 10, 10),
		mkRecipe("b3", recipe.Breakfast, 650, 80, 15, 30),
		mkRecipe("l1", recipe.Lunch, 700, 90, 35, 25),
		mkRecipe("l2", recipe.Lunch, 1000, 150, 20, 40),
		mkRecipe("d1", recipe.Dinner, 800, 100, 40, 25),
		mkRecipe("d2", recipe.Dinner, 400, 20, 60, 10),
	})
}

func testTarget() Target {
	return Target{Calories: 2000, Carbs: 250, Protein: 100, Fat: 70}
}

func testFitness() MacroFitness {
	return MacroFitness{Target: testTarget(), Weights: DefaultWeights()}
}

// countingProvider wraps a provider and counts calls
type countingProvider struct {
	mu    sync.Mutex
	inner recipe.Provider
	calls int
}

func (c *countingProvider) FindRandom(ctx context.Context, meal recipe.MealType, diet recipe.DietType, rng *rand.Rand) (*recipe.Recipe, error) {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()
	return c.inner.FindRandom(ctx, meal, diet, rng)
}

func (c *countingProvider) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

func newRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// genomeOf builds a breakfast/lunch/dinner genome from recipes
func genomeOf(recipes ...*recipe.Recipe) *Genome {
	g := NewGenome(testSlots[:len(recipes)])
	for i, r := range recipes {
		g.SetRecipe(i, r)
	}
	return g
}

func withFitness(f float64) *Genome {
	g := NewGenome(testSlots)
	g.Fitness = f
	return g
}

func constantFitness(f float64) FitnessFunc {
	return FitnessFuncOf(func(g *Genome) FitnessResult {
		return FitnessResult{Fitness: f, Totals: SumMacros(g)}
	})
}
