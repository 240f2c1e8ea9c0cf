package ga

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mealplanner/internal/recipe"
)

func parents() (*Genome, *Genome) {
	a := genomeOf(
		mkRecipe("a0", recipe.Breakfast, 1, 0, 0, 0),
		mkRecipe("a1", recipe.Lunch, 1, 0, 0, 0),
		mkRecipe("a2", recipe.Dinner, 1, 0, 0, 0),
	)
	b := genomeOf(
		mkRecipe("b0", recipe.Breakfast, 2, 0, 0, 0),
		mkRecipe("b1", recipe.Lunch, 2, 0, 0, 0),
		mkRecipe("b2", recipe.Dinner, 2, 0, 0, 0),
	)
	return a, b
}

func TestCrossoverAt_ForcedPoints(t *testing.T) {
	a, b := parents()

	child := crossoverAt(a, b, 1, 2)

	require.Equal(t, 3, child.Len())
	assert.Same(t, a.Gene(0).Recipe, child.Gene(0).Recipe)
	assert.Same(t, b.Gene(1).Recipe, child.Gene(1).Recipe)
	assert.Same(t, a.Gene(2).Recipe, child.Gene(2).Recipe)

	// Point order does not matter.
	swapped := crossoverAt(a, b, 2, 1)
	assert.Equal(t, child.Genes, swapped.Genes)
}

func TestTwoPointCrossover_ChildShape(t *testing.T) {
	a, b := parents()
	rng := newRand(42)

	for i := 0; i < 500; i++ {
		child, err := TwoPointCrossover(a, b, rng)
		require.NoError(t, err)
		require.Equal(t, a.Len(), child.Len())
		assert.Equal(t, a.Slots(), child.Slots())
		for j, gene := range child.Genes {
			if gene.Recipe != a.Gene(j).Recipe && gene.Recipe != b.Gene(j).Recipe {
				t.Fatalf("gene %d comes from neither parent", j)
			}
		}
		// Two distinct cut points always put b at index p1 < 2.
		assert.True(t, child.Gene(0).Recipe == b.Gene(0).Recipe || child.Gene(1).Recipe == b.Gene(1).Recipe)
	}
}

func TestTwoPointCrossover_DoesNotAliasParents(t *testing.T) {
	a, b := parents()
	child, err := TwoPointCrossover(a, b, newRand(1))
	require.NoError(t, err)

	child.SetRecipe(0, nil)
	child.SetRecipe(1, nil)
	child.SetRecipe(2, nil)
	assert.NotNil(t, a.Gene(0).Recipe)
	assert.NotNil(t, b.Gene(1).Recipe)
	assert.Zero(t, child.Fitness)
}

func TestTwoPointCrossover_InvalidInput(t *testing.T) {
	a, _ := parents()
	short := genomeOf(mkRecipe("s0", recipe.Breakfast, 1, 0, 0, 0))

	_, err := TwoPointCrossover(a, short, newRand(1))
	assert.True(t, errors.Is(err, ErrInvalidCrossoverInput))

	misaligned := NewGenome([]recipe.MealType{recipe.Dinner, recipe.Lunch, recipe.Breakfast})
	_, err = TwoPointCrossover(a, misaligned, newRand(1))
	assert.True(t, errors.Is(err, ErrInvalidCrossoverInput))
}

func TestTwoPointCrossover_ShortGenomesCloneAParent(t *testing.T) {
	a := genomeOf(mkRecipe("a0", recipe.Breakfast, 1, 0, 0, 0))
	b := genomeOf(mkRecipe("b0", recipe.Breakfast, 2, 0, 0, 0))
	a.Fitness, b.Fitness = 0.3, 0.6
	rng := newRand(9)

	seenA, seenB := false, false
	for i := 0; i < 100; i++ {
		child, err := TwoPointCrossover(a, b, rng)
		require.NoError(t, err)
		require.Equal(t, 1, child.Len())
		assert.NotSame(t, a, child)
		assert.NotSame(t, b, child)
		switch child.Gene(0).Recipe {
		case a.Gene(0).Recipe:
			seenA = true
		case b.Gene(0).Recipe:
			seenB = true
		default:
			t.Fatal("child gene comes from neither parent")
		}
	}
	assert.True(t, seenA && seenB, "both parents should be cloned at some point")

	empty, err := TwoPointCrossover(NewGenome(nil), NewGenome(nil), rng)
	require.NoError(t, err)
	assert.Zero(t, empty.Len())
}
