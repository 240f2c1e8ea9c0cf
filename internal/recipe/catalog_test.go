package recipe

import (
	"context"
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const catalogYAML = `
recipes:
  - id: oats
    name: Overnight oats
    meal_types: [Breakfast]
    diet_types: [Vegan, vegetarian]
    calories: 420
    carbs: 60
    protein: 15
    fat: 12
  - id: tofu-bowl
    name: Tofu bowl
    meal_types: [lunch, dinner]
    diet_types: [vegan]
    calories: 650
    carbs: 70
    protein: 35
    fat: 22
  - name: Steak
    meal_types: [dinner]
    diet_types: [keto]
    calories: 800
    carbs: 2
    protein: 60
    fat: 55
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadCatalog(t *testing.T) {
	cat, err := LoadCatalog(writeFile(t, "catalog.yaml", catalogYAML))
	require.NoError(t, err)

	assert.Equal(t, 3, cat.Len())

	breakfast := cat.Candidates(Breakfast, "vegan")
	require.Len(t, breakfast, 1)
	assert.Equal(t, "oats", breakfast[0].ID)
	assert.Equal(t, Macros{Calories: 420, Carbs: 60, Protein: 15, Fat: 12}, breakfast[0].Macros)
	assert.Equal(t, []DietType{"vegan", "vegetarian"}, breakfast[0].DietTypes)

	assert.Len(t, cat.Candidates(Dinner, "vegan"), 1)
	assert.Len(t, cat.Candidates(Lunch, "vegan"), 1)

	keto := cat.Candidates(Dinner, "keto")
	require.Len(t, keto, 1)
	assert.Equal(t, "recipe-2", keto[0].ID)
}

func TestLoadCatalog_JSON(t *testing.T) {
	const doc = `{"recipes": [{"id": "eggs", "name": "Eggs", "meal_types": ["breakfast"], "diet_types": ["keto"], "calories": 300, "carbs": 1, "protein": 20, "fat": 22}]}`
	cat, err := LoadCatalog(writeFile(t, "catalog.json", doc))
	require.NoError(t, err)

	r, err := cat.FindRandom(context.Background(), Breakfast, "keto", rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.Equal(t, "eggs", r.ID)
	assert.Equal(t, 22.0, r.Fat)
}

func TestLoadCatalog_Errors(t *testing.T) {
	cases := []struct {
		Name    string
		Content string
	}{
		{Name: "unknown meal type", Content: "recipes:\n  - id: x\n    meal_types: [brunch]\n"},
		{Name: "malformed", Content: "recipes: [\n"},
		{Name: "null entry", Content: "recipes:\n  - \n"},
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			_, err := LoadCatalog(writeFile(t, "bad.yaml", c.Content))
			assert.Error(t, err)
		})
	}

	_, err := LoadCatalog(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestCatalog_FindRandom(t *testing.T) {
	a := &Recipe{ID: "a", MealTypes: []MealType{Lunch}, DietTypes: []DietType{"vegan"}}
	b := &Recipe{ID: "b", MealTypes: []MealType{Lunch}, DietTypes: []DietType{"vegan"}}
	c := &Recipe{ID: "c", MealTypes: []MealType{Dinner}, DietTypes: []DietType{"vegan"}}
	cat := NewCatalog([]*Recipe{a, b, c})
	rng := rand.New(rand.NewSource(4))

	seen := map[string]int{}
	for i := 0; i < 200; i++ {
		r, err := cat.FindRandom(context.Background(), Lunch, "vegan", rng)
		require.NoError(t, err)
		seen[r.ID]++
	}
	assert.Len(t, seen, 2)
	assert.Zero(t, seen["c"])

	_, err := cat.FindRandom(context.Background(), Breakfast, "vegan", rng)
	assert.True(t, errors.Is(err, ErrNotFound))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = cat.FindRandom(ctx, Lunch, "vegan", rng)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestParseMealType(t *testing.T) {
	m, err := ParseMealType(" Dinner ")
	require.NoError(t, err)
	assert.Equal(t, Dinner, m)

	_, err = ParseMealType("elevenses")
	assert.Error(t, err)
}

func TestMacrosAdd(t *testing.T) {
	sum := Macros{Calories: 1, Carbs: 2, Protein: 3, Fat: 4}.Add(Macros{Calories: 10, Carbs: 20, Protein: 30, Fat: 40})
	assert.Equal(t, Macros{Calories: 11, Carbs: 22, Protein: 33, Fat: 44}, sum)
}
