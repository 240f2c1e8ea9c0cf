package recipe

import (
	"context"
	"fmt"
	"math/rand"
	"os"

	"gopkg.in/yaml.v3"
)

type bucketKey struct {
	meal MealType
	diet DietType
}

// Catalog is an in-memory Provider indexed by meal type and diet type
type Catalog struct {
	recipes []*Recipe
	index   map[bucketKey][]*Recipe
}

// NewCatalog indexes the given recipes
func NewCatalog(recipes []*Recipe) *Catalog {
	c := &Catalog{
		recipes: recipes,
		index:   make(map[bucketKey][]*Recipe),
	}
	for _, r := range recipes {
		for _, m := range r.MealTypes {
			for _, d := range r.DietTypes {
				k := bucketKey{meal: m, diet: d}
				c.index[k] = append(c.index[k], r)
			}
		}
	}
	return c
}

// catalogFile is the on-disk layout; JSON files parse too
type catalogFile struct {
	Recipes []*Recipe `yaml:"recipes"`
}

// LoadCatalog reads a YAML or JSON recipe catalog
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}

	for i, r := range f.Recipes {
		if r == nil {
			return nil, fmt.Errorf("catalog %s: recipe %d is empty", path, i)
		}
		if r.ID == "" {
			r.ID = fmt.Sprintf("recipe-%d", i)
		}
		if err := r.normalize(); err != nil {
			return nil, fmt.Errorf("catalog %s: %w", path, err)
		}
	}

	return NewCatalog(f.Recipes), nil
}

// Len returns the number of recipes in the catalog
func (c *Catalog) Len() int {
	return len(c.recipes)
}

// Candidates returns the recipes compatible with a slot and diet
func (c *Catalog) Candidates(meal MealType, diet DietType) []*Recipe {
	return c.index[bucketKey{meal: meal, diet: diet}]
}

// FindRandom picks a compatible recipe uniformly at random
func (c *Catalog) FindRandom(ctx context.Context, meal MealType, diet DietType, rng *rand.Rand) (*Recipe, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	bucket := c.Candidates(meal, diet)
	if len(bucket) == 0 {
		return nil, notFound(meal, diet)
	}
	return bucket[rng.Intn(len(bucket))], nil
}
