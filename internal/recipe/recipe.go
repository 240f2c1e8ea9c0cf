package recipe

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
)

// MealType is the fixed role a plan position represents
type MealType string

const (
	Breakfast MealType = "breakfast"
	Lunch     MealType = "lunch"
	Dinner    MealType = "dinner"
	Snack     MealType = "snack"
)

// ParseMealType normalizes a meal type name
func ParseMealType(s string) (MealType, error) {
	switch m := MealType(strings.ToLower(strings.TrimSpace(s))); m {
	case Breakfast, Lunch, Dinner, Snack:
		return m, nil
	default:
		return "", fmt.Errorf("unknown meal type %q", s)
	}
}

// DietType is a compatibility tag constraining which recipes may fill a slot
type DietType string

// NormalizeDiet lowercases and trims a diet tag
func NormalizeDiet(s string) DietType {
	return DietType(strings.ToLower(strings.TrimSpace(s)))
}

// Macros holds the four tracked nutrition values
type Macros struct {
	Calories float64 `json:"calories" yaml:"calories"`
	Carbs    float64 `json:"carbs" yaml:"carbs"`
	Protein  float64 `json:"protein" yaml:"protein"`
	Fat      float64 `json:"fat" yaml:"fat"`
}

// Add returns the element-wise sum
func (m Macros) Add(o Macros) Macros {
	return Macros{
		Calories: m.Calories + o.Calories,
		Carbs:    m.Carbs + o.Carbs,
		Protein:  m.Protein + o.Protein,
		Fat:      m.Fat + o.Fat,
	}
}

// Recipe is a read-only catalog entry. Genomes share recipes by pointer,
// so nothing may modify a Recipe after it leaves its provider.
type Recipe struct {
	ID        string     `json:"id" yaml:"id"`
	Name      string     `json:"name" yaml:"name"`
	MealTypes []MealType `json:"meal_types" yaml:"meal_types"`
	DietTypes []DietType `json:"diet_types" yaml:"diet_types"`
	Macros    `yaml:",inline"`
}

// Serves reports whether the recipe may fill the given meal slot
func (r *Recipe) Serves(m MealType) bool {
	for _, t := range r.MealTypes {
		if t == m {
			return true
		}
	}
	return false
}

// Suits reports whether the recipe is compatible with the diet
func (r *Recipe) Suits(d DietType) bool {
	for _, t := range r.DietTypes {
		if t == d {
			return true
		}
	}
	return false
}

// normalize canonicalizes the meal and diet tags in place
func (r *Recipe) normalize() error {
	for i, m := range r.MealTypes {
		mt, err := ParseMealType(string(m))
		if err != nil {
			return fmt.Errorf("recipe %s: %w", r.ID, err)
		}
		r.MealTypes[i] = mt
	}
	for i, d := range r.DietTypes {
		r.DietTypes[i] = NormalizeDiet(string(d))
	}
	return nil
}

var (
	// ErrNotFound is returned when no recipe matches a meal type and diet type
	ErrNotFound = errors.New("no recipe matches meal type and diet type")
)

// Provider supplies uniformly random recipes for a slot
type Provider interface {
	FindRandom(ctx context.Context, meal MealType, diet DietType, rng *rand.Rand) (*Recipe, error)
}

// ProviderFunc adapts a function to the Provider interface
type ProviderFunc func(ctx context.Context, meal MealType, diet DietType, rng *rand.Rand) (*Recipe, error)

// FindRandom calls f
func (f ProviderFunc) FindRandom(ctx context.Context, meal MealType, diet DietType, rng *rand.Rand) (*Recipe, error) {
	return f(ctx, meal, diet, rng)
}

func notFound(meal MealType, diet DietType) error {
	return fmt.Errorf("%w: meal=%s diet=%s", ErrNotFound, meal, diet)
}
