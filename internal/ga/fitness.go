package ga

import (
	"math"

	"mealplanner/internal/recipe"
)

// Target is the per-run macro goal. A zero field disables that macro:
// it then only scores when the plan contributes none of it.
type Target struct {
	Calories float64 `yaml:"calories" toml:"calories" json:"calories"`
	Carbs    float64 `yaml:"carbs" toml:"carbs" json:"carbs"`
	Protein  float64 `yaml:"protein" toml:"protein" json:"protein"`
	Fat      float64 `yaml:"fat" toml:"fat" json:"fat"`
}

// Weights sets the relative importance of each macro score. They are
// expected to sum to 1 but this is not enforced.
type Weights struct {
	Calories float64 `yaml:"calories" toml:"calories" json:"calories"`
	Carbs    float64 `yaml:"carbs" toml:"carbs" json:"carbs"`
	Protein  float64 `yaml:"protein" toml:"protein" json:"protein"`
	Fat      float64 `yaml:"fat" toml:"fat" json:"fat"`
}

// DefaultWeights favours calories over the three macros
func DefaultWeights() Weights {
	return Weights{Calories: 0.4, Carbs: 0.2, Protein: 0.2, Fat: 0.2}
}

// FitnessResult is the outcome of scoring one genome
type FitnessResult struct {
	Fitness float64
	Totals  recipe.Macros
}

// Apply writes the result onto the genome it was computed for
func (r FitnessResult) Apply(g *Genome) {
	g.Fitness = r.Fitness
	g.Totals = r.Totals
}

// FitnessFunc scores a genome. Implementations must not modify the genome
// and must be safe for concurrent use.
type FitnessFunc interface {
	Evaluate(g *Genome) FitnessResult
}

// FitnessFuncOf adapts a function to the FitnessFunc interface
type FitnessFuncOf func(g *Genome) FitnessResult

// Evaluate calls f
func (f FitnessFuncOf) Evaluate(g *Genome) FitnessResult {
	return f(g)
}

// MacroFitness scores a plan by weighted closeness of its summed macros to
// the target, in [0, sum of weights].
type MacroFitness struct {
	Target  Target
	Weights Weights
}

// Evaluate implements FitnessFunc
func (f MacroFitness) Evaluate(g *Genome) FitnessResult {
	totals := SumMacros(g)
	if totals.Calories == 0 {
		return FitnessResult{Totals: totals}
	}

	w := f.Weights
	fitness := w.Calories*Score(totals.Calories, f.Target.Calories) +
		w.Carbs*Score(totals.Carbs, f.Target.Carbs) +
		w.Protein*Score(totals.Protein, f.Target.Protein) +
		w.Fat*Score(totals.Fat, f.Target.Fat)

	return FitnessResult{Fitness: fitness, Totals: totals}
}

// SumMacros adds up the macros of every filled slot
func SumMacros(g *Genome) recipe.Macros {
	var totals recipe.Macros
	for _, gene := range g.Genes {
		if gene.Recipe == nil {
			continue
		}
		totals = totals.Add(gene.Recipe.Macros)
	}
	return totals
}

// Score is 1 at an exact match and falls off quadratically to 0 once the
// deviation reaches the target itself.
func Score(actual, target float64) float64 {
	if target <= 0 {
		if actual == 0 {
			return 1
		}
		return 0
	}
	ratio := math.Min(math.Abs(actual-target)/target, 1)
	return (1 - ratio) * (1 - ratio)
}
