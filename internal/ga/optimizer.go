package ga

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"mealplanner/internal/recipe"
)

// Config holds the search parameters of one run
type Config struct {
	PopulationSize int     `yaml:"population_size" toml:"population_size" json:"population_size"`
	MaxGenerations int     `yaml:"max_generations" toml:"max_generations" json:"max_generations"`
	MutationRate   float64 `yaml:"mutation_rate" toml:"mutation_rate" json:"mutation_rate"`
	EliteCount     int     `yaml:"elite_count" toml:"elite_count" json:"elite_count"`
	TargetFitness  float64 `yaml:"target_fitness" toml:"target_fitness" json:"target_fitness"`
	TournamentSize int     `yaml:"tournament_size" toml:"tournament_size" json:"tournament_size"`
	Workers        int     `yaml:"workers" toml:"workers" json:"workers"`
}

// DefaultConfig returns the search parameters used when none are given
func DefaultConfig() Config {
	return Config{
		PopulationSize: 50,
		MaxGenerations: 100,
		MutationRate:   0.1,
		EliteCount:     2,
		TargetFitness:  0.98,
		TournamentSize: DefaultTournamentSize,
		Workers:        1,
	}
}

// Validate checks parameter ranges
func (c Config) Validate() error {
	switch {
	case c.PopulationSize <= 0:
		return fmt.Errorf("population_size must be > 0, got %d", c.PopulationSize)
	case c.MaxGenerations < 0:
		return fmt.Errorf("max_generations must be >= 0, got %d", c.MaxGenerations)
	case c.MutationRate < 0 || c.MutationRate > 1:
		return fmt.Errorf("mutation_rate must be in [0,1], got %g", c.MutationRate)
	case c.EliteCount < 0 || c.EliteCount > c.PopulationSize:
		return fmt.Errorf("elite_count must be in [0,%d], got %d", c.PopulationSize, c.EliteCount)
	}
	return nil
}

// State is the optimizer's run state
type State int

const (
	StateRunning State = iota
	StateConverged
	StateExhausted
	StateDone
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateConverged:
		return "converged"
	case StateExhausted:
		return "exhausted"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

// GenerationReport is handed to the observer after every evaluation
type GenerationReport struct {
	Generation int
	Population Population
	Summary    Summary
	Best       *Genome
	Improved   bool
}

// Result is the outcome of a run
type Result struct {
	Best        *Genome
	State       State // StateConverged or StateExhausted
	Generations int   // generations produced after the initial one
}

// Optimizer runs the generation loop
type Optimizer struct {
	Config   Config
	Diet     recipe.DietType
	Factory  GenomeFactory
	Fitness  FitnessFunc
	Provider recipe.Provider
	Rand     *rand.Rand

	// OnGeneration, if set, is called after each population is evaluated
	OnGeneration func(GenerationReport)

	state State
}

// State returns the current run state
func (o *Optimizer) State() State {
	return o.state
}

// Run searches until the best genome reaches the target fitness or the
// generation budget is spent. Missing the target is not an error. If ctx
// ends, the best genome found so far is returned along with ctx's error.
func (o *Optimizer) Run(ctx context.Context) (Result, error) {
	if err := o.Config.Validate(); err != nil {
		return Result{}, err
	}
	if o.Factory == nil || o.Fitness == nil || o.Rand == nil {
		return Result{}, errors.New("optimizer needs a genome factory, fitness function and rng")
	}
	if o.Config.MutationRate > 0 && o.Provider == nil {
		return Result{}, errors.New("optimizer needs a recipe provider to mutate")
	}

	o.state = StateRunning
	defer func() {
		o.state = StateDone
	}()

	evaluator := &Evaluator{Fitness: o.Fitness, Workers: o.Config.Workers}
	producer := &Producer{
		PopulationSize: o.Config.PopulationSize,
		EliteCount:     o.Config.EliteCount,
		TournamentSize: o.Config.TournamentSize,
		Diet:           o.Diet,
		Mutator:        &Mutator{Provider: o.Provider, Rate: o.Config.MutationRate},
		Fitness:        o.Fitness,
	}
	var tracker BestTracker

	pop, err := Initialize(ctx, o.Config.PopulationSize, o.Factory, o.Rand)
	if err != nil {
		return Result{}, err
	}

	generation := 0
	for {
		if err := evaluator.Evaluate(ctx, pop); err != nil {
			return Result{Best: tracker.Best(), Generations: generation}, err
		}
		improved := tracker.Update(pop)
		best := tracker.Best()

		if o.OnGeneration != nil {
			o.OnGeneration(GenerationReport{
				Generation: generation,
				Population: pop,
				Summary:    Summarize(pop),
				Best:       best,
				Improved:   improved,
			})
		}

		if best.Fitness >= o.Config.TargetFitness {
			o.state = StateConverged
			break
		}
		if generation >= o.Config.MaxGenerations {
			o.state = StateExhausted
			break
		}

		pop, err = producer.Next(ctx, pop, o.Rand)
		if err != nil {
			return Result{Best: best, Generations: generation}, err
		}
		generation++
	}

	return Result{Best: tracker.Best(), State: o.state, Generations: generation}, nil
}
