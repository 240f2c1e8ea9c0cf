package logging

import (
	"context"
	"errors"
	"math/rand"

	"github.com/prometheus/client_golang/prometheus"

	"mealplanner/internal/ga"
	"mealplanner/internal/recipe"
)

// Metrics exposes optimizer progress to prometheus
type Metrics struct {
	runID         string
	generations   prometheus.Counter
	bestFitness   *prometheus.GaugeVec
	meanFitness   *prometheus.GaugeVec
	lookups       *prometheus.CounterVec
	runsCompleted *prometheus.CounterVec
}

// NewMetrics creates and registers the optimizer collectors
func NewMetrics(reg prometheus.Registerer, runID string) (*Metrics, error) {
	m := &Metrics{
		runID: runID,
		generations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mealplanner_generations_total",
			Help: "Generations evaluated, including the initial population.",
		}),
		bestFitness: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "mealplanner_best_fitness",
			Help: "Best fitness found so far in the run.",
		}, []string{"run_id"}),
		meanFitness: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "mealplanner_mean_fitness",
			Help: "Mean fitness of the latest generation.",
		}, []string{"run_id"}),
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mealplanner_recipe_lookups_total",
			Help: "Recipe provider calls by meal type and outcome.",
		}, []string{"meal_type", "outcome"}),
		runsCompleted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mealplanner_runs_total",
			Help: "Finished runs by terminal state.",
		}, []string{"state"}),
	}

	for _, c := range []prometheus.Collector{m.generations, m.bestFitness, m.meanFitness, m.lookups, m.runsCompleted} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// ObserveGeneration records one evaluated generation
func (m *Metrics) ObserveGeneration(r ga.GenerationReport) {
	m.generations.Inc()
	m.meanFitness.With(prometheus.Labels{"run_id": m.runID}).Set(r.Summary.Mean)
	if r.Best != nil {
		m.bestFitness.With(prometheus.Labels{"run_id": m.runID}).Set(r.Best.Fitness)
	}
}

// ObserveResult records how a run ended
func (m *Metrics) ObserveResult(res ga.Result, err error) {
	state := res.State.String()
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		state = "cancelled"
	case err != nil:
		state = "failed"
	}
	m.runsCompleted.With(prometheus.Labels{"state": state}).Inc()
}

// InstrumentProvider counts provider calls by meal type and outcome
func (m *Metrics) InstrumentProvider(p recipe.Provider) recipe.Provider {
	return recipe.ProviderFunc(func(ctx context.Context, meal recipe.MealType, diet recipe.DietType, rng *rand.Rand) (*recipe.Recipe, error) {
		r, err := p.FindRandom(ctx, meal, diet, rng)
		outcome := "ok"
		switch {
		case errors.Is(err, recipe.ErrNotFound):
			outcome = "not_found"
		case err != nil:
			outcome = "error"
		}
		m.lookups.With(prometheus.Labels{"meal_type": string(meal), "outcome": outcome}).Inc()
		return r, err
	})
}
