package ga

import (
	"context"

	"github.com/sourcegraph/conc/pool"
)

// Evaluator scores every genome of a population
type Evaluator struct {
	Fitness FitnessFunc
	Workers int
}

// Evaluate writes fitness and totals onto each genome. With more than one
// worker genomes are scored concurrently; each task touches only its own
// genome.
func (e *Evaluator) Evaluate(ctx context.Context, pop Population) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if e.Workers <= 1 || len(pop) < 2 {
		for _, g := range pop {
			e.Fitness.Evaluate(g).Apply(g)
		}
		return nil
	}

	p := pool.New().WithMaxGoroutines(e.Workers)
	for _, g := range pop {
		g := g
		p.Go(func() {
			e.Fitness.Evaluate(g).Apply(g)
		})
	}
	p.Wait()
	return nil
}
