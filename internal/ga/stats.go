package ga

import (
	"gonum.org/v1/gonum/stat"
)

// Summary holds per-generation fitness statistics
type Summary struct {
	Size int
	Best float64
	Mean float64
	Std  float64
	Min  float64
}

// Summarize computes fitness statistics for a population
func Summarize(pop Population) Summary {
	n := len(pop)
	if n == 0 {
		return Summary{}
	}

	fitnesses := make([]float64, n)
	s := Summary{Size: n, Best: pop[0].Fitness, Min: pop[0].Fitness}
	for i, g := range pop {
		fitnesses[i] = g.Fitness
		if g.Fitness > s.Best {
			s.Best = g.Fitness
		}
		if g.Fitness < s.Min {
			s.Min = g.Fitness
		}
	}

	if n == 1 {
		s.Mean = fitnesses[0]
		return s
	}
	s.Mean, s.Std = stat.MeanStdDev(fitnesses, nil)
	return s
}
