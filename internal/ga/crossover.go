package ga

import (
	"errors"
	"fmt"
	"math/rand"
)

var (
	// ErrInvalidCrossoverInput is returned when parents are not positionally aligned
	ErrInvalidCrossoverInput = errors.New("crossover parents differ in length or slot layout")
)

// TwoPointCrossover builds one child whose genes in [p1, p2) come from b
// and all others from a, for two distinct random cut points.
// Genomes shorter than two genes cannot be cut twice; the child is then a
// clone of a randomly chosen parent.
func TwoPointCrossover(a, b *Genome, rng *rand.Rand) (*Genome, error) {
	if a.Len() != b.Len() {
		return nil, fmt.Errorf("%w: %d vs %d genes", ErrInvalidCrossoverInput, a.Len(), b.Len())
	}
	if !sameLayout(a, b) {
		return nil, fmt.Errorf("%w: slot types differ", ErrInvalidCrossoverInput)
	}

	n := a.Len()
	if n < 2 {
		if rng.Intn(2) == 0 {
			return a.Clone(), nil
		}
		return b.Clone(), nil
	}

	// Draw the second point from the n-1 remaining indices so p1 != p2
	// without resampling.
	p1 := rng.Intn(n)
	p2 := rng.Intn(n - 1)
	if p2 >= p1 {
		p2++
	}
	return crossoverAt(a, b, p1, p2), nil
}

// crossoverAt assumes aligned parents and valid, distinct points
func crossoverAt(a, b *Genome, p1, p2 int) *Genome {
	if p1 > p2 {
		p1, p2 = p2, p1
	}

	child := &Genome{Genes: make([]Gene, a.Len())}
	for i := range child.Genes {
		if i >= p1 && i < p2 {
			child.Genes[i] = b.Genes[i]
		} else {
			child.Genes[i] = a.Genes[i]
		}
	}
	return child
}
