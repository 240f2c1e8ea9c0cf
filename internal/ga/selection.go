package ga

import (
	"math/rand"
)

// DefaultTournamentSize is used when a non-positive size is requested
const DefaultTournamentSize = 2

// TournamentSelect picks the fittest of k distinct genomes drawn from a
// random permutation of the population. On equal fitness the earlier draw
// wins. The winner stays in the population and may be picked again.
func TournamentSelect(pop Population, k int, rng *rand.Rand) *Genome {
	if len(pop) == 0 {
		return nil
	}
	if k < 1 {
		k = DefaultTournamentSize
	}
	if k > len(pop) {
		k = len(pop)
	}

	order := rng.Perm(len(pop))
	best := pop[order[0]]
	for _, idx := range order[1:k] {
		if candidate := pop[idx]; candidate.Fitness > best.Fitness {
			best = candidate
		}
	}
	return best
}

// SelectParents runs two independent tournaments
func SelectParents(pop Population, k int, rng *rand.Rand) (*Genome, *Genome) {
	p1 := TournamentSelect(pop, k, rng)
	p2 := TournamentSelect(pop, k, rng)
	return p1, p2
}
