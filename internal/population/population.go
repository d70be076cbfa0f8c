// Package population holds the per-individual state array of a run.
//
// The store enforces no transition rules; all mutations come from the
// daily transition engine.
package population

import (
	"github.com/roach88/siqr/internal/model"
)

// Shuffler permutes n elements in place. *math/rand/v2.Rand satisfies it.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// Population is the ordered state of every individual. Index identity is
// stable for the lifetime of a run and the length never changes.
type Population []model.State

// Initialize creates a population of size individuals with exactly infected
// of them Infected and the rest Susceptible, arranged uniformly at random.
func Initialize(size, infected int, rng Shuffler) (Population, error) {
	if infected < 0 || infected > size {
		return nil, model.NewInitialInfectedError(size, infected)
	}

	pop := make(Population, size)
	for i := 0; i < infected; i++ {
		pop[i] = model.Infected
	}
	rng.Shuffle(len(pop), func(i, j int) {
		pop[i], pop[j] = pop[j], pop[i]
	})
	return pop, nil
}

// Len returns the population size.
func (p Population) Len() int {
	return len(p)
}

// Count returns the number of individuals holding state s.
func (p Population) Count(s model.State) int {
	n := 0
	for _, st := range p {
		if st == s {
			n++
		}
	}
	return n
}

// Counts tallies every state in a single pass.
func (p Population) Counts() model.Counts {
	var c model.Counts
	for _, st := range p {
		c.Add(st)
	}
	return c
}

// Indices returns the ascending indices of individuals holding state s.
func (p Population) Indices(s model.State) []int {
	var out []int
	for i, st := range p {
		if st == s {
			out = append(out, i)
		}
	}
	return out
}

// Clone returns an independent copy.
func (p Population) Clone() Population {
	out := make(Population, len(p))
	copy(out, p)
	return out
}
