package outbreak

import (
	"math/rand/v2"
	"time"
)

// seedStream decorrelates the second PCG word from the first.
const seedStream = 0x9e3779b97f4a7c15

// NewRand returns a PCG generator seeded with seed. Two generators built
// from the same seed yield identical draws.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^seedStream))
}

// ResolveSeed returns seed unchanged, or a time-derived seed when seed is 0.
func ResolveSeed(seed uint64) uint64 {
	if seed != 0 {
		return seed
	}
	s := uint64(time.Now().UnixNano())
	if s == 0 {
		s = 1
	}
	return s
}
