package population

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/siqr/internal/model"
)

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

func TestInitialize_ExactComposition(t *testing.T) {
	for seed := uint64(1); seed <= 20; seed++ {
		pop, err := Initialize(100, 10, newRand(seed))
		require.NoError(t, err)

		assert.Len(t, pop, 100)
		assert.Equal(t, 10, pop.Count(model.Infected))
		assert.Equal(t, 90, pop.Count(model.Susceptible))
	}
}

func TestInitialize_ArrangementIsShuffled(t *testing.T) {
	pop, err := Initialize(1000, 500, newRand(7))
	require.NoError(t, err)

	// An unshuffled layout puts every Infected in the first half.
	firstHalf := Population(pop[:500]).Count(model.Infected)
	assert.Less(t, firstHalf, 500)
}

func TestInitialize_Boundaries(t *testing.T) {
	pop, err := Initialize(5, 0, newRand(1))
	require.NoError(t, err)
	assert.Equal(t, 5, pop.Count(model.Susceptible))

	pop, err = Initialize(5, 5, newRand(1))
	require.NoError(t, err)
	assert.Equal(t, 5, pop.Count(model.Infected))
}

func TestInitialize_OutOfRange(t *testing.T) {
	_, err := Initialize(10, 11, newRand(1))
	require.Error(t, err)
	assert.True(t, model.IsConfigError(err))

	_, err = Initialize(10, -1, newRand(1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "INITIAL_INFECTED_RANGE")
}

func TestInitialize_DeterministicUnderSeed(t *testing.T) {
	a, err := Initialize(200, 30, newRand(99))
	require.NoError(t, err)
	b, err := Initialize(200, 30, newRand(99))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestPopulation_CountsAndIndices(t *testing.T) {
	pop := Population{model.Susceptible, model.Infected, model.Quarantined, model.Recovered, model.Infected}

	c := pop.Counts()
	assert.Equal(t, 1, c.Susceptible)
	assert.Equal(t, 2, c.Infected)
	assert.Equal(t, 3, c.Active())
	assert.Equal(t, pop.Len(), c.Total())

	assert.Equal(t, []int{1, 4}, pop.Indices(model.Infected))
	assert.Nil(t, pop.Indices(model.Exposed))
}

func TestPopulation_Clone(t *testing.T) {
	pop := Population{model.Susceptible, model.Infected}
	clone := pop.Clone()
	clone[0] = model.Recovered

	assert.Equal(t, model.Susceptible, pop[0], "clone must not alias")
}
