package outbreak

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/siqr/internal/model"
	"github.com/roach88/siqr/internal/testutil"
)

func defaultParams() model.Parameters {
	return model.Parameters{
		PopulationSize:         1000,
		InitialInfected:        20,
		NumDays:                60,
		ProbInfectedRecovery:   0.133333,
		ProbQuarantineRecovery: 0.133333,
		NumContacts:            20,
		ProbInfection:          0.01,
		QuarantineDays:         14,
		ProbQuarantine:         0.1,
	}
}

// invariantObserver checks every day-boundary property of a run.
type invariantObserver struct {
	t         *testing.T
	size      int
	recovered map[int]bool
	days      int
}

func newInvariantObserver(t *testing.T, size int) *invariantObserver {
	return &invariantObserver{t: t, size: size, recovered: map[int]bool{}}
}

func (o *invariantObserver) ObserveDay(snap Snapshot) error {
	t := o.t
	o.days++
	c := snap.Population.Counts()

	assert.Zero(t, c.Exposed, "day %d: exposed at day boundary", snap.Report.Day)
	assert.Equal(t, o.size, c.Susceptible+c.Infected+c.Quarantined+c.Recovered, "day %d: conservation", snap.Report.Day)
	assert.Equal(t, c, snap.Report.Counts)

	for i, st := range snap.Population {
		if o.recovered[i] {
			assert.Equal(t, model.Recovered, st, "day %d: individual %d left R", snap.Report.Day, i)
		}
		if st == model.Recovered {
			o.recovered[i] = true
		}
		assert.Equal(t, st == model.Quarantined, snap.Status.Tracked(i),
			"day %d: individual %d state %s vs tracked", snap.Report.Day, i, st)
	}
	return nil
}

func TestRun_DayBoundaryInvariants(t *testing.T) {
	for _, prop := range []model.Propagation{model.PropagationLive, model.PropagationSnapshot} {
		t.Run(string(prop), func(t *testing.T) {
			params := defaultParams()
			params.Propagation = prop

			obs := newInvariantObserver(t, params.PopulationSize)
			result, err := Run(params, NewRand(42), WithObserver(obs))
			require.NoError(t, err)

			assert.Equal(t, params.NumDays+1, obs.days)
			assert.Len(t, result.Series, params.NumDays+1)
			assert.Len(t, result.Days, params.NumDays+1)
			assert.Equal(t, params.InitialInfected, result.Series[0])
		})
	}
}

func TestRun_ZeroDays(t *testing.T) {
	params := defaultParams()
	params.PopulationSize = 1000
	params.InitialInfected = 37
	params.NumDays = 0

	result, err := Run(params, NewRand(5))
	require.NoError(t, err)

	assert.Equal(t, []int{37}, result.Series)
	assert.Equal(t, 37, result.Final.Count(model.Infected))
	assert.Equal(t, 963, result.Final.Count(model.Susceptible))
}

func TestRun_Deterministic(t *testing.T) {
	params := defaultParams()

	a, err := Run(params, NewRand(1234))
	require.NoError(t, err)
	b, err := Run(params, NewRand(1234))
	require.NoError(t, err)

	assert.Equal(t, a.Series, b.Series)
	assert.Equal(t, a.Final, b.Final)

	da, err := Digest(a)
	require.NoError(t, err)
	db, err := Digest(b)
	require.NoError(t, err)
	assert.Equal(t, da, db)
}

func TestRun_DifferentSeedsDiverge(t *testing.T) {
	params := defaultParams()

	a, err := Run(params, NewRand(1))
	require.NoError(t, err)
	b, err := Run(params, NewRand(2))
	require.NoError(t, err)

	da, _ := Digest(a)
	db, _ := Digest(b)
	assert.NotEqual(t, da, db)
}

func TestRun_NoTransmission(t *testing.T) {
	params := defaultParams()
	params.ProbInfection = 0

	result, err := Run(params, NewRand(8))
	require.NoError(t, err)

	for day, r := range result.Days {
		assert.Zero(t, r.NewExposed, "day %d", day)
	}
	// Without transmission the active count can only fall.
	for d := 1; d < len(result.Series); d++ {
		assert.LessOrEqual(t, result.Series[d], result.Series[d-1])
	}
	assert.Equal(t, params.PopulationSize-params.InitialInfected, result.Final.Count(model.Susceptible))
}

func TestRun_CertainRecovery(t *testing.T) {
	params := defaultParams()
	params.ProbInfectedRecovery = 1
	params.ProbQuarantine = 0
	params.ProbInfection = 0
	params.NumDays = 1

	result, err := Run(params, NewRand(3))
	require.NoError(t, err)

	assert.Equal(t, []int{params.InitialInfected, 0}, result.Series)
	assert.Equal(t, params.InitialInfected, result.Final.Count(model.Recovered))
}

func TestRun_InvalidInitialInfected(t *testing.T) {
	params := defaultParams()
	params.InitialInfected = params.PopulationSize + 1

	result, err := Run(params, NewRand(1))
	require.Error(t, err)
	assert.Nil(t, result)

	var ce *model.ConfigError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, model.ErrCodeInitialInfected, ce.Code)
}

func TestRun_ContactPoolAbortsWithoutPartialResult(t *testing.T) {
	params := defaultParams()
	params.PopulationSize = 10
	params.InitialInfected = 1
	params.NumContacts = 10

	result, err := Run(params, NewRand(1))
	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, model.IsContactPoolError(err))
	assert.Contains(t, err.Error(), "simulate day 1")
}

func TestRun_ObserverErrorAborts(t *testing.T) {
	params := defaultParams()
	boom := errors.New("boom")

	calls := 0
	obs := DayObserverFunc(func(snap Snapshot) error {
		calls++
		if snap.Report.Day == 3 {
			return boom
		}
		return nil
	})

	result, err := Run(params, NewRand(1), WithObserver(obs))
	require.ErrorIs(t, err, boom)
	assert.Nil(t, result)
	assert.Equal(t, 4, calls)
}

func TestRun_ScriptedSinglePerson(t *testing.T) {
	params := model.Parameters{
		PopulationSize:         1,
		InitialInfected:        1,
		NumDays:                3,
		ProbQuarantine:         0.5,
		ProbInfectedRecovery:   0.5,
		ProbQuarantineRecovery: 0.5,
		QuarantineDays:         14,
	}
	// Day 1: stays I (0.9, 0.9). Day 2: quarantined (0.1). Day 3: recovers (0.2).
	rng := testutil.NewScriptedRand(0.9, 0.9, 0.1, 0.2)

	result, err := Run(params, rng)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 1, 1, 0}, result.Series)
	assert.Equal(t, model.Recovered, result.Final[0])
}

func TestResult_Peak(t *testing.T) {
	r := &Result{Series: []int{3, 9, 4, 9, 1}}
	v, d := r.Peak()
	assert.Equal(t, 9, v)
	assert.Equal(t, 1, d, "first occurrence wins")

	r = &Result{Series: []int{0}}
	v, d = r.Peak()
	assert.Equal(t, 0, v)
	assert.Equal(t, 0, d)
}

func TestResolveSeed(t *testing.T) {
	assert.Equal(t, uint64(77), ResolveSeed(77))
	assert.NotZero(t, ResolveSeed(0))
}

func TestDigest_Format(t *testing.T) {
	d, err := Digest(&Result{Series: []int{1}, Final: nil})
	require.NoError(t, err)
	assert.Len(t, d, 64)
}
