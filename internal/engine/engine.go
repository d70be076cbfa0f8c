package engine

import (
	"log/slog"

	"github.com/roach88/siqr/internal/model"
	"github.com/roach88/siqr/internal/population"
	"github.com/roach88/siqr/internal/quarantine"
)

// Rand is the random source consumed by the engine.
// *math/rand/v2.Rand satisfies it.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// DayReport summarizes the transitions applied by one Step.
type DayReport struct {
	Day            int          `json:"day"`
	NewExposed     int          `json:"new_exposed"`
	NewQuarantined int          `json:"new_quarantined"`
	NewRecovered   int          `json:"new_recovered"`
	Expired        int          `json:"expired"`
	Counts         model.Counts `json:"counts"`
}

// Engine applies daily transitions to a population it owns for the
// duration of a run.
//
// INVARIANTS (between calls to Step):
//   - no individual is Exposed
//   - pool contains exactly the non-Quarantined individuals
//   - with ExpiryRecover, status keys are exactly the Quarantined individuals
type Engine struct {
	params model.Parameters
	pop    population.Population
	status quarantine.Status
	rng    Rand
	clock  *Clock
	logger *slog.Logger

	pool *ContactPool

	// Snapshot mode buffers, reused across days.
	view     population.Population
	dayPool  *ContactPool
	contacts []int
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock replaces the default day clock, e.g. to resume numbering.
func WithClock(c *Clock) Option {
	return func(e *Engine) {
		e.clock = c
	}
}

// WithLogger sets the logger used for per-day diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// New creates an engine over pop and status. Both are mutated in place by
// Step. Empty policy fields in params take their defaults.
func New(
	params model.Parameters,
	pop population.Population,
	status quarantine.Status,
	rng Rand,
	opts ...Option,
) *Engine {
	e := &Engine{
		params: params.WithDefaults(),
		pop:    pop,
		status: status,
		rng:    rng,
		clock:  NewClock(),
		logger: slog.Default(),
		pool:   NewContactPool(pop),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Day returns the last completed day (0 before the first Step).
func (e *Engine) Day() int {
	return e.clock.Current()
}

// Population returns the live population array.
func (e *Engine) Population() population.Population {
	return e.pop
}

// Status returns the live quarantine status map.
func (e *Engine) Status() quarantine.Status {
	return e.status
}

// Step simulates one day. On error the population is left mid-pass and the
// run must be abandoned.
func (e *Engine) Step() (DayReport, error) {
	day := e.clock.Next()
	report := DayReport{Day: day}

	expired := quarantine.Advance(e.status, e.params.QuarantineDays)
	report.Expired = len(expired)
	if e.params.Expiry == model.ExpiryRecover {
		for _, i := range expired {
			if e.pop[i] == model.Quarantined {
				e.pop[i] = model.Recovered
				e.pool.Add(i)
				report.NewRecovered++
			}
		}
	}

	view, pool := e.contactView()

	for i := range e.pop {
		switch e.pop[i] {
		case model.Infected:
			e.stepInfected(i, &report)
		case model.Quarantined:
			e.stepQuarantined(i, &report)
		case model.Susceptible:
			exposed, err := e.stepSusceptible(day, i, view, pool)
			if err != nil {
				e.logger.Error("contact pool exhausted",
					"day", day,
					"individual", i,
					"pool", pool.Len(),
					"num_contacts", e.params.NumContacts,
				)
				return report, err
			}
			if exposed {
				report.NewExposed++
			}
		}
	}

	for i, st := range e.pop {
		if st == model.Exposed {
			e.pop[i] = model.Infected
		}
	}

	report.Counts = e.pop.Counts()

	e.logger.Debug("day simulated",
		"day", day,
		"exposed", report.NewExposed,
		"quarantined", report.NewQuarantined,
		"recovered", report.NewRecovered,
		"expired", report.Expired,
		"active", report.Counts.Active(),
	)

	return report, nil
}

// contactView returns the states and the pool Susceptible individuals read
// from this day. Live mode shares the mutable array and pool; snapshot mode
// freezes both at the start of the day.
func (e *Engine) contactView() (population.Population, *ContactPool) {
	if e.params.Propagation != model.PropagationSnapshot {
		return e.pop, e.pool
	}
	if e.view == nil {
		e.view = make(population.Population, len(e.pop))
	}
	copy(e.view, e.pop)
	e.dayPool = e.pool.CopyTo(e.dayPool)
	return e.view, e.dayPool
}

func (e *Engine) stepInfected(i int, report *DayReport) {
	if e.rng.Float64() < e.params.ProbQuarantine {
		e.pop[i] = model.Quarantined
		e.status.Track(i)
		e.pool.Remove(i)
		report.NewQuarantined++
		return
	}
	if e.rng.Float64() < e.params.ProbInfectedRecovery {
		e.pop[i] = model.Recovered
		report.NewRecovered++
	}
}

func (e *Engine) stepQuarantined(i int, report *DayReport) {
	if e.rng.Float64() < e.params.ProbQuarantineRecovery {
		e.pop[i] = model.Recovered
		e.status.Release(i)
		e.pool.Add(i)
		report.NewRecovered++
	}
}

func (e *Engine) stepSusceptible(day, i int, view population.Population, pool *ContactPool) (bool, error) {
	k := e.params.NumContacts
	if eligible := pool.Eligible(i); eligible < k {
		return false, model.NewContactPoolError(day, i, eligible, k)
	}

	e.contacts = pool.Sample(i, k, e.rng, e.contacts)
	for _, c := range e.contacts {
		if view[c] != model.Infected {
			continue
		}
		if e.rng.Float64() < e.params.ProbInfection {
			e.pop[i] = model.Exposed
			return true, nil
		}
	}
	return false, nil
}
