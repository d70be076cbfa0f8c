// Package outbreak drives the transition engine over a full simulation
// horizon and collects the daily infection-count series.
package outbreak

import (
	"fmt"
	"log/slog"

	"github.com/roach88/siqr/internal/engine"
	"github.com/roach88/siqr/internal/model"
	"github.com/roach88/siqr/internal/population"
	"github.com/roach88/siqr/internal/quarantine"
)

// Rand is the random source a run consumes.
type Rand interface {
	engine.Rand
	population.Shuffler
}

// Snapshot is the state handed to a DayObserver at the end of a day.
// Population and Status are live views owned by the run and are only valid
// for the duration of the callback.
type Snapshot struct {
	Report     engine.DayReport
	Population population.Population
	Status     quarantine.Status
}

// DayObserver receives every day boundary, starting with day 0.
// A non-nil error aborts the run.
type DayObserver interface {
	ObserveDay(snap Snapshot) error
}

// DayObserverFunc adapts a function to DayObserver.
type DayObserverFunc func(snap Snapshot) error

// ObserveDay calls f.
func (f DayObserverFunc) ObserveDay(snap Snapshot) error {
	return f(snap)
}

// Result is the outcome of a completed run.
type Result struct {
	Params model.Parameters

	// Series holds count(I)+count(Q) for days 0..NumDays.
	Series []int

	// Days holds the per-day transition reports; Days[0] only carries the
	// initial counts.
	Days []engine.DayReport

	Final population.Population
}

// Peak returns the largest series value and the first day it occurs.
func (r *Result) Peak() (value, day int) {
	for d, v := range r.Series {
		if d == 0 || v > value {
			value, day = v, d
		}
	}
	return value, day
}

type runConfig struct {
	observers []DayObserver
	logger    *slog.Logger
}

// Option configures Run.
type Option func(*runConfig)

// WithObserver registers an observer. Observers run in registration order.
func WithObserver(o DayObserver) Option {
	return func(c *runConfig) {
		c.observers = append(c.observers, o)
	}
}

// WithLogger sets the logger for the run and its engine.
func WithLogger(l *slog.Logger) Option {
	return func(c *runConfig) {
		c.logger = l
	}
}

// Run simulates params.NumDays days. Any configuration error aborts the run
// and no partial result is returned.
func Run(params model.Parameters, rng Rand, opts ...Option) (*Result, error) {
	cfg := &runConfig{logger: slog.Default()}
	for _, opt := range opts {
		opt(cfg)
	}

	params = params.WithDefaults()
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}

	pop, err := population.Initialize(params.PopulationSize, params.InitialInfected, rng)
	if err != nil {
		return nil, fmt.Errorf("initialize population: %w", err)
	}
	status := quarantine.NewStatus()

	cfg.logger.Info("outbreak starting",
		"population", params.PopulationSize,
		"initial_infected", params.InitialInfected,
		"days", params.NumDays,
		"propagation", params.Propagation,
		"expiry", params.Expiry,
	)

	result := &Result{
		Params: params,
		Series: make([]int, 0, params.NumDays+1),
		Days:   make([]engine.DayReport, 0, params.NumDays+1),
	}

	initial := engine.DayReport{Day: 0, Counts: pop.Counts()}
	if err := record(cfg, result, Snapshot{Report: initial, Population: pop, Status: status}); err != nil {
		return nil, err
	}

	eng := engine.New(params, pop, status, rng, engine.WithLogger(cfg.logger))
	for day := 1; day <= params.NumDays; day++ {
		report, err := eng.Step()
		if err != nil {
			return nil, fmt.Errorf("simulate day %d: %w", day, err)
		}
		if err := record(cfg, result, Snapshot{Report: report, Population: pop, Status: status}); err != nil {
			return nil, err
		}
	}

	result.Final = pop

	peak, peakDay := result.Peak()
	cfg.logger.Info("outbreak finished",
		"days", params.NumDays,
		"peak", peak,
		"peak_day", peakDay,
		"final_active", result.Series[len(result.Series)-1],
	)

	return result, nil
}

func record(cfg *runConfig, result *Result, snap Snapshot) error {
	result.Series = append(result.Series, snap.Report.Counts.Active())
	result.Days = append(result.Days, snap.Report)
	for _, o := range cfg.observers {
		if err := o.ObserveDay(snap); err != nil {
			return fmt.Errorf("observe day %d: %w", snap.Report.Day, err)
		}
	}
	return nil
}
