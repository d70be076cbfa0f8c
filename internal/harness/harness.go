package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/siqr/internal/outbreak"
	"github.com/roach88/siqr/internal/store"
)

// scenarioRunID names the single run recorded per scenario store.
const scenarioRunID = "scenario"

// Run executes a scenario and evaluates its assertions.
//
// Each scenario runs in a fresh in-memory database for isolation.
// Execution flow:
//  1. Create fresh in-memory database
//  2. Run the outbreak with the scenario seed, recording every day and
//     checking day-boundary invariants
//  3. Read the series back from the store
//  4. Evaluate assertions
//
// The returned error is reserved for harness failures; a run aborted by a
// configuration error is reported through the config_error assertion.
func Run(scenario *Scenario) (*Result, error) {
	return RunWithLogger(scenario, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// RunWithLogger is Run with an explicit logger for the outbreak.
func RunWithLogger(scenario *Scenario, logger *slog.Logger) (*Result, error) {
	st, err := store.Open(store.MemoryPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	ctx := context.Background()
	seed := scenario.EffectiveSeed()
	params := scenario.Params.WithDefaults()

	rec, err := store.NewRecorder(ctx, st, store.NewFixedGenerator(scenarioRunID), seed, params)
	if err != nil {
		return nil, err
	}
	checks := newInvariantChecks(params)

	run, runErr := outbreak.Run(params, outbreak.NewRand(seed),
		outbreak.WithObserver(rec),
		outbreak.WithObserver(checks),
		outbreak.WithLogger(logger),
	)

	result := NewResult()
	actx := &AssertionContext{
		Scenario: scenario,
		Params:   params,
		Checks:   checks,
		RunErr:   runErr,
		Rerun: func() (string, error) {
			again, err := outbreak.Run(params, outbreak.NewRand(seed), outbreak.WithLogger(logger))
			if err != nil {
				return "", err
			}
			return outbreak.Digest(again)
		},
	}

	if runErr != nil {
		result.RunError = runErr.Error()
	} else {
		if err := rec.Finish(run); err != nil {
			return nil, err
		}
		stored, err := st.ReadRun(ctx, scenarioRunID)
		if err != nil {
			return nil, err
		}
		series, err := st.ReadSeries(ctx, scenarioRunID)
		if err != nil {
			return nil, err
		}

		actx.Series = series
		actx.Final = run.Final.Counts()
		actx.Digest = stored.Digest

		result.Series = series
		result.Final = actx.Final
		result.Digest = stored.Digest
	}

	for _, msg := range EvaluateAssertions(scenario.Assertions, actx) {
		result.AddError(msg)
	}

	return result, nil
}
