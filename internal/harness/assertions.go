package harness

import (
	"errors"
	"fmt"
	"strings"

	"github.com/roach88/siqr/internal/model"
	"github.com/roach88/siqr/internal/outbreak"
)

// AssertionError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string // Assertion type for categorization
	Expected string // Human-readable expected outcome
	Actual   string // Human-readable actual outcome
	Series   []int  // Series for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Series) > 0 {
		fmt.Fprintf(&buf, "\nSeries: %v\n", e.Series)
	}

	return buf.String()
}

// AssertionContext carries everything assertions evaluate against.
type AssertionContext struct {
	Scenario *Scenario
	Params   model.Parameters

	// Series is read back from the trace store.
	Series []int
	Final  model.Counts

	// Checks holds the first violation of each day-boundary property.
	Checks *invariantChecks

	// RunErr is the error that aborted the run, if any.
	RunErr error

	// Digest of the run, and a function producing the digest of a rerun.
	Digest string
	Rerun  func() (string, error)
}

// EvaluateAssertions evaluates all assertions and returns failure messages.
func EvaluateAssertions(assertions []Assertion, actx *AssertionContext) []string {
	var errs []string
	for _, a := range assertions {
		if err := evaluateAssertion(a, actx); err != nil {
			errs = append(errs, err.Error())
		}
	}
	return errs
}

func evaluateAssertion(a Assertion, actx *AssertionContext) error {
	if a.Type == AssertConfigError {
		return assertConfigError(actx, a)
	}
	if actx.RunErr != nil {
		return &AssertionError{
			Type:     a.Type,
			Expected: "a completed run",
			Actual:   fmt.Sprintf("run aborted: %v", actx.RunErr),
		}
	}

	switch a.Type {
	case AssertSeriesLength:
		return assertSeriesLength(actx)
	case AssertSeriesAt:
		return assertSeriesAt(actx, a)
	case AssertMaxActive:
		return assertMaxActive(actx, a)
	case AssertFinalCount:
		return assertFinalCount(actx, a)
	case AssertNoExposed:
		return checkFailure(a.Type, actx.Checks.exposed, "no Exposed individual at any day boundary")
	case AssertConservation:
		return checkFailure(a.Type, actx.Checks.conservation,
			fmt.Sprintf("S+I+Q+R = %d every day", actx.Params.PopulationSize))
	case AssertRecoveredAbsorbing:
		return checkFailure(a.Type, actx.Checks.absorbing, "Recovered individuals never change state")
	case AssertQuarantineTracking:
		return checkFailure(a.Type, actx.Checks.tracking, "quarantine status tracks the Quarantined individuals")
	case AssertDeterministic:
		return assertDeterministic(actx)
	default:
		return fmt.Errorf("unknown assertion type: %s", a.Type)
	}
}

func assertSeriesLength(actx *AssertionContext) error {
	want := actx.Params.NumDays + 1
	if len(actx.Series) != want {
		return &AssertionError{
			Type:     AssertSeriesLength,
			Expected: fmt.Sprintf("%d entries", want),
			Actual:   fmt.Sprintf("%d entries", len(actx.Series)),
			Series:   actx.Series,
		}
	}
	return nil
}

func assertSeriesAt(actx *AssertionContext, a Assertion) error {
	day, want := *a.Day, *a.Value
	if day >= len(actx.Series) {
		return &AssertionError{
			Type:     AssertSeriesAt,
			Expected: fmt.Sprintf("series[%d] = %d", day, want),
			Actual:   fmt.Sprintf("series has %d entries", len(actx.Series)),
			Series:   actx.Series,
		}
	}
	if got := actx.Series[day]; got != want {
		return &AssertionError{
			Type:     AssertSeriesAt,
			Expected: fmt.Sprintf("series[%d] = %d", day, want),
			Actual:   fmt.Sprintf("series[%d] = %d", day, got),
			Series:   actx.Series,
		}
	}
	return nil
}

func assertMaxActive(actx *AssertionContext, a Assertion) error {
	for day, v := range actx.Series {
		if v > *a.Value {
			return &AssertionError{
				Type:     AssertMaxActive,
				Expected: fmt.Sprintf("every entry <= %d", *a.Value),
				Actual:   fmt.Sprintf("series[%d] = %d", day, v),
				Series:   actx.Series,
			}
		}
	}
	return nil
}

func assertFinalCount(actx *AssertionContext, a Assertion) error {
	// Validated at load time.
	state, _ := model.ParseState(a.State)
	if got := actx.Final.Of(state); got != *a.Value {
		return &AssertionError{
			Type:     AssertFinalCount,
			Expected: fmt.Sprintf("count(%s) = %d", state, *a.Value),
			Actual:   fmt.Sprintf("count(%s) = %d", state, got),
		}
	}
	return nil
}

func assertDeterministic(actx *AssertionContext) error {
	again, err := actx.Rerun()
	if err != nil {
		return &AssertionError{
			Type:     AssertDeterministic,
			Expected: fmt.Sprintf("rerun digest %s", actx.Digest),
			Actual:   fmt.Sprintf("rerun failed: %v", err),
		}
	}
	if again != actx.Digest {
		return &AssertionError{
			Type:     AssertDeterministic,
			Expected: fmt.Sprintf("rerun digest %s", actx.Digest),
			Actual:   fmt.Sprintf("rerun digest %s", again),
		}
	}
	return nil
}

func assertConfigError(actx *AssertionContext, a Assertion) error {
	if actx.RunErr == nil {
		return &AssertionError{
			Type:     AssertConfigError,
			Expected: fmt.Sprintf("run aborts with %s", a.Code),
			Actual:   "run completed",
			Series:   actx.Series,
		}
	}

	var ce *model.ConfigError
	if !errors.As(actx.RunErr, &ce) {
		return &AssertionError{
			Type:     AssertConfigError,
			Expected: fmt.Sprintf("run aborts with %s", a.Code),
			Actual:   fmt.Sprintf("non-configuration error: %v", actx.RunErr),
		}
	}
	if string(ce.Code) != a.Code {
		return &AssertionError{
			Type:     AssertConfigError,
			Expected: fmt.Sprintf("run aborts with %s", a.Code),
			Actual:   fmt.Sprintf("run aborts with %s: %s", ce.Code, ce.Message),
		}
	}
	return nil
}

func checkFailure(typ, violation, expected string) error {
	if violation == "" {
		return nil
	}
	return &AssertionError{Type: typ, Expected: expected, Actual: violation}
}

// invariantChecks observes every day boundary and keeps the first
// violation of each property.
type invariantChecks struct {
	size      int
	expiry    model.ExpiryPolicy
	recovered []bool

	exposed      string
	conservation string
	absorbing    string
	tracking     string
}

func newInvariantChecks(params model.Parameters) *invariantChecks {
	return &invariantChecks{
		size:      params.PopulationSize,
		expiry:    params.WithDefaults().Expiry,
		recovered: make([]bool, params.PopulationSize),
	}
}

// ObserveDay implements outbreak.DayObserver.
func (c *invariantChecks) ObserveDay(snap outbreak.Snapshot) error {
	day := snap.Report.Day
	counts := snap.Population.Counts()

	if c.exposed == "" && counts.Exposed > 0 {
		c.exposed = fmt.Sprintf("day %d: %d Exposed", day, counts.Exposed)
	}
	siqr := counts.Total() - counts.Exposed
	if c.conservation == "" && siqr != c.size {
		c.conservation = fmt.Sprintf("day %d: S+I+Q+R = %d", day, siqr)
	}

	for i, st := range snap.Population {
		if c.recovered[i] && st != model.Recovered && c.absorbing == "" {
			c.absorbing = fmt.Sprintf("day %d: individual %d left R for %s", day, i, st)
		}
		if st == model.Recovered {
			c.recovered[i] = true
		}

		tracked := snap.Status.Tracked(i)
		if c.tracking != "" {
			continue
		}
		switch {
		case tracked && st != model.Quarantined:
			c.tracking = fmt.Sprintf("day %d: individual %d tracked in state %s", day, i, st)
		case !tracked && st == model.Quarantined && c.expiry == model.ExpiryRecover:
			c.tracking = fmt.Sprintf("day %d: individual %d Quarantined but untracked", day, i)
		}
	}
	return nil
}
