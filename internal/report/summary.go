package report

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"github.com/roach88/siqr/internal/model"
	"github.com/roach88/siqr/internal/outbreak"
	"github.com/roach88/siqr/internal/store"
)

// Ratio is a float that may be infinite. Non-finite values encode as JSON
// strings ("+Inf", "NaN").
type Ratio float64

// MarshalJSON implements json.Marshaler.
func (r Ratio) MarshalJSON() ([]byte, error) {
	f := float64(r)
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return []byte(strconv.Quote(strconv.FormatFloat(f, 'f', -1, 64))), nil
	}
	return []byte(strconv.FormatFloat(f, 'f', -1, 64)), nil
}

// Summary holds the statistics reported for one run.
type Summary struct {
	Seed    uint64 `json:"seed"`
	Days    int    `json:"days"`
	Peak    int    `json:"peak"`
	PeakDay int    `json:"peak_day"`

	// FinalRecoveredOrQuarantined is count(R)+count(Q) in the final
	// population.
	FinalRecoveredOrQuarantined int `json:"final_recovered_or_quarantined"`

	R0     Ratio        `json:"r0"`
	Final  model.Counts `json:"final"`
	Digest string       `json:"digest"`
}

// Summarize computes the summary of a completed run.
func Summarize(result *outbreak.Result, seed uint64) (Summary, error) {
	digest, err := outbreak.Digest(result)
	if err != nil {
		return Summary{}, err
	}

	peak, peakDay := result.Peak()
	final := result.Final.Counts()

	return Summary{
		Seed:                        seed,
		Days:                        len(result.Series) - 1,
		Peak:                        peak,
		PeakDay:                     peakDay,
		FinalRecoveredOrQuarantined: final.Recovered + final.Quarantined,
		R0:                          Ratio(result.Params.ReproductionNumber()),
		Final:                       final,
		Digest:                      digest,
	}, nil
}

// FromStore rebuilds the summary of a recorded run from its trace.
// The run must have been finished so that its digest is stored.
func FromStore(ctx context.Context, st *store.Store, runID string) (Summary, error) {
	run, err := st.ReadRun(ctx, runID)
	if err != nil {
		return Summary{}, err
	}

	days, err := st.ReadDays(ctx, runID)
	if err != nil {
		return Summary{}, err
	}
	if len(days) == 0 {
		return Summary{}, fmt.Errorf("summarize run %s: no days recorded", runID)
	}

	peak, peakDay, err := st.PeakDay(ctx, runID)
	if err != nil {
		return Summary{}, err
	}

	final := days[len(days)-1].Counts
	return Summary{
		Seed:                        run.Seed,
		Days:                        len(days) - 1,
		Peak:                        peak,
		PeakDay:                     peakDay,
		FinalRecoveredOrQuarantined: final.Recovered + final.Quarantined,
		R0:                          Ratio(run.Params.ReproductionNumber()),
		Final:                       final,
		Digest:                      run.Digest,
	}, nil
}
