package harness

import "github.com/roach88/siqr/internal/model"

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true if every assertion held.
	Pass bool `json:"pass"`

	// Series is the active count per day, read back from the trace store.
	// Empty if the run aborted.
	Series []int `json:"series"`

	// Final holds the state tallies of the final population.
	Final model.Counts `json:"final"`

	// Digest identifies the run trajectory. Empty if the run aborted.
	Digest string `json:"digest,omitempty"`

	// RunError is the error that aborted the run, if any.
	RunError string `json:"run_error,omitempty"`

	// Errors contains assertion failure messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Series: []int{},
		Errors: []string{},
	}
}

// AddError adds an assertion failure and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
