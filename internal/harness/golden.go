package harness

import (
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/siqr/internal/model"
)

// Snapshot is the golden record of a scenario execution.
type Snapshot struct {
	ScenarioName string       `json:"scenario_name"`
	Seed         uint64       `json:"seed"`
	Series       []int        `json:"series"`
	Final        model.Counts `json:"final"`
	Digest       string       `json:"digest,omitempty"`
	RunError     string       `json:"run_error,omitempty"`
}

// MarshalSnapshot encodes a snapshot as indented JSON with a trailing newline.
func MarshalSnapshot(s Snapshot) ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// RunWithGolden executes a scenario and compares its snapshot against
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if scenario execution fails.
// Test failure (via goldie) occurs if the snapshot doesn't match.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}

	data, err := MarshalSnapshot(Snapshot{
		ScenarioName: scenario.Name,
		Seed:         scenario.EffectiveSeed(),
		Series:       result.Series,
		Final:        result.Final,
		Digest:       result.Digest,
		RunError:     result.RunError,
	})
	if err != nil {
		return nil, err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, data)

	return result, nil
}
