package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const passingScenario = `name: quiet
description: "No transmission and no recovery"
seed: 4
params:
  population_size: 6
  initial_infected: 2
  num_days: 2
  prob_infected_recovery: 0
  prob_quarantine_recovery: 0
  num_contacts: 0
  prob_infection: 0
  quarantine_days: 14
  prob_quarantine: 0
assertions:
  - type: series_length
  - type: series_at
    day: 2
    value: 2
  - type: deterministic
`

const failingScenario = `name: wrong
description: "Claims the active count drops to zero"
seed: 4
params:
  population_size: 6
  initial_infected: 2
  num_days: 2
  prob_infected_recovery: 0
  prob_quarantine_recovery: 0
  num_contacts: 0
  prob_infection: 0
  quarantine_days: 14
  prob_quarantine: 0
assertions:
  - type: series_at
    day: 2
    value: 0
`

func writeScenario(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name+".yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestTestCommand_Pass(t *testing.T) {
	dir := t.TempDir()
	writeScenario(t, dir, "quiet", passingScenario)

	out, _, err := execute(t, NewTestCommand(&RootOptions{Format: "text"}), dir)
	require.NoError(t, err)

	assert.Contains(t, out, "✓ quiet")
	assert.Contains(t, out, "Test Summary: 1 passed, 0 failed, 1 total")
	assert.Contains(t, out, "✓ All scenarios passed")
}

func TestTestCommand_Fail(t *testing.T) {
	dir := t.TempDir()
	writeScenario(t, dir, "quiet", passingScenario)
	writeScenario(t, dir, "wrong", failingScenario)

	out, _, err := execute(t, NewTestCommand(&RootOptions{Format: "json"}), dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp struct {
		Status string     `json:"status"`
		Data   TestResult `json:"data"`
		Error  *CLIError  `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeTestFailed, resp.Error.Code)
	assert.Equal(t, 1, resp.Data.Passed)
	assert.Equal(t, 1, resp.Data.Failed)
	assert.Equal(t, 2, resp.Data.Total)
}

func TestTestCommand_Filter(t *testing.T) {
	dir := t.TempDir()
	writeScenario(t, dir, "quiet", passingScenario)
	writeScenario(t, dir, "wrong", failingScenario)

	out, _, err := execute(t, NewTestCommand(&RootOptions{Format: "text"}), dir, "--filter", "qu*")
	require.NoError(t, err)
	assert.Contains(t, out, "1 total")
	assert.NotContains(t, out, "wrong")
}

func TestTestCommand_UpdateThenMatchGolden(t *testing.T) {
	dir := t.TempDir()
	path := writeScenario(t, dir, "quiet", passingScenario)

	_, _, err := execute(t, NewTestCommand(&RootOptions{Format: "text"}), path, "--update")
	require.NoError(t, err)

	golden := filepath.Join(dir, "golden", "quiet.golden")
	data, err := os.ReadFile(golden)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"scenario_name": "quiet"`)

	// The golden directory itself must not be picked up as scenarios.
	out, _, err := execute(t, NewTestCommand(&RootOptions{Format: "text"}), dir)
	require.NoError(t, err)
	assert.Contains(t, out, "1 passed, 0 failed, 1 total")
}

func TestTestCommand_GoldenMismatch(t *testing.T) {
	dir := t.TempDir()
	path := writeScenario(t, dir, "quiet", passingScenario)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "golden"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "golden", "quiet.golden"), []byte("{}\n"), 0644))

	out, _, err := execute(t, NewTestCommand(&RootOptions{Format: "text"}), path)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "snapshot does not match golden file")
}

func TestTestCommand_MissingPath(t *testing.T) {
	_, _, err := execute(t, NewTestCommand(&RootOptions{Format: "text"}), filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "scenario path not found")
}

func TestTestCommand_RepositoryScenarios(t *testing.T) {
	dir := filepath.Join("..", "harness", "testdata", "scenarios")

	out, _, err := execute(t, NewTestCommand(&RootOptions{Format: "text"}), dir)
	require.NoError(t, err, out)
	assert.Contains(t, out, "✓ All scenarios passed")
}
