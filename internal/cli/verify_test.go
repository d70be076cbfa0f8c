package cli

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/siqr/internal/engine"
	"github.com/roach88/siqr/internal/model"
	"github.com/roach88/siqr/internal/store"
)

func TestVerifyCommand_Deterministic(t *testing.T) {
	clearEnv(t)
	opts := &VerifyOptions{
		RootOptions: &RootOptions{Format: "text"},
		RunIDs:      store.NewFixedGenerator("run-a", "run-b"),
	}
	cmd := newVerifyCommand(opts)

	out, _, err := execute(t, cmd, smallRunArgs...)
	require.NoError(t, err)

	assert.Contains(t, out, "Verify Summary: 2 run(s), seed 77")
	assert.Contains(t, out, "✓ Run: run-a")
	assert.Contains(t, out, "✓ Run: run-b")
	assert.Contains(t, out, "✓ All runs identical")
}

func TestVerifyCommand_JSONThreeRuns(t *testing.T) {
	clearEnv(t)
	opts := &VerifyOptions{
		RootOptions: &RootOptions{Format: "json"},
		RunIDs:      store.NewFixedGenerator("r1", "r2", "r3"),
	}
	cmd := newVerifyCommand(opts)

	args := append([]string{"--runs", "3"}, smallRunArgs...)
	out, _, err := execute(t, cmd, args...)
	require.NoError(t, err)

	var resp struct {
		Status string       `json:"status"`
		Data   VerifyResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.True(t, resp.Data.Deterministic)
	require.Len(t, resp.Data.Runs, 3)
	for _, run := range resp.Data.Runs {
		assert.True(t, run.SeriesSame)
		assert.Equal(t, resp.Data.Runs[0].Digest, run.Digest)
	}
}

func TestVerifyCommand_TooFewRuns(t *testing.T) {
	clearEnv(t)
	cmd := NewVerifyCommand(&RootOptions{Format: "text"})

	_, _, err := execute(t, cmd, "--runs", "1")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestVerifyCommand_InvalidConfig(t *testing.T) {
	clearEnv(t)
	cmd := NewVerifyCommand(&RootOptions{Format: "text"})

	_, _, err := execute(t, cmd, "--population-size=5", "--initial-infected=6")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestCompareRuns_DetectsDivergence(t *testing.T) {
	ctx := context.Background()
	st, err := store.Open(store.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	params := model.Parameters{PopulationSize: 4, InitialInfected: 2, NumDays: 1, QuarantineDays: 14}
	day := func(d, infected int) engine.DayReport {
		return engine.DayReport{
			Day:    d,
			Counts: model.Counts{Susceptible: 4 - infected, Infected: infected},
		}
	}

	for _, run := range []struct {
		id     string
		digest string
		days   []engine.DayReport
	}{
		{"first", "aaaa", []engine.DayReport{day(0, 2), day(1, 2)}},
		{"second", "aaaa", []engine.DayReport{day(0, 2), day(1, 1)}},
	} {
		require.NoError(t, st.WriteRun(ctx, store.Run{ID: run.id, Seed: 9, Params: params}))
		for _, d := range run.days {
			require.NoError(t, st.WriteDay(ctx, run.id, d))
		}
		require.NoError(t, st.FinishRun(ctx, run.id, run.digest))
	}

	result, err := compareRuns(ctx, st, 9)
	require.NoError(t, err)

	assert.False(t, result.Deterministic)
	require.Len(t, result.Runs, 2)
	assert.True(t, result.Runs[0].SeriesSame)
	assert.False(t, result.Runs[1].SeriesSame)
	assert.Equal(t, "aaaa", result.Runs[1].Digest)
}
