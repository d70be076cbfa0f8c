package store

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/siqr/internal/outbreak"
)

func TestRecorder_StoresEveryDay(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	params := testParams()

	rec, err := NewRecorder(ctx, s, NewFixedGenerator("run-a"), 99, params)
	require.NoError(t, err)
	assert.Equal(t, "run-a", rec.RunID())

	result, err := outbreak.Run(params, outbreak.NewRand(99), outbreak.WithObserver(rec))
	require.NoError(t, err)
	require.NoError(t, rec.Finish(result))

	series, err := s.ReadSeries(ctx, "run-a")
	require.NoError(t, err)
	assert.Equal(t, result.Series, series)

	peak, day, err := s.PeakDay(ctx, "run-a")
	require.NoError(t, err)
	wantPeak, wantDay := result.Peak()
	assert.Equal(t, wantPeak, peak)
	assert.Equal(t, wantDay, day)

	run, err := s.ReadRun(ctx, "run-a")
	require.NoError(t, err)
	want, err := outbreak.Digest(result)
	require.NoError(t, err)
	assert.Equal(t, want, run.Digest)
	assert.Equal(t, uint64(99), run.Seed)
	assert.Equal(t, params, run.Params)
}

func TestRecorder_DuplicateRunID(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	gen := NewFixedGenerator("same", "same")

	_, err := NewRecorder(ctx, s, gen, 1, testParams())
	require.NoError(t, err)
	_, err = NewRecorder(ctx, s, gen, 1, testParams())
	assert.Error(t, err)
}

func TestUUIDv7Generator(t *testing.T) {
	gen := UUIDv7Generator{}

	a := gen.Generate()
	b := gen.Generate()
	assert.NotEqual(t, a, b)

	parsed, err := uuid.Parse(a)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())
}

func TestFixedGenerator_Exhausted(t *testing.T) {
	gen := NewFixedGenerator("only")
	assert.Equal(t, "only", gen.Generate())
	assert.Panics(t, func() { gen.Generate() })
}
