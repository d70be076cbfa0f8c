package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedRun(t *testing.T, s *Store, id string, active [][2]int) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, s.WriteRun(ctx, Run{ID: id, Seed: 7, Params: testParams()}))
	// Insert out of order to prove reads sort by day.
	for i := len(active) - 1; i >= 0; i-- {
		require.NoError(t, s.WriteDay(ctx, id, createTestDay(i, active[i][0], active[i][1])))
	}
}

func TestReadRun_NotFound(t *testing.T) {
	s := createTestStore(t)

	_, err := s.ReadRun(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestReadSeries_OrderedByDay(t *testing.T) {
	s := createTestStore(t)
	seedRun(t, s, "r", [][2]int{{5, 0}, {6, 1}, {8, 3}, {4, 2}})

	series, err := s.ReadSeries(context.Background(), "r")
	require.NoError(t, err)
	assert.Equal(t, []int{5, 7, 11, 6}, series)
}

func TestReadSeries_Empty(t *testing.T) {
	s := createTestStore(t)

	series, err := s.ReadSeries(context.Background(), "nothing")
	require.NoError(t, err)
	assert.NotNil(t, series)
	assert.Empty(t, series)
}

func TestReadDays_Fields(t *testing.T) {
	s := createTestStore(t)
	seedRun(t, s, "r", [][2]int{{5, 0}, {6, 2}})

	days, err := s.ReadDays(context.Background(), "r")
	require.NoError(t, err)
	require.Len(t, days, 2)

	assert.Equal(t, createTestDay(0, 5, 0), days[0])
	assert.Equal(t, createTestDay(1, 6, 2), days[1])
}

func TestPeakDay_FirstOccurrence(t *testing.T) {
	s := createTestStore(t)
	seedRun(t, s, "r", [][2]int{{1, 0}, {4, 5}, {2, 1}, {9, 0}, {3, 0}})

	peak, day, err := s.PeakDay(context.Background(), "r")
	require.NoError(t, err)
	assert.Equal(t, 9, peak)
	assert.Equal(t, 1, day)
}

func TestPeakDay_NoDays(t *testing.T) {
	s := createTestStore(t)

	_, _, err := s.PeakDay(context.Background(), "r")
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestListRunIDs_InsertionOrder(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	ids, err := s.ListRunIDs(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)

	for _, id := range []string{"zeta", "alpha", "mid"} {
		require.NoError(t, s.WriteRun(ctx, Run{ID: id, Seed: 1, Params: testParams()}))
	}

	ids, err = s.ListRunIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, ids)
}

func TestReadDay(t *testing.T) {
	s := createTestStore(t)
	seedRun(t, s, "r", [][2]int{{5, 0}, {6, 2}, {3, 1}})
	ctx := context.Background()

	got, err := s.ReadDay(ctx, "r", 1)
	require.NoError(t, err)
	assert.Equal(t, createTestDay(1, 6, 2), got)

	_, err = s.ReadDay(ctx, "r", 9)
	assert.ErrorIs(t, err, ErrDayNotFound)
}
