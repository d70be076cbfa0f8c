package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/siqr/internal/engine"
)

// ErrRunNotFound is returned when a run id has no header.
var ErrRunNotFound = errors.New("run not found")

// ErrDayNotFound is returned when a run has no row for the requested day.
var ErrDayNotFound = errors.New("day not found")

// ReadRun retrieves a run header by id.
func (s *Store) ReadRun(ctx context.Context, id string) (Run, error) {
	var (
		run        Run
		seed       string
		paramsJSON string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, seed, params, digest FROM runs WHERE id = ?
	`, id).Scan(&run.ID, &seed, &paramsJSON, &run.Digest)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("read run %s: %w", id, ErrRunNotFound)
	}
	if err != nil {
		return Run{}, fmt.Errorf("read run %s: %w", id, err)
	}

	if run.Seed, err = parseSeed(seed); err != nil {
		return Run{}, fmt.Errorf("read run %s: %w", id, err)
	}
	if run.Params, err = unmarshalParams(paramsJSON); err != nil {
		return Run{}, fmt.Errorf("read run %s: %w", id, err)
	}
	return run, nil
}

// ListRunIDs returns every run id in insertion order.
func (s *Store) ListRunIDs(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM runs ORDER BY rowid ASC`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan run id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return ids, nil
}

// ReadDays returns every recorded day of a run, ordered by day.
// Returns an empty slice (not nil) if nothing was recorded.
func (s *Store) ReadDays(ctx context.Context, runID string) ([]engine.DayReport, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT day, susceptible, infected, quarantined, recovered,
		       new_exposed, new_quarantined, new_recovered, expired
		FROM days
		WHERE run_id = ?
		ORDER BY day ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query days: %w", err)
	}
	defer rows.Close()

	days := []engine.DayReport{}
	for rows.Next() {
		var r engine.DayReport
		if err := rows.Scan(
			&r.Day,
			&r.Counts.Susceptible,
			&r.Counts.Infected,
			&r.Counts.Quarantined,
			&r.Counts.Recovered,
			&r.NewExposed,
			&r.NewQuarantined,
			&r.NewRecovered,
			&r.Expired,
		); err != nil {
			return nil, fmt.Errorf("scan day: %w", err)
		}
		days = append(days, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate days: %w", err)
	}
	return days, nil
}

// ReadSeries returns the stored active (I+Q) count per day, ordered by day.
func (s *Store) ReadSeries(ctx context.Context, runID string) ([]int, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT active FROM days WHERE run_id = ? ORDER BY day ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query series: %w", err)
	}
	defer rows.Close()

	series := []int{}
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan series: %w", err)
		}
		series = append(series, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate series: %w", err)
	}
	return series, nil
}

// PeakDay returns the largest active count of a run and the earliest day
// it was reached.
func (s *Store) PeakDay(ctx context.Context, runID string) (peak, day int, err error) {
	err = s.db.QueryRowContext(ctx, `
		SELECT active, day FROM days
		WHERE run_id = ?
		ORDER BY active DESC, day ASC
		LIMIT 1
	`, runID).Scan(&peak, &day)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, 0, fmt.Errorf("peak day %s: %w", runID, ErrRunNotFound)
	}
	if err != nil {
		return 0, 0, fmt.Errorf("peak day %s: %w", runID, err)
	}
	return peak, day, nil
}

// ReadDay returns a single recorded day of a run.
func (s *Store) ReadDay(ctx context.Context, runID string, day int) (engine.DayReport, error) {
	r := engine.DayReport{Day: day}
	err := s.db.QueryRowContext(ctx, `
		SELECT susceptible, infected, quarantined, recovered,
		       new_exposed, new_quarantined, new_recovered, expired
		FROM days
		WHERE run_id = ? AND day = ?
	`, runID, day).Scan(
		&r.Counts.Susceptible,
		&r.Counts.Infected,
		&r.Counts.Quarantined,
		&r.Counts.Recovered,
		&r.NewExposed,
		&r.NewQuarantined,
		&r.NewRecovered,
		&r.Expired,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return engine.DayReport{}, fmt.Errorf("read day %d of %s: %w", day, runID, ErrDayNotFound)
	}
	if err != nil {
		return engine.DayReport{}, fmt.Errorf("read day %d of %s: %w", day, runID, err)
	}
	return r, nil
}
