package store

import (
	"context"
	"fmt"

	"github.com/roach88/siqr/internal/engine"
	"github.com/roach88/siqr/internal/model"
)

// Run is a stored run header.
type Run struct {
	ID     string           `json:"id"`
	Seed   uint64           `json:"seed"`
	Params model.Parameters `json:"params"`
	Digest string           `json:"digest,omitempty"`
}

// WriteRun inserts a run header. Writing the same id twice is an error.
func (s *Store) WriteRun(ctx context.Context, run Run) error {
	paramsJSON, err := marshalParams(run.Params)
	if err != nil {
		return fmt.Errorf("write run: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO runs (id, seed, params, digest)
		VALUES (?, ?, ?, ?)
	`,
		run.ID,
		formatSeed(run.Seed),
		paramsJSON,
		run.Digest,
	)
	if err != nil {
		return fmt.Errorf("write run: %w", err)
	}
	return nil
}

// FinishRun records the digest of a completed run.
func (s *Store) FinishRun(ctx context.Context, runID, digest string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE runs SET digest = ? WHERE id = ?`, digest, runID)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("finish run: rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("finish run: run %s not found", runID)
	}
	return nil
}

// WriteDay inserts one day of a run. Uses ON CONFLICT DO NOTHING so a day
// is recorded at most once.
//
// Note: The run referenced by runID must exist (foreign key constraint).
func (s *Store) WriteDay(ctx context.Context, runID string, r engine.DayReport) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO days
		(run_id, day, susceptible, infected, quarantined, recovered, active,
		 new_exposed, new_quarantined, new_recovered, expired)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(run_id, day) DO NOTHING
	`,
		runID,
		r.Day,
		r.Counts.Susceptible,
		r.Counts.Infected,
		r.Counts.Quarantined,
		r.Counts.Recovered,
		r.Counts.Active(),
		r.NewExposed,
		r.NewQuarantined,
		r.NewRecovered,
		r.Expired,
	)
	if err != nil {
		return fmt.Errorf("write day %d: %w", r.Day, err)
	}
	return nil
}

// DeleteRun removes a run and its days atomically.
func (s *Store) DeleteRun(ctx context.Context, runID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("delete run: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	if _, err := tx.ExecContext(ctx, `DELETE FROM days WHERE run_id = ?`, runID); err != nil {
		return fmt.Errorf("delete run: days: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, runID); err != nil {
		return fmt.Errorf("delete run: run: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("delete run: commit: %w", err)
	}
	return nil
}
