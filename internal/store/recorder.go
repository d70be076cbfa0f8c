package store

import (
	"context"
	"fmt"

	"github.com/roach88/siqr/internal/model"
	"github.com/roach88/siqr/internal/outbreak"
)

// Recorder writes every observed day of one run to the store.
// It implements outbreak.DayObserver.
type Recorder struct {
	ctx   context.Context
	store *Store
	runID string
}

// NewRecorder writes the run header and returns a recorder for its days.
func NewRecorder(ctx context.Context, s *Store, gen RunIDGenerator, seed uint64, params model.Parameters) (*Recorder, error) {
	id := gen.Generate()
	if err := s.WriteRun(ctx, Run{ID: id, Seed: seed, Params: params}); err != nil {
		return nil, fmt.Errorf("start recorder: %w", err)
	}
	return &Recorder{ctx: ctx, store: s, runID: id}, nil
}

// RunID returns the id of the recorded run.
func (r *Recorder) RunID() string {
	return r.runID
}

// ObserveDay implements outbreak.DayObserver.
func (r *Recorder) ObserveDay(snap outbreak.Snapshot) error {
	return r.store.WriteDay(r.ctx, r.runID, snap.Report)
}

// Finish stores the digest of the completed run.
func (r *Recorder) Finish(result *outbreak.Result) error {
	digest, err := outbreak.Digest(result)
	if err != nil {
		return err
	}
	return r.store.FinishRun(r.ctx, r.runID, digest)
}
