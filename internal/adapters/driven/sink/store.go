package sink

import (
	"context"

	"github.com/custodia-labs/shorttimeseries/internal/core/domain"
	"github.com/custodia-labs/shorttimeseries/internal/core/ports/driven"
)

var _ driven.TimestampSink = (*StoreSink)(nil)

// StoreSink appends entries to one run of a RunStore.
type StoreSink struct {
	store driven.RunStore
	run   domain.Run
	seq   int
}

// NewStoreSink begins a new run in store and returns a sink appending to it.
func NewStoreSink(ctx context.Context, store driven.RunStore, run domain.Run) (*StoreSink, error) {
	run, err := store.BeginRun(ctx, run)
	if err != nil {
		return nil, err
	}
	return &StoreSink{store: store, run: run}, nil
}

// Run returns the run entries are appended to.
func (s *StoreSink) Run() domain.Run {
	return s.run
}

// Count returns the number of entries written so far.
func (s *StoreSink) Count() int {
	return s.seq
}

// Write appends entry to the run.
func (s *StoreSink) Write(ctx context.Context, entry domain.Resolved) error {
	if err := s.store.AppendEntry(ctx, s.run.ID, s.seq, entry); err != nil {
		return err
	}
	s.seq++
	return nil
}

// Close does not close the underlying store, which the caller owns.
func (s *StoreSink) Close() error {
	return nil
}
