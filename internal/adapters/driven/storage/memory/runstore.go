package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/shorttimeseries/internal/core/domain"
	"github.com/custodia-labs/shorttimeseries/internal/core/ports/driven"
)

// Ensure RunStore implements the interface.
var _ driven.RunStore = (*RunStore)(nil)

// RunStore is an in-memory implementation of driven.RunStore.
type RunStore struct {
	mu      sync.RWMutex
	runs    map[string]domain.Run
	entries map[string][]domain.Resolved
}

// NewRunStore creates a new in-memory run store.
func NewRunStore() *RunStore {
	return &RunStore{
		runs:    make(map[string]domain.Run),
		entries: make(map[string][]domain.Resolved),
	}
}

// BeginRun records a new run, assigning an ID and creation time if unset.
func (s *RunStore) BeginRun(_ context.Context, run domain.Run) (domain.Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}
	if _, ok := s.runs[run.ID]; ok {
		return domain.Run{}, fmt.Errorf("run %s already exists", run.ID)
	}
	s.runs[run.ID] = run
	return run, nil
}

// AppendEntry stores the entry at position seq, which must be the next
// position of the run.
func (s *RunStore) AppendEntry(_ context.Context, runID string, seq int, entry domain.Resolved) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.runs[runID]; !ok {
		return fmt.Errorf("run %s: %w", runID, domain.ErrNotFound)
	}
	if seq != len(s.entries[runID]) {
		return fmt.Errorf("run %s: entry %d out of sequence", runID, seq)
	}
	s.entries[runID] = append(s.entries[runID], entry)
	return nil
}

// ListRuns returns all runs, newest first.
func (s *RunStore) ListRuns(_ context.Context) ([]domain.RunSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.RunSummary, 0, len(s.runs))
	for id, run := range s.runs {
		sum := domain.RunSummary{Run: run}
		if entries := s.entries[id]; len(entries) > 0 {
			sum.Entries = len(entries)
			sum.First = entries[0].Timestamp
			sum.Last = entries[len(entries)-1].Timestamp
		}
		result = append(result, sum)
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

// Entries returns a copy of the entries of a run.
func (s *RunStore) Entries(_ context.Context, runID string) ([]domain.Resolved, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.runs[runID]; !ok {
		return nil, domain.ErrNotFound
	}
	return append([]domain.Resolved(nil), s.entries[runID]...), nil
}
