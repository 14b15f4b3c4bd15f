package driven

import (
	"context"

	"github.com/custodia-labs/shorttimeseries/internal/core/domain"
)

// RunStore persists resolved entries grouped into runs.
// A run is one pass over one source.
type RunStore interface {
	// BeginRun records a new run and returns it with its ID assigned.
	BeginRun(ctx context.Context, run domain.Run) (domain.Run, error)

	// AppendEntry stores the next entry of a run.
	AppendEntry(ctx context.Context, runID string, seq int, entry domain.Resolved) error

	// ListRuns returns all runs with their entry counts, newest first.
	ListRuns(ctx context.Context) ([]domain.RunSummary, error)

	// Entries returns the entries of a run in sequence order.
	// Returns domain.ErrNotFound if the run does not exist.
	Entries(ctx context.Context, runID string) ([]domain.Resolved, error)
}
