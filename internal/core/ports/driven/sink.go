package driven

import (
	"context"

	"github.com/custodia-labs/shorttimeseries/internal/core/domain"
)

// TimestampSink consumes resolved entries, e.g. by printing or storing them.
type TimestampSink interface {
	// Write emits a single resolved entry.
	Write(ctx context.Context, entry domain.Resolved) error

	// Close flushes buffered output and releases resources.
	Close() error
}
