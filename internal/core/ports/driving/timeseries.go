package driving

import (
	"io"

	"github.com/custodia-labs/shorttimeseries/internal/core/domain"
)

// TokenStream yields tokens one at a time. Next returns io.EOF once the
// source is exhausted. Streams are single pass.
type TokenStream interface {
	Next() (domain.Token, error)
}

// EntryStream yields parsed entries one at a time, ending with io.EOF.
type EntryStream interface {
	Next() (domain.Entry, error)
}

// TimestampStream yields resolved entries one at a time, ending with io.EOF.
// After any other error the stream is finished; entries already returned
// remain valid.
type TimestampStream interface {
	Next() (domain.Resolved, error)
}

// TimeseriesService expands short timestamp streams into full timestamps.
type TimeseriesService interface {
	// Split tokenizes r on runs of whitespace.
	Split(r io.Reader, opts domain.SplitOptions) TokenStream

	// ParsePartial parses each token of r into a partial timestamp and label.
	// An invalid precision is reported immediately.
	ParsePartial(r io.Reader, opts domain.ParseOptions) (EntryStream, error)

	// Parse resolves each token of r into a full timestamp.
	// Invalid precision or initial values are reported immediately.
	Parse(r io.Reader, opts domain.ParseOptions) (TimestampStream, error)
}
