package services

import (
	"io"

	"github.com/custodia-labs/shorttimeseries/internal/core/domain"
	"github.com/custodia-labs/shorttimeseries/internal/core/ports/driving"
	"github.com/custodia-labs/shorttimeseries/internal/logger"
)

// Ensure Timeline implements the interface.
var _ driving.TimestampStream = (*Timeline)(nil)

// Timeline feeds parsed entries through a Resolver.
// The first error ends the timeline; later calls return the same error.
type Timeline struct {
	entries  driving.EntryStream
	resolver *Resolver
	count    int
	err      error
}

// NewTimeline creates a Timeline. The resolver may already be seeded.
func NewTimeline(entries driving.EntryStream, resolver *Resolver) *Timeline {
	return &Timeline{entries: entries, resolver: resolver}
}

// Next returns the next resolved entry, or io.EOF when the entries run out.
func (t *Timeline) Next() (domain.Resolved, error) {
	if t.err != nil {
		return domain.Resolved{}, t.err
	}

	entry, err := t.entries.Next()
	if err == nil {
		var res domain.Resolved
		res, err = t.resolver.Resolve(entry)
		if err == nil {
			t.count++
			return res, nil
		}
	}

	if err == io.EOF {
		logger.Debug("timeline finished after %d entries", t.count)
	} else {
		logger.Debug("timeline stopped after %d entries: %v", t.count, err)
	}
	t.err = err
	return domain.Resolved{}, err
}

// Count returns the number of entries resolved so far.
func (t *Timeline) Count() int {
	return t.count
}
