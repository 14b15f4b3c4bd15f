package sink

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/custodia-labs/shorttimeseries/internal/core/domain"
	"github.com/custodia-labs/shorttimeseries/internal/core/ports/driven"
)

var _ driven.TimestampSink = (*JSONSink)(nil)

// jsonEntry is the wire form of a resolved entry.
type jsonEntry struct {
	Timestamp string `json:"timestamp"`
	Label     string `json:"label"`
	Token     string `json:"token"`
	Offset    int64  `json:"offset"`
}

// JSONSink writes one JSON object per line.
type JSONSink struct {
	enc *json.Encoder
}

// NewJSONSink creates a JSON lines sink writing to w.
func NewJSONSink(w io.Writer) *JSONSink {
	return &JSONSink{enc: json.NewEncoder(w)}
}

// Write encodes entry as a single line.
func (s *JSONSink) Write(_ context.Context, entry domain.Resolved) error {
	if err := s.enc.Encode(jsonEntry{
		Timestamp: entry.Timestamp.String(),
		Label:     entry.Label,
		Token:     entry.Token.Text,
		Offset:    entry.Token.Offset,
	}); err != nil {
		return fmt.Errorf("encoding entry: %w", err)
	}
	return nil
}

// Close is a no-op; the encoder does not buffer.
func (s *JSONSink) Close() error {
	return nil
}
