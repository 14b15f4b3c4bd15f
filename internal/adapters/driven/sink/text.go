package sink

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/custodia-labs/shorttimeseries/internal/core/domain"
	"github.com/custodia-labs/shorttimeseries/internal/core/ports/driven"
)

var _ driven.TimestampSink = (*TextSink)(nil)

// TextSink writes one line per entry: the timestamp, then the label if any.
type TextSink struct {
	w          *bufio.Writer
	styles     *Styles
	showTokens bool
}

// TextOption configures a TextSink.
type TextOption func(*TextSink)

// WithStyles renders timestamps and labels with the given styles.
func WithStyles(s *Styles) TextOption {
	return func(t *TextSink) { t.styles = s }
}

// WithTokens appends the source token and its offset to each line.
func WithTokens(show bool) TextOption {
	return func(t *TextSink) { t.showTokens = show }
}

// NewTextSink creates a text sink writing to w.
func NewTextSink(w io.Writer, opts ...TextOption) *TextSink {
	s := &TextSink{w: bufio.NewWriter(w)}
	for _, opt := range opts {
		opt(s)
	}
	if s.styles == nil {
		s.styles = NewStyles(w, nil, false)
	}
	return s
}

// Write prints entry. Lines are flushed as they are written so that
// follow mode output appears immediately.
func (s *TextSink) Write(_ context.Context, entry domain.Resolved) error {
	line := s.styles.Timestamp.Render(entry.Timestamp.String())
	if entry.Label != "" {
		line += " " + s.styles.Label.Render(entry.Label)
	}
	if s.showTokens {
		line += " " + s.styles.Muted.Render(fmt.Sprintf("(%s @%d)", entry.Token.Text, entry.Token.Offset))
	}

	if _, err := fmt.Fprintln(s.w, line); err != nil {
		return fmt.Errorf("writing entry: %w", err)
	}
	return s.w.Flush()
}

// Close flushes buffered output.
func (s *TextSink) Close() error {
	return s.w.Flush()
}
