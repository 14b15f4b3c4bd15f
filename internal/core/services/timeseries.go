package services

import (
	"errors"
	"io"
	"strings"

	"github.com/custodia-labs/shorttimeseries/internal/core/domain"
	"github.com/custodia-labs/shorttimeseries/internal/core/ports/driving"
	"github.com/custodia-labs/shorttimeseries/internal/logger"
)

// Ensure TimeseriesService implements the interface.
var _ driving.TimeseriesService = (*TimeseriesService)(nil)

// TimeseriesService wires the splitter, entry reader and resolver together.
type TimeseriesService struct{}

// NewTimeseriesService creates a new timeseries service.
func NewTimeseriesService() *TimeseriesService {
	return &TimeseriesService{}
}

// Split tokenizes r on runs of whitespace.
func (s *TimeseriesService) Split(r io.Reader, opts domain.SplitOptions) driving.TokenStream {
	return NewSplitter(r, WithChunkSize(opts.ChunkSize))
}

// ParsePartial parses each token of r into an entry.
func (s *TimeseriesService) ParsePartial(r io.Reader, opts domain.ParseOptions) (driving.EntryStream, error) {
	precision, err := checkPrecision(opts)
	if err != nil {
		return nil, err
	}
	tokens := s.Split(r, domain.SplitOptions{ChunkSize: opts.ChunkSize})
	return NewEntryReader(tokens, precision), nil
}

// Parse resolves each token of r into a full timestamp.
func (s *TimeseriesService) Parse(r io.Reader, opts domain.ParseOptions) (driving.TimestampStream, error) {
	logger.Section("Parse")

	precision, err := checkPrecision(opts)
	if err != nil {
		return nil, err
	}
	logger.Debug("precision: %s, chunk size: %d", precision, opts.ChunkSize)

	resolver := NewResolver()
	if !opts.Initial.IsZero() {
		initial, err := ResolveInitial(opts.Initial, precision)
		if err != nil {
			return nil, err
		}
		if err := resolver.Seed(initial); err != nil {
			return nil, err
		}
	}

	entries, err := s.ParsePartial(r, domain.ParseOptions{Precision: precision, ChunkSize: opts.ChunkSize})
	if err != nil {
		return nil, err
	}
	return NewTimeline(entries, resolver), nil
}

// ResolveInitial turns an explicit initial value into a timestamp.
// Text must be exactly one token that pads to a complete timestamp.
func ResolveInitial(initial domain.Initial, precision domain.Precision) (domain.Timestamp, error) {
	if initial.At != nil {
		ts := *initial.At
		if err := ts.Validate(); err != nil {
			return domain.Timestamp{}, &domain.TimestampError{
				Kind: domain.ErrMalformedInitial, Text: ts.String(), Offset: -1, Unit: domain.NoUnit, Err: err,
			}
		}
		return ts, nil
	}

	malformed := func(cause error) error {
		return &domain.TimestampError{
			Kind: domain.ErrMalformedInitial, Text: initial.Text, Offset: -1, Unit: domain.NoUnit, Err: cause,
		}
	}

	tokens := NewSplitter(strings.NewReader(initial.Text))
	tok, err := tokens.Next()
	if err == io.EOF {
		return domain.Timestamp{}, malformed(nil)
	}
	if err != nil {
		return domain.Timestamp{}, malformed(err)
	}
	if _, err := tokens.Next(); !errors.Is(err, io.EOF) {
		return domain.Timestamp{}, malformed(errors.New("more than one token"))
	}

	entry, err := ParseEntry(tok, precision)
	if err != nil {
		return domain.Timestamp{}, malformed(err)
	}
	ts, ok := Pad(entry.Partial).Timestamp()
	if !ok {
		return domain.Timestamp{}, &domain.TimestampError{
			Kind: domain.ErrIncompleteInitial, Text: initial.Text, Offset: -1, Unit: domain.NoUnit,
		}
	}
	return ts, nil
}

func checkPrecision(opts domain.ParseOptions) (domain.Precision, error) {
	return domain.ParsePrecision(string(opts.EffectivePrecision()))
}
