package services

import (
	"regexp"
	"strconv"

	"github.com/custodia-labs/shorttimeseries/internal/core/domain"
	"github.com/custodia-labs/shorttimeseries/internal/core/ports/driving"
)

// Ensure EntryReader implements the interface.
var _ driving.EntryStream = (*EntryReader)(nil)

// tokenPattern matches an optional digit run followed by an optional
// '#' and label. Tokens are never empty, so a token without '#' always
// has digits.
var tokenPattern = regexp.MustCompile(`^([0-9]*)(?:#([A-Za-z0-9_-]*))?$`)

// EntryReader parses tokens into partial timestamps and labels.
type EntryReader struct {
	tokens    driving.TokenStream
	precision domain.Precision
}

// NewEntryReader creates an EntryReader over tokens. The precision must be valid.
func NewEntryReader(tokens driving.TokenStream, precision domain.Precision) *EntryReader {
	return &EntryReader{tokens: tokens, precision: precision}
}

// Next returns the next entry, or io.EOF at the end of the tokens.
func (r *EntryReader) Next() (domain.Entry, error) {
	tok, err := r.tokens.Next()
	if err != nil {
		return domain.Entry{}, err
	}
	return ParseEntry(tok, r.precision)
}

// ParseEntry parses a single token at the given precision.
func ParseEntry(tok domain.Token, precision domain.Precision) (domain.Entry, error) {
	m := tokenPattern.FindStringSubmatch(tok.Text)
	if m == nil {
		return domain.Entry{}, domain.NewTokenError(domain.ErrInvalidToken, tok, domain.NoUnit, nil)
	}

	partial, err := DecodeDigits(m[1], precision)
	if err != nil {
		return domain.Entry{}, domain.NewTokenError(domain.ErrInvalidToken, tok, domain.NoUnit, err)
	}

	return domain.Entry{Partial: partial, Label: m[2], Token: tok}, nil
}

// DecodeDigits slices a digit run from the right into two-digit groups,
// finest reachable unit first. The coarsest populated unit takes whatever
// digits remain, so only it may be shorter than two digits, and year may
// be any width. Units the run does not reach stay unknown.
func DecodeDigits(digits string, precision domain.Precision) (domain.Partial, error) {
	var p domain.Partial
	n := precision.Units()
	end := len(digits)

	for u := domain.Unit(n - 1); u >= domain.Year && end > 0; u-- {
		start := end - 2
		if u == domain.Year || start < 0 {
			start = 0
		}
		v, err := strconv.Atoi(digits[start:end])
		if err != nil {
			return domain.Partial{}, err
		}
		p[u] = domain.Known(v)
		end = start
	}

	return p, nil
}
