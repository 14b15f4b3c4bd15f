package domain

import (
	"errors"
	"strconv"
	"strings"
)

// Domain errors describe why a stream could not be resolved.
// Match them with errors.Is; TimestampError carries the context.
var (
	// ErrInvalidToken indicates a token does not match the timestamp grammar.
	ErrInvalidToken = errors.New("invalid timestamp")

	// ErrInvalidPrecision indicates an unrecognised precision value.
	ErrInvalidPrecision = errors.New("invalid precision")

	// ErrIncompleteInitial indicates the initial timestamp has unknown units after padding.
	ErrIncompleteInitial = errors.New("initial timestamp is incomplete")

	// ErrMalformedInitial indicates the initial value is not exactly one valid token
	// or not a calendar timestamp.
	ErrMalformedInitial = errors.New("initial is not a valid timestamp")

	// ErrGap indicates a known unit follows an unknown one within an entry.
	ErrGap = errors.New("can't have gaps")

	// ErrBackward indicates an entry would move earlier than the current timestamp.
	ErrBackward = errors.New("can't go backwards")

	// ErrCalendar indicates the resolved units are not a valid calendar timestamp.
	ErrCalendar = errors.New("invalid calendar timestamp")

	// ErrNotFound indicates a requested run does not exist.
	ErrNotFound = errors.New("not found")
)

// TimestampError is returned for any failure tied to a specific token.
type TimestampError struct {
	// Kind is one of the sentinel errors above.
	Kind error

	// Text is the offending token text, verbatim.
	Text string

	// Offset is the byte offset of the token in its source, or -1.
	Offset int64

	// Unit is the unit involved, or NoUnit.
	Unit Unit

	// Err is the underlying cause, if any.
	Err error
}

func (e *TimestampError) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.Error())
	if e.Unit != NoUnit {
		b.WriteString(" (")
		b.WriteString(e.Unit.String())
		b.WriteString(")")
	}
	if e.Text != "" {
		b.WriteString(": ")
		b.WriteString(strconv.Quote(e.Text))
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Is reports whether target is the error's kind.
func (e *TimestampError) Is(target error) bool {
	return target == e.Kind
}

// Unwrap returns the underlying cause.
func (e *TimestampError) Unwrap() error {
	return e.Err
}

// NewTokenError builds a TimestampError of the given kind for tok.
func NewTokenError(kind error, tok Token, unit Unit, cause error) *TimestampError {
	return &TimestampError{Kind: kind, Text: tok.Text, Offset: tok.Offset, Unit: unit, Err: cause}
}

// IsConfigError reports whether err stems from caller configuration
// (precision or initial value) rather than from the data stream.
func IsConfigError(err error) bool {
	return errors.Is(err, ErrInvalidPrecision) ||
		errors.Is(err, ErrMalformedInitial) ||
		errors.Is(err, ErrIncompleteInitial)
}
