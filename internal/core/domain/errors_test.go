package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrInvalidToken", ErrInvalidToken},
		{"ErrInvalidPrecision", ErrInvalidPrecision},
		{"ErrIncompleteInitial", ErrIncompleteInitial},
		{"ErrMalformedInitial", ErrMalformedInitial},
		{"ErrGap", ErrGap},
		{"ErrBackward", ErrBackward},
		{"ErrCalendar", ErrCalendar},
		{"ErrNotFound", ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestTimestampError_Message(t *testing.T) {
	err := NewTokenError(ErrInvalidToken, Token{Text: "-", Offset: 4}, NoUnit, nil)
	assert.Equal(t, `invalid timestamp: "-"`, err.Error())

	err = NewTokenError(ErrBackward, Token{Text: "1999"}, Year, nil)
	assert.Equal(t, `can't go backwards (year): "1999"`, err.Error())

	cause := &RangeError{Unit: Day, Value: 30, Min: 1, Max: 29}
	err = NewTokenError(ErrCalendar, Token{Text: "30"}, Day, cause)
	assert.Equal(t, `invalid calendar timestamp (day): "30": day 30 is out of range 1..29`, err.Error())
}

func TestTimestampError_IsAndUnwrap(t *testing.T) {
	cause := &RangeError{Unit: Hour, Value: 24, Min: 0, Max: 23}
	err := fmt.Errorf("resolving: %w", NewTokenError(ErrCalendar, Token{Text: "24"}, Hour, cause))

	assert.True(t, errors.Is(err, ErrCalendar))
	assert.False(t, errors.Is(err, ErrGap))

	var rangeErr *RangeError
	assert.True(t, errors.As(err, &rangeErr))
	assert.Equal(t, Hour, rangeErr.Unit)

	var tsErr *TimestampError
	assert.True(t, errors.As(err, &tsErr))
	assert.Equal(t, "24", tsErr.Text)
}

func TestIsConfigError(t *testing.T) {
	assert.True(t, IsConfigError(fmt.Errorf("x: %w", ErrInvalidPrecision)))
	assert.True(t, IsConfigError(&TimestampError{Kind: ErrMalformedInitial, Unit: NoUnit}))
	assert.True(t, IsConfigError(&TimestampError{Kind: ErrIncompleteInitial, Unit: NoUnit}))
	assert.False(t, IsConfigError(&TimestampError{Kind: ErrGap, Unit: Minute}))
	assert.False(t, IsConfigError(errors.New("io")))
}
