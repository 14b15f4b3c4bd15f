package domain

import (
	"fmt"
	"strings"
)

// Precision is the finest unit a bare digit run may express.
// Year and month are always reachable and are never a precision.
type Precision string

const (
	PrecisionDay    Precision = "day"
	PrecisionHour   Precision = "hour"
	PrecisionMinute Precision = "minute"
	PrecisionSecond Precision = "second"
)

// DefaultPrecision is used when no precision is configured.
const DefaultPrecision = PrecisionMinute

// Precisions returns all valid precisions, coarsest first.
func Precisions() []Precision {
	return []Precision{PrecisionDay, PrecisionHour, PrecisionMinute, PrecisionSecond}
}

// ParsePrecision converts s into a Precision.
func ParsePrecision(s string) (Precision, error) {
	p := Precision(strings.ToLower(strings.TrimSpace(s)))
	if !p.IsValid() {
		return "", fmt.Errorf("%w: must be one of %s, got %q", ErrInvalidPrecision, precisionList(), s)
	}
	return p, nil
}

// IsValid reports whether p is a known precision.
func (p Precision) IsValid() bool {
	return p.Units() > 0
}

// Units returns how many units, counted from year, a digit run can
// populate at this precision. It returns 0 for an invalid precision.
func (p Precision) Units() int {
	switch p {
	case PrecisionDay:
		return 3
	case PrecisionHour:
		return 4
	case PrecisionMinute:
		return 5
	case PrecisionSecond:
		return 6
	default:
		return 0
	}
}

// Finest returns the finest unit reachable at this precision.
func (p Precision) Finest() Unit {
	return Unit(p.Units() - 1)
}

func precisionList() string {
	names := make([]string, 0, 4)
	for _, p := range Precisions() {
		names = append(names, string(p))
	}
	return strings.Join(names, ", ")
}
