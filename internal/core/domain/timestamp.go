package domain

import (
	"fmt"
	"time"
)

// Year bounds accepted by Validate.
const (
	MinYear = 1
	MaxYear = 9999
)

// Timestamp is a fully resolved timestamp: year, month, day, hour,
// minute and second, all present. It carries no time zone.
type Timestamp [NumUnits]int

// NewTimestamp builds a Timestamp from its units.
func NewTimestamp(year, month, day, hour, minute, second int) Timestamp {
	return Timestamp{year, month, day, hour, minute, second}
}

// FromTime takes the wall-clock fields of t, ignoring its location
// and sub-second part.
func FromTime(t time.Time) Timestamp {
	y, m, d := t.Date()
	hh, mm, ss := t.Clock()
	return Timestamp{y, int(m), d, hh, mm, ss}
}

// Get returns the value of unit u.
func (t Timestamp) Get(u Unit) int { return t[u] }

// Time returns t as a UTC time.Time. The result is only meaningful
// when Validate returns nil.
func (t Timestamp) Time() time.Time {
	return time.Date(t[Year], time.Month(t[Month]), t[Day], t[Hour], t[Minute], t[Second], 0, time.UTC)
}

// Partial returns t as a complete Partial.
func (t Timestamp) Partial() Partial {
	var p Partial
	for i, v := range t {
		p[i] = Known(v)
	}
	return p
}

// Compare returns -1, 0 or +1 depending on whether t is before,
// equal to, or after other in calendar order.
func (t Timestamp) Compare(other Timestamp) int {
	for i := range t {
		switch {
		case t[i] < other[i]:
			return -1
		case t[i] > other[i]:
			return 1
		}
	}
	return 0
}

// String formats t as 2006-01-02T15:04:05.
func (t Timestamp) String() string {
	return fmt.Sprintf("%04d-%02d-%02dT%02d:%02d:%02d",
		t[Year], t[Month], t[Day], t[Hour], t[Minute], t[Second])
}

// Validate checks that t names a real calendar instant. The returned
// error is a *RangeError naming the first unit out of range.
func (t Timestamp) Validate() error {
	if err := checkRange(Year, t[Year], MinYear, MaxYear); err != nil {
		return err
	}
	if err := checkRange(Month, t[Month], 1, 12); err != nil {
		return err
	}
	if err := checkRange(Day, t[Day], 1, DaysIn(t[Year], t[Month])); err != nil {
		return err
	}
	if err := checkRange(Hour, t[Hour], 0, 23); err != nil {
		return err
	}
	if err := checkRange(Minute, t[Minute], 0, 59); err != nil {
		return err
	}
	return checkRange(Second, t[Second], 0, 59)
}

// DaysIn returns the number of days in the given month of year.
func DaysIn(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// RangeError reports a unit whose value falls outside its calendar range.
type RangeError struct {
	Unit  Unit
	Value int
	Min   int
	Max   int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s %d is out of range %d..%d", e.Unit, e.Value, e.Min, e.Max)
}

func checkRange(u Unit, v, lo, hi int) error {
	if v < lo || v > hi {
		return &RangeError{Unit: u, Value: v, Min: lo, Max: hi}
	}
	return nil
}
