package domain

// Unit identifies one of the six calendar units of a timestamp.
// Units are ordered from coarsest to finest.
type Unit int

const (
	Year Unit = iota
	Month
	Day
	Hour
	Minute
	Second
)

// NoUnit marks the absence of a unit, e.g. on errors not tied to one.
const NoUnit Unit = -1

// NumUnits is the number of units in a timestamp.
const NumUnits = 6

var unitNames = [NumUnits]string{"year", "month", "day", "hour", "minute", "second"}

// String returns the lowercase unit name.
func (u Unit) String() string {
	if u < 0 || int(u) >= NumUnits {
		return "unknown"
	}
	return unitNames[u]
}

// Min returns the calendar minimum of the unit: 1 for month and day, 0 otherwise.
func (u Unit) Min() int {
	if u == Month || u == Day {
		return 1
	}
	return 0
}

// Units returns all units, coarsest first.
func Units() [NumUnits]Unit {
	return [NumUnits]Unit{Year, Month, Day, Hour, Minute, Second}
}
