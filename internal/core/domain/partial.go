package domain

import (
	"strconv"
	"strings"
)

// Part is an optional unit value. The zero value is unknown.
type Part struct {
	value int
	known bool
}

// Unknown is a Part with no value.
var Unknown = Part{}

// Known returns a Part holding v.
func Known(v int) Part {
	return Part{value: v, known: true}
}

// Value returns the value and whether it is known.
func (p Part) Value() (int, bool) {
	return p.value, p.known
}

// IsKnown reports whether the part holds a value.
func (p Part) IsKnown() bool { return p.known }

// String renders the value, or "?" when unknown.
func (p Part) String() string {
	if !p.known {
		return "?"
	}
	return strconv.Itoa(p.value)
}

// Partial is a timestamp whose units may be unknown, coarsest first.
type Partial [NumUnits]Part

// PartialOf builds a Partial from a map of known units.
func PartialOf(units map[Unit]int) Partial {
	var p Partial
	for u, v := range units {
		p[u] = Known(v)
	}
	return p
}

// Get returns the part for unit u.
func (p Partial) Get(u Unit) Part { return p[u] }

// With returns a copy of p with unit u set to v.
func (p Partial) With(u Unit, v int) Partial {
	p[u] = Known(v)
	return p
}

// Complete reports whether every unit is known.
func (p Partial) Complete() bool {
	for _, part := range p {
		if !part.known {
			return false
		}
	}
	return true
}

// Empty reports whether no unit is known.
func (p Partial) Empty() bool {
	for _, part := range p {
		if part.known {
			return false
		}
	}
	return true
}

// Timestamp converts a complete Partial into a Timestamp.
// The second return value is false when any unit is unknown.
func (p Partial) Timestamp() (Timestamp, bool) {
	if !p.Complete() {
		return Timestamp{}, false
	}
	var ts Timestamp
	for i, part := range p {
		ts[i] = part.value
	}
	return ts, true
}

// String renders the partial as "year-month-day hour:minute:second",
// using "?" for unknown units.
func (p Partial) String() string {
	var b strings.Builder
	seps := [NumUnits]string{"", "-", "-", " ", ":", ":"}
	for i, part := range p {
		b.WriteString(seps[i])
		b.WriteString(part.String())
	}
	return b.String()
}
