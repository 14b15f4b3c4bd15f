package services

import (
	"errors"
	"time"

	"github.com/custodia-labs/shorttimeseries/internal/core/domain"
	"github.com/custodia-labs/shorttimeseries/internal/logger"
)

// padDefaults are the values Pad gives to trailing unknown units.
var padDefaults = domain.NewTimestamp(0, 1, 1, 0, 0, 0)

// Pad fills the trailing run of unknown units with calendar defaults,
// stopping at the finest known unit. Unknown units left of it are gaps
// and stay unknown. A partial with no known units is returned unchanged.
func Pad(p domain.Partial) domain.Partial {
	if p.Empty() {
		return p
	}
	for u := domain.Second; u >= domain.Year; u-- {
		if p[u].IsKnown() {
			break
		}
		p[u] = domain.Known(padDefaults[u])
	}
	return p
}

// fillMode is the state threaded through the Fill scan.
type fillMode int

const (
	// copying compares each incoming unit with the current one.
	copying fillMode = iota
	// replacingRest takes every later unit verbatim from the input.
	replacingRest
	// replacingToMin resets every later unit to its calendar minimum.
	replacingToMin
)

// fillState is the scan state. carry is only meaningful in replacingToMin,
// where it names the unit that rolled under.
type fillState struct {
	mode  fillMode
	carry domain.Unit
}

// Fill resolves a padded partial against the current timestamp.
//
// Units are scanned coarsest first. Leading unknown units copy current.
// The first known unit that is greater than current makes the rest of the
// input verbatim; the first known unit that is smaller rolls under, resets
// finer units to their minimum and carries one into the next coarser unit.
// Year never rolls under, and no later unit may be smaller than current
// while the scan is still copying.
//
// Errors returned are *domain.TimestampError values without token text;
// the caller attaches it.
func Fill(current domain.Timestamp, incoming domain.Partial) (domain.Timestamp, error) {
	var out domain.Timestamp
	state := fillState{mode: copying, carry: domain.NoUnit}
	seen := false

	for _, u := range domain.Units() {
		v, known := incoming[u].Value()
		first := false
		if !known {
			if seen {
				return domain.Timestamp{}, unitError(domain.ErrGap, u, nil)
			}
			v = current[u]
		} else {
			first = !seen
			seen = true
		}

		switch state.mode {
		case replacingRest:
			out[u] = v
		case replacingToMin:
			out[u] = u.Min()
		default:
			switch {
			case v == current[u]:
				out[u] = v
			case v > current[u]:
				out[u] = v
				state.mode = replacingRest
			case first && u != domain.Year:
				out[u] = v
				state = fillState{mode: replacingToMin, carry: u}
			default:
				return domain.Timestamp{}, unitError(domain.ErrBackward, u, nil)
			}
		}
	}

	if state.mode == replacingToMin {
		return carryInto(out, state.carry-1)
	}
	if err := out.Validate(); err != nil {
		return domain.Timestamp{}, calendarError(err)
	}
	return out, nil
}

// carryInto adds one to unit u of ts. Month wraps into year directly;
// finer units use calendar arithmetic so month lengths and leap years
// are honoured.
func carryInto(ts domain.Timestamp, u domain.Unit) (domain.Timestamp, error) {
	logger.Debug("carry into %s from %s", u, ts)

	switch u {
	case domain.Year:
		ts[domain.Year]++
	case domain.Month:
		if ts[domain.Month] < 12 {
			ts[domain.Month]++
		} else {
			ts[domain.Month] = 1
			ts[domain.Year]++
		}
	default:
		// The candidate must be a real instant before time arithmetic
		// would silently normalise it.
		if err := ts.Validate(); err != nil {
			return domain.Timestamp{}, calendarError(err)
		}
		t := ts.Time()
		switch u {
		case domain.Day:
			t = t.AddDate(0, 0, 1)
		case domain.Hour:
			t = t.Add(time.Hour)
		case domain.Minute:
			t = t.Add(time.Minute)
		}
		ts = domain.FromTime(t)
	}

	if err := ts.Validate(); err != nil {
		return domain.Timestamp{}, calendarError(err)
	}
	return ts, nil
}

func unitError(kind error, u domain.Unit, cause error) *domain.TimestampError {
	return &domain.TimestampError{Kind: kind, Offset: -1, Unit: u, Err: cause}
}

func calendarError(err error) *domain.TimestampError {
	u := domain.NoUnit
	var rangeErr *domain.RangeError
	if errors.As(err, &rangeErr) {
		u = rangeErr.Unit
	}
	return unitError(domain.ErrCalendar, u, err)
}

// Resolver holds the current resolved timestamp and advances it with
// each entry. It starts uninitialized and becomes active exactly once,
// either through Seed or through the first entry it resolves.
// A Resolver is not safe for concurrent use.
type Resolver struct {
	current domain.Timestamp
	active  bool
}

// NewResolver returns an uninitialized Resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// Seed activates the resolver with an explicit initial timestamp.
func (r *Resolver) Seed(ts domain.Timestamp) error {
	if err := ts.Validate(); err != nil {
		return &domain.TimestampError{Kind: domain.ErrMalformedInitial, Text: ts.String(), Offset: -1, Unit: domain.NoUnit, Err: err}
	}
	r.current = ts
	r.active = true
	logger.Debug("seeded with %s", ts)
	return nil
}

// Current returns the current timestamp and whether the resolver is active.
func (r *Resolver) Current() (domain.Timestamp, bool) {
	return r.current, r.active
}

// Resolve pads the entry and resolves it against the current timestamp.
// The first entry of an uninitialized resolver must pad to a complete,
// valid timestamp and becomes the current timestamp as is.
func (r *Resolver) Resolve(entry domain.Entry) (domain.Resolved, error) {
	padded := Pad(entry.Partial)

	var (
		next domain.Timestamp
		err  error
	)
	if r.active {
		next, err = Fill(r.current, padded)
	} else {
		next, err = r.first(padded)
	}
	if err != nil {
		var tsErr *domain.TimestampError
		if errors.As(err, &tsErr) {
			tsErr.Text = entry.Token.Text
			tsErr.Offset = entry.Token.Offset
		}
		return domain.Resolved{}, err
	}

	r.current = next
	r.active = true
	return domain.Resolved{Timestamp: next, Label: entry.Label, Token: entry.Token}, nil
}

func (r *Resolver) first(padded domain.Partial) (domain.Timestamp, error) {
	ts, ok := padded.Timestamp()
	if !ok {
		return domain.Timestamp{}, unitError(domain.ErrIncompleteInitial, domain.NoUnit, nil)
	}
	if err := ts.Validate(); err != nil {
		return domain.Timestamp{}, calendarError(err)
	}
	logger.Debug("seeded from first entry: %s", ts)
	return ts, nil
}
