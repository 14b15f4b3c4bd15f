package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPart_UnknownIsNotZero(t *testing.T) {
	zero := Known(0)

	v, ok := zero.Value()
	assert.True(t, ok)
	assert.Equal(t, 0, v)

	_, ok = Unknown.Value()
	assert.False(t, ok)
	assert.NotEqual(t, zero, Unknown)
}

func TestPartial_Complete(t *testing.T) {
	full := NewTimestamp(2000, 1, 2, 3, 4, 5).Partial()
	assert.True(t, full.Complete())
	assert.False(t, full.Empty())

	var empty Partial
	assert.False(t, empty.Complete())
	assert.True(t, empty.Empty())

	assert.False(t, PartialOf(map[Unit]int{Minute: 3}).Complete())
}

func TestPartial_Timestamp(t *testing.T) {
	ts, ok := NewTimestamp(2000, 1, 2, 3, 4, 5).Partial().Timestamp()
	assert.True(t, ok)
	assert.Equal(t, NewTimestamp(2000, 1, 2, 3, 4, 5), ts)

	_, ok = PartialOf(map[Unit]int{Year: 2000}).Timestamp()
	assert.False(t, ok)
}

func TestPartial_String(t *testing.T) {
	p := PartialOf(map[Unit]int{Day: 1, Hour: 23})
	assert.Equal(t, "?-?-1 23:?:?", p.String())
}

func TestPartial_With(t *testing.T) {
	var p Partial
	q := p.With(Second, 7)

	assert.True(t, p.Empty())
	assert.Equal(t, Known(7), q.Get(Second))
}

func TestUnit_Min(t *testing.T) {
	assert.Equal(t, 0, Year.Min())
	assert.Equal(t, 1, Month.Min())
	assert.Equal(t, 1, Day.Min())
	assert.Equal(t, 0, Hour.Min())
	assert.Equal(t, 0, Minute.Min())
	assert.Equal(t, 0, Second.Min())
}

func TestUnit_String(t *testing.T) {
	assert.Equal(t, "year", Year.String())
	assert.Equal(t, "second", Second.String())
	assert.Equal(t, "unknown", NoUnit.String())
}
