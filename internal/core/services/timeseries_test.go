package services

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/shorttimeseries/internal/core/domain"
	"github.com/custodia-labs/shorttimeseries/internal/core/ports/driving"
)

func drain(t *testing.T, s driving.TimestampStream) ([]domain.Resolved, error) {
	t.Helper()
	var out []domain.Resolved
	for {
		res, err := s.Next()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, res)
	}
}

func timestamps(entries []domain.Resolved) []domain.Timestamp {
	out := make([]domain.Timestamp, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Timestamp)
	}
	return out
}

func parseAll(t *testing.T, input string, opts domain.ParseOptions) ([]domain.Resolved, error) {
	t.Helper()
	stream, err := NewTimeseriesService().Parse(strings.NewReader(input), opts)
	if err != nil {
		return nil, err
	}
	return drain(t, stream)
}

func TestParse_WithoutInitial(t *testing.T) {
	got, err := parseAll(t, "200002020202 1", domain.ParseOptions{})
	require.NoError(t, err)

	assert.Equal(t, []domain.Timestamp{
		ts(2000, 2, 2, 2, 2, 0),
		ts(2000, 2, 2, 3, 1, 0),
	}, timestamps(got))
	assert.Equal(t, "", got[1].Label)
}

func TestParse_InitialTimestamp(t *testing.T) {
	got, err := parseAll(t, "1", domain.ParseOptions{Initial: domain.InitialAt(ts(2000, 2, 2, 2, 2, 0))})
	require.NoError(t, err)

	assert.Equal(t, []domain.Timestamp{ts(2000, 2, 2, 3, 1, 0)}, timestamps(got))
}

func TestParse_InitialText(t *testing.T) {
	got, err := parseAll(t, "1", domain.ParseOptions{Initial: domain.InitialText("200002020202")})
	require.NoError(t, err)

	assert.Equal(t, []domain.Timestamp{ts(2000, 2, 2, 3, 1, 0)}, timestamps(got))
}

func TestParse_Labels(t *testing.T) {
	got, err := parseAll(t, "202001010000#start 30#mid\n#again 1#wrap", domain.ParseOptions{})
	require.NoError(t, err)

	require.Len(t, got, 4)
	assert.Equal(t, "start", got[0].Label)
	assert.Equal(t, ts(2020, 1, 1, 0, 30, 0), got[1].Timestamp)
	assert.Equal(t, "again", got[2].Label)
	assert.Equal(t, got[1].Timestamp, got[2].Timestamp)
	assert.Equal(t, ts(2020, 1, 1, 1, 1, 0), got[3].Timestamp)
	assert.Equal(t, "1#wrap", got[3].Token.Text)
}

func TestParse_Monotonic(t *testing.T) {
	input := "202312312358 59 1 5 0130 15 2 31 0101 010101 9"
	got, err := parseAll(t, input, domain.ParseOptions{ChunkSize: 3})
	require.NoError(t, err)
	require.Len(t, got, 11)

	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i].Timestamp.Compare(got[i-1].Timestamp), 0,
			"%s went back from %s", got[i].Timestamp, got[i-1].Timestamp)
	}
}

func TestParse_ChunkSizeDoesNotMatter(t *testing.T) {
	input := "  20000101000000#a \t 30 15#b\n0200 1 \n"
	reference, err := parseAll(t, input, domain.ParseOptions{Precision: domain.PrecisionSecond})
	require.NoError(t, err)

	for size := 1; size < 12; size++ {
		got, err := parseAll(t, input, domain.ParseOptions{Precision: domain.PrecisionSecond, ChunkSize: size})
		require.NoError(t, err)
		assert.Equal(t, reference, got, "chunk size %d", size)
	}
}

func TestParse_SecondCarryCascade(t *testing.T) {
	got, err := parseAll(t, "1", domain.ParseOptions{
		Precision: domain.PrecisionSecond,
		Initial:   domain.InitialAt(ts(2000, 12, 31, 23, 59, 59)),
	})
	require.NoError(t, err)

	assert.Equal(t, []domain.Timestamp{ts(2001, 1, 1, 0, 0, 1)}, timestamps(got))
}

func TestParse_DayPrecision(t *testing.T) {
	got, err := parseAll(t, "20000228 29 1 1231", domain.ParseOptions{Precision: domain.PrecisionDay})
	require.NoError(t, err)

	assert.Equal(t, []domain.Timestamp{
		ts(2000, 2, 28, 0, 0, 0),
		ts(2000, 2, 29, 0, 0, 0),
		ts(2000, 3, 1, 0, 0, 0),
		ts(2000, 12, 31, 0, 0, 0),
	}, timestamps(got))
}

func TestParse_Empty(t *testing.T) {
	for _, input := range []string{"", "   \n\t "} {
		got, err := parseAll(t, input, domain.ParseOptions{})
		require.NoError(t, err)
		assert.Empty(t, got)
	}
}

func TestParse_IncompleteFirstEntry(t *testing.T) {
	_, err := parseAll(t, "1", domain.ParseOptions{})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrIncompleteInitial))
	assert.True(t, domain.IsConfigError(err))
}

func TestParse_InvalidInitialText(t *testing.T) {
	tests := []struct {
		name    string
		initial string
		kind    error
	}{
		{"incomplete", "2", domain.ErrIncompleteInitial},
		{"two tokens", "200002020202 1", domain.ErrMalformedInitial},
		{"whitespace only", "  ", domain.ErrMalformedInitial},
		{"bad grammar", "2000-02-02", domain.ErrMalformedInitial},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTimeseriesService().Parse(strings.NewReader("1"), domain.ParseOptions{Initial: domain.InitialText(tt.initial)})
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.kind), "got %v", err)
			assert.True(t, domain.IsConfigError(err))
		})
	}
}

func TestParse_InvalidInitialTimestamp(t *testing.T) {
	_, err := NewTimeseriesService().Parse(strings.NewReader("1"), domain.ParseOptions{
		Initial: domain.InitialAt(ts(2000, 13, 1, 0, 0, 0)),
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrMalformedInitial))
}

func TestParse_InvalidPrecision(t *testing.T) {
	_, err := NewTimeseriesService().Parse(strings.NewReader("200002020202 1"), domain.ParseOptions{Precision: "foo"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidPrecision))

	_, err = NewTimeseriesService().ParsePartial(strings.NewReader("1"), domain.ParseOptions{Precision: "month"})
	assert.True(t, errors.Is(err, domain.ErrInvalidPrecision))
}

func TestParse_InvalidToken(t *testing.T) {
	got, err := parseAll(t, "200002020202 - 1", domain.ParseOptions{})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidToken))
	assert.Contains(t, err.Error(), "-")
	assert.Len(t, got, 1, "entries before the failure stay delivered")
}

func TestParse_Backward(t *testing.T) {
	_, err := parseAll(t, "19990101", domain.ParseOptions{
		Precision: domain.PrecisionDay,
		Initial:   domain.InitialAt(ts(2000, 2, 2, 2, 2, 2)),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBackward))
}

func TestParse_ErrorIsSticky(t *testing.T) {
	stream, err := NewTimeseriesService().Parse(strings.NewReader("200002020202 x 1"), domain.ParseOptions{})
	require.NoError(t, err)

	_, err = stream.Next()
	require.NoError(t, err)

	_, first := stream.Next()
	_, second := stream.Next()
	assert.Error(t, first)
	assert.Equal(t, first, second)
}

func TestParse_ReadErrorEndsStream(t *testing.T) {
	boom := errors.New("disk on fire")
	r := io.MultiReader(strings.NewReader("200002020202 "), iotest.ErrReader(boom))

	stream, err := NewTimeseriesService().Parse(r, domain.ParseOptions{})
	require.NoError(t, err)

	got, err := drain(t, stream)
	assert.Len(t, got, 1)
	assert.True(t, errors.Is(err, boom))
}

func TestParse_CancelDoesNotResolveHalfWrittenEntry(t *testing.T) {
	r := io.MultiReader(strings.NewReader("202001010000 12"), iotest.ErrReader(context.Canceled))

	stream, err := NewTimeseriesService().Parse(r, domain.ParseOptions{})
	require.NoError(t, err)

	got, err := drain(t, stream)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []domain.Timestamp{ts(2020, 1, 1, 0, 0, 0)}, timestamps(got))
}

func TestSplit_Service(t *testing.T) {
	s := NewTimeseriesService().Split(strings.NewReader("a  b"), domain.SplitOptions{ChunkSize: 1})
	assert.Equal(t, []string{"a", "b"}, collectTokens(t, s))
}

func TestTimeline_Count(t *testing.T) {
	entries := NewEntryReader(NewSplitter(strings.NewReader("200001010000 1 2")), domain.PrecisionMinute)
	tl := NewTimeline(entries, NewResolver())

	_, err := drain(t, tl)
	require.NoError(t, err)
	assert.Equal(t, 3, tl.Count())
}
