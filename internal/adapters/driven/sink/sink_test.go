package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/shorttimeseries/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/shorttimeseries/internal/core/domain"
)

func entry(ts domain.Timestamp, label, text string, offset int64) domain.Resolved {
	return domain.Resolved{
		Timestamp: ts,
		Label:     label,
		Token:     domain.Token{Text: text, Offset: offset},
	}
}

var (
	first  = entry(domain.NewTimestamp(2000, 2, 2, 2, 2, 0), "start", "200002020202#start", 0)
	second = entry(domain.NewTimestamp(2000, 2, 2, 2, 30, 0), "", "30", 19)
)

// ==================== Text Sink ====================

func TestTextSink_Plain(t *testing.T) {
	var buf bytes.Buffer
	s := NewTextSink(&buf)

	require.NoError(t, s.Write(context.Background(), first))
	require.NoError(t, s.Write(context.Background(), second))
	require.NoError(t, s.Close())

	assert.Equal(t, "2000-02-02T02:02:00 start\n2000-02-02T02:30:00\n", buf.String())
}

func TestTextSink_WithTokens(t *testing.T) {
	var buf bytes.Buffer
	s := NewTextSink(&buf, WithTokens(true))

	require.NoError(t, s.Write(context.Background(), second))

	assert.Equal(t, "2000-02-02T02:30:00 (30 @19)\n", buf.String())
}

func TestTextSink_Styled(t *testing.T) {
	var buf bytes.Buffer
	s := NewTextSink(&buf, WithStyles(NewStyles(&buf, nil, true)))

	require.NoError(t, s.Write(context.Background(), first))

	out := buf.String()
	assert.Contains(t, out, "\x1b[")
	assert.Contains(t, out, "2000-02-02T02:02:00")
	assert.Contains(t, out, "start")
}

func TestTextSink_NoColor(t *testing.T) {
	var buf bytes.Buffer
	s := NewTextSink(&buf, WithStyles(NewStyles(&buf, DefaultTheme(), false)))

	require.NoError(t, s.Write(context.Background(), first))

	assert.NotContains(t, buf.String(), "\x1b[")
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestTextSink_WriteError(t *testing.T) {
	s := NewTextSink(failWriter{})

	err := s.Write(context.Background(), first)
	assert.Error(t, err)
}

// ==================== JSON Sink ====================

func TestJSONSink(t *testing.T) {
	var buf bytes.Buffer
	s := NewJSONSink(&buf)

	require.NoError(t, s.Write(context.Background(), first))
	require.NoError(t, s.Write(context.Background(), second))
	require.NoError(t, s.Close())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &got))
	assert.Equal(t, "2000-02-02T02:02:00", got["timestamp"])
	assert.Equal(t, "start", got["label"])
	assert.Equal(t, "200002020202#start", got["token"])
	assert.Equal(t, float64(0), got["offset"])

	assert.JSONEq(t,
		`{"timestamp":"2000-02-02T02:30:00","label":"","token":"30","offset":19}`,
		lines[1])
}

func TestJSONSink_WriteError(t *testing.T) {
	s := NewJSONSink(failWriter{})

	assert.Error(t, s.Write(context.Background(), first))
}

// ==================== Store Sink ====================

// failingRunStore fails the operation selected by its fields.
type failingRunStore struct {
	*memory.RunStore
	beginErr  error
	appendErr error
}

func (f *failingRunStore) BeginRun(ctx context.Context, run domain.Run) (domain.Run, error) {
	if f.beginErr != nil {
		return domain.Run{}, f.beginErr
	}
	return f.RunStore.BeginRun(ctx, run)
}

func (f *failingRunStore) AppendEntry(ctx context.Context, runID string, seq int, e domain.Resolved) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	return f.RunStore.AppendEntry(ctx, runID, seq, e)
}

func TestStoreSink(t *testing.T) {
	store := memory.NewRunStore()
	ctx := context.Background()

	s, err := NewStoreSink(ctx, store, domain.Run{Source: "in.txt", Precision: domain.PrecisionMinute})
	require.NoError(t, err)
	assert.NotEmpty(t, s.Run().ID)
	assert.Equal(t, "in.txt", s.Run().Source)

	require.NoError(t, s.Write(ctx, first))
	require.NoError(t, s.Write(ctx, second))
	require.NoError(t, s.Close())
	assert.Equal(t, 2, s.Count())

	entries, err := store.Entries(ctx, s.Run().ID)
	require.NoError(t, err)
	assert.Equal(t, []domain.Resolved{first, second}, entries)

	runs, err := store.ListRuns(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, domain.PrecisionMinute, runs[0].Precision)
}

func TestStoreSink_BeginError(t *testing.T) {
	store := &failingRunStore{RunStore: memory.NewRunStore(), beginErr: errors.New("locked")}

	_, err := NewStoreSink(context.Background(), store, domain.Run{})
	assert.EqualError(t, err, "locked")
}

func TestStoreSink_AppendError(t *testing.T) {
	store := &failingRunStore{RunStore: memory.NewRunStore()}
	ctx := context.Background()

	s, err := NewStoreSink(ctx, store, domain.Run{})
	require.NoError(t, err)

	store.appendErr = errors.New("locked")
	assert.Error(t, s.Write(ctx, first))
	assert.Equal(t, 0, s.Count())
}
