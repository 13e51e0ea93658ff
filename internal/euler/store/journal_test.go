package store

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msto63/mRW/foundation/core/errors"
)

func newTestJournal(t *testing.T) *SQLiteJournal {
	t.Helper()
	j, err := NewSQLiteJournal(Config{Path: filepath.Join(t.TempDir(), "nested", "history.db")})
	require.NoError(t, err)
	t.Cleanup(func() { j.Close() })
	return j
}

func journals(t *testing.T) map[string]Journal {
	return map[string]Journal{
		"sqlite": newTestJournal(t),
		"memory": NewMemoryJournal(),
	}
}

func TestRecordAndGet(t *testing.T) {
	for name, j := range journals(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			ts := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

			entry := &Entry{
				Timestamp:  ts,
				Calculator: "discount",
				Inputs:     map[string]string{"price": "100", "percent": "20"},
				Result:     json.RawMessage(`{"final_price":"80"}`),
			}
			require.NoError(t, j.Record(ctx, entry))
			assert.NotEmpty(t, entry.ID)
			assert.Equal(t, StatusOK, entry.Status)

			got, err := j.Get(ctx, entry.ID)
			require.NoError(t, err)
			assert.Equal(t, "discount", got.Calculator)
			assert.Equal(t, "20", got.Inputs["percent"])
			assert.True(t, got.Timestamp.Equal(ts))
			assert.JSONEq(t, `{"final_price":"80"}`, string(got.Result))
		})
	}
}

func TestGetMissing(t *testing.T) {
	for name, j := range journals(t) {
		t.Run(name, func(t *testing.T) {
			_, err := j.Get(context.Background(), "does-not-exist")
			require.Error(t, err)
			assert.True(t, errors.IsNotFound(err))
		})
	}
}

func TestRecordRequiresCalculator(t *testing.T) {
	for name, j := range journals(t) {
		t.Run(name, func(t *testing.T) {
			err := j.Record(context.Background(), &Entry{})
			assert.True(t, errors.IsInvalidInput(err))
		})
	}
}

func TestQuery(t *testing.T) {
	for name, j := range journals(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			base := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

			seed := []*Entry{
				{Timestamp: base, Calculator: "age", Status: StatusOK},
				{Timestamp: base.Add(time.Hour), Calculator: "ratio", Status: StatusDeclined, ErrorCode: "DIVISION_BY_ZERO"},
				{Timestamp: base.Add(2 * time.Hour), Calculator: "age", Status: StatusOK},
				{Timestamp: base.Add(3 * time.Hour), Calculator: "tip", Status: StatusOK},
			}
			for _, e := range seed {
				require.NoError(t, j.Record(ctx, e))
			}

			all, err := j.Query(ctx, Filter{})
			require.NoError(t, err)
			require.Len(t, all, 4)
			assert.Equal(t, "tip", all[0].Calculator, "newest first")

			ages, err := j.Query(ctx, Filter{Calculator: "age"})
			require.NoError(t, err)
			assert.Len(t, ages, 2)

			declined, err := j.Query(ctx, Filter{Status: StatusDeclined})
			require.NoError(t, err)
			require.Len(t, declined, 1)
			assert.Equal(t, "DIVISION_BY_ZERO", declined[0].ErrorCode)

			window, err := j.Query(ctx, Filter{Start: base.Add(30 * time.Minute), End: base.Add(2 * time.Hour)})
			require.NoError(t, err)
			assert.Len(t, window, 2)

			page, err := j.Query(ctx, Filter{Limit: 2, Offset: 1})
			require.NoError(t, err)
			require.Len(t, page, 2)
			assert.Equal(t, "age", page[0].Calculator)
			assert.Equal(t, "ratio", page[1].Calculator)

			tail, err := j.Query(ctx, Filter{Offset: 3})
			require.NoError(t, err)
			require.Len(t, tail, 1)
			assert.True(t, tail[0].Timestamp.Equal(base))
		})
	}
}

func TestStats(t *testing.T) {
	for name, j := range journals(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, j.Record(ctx, &Entry{Calculator: "gpa"}))
			require.NoError(t, j.Record(ctx, &Entry{Calculator: "gpa", Status: StatusDeclined}))
			require.NoError(t, j.Record(ctx, &Entry{Calculator: "average"}))

			stats, err := j.Stats(ctx)
			require.NoError(t, err)
			assert.Equal(t, int64(3), stats.Total)
			assert.Equal(t, int64(2), stats.ByCalculator["gpa"])
			assert.Equal(t, int64(2), stats.ByStatus["ok"])
			assert.Equal(t, int64(1), stats.ByStatus["declined"])
		})
	}
}

func TestPrune(t *testing.T) {
	for name, j := range journals(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, j.Record(ctx, &Entry{Calculator: "age", Timestamp: time.Now().Add(-48 * time.Hour)}))
			require.NoError(t, j.Record(ctx, &Entry{Calculator: "age"}))

			removed, err := j.Prune(ctx, 24*time.Hour)
			require.NoError(t, err)
			assert.Equal(t, int64(1), removed)

			left, err := j.Query(ctx, Filter{})
			require.NoError(t, err)
			assert.Len(t, left, 1)

			assert.NoError(t, j.Vacuum(ctx))
			assert.NoError(t, j.Ping(ctx))
		})
	}
}

func TestReopenKeepsEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	ctx := context.Background()

	j, err := NewSQLiteJournal(Config{Path: path})
	require.NoError(t, err)
	entry := &Entry{Calculator: "zodiac", Inputs: map[string]string{"date": "2000-05-17"}}
	require.NoError(t, j.Record(ctx, entry))
	require.NoError(t, j.Close())

	reopened, err := NewSQLiteJournal(Config{Path: path})
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Get(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, "2000-05-17", got.Inputs["date"])
}
