package logbook_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/effortlog/internal/logbook"
	"github.com/nhle/effortlog/internal/model"
	"github.com/nhle/effortlog/tests/testutil"
)

func newRepo(t *testing.T) *logbook.Repository {
	t.Helper()
	r := logbook.New(testutil.NewTestStore(t))
	require.NoError(t, r.Load(context.Background()))
	return r
}

func TestAddThenRead(t *testing.T) {
	ctx := context.Background()
	r := newRepo(t)

	entry := model.LogEntry{Text: "🚀 Fix PROJ-12", DurationHours: 1.5}
	require.NoError(t, r.Add(ctx, "2024-03-04", entry))

	day := r.EntriesForDate("2024-03-04")
	require.Len(t, day, 1)
	assert.Equal(t, "🚀 Fix PROJ-12", day[0].Text)
	assert.Equal(t, 1.5, day[0].DurationHours)
	assert.NotZero(t, day[0].CreatedAt, "add assigns a stamp")
}

func TestAddRejectsInvalidEntries(t *testing.T) {
	ctx := context.Background()
	r := newRepo(t)

	assert.ErrorIs(t, r.Add(ctx, "2024-03-04", model.LogEntry{Text: "   ", DurationHours: 1}), logbook.ErrInvalidEntry)
	assert.ErrorIs(t, r.Add(ctx, "2024-03-04", model.LogEntry{Text: "x", DurationHours: 0}), logbook.ErrInvalidEntry)
	assert.ErrorIs(t, r.Add(ctx, "not-a-date", model.LogEntry{Text: "x", DurationHours: 1}), logbook.ErrInvalidEntry)
}

func TestEntriesForDateReturnsDefensiveCopy(t *testing.T) {
	ctx := context.Background()
	r := newRepo(t)
	require.NoError(t, r.Add(ctx, "2024-03-04", model.LogEntry{Text: "a", DurationHours: 1}))

	day := r.EntriesForDate("2024-03-04")
	day[0].Text = "mutated"

	assert.Equal(t, "a", r.EntriesForDate("2024-03-04")[0].Text)
	assert.Empty(t, r.EntriesForDate("2024-01-01"))
}

func TestUpdatePreservesCreatedAt(t *testing.T) {
	ctx := context.Background()
	r := newRepo(t)
	require.NoError(t, r.Add(ctx, "2024-03-04", model.LogEntry{Text: "a", DurationHours: 1, CreatedAt: 42}))

	require.NoError(t, r.Update(ctx, "2024-03-04", 0, model.LogEntry{Text: "b", DurationHours: 2}))
	got := r.EntriesForDate("2024-03-04")[0]
	assert.Equal(t, "b", got.Text)
	assert.Equal(t, int64(42), got.CreatedAt)

	require.NoError(t, r.Update(ctx, "2024-03-04", 0, model.LogEntry{Text: "c", DurationHours: 2, CreatedAt: 99}))
	assert.Equal(t, int64(99), r.EntriesForDate("2024-03-04")[0].CreatedAt)

	assert.ErrorIs(t, r.Update(ctx, "2024-03-04", 5, model.LogEntry{Text: "d", DurationHours: 1}), logbook.ErrNotFound)
	assert.ErrorIs(t, r.Update(ctx, "2024-12-31", 0, model.LogEntry{Text: "d", DurationHours: 1}), logbook.ErrNotFound)
}

func TestDeleteRemovesEmptyDayKey(t *testing.T) {
	ctx := context.Background()
	r := newRepo(t)
	require.NoError(t, r.Add(ctx, "2024-03-04", model.LogEntry{Text: "a", DurationHours: 1, CreatedAt: 1}))
	require.NoError(t, r.Add(ctx, "2024-03-04", model.LogEntry{Text: "b", DurationHours: 1, CreatedAt: 2}))

	require.NoError(t, r.Delete(ctx, "2024-03-04", 0))
	day := r.EntriesForDate("2024-03-04")
	require.Len(t, day, 1)
	assert.Equal(t, "b", day[0].Text)
	assert.Contains(t, r.Collection(), "2024-03-04")

	require.NoError(t, r.Delete(ctx, "2024-03-04", 0))
	assert.NotContains(t, r.Collection(), "2024-03-04", "empty day key must vanish")

	assert.ErrorIs(t, r.Delete(ctx, "2024-03-04", 0), logbook.ErrNotFound)
}

func TestClearDay(t *testing.T) {
	ctx := context.Background()
	r := newRepo(t)
	require.NoError(t, r.Add(ctx, "2024-03-04", model.LogEntry{Text: "a", DurationHours: 1}))

	require.NoError(t, r.ClearDay(ctx, "2024-03-04"))
	assert.NotContains(t, r.Collection(), "2024-03-04")

	assert.ErrorIs(t, r.ClearDay(ctx, "2024-03-04"), logbook.ErrNothingToClear)
}

func TestReorderWithinDay(t *testing.T) {
	ctx := context.Background()
	r := newRepo(t)
	for i, text := range []string{"a", "b", "c", "d"} {
		require.NoError(t, r.Add(ctx, "2024-03-04", model.LogEntry{
			Text: text, DurationHours: 1, CreatedAt: int64(i + 1),
		}))
	}

	// Move "a" to the slot after "c" (insertion index 3).
	require.NoError(t, r.ReorderWithinDay(ctx, "2024-03-04", 0, 3))
	texts := entryTexts(r.EntriesForDate("2024-03-04"))
	assert.Equal(t, []string{"b", "c", "a", "d"}, texts)

	// Stamps are reassigned sequentially so the order survives reload.
	day := r.EntriesForDate("2024-03-04")
	for i := 1; i < len(day); i++ {
		assert.Greater(t, day[i].CreatedAt, day[i-1].CreatedAt)
	}
}

func TestReorderNoopSkipsPersist(t *testing.T) {
	// Dropping onto the entry's own slot, or the slot right after it,
	// resolves to the same position once the removal shift is applied.
	assert.True(t, logbook.ReorderNoop(2, 2))
	assert.True(t, logbook.ReorderNoop(2, 3))
	assert.True(t, logbook.ReorderNoop(2, -1))
	assert.False(t, logbook.ReorderNoop(2, 0))
	assert.False(t, logbook.ReorderNoop(2, 4))

	ctx := context.Background()
	r := newRepo(t)
	for i, text := range []string{"a", "b", "c"} {
		require.NoError(t, r.Add(ctx, "2024-03-04", model.LogEntry{
			Text: text, DurationHours: 1, CreatedAt: int64(i + 1),
		}))
	}
	before := r.EntriesForDate("2024-03-04")

	require.NoError(t, r.ReorderWithinDay(ctx, "2024-03-04", 1, 2))
	assert.Equal(t, before, r.EntriesForDate("2024-03-04"), "no-op must not touch order or stamps")
}

func TestMoveAcrossDaysConservesEntryCount(t *testing.T) {
	ctx := context.Background()
	r := newRepo(t)
	require.NoError(t, r.Add(ctx, "2024-03-04", model.LogEntry{Text: "a", DurationHours: 1, CreatedAt: 1}))
	require.NoError(t, r.Add(ctx, "2024-03-04", model.LogEntry{Text: "b", DurationHours: 2, CreatedAt: 2}))
	require.NoError(t, r.Add(ctx, "2024-03-05", model.LogEntry{Text: "c", DurationHours: 3, CreatedAt: 3}))

	total := r.EntryCount()
	require.NoError(t, r.MoveAcrossDays(ctx, "2024-03-04", 0, "2024-03-05"))

	assert.Equal(t, total, r.EntryCount(), "move conserves total entry count")
	assert.Equal(t, []string{"b"}, entryTexts(r.EntriesForDate("2024-03-04")))
	assert.Equal(t, []string{"c", "a"}, entryTexts(r.EntriesForDate("2024-03-05")), "moved entry lands last")

	// Emptying the source day removes its key.
	require.NoError(t, r.MoveAcrossDays(ctx, "2024-03-04", 0, "2024-03-05"))
	assert.NotContains(t, r.Collection(), "2024-03-04")

	assert.ErrorIs(t, r.MoveAcrossDays(ctx, "2024-03-04", 0, "2024-03-05"), logbook.ErrNotFound)
}

func TestRoundTripThroughStore(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewTestStore(t)

	r := logbook.New(s)
	require.NoError(t, r.Load(ctx))
	require.NoError(t, r.Add(ctx, "2024-03-04", model.LogEntry{Text: "🚀 Fix PROJ-12", DurationHours: 1.5, CreatedAt: 10}))
	require.NoError(t, r.Add(ctx, "2024-06-01", model.LogEntry{Text: "review", DurationHours: 0.5, CreatedAt: 20}))

	fresh := logbook.New(s)
	require.NoError(t, fresh.Load(ctx))
	assert.Equal(t, r.Collection(), fresh.Collection())
}

func TestCopyDay(t *testing.T) {
	ctx := context.Background()
	r := newRepo(t)
	require.NoError(t, r.Add(ctx, "2024-03-01", model.LogEntry{Text: "a", DurationHours: 1, CreatedAt: 1}))
	require.NoError(t, r.Add(ctx, "2024-03-01", model.LogEntry{Text: "b", DurationHours: 2, CreatedAt: 2}))

	n, err := r.CopyDay(ctx, "2024-03-01", "2024-03-04")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"a", "b"}, entryTexts(r.EntriesForDate("2024-03-04")))
	assert.Len(t, r.EntriesForDate("2024-03-01"), 2, "source day untouched")

	_, err = r.CopyDay(ctx, "2024-12-25", "2024-12-26")
	assert.ErrorIs(t, err, logbook.ErrNotFound)
}

func entryTexts(day model.DayLog) []string {
	out := make([]string, len(day))
	for i, e := range day {
		out[i] = e.Text
	}
	return out
}
