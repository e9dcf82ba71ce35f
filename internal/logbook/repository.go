// Package logbook owns the in-memory log collection and is the only
// mutation path to it. Every mutating operation re-persists the whole
// collection through the store before reporting success; views read
// defensive copies and never touch the map directly.
package logbook

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/nhle/effortlog/internal/model"
	"github.com/nhle/effortlog/internal/store"
)

// Repository caches the full LogCollection in memory and synchronizes it
// with the backing store. It is single-goroutine by construction: all
// calls come from the Bubble Tea update loop.
type Repository struct {
	store store.Store
	logs  model.LogCollection
}

// New creates a repository over s with an empty collection. Call Load
// before first use.
func New(s store.Store) *Repository {
	return &Repository{
		store: s,
		logs:  model.LogCollection{},
	}
}

// Load fetches the collection from the store. On a read error or a
// structurally invalid record it resets to an empty collection and
// returns the cause as a non-fatal warning alongside the reset state.
func (r *Repository) Load(ctx context.Context) error {
	logs, err := r.store.GetLogs(ctx)
	if err != nil {
		r.logs = model.LogCollection{}
		return fmt.Errorf("loading logs: %w", err)
	}

	// Drop malformed day keys rather than failing the whole load.
	for date, day := range logs {
		if !model.ValidDateKey(date) || len(day) == 0 {
			delete(logs, date)
		}
	}

	r.logs = logs
	return nil
}

// Collection returns a deep copy of the whole collection.
func (r *Repository) Collection() model.LogCollection {
	return r.logs.Clone()
}

// EntriesForDate returns a defensive copy of the day's entries, sorted by
// CreatedAt. The copy is empty (non-nil) when the day is absent.
func (r *Repository) EntriesForDate(date string) model.DayLog {
	day := r.logs[date].Clone()
	if day == nil {
		return model.DayLog{}
	}
	sort.SliceStable(day, func(i, j int) bool {
		return day[i].CreatedAt < day[j].CreatedAt
	})
	return day
}

// EntryCount returns the total number of entries across all days.
func (r *Repository) EntryCount() int {
	return r.logs.EntryCount()
}

// Add appends entry to the day's list, creating the day key if needed.
// A zero CreatedAt is replaced with a fresh stamp.
func (r *Repository) Add(ctx context.Context, date string, entry model.LogEntry) error {
	if !model.ValidDateKey(date) {
		return fmt.Errorf("%w: bad date %q", ErrInvalidEntry, date)
	}
	entry.Text = strings.TrimSpace(entry.Text)
	if !entry.Validate() {
		return ErrInvalidEntry
	}
	if entry.CreatedAt == 0 {
		entry.CreatedAt = model.NowStamp()
	}

	r.logs[date] = append(r.logs[date], entry)
	return r.persist(ctx)
}

// Update replaces the entry at (date, index), preserving the original
// CreatedAt unless the replacement carries its own.
func (r *Repository) Update(ctx context.Context, date string, index int, entry model.LogEntry) error {
	day, ok := r.logs[date]
	if !ok || index < 0 || index >= len(day) {
		return fmt.Errorf("%w: %s[%d]", ErrNotFound, date, index)
	}
	entry.Text = strings.TrimSpace(entry.Text)
	if !entry.Validate() {
		return ErrInvalidEntry
	}
	if entry.CreatedAt == 0 {
		entry.CreatedAt = day[index].CreatedAt
	}

	day[index] = entry
	return r.persist(ctx)
}

// Delete removes the entry at (date, index). The day key disappears when
// its last entry is removed.
func (r *Repository) Delete(ctx context.Context, date string, index int) error {
	day, ok := r.logs[date]
	if !ok || index < 0 || index >= len(day) {
		return fmt.Errorf("%w: %s[%d]", ErrNotFound, date, index)
	}

	r.logs[date] = append(day[:index], day[index+1:]...)
	if len(r.logs[date]) == 0 {
		delete(r.logs, date)
	}
	return r.persist(ctx)
}

// ClearDay deletes the whole day. An absent day reports ErrNothingToClear
// so the caller can tell the user rather than silently succeed.
func (r *Repository) ClearDay(ctx context.Context, date string) error {
	if _, ok := r.logs[date]; !ok {
		return ErrNothingToClear
	}
	delete(r.logs, date)
	return r.persist(ctx)
}

// ReorderNoop reports whether dropping the entry at fromIndex onto the
// insertion slot toIndex leaves the order unchanged. Because the entry is
// removed before re-insertion, both the slot at the entry and the slot
// just after it resolve to the same position.
func ReorderNoop(fromIndex, toIndex int) bool {
	return toIndex < 0 || toIndex == fromIndex || toIndex == fromIndex+1
}

// ReorderWithinDay moves the entry at fromIndex to the insertion slot
// toIndex within the same day. A no-op target returns immediately without
// persisting. The whole day gets fresh sequential stamps to lock in the
// new order across reloads.
func (r *Repository) ReorderWithinDay(ctx context.Context, date string, fromIndex, toIndex int) error {
	day, ok := r.logs[date]
	if !ok || fromIndex < 0 || fromIndex >= len(day) {
		return fmt.Errorf("%w: %s[%d]", ErrNotFound, date, fromIndex)
	}
	if ReorderNoop(fromIndex, toIndex) {
		return nil
	}
	if toIndex > len(day) {
		toIndex = len(day)
	}

	entry := day[fromIndex]
	day = append(day[:fromIndex], day[fromIndex+1:]...)

	insertAt := toIndex
	if toIndex > fromIndex {
		insertAt = toIndex - 1
	}
	day = append(day[:insertAt], append(model.DayLog{entry}, day[insertAt:]...)...)

	base := model.NowStamp()
	for i := range day {
		day[i].CreatedAt = base + int64(i)
	}
	r.logs[date] = day

	return r.persist(ctx)
}

// MoveAcrossDays removes the entry at (sourceDate, sourceIndex) and
// appends it to targetDate with a fresh stamp, so it becomes the freshest
// entry of the target day.
func (r *Repository) MoveAcrossDays(ctx context.Context, sourceDate string, sourceIndex int, targetDate string) error {
	day, ok := r.logs[sourceDate]
	if !ok || sourceIndex < 0 || sourceIndex >= len(day) {
		return fmt.Errorf("%w: %s[%d]", ErrNotFound, sourceDate, sourceIndex)
	}
	if !model.ValidDateKey(targetDate) {
		return fmt.Errorf("%w: bad date %q", ErrInvalidEntry, targetDate)
	}
	if sourceDate == targetDate {
		return nil
	}

	entry := day[sourceIndex]
	entry.CreatedAt = model.NowStamp()

	r.logs[sourceDate] = append(day[:sourceIndex], day[sourceIndex+1:]...)
	if len(r.logs[sourceDate]) == 0 {
		delete(r.logs, sourceDate)
	}
	r.logs[targetDate] = append(r.logs[targetDate], entry)

	return r.persist(ctx)
}

// CopyDay appends copies of every entry of sourceDate to targetDate with
// fresh sequential stamps. Used by copy-to-next-business-day.
func (r *Repository) CopyDay(ctx context.Context, sourceDate, targetDate string) (int, error) {
	source := r.logs[sourceDate]
	if len(source) == 0 {
		return 0, fmt.Errorf("%w: %s", ErrNotFound, sourceDate)
	}
	if !model.ValidDateKey(targetDate) {
		return 0, fmt.Errorf("%w: bad date %q", ErrInvalidEntry, targetDate)
	}

	base := model.NowStamp()
	for i, e := range source {
		e.CreatedAt = base + int64(i)
		r.logs[targetDate] = append(r.logs[targetDate], e)
	}
	return len(source), r.persist(ctx)
}

// persist writes the full collection back to the store.
func (r *Repository) persist(ctx context.Context) error {
	if err := r.store.SetLogs(ctx, r.logs); err != nil {
		return fmt.Errorf("persisting logs: %w", err)
	}
	return nil
}
