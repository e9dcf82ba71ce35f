package logbook

import "errors"

var (
	// ErrNotFound means a date/index pair no longer resolves to an entry,
	// usually because the view raced a mutation. Callers reload and
	// re-render to recover.
	ErrNotFound = errors.New("log entry not found")

	// ErrInvalidEntry means the entry fails the model invariants
	// (empty text or non-positive duration).
	ErrInvalidEntry = errors.New("invalid log entry")

	// ErrNothingToClear is returned by ClearDay when the day has no entries.
	ErrNothingToClear = errors.New("no entries to clear")
)
