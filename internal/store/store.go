package store

import (
	"context"

	"github.com/nhle/effortlog/internal/model"
)

// Store defines the persistence interface for the log collection. The
// collection is stored as a single record: every write replaces the whole
// state, and concurrent writers are last-write-wins by design.
type Store interface {
	// GetLogs returns the persisted collection. A missing record yields an
	// empty, non-nil collection.
	GetLogs(ctx context.Context) (model.LogCollection, error)

	// SetLogs replaces the persisted collection.
	SetLogs(ctx context.Context, logs model.LogCollection) error

	Close() error
}
