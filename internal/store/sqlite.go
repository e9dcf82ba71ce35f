package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/nhle/effortlog/internal/model"
)

// logsRecordKey names the single record holding the whole log collection.
const logsRecordKey = "effortLogs"

// SQLiteStore implements Store on a local SQLite database. The collection
// lives in one JSON record, so every write is a full replace.
type SQLiteStore struct {
	db *sqlx.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath, enables
// WAL mode, and runs any pending schema migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// WAL keeps reads cheap when a second instance has the file open.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// runMigrations checks the current schema version and applies any
// outstanding migrations in order.
func (s *SQLiteStore) runMigrations() error {
	currentVersion := 0

	var tableCount int
	err := s.db.Get(
		&tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	)
	if err != nil {
		return fmt.Errorf("checking schema_version table: %w", err)
	}

	if tableCount > 0 {
		err = s.db.Get(&currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version")
		if err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := s.db.Exec(m.sql); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
	}

	return nil
}

// GetLogs loads the persisted collection. A missing record returns an
// empty collection; a record that does not decode to a date-keyed object
// is rejected.
func (s *SQLiteStore) GetLogs(ctx context.Context) (model.LogCollection, error) {
	var raw string
	err := s.db.GetContext(
		ctx, &raw,
		"SELECT value FROM records WHERE key = ?", logsRecordKey,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.LogCollection{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading log record: %w", err)
	}

	var logs model.LogCollection
	if err := json.Unmarshal([]byte(raw), &logs); err != nil {
		return nil, fmt.Errorf("decoding log record: %w", err)
	}
	if logs == nil {
		logs = model.LogCollection{}
	}
	return logs, nil
}

// SetLogs replaces the persisted collection with logs.
func (s *SQLiteStore) SetLogs(ctx context.Context, logs model.LogCollection) error {
	if logs == nil {
		return fmt.Errorf("refusing to persist nil collection")
	}

	data, err := json.Marshal(logs)
	if err != nil {
		return fmt.Errorf("encoding log record: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO records (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at`,
		logsRecordKey, string(data), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("writing log record: %w", err)
	}
	return nil
}
