// Package sqlite provides a SQLite-backed sync journal.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/aideon-labs/aideon-tools/internal/core/domain"
	"github.com/aideon-labs/aideon-tools/internal/core/ports/driven"
)

// Ensure Journal implements the interface.
var _ driven.SyncJournal = (*Journal)(nil)

// Journal records completed conversions in a SQLite database.
type Journal struct {
	db   *sql.DB
	path string
}

// NewJournal creates a journal at the specified data directory. If dataDir
// is empty, defaults to <config-dir>/data/journal.db.
func NewJournal(dataDir string) (*Journal, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolving home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".aideon-tools", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "journal.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	j := &Journal{
		db:   db,
		path: dbPath,
	}

	if err := j.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialising journal schema: %w", err)
	}

	return j, nil
}

// Close closes the database connection.
func (j *Journal) Close() error {
	return j.db.Close()
}

// Path returns the database file path.
func (j *Journal) Path() string {
	return j.path
}

func (j *Journal) migrate() error {
	_, err := j.db.Exec(`
		CREATE TABLE IF NOT EXISTS sync_entries (
			id TEXT PRIMARY KEY,
			from_format TEXT NOT NULL,
			to_format TEXT NOT NULL,
			input TEXT NOT NULL,
			output TEXT NOT NULL,
			nodes INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL,
			synced_at DATETIME NOT NULL
		)
	`)
	return err
}

// Record stores a journal entry. A missing ID or timestamp is filled in.
func (j *Journal) Record(ctx context.Context, entry driven.JournalEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.SyncedAt.IsZero() {
		entry.SyncedAt = time.Now().UTC()
	}

	_, err := j.db.ExecContext(ctx, `
		INSERT INTO sync_entries (id, from_format, to_format, input, output, nodes, duration_ms, synced_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, entry.ID, string(entry.From), string(entry.To), entry.Input, entry.Output,
		entry.Nodes, entry.Duration.Milliseconds(), entry.SyncedAt.UTC())

	if err != nil {
		return fmt.Errorf("recording sync entry: %w", err)
	}
	return nil
}

// List returns the most recent entries, newest first. A non-positive limit
// returns all entries.
func (j *Journal) List(ctx context.Context, limit int) ([]driven.JournalEntry, error) {
	if limit <= 0 {
		limit = -1 // SQLite treats a negative LIMIT as unbounded
	}

	rows, err := j.db.QueryContext(ctx, `
		SELECT id, from_format, to_format, input, output, nodes, duration_ms, synced_at
		FROM sync_entries
		ORDER BY synced_at DESC, id
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying sync entries: %w", err)
	}
	defer rows.Close()

	var entries []driven.JournalEntry //nolint:prealloc // size unknown from query
	for rows.Next() {
		var entry driven.JournalEntry
		var from, to string
		var durationMS int64
		var syncedAt sql.NullTime
		if err := rows.Scan(&entry.ID, &from, &to, &entry.Input, &entry.Output,
			&entry.Nodes, &durationMS, &syncedAt); err != nil {
			return nil, fmt.Errorf("scanning sync entry: %w", err)
		}

		entry.From = domain.DataFormat(from)
		entry.To = domain.DataFormat(to)
		entry.Duration = time.Duration(durationMS) * time.Millisecond
		if syncedAt.Valid {
			entry.SyncedAt = syncedAt.Time
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sync entries: %w", err)
	}

	return entries, nil
}
