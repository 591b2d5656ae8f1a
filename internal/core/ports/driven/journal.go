package driven

import (
	"context"
	"time"

	"github.com/aideon-labs/aideon-tools/internal/core/domain"
)

// JournalEntry records one completed conversion.
type JournalEntry struct {
	// ID is the unique identifier for the entry.
	ID string

	// From and To are the source and target formats.
	From domain.DataFormat
	To   domain.DataFormat

	// Input and Output are the file paths involved.
	Input  string
	Output string

	// Nodes is the number of nodes converted.
	Nodes int

	// Duration is how long the conversion took.
	Duration time.Duration

	// SyncedAt is when the conversion completed.
	SyncedAt time.Time
}

// SyncJournal persists conversion history.
type SyncJournal interface {
	// Record appends an entry to the journal.
	Record(ctx context.Context, entry JournalEntry) error

	// List returns the most recent entries, newest first.
	List(ctx context.Context, limit int) ([]JournalEntry, error)
}

// SettingsStore persists tool configuration.
type SettingsStore interface {
	// Load returns the persisted settings, or defaults when none exist.
	Load() (domain.Settings, error)

	// Save persists the settings.
	Save(settings domain.Settings) error
}
