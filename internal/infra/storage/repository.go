package storage

import (
	"context"
	"time"
)

// JournalRecord mirrors the journal entry structure for persistence.
// The journal package should NOT import this; the adapter lives host-side.
type JournalRecord struct {
	ID        string    `json:"id" db:"id"`
	Timestamp time.Time `json:"timestamp" db:"timestamp"`
	EntryType string    `json:"entry_type" db:"entry_type"`
	Subject   string    `json:"subject" db:"subject"`
	Payload   string    `json:"payload" db:"payload"` // JSON-encoded entry payload
}

// SnapshotStore defines the interface for snapshot persistence. At most one
// snapshot is retained at a time: Save supersedes the previous one.
type SnapshotStore interface {
	// Save stores the snapshot, replacing any previous one.
	Save(ctx context.Context, snap Snapshot) error

	// Load retrieves the retained snapshot, or nil when none exists.
	Load(ctx context.Context) (*Snapshot, error)

	// Clear discards the retained snapshot.
	Clear(ctx context.Context) error
}

// JournalRepository defines the interface for the durable action journal.
type JournalRepository interface {
	// Append adds a record to the immutable ledger.
	Append(ctx context.Context, record JournalRecord) error

	// List retrieves the most recent records, newest first.
	List(ctx context.Context, limit int) ([]JournalRecord, error)

	// GetByType retrieves all records of a specific entry type.
	GetByType(ctx context.Context, entryType string) ([]JournalRecord, error)
}
