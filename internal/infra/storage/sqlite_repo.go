package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// snapshotSlot is the single row key for the retained snapshot. The engine
// runs one simulation per host, so one slot is all we need.
const snapshotSlot = "PRIMARY"

// SQLiteSnapshotStore implements SnapshotStore for SQLite.
type SQLiteSnapshotStore struct {
	db *sql.DB
}

func NewSQLiteSnapshotStore(db *sql.DB) *SQLiteSnapshotStore {
	return &SQLiteSnapshotStore{db: db}
}

func (r *SQLiteSnapshotStore) Save(ctx context.Context, snap Snapshot) error {
	query := `
		INSERT INTO snapshots (slot, schema_version, saved_at, producer_version, checksum, payload)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(slot) DO UPDATE SET
			schema_version=excluded.schema_version,
			saved_at=excluded.saved_at,
			producer_version=excluded.producer_version,
			checksum=excluded.checksum,
			payload=excluded.payload
	`
	_, err := r.db.ExecContext(ctx, query,
		snapshotSlot, snap.SchemaVersion, snap.SavedAt, snap.ProducerVersion,
		snap.Checksum, snap.Payload,
	)
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

func (r *SQLiteSnapshotStore) Load(ctx context.Context) (*Snapshot, error) {
	query := `SELECT schema_version, saved_at, producer_version, checksum, payload FROM snapshots WHERE slot = ?`
	var snap Snapshot
	err := r.db.QueryRowContext(ctx, query, snapshotSlot).Scan(
		&snap.SchemaVersion, &snap.SavedAt, &snap.ProducerVersion, &snap.Checksum, &snap.Payload,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}
	return &snap, nil
}

func (r *SQLiteSnapshotStore) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM snapshots WHERE slot = ?`, snapshotSlot)
	return err
}

// ---------------------------------------------------------
// SQLiteJournalRepository
// ---------------------------------------------------------

// SQLiteJournalRepository implements JournalRepository for SQLite.
type SQLiteJournalRepository struct {
	db *sql.DB
}

func NewSQLiteJournalRepository(db *sql.DB) *SQLiteJournalRepository {
	return &SQLiteJournalRepository{db: db}
}

func (r *SQLiteJournalRepository) Append(ctx context.Context, record JournalRecord) error {
	query := `
		INSERT INTO journal (id, timestamp, entry_type, subject, payload)
		VALUES (?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		record.ID, record.Timestamp, record.EntryType, record.Subject, record.Payload,
	)
	if err != nil {
		return fmt.Errorf("failed to append journal record: %w", err)
	}
	return nil
}

func (r *SQLiteJournalRepository) getMany(ctx context.Context, query string, args ...interface{}) ([]JournalRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []JournalRecord
	for rows.Next() {
		var rec JournalRecord
		if err := rows.Scan(&rec.ID, &rec.Timestamp, &rec.EntryType, &rec.Subject, &rec.Payload); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *SQLiteJournalRepository) List(ctx context.Context, limit int) ([]JournalRecord, error) {
	query := `SELECT id, timestamp, entry_type, subject, payload FROM journal ORDER BY timestamp DESC LIMIT ?`
	return r.getMany(ctx, query, limit)
}

func (r *SQLiteJournalRepository) GetByType(ctx context.Context, entryType string) ([]JournalRecord, error) {
	query := `SELECT id, timestamp, entry_type, subject, payload FROM journal WHERE entry_type = ? ORDER BY timestamp ASC`
	return r.getMany(ctx, query, entryType)
}
