// Package journal provides the append-only record of simulation actions.
// Every purchase, narrative event, ending transition and reset lands here;
// the websocket hub and the storage layer both consume it.
package journal

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// EntryType defines the category of a journal entry.
type EntryType string

const (
	EntryManualShip     EntryType = "MANUAL_SHIP"
	EntryPurchase       EntryType = "UPGRADE_PURCHASED"
	EntryEventTriggered EntryType = "EVENT_TRIGGERED"
	EntryChoiceResolved EntryType = "CHOICE_RESOLVED"
	EntryEndingReached  EntryType = "ENDING_REACHED"
	EntryReset          EntryType = "SIMULATION_RESET"
)

// Entry is an immutable record of one simulation action.
type Entry struct {
	ID        string      `json:"id"`
	Timestamp time.Time   `json:"timestamp"`
	Type      EntryType   `json:"type"`
	Subject   string      `json:"subject"` // Upgrade id, event id, choice id or ending name
	Payload   interface{} `json:"payload"` // Entry-specific data
}

// Persister defines how an entry is durably stored.
type Persister interface {
	Append(entry Entry) error
}

// Log is the in-memory append-only journal with an optional write-through
// persister.
type Log struct {
	mu        sync.RWMutex
	entries   []Entry
	persister Persister
}

// NewLog creates a new journal with an optional persister.
func NewLog(persister Persister) *Log {
	return &Log{
		entries:   make([]Entry, 0),
		persister: persister,
	}
}

// Record builds an entry with a fresh id and appends it.
func (l *Log) Record(entryType EntryType, subject string, payload interface{}) Entry {
	entry := Entry{
		ID:        uuid.NewString(),
		Timestamp: time.Now(),
		Type:      entryType,
		Subject:   subject,
		Payload:   payload,
	}
	l.Append(entry)
	return entry
}

// Append adds an entry to the log. Entries are immutable once appended.
func (l *Log) Append(entry Entry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, entry)

	if l.persister != nil {
		go func(e Entry) {
			_ = l.persister.Append(e)
		}(entry)
	}
}

// Replay returns the full history for consumers that track their own
// high-water mark.
func (l *Log) Replay() []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.entries
}

// GetByType returns all entries of a specific type.
func (l *Log) GetByType(entryType EntryType) []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var result []Entry
	for _, e := range l.entries {
		if e.Type == entryType {
			result = append(result, e)
		}
	}
	return result
}

// Len returns the number of entries recorded so far.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}
