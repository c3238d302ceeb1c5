// Package storage provides the persistence layer for the simulation server:
// the versioned snapshot contract and its SQLite-backed repositories. The
// repository pattern keeps the domain pure; nothing in here is imported by
// the sim engines.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/AVilaroig/MagnatePaquetes/server/internal/domain/company"
)

// ProducerVersion is stamped into every snapshot for forensics.
const ProducerVersion = "magnate-server/1.2.0"

// ErrCorruptData means the snapshot is unreadable or unmigratable. The
// caller falls back to a freshly-initialised state; the failed snapshot is
// discarded, never retried.
var ErrCorruptData = errors.New("corrupt snapshot data")

// Snapshot is the versioned, schema-tagged serialisation of the full
// company state. Payload is an lz4-compressed JSON document; Checksum is
// the blake3 digest of the compressed bytes. The encoding is an internal
// contract between Serialize and Deserialize and opaque to the host.
type Snapshot struct {
	SchemaVersion   int       `json:"schema_version"`
	SavedAt         time.Time `json:"saved_at"`
	ProducerVersion string    `json:"producer_version"`
	Checksum        string    `json:"checksum"`
	Payload         []byte    `json:"payload"`
}

// Serialize encodes the company state into a current-schema snapshot.
func Serialize(c *company.Company) (Snapshot, error) {
	doc, err := json.Marshal(c)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to encode company state: %w", err)
	}
	compressed, err := compress(doc)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{
		SchemaVersion:   CurrentSchemaVersion,
		SavedAt:         time.Now(),
		ProducerVersion: ProducerVersion,
		Checksum:        checksum(compressed),
		Payload:         compressed,
	}, nil
}

// Deserialize decodes a snapshot of any supported schema version into a
// current company state, running the migration chain as needed. Every
// failure mode wraps ErrCorruptData so the caller can fall back to a
// default state without inspecting details.
func Deserialize(snap Snapshot) (*company.Company, error) {
	if snap.Checksum != checksum(snap.Payload) {
		return nil, fmt.Errorf("%w: checksum mismatch", ErrCorruptData)
	}
	raw, err := decompress(snap.Payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptData, err)
	}

	var doc map[string]interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: payload is not a JSON document: %v", ErrCorruptData, err)
	}

	doc, err = Migrate(doc, snap.SchemaVersion)
	if err != nil {
		return nil, err
	}

	buf, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptData, err)
	}
	var c company.Company
	if err := json.Unmarshal(buf, &c); err != nil {
		return nil, fmt.Errorf("%w: migrated document does not decode: %v", ErrCorruptData, err)
	}

	if c.LastTick.IsZero() {
		c.LastTick = snap.SavedAt
	}
	if c.PurchasedUpgrades == nil {
		c.PurchasedUpgrades = []string{}
	}
	if c.RepeatableInstances == nil {
		c.RepeatableInstances = []company.UpgradeInstance{}
	}
	// The accumulator invariant (< 1) must hold even for hand-edited or
	// legacy data; keep only the fractional part, never mint packages.
	if c.Accumulator < 0 || c.Accumulator >= 1 {
		c.Accumulator -= math.Floor(c.Accumulator)
	}
	c.ClampAll()
	return &c, nil
}
