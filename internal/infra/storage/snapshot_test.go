package storage

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AVilaroig/MagnatePaquetes/server/internal/domain/company"
)

func TestSerializeDeserializeRoundTrip(t *testing.T) {
	c := company.NewCompany(time.Unix(1700000000, 0).UTC())
	c.Money = 1234.5
	c.TotalPackagesShipped = 987
	c.WorkerCount = 4
	c.EthicsScore = 63
	c.Accumulator = 0.73
	c.PurchasedUpgrades = []string{"hire-courier", "hire-courier", "solar-depots"}
	c.RepeatableInstances = []company.UpgradeInstance{
		{InstanceID: "a", UpgradeID: "hire-courier", PurchasedAt: time.Unix(1700000100, 0).UTC()},
	}

	snap, err := Serialize(c)
	require.NoError(t, err)
	assert.Equal(t, CurrentSchemaVersion, snap.SchemaVersion)
	assert.Equal(t, ProducerVersion, snap.ProducerVersion)
	assert.NotEmpty(t, snap.Checksum)

	restored, err := Deserialize(snap)
	require.NoError(t, err)
	assert.Equal(t, c.Money, restored.Money)
	assert.Equal(t, c.TotalPackagesShipped, restored.TotalPackagesShipped)
	assert.Equal(t, c.WorkerCount, restored.WorkerCount)
	assert.Equal(t, c.EthicsScore, restored.EthicsScore)
	assert.InDelta(t, c.Accumulator, restored.Accumulator, 1e-9)
	assert.Equal(t, c.PurchasedUpgrades, restored.PurchasedUpgrades)
	require.Len(t, restored.RepeatableInstances, 1)
	assert.Equal(t, "hire-courier", restored.RepeatableInstances[0].UpgradeID)
	assert.True(t, c.LastTick.Equal(restored.LastTick))
}

func TestDeserializeChecksumMismatch(t *testing.T) {
	c := company.NewCompany(time.Now())
	snap, err := Serialize(c)
	require.NoError(t, err)

	snap.Payload[len(snap.Payload)-1] ^= 0xFF

	_, err = Deserialize(snap)
	assert.ErrorIs(t, err, ErrCorruptData)
}

func TestDeserializeGarbagePayload(t *testing.T) {
	garbage := []byte("not a compressed document")
	snap := Snapshot{
		SchemaVersion: CurrentSchemaVersion,
		SavedAt:       time.Now(),
		Checksum:      checksum(garbage),
		Payload:       garbage,
	}

	_, err := Deserialize(snap)
	assert.ErrorIs(t, err, ErrCorruptData)
}

func TestDeserializeLegacyV1Snapshot(t *testing.T) {
	legacy := map[string]interface{}{
		"total_packages_shipped": 500,
		"money":                  300.0,
		"employees":              2,
		"corruption":             40.0,
		"upgrades":               "hire-courier",
	}
	raw, err := json.Marshal(legacy)
	require.NoError(t, err)
	compressed, err := compress(raw)
	require.NoError(t, err)

	snap := Snapshot{
		SchemaVersion: 1,
		SavedAt:       time.Unix(1700000000, 0).UTC(),
		Checksum:      checksum(compressed),
		Payload:       compressed,
	}

	restored, err := Deserialize(snap)
	require.NoError(t, err)

	assert.Equal(t, int64(500), restored.TotalPackagesShipped)
	assert.Equal(t, 2, restored.WorkerCount)
	assert.Equal(t, 60.0, restored.EthicsScore)
	assert.Equal(t, []string{"hire-courier"}, restored.PurchasedUpgrades)
	assert.Equal(t, 300.0, restored.LifetimeEarnings)
	assert.True(t, restored.LastTick.Equal(snap.SavedAt), "legacy snapshots anchor the tick clock at save time")
}

func TestDeserializeRepairsAccumulator(t *testing.T) {
	doc := map[string]interface{}{
		"money":        100.0,
		"ethics_score": 50.0,
		"accumulator":  3.4,
	}
	raw, err := json.Marshal(doc)
	require.NoError(t, err)
	compressed, err := compress(raw)
	require.NoError(t, err)

	snap := Snapshot{
		SchemaVersion: CurrentSchemaVersion,
		SavedAt:       time.Now(),
		Checksum:      checksum(compressed),
		Payload:       compressed,
	}

	restored, err := Deserialize(snap)
	require.NoError(t, err)
	assert.InDelta(t, 0.4, restored.Accumulator, 1e-9, "only the fractional part survives, no minted packages")
}

func TestCompressRoundTrip(t *testing.T) {
	src := []byte(`{"money": 42, "repeated": "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"}`)

	compressed, err := compress(src)
	require.NoError(t, err)

	out, err := decompress(compressed)
	require.NoError(t, err)
	assert.Equal(t, src, out)
}
