package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AVilaroig/MagnatePaquetes/server/internal/domain/company"
)

func openTestDB(t *testing.T) (*SQLiteSnapshotStore, *SQLiteJournalRepository) {
	t.Helper()
	db, err := InitSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewSQLiteSnapshotStore(db), NewSQLiteJournalRepository(db)
}

func TestSnapshotStoreEmptyLoad(t *testing.T) {
	store, _ := openTestDB(t)

	snap, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, snap)
}

func TestSnapshotStoreSaveSupersedes(t *testing.T) {
	store, _ := openTestDB(t)
	ctx := context.Background()

	first, err := Serialize(company.NewCompany(time.Unix(1000, 0).UTC()))
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, first))

	c := company.NewCompany(time.Unix(2000, 0).UTC())
	c.Money = 999
	second, err := Serialize(c)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, second))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, second.Checksum, loaded.Checksum, "the latest save wins")

	restored, err := Deserialize(*loaded)
	require.NoError(t, err)
	assert.Equal(t, 999.0, restored.Money)
}

func TestSnapshotStoreClear(t *testing.T) {
	store, _ := openTestDB(t)
	ctx := context.Background()

	snap, err := Serialize(company.NewCompany(time.Now()))
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, snap))
	require.NoError(t, store.Clear(ctx))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestJournalRepositoryAppendAndList(t *testing.T) {
	_, repo := openTestDB(t)
	ctx := context.Background()

	base := time.Unix(1000, 0).UTC()
	for i, entryType := range []string{"MANUAL_SHIP", "UPGRADE_PURCHASED", "MANUAL_SHIP"} {
		require.NoError(t, repo.Append(ctx, JournalRecord{
			ID:        string(rune('a' + i)),
			Timestamp: base.Add(time.Duration(i) * time.Second),
			EntryType: entryType,
			Subject:   "s",
			Payload:   "{}",
		}))
	}

	recent, err := repo.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "c", recent[0].ID, "newest first")

	ships, err := repo.GetByType(ctx, "MANUAL_SHIP")
	require.NoError(t, err)
	require.Len(t, ships, 2)
	assert.Equal(t, "a", ships[0].ID, "oldest first within a type")
}
