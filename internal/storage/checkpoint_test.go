package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/Veraticus/gilded-rose/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCheckpointStorage(t *testing.T) (*SQLiteStorage, *CheckpointManager, string) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "inventory.db")
	store, err := NewSQLiteStorage(dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Migrate(context.Background()))

	manager, err := store.NewCheckpointManager()
	require.NoError(t, err)

	return store, manager, dbPath
}

func TestNewCheckpointManager_InMemory(t *testing.T) {
	store, err := NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	_, err = store.NewCheckpointManager()
	assert.ErrorIs(t, err, ErrInMemoryDatabase)
}

func TestCheckpointManager_CreateAndList(t *testing.T) {
	store, manager, _ := setupCheckpointStorage(t)
	defer func() { _ = store.Close() }()
	ctx := context.Background()

	items := createTestInventory(t, store,
		model.NewItem("Aged Brie", 2, 0),
		model.NewItem("Conjured Mana Cake", 3, 6),
	)
	_, err := store.SaveDay(ctx, items)
	require.NoError(t, err)

	info, err := manager.Create(ctx, "before-restock", "Before restocking")
	require.NoError(t, err)

	assert.Equal(t, "before-restock", info.ID)
	assert.Equal(t, "Before restocking", info.Description)
	assert.Equal(t, 2, info.Items)
	assert.Equal(t, 2, info.HistoryRows)
	assert.Equal(t, 1, info.Day)
	assert.Equal(t, ExpectedSchemaVersion, info.SchemaVersion)
	assert.Positive(t, info.FileSize)
	assert.False(t, info.IsAuto)

	_, err = manager.Create(ctx, "before-restock", "")
	assert.ErrorIs(t, err, ErrCheckpointExists)

	_, err = manager.Create(ctx, "../escape", "")
	assert.ErrorIs(t, err, ErrInvalidCheckpointID)

	list, err := manager.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "before-restock", list[0].ID)
}

func TestCheckpointManager_Restore(t *testing.T) {
	store, manager, dbPath := setupCheckpointStorage(t)
	ctx := context.Background()

	items := createTestInventory(t, store, model.NewItem("Aged Brie", 2, 0))
	_, err := manager.Create(ctx, "day-zero", "")
	require.NoError(t, err)

	items[0].SetState(model.State{SellIn: 1, Quality: 1})
	_, err = store.SaveDay(ctx, items)
	require.NoError(t, err)

	require.NoError(t, manager.Restore(ctx, "day-zero"))

	reopened, err := NewSQLiteStorage(dbPath)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	restored, err := reopened.GetItems(ctx)
	require.NoError(t, err)
	require.Len(t, restored, 1)
	assert.Equal(t, model.State{SellIn: 2, Quality: 0}, restored[0].State())

	day, err := reopened.GetCurrentDay(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, day)

	_, err = os.Stat(dbPath + ".restore-backup")
	assert.True(t, os.IsNotExist(err))
}

func TestCheckpointManager_RestoreMissing(t *testing.T) {
	store, manager, _ := setupCheckpointStorage(t)
	defer func() { _ = store.Close() }()

	assert.ErrorIs(t, manager.Restore(context.Background(), "nope"), ErrCheckpointNotFound)
	assert.ErrorIs(t, manager.Restore(context.Background(), "a/b"), ErrInvalidCheckpointID)
}

func TestCheckpointManager_Delete(t *testing.T) {
	store, manager, _ := setupCheckpointStorage(t)
	defer func() { _ = store.Close() }()
	ctx := context.Background()

	_, err := manager.Create(ctx, "scratch", "")
	require.NoError(t, err)

	require.NoError(t, manager.Delete(ctx, "scratch"))
	assert.ErrorIs(t, manager.Delete(ctx, "scratch"), ErrCheckpointNotFound)

	list, err := manager.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCheckpointManager_AutoCheckpointPrunes(t *testing.T) {
	store, manager, _ := setupCheckpointStorage(t)
	defer func() { _ = store.Close() }()
	ctx := context.Background()

	_, err := manager.Create(ctx, "manual", "")
	require.NoError(t, err)

	for i := 0; i < maxAutoCheckpoints+2; i++ {
		info, err := manager.AutoCheckpoint(ctx, "advance")
		require.NoError(t, err)
		assert.True(t, info.IsAuto)
	}

	list, err := manager.List(ctx)
	require.NoError(t, err)

	autoCount := 0
	manualCount := 0
	for _, cp := range list {
		if cp.IsAuto {
			autoCount++
		} else {
			manualCount++
		}
	}
	assert.Equal(t, maxAutoCheckpoints, autoCount)
	assert.Equal(t, 1, manualCount)
}
