// Package testutil provides test helpers for working with a seeded inventory
// database.
package testutil

import (
	"context"
	"testing"

	"github.com/Veraticus/gilded-rose/internal/engine"
	"github.com/Veraticus/gilded-rose/internal/model"
	"github.com/Veraticus/gilded-rose/internal/service"
	"github.com/Veraticus/gilded-rose/internal/storage"
)

// TestDB represents a test database with associated test utilities.
type TestDB struct {
	Storage service.Storage
	t       *testing.T
	Items   []model.Item
}

// SetupTestDB creates a new in-memory test database seeded with items.
// It automatically handles migrations and cleanup.
//
// Example:
//
//	db := testutil.SetupTestDB(t, testutil.NewInventory().WithStandardStock().Build()...)
func SetupTestDB(t *testing.T, items ...model.Item) *TestDB {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Logf("failed to close test database: %v", err)
		}
	})

	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	seeded := make([]model.Item, 0, len(items))
	for _, item := range items {
		if err := store.AddItem(ctx, &item); err != nil {
			t.Fatalf("failed to seed item %q: %v", item.Name, err)
		}
		seeded = append(seeded, item)
	}

	return &TestDB{
		Storage: store,
		Items:   seeded,
		t:       t,
	}
}

// MustFindItem returns the first seeded item with the given name or fails
// the test.
func (db *TestDB) MustFindItem(name string) model.Item {
	db.t.Helper()
	for _, item := range db.Items {
		if item.Name == name {
			return item
		}
	}
	db.t.Fatalf("item %q not found in test data", name)
	return model.Item{}
}

// AdvanceDays ages the stored inventory the way the advance command does,
// saving every day, and returns the final day number.
func (db *TestDB) AdvanceDays(days int) int {
	db.t.Helper()
	ctx := context.Background()

	items, err := db.Storage.GetItems(ctx)
	if err != nil {
		db.t.Fatalf("failed to load items: %v", err)
	}

	var current int
	err = engine.Default().Simulate(ctx, items, days, func(s engine.Snapshot) error {
		if s.Day == 0 {
			return nil
		}
		saved, saveErr := db.Storage.SaveDay(ctx, s.Items)
		if saveErr != nil {
			return saveErr
		}
		current = saved
		return nil
	})
	if err != nil {
		db.t.Fatalf("failed to advance inventory: %v", err)
	}

	return current
}
