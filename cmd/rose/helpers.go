package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/Veraticus/gilded-rose/internal/common"
	"github.com/Veraticus/gilded-rose/internal/fixture"
	"github.com/Veraticus/gilded-rose/internal/model"
	"github.com/Veraticus/gilded-rose/internal/storage"
)

// openStorage opens the configured database and brings its schema up to date.
func (a *app) openStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	store, err := storage.NewSQLiteStorage(a.cfg.Database.Path)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

func closeStorage(store *storage.SQLiteStorage) {
	if err := store.Close(); err != nil {
		common.LogError(err, "Failed to close database", common.Fields{"database": store.Path()})
	}
}

// loadInventory reads a fixture from path, falling back to the configured
// fixture and then to the shop's standard inventory.
func (a *app) loadInventory(path string) ([]model.Item, error) {
	if path == "" {
		path = a.cfg.Simulation.Fixture
	}
	if path == "" {
		return fixture.Default(), nil
	}
	return fixture.Load(path)
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, common.NewUserError(fmt.Sprintf("invalid item id %q", arg), err)
	}
	return id, nil
}

func parseInt(name, arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, common.NewUserError(fmt.Sprintf("%s must be a whole number, got %q", name, arg), err)
	}
	return n, nil
}

func formatFileSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), "KMGTPE"[exp])
}
