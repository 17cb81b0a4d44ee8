// Package service defines the interfaces for all application services.
package service

import (
	"context"

	"github.com/Veraticus/gilded-rose/internal/model"
)

// Storage defines the contract for our persistence layer.
type Storage interface {
	// Item operations
	AddItem(ctx context.Context, item *model.Item) error
	GetItems(ctx context.Context) ([]model.Item, error)
	GetItem(ctx context.Context, id int64) (*model.Item, error)
	DeleteItem(ctx context.Context, id int64) error
	ReplaceItems(ctx context.Context, items []model.Item) error

	// Simulation progress
	GetCurrentDay(ctx context.Context) (int, error)
	SaveDay(ctx context.Context, items []model.Item) (int, error)
	GetHistory(ctx context.Context, itemID int64) ([]model.HistoryEntry, error)

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}
