package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Veraticus/gilded-rose/internal/common"
	"github.com/Veraticus/gilded-rose/internal/model"
)

// AddItem inserts item and sets its ID and CreatedAt.
func (s *SQLiteStorage) AddItem(ctx context.Context, item *model.Item) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateNewItem(item); err != nil {
		return err
	}

	return s.addItemTx(ctx, s.db, item)
}

func (s *SQLiteStorage) addItemTx(ctx context.Context, q queryable, item *model.Item) error {
	result, err := q.ExecContext(ctx, `
		INSERT INTO items (name, sell_in, quality)
		VALUES (?, ?, ?)
	`, item.Name, item.SellIn, item.Quality)
	if err != nil {
		return fmt.Errorf("failed to add item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get item id: %w", err)
	}

	return q.QueryRowContext(ctx, `SELECT id, created_at FROM items WHERE id = ?`, id).
		Scan(&item.ID, &item.CreatedAt)
}

// GetItems returns the whole inventory in insertion order.
func (s *SQLiteStorage) GetItems(ctx context.Context) ([]model.Item, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return s.getItemsTx(ctx, s.db)
}

func (s *SQLiteStorage) getItemsTx(ctx context.Context, q queryable) ([]model.Item, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, name, sell_in, quality, created_at
		FROM items
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	defer func() { _ = rows.Close() }()

	items := []model.Item{}
	for rows.Next() {
		var item model.Item
		if err := rows.Scan(&item.ID, &item.Name, &item.SellIn, &item.Quality, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate items: %w", err)
	}

	return items, nil
}

// GetItem returns a single item by id.
func (s *SQLiteStorage) GetItem(ctx context.Context, id int64) (*model.Item, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateID(id); err != nil {
		return nil, err
	}

	var item model.Item
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, sell_in, quality, created_at
		FROM items
		WHERE id = ?
	`, id).Scan(&item.ID, &item.Name, &item.SellIn, &item.Quality, &item.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("item %d: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}

	return &item, nil
}

// DeleteItem removes an item and its history.
func (s *SQLiteStorage) DeleteItem(ctx context.Context, id int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateID(id); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("item %d: %w", id, common.ErrNotFound)
	}

	return nil
}

// ReplaceItems discards the stored inventory and its history, stores items
// in order and resets the simulated day to zero. IDs and CreatedAt are set
// on the given items.
func (s *SQLiteStorage) ReplaceItems(ctx context.Context, items []model.Item) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if items == nil {
		return fmt.Errorf("%w: items", ErrNilParameter)
	}
	for i := range items {
		if err := validateNewItem(&items[i]); err != nil {
			return fmt.Errorf("item at index %d: %w", i, err)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, query := range []string{
		`DELETE FROM item_history`,
		`DELETE FROM items`,
		`UPDATE simulation_state SET current_day = 0, updated_at = CURRENT_TIMESTAMP WHERE id = 1`,
	} {
		if _, err := tx.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to clear inventory: %w", err)
		}
	}

	for i := range items {
		if err := s.addItemTx(ctx, tx, &items[i]); err != nil {
			return fmt.Errorf("item at index %d: %w", i, err)
		}
	}

	return tx.Commit()
}
