package storage

import (
	"context"
	"fmt"

	"github.com/Veraticus/gilded-rose/internal/common"
	"github.com/Veraticus/gilded-rose/internal/model"
)

// GetCurrentDay returns how many days the stored inventory has been advanced.
func (s *SQLiteStorage) GetCurrentDay(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	return s.getCurrentDayTx(ctx, s.db)
}

func (s *SQLiteStorage) getCurrentDayTx(ctx context.Context, q queryable) (int, error) {
	var day int
	if err := q.QueryRowContext(ctx, `SELECT current_day FROM simulation_state WHERE id = 1`).Scan(&day); err != nil {
		return 0, fmt.Errorf("failed to get current day: %w", err)
	}
	return day, nil
}

// SaveDay writes the state of items after one simulated day, records it in
// the history and increments the day counter, all in one transaction. It
// returns the new day number.
func (s *SQLiteStorage) SaveDay(ctx context.Context, items []model.Item) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateStoredItems(items); err != nil {
		return 0, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	day, err := s.getCurrentDayTx(ctx, tx)
	if err != nil {
		return 0, err
	}
	day++

	for _, item := range items {
		result, err := tx.ExecContext(ctx, `
			UPDATE items
			SET sell_in = ?, quality = ?, updated_at = CURRENT_TIMESTAMP
			WHERE id = ?
		`, item.SellIn, item.Quality, item.ID)
		if err != nil {
			return 0, fmt.Errorf("failed to update item %d: %w", item.ID, err)
		}
		if affected, err := result.RowsAffected(); err != nil {
			return 0, fmt.Errorf("failed to check update result: %w", err)
		} else if affected == 0 {
			return 0, fmt.Errorf("item %d: %w", item.ID, common.ErrNotFound)
		}

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO item_history (item_id, day, sell_in, quality)
			VALUES (?, ?, ?, ?)
		`, item.ID, day, item.SellIn, item.Quality); err != nil {
			return 0, fmt.Errorf("failed to record history for item %d: %w", item.ID, err)
		}
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE simulation_state
		SET current_day = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = 1
	`, day); err != nil {
		return 0, fmt.Errorf("failed to update current day: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit day %d: %w", day, err)
	}

	return day, nil
}

// GetHistory returns the recorded end-of-day states of an item, oldest first.
func (s *SQLiteStorage) GetHistory(ctx context.Context, itemID int64) ([]model.HistoryEntry, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateID(itemID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT item_id, day, sell_in, quality, recorded_at
		FROM item_history
		WHERE item_id = ?
		ORDER BY day
	`, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []model.HistoryEntry
	for rows.Next() {
		var e model.HistoryEntry
		if err := rows.Scan(&e.ItemID, &e.Day, &e.SellIn, &e.Quality, &e.RecordedAt); err != nil {
			return nil, fmt.Errorf("failed to scan history: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate history: %w", err)
	}

	return entries, nil
}
