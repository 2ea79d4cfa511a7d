package pantry

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository is a database-backed repository for inventory items.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new Repository.
func NewRepository(d *sql.DB) *Repository {
	return &Repository{db: d}
}

// ListActive returns the user's non-depleted inventory items.
func (r *Repository) ListActive(ctx context.Context, userID string) ([]Item, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, quantity, unit, depleted, expires_at
		FROM inventory_items
		WHERE user_id = ? AND depleted = 0`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory for user %s: %w", userID, err)
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.Name, &it.Quantity, &it.Unit, &it.Depleted, &it.ExpiresAt); err != nil {
			return nil, fmt.Errorf("failed to scan inventory row: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// Save inserts a new inventory item for the user.
func (r *Repository) Save(ctx context.Context, userID string, it Item) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO inventory_items (user_id, name, quantity, unit, depleted, expires_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		userID, it.Name, it.Quantity, it.Unit, it.Depleted, it.ExpiresAt)
	if err != nil {
		return 0, fmt.Errorf("failed to save inventory item: %w", err)
	}
	return res.LastInsertId()
}
