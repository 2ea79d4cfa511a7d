package shopping

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// Repository persists derived shopping lists.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new Repository.
func NewRepository(d *sql.DB) *Repository {
	return &Repository{db: d}
}

// Save stores a shopping list for the user.
func (r *Repository) Save(ctx context.Context, userID string, list List) error {
	items, err := json.Marshal(list.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal shopping list items: %w", err)
	}
	var planID any
	if list.MealPlanID != "" {
		planID = list.MealPlanID
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO shopping_lists (id, user_id, meal_plan_id, items, total, savings, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		list.ID, userID, planID, string(items), list.Total, list.Savings, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to save shopping list for user %s: %w", userID, err)
	}
	return nil
}

// Get retrieves one of the user's shopping lists by id. Returns nil when
// not found.
func (r *Repository) Get(ctx context.Context, userID, listID string) (*List, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, meal_plan_id, items, total, savings
		FROM shopping_lists WHERE id = ? AND user_id = ?`, listID, userID)

	var list List
	var planID sql.NullString
	var items string
	err := row.Scan(&list.ID, &planID, &items, &list.Total, &list.Savings)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get shopping list %s: %w", listID, err)
	}
	list.MealPlanID = planID.String
	if err := json.Unmarshal([]byte(items), &list.Items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal shopping list items: %w", err)
	}
	return &list, nil
}
