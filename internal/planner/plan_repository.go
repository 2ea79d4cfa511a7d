package planner

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// PlanRepository persists weekly plans. Each user has at most one active
// plan; generating a new one replaces the old.
type PlanRepository struct {
	db *sql.DB
}

// NewPlanRepository creates a new PlanRepository.
func NewPlanRepository(d *sql.DB) *PlanRepository {
	return &PlanRepository{db: d}
}

// Replace atomically swaps the user's active plan. Delete and insert run
// in one transaction so a failed insert leaves the previous plan intact.
func (r *PlanRepository) Replace(ctx context.Context, userID string, plan WeeklyPlan) error {
	data, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("failed to marshal plan: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin plan transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM meal_plans WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("failed to delete previous plan for user %s: %w", userID, err)
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO meal_plans (id, user_id, plan_data, created_at)
		VALUES (?, ?, ?, ?)`,
		plan.ID, userID, data, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to insert plan for user %s: %w", userID, err)
	}
	return tx.Commit()
}

// Get returns the user's active plan, or nil when none exists.
func (r *PlanRepository) Get(ctx context.Context, userID string) (*WeeklyPlan, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT plan_data FROM meal_plans WHERE user_id = ?`, userID)

	var data []byte
	err := row.Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get plan for user %s: %w", userID, err)
	}

	var plan WeeklyPlan
	if err := json.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("failed to unmarshal plan for user %s: %w", userID, err)
	}
	return &plan, nil
}

// RecentMealTitles returns the titles scheduled in the user's active plan,
// used to steer generation away from repeats. Missing plan means no titles.
func (r *PlanRepository) RecentMealTitles(ctx context.Context, userID string) ([]string, error) {
	plan, err := r.Get(ctx, userID)
	if err != nil || plan == nil {
		return nil, err
	}

	seen := map[string]bool{}
	var titles []string
	for _, day := range plan.Days {
		for _, meal := range []*MealSnapshot{day.Breakfast, day.Lunch, day.Dinner} {
			if meal == nil || seen[meal.Title] {
				continue
			}
			seen[meal.Title] = true
			titles = append(titles, meal.Title)
		}
	}
	return titles, nil
}
