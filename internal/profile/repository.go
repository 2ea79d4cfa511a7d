package profile

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// Repository is a database-backed repository for profiles and the records
// hanging off them.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new Repository.
func NewRepository(d *sql.DB) *Repository {
	return &Repository{db: d}
}

// Get retrieves a user's constraint profile. Returns nil when the user has
// no profile yet.
func (r *Repository) Get(ctx context.Context, userID string) (*ConstraintProfile, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT user_id, dietary_goal, household_size, cooking_style,
		       weekday_cook_minutes, weekend_cook_minutes, weekly_budget,
		       skip_breakfast, skip_lunch, skip_dinner,
		       base_calories, base_protein, base_carbs, base_fat, updated_at
		FROM user_profiles WHERE user_id = ?`, userID)

	var p ConstraintProfile
	err := row.Scan(
		&p.UserID, &p.Goal, &p.HouseholdSize, &p.CookingStyle,
		&p.WeekdayCookMinutes, &p.WeekendCookMinutes, &p.WeeklyBudget,
		&p.SkipBreakfast, &p.SkipLunch, &p.SkipDinner,
		&p.BaseCalories, &p.BaseProtein, &p.BaseCarbs, &p.BaseFat, &p.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile for user %s: %w", userID, err)
	}
	return &p, nil
}

// Save upserts a user's constraint profile.
func (r *Repository) Save(ctx context.Context, p ConstraintProfile) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO user_profiles (
			user_id, dietary_goal, household_size, cooking_style,
			weekday_cook_minutes, weekend_cook_minutes, weekly_budget,
			skip_breakfast, skip_lunch, skip_dinner,
			base_calories, base_protein, base_carbs, base_fat, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			dietary_goal = excluded.dietary_goal,
			household_size = excluded.household_size,
			cooking_style = excluded.cooking_style,
			weekday_cook_minutes = excluded.weekday_cook_minutes,
			weekend_cook_minutes = excluded.weekend_cook_minutes,
			weekly_budget = excluded.weekly_budget,
			skip_breakfast = excluded.skip_breakfast,
			skip_lunch = excluded.skip_lunch,
			skip_dinner = excluded.skip_dinner,
			base_calories = excluded.base_calories,
			base_protein = excluded.base_protein,
			base_carbs = excluded.base_carbs,
			base_fat = excluded.base_fat,
			updated_at = excluded.updated_at`,
		p.UserID, p.Goal, p.HouseholdSize, p.CookingStyle,
		p.WeekdayCookMinutes, p.WeekendCookMinutes, p.WeeklyBudget,
		p.SkipBreakfast, p.SkipLunch, p.SkipDinner,
		p.BaseCalories, p.BaseProtein, p.BaseCarbs, p.BaseFat, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to save profile for user %s: %w", p.UserID, err)
	}
	return nil
}

// ListAllergens returns the user's allergen ingredient names.
func (r *Repository) ListAllergens(ctx context.Context, userID string) ([]string, error) {
	return r.listStrings(ctx, `SELECT ingredient FROM allergens WHERE user_id = ?`, userID)
}

// ListPreferences returns the user's liked or disliked ingredient names.
func (r *Repository) ListPreferences(ctx context.Context, userID string, liked bool) ([]string, error) {
	return r.listStrings(ctx,
		`SELECT ingredient FROM ingredient_preferences WHERE user_id = ? AND liked = ?`,
		userID, liked)
}

// ListPreferredChains returns the user's preferred store chains.
func (r *Repository) ListPreferredChains(ctx context.Context, userID string) ([]string, error) {
	return r.listStrings(ctx, `SELECT chain FROM preferred_chains WHERE user_id = ?`, userID)
}

// ListRecentSwipes returns the user's most recent swipe verdicts, newest first.
func (r *Repository) ListRecentSwipes(ctx context.Context, userID string, limit int) ([]SwipeRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT recipe_title, ingredients, accepted, created_at
		FROM swipe_history WHERE user_id = ?
		ORDER BY created_at DESC LIMIT ?`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list swipes for user %s: %w", userID, err)
	}
	defer rows.Close()

	var swipes []SwipeRecord
	for rows.Next() {
		var s SwipeRecord
		var ingredientsJSON string
		if err := rows.Scan(&s.RecipeTitle, &ingredientsJSON, &s.Accepted, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan swipe row: %w", err)
		}
		if err := json.Unmarshal([]byte(ingredientsJSON), &s.Ingredients); err != nil {
			return nil, fmt.Errorf("failed to unmarshal swipe ingredients: %w", err)
		}
		swipes = append(swipes, s)
	}
	return swipes, rows.Err()
}

// RecordSwipe stores one accept/reject verdict.
func (r *Repository) RecordSwipe(ctx context.Context, userID string, s SwipeRecord) error {
	ingredientsJSON, err := json.Marshal(s.Ingredients)
	if err != nil {
		return fmt.Errorf("failed to marshal swipe ingredients: %w", err)
	}
	ts := s.CreatedAt
	if ts.IsZero() {
		ts = time.Now().UTC()
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO swipe_history (user_id, recipe_title, ingredients, accepted, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		userID, s.RecipeTitle, string(ingredientsJSON), s.Accepted, ts)
	if err != nil {
		return fmt.Errorf("failed to record swipe: %w", err)
	}
	return nil
}

// ListExtraCalories returns the user's recurring extra-calorie declarations.
func (r *Repository) ListExtraCalories(ctx context.Context, userID string) ([]ExtraCalories, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT description, calories_per_week, protein_per_week, carbs_per_week, fat_per_week
		FROM extra_calories WHERE user_id = ?`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list extra calories for user %s: %w", userID, err)
	}
	defer rows.Close()

	var extras []ExtraCalories
	for rows.Next() {
		var e ExtraCalories
		if err := rows.Scan(&e.Description, &e.CaloriesPerWeek, &e.ProteinPerWeek, &e.CarbsPerWeek, &e.FatPerWeek); err != nil {
			return nil, fmt.Errorf("failed to scan extra calories row: %w", err)
		}
		extras = append(extras, e)
	}
	return extras, rows.Err()
}

// ListFixedMeals returns the user's fixed recurring meals.
func (r *Repository) ListFixedMeals(ctx context.Context, userID string) ([]FixedMeal, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT title, scope, calories, protein, carbs, fat
		FROM fixed_meals WHERE user_id = ?`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list fixed meals for user %s: %w", userID, err)
	}
	defer rows.Close()

	var meals []FixedMeal
	for rows.Next() {
		var m FixedMeal
		if err := rows.Scan(&m.Title, &m.Scope, &m.Calories, &m.Protein, &m.Carbs, &m.Fat); err != nil {
			return nil, fmt.Errorf("failed to scan fixed meal row: %w", err)
		}
		meals = append(meals, m)
	}
	return meals, rows.Err()
}

func (r *Repository) listStrings(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		values = append(values, v)
	}
	return values, rows.Err()
}
