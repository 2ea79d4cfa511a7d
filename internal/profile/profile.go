// Package profile owns the user constraint profile and the preference,
// history and recurring-consumption records the planner reads.
package profile

import (
	"time"

	"meal-planner-api/internal/recipe"
)

// DietaryGoal is the user's weight goal.
type DietaryGoal string

const (
	GoalLose     DietaryGoal = "lose"
	GoalMaintain DietaryGoal = "maintain"
	GoalGain     DietaryGoal = "gain"
)

// CookingStyle is the repetition cadence for meal prep.
type CookingStyle string

const (
	StyleDaily CookingStyle = "daily"
	StylePrep2 CookingStyle = "prep_2"
	StylePrep3 CookingStyle = "prep_3"
	StylePrep4 CookingStyle = "prep_4"
)

// UniqueMeals returns how many distinct recipes per meal type the style
// rotates across a week. 0 means a unique meal every day.
func (s CookingStyle) UniqueMeals() int {
	switch s {
	case StylePrep2:
		return 2
	case StylePrep3:
		return 3
	case StylePrep4:
		return 4
	default:
		return 0
	}
}

// ConstraintProfile is the persisted planning profile for one user. It is
// mutated only by explicit user edits and read-only to the pipeline.
type ConstraintProfile struct {
	UserID             string       `json:"user_id"`
	Goal               DietaryGoal  `json:"goal"`
	HouseholdSize      int          `json:"household_size"`
	CookingStyle       CookingStyle `json:"cooking_style"`
	WeekdayCookMinutes int          `json:"weekday_cook_minutes"`
	WeekendCookMinutes int          `json:"weekend_cook_minutes"`
	WeeklyBudget       float64      `json:"weekly_budget"`
	SkipBreakfast      bool         `json:"skip_breakfast"`
	SkipLunch          bool         `json:"skip_lunch"`
	SkipDinner         bool         `json:"skip_dinner"`

	BaseCalories float64   `json:"base_calories"`
	BaseProtein  float64   `json:"base_protein"`
	BaseCarbs    float64   `json:"base_carbs"`
	BaseFat      float64   `json:"base_fat"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// RequestedMeals returns the meal types not flagged as skipped, in day order.
func (p ConstraintProfile) RequestedMeals() []recipe.MealType {
	var meals []recipe.MealType
	if !p.SkipBreakfast {
		meals = append(meals, recipe.MealBreakfast)
	}
	if !p.SkipLunch {
		meals = append(meals, recipe.MealLunch)
	}
	if !p.SkipDinner {
		meals = append(meals, recipe.MealDinner)
	}
	return meals
}

// HasBaseTargets reports whether the profile carries its own macro targets.
func (p ConstraintProfile) HasBaseTargets() bool {
	return p.BaseCalories > 0
}

// SwipeRecord is one accept/reject verdict on a previously shown recipe.
type SwipeRecord struct {
	RecipeTitle string    `json:"recipe_title"`
	Ingredients []string  `json:"ingredients"`
	Accepted    bool      `json:"accepted"`
	CreatedAt   time.Time `json:"created_at"`
}

// ExtraCalories declares recurring consumption the plan must not also
// provide for, e.g. a weekly takeout habit. All fields are per week.
type ExtraCalories struct {
	Description     string  `json:"description"`
	CaloriesPerWeek float64 `json:"calories_per_week"`
	ProteinPerWeek  float64 `json:"protein_per_week"`
	CarbsPerWeek    float64 `json:"carbs_per_week"`
	FatPerWeek      float64 `json:"fat_per_week"`
}

// FixedMealScope says whether a fixed meal recurs daily or on one weekday.
type FixedMealScope string

const (
	ScopeEveryDay  FixedMealScope = "every_day"
	ScopeSingleDay FixedMealScope = "single_day"
)

// FixedMeal is a recurring meal the user always eats, with its own macros.
type FixedMeal struct {
	Title    string         `json:"title"`
	Scope    FixedMealScope `json:"scope"`
	Calories float64        `json:"calories"`
	Protein  float64        `json:"protein"`
	Carbs    float64        `json:"carbs"`
	Fat      float64        `json:"fat"`
}
