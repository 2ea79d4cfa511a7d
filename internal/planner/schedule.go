package planner

import (
	"time"

	"github.com/google/uuid"

	"meal-planner-api/internal/recipe"
)

// MealSnapshot is a denormalized copy of a selected candidate. Plans keep
// snapshots rather than candidate references so that later regenerations
// cannot mutate an already saved week.
type MealSnapshot struct {
	Title          string              `json:"title"`
	Description    string              `json:"description,omitempty"`
	Calories       float64             `json:"calories"`
	Protein        float64             `json:"protein_g"`
	Carbs          float64             `json:"carbs_g"`
	Fat            float64             `json:"fat_g"`
	PrepTimeMin    int                 `json:"prep_time_min"`
	CookTimeMin    int                 `json:"cook_time_min"`
	Servings       int                 `json:"servings"`
	Ingredients    []recipe.Ingredient `json:"ingredients"`
	Instructions   []string            `json:"instructions,omitempty"`
	Tags           []string            `json:"tags,omitempty"`
	EstimatedPrice float64             `json:"estimated_price,omitempty"`
	ImageURL       string              `json:"image_url,omitempty"`
}

// DayPlan holds one calendar day. A nil slot means the meal type was not
// requested or had no candidates to rotate through.
type DayPlan struct {
	Date      string        `json:"date"`
	Breakfast *MealSnapshot `json:"breakfast"`
	Lunch     *MealSnapshot `json:"lunch"`
	Dinner    *MealSnapshot `json:"dinner"`
}

// WeeklyPlan is the persisted unit. One active plan per user.
type WeeklyPlan struct {
	ID           string    `json:"id"`
	Days         []DayPlan `json:"days"`
	TotalCost    float64   `json:"total_cost"`
	TotalSavings float64   `json:"total_savings"`
}

// ComposeSchedule rotates the selected candidates across the requested
// days. Selection i on day d is selected[d % len(selected)], so with two
// dinners over seven days the rotation lands A B A B A B A. Day dates are
// consecutive from startDate.
func ComposeSchedule(selected map[recipe.MealType][]recipe.Candidate, startDate time.Time, durationDays int) WeeklyPlan {
	plan := WeeklyPlan{
		ID:   uuid.NewString(),
		Days: make([]DayPlan, 0, durationDays),
	}
	for i := 0; i < durationDays; i++ {
		day := DayPlan{
			Date:      startDate.AddDate(0, 0, i).Format("2006-01-02"),
			Breakfast: pick(selected[recipe.MealBreakfast], i),
			Lunch:     pick(selected[recipe.MealLunch], i),
			Dinner:    pick(selected[recipe.MealDinner], i),
		}
		plan.Days = append(plan.Days, day)
	}
	return plan
}

func pick(candidates []recipe.Candidate, day int) *MealSnapshot {
	if len(candidates) == 0 {
		return nil
	}
	return snapshot(candidates[day%len(candidates)])
}

func snapshot(c recipe.Candidate) *MealSnapshot {
	return &MealSnapshot{
		Title:          c.Title,
		Description:    c.Description,
		Calories:       c.Calories,
		Protein:        c.Protein,
		Carbs:          c.Carbs,
		Fat:            c.Fat,
		PrepTimeMin:    c.PrepTimeMin,
		CookTimeMin:    c.CookTimeMin,
		Servings:       c.Servings,
		Ingredients:    c.Ingredients,
		Instructions:   c.Instructions,
		Tags:           c.Tags,
		EstimatedPrice: c.EstimatedPrice,
		ImageURL:       c.ImageURL,
	}
}
