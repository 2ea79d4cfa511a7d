package planner

import (
	"testing"
	"time"

	"meal-planner-api/internal/recipe"
)

func TestComposeSchedule(t *testing.T) {
	start := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)

	t.Run("RotatesSelectionsAcrossDays", func(t *testing.T) {
		selected := map[recipe.MealType][]recipe.Candidate{
			recipe.MealDinner: {
				{ID: "a", Title: "Pasta Bolognese"},
				{ID: "b", Title: "Chicken Curry"},
			},
		}

		plan := ComposeSchedule(selected, start, 7)

		if len(plan.Days) != 7 {
			t.Fatalf("days = %d, want 7", len(plan.Days))
		}
		wantTitles := []string{
			"Pasta Bolognese", "Chicken Curry", "Pasta Bolognese",
			"Chicken Curry", "Pasta Bolognese", "Chicken Curry",
			"Pasta Bolognese",
		}
		for i, want := range wantTitles {
			if plan.Days[i].Dinner == nil {
				t.Fatalf("day %d has no dinner", i)
			}
			if got := plan.Days[i].Dinner.Title; got != want {
				t.Errorf("day %d dinner = %q, want %q", i, got, want)
			}
		}
	})

	t.Run("UnrequestedSlotsAreNil", func(t *testing.T) {
		selected := map[recipe.MealType][]recipe.Candidate{
			recipe.MealDinner: {{ID: "a", Title: "Stew"}},
		}

		plan := ComposeSchedule(selected, start, 3)

		for i, day := range plan.Days {
			if day.Breakfast != nil || day.Lunch != nil {
				t.Errorf("day %d has unexpected breakfast or lunch", i)
			}
			if day.Dinner == nil {
				t.Errorf("day %d missing dinner", i)
			}
		}
	})

	t.Run("DatesAreConsecutive", func(t *testing.T) {
		plan := ComposeSchedule(nil, start, 3)

		want := []string{"2025-03-03", "2025-03-04", "2025-03-05"}
		for i, day := range plan.Days {
			if day.Date != want[i] {
				t.Errorf("day %d date = %q, want %q", i, day.Date, want[i])
			}
		}
	})

	t.Run("SnapshotsDoNotCarryCandidateIDs", func(t *testing.T) {
		selected := map[recipe.MealType][]recipe.Candidate{
			recipe.MealLunch: {{
				ID:       "candidate-id",
				Title:    "Salad",
				Servings: 2,
				Ingredients: []recipe.Ingredient{
					{Name: "lettuce", Amount: 200, Unit: "g"},
				},
			}},
		}

		plan := ComposeSchedule(selected, start, 1)

		lunch := plan.Days[0].Lunch
		if lunch == nil {
			t.Fatal("missing lunch")
		}
		if lunch.Title != "Salad" || lunch.Servings != 2 {
			t.Errorf("snapshot lost fields: %+v", lunch)
		}
		if len(lunch.Ingredients) != 1 {
			t.Errorf("snapshot ingredients = %d, want 1", len(lunch.Ingredients))
		}
	})
}
