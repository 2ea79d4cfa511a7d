package planner

import (
	"errors"
	"testing"

	"meal-planner-api/internal/apperrors"
	"meal-planner-api/internal/recipe"
)

const dinnerOnlyReply = `{"dinner": [{"title": "Pasta", "calories": 650, "protein": 30, "carbs": 80, "fat": 20, "servings": 2, "ingredients": [{"name": "pasta", "amount": "200", "unit": "g"}], "instructions": ["Boil", "Serve"]}]}`

func TestParseCandidates(t *testing.T) {
	allMeals := recipe.AllMealTypes

	t.Run("PlainObject", func(t *testing.T) {
		got, err := ParseCandidates(dinnerOnlyReply, allMeals)
		if err != nil {
			t.Fatalf("ParseCandidates failed: %v", err)
		}
		if len(got[recipe.MealDinner]) != 1 {
			t.Fatalf("Expected 1 dinner candidate, got %d", len(got[recipe.MealDinner]))
		}
		c := got[recipe.MealDinner][0]
		if c.Title != "Pasta" {
			t.Errorf("Expected title 'Pasta', got '%s'", c.Title)
		}
		if c.ID == "" {
			t.Error("Expected parser to assign a candidate ID")
		}
		if float64(c.Ingredients[0].Amount) != 200 {
			t.Errorf("Expected string amount '200' to decode to 200, got %v", c.Ingredients[0].Amount)
		}
	})

	t.Run("FencedReplyEqualsUnfenced", func(t *testing.T) {
		fenced := "```json\n" + dinnerOnlyReply + "\n```"
		got, err := ParseCandidates(fenced, allMeals)
		if err != nil {
			t.Fatalf("ParseCandidates failed on fenced reply: %v", err)
		}
		plain, _ := ParseCandidates(dinnerOnlyReply, allMeals)
		if got[recipe.MealDinner][0].Title != plain[recipe.MealDinner][0].Title {
			t.Error("Fenced reply parsed differently from plain reply")
		}
	})

	t.Run("SurroundingProseFallback", func(t *testing.T) {
		noisy := "Here is your meal plan:\n" + dinnerOnlyReply + "\nEnjoy!"
		got, err := ParseCandidates(noisy, allMeals)
		if err != nil {
			t.Fatalf("ParseCandidates failed on noisy reply: %v", err)
		}
		if len(got[recipe.MealDinner]) != 1 {
			t.Errorf("Expected 1 dinner candidate, got %d", len(got[recipe.MealDinner]))
		}
	})

	t.Run("UnrequestedMealTypeIsEmpty", func(t *testing.T) {
		got, err := ParseCandidates(dinnerOnlyReply, []recipe.MealType{recipe.MealLunch})
		if err != nil {
			t.Fatalf("ParseCandidates failed: %v", err)
		}
		if len(got[recipe.MealDinner]) != 0 {
			t.Error("Dinner was not requested but candidates leaked through")
		}
		if got[recipe.MealLunch] == nil {
			t.Error("Requested meal type must map to an empty list, not nil")
		}
	})

	t.Run("NoStructureIsParseError", func(t *testing.T) {
		_, err := ParseCandidates("I'm sorry, I can't produce a plan today.", allMeals)
		if !errors.Is(err, apperrors.ErrParse) {
			t.Errorf("Expected ErrParse, got %v", err)
		}
	})

	t.Run("ExtraKeysAreTolerated", func(t *testing.T) {
		reply := `{"dinner": [{"title": "Pasta", "servings": 2, "difficulty": "easy", "ingredients": [], "instructions": []}], "snacks": []}`
		got, err := ParseCandidates(reply, allMeals)
		if err != nil {
			t.Fatalf("ParseCandidates failed on reply with extra keys: %v", err)
		}
		if len(got[recipe.MealDinner]) != 1 {
			t.Errorf("Expected 1 dinner candidate, got %d", len(got[recipe.MealDinner]))
		}
	})

	t.Run("BracesInsideStringsDoNotConfuseFallback", func(t *testing.T) {
		noisy := `reply: {"dinner": [{"title": "Stew {hearty}", "servings": 1, "ingredients": [], "instructions": []}]}`
		got, err := ParseCandidates(noisy, allMeals)
		if err != nil {
			t.Fatalf("ParseCandidates failed: %v", err)
		}
		if got[recipe.MealDinner][0].Title != "Stew {hearty}" {
			t.Errorf("Unexpected title: %s", got[recipe.MealDinner][0].Title)
		}
	})
}
