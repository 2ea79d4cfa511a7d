package planner

import (
	"context"
	"strings"
	"testing"

	"meal-planner-api/internal/llm"
	"meal-planner-api/internal/recipe"
)

type capturingGenerator struct {
	prompt   string
	response string
}

func (c *capturingGenerator) GenerateContent(ctx context.Context, prompt string) (llm.ContentResponse, error) {
	c.prompt = prompt
	return llm.ContentResponse{Content: c.response}, nil
}

func TestOverGenerationFactor(t *testing.T) {
	cases := []struct {
		alternatives int
		want         int
	}{
		{0, 1},
		{2, 3},
		{-5, 1},
	}
	for _, tc := range cases {
		got := GenerateRequest{Alternatives: tc.alternatives}.OverGenerationFactor()
		if got != tc.want {
			t.Errorf("OverGenerationFactor(alternatives=%d) = %d, want %d", tc.alternatives, got, tc.want)
		}
	}
}

func TestComposeAndGenerate(t *testing.T) {
	bundle := Bundle{
		Critical: Critical{
			ExcludedIngredients: []string{"peanuts", "shellfish"},
			RequestedMeals:      []recipe.MealType{recipe.MealLunch, recipe.MealDinner},
			PerMealTarget:       MacroBudget{Calories: 900, Protein: 45, Carbs: 105, Fat: 30},
		},
		Important:  Important{SeasonalHints: []string{"tomatoes"}},
		Background: Background{Goal: "maintain", HouseholdSize: 2},
	}

	gen := &capturingGenerator{response: `{}`}
	result, err := ComposeAndGenerate(context.Background(), gen, bundle, GenerateRequest{DurationDays: 7, Alternatives: 1})
	if err != nil {
		t.Fatalf("ComposeAndGenerate failed: %v", err)
	}

	if result.Meta.AgentName != "MealGenerator" {
		t.Errorf("Expected agent 'MealGenerator', got '%s'", result.Meta.AgentName)
	}

	// k = 2, duration 7 -> 14 candidates per meal type
	if !strings.Contains(gen.prompt, "exactly 14 recipe candidates") {
		t.Error("Prompt missing over-generated candidate count")
	}
	if !strings.Contains(gen.prompt, "peanuts") || !strings.Contains(gen.prompt, "shellfish") {
		t.Error("Prompt missing excluded ingredients")
	}
	if !strings.Contains(gen.prompt, "900") {
		t.Error("Prompt missing per-meal calorie target")
	}
	if !strings.Contains(gen.prompt, "lunch") || !strings.Contains(gen.prompt, "dinner") {
		t.Error("Prompt missing requested meal types")
	}
}
