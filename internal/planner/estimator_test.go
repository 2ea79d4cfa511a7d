package planner

import (
	"context"
	"errors"
	"testing"

	"meal-planner-api/internal/apperrors"
	"meal-planner-api/internal/llm"
	"meal-planner-api/internal/shared"
)

type stubTextGenerator struct {
	reply  string
	prompt string
}

func (s *stubTextGenerator) GenerateContent(_ context.Context, prompt string) (llm.ContentResponse, error) {
	s.prompt = prompt
	return llm.ContentResponse{
		Content: s.reply,
		Usage:   shared.TokenUsage{PromptTokens: 10, CompletionTokens: 5},
	}, nil
}

type stubVisionGenerator struct {
	reply string
	image []byte
}

func (s *stubVisionGenerator) GenerateFromImage(_ context.Context, _ string, _ string, image []byte) (llm.ContentResponse, error) {
	s.image = image
	return llm.ContentResponse{Content: s.reply}, nil
}

func TestEstimateCalories(t *testing.T) {
	t.Run("TextOnly", func(t *testing.T) {
		gen := &stubTextGenerator{reply: `{
			"calories_per_week": 3500, "calories_per_day": 500,
			"protein": 20, "carbs": 60, "fat": 15,
			"items": [{"description": "friday beers", "calories": 400}]
		}`}

		est, meta, err := EstimateCalories(context.Background(), gen, nil, "beers every friday", "", nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if est.CaloriesPerWeek != 3500 || est.CaloriesPerDay != 500 {
			t.Errorf("estimate = %+v", est)
		}
		if len(est.Items) != 1 {
			t.Errorf("items = %d, want 1", len(est.Items))
		}
		if meta.AgentName != "CalorieEstimator" {
			t.Errorf("agent = %q", meta.AgentName)
		}
	})

	t.Run("ImageTakesVisionPath", func(t *testing.T) {
		vision := &stubVisionGenerator{reply: `{"calories_per_week": 1400}`}

		est, _, err := EstimateCalories(context.Background(), nil, vision, "", "jpeg", []byte{1, 2})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(vision.image) != 2 {
			t.Error("image was not forwarded")
		}
		if est.CaloriesPerDay != 200 {
			t.Errorf("derived calories per day = %v, want 200", est.CaloriesPerDay)
		}
	})

	t.Run("EmptyInputIsValidationErrorNotUpstream", func(t *testing.T) {
		_, _, err := EstimateCalories(context.Background(), &stubTextGenerator{}, nil, "", "", nil)
		if !errors.Is(err, ErrNoEstimateInput) {
			t.Fatalf("err = %v, want ErrNoEstimateInput", err)
		}
		if errors.Is(err, apperrors.ErrParse) {
			t.Error("empty input must not be classified as a parse failure")
		}
	})

	t.Run("ProseReplyIsParseError", func(t *testing.T) {
		gen := &stubTextGenerator{reply: "I cannot estimate that."}

		_, _, err := EstimateCalories(context.Background(), gen, nil, "cake", "", nil)
		if !errors.Is(err, apperrors.ErrParse) {
			t.Fatalf("err = %v, want ErrParse", err)
		}
	})
}
