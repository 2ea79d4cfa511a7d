package planner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"meal-planner-api/internal/apperrors"
	"meal-planner-api/internal/llm"
	"meal-planner-api/internal/shared"
)

// CalorieEstimate is a weekly extra-calorie assessment, used to seed an
// extra-calories declaration on the profile.
type CalorieEstimate struct {
	CaloriesPerWeek float64        `json:"calories_per_week"`
	CaloriesPerDay  float64        `json:"calories_per_day"`
	Protein         float64        `json:"protein"`
	Carbs           float64        `json:"carbs"`
	Fat             float64        `json:"fat"`
	Items           []EstimateItem `json:"items,omitempty"`
}

// EstimateItem is one line of the itemized breakdown.
type EstimateItem struct {
	Description string  `json:"description"`
	Calories    float64 `json:"calories"`
}

const estimatePrompt = `
You are a nutrition assistant. Estimate the weekly calorie and macro impact
of the consumption described below%s.

Return the result strictly as a JSON object with this structure:
{
  "calories_per_week": 3500,
  "calories_per_day": 500,
  "protein": 20,
  "carbs": 60,
  "fat": 15,
  "items": [
    {"description": "2 beers on Friday", "calories": 400},
    ...
  ]
}

protein, carbs and fat are grams per day. items may be empty. Do not
include any other text in your response.

Description:
%s
`

// ErrNoEstimateInput is returned when neither a description nor a photo
// is provided. It is caller input validation, not an upstream failure.
var ErrNoEstimateInput = errors.New("estimate needs a description or an image")

// EstimateCalories has the generation service assess a free-text habit
// description ("a few beers every Friday, cake at work on Wednesdays"),
// optionally supported by a photo. At least one of text and image must be
// given.
func EstimateCalories(ctx context.Context, textGen llm.TextGenerator, visionGen llm.VisionGenerator, text, imageFormat string, image []byte) (*CalorieEstimate, shared.AgentMeta, error) {
	if text == "" && len(image) == 0 {
		return nil, shared.AgentMeta{}, ErrNoEstimateInput
	}

	var (
		resp llm.ContentResponse
		err  error
	)
	if len(image) > 0 {
		prompt := fmt.Sprintf(estimatePrompt, " and on the photo", text)
		resp, err = visionGen.GenerateFromImage(ctx, prompt, imageFormat, image)
	} else {
		prompt := fmt.Sprintf(estimatePrompt, "", text)
		resp, err = textGen.GenerateContent(ctx, prompt)
	}
	if err != nil {
		return nil, shared.AgentMeta{}, err
	}

	meta := shared.AgentMeta{AgentName: "CalorieEstimator", Usage: resp.Usage}

	var estimate CalorieEstimate
	if err := json.Unmarshal([]byte(resp.Content), &estimate); err != nil {
		return nil, meta, fmt.Errorf("%w: %v", apperrors.ErrParse, err)
	}
	if estimate.CaloriesPerDay == 0 && estimate.CaloriesPerWeek > 0 {
		estimate.CaloriesPerDay = estimate.CaloriesPerWeek / 7
	}
	return &estimate, meta, nil
}
