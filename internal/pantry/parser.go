package pantry

import (
	"context"
	"encoding/json"
	"fmt"

	"meal-planner-api/internal/apperrors"
	"meal-planner-api/internal/llm"
	"meal-planner-api/internal/shared"
)

// ParseInventoryText has the generation service turn a free-text pantry
// description ("2 liters of milk, half a bag of rice") into structured
// inventory lines for the given category.
func ParseInventoryText(ctx context.Context, textGen llm.TextGenerator, text, category string) ([]ParsedItem, shared.AgentMeta, error) {
	prompt := fmt.Sprintf(`
You are a pantry assistant. Extract the individual food items from the text below.
Every item belongs to the category %q unless the text clearly says otherwise.

Return the result strictly as a JSON object with this structure:
{
  "items": [
    {"ingredient_name": "milk", "quantity": 2, "unit": "l", "category": "dairy", "expires_at": "2025-01-31"},
    ...
  ]
}

Quantity and unit may be omitted when the text gives none. expires_at is an
ISO date and may be omitted. Do not include any other text in your response.

Text:
%s
`, category, text)

	resp, err := textGen.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, shared.AgentMeta{}, err
	}

	meta := shared.AgentMeta{AgentName: "InventoryParser", Usage: resp.Usage}

	var parsed struct {
		Items []ParsedItem `json:"items"`
	}
	if err := json.Unmarshal([]byte(resp.Content), &parsed); err != nil {
		return nil, meta, fmt.Errorf("%w: %v", apperrors.ErrParse, err)
	}

	return parsed.Items, meta, nil
}

// AnalyzeFridgePhoto has the generation service list the items visible on a
// fridge or pantry photo, with a confidence per item.
func AnalyzeFridgePhoto(ctx context.Context, visionGen llm.VisionGenerator, imageFormat string, image []byte) ([]DetectedItem, shared.AgentMeta, error) {
	prompt := `
You are a pantry assistant. List every food item visible on this photo.

Return the result strictly as a JSON object with this structure:
{
  "items": [
    {"name": "eggs", "quantity": 6, "unit": "piece", "category": "dairy", "confidence": 0.92},
    ...
  ]
}

Quantity and unit may be omitted when they cannot be determined. confidence
is between 0 and 1. Do not include any other text in your response.
`

	resp, err := visionGen.GenerateFromImage(ctx, prompt, imageFormat, image)
	if err != nil {
		return nil, shared.AgentMeta{}, err
	}

	meta := shared.AgentMeta{AgentName: "FridgeAnalyzer", Usage: resp.Usage}

	var parsed struct {
		Items []DetectedItem `json:"items"`
	}
	if err := json.Unmarshal([]byte(resp.Content), &parsed); err != nil {
		return nil, meta, fmt.Errorf("%w: %v", apperrors.ErrParse, err)
	}

	return parsed.Items, meta, nil
}
