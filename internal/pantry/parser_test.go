package pantry

import (
	"context"
	"errors"
	"testing"

	"meal-planner-api/internal/apperrors"
	"meal-planner-api/internal/llm"
)

type mockTextGenerator struct {
	response string
	err      error
}

func (m *mockTextGenerator) GenerateContent(ctx context.Context, prompt string) (llm.ContentResponse, error) {
	if m.err != nil {
		return llm.ContentResponse{}, m.err
	}
	return llm.ContentResponse{Content: m.response}, nil
}

type mockVisionGenerator struct {
	response string
}

func (m *mockVisionGenerator) GenerateFromImage(ctx context.Context, prompt string, imageFormat string, image []byte) (llm.ContentResponse, error) {
	return llm.ContentResponse{Content: m.response}, nil
}

func TestParseInventoryText(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		gen := &mockTextGenerator{response: `{"items": [{"ingredient_name": "milk", "quantity": 2, "unit": "l", "category": "dairy"}]}`}
		items, meta, err := ParseInventoryText(ctx, gen, "2 liters of milk", "dairy")
		if err != nil {
			t.Fatalf("ParseInventoryText failed: %v", err)
		}
		if meta.AgentName != "InventoryParser" {
			t.Errorf("Expected agent 'InventoryParser', got '%s'", meta.AgentName)
		}
		if len(items) != 1 || items[0].IngredientName != "milk" || items[0].Quantity != 2 {
			t.Errorf("Unexpected items: %+v", items)
		}
	})

	t.Run("MalformedReply", func(t *testing.T) {
		gen := &mockTextGenerator{response: `sorry, I cannot help with that`}
		_, _, err := ParseInventoryText(ctx, gen, "2 liters of milk", "dairy")
		if !errors.Is(err, apperrors.ErrParse) {
			t.Errorf("Expected ErrParse, got %v", err)
		}
	})

	t.Run("UpstreamErrorPassesThrough", func(t *testing.T) {
		gen := &mockTextGenerator{err: apperrors.ErrRateLimited}
		_, _, err := ParseInventoryText(ctx, gen, "milk", "dairy")
		if !errors.Is(err, apperrors.ErrRateLimited) {
			t.Errorf("Expected ErrRateLimited, got %v", err)
		}
	})
}

func TestAnalyzeFridgePhoto(t *testing.T) {
	gen := &mockVisionGenerator{response: `{"items": [{"name": "eggs", "quantity": 6, "unit": "piece", "category": "dairy", "confidence": 0.92}]}`}
	items, meta, err := AnalyzeFridgePhoto(context.Background(), gen, "jpeg", []byte{0xff, 0xd8})
	if err != nil {
		t.Fatalf("AnalyzeFridgePhoto failed: %v", err)
	}
	if meta.AgentName != "FridgeAnalyzer" {
		t.Errorf("Expected agent 'FridgeAnalyzer', got '%s'", meta.AgentName)
	}
	if len(items) != 1 || items[0].Name != "eggs" || items[0].Confidence != 0.92 {
		t.Errorf("Unexpected items: %+v", items)
	}
}
