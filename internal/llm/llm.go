package llm

import (
	"context"

	"meal-planner-api/internal/shared"
)

// ContentResponse contains the generated text and metadata like token usage.
type ContentResponse struct {
	Content string
	Usage   shared.TokenUsage
}

// TextGenerator is an interface for generating text from a prompt.
type TextGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (ContentResponse, error)
}

// VisionGenerator is an interface for generating text from a prompt plus an
// image attachment.
type VisionGenerator interface {
	GenerateFromImage(ctx context.Context, prompt string, imageFormat string, image []byte) (ContentResponse, error)
}

// Closer is an interface for closing resources.
type Closer interface {
	Close() error
}
