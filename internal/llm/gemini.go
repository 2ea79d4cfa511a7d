package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"meal-planner-api/internal/apperrors"
	"meal-planner-api/internal/config"
	"meal-planner-api/internal/shared"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// geminiClient is a client for the Google Gemini API. It implements both
// TextGenerator and VisionGenerator.
type geminiClient struct {
	client    *genai.Client
	model     *genai.GenerativeModel
	modelName string
}

// NewGeminiClient creates a new Gemini API client.
func NewGeminiClient(ctx context.Context, cfg *config.Config) (*geminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiAPIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(cfg.GeminiModel)
	model.SetTemperature(0.2)
	model.ResponseMIMEType = "application/json"

	return &geminiClient{client: client, model: model, modelName: cfg.GeminiModel}, nil
}

// GenerateContent sends a prompt to the Gemini model and returns the generated text.
func (c *geminiClient) GenerateContent(ctx context.Context, prompt string) (ContentResponse, error) {
	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return ContentResponse{}, mapUpstreamError(err)
	}
	return c.extractText(resp)
}

// GenerateFromImage sends a prompt together with inline image data. The
// imageFormat is the subtype of the image MIME type, e.g. "jpeg" or "png".
func (c *geminiClient) GenerateFromImage(ctx context.Context, prompt string, imageFormat string, image []byte) (ContentResponse, error) {
	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt), genai.ImageData(imageFormat, image))
	if err != nil {
		return ContentResponse{}, mapUpstreamError(err)
	}
	return c.extractText(resp)
}

func (c *geminiClient) extractText(resp *genai.GenerateContentResponse) (ContentResponse, error) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return ContentResponse{}, fmt.Errorf("%w: no content generated", apperrors.ErrUpstream)
	}

	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return ContentResponse{}, fmt.Errorf("%w: generated content is not text", apperrors.ErrUpstream)
	}

	usage := shared.TokenUsage{Model: c.modelName}
	if resp.UsageMetadata != nil {
		usage.PromptTokens = int(resp.UsageMetadata.PromptTokenCount)
		usage.CompletionTokens = int(resp.UsageMetadata.CandidatesTokenCount)
		usage.TotalTokens = int(resp.UsageMetadata.TotalTokenCount)
	}

	return ContentResponse{Content: string(text), Usage: usage}, nil
}

// Close closes the underlying Gemini client.
func (c *geminiClient) Close() error {
	return c.client.Close()
}

// mapUpstreamError classifies a generation-service failure into the error
// taxonomy. 429 responses mentioning billing or exhausted quota are treated
// as quota exhaustion, all other 429s as rate limiting.
func mapUpstreamError(err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == 429 && isQuotaMessage(apiErr.Message):
			return fmt.Errorf("%w: %s", apperrors.ErrQuotaExhausted, apiErr.Message)
		case apiErr.Code == 429:
			return fmt.Errorf("%w: %s", apperrors.ErrRateLimited, apiErr.Message)
		default:
			return fmt.Errorf("%w: status=%d %s", apperrors.ErrUpstream, apiErr.Code, apiErr.Message)
		}
	}
	return fmt.Errorf("%w: %v", apperrors.ErrUpstream, err)
}

func isQuotaMessage(msg string) bool {
	lower := strings.ToLower(msg)
	return strings.Contains(lower, "quota") || strings.Contains(lower, "billing")
}
