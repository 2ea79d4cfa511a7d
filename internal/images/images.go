// Package images enriches generated recipes with dish photos. Enrichment
// is fire-and-forget: the plan is served before any image exists and the
// image URLs land on stored candidates eventually.
package images

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"meal-planner-api/internal/logging"
	"meal-planner-api/internal/recipe"
)

// Generator produces an image URL for a recipe title.
type Generator interface {
	GenerateImage(ctx context.Context, title string) (string, error)
}

// HTTPGenerator calls an external image service over HTTP.
type HTTPGenerator struct {
	baseURL string
	client  *http.Client
}

// NewHTTPGenerator creates a generator against the given service URL.
func NewHTTPGenerator(baseURL string) *HTTPGenerator {
	return &HTTPGenerator{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// GenerateImage requests one image and returns its URL.
func (g *HTTPGenerator) GenerateImage(ctx context.Context, title string) (string, error) {
	payload, err := json.Marshal(map[string]string{"prompt": title})
	if err != nil {
		return "", fmt.Errorf("failed to marshal image request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/v1/images", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build image request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("image service request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("image service returned status %d", resp.StatusCode)
	}

	var body struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("failed to decode image response: %w", err)
	}
	return body.URL, nil
}

// batchSize is how many recipes one enrichment goroutine handles.
const batchSize = 3

// Enricher fans recipe batches out to the generator without waiting for
// results.
type Enricher struct {
	generator Generator
	// apply receives each finished (recipe title, url) pair.
	apply func(title, url string)
}

// NewEnricher creates an Enricher. apply is invoked from enrichment
// goroutines and must be safe for concurrent use.
func NewEnricher(generator Generator, apply func(title, url string)) *Enricher {
	return &Enricher{generator: generator, apply: apply}
}

// EnrichAsync starts enrichment for all candidates and returns
// immediately. Batches run concurrently; failures are logged and skipped.
// The goroutines deliberately detach from the caller's context so an
// already answered request does not cancel them.
func (e *Enricher) EnrichAsync(candidates []recipe.Candidate) {
	if e == nil || e.generator == nil {
		return
	}
	for start := 0; start < len(candidates); start += batchSize {
		end := start + batchSize
		if end > len(candidates) {
			end = len(candidates)
		}
		batch := candidates[start:end]
		go e.enrichBatch(context.Background(), batch)
	}
}

func (e *Enricher) enrichBatch(ctx context.Context, batch []recipe.Candidate) {
	for _, c := range batch {
		url, err := e.generator.GenerateImage(ctx, c.Title)
		if err != nil {
			logging.L().Warn("image enrichment failed",
				zap.String("recipe", c.Title), zap.Error(err))
			continue
		}
		if e.apply != nil {
			e.apply(c.Title, url)
		}
	}
}
