package offers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"meal-planner-api/internal/apperrors"
	"meal-planner-api/internal/llm"
	"meal-planner-api/internal/shared"

	"github.com/PuerkitoBio/goquery"
)

// Clipper fetches a retail chain's offer page and extracts structured
// offers from it.
type Clipper struct {
	textGen    llm.TextGenerator
	repo       *Repository
	httpClient *http.Client
}

// extractedOffer is the shape the AI returns per offer line.
type extractedOffer struct {
	Product       string  `json:"product"`
	OfferPrice    float64 `json:"offer_price"`
	OriginalPrice float64 `json:"original_price"`
	ValidFrom     string  `json:"valid_from"`
	ValidUntil    string  `json:"valid_until"`
}

// NewClipper creates a new Clipper instance.
func NewClipper(textGen llm.TextGenerator, repo *Repository) *Clipper {
	return &Clipper{
		textGen:    textGen,
		repo:       repo,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// ClipURL fetches the URL, extracts the offers using AI, and saves them
// under the given chain name. Returns the number of offers saved.
func (c *Clipper) ClipURL(ctx context.Context, url, chain string) (int, shared.AgentMeta, error) {
	content, err := c.fetchAndCleanHTML(url)
	if err != nil {
		return 0, shared.AgentMeta{}, fmt.Errorf("failed to fetch content: %w", err)
	}

	prompt := fmt.Sprintf(`
You are a retail offer extraction expert. Extract every discounted product from the following page content.
Return the result strictly as a JSON object with this structure:
{
  "offers": [
    {"product": "Product name", "offer_price": 12.50, "original_price": 19.95, "valid_from": "2025-01-06", "valid_until": "2025-01-12"},
    ...
  ]
}

Prices are plain numbers in the page's currency. Dates are ISO dates; when
the page shows no window, use today for valid_from and a week later for
valid_until. Do not include any other text in your response.

Page Content:
%s
`, content)

	start := time.Now()
	resp, err := c.textGen.GenerateContent(ctx, prompt)
	if err != nil {
		return 0, shared.AgentMeta{}, fmt.Errorf("ai extraction failed: %w", err)
	}

	meta := shared.AgentMeta{AgentName: "OfferClipper", Usage: resp.Usage, Latency: time.Since(start)}

	var extracted struct {
		Offers []extractedOffer `json:"offers"`
	}
	if err := json.Unmarshal([]byte(resp.Content), &extracted); err != nil {
		return 0, meta, fmt.Errorf("%w: %v. Response: %s", apperrors.ErrParse, err, resp.Content)
	}

	batch := make([]Offer, 0, len(extracted.Offers))
	for _, e := range extracted.Offers {
		o := Offer{
			Product:       e.Product,
			Chain:         chain,
			OfferPrice:    e.OfferPrice,
			OriginalPrice: e.OriginalPrice,
		}
		o.ValidFrom, o.ValidUntil = parseWindow(e.ValidFrom, e.ValidUntil)
		batch = append(batch, o)
	}

	if err := c.repo.SaveBatch(ctx, batch); err != nil {
		return 0, meta, fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
	}

	return len(batch), meta, nil
}

func (c *Clipper) fetchAndCleanHTML(url string) (string, error) {
	resp, err := c.httpClient.Get(url)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to fetch URL: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", err
	}

	// Remove noise to save LLM tokens
	doc.Find("script, style, nav, footer, iframe, ads, .ads, #ads").Each(func(i int, s *goquery.Selection) {
		s.Remove()
	})

	return doc.Find("body").Text(), nil
}

func parseWindow(from, until string) (time.Time, time.Time) {
	validFrom, err := time.Parse("2006-01-02", from)
	if err != nil {
		validFrom = time.Now().UTC().Truncate(24 * time.Hour)
	}
	validUntil, err := time.Parse("2006-01-02", until)
	if err != nil {
		validUntil = validFrom.AddDate(0, 0, 7)
	}
	return validFrom, validUntil
}
