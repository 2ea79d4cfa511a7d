package planner

import (
	"bytes"
	"context"
	_ "embed"
	"html/template"
	"time"

	"meal-planner-api/internal/llm"
	"meal-planner-api/internal/shared"
)

//go:embed meal_prompt.md
var mealPrompt string

// GenerateRequest is the caller's input to plan generation.
type GenerateRequest struct {
	DurationDays int       `json:"duration_days"`
	StartDate    time.Time `json:"start_date"`
	// Alternatives is how many extra candidates per slot the user wants to
	// curate from, on top of the one needed to fill the slot.
	Alternatives int `json:"alternatives"`
}

// OverGenerationFactor is the multiplier applied to the requested days so
// the downstream selection step has a surplus pool to choose from.
func (r GenerateRequest) OverGenerationFactor() int {
	k := r.Alternatives + 1
	if k < 1 {
		k = 1
	}
	return k
}

type mealPromptData struct {
	Bundle            Bundle
	CandidatesPerMeal int
}

// ComposerResult carries the raw service reply plus execution metadata.
type ComposerResult struct {
	Raw  string
	Meta shared.AgentMeta
}

// ComposeAndGenerate renders the constraint bundle into an explicit,
// machine-parseable generation request and performs the single blocking
// call to the generation service. No retry here: retry policy belongs to
// the caller.
func ComposeAndGenerate(ctx context.Context, textGen llm.TextGenerator, bundle Bundle, req GenerateRequest) (ComposerResult, error) {
	prompt, err := buildMealPrompt(mealPromptData{
		Bundle:            bundle,
		CandidatesPerMeal: req.OverGenerationFactor() * req.DurationDays,
	})
	if err != nil {
		return ComposerResult{}, err
	}

	start := time.Now()
	resp, err := textGen.GenerateContent(ctx, prompt)
	if err != nil {
		return ComposerResult{}, err
	}

	return ComposerResult{
		Raw: resp.Content,
		Meta: shared.AgentMeta{
			AgentName: "MealGenerator",
			Usage:     resp.Usage,
			Latency:   time.Since(start),
		},
	}, nil
}

func buildMealPrompt(data mealPromptData) (string, error) {
	tmpl, err := template.New("mealgen").Parse(mealPrompt)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}
