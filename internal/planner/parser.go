package planner

import (
	"encoding/json"
	"fmt"
	"strings"

	"meal-planner-api/internal/apperrors"
	"meal-planner-api/internal/recipe"

	"github.com/google/uuid"
)

// tieredPayload is the expected shape of the service reply. Extra keys are
// tolerated; unrequested meal types are zeroed by the caller.
type tieredPayload struct {
	Breakfast []recipe.Candidate `json:"breakfast"`
	Lunch     []recipe.Candidate `json:"lunch"`
	Dinner    []recipe.Candidate `json:"dinner"`
}

// ParseCandidates extracts the tiered candidate lists from the raw service
// reply. It strips surrounding formatting fences, attempts a direct parse,
// and on failure falls back to the first balanced object or array in the
// text. Meal types the user did not request always map to an empty list.
func ParseCandidates(raw string, requested []recipe.MealType) (map[recipe.MealType][]recipe.Candidate, error) {
	cleaned := stripFences(raw)

	var payload tieredPayload
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		sub, ok := extractBalanced(cleaned)
		if !ok {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrParse, err)
		}
		if err := json.Unmarshal([]byte(sub), &payload); err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrParse, err)
		}
	}

	requestedSet := make(map[recipe.MealType]bool, len(requested))
	for _, m := range requested {
		requestedSet[m] = true
	}

	result := map[recipe.MealType][]recipe.Candidate{
		recipe.MealBreakfast: {},
		recipe.MealLunch:     {},
		recipe.MealDinner:    {},
	}
	if requestedSet[recipe.MealBreakfast] {
		result[recipe.MealBreakfast] = withIDs(payload.Breakfast)
	}
	if requestedSet[recipe.MealLunch] {
		result[recipe.MealLunch] = withIDs(payload.Lunch)
	}
	if requestedSet[recipe.MealDinner] {
		result[recipe.MealDinner] = withIDs(payload.Dinner)
	}

	return result, nil
}

// withIDs guarantees every candidate has an identity and a sane servings
// count, and never returns nil.
func withIDs(candidates []recipe.Candidate) []recipe.Candidate {
	out := make([]recipe.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if c.ID == "" {
			c.ID = uuid.NewString()
		}
		if c.Servings < 1 {
			c.Servings = 1
		}
		out = append(out, c)
	}
	return out
}

// stripFences removes a surrounding markdown code fence, with or without a
// language marker.
func stripFences(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		// Drop the language marker line ("json", "JSON", or empty).
		s = s[idx+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// extractBalanced locates the first balanced JSON object or array in the
// text, respecting string literals and escapes.
func extractBalanced(s string) (string, bool) {
	start := -1
	var open, close byte
	for i := 0; i < len(s); i++ {
		if s[i] == '{' {
			start, open, close = i, '{', '}'
			break
		}
		if s[i] == '[' {
			start, open, close = i, '[', ']'
			break
		}
	}
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}
