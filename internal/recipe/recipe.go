// Package recipe holds the candidate recipe model shared by the generation,
// validation, scheduling and shopping stages.
package recipe

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// MealType identifies one of the three daily meal slots.
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
)

// AllMealTypes lists the meal slots in day order.
var AllMealTypes = []MealType{MealBreakfast, MealLunch, MealDinner}

// Mass and volume units accepted on ingredients. Anything else ("piece",
// "clove", ...) is carried through untouched.
const (
	UnitGram       = "g"
	UnitKilogram   = "kg"
	UnitMilliliter = "ml"
	UnitDeciliter  = "dl"
	UnitLiter      = "l"
)

// gramsPerUnit converts mass units to grams.
var gramsPerUnit = map[string]float64{
	UnitGram:     1,
	UnitKilogram: 1000,
}

// millilitersPerUnit converts volume units to milliliters.
var millilitersPerUnit = map[string]float64{
	UnitMilliliter: 1,
	UnitDeciliter:  100,
	UnitLiter:      1000,
}

// Amount is an ingredient quantity. The generation service emits it both as
// a JSON number and as a numeric string, so decoding accepts either.
type Amount float64

// UnmarshalJSON decodes a JSON number or a numeric string.
func (a *Amount) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	if s == "" || s == "null" {
		*a = 0
		return nil
	}
	// Tolerate decimal commas, which the service produces for Danish text.
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid ingredient amount %q: %w", string(data), err)
	}
	*a = Amount(v)
	return nil
}

// MarshalJSON always emits a JSON number.
func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(float64(a))
}

// Ingredient is a single recipe ingredient. Amount is always >= 0.
type Ingredient struct {
	Name   string `json:"name"`
	Amount Amount `json:"amount"`
	Unit   string `json:"unit"`
}

// Grams returns the amount converted to grams and whether the unit is a
// mass unit.
func (i Ingredient) Grams() (float64, bool) {
	factor, ok := gramsPerUnit[normalizeUnit(i.Unit)]
	if !ok {
		return 0, false
	}
	return float64(i.Amount) * factor, true
}

// Milliliters returns the amount converted to milliliters and whether the
// unit is a volume unit.
func (i Ingredient) Milliliters() (float64, bool) {
	factor, ok := millilitersPerUnit[normalizeUnit(i.Unit)]
	if !ok {
		return 0, false
	}
	return float64(i.Amount) * factor, true
}

// IsScalable reports whether the ingredient is denominated in a mass or
// volume unit and therefore participates in the catch-all correction.
func (i Ingredient) IsScalable() bool {
	unit := normalizeUnit(i.Unit)
	if _, ok := gramsPerUnit[unit]; ok {
		return true
	}
	_, ok := millilitersPerUnit[unit]
	return ok
}

func normalizeUnit(unit string) string {
	return strings.ToLower(strings.TrimSpace(unit))
}

// Candidate is one recipe proposed by the generation service. Macros are
// per-serving values. It is created by the response parser, mutated in place
// by the quantity validator, and immutable after that.
type Candidate struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	Calories     float64      `json:"calories"`
	Protein      float64      `json:"protein"`
	Carbs        float64      `json:"carbs"`
	Fat          float64      `json:"fat"`
	PrepTimeMin  int          `json:"prep_time_minutes"`
	CookTimeMin  int          `json:"cook_time_minutes"`
	Servings     int          `json:"servings"`
	Ingredients  []Ingredient `json:"ingredients"`
	Instructions []string     `json:"instructions"`
	Tags         []string     `json:"tags,omitempty"`

	MatchedOffers  []string `json:"matched_offers,omitempty"`
	EstimatedPrice float64  `json:"estimated_price,omitempty"`
	ImageURL       string   `json:"image_url,omitempty"`
}
