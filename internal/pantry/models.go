package pantry

import "time"

// Item is one inventory record. Owned by the pantry tracker; the shopping
// list builder only reads it.
type Item struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Quantity  float64    `json:"quantity"`
	Unit      string     `json:"unit"`
	Depleted  bool       `json:"depleted"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// ParsedItem is an inventory line extracted from free text.
type ParsedItem struct {
	IngredientName string  `json:"ingredient_name"`
	Quantity       float64 `json:"quantity,omitempty"`
	Unit           string  `json:"unit,omitempty"`
	Category       string  `json:"category"`
	ExpiresAt      string  `json:"expires_at,omitempty"`
}

// DetectedItem is an item recognized on a fridge photo.
type DetectedItem struct {
	Name       string  `json:"name"`
	Quantity   float64 `json:"quantity,omitempty"`
	Unit       string  `json:"unit,omitempty"`
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
}
