// Package shopping derives a netted, offer-priced shopping list from a
// chosen recipe set.
package shopping

// Item is one line of a shopping list. Price is the regular shelf price
// of a matched offer product; OfferPrice is its discounted price. Both are
// zero when no offer matched.
type Item struct {
	Name       string  `json:"name"`
	Amount     float64 `json:"amount"`
	Unit       string  `json:"unit"`
	Price      float64 `json:"price,omitempty"`
	OfferPrice float64 `json:"offer_price,omitempty"`
	Chain      string  `json:"chain,omitempty"`
	// Checked is toggled by the user while shopping; the builder always
	// emits it false.
	Checked bool `json:"checked"`
}

// List is the derived shopping list. Total sums the best known price per
// item; Savings sums the discount across offer-matched items.
type List struct {
	ID         string  `json:"id"`
	MealPlanID string  `json:"meal_plan_id,omitempty"`
	Items      []Item  `json:"items"`
	Total      float64 `json:"total"`
	Savings    float64 `json:"savings"`
}
