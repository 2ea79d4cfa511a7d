package shopping

import (
	"strings"

	"github.com/google/uuid"

	"meal-planner-api/internal/offers"
	"meal-planner-api/internal/pantry"
	"meal-planner-api/internal/recipe"
)

// Build derives a shopping list from the chosen recipes, netted against
// the pantry inventory and priced against active offers.
//
// The schedule reuses recipes across days, so the recipe set is
// deduplicated first: each distinct recipe contributes its ingredients
// exactly once. Ingredients are grouped by normalized name, with the unit
// carried from the first occurrence. Mixed units under the same name are
// summed as-is, a known simplification.
func Build(chosen []recipe.Candidate, inventory []pantry.Item, activeOffers []offers.Offer) List {
	list := List{ID: uuid.NewString()}

	type group struct {
		name   string
		amount float64
		unit   string
	}
	var order []string
	groups := map[string]*group{}
	for _, c := range dedupe(chosen) {
		for _, ing := range c.Ingredients {
			key := normalize(ing.Name)
			if key == "" {
				continue
			}
			g, ok := groups[key]
			if !ok {
				g = &group{name: ing.Name, unit: ing.Unit}
				groups[key] = g
				order = append(order, key)
			}
			g.amount += float64(ing.Amount)
		}
	}

	have := map[string]float64{}
	for _, item := range inventory {
		if item.Depleted {
			continue
		}
		have[normalize(item.Name)] += item.Quantity
	}

	for _, key := range order {
		g := groups[key]
		needed := g.amount - have[key]
		if needed <= 0 {
			// Fully covered by the pantry.
			continue
		}

		item := Item{Name: g.name, Amount: needed, Unit: g.unit}
		if offer, ok := matchOffer(key, activeOffers); ok {
			item.Price = offer.OriginalPrice
			item.OfferPrice = offer.OfferPrice
			item.Chain = offer.Chain
			list.Savings += offer.OriginalPrice - offer.OfferPrice
		}
		list.Items = append(list.Items, item)
		list.Total += itemPrice(item)
	}
	return list
}

// PriceCandidate matches one recipe's ingredients against active offers
// and returns the matched product names plus the estimated offer price.
// Used to annotate candidates before the user curates them.
func PriceCandidate(c recipe.Candidate, active []offers.Offer) ([]string, float64) {
	var matched []string
	var price float64
	for _, ing := range c.Ingredients {
		key := normalize(ing.Name)
		if key == "" {
			continue
		}
		if o, ok := matchOffer(key, active); ok {
			matched = append(matched, o.Product)
			price += o.OfferPrice
		}
	}
	return matched, price
}

// matchOffer finds the first active offer whose product name contains the
// ingredient name or vice versa. First match wins, no ranking by discount
// size or specificity. Containment is coarse: short names can match
// longer compounds ("æble" matches "æblejuice").
func matchOffer(ingredient string, active []offers.Offer) (offers.Offer, bool) {
	for _, o := range active {
		product := normalize(o.Product)
		if product == "" {
			continue
		}
		if strings.Contains(product, ingredient) || strings.Contains(ingredient, product) {
			return o, true
		}
	}
	return offers.Offer{}, false
}

func itemPrice(item Item) float64 {
	if item.OfferPrice > 0 {
		return item.OfferPrice
	}
	return item.Price
}

// dedupe drops repeated recipes, matching on ID when present and title
// otherwise.
func dedupe(chosen []recipe.Candidate) []recipe.Candidate {
	seen := map[string]bool{}
	var out []recipe.Candidate
	for _, c := range chosen {
		key := c.ID
		if key == "" {
			key = "title:" + normalize(c.Title)
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, c)
	}
	return out
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
