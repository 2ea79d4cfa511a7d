package shopping

import (
	"testing"

	"meal-planner-api/internal/offers"
	"meal-planner-api/internal/pantry"
	"meal-planner-api/internal/recipe"
)

func TestBuild(t *testing.T) {
	t.Run("GroupsByNormalizedName", func(t *testing.T) {
		chosen := []recipe.Candidate{
			{ID: "a", Ingredients: []recipe.Ingredient{
				{Name: "Chicken Breast", Amount: 400, Unit: "g"},
				{Name: "rice", Amount: 200, Unit: "g"},
			}},
			{ID: "b", Ingredients: []recipe.Ingredient{
				{Name: "chicken breast ", Amount: 300, Unit: "g"},
			}},
		}

		list := Build(chosen, nil, nil)

		if len(list.Items) != 2 {
			t.Fatalf("items = %d, want 2", len(list.Items))
		}
		if list.Items[0].Name != "Chicken Breast" || list.Items[0].Amount != 700 {
			t.Errorf("first item = %+v, want Chicken Breast 700", list.Items[0])
		}
	})

	t.Run("CountsReusedRecipesOnce", func(t *testing.T) {
		pasta := recipe.Candidate{ID: "a", Ingredients: []recipe.Ingredient{
			{Name: "spaghetti", Amount: 500, Unit: "g"},
		}}
		// The schedule hands back the same recipe for several days.
		list := Build([]recipe.Candidate{pasta, pasta, pasta}, nil, nil)

		if list.Items[0].Amount != 500 {
			t.Errorf("amount = %v, want 500", list.Items[0].Amount)
		}
	})

	t.Run("DedupesByTitleWhenIDMissing", func(t *testing.T) {
		stew := recipe.Candidate{Title: "Stew", Ingredients: []recipe.Ingredient{
			{Name: "beef", Amount: 400, Unit: "g"},
		}}
		list := Build([]recipe.Candidate{stew, stew}, nil, nil)

		if list.Items[0].Amount != 400 {
			t.Errorf("amount = %v, want 400", list.Items[0].Amount)
		}
	})

	t.Run("DropsItemsFullyCoveredByInventory", func(t *testing.T) {
		chosen := []recipe.Candidate{
			{ID: "a", Ingredients: []recipe.Ingredient{
				{Name: "æg", Amount: 6, Unit: "pcs"},
			}},
		}
		inventory := []pantry.Item{{Name: "Æg", Quantity: 6, Unit: "pcs"}}

		list := Build(chosen, inventory, nil)

		if len(list.Items) != 0 {
			t.Fatalf("items = %d, want 0", len(list.Items))
		}
	})

	t.Run("NetsPartialInventoryCoverage", func(t *testing.T) {
		chosen := []recipe.Candidate{
			{ID: "a", Ingredients: []recipe.Ingredient{
				{Name: "æg", Amount: 10, Unit: "pcs"},
			}},
		}
		inventory := []pantry.Item{{Name: "æg", Quantity: 4, Unit: "pcs"}}

		list := Build(chosen, inventory, nil)

		if len(list.Items) != 1 || list.Items[0].Amount != 6 {
			t.Fatalf("items = %+v, want single æg amount 6", list.Items)
		}
	})

	t.Run("IgnoresDepletedInventory", func(t *testing.T) {
		chosen := []recipe.Candidate{
			{ID: "a", Ingredients: []recipe.Ingredient{
				{Name: "milk", Amount: 1, Unit: "l"},
			}},
		}
		inventory := []pantry.Item{{Name: "milk", Quantity: 2, Unit: "l", Depleted: true}}

		list := Build(chosen, inventory, nil)

		if len(list.Items) != 1 {
			t.Fatalf("depleted inventory must not cover items")
		}
	})

	t.Run("MatchesOffersBySubstringFirstWins", func(t *testing.T) {
		chosen := []recipe.Candidate{
			{ID: "a", Ingredients: []recipe.Ingredient{
				{Name: "kylling", Amount: 600, Unit: "g"},
			}},
		}
		active := []offers.Offer{
			{Product: "Dansk kyllingebryst", Chain: "netto", OfferPrice: 35, OriginalPrice: 55},
			{Product: "Kylling hel", Chain: "rema", OfferPrice: 30, OriginalPrice: 45},
		}

		list := Build(chosen, nil, active)

		item := list.Items[0]
		if item.Chain != "netto" || item.OfferPrice != 35 {
			t.Errorf("item = %+v, want first offer (netto, 35)", item)
		}
		if list.Total != 35 {
			t.Errorf("total = %v, want 35", list.Total)
		}
		if list.Savings != 20 {
			t.Errorf("savings = %v, want 20", list.Savings)
		}
	})

	t.Run("MatchesWhenIngredientContainsOfferName", func(t *testing.T) {
		chosen := []recipe.Candidate{
			{ID: "a", Ingredients: []recipe.Ingredient{
				{Name: "smoked salmon fillet", Amount: 200, Unit: "g"},
			}},
		}
		active := []offers.Offer{
			{Product: "salmon", Chain: "føtex", OfferPrice: 40, OriginalPrice: 60},
		}

		list := Build(chosen, nil, active)

		if list.Items[0].Chain != "føtex" {
			t.Errorf("expected reverse containment to match, got %+v", list.Items[0])
		}
	})

	t.Run("ShortNamesMatchLongerCompounds", func(t *testing.T) {
		chosen := []recipe.Candidate{
			{ID: "a", Ingredients: []recipe.Ingredient{
				{Name: "æble", Amount: 4, Unit: "pcs"},
			}},
		}
		active := []offers.Offer{
			{Product: "æblejuice", Chain: "netto", OfferPrice: 12, OriginalPrice: 18},
		}

		list := Build(chosen, nil, active)

		if list.Items[0].Chain != "netto" {
			t.Errorf("containment matching pairs æble with æblejuice, got %+v", list.Items[0])
		}
	})

	t.Run("UnmatchedItemsCostNothing", func(t *testing.T) {
		chosen := []recipe.Candidate{
			{ID: "a", Ingredients: []recipe.Ingredient{
				{Name: "saffron", Amount: 1, Unit: "g"},
			}},
		}

		list := Build(chosen, nil, nil)

		if list.Total != 0 || list.Savings != 0 {
			t.Errorf("total = %v savings = %v, want 0 and 0", list.Total, list.Savings)
		}
	})
}

func TestPriceCandidate(t *testing.T) {
	active := []offers.Offer{
		{Product: "Kyllingebryst", Chain: "netto", OfferPrice: 35, OriginalPrice: 55},
		{Product: "Basmati ris", Chain: "rema", OfferPrice: 15, OriginalPrice: 22},
	}

	t.Run("AnnotatesMatchedOffersAndSumsPrice", func(t *testing.T) {
		c := recipe.Candidate{Ingredients: []recipe.Ingredient{
			{Name: "kylling", Amount: 400, Unit: "g"},
			{Name: "ris", Amount: 200, Unit: "g"},
			{Name: "saffron", Amount: 1, Unit: "g"},
		}}

		matched, price := PriceCandidate(c, active)

		if len(matched) != 2 || matched[0] != "Kyllingebryst" || matched[1] != "Basmati ris" {
			t.Fatalf("matched = %v, want both offer products", matched)
		}
		if price != 50 {
			t.Errorf("price = %v, want 50", price)
		}
	})

	t.Run("NoMatchesYieldsNothing", func(t *testing.T) {
		c := recipe.Candidate{Ingredients: []recipe.Ingredient{
			{Name: "tofu", Amount: 300, Unit: "g"},
		}}

		matched, price := PriceCandidate(c, active)

		if matched != nil || price != 0 {
			t.Errorf("matched = %v price = %v, want none", matched, price)
		}
	})
}
