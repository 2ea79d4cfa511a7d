package planner

import (
	"sort"
	"strings"
	"time"

	"meal-planner-api/internal/offers"
	"meal-planner-api/internal/pantry"
	"meal-planner-api/internal/profile"
	"meal-planner-api/internal/recipe"
)

const (
	maxOfferSample      = 20
	maxLikedIngredients = 30
)

// PlanningInputs gathers every external read the pipeline needs. The loader
// fans the reads out and soft-fails each source to its zero value, so any
// field here may be empty.
type PlanningInputs struct {
	Profile         *profile.ConstraintProfile
	Allergens       []string
	Dislikes        []string
	Likes           []string
	PreferredChains []string
	Swipes          []profile.SwipeRecord
	Extras          []profile.ExtraCalories
	FixedMeals      []profile.FixedMeal
	Inventory       []pantry.Item
	Offers          []offers.Offer
	RecentTitles    []string
}

// Critical constraints must never be violated by a generated recipe.
type Critical struct {
	ExcludedIngredients []string
	RequestedMeals      []recipe.MealType
	PerMealTarget       MacroBudget
	UniqueMealTarget    int
	FixedMeals          []profile.FixedMeal
}

// Important constraints are strongly weighted but may yield.
type Important struct {
	Offers           []offers.Offer
	WeeklyBudget     float64
	LikedIngredients []string
	SeasonalHints    []string
}

// NiceToHave constraints bias generation without binding it.
type NiceToHave struct {
	WeekdayCookMinutes int
	WeekendCookMinutes int
	Inventory          []pantry.Item
	RecentMealTitles   []string
}

// Background carries context that shapes tone and portioning.
type Background struct {
	LikedRecipeTitles []string
	Goal              profile.DietaryGoal
	HouseholdSize     int
}

// Bundle is the four-tier constraint set handed to the request composer.
type Bundle struct {
	Critical   Critical
	Important  Important
	NiceToHave NiceToHave
	Background Background
}

// Aggregate classifies the planning inputs into the four priority tiers.
// Pure transform, no side effects. The critical exclude set always wins:
// the liked set is filtered through it before being handed downstream.
func Aggregate(in PlanningInputs, budget MacroBudget, now time.Time) Bundle {
	p := in.Profile
	if p == nil {
		p = &profile.ConstraintProfile{
			Goal:          profile.GoalMaintain,
			HouseholdSize: 1,
			CookingStyle:  profile.StyleDaily,
		}
	}

	excluded := newStringSet()
	excluded.addAll(in.Allergens)
	excluded.addAll(in.Dislikes)
	liked := newStringSet()
	liked.addAll(in.Likes)

	var likedTitles []string
	for _, s := range in.Swipes {
		if s.Accepted {
			liked.addAll(s.Ingredients)
			likedTitles = append(likedTitles, s.RecipeTitle)
		} else {
			excluded.addAll(s.Ingredients)
		}
	}

	requested := p.RequestedMeals()

	offerSample := make([]offers.Offer, len(in.Offers))
	copy(offerSample, in.Offers)
	sort.Slice(offerSample, func(i, j int) bool {
		return offerSample[i].OfferPrice < offerSample[j].OfferPrice
	})
	if len(offerSample) > maxOfferSample {
		offerSample = offerSample[:maxOfferSample]
	}

	likedList := liked.except(excluded)
	if len(likedList) > maxLikedIngredients {
		likedList = likedList[:maxLikedIngredients]
	}

	return Bundle{
		Critical: Critical{
			ExcludedIngredients: excluded.sorted(),
			RequestedMeals:      requested,
			PerMealTarget:       budget.PerMeal(len(requested)),
			UniqueMealTarget:    p.CookingStyle.UniqueMeals(),
			FixedMeals:          in.FixedMeals,
		},
		Important: Important{
			Offers:           offerSample,
			WeeklyBudget:     p.WeeklyBudget,
			LikedIngredients: likedList,
			SeasonalHints:    seasonalHints(now.Month()),
		},
		NiceToHave: NiceToHave{
			WeekdayCookMinutes: p.WeekdayCookMinutes,
			WeekendCookMinutes: p.WeekendCookMinutes,
			Inventory:          in.Inventory,
			RecentMealTitles:   in.RecentTitles,
		},
		Background: Background{
			LikedRecipeTitles: likedTitles,
			Goal:              p.Goal,
			HouseholdSize:     p.HouseholdSize,
		},
	}
}

// seasonalHints maps the calendar month onto a four-season ingredient table.
func seasonalHints(m time.Month) []string {
	switch m {
	case time.December, time.January, time.February:
		return []string{"kale", "leeks", "root vegetables", "brussels sprouts", "winter squash"}
	case time.March, time.April, time.May:
		return []string{"asparagus", "spinach", "radishes", "rhubarb", "new potatoes"}
	case time.June, time.July, time.August:
		return []string{"tomatoes", "strawberries", "zucchini", "green beans", "fresh herbs"}
	default:
		return []string{"pumpkin", "mushrooms", "apples", "cabbage", "beets"}
	}
}

// stringSet deduplicates case-insensitively while preserving insertion order.
type stringSet struct {
	seen  map[string]struct{}
	items []string
}

func newStringSet() *stringSet {
	return &stringSet{seen: make(map[string]struct{})}
}

func (s *stringSet) add(v string) {
	key := strings.ToLower(strings.TrimSpace(v))
	if key == "" {
		return
	}
	if _, ok := s.seen[key]; ok {
		return
	}
	s.seen[key] = struct{}{}
	s.items = append(s.items, key)
}

func (s *stringSet) addAll(vs []string) {
	for _, v := range vs {
		s.add(v)
	}
}

func (s *stringSet) contains(v string) bool {
	_, ok := s.seen[strings.ToLower(strings.TrimSpace(v))]
	return ok
}

// except returns the members not present in other, in insertion order.
func (s *stringSet) except(other *stringSet) []string {
	var out []string
	for _, v := range s.items {
		if !other.contains(v) {
			out = append(out, v)
		}
	}
	return out
}

func (s *stringSet) sorted() []string {
	out := make([]string, len(s.items))
	copy(out, s.items)
	sort.Strings(out)
	return out
}
