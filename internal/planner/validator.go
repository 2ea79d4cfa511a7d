package planner

import (
	"fmt"
	"strings"

	"meal-planner-api/internal/recipe"
)

// The generation service is unreliable at scaling ingredient quantities to
// the stated serving count. This validator deterministically detects and
// rewrites implausible totals. It runs once per candidate, synchronously,
// no I/O. Corrections never reduce an amount.

// minGramsPerPortion is the catch-all plausibility floor for the
// per-portion mass of a multi-serving recipe.
const minGramsPerPortion = 300.0

// ingredientClass is the keyword classification used by the per-ingredient
// minimum-mass check.
type ingredientClass string

const (
	classProtein    ingredientClass = "protein"
	classPotato     ingredientClass = "potato"
	classLegume     ingredientClass = "legume"
	classCarbStaple ingredientClass = "carb-staple"
	classCheese     ingredientClass = "cheese"
	classVegetable  ingredientClass = "vegetable"
	classOther      ingredientClass = "other"
)

// minGramsPerPerson is the per-person minimum-mass table. Cheese and
// vegetable have defined minimums but are not wired into automatic
// correction; only the classes in autoCorrected get rewritten.
var minGramsPerPerson = map[ingredientClass]float64{
	classProtein:    100,
	classPotato:     150,
	classLegume:     50,
	classCarbStaple: 70,
	classCheese:     25,
	classVegetable:  80,
}

var autoCorrected = map[ingredientClass]bool{
	classProtein:    true,
	classPotato:     true,
	classLegume:     true,
	classCarbStaple: true,
}

// classKeywords matches case-insensitively on ingredient-name substrings.
// The Danish terms cover the retail offers the household pipeline sees.
var classKeywords = []struct {
	class    ingredientClass
	keywords []string
}{
	{classProtein, []string{
		"chicken", "beef", "pork", "lamb", "turkey", "veal", "steak", "mince",
		"fish", "salmon", "tuna", "cod", "shrimp", "prawn", "seafood",
		"kylling", "oksekød", "svinekød", "hakket", "laks", "torsk", "rejer",
	}},
	{classPotato, []string{"potato", "potatoes", "kartoffel", "kartofler"}},
	{classLegume, []string{
		"lentil", "bean", "chickpea", "linser", "bønner", "kikærter",
	}},
	{classCarbStaple, []string{
		"pasta", "spaghetti", "macaroni", "noodle", "rice", "couscous",
		"quinoa", "bulgur", "grain", "ris", "nudler",
	}},
	{classCheese, []string{"cheese", "ost", "parmesan", "mozzarella", "feta"}},
	{classVegetable, []string{
		"broccoli", "carrot", "pepper", "zucchini", "spinach", "salad",
		"cauliflower", "grøntsag", "gulerod", "squash",
	}},
}

func classify(name string) ingredientClass {
	lower := strings.ToLower(name)
	for _, entry := range classKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(lower, kw) {
				return entry.class
			}
		}
	}
	return classOther
}

// ValidationResult reports what the validator did to one candidate. It is
// ephemeral: produced and consumed within one generation call.
type ValidationResult struct {
	CatchAllApplied bool
	// Corrected flags, indexed like the candidate's ingredient list.
	Corrected []bool
	Reasons   []string
	// Per-serving totals after correction. Volume is tracked separately
	// and never feeds the catch-all threshold.
	PerServingMassGrams float64
	PerServingVolumeMl  float64
}

// ValidateQuantities checks and corrects the candidate's ingredient
// amounts in place.
//
// Step 1, catch-all: when the recipe serves more than one and the summed
// mass per portion is under the floor, every mass- or volume-denominated
// amount is multiplied by the serving count, unit unchanged. Single pass:
// the corrected total is not re-checked against the floor.
//
// Step 2, per-ingredient minimums: only when the catch-all did not fire.
// Mass-denominated ingredients in an auto-corrected class are raised to
// class minimum × servings, unit forced to grams. Re-running this step on
// an already corrected ingredient changes nothing.
func ValidateQuantities(c *recipe.Candidate) ValidationResult {
	res := ValidationResult{Corrected: make([]bool, len(c.Ingredients))}
	if c.Servings < 1 {
		c.Servings = 1
	}
	servings := float64(c.Servings)

	if total := totalGrams(c.Ingredients); c.Servings > 1 && total/servings < minGramsPerPortion {
		res.CatchAllApplied = true
		for i := range c.Ingredients {
			if !c.Ingredients[i].IsScalable() {
				continue
			}
			c.Ingredients[i].Amount *= recipe.Amount(c.Servings)
			res.Corrected[i] = true
		}
		res.Reasons = append(res.Reasons, fmt.Sprintf(
			"catch-all: %.0f g per portion below %.0f g floor, amounts multiplied by %d servings",
			total/servings, minGramsPerPortion, c.Servings))
	}

	if !res.CatchAllApplied {
		for i := range c.Ingredients {
			ing := &c.Ingredients[i]
			grams, ok := ing.Grams()
			if !ok {
				continue
			}
			class := classify(ing.Name)
			if !autoCorrected[class] {
				continue
			}
			minPerPerson := minGramsPerPerson[class]
			if grams/servings >= minPerPerson {
				continue
			}
			ing.Amount = recipe.Amount(minPerPerson * servings)
			ing.Unit = recipe.UnitGram
			res.Corrected[i] = true
			res.Reasons = append(res.Reasons, fmt.Sprintf(
				"%s: %.0f g per person below %s minimum of %.0f g, raised to %.0f g total",
				ing.Name, grams/servings, class, minPerPerson, minPerPerson*servings))
		}
	}

	res.PerServingMassGrams = totalGrams(c.Ingredients) / servings
	res.PerServingVolumeMl = totalMilliliters(c.Ingredients) / servings
	return res
}

// totalGrams sums the mass-denominated ingredient amounts. Volume units do
// not contribute: the catch-all threshold is mass only.
func totalGrams(ingredients []recipe.Ingredient) float64 {
	var total float64
	for _, ing := range ingredients {
		if g, ok := ing.Grams(); ok {
			total += g
		}
	}
	return total
}

func totalMilliliters(ingredients []recipe.Ingredient) float64 {
	var total float64
	for _, ing := range ingredients {
		if ml, ok := ing.Milliliters(); ok {
			total += ml
		}
	}
	return total
}
