package planner

import (
	"math"

	"meal-planner-api/internal/profile"
)

// MacroBudget is the daily calorie/macro allowance remaining for planned
// meals. Every field is >= 0.
type MacroBudget struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein_g"`
	Carbs    float64 `json:"carbs_g"`
	Fat      float64 `json:"fat_g"`
}

// DefaultBaseTargets is substituted by the caller when a profile carries no
// base macro targets. ComputeBudget itself has no fallback logic.
var DefaultBaseTargets = MacroBudget{Calories: 2000, Protein: 75, Carbs: 250, Fat: 65}

// ComputeBudget derives the macro allowance available for planned meals:
// base targets minus recurring extra consumption (declared per week,
// amortized per day) minus fixed recurring meals (every-day meals count in
// full, single-day meals are amortized across the week). Each field is
// rounded to the nearest whole unit and clamped at zero.
func ComputeBudget(base MacroBudget, extras []profile.ExtraCalories, fixed []profile.FixedMeal) MacroBudget {
	var extraPerDay MacroBudget
	for _, e := range extras {
		extraPerDay.Calories += e.CaloriesPerWeek / 7
		extraPerDay.Protein += e.ProteinPerWeek / 7
		extraPerDay.Carbs += e.CarbsPerWeek / 7
		extraPerDay.Fat += e.FatPerWeek / 7
	}

	var fixedPerDay MacroBudget
	for _, f := range fixed {
		divisor := 7.0
		if f.Scope == profile.ScopeEveryDay {
			divisor = 1
		}
		fixedPerDay.Calories += f.Calories / divisor
		fixedPerDay.Protein += f.Protein / divisor
		fixedPerDay.Carbs += f.Carbs / divisor
		fixedPerDay.Fat += f.Fat / divisor
	}

	return MacroBudget{
		Calories: available(base.Calories, extraPerDay.Calories, fixedPerDay.Calories),
		Protein:  available(base.Protein, extraPerDay.Protein, fixedPerDay.Protein),
		Carbs:    available(base.Carbs, extraPerDay.Carbs, fixedPerDay.Carbs),
		Fat:      available(base.Fat, extraPerDay.Fat, fixedPerDay.Fat),
	}
}

func available(base, extra, fixed float64) float64 {
	v := math.Round(base - extra - fixed)
	if v < 0 {
		return 0
	}
	return v
}

// PerMeal divides the daily budget evenly across the requested meal count.
func (b MacroBudget) PerMeal(mealCount int) MacroBudget {
	if mealCount < 1 {
		return MacroBudget{}
	}
	n := float64(mealCount)
	return MacroBudget{
		Calories: math.Round(b.Calories / n),
		Protein:  math.Round(b.Protein / n),
		Carbs:    math.Round(b.Carbs / n),
		Fat:      math.Round(b.Fat / n),
	}
}
