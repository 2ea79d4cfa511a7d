// Package planner runs the meal-plan generation pipeline: aggregate
// constraints, compute macro budgets, compose the generation request,
// parse and validate the reply, schedule the week and derive the shopping
// summary.
package planner

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"meal-planner-api/internal/apperrors"
	"meal-planner-api/internal/llm"
	"meal-planner-api/internal/logging"
	"meal-planner-api/internal/offers"
	"meal-planner-api/internal/pantry"
	"meal-planner-api/internal/profile"
	"meal-planner-api/internal/recipe"
	"meal-planner-api/internal/shared"
	"meal-planner-api/internal/shopping"
)

const swipeHistoryLimit = 50

// ImageEnricher kicks off asynchronous image generation for candidates.
type ImageEnricher interface {
	EnrichAsync(candidates []recipe.Candidate)
}

// ImageLookup resolves already generated image URLs by recipe title.
type ImageLookup interface {
	Lookup(ctx context.Context, titles []string) (map[string]string, error)
}

// Planner orchestrates one generation request end to end.
type Planner struct {
	textGen  llm.TextGenerator
	profiles *profile.Repository
	pantry   *pantry.Repository
	offers   *offers.Repository
	plans    *PlanRepository
	enricher ImageEnricher
	images   ImageLookup
	defaults MacroBudget
}

// NewPlanner wires the pipeline. enricher and imageLookup may be nil when
// no image service is configured.
func NewPlanner(textGen llm.TextGenerator, profiles *profile.Repository, pantryRepo *pantry.Repository, offersRepo *offers.Repository, plans *PlanRepository, enricher ImageEnricher, imageLookup ImageLookup, defaults MacroBudget) *Planner {
	return &Planner{
		textGen:  textGen,
		profiles: profiles,
		pantry:   pantryRepo,
		offers:   offersRepo,
		plans:    plans,
		enricher: enricher,
		images:   imageLookup,
		defaults: defaults,
	}
}

// GenerateResult is the full outcome of one generation request.
type GenerateResult struct {
	PlanID     string                                 `json:"plan_id"`
	Candidates map[recipe.MealType][]recipe.Candidate `json:"candidates"`
	Plan       WeeklyPlan                             `json:"plan"`
	Shopping   shopping.List                          `json:"shopping_summary"`

	// Metas carries per-agent execution metadata for the metrics store.
	Metas []shared.AgentMeta `json:"-"`
}

// Generate runs the whole pipeline for one user. The generation service
// call is the single blocking step; everything before it is a fan-out of
// reads and everything after is pure transformation plus one persisted
// write.
func (p *Planner) Generate(ctx context.Context, userID string, req GenerateRequest) (*GenerateResult, error) {
	if req.DurationDays < 1 {
		req.DurationDays = 7
	}
	if req.StartDate.IsZero() {
		req.StartDate = time.Now()
	}

	inputs := p.loadInputs(ctx, userID)

	base := p.defaults
	if inputs.Profile != nil && inputs.Profile.HasBaseTargets() {
		base = MacroBudget{
			Calories: inputs.Profile.BaseCalories,
			Protein:  inputs.Profile.BaseProtein,
			Carbs:    inputs.Profile.BaseCarbs,
			Fat:      inputs.Profile.BaseFat,
		}
	}
	budget := ComputeBudget(base, inputs.Extras, inputs.FixedMeals)
	bundle := Aggregate(inputs, budget, time.Now())

	composed, err := ComposeAndGenerate(ctx, p.textGen, bundle, req)
	if err != nil {
		return nil, err
	}

	candidates, err := ParseCandidates(composed.Raw, bundle.Critical.RequestedMeals)
	if err != nil {
		return nil, err
	}

	for _, list := range candidates {
		for i := range list {
			vres := ValidateQuantities(&list[i])
			for _, reason := range vres.Reasons {
				logging.L().Info("quantity correction",
					zap.String("recipe", list[i].Title),
					zap.String("reason", reason))
			}
			list[i].MatchedOffers, list[i].EstimatedPrice = shopping.PriceCandidate(list[i], inputs.Offers)
		}
	}

	p.fillKnownImages(ctx, candidates)

	selected := p.defaultSelection(candidates, bundle, req.DurationDays)
	plan := ComposeSchedule(selected, req.StartDate, req.DurationDays)

	var chosen []recipe.Candidate
	for _, mealType := range recipe.AllMealTypes {
		chosen = append(chosen, selected[mealType]...)
	}
	list := shopping.Build(chosen, inputs.Inventory, inputs.Offers)
	plan.TotalCost = list.Total
	plan.TotalSavings = list.Savings

	if err := p.plans.Replace(ctx, userID, plan); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
	}

	if p.enricher != nil {
		// Only candidates without a cached image need generation.
		var missing []recipe.Candidate
		for _, mealType := range recipe.AllMealTypes {
			for _, c := range candidates[mealType] {
				if c.ImageURL == "" {
					missing = append(missing, c)
				}
			}
		}
		p.enricher.EnrichAsync(missing)
	}

	return &GenerateResult{
		PlanID:     plan.ID,
		Candidates: candidates,
		Plan:       plan,
		Shopping:   list,
		Metas:      []shared.AgentMeta{composed.Meta},
	}, nil
}

// loadInputs fans the planning reads out and joins them. Every source
// soft-fails to its zero value: a broken read shrinks the constraint set,
// it never aborts generation.
func (p *Planner) loadInputs(ctx context.Context, userID string) PlanningInputs {
	var in PlanningInputs
	g, ctx := errgroup.WithContext(ctx)

	softFail := func(source string, fn func() error) func() error {
		return func() error {
			if err := fn(); err != nil {
				logging.L().Warn("planning input unavailable",
					zap.String("source", source), zap.Error(err))
			}
			return nil
		}
	}

	g.Go(softFail("profile", func() error {
		var err error
		in.Profile, err = p.profiles.Get(ctx, userID)
		return err
	}))
	g.Go(softFail("allergens", func() error {
		var err error
		in.Allergens, err = p.profiles.ListAllergens(ctx, userID)
		return err
	}))
	g.Go(softFail("dislikes", func() error {
		var err error
		in.Dislikes, err = p.profiles.ListPreferences(ctx, userID, false)
		return err
	}))
	g.Go(softFail("likes", func() error {
		var err error
		in.Likes, err = p.profiles.ListPreferences(ctx, userID, true)
		return err
	}))
	g.Go(softFail("swipes", func() error {
		var err error
		in.Swipes, err = p.profiles.ListRecentSwipes(ctx, userID, swipeHistoryLimit)
		return err
	}))
	g.Go(softFail("extra_calories", func() error {
		var err error
		in.Extras, err = p.profiles.ListExtraCalories(ctx, userID)
		return err
	}))
	g.Go(softFail("fixed_meals", func() error {
		var err error
		in.FixedMeals, err = p.profiles.ListFixedMeals(ctx, userID)
		return err
	}))
	g.Go(softFail("inventory", func() error {
		var err error
		in.Inventory, err = p.pantry.ListActive(ctx, userID)
		return err
	}))
	g.Go(softFail("offers", func() error {
		// Offers depend on the chain preference, so both reads share one
		// goroutine.
		chains, err := p.profiles.ListPreferredChains(ctx, userID)
		if err != nil {
			return err
		}
		in.PreferredChains = chains
		in.Offers, err = p.offers.ListActive(ctx, time.Now(), chains)
		return err
	}))
	g.Go(softFail("recent_plan", func() error {
		var err error
		in.RecentTitles, err = p.plans.RecentMealTitles(ctx, userID)
		return err
	}))

	// Soft-failed closures never return an error.
	_ = g.Wait()
	return in
}

// fillKnownImages attaches cached image URLs to candidates whose title was
// generated and enriched before. Lookup failure just leaves images empty.
func (p *Planner) fillKnownImages(ctx context.Context, candidates map[recipe.MealType][]recipe.Candidate) {
	if p.images == nil {
		return
	}
	var titles []string
	for _, list := range candidates {
		for _, c := range list {
			titles = append(titles, c.Title)
		}
	}
	known, err := p.images.Lookup(ctx, titles)
	if err != nil {
		logging.L().Warn("image lookup unavailable", zap.Error(err))
		return
	}
	for _, list := range candidates {
		for i := range list {
			if url, ok := known[list[i].Title]; ok {
				list[i].ImageURL = url
			}
		}
	}
}

// defaultSelection picks the leading candidates per meal type so a plan
// and shopping summary exist before the user curates anything. The unique
// meal target from the cooking style caps the pool; the daily style uses
// one distinct recipe per day.
func (p *Planner) defaultSelection(candidates map[recipe.MealType][]recipe.Candidate, bundle Bundle, durationDays int) map[recipe.MealType][]recipe.Candidate {
	want := bundle.Critical.UniqueMealTarget
	if want < 1 {
		want = durationDays
	}

	selected := make(map[recipe.MealType][]recipe.Candidate, len(candidates))
	for _, mealType := range bundle.Critical.RequestedMeals {
		pool := candidates[mealType]
		n := want
		if n > len(pool) {
			n = len(pool)
		}
		selected[mealType] = pool[:n]
	}
	return selected
}
