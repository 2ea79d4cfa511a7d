// Package app ties the pipeline components into the externally callable
// operations. Each operation assumes the caller identity is already
// resolved and records execution metrics on the way out.
package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"meal-planner-api/internal/apperrors"
	"meal-planner-api/internal/llm"
	"meal-planner-api/internal/logging"
	"meal-planner-api/internal/metrics"
	"meal-planner-api/internal/offers"
	"meal-planner-api/internal/pantry"
	"meal-planner-api/internal/planner"
	"meal-planner-api/internal/recipe"
	"meal-planner-api/internal/shared"
	"meal-planner-api/internal/shopping"
)

// App exposes the five operations of the service.
type App struct {
	planner   *planner.Planner
	textGen   llm.TextGenerator
	visionGen llm.VisionGenerator
	lists     *shopping.Repository
	pantry    *pantry.Repository
	offers    *offers.Repository
	metrics   *metrics.Store
}

// New creates the App.
func New(p *planner.Planner, textGen llm.TextGenerator, visionGen llm.VisionGenerator, lists *shopping.Repository, pantryRepo *pantry.Repository, offersRepo *offers.Repository, store *metrics.Store) *App {
	return &App{
		planner:   p,
		textGen:   textGen,
		visionGen: visionGen,
		lists:     lists,
		pantry:    pantryRepo,
		offers:    offersRepo,
		metrics:   store,
	}
}

// GenerateMealPlan runs the full generation pipeline for the user.
func (a *App) GenerateMealPlan(ctx context.Context, userID string, req planner.GenerateRequest) (*planner.GenerateResult, error) {
	result, err := a.planner.Generate(ctx, userID, req)
	if err != nil {
		return nil, err
	}
	for _, meta := range result.Metas {
		a.recordMeta(ctx, meta)
	}
	return result, nil
}

// ShoppingListRequest carries the user-curated recipe selection.
type ShoppingListRequest struct {
	Recipes    []recipe.Candidate `json:"recipes"`
	MealPlanID string             `json:"meal_plan_id,omitempty"`
}

// GenerateShoppingList derives and persists a shopping list from the
// user's final recipe selection.
func (a *App) GenerateShoppingList(ctx context.Context, userID string, req ShoppingListRequest) (*shopping.List, error) {
	inventory, err := a.pantry.ListActive(ctx, userID)
	if err != nil {
		logging.L().Warn("inventory unavailable for shopping list", zap.Error(err))
		inventory = nil
	}

	active, err := a.offers.ListActive(ctx, time.Now(), nil)
	if err != nil {
		logging.L().Warn("offers unavailable for shopping list", zap.Error(err))
		active = nil
	}

	list := shopping.Build(req.Recipes, inventory, active)
	list.MealPlanID = req.MealPlanID
	if err := a.lists.Save(ctx, userID, list); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
	}
	return &list, nil
}

// AnalyzeFridgePhoto lists the food items visible on a photo.
func (a *App) AnalyzeFridgePhoto(ctx context.Context, imageFormat string, image []byte) ([]pantry.DetectedItem, error) {
	items, meta, err := pantry.AnalyzeFridgePhoto(ctx, a.visionGen, imageFormat, image)
	a.recordMeta(ctx, meta)
	return items, err
}

// EstimateCalories assesses the weekly impact of a described habit.
func (a *App) EstimateCalories(ctx context.Context, text, imageFormat string, image []byte) (*planner.CalorieEstimate, error) {
	estimate, meta, err := planner.EstimateCalories(ctx, a.textGen, a.visionGen, text, imageFormat, image)
	a.recordMeta(ctx, meta)
	return estimate, err
}

// ParseInventoryText turns a free-text pantry description into structured
// inventory lines.
func (a *App) ParseInventoryText(ctx context.Context, text, category string) ([]pantry.ParsedItem, error) {
	items, meta, err := pantry.ParseInventoryText(ctx, a.textGen, text, category)
	a.recordMeta(ctx, meta)
	return items, err
}

func (a *App) recordMeta(ctx context.Context, meta shared.AgentMeta) {
	if a.metrics == nil || meta.AgentName == "" {
		return
	}
	if err := a.metrics.RecordMeta(ctx, meta); err != nil {
		logging.L().Warn("failed to record execution metric",
			zap.String("agent", meta.AgentName), zap.Error(err))
	}
}
