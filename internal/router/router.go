// Package router exposes the operations over HTTP.
package router

import (
	"encoding/base64"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"meal-planner-api/internal/apperrors"
	"meal-planner-api/internal/app"
	"meal-planner-api/internal/auth"
	"meal-planner-api/internal/logging"
	"meal-planner-api/internal/metrics"
	"meal-planner-api/internal/planner"
)

// New builds the HTTP router. All operation routes sit behind the JWT
// bearer middleware.
func New(a *app.App, jwtSecret, databasePath string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "system": metrics.GetHealth(databasePath)})
	})

	api := r.Group("/api/v1", auth.Middleware(jwtSecret))
	api.POST("/plans", generatePlan(a))
	api.POST("/shopping-lists", generateShoppingList(a))
	api.POST("/pantry/photo", analyzeFridgePhoto(a))
	api.POST("/pantry/parse", parseInventoryText(a))
	api.POST("/calories/estimate", estimateCalories(a))

	return r
}

func generatePlan(a *app.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req planner.GenerateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		result, err := a.GenerateMealPlan(c.Request.Context(), auth.UserID(c), req)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

func generateShoppingList(a *app.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req app.ShoppingListRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		if len(req.Recipes) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no recipes selected"})
			return
		}

		list, err := a.GenerateShoppingList(c.Request.Context(), auth.UserID(c), req)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"id": list.ID, "list": list})
	}
}

type photoRequest struct {
	Image  string `json:"image" binding:"required"`
	Format string `json:"format"`
}

func analyzeFridgePhoto(a *app.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req photoRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		image, err := base64.StdEncoding.DecodeString(req.Image)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "image is not valid base64"})
			return
		}
		format := req.Format
		if format == "" {
			format = "jpeg"
		}

		items, err := a.AnalyzeFridgePhoto(c.Request.Context(), format, image)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": items})
	}
}

type parseRequest struct {
	Text     string `json:"text" binding:"required"`
	Category string `json:"category"`
}

func parseInventoryText(a *app.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req parseRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		category := req.Category
		if category == "" {
			category = "pantry"
		}

		items, err := a.ParseInventoryText(c.Request.Context(), req.Text, category)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": items})
	}
}

type estimateRequest struct {
	Text   string `json:"text"`
	Image  string `json:"image"`
	Format string `json:"format"`
}

func estimateCalories(a *app.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req estimateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		var image []byte
		if req.Image != "" {
			var err error
			image, err = base64.StdEncoding.DecodeString(req.Image)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "image is not valid base64"})
				return
			}
		}
		if req.Text == "" && len(image) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "text or image required"})
			return
		}
		format := req.Format
		if format == "" {
			format = "jpeg"
		}

		estimate, err := a.EstimateCalories(c.Request.Context(), req.Text, format, image)
		if errors.Is(err, planner.ErrNoEstimateInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "text or image required"})
			return
		}
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, estimate)
	}
}

// fail maps the error taxonomy onto HTTP statuses.
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	case errors.Is(err, apperrors.ErrRateLimited):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "the generation service is rate limited, try again shortly"})
	case errors.Is(err, apperrors.ErrQuotaExhausted):
		c.JSON(http.StatusPaymentRequired, gin.H{"error": "the generation service quota is exhausted"})
	case errors.Is(err, apperrors.ErrParse):
		c.JSON(http.StatusBadGateway, gin.H{"error": "the generation service returned an unusable reply"})
	case errors.Is(err, apperrors.ErrUpstream):
		c.JSON(http.StatusBadGateway, gin.H{"error": "the generation service failed"})
	case errors.Is(err, apperrors.ErrPersistence):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store the result"})
	default:
		logging.L().Error("unclassified operation error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
