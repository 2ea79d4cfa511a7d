package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"meal-planner-api/internal/app"
	"meal-planner-api/internal/config"
	"meal-planner-api/internal/database"
	"meal-planner-api/internal/images"
	"meal-planner-api/internal/llm"
	"meal-planner-api/internal/logging"
	"meal-planner-api/internal/metrics"
	"meal-planner-api/internal/offers"
	"meal-planner-api/internal/pantry"
	"meal-planner-api/internal/planner"
	"meal-planner-api/internal/profile"
	"meal-planner-api/internal/router"
	"meal-planner-api/internal/shopping"
)

func main() {
	_ = godotenv.Load()
	logging.Init()
	defer logging.Sync()

	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	geminiClient, err := llm.NewGeminiClient(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to create Gemini client: %v", err)
	}
	defer geminiClient.Close()

	db, err := database.NewDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	profileRepo := profile.NewRepository(db.SQL)
	pantryRepo := pantry.NewRepository(db.SQL)
	offersRepo := offers.NewRepository(db.SQL)
	planRepo := planner.NewPlanRepository(db.SQL)
	listRepo := shopping.NewRepository(db.SQL)
	metricsStore := metrics.NewStore(db.SQL)

	imageRepo := images.NewRepository(db.SQL)
	var enricher planner.ImageEnricher
	if cfg.ImageServiceURL != "" {
		enricher = images.NewEnricher(
			images.NewHTTPGenerator(cfg.ImageServiceURL),
			func(title, url string) {
				if err := imageRepo.Save(context.Background(), title, url); err != nil {
					logging.L().Warn("failed to cache recipe image", zap.Error(err))
				}
			})
	}

	defaults := planner.MacroBudget{
		Calories: cfg.DefaultCalories,
		Protein:  cfg.DefaultProtein,
		Carbs:    cfg.DefaultCarbs,
		Fat:      cfg.DefaultFat,
	}
	mealPlanner := planner.NewPlanner(geminiClient, profileRepo, pantryRepo, offersRepo, planRepo, enricher, imageRepo, defaults)

	application := app.New(mealPlanner, geminiClient, geminiClient, listRepo, pantryRepo, offersRepo, metricsStore)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router.New(application, cfg.JWTSecret, cfg.DatabasePath),
	}

	go func() {
		log.Printf("API server listening on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}
