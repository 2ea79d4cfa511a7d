package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds the configuration for the application.
type Config struct {
	Port         string
	DatabasePath string
	JWTSecret    string

	GeminiAPIKey string
	GeminiModel  string

	// Optional HTTP endpoint of the image generation service. When empty,
	// plans are served without images.
	ImageServiceURL string

	// Defaults applied when a profile carries no base macro targets.
	DefaultCalories float64
	DefaultProtein  float64
	DefaultCarbs    float64
	DefaultFat      float64
}

// NewFromEnv creates a new Config object from environment variables.
func NewFromEnv() (*Config, error) {
	geminiAPIKey := os.Getenv("GEMINI_API_KEY")
	if geminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable not set")
	}

	geminiModel := os.Getenv("GEMINI_MODEL")
	if geminiModel == "" {
		geminiModel = "gemini-2.0-flash"
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	dbPath := os.Getenv("DATABASE_PATH")
	if dbPath == "" {
		dbPath = "data/meal-planner.db"
	}

	return &Config{
		Port:            port,
		DatabasePath:    dbPath,
		JWTSecret:       jwtSecret,
		GeminiAPIKey:    geminiAPIKey,
		GeminiModel:     geminiModel,
		ImageServiceURL: os.Getenv("IMAGE_SERVICE_URL"),
		DefaultCalories: envFloat("DEFAULT_CALORIES", 2000),
		DefaultProtein:  envFloat("DEFAULT_PROTEIN_G", 75),
		DefaultCarbs:    envFloat("DEFAULT_CARBS_G", 250),
		DefaultFat:      envFloat("DEFAULT_FAT_G", 65),
	}, nil
}

func envFloat(key string, fallback float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return v
}
