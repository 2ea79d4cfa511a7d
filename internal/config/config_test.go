package config

import (
	"os"
	"testing"
)

func TestNewFromEnv(t *testing.T) {
	setEnv := func(key, value string) {
		t.Helper()
		t.Setenv(key, value)
	}

	t.Run("Success", func(t *testing.T) {
		setEnv("GEMINI_API_KEY", "gemini_key")
		setEnv("JWT_SECRET", "secret")

		cfg, err := NewFromEnv()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if cfg.GeminiAPIKey != "gemini_key" {
			t.Errorf("Expected GeminiAPIKey to be 'gemini_key', got '%s'", cfg.GeminiAPIKey)
		}
		if cfg.JWTSecret != "secret" {
			t.Errorf("Expected JWTSecret to be 'secret', got '%s'", cfg.JWTSecret)
		}
		if cfg.Port != "8080" {
			t.Errorf("Expected default port '8080', got '%s'", cfg.Port)
		}
		if cfg.GeminiModel != "gemini-2.0-flash" {
			t.Errorf("Expected default model 'gemini-2.0-flash', got '%s'", cfg.GeminiModel)
		}
		if cfg.DefaultCalories != 2000 {
			t.Errorf("Expected default calories 2000, got %v", cfg.DefaultCalories)
		}
	})

	t.Run("MissingGeminiAPIKey", func(t *testing.T) {
		setEnv("JWT_SECRET", "secret")
		os.Unsetenv("GEMINI_API_KEY")

		_, err := NewFromEnv()
		if err == nil {
			t.Fatal("Expected an error for missing GEMINI_API_KEY, got nil")
		}
		expectedError := "GEMINI_API_KEY environment variable not set"
		if err.Error() != expectedError {
			t.Errorf("Expected error '%s', got '%s'", expectedError, err.Error())
		}
	})

	t.Run("MissingJWTSecret", func(t *testing.T) {
		setEnv("GEMINI_API_KEY", "gemini_key")
		os.Unsetenv("JWT_SECRET")

		_, err := NewFromEnv()
		if err == nil {
			t.Fatal("Expected an error for missing JWT_SECRET, got nil")
		}
		expectedError := "JWT_SECRET environment variable not set"
		if err.Error() != expectedError {
			t.Errorf("Expected error '%s', got '%s'", expectedError, err.Error())
		}
	})

	t.Run("Overrides", func(t *testing.T) {
		setEnv("GEMINI_API_KEY", "gemini_key")
		setEnv("JWT_SECRET", "secret")
		setEnv("PORT", "9090")
		setEnv("DEFAULT_CALORIES", "1800")
		setEnv("DEFAULT_PROTEIN_G", "not-a-number")

		cfg, err := NewFromEnv()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if cfg.Port != "9090" {
			t.Errorf("Expected port '9090', got '%s'", cfg.Port)
		}
		if cfg.DefaultCalories != 1800 {
			t.Errorf("Expected calories 1800, got %v", cfg.DefaultCalories)
		}
		if cfg.DefaultProtein != 75 {
			t.Errorf("Expected unparsable protein override to fall back to 75, got %v", cfg.DefaultProtein)
		}
	})
}
