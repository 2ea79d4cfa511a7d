package auth

import (
	"errors"
	"testing"
	"time"

	"meal-planner-api/internal/apperrors"
)

const testSecret = "test-secret"

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken(testSecret, "user-42", time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	userID, err := ValidateToken(testSecret, token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if userID != "user-42" {
		t.Errorf("userID = %q, want user-42", userID)
	}
}

func TestValidateTokenRejections(t *testing.T) {
	t.Run("WrongSecret", func(t *testing.T) {
		token, _ := GenerateToken(testSecret, "user-42", time.Hour)

		_, err := ValidateToken("other-secret", token)
		if !errors.Is(err, apperrors.ErrUnauthorized) {
			t.Fatalf("err = %v, want ErrUnauthorized", err)
		}
	})

	t.Run("Expired", func(t *testing.T) {
		token, _ := GenerateToken(testSecret, "user-42", -time.Minute)

		_, err := ValidateToken(testSecret, token)
		if !errors.Is(err, apperrors.ErrUnauthorized) {
			t.Fatalf("err = %v, want ErrUnauthorized", err)
		}
	})

	t.Run("Garbage", func(t *testing.T) {
		_, err := ValidateToken(testSecret, "not-a-token")
		if !errors.Is(err, apperrors.ErrUnauthorized) {
			t.Fatalf("err = %v, want ErrUnauthorized", err)
		}
	})
}
