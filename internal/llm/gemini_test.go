package llm

import (
	"errors"
	"fmt"
	"testing"

	"meal-planner-api/internal/apperrors"

	"google.golang.org/api/googleapi"
)

func TestMapUpstreamError(t *testing.T) {
	t.Run("RateLimited", func(t *testing.T) {
		err := mapUpstreamError(&googleapi.Error{Code: 429, Message: "Resource has been exhausted (e.g. check rate limits)"})
		if !errors.Is(err, apperrors.ErrRateLimited) {
			t.Errorf("Expected ErrRateLimited, got %v", err)
		}
	})

	t.Run("QuotaExhausted", func(t *testing.T) {
		err := mapUpstreamError(&googleapi.Error{Code: 429, Message: "You exceeded your current quota, please check your plan and billing details"})
		if !errors.Is(err, apperrors.ErrQuotaExhausted) {
			t.Errorf("Expected ErrQuotaExhausted, got %v", err)
		}
	})

	t.Run("OtherAPIError", func(t *testing.T) {
		err := mapUpstreamError(&googleapi.Error{Code: 500, Message: "internal"})
		if !errors.Is(err, apperrors.ErrUpstream) {
			t.Errorf("Expected ErrUpstream, got %v", err)
		}
		if errors.Is(err, apperrors.ErrRateLimited) {
			t.Error("500 must not map to ErrRateLimited")
		}
	})

	t.Run("TransportError", func(t *testing.T) {
		err := mapUpstreamError(fmt.Errorf("dial tcp: connection refused"))
		if !errors.Is(err, apperrors.ErrUpstream) {
			t.Errorf("Expected ErrUpstream, got %v", err)
		}
	})
}
