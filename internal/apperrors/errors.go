// Package apperrors defines the error taxonomy shared across the pipeline.
// Errors are matched with errors.Is and carry context via fmt.Errorf("%w").
package apperrors

import "errors"

var (
	// ErrUnauthorized signals a missing or invalid caller identity.
	// Nothing downstream runs.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrRateLimited signals the generation service returned a 429. The
	// caller may try again shortly; nothing here retries automatically.
	ErrRateLimited = errors.New("generation service rate limited")

	// ErrQuotaExhausted signals billing/credit exhaustion on the
	// generation service. Not retryable.
	ErrQuotaExhausted = errors.New("generation service quota exhausted")

	// ErrUpstream signals any other non-success from the generation service.
	ErrUpstream = errors.New("generation service error")

	// ErrParse signals the service replied but no structured payload could
	// be extracted from the reply.
	ErrParse = errors.New("no structured payload in service reply")

	// ErrPersistence signals the data store rejected a write.
	ErrPersistence = errors.New("persistence failure")
)
