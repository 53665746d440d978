package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the store.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field, unknown climate).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrNotConfigured is returned by provider clients whose credentials are not
// set. Handlers should map this to HTTP 503.
var ErrNotConfigured = errors.New("provider not configured")

// ErrUpstreamAuth is returned when a provider rejects or fails our own
// credential exchange (e.g. the Amadeus token endpoint).
var ErrUpstreamAuth = errors.New("upstream authentication failed")

// UpstreamError describes a non-2xx answer from a third-party API.
// StatusCode is zero when no HTTP response was received.
type UpstreamError struct {
	Provider   string
	StatusCode int
	// Body is the upstream payload when it was valid JSON, nil otherwise.
	Body json.RawMessage
	Err  error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s: request failed: %v", e.Provider, e.Err)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: upstream returned %d: %v", e.Provider, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: upstream returned %d", e.Provider, e.StatusCode)
}

func (e *UpstreamError) Unwrap() error { return e.Err }
