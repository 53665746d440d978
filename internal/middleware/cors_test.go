package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guy32807/travel-recommentation/internal/middleware"
)

// trivialHandler is a minimal http.Handler that always returns 200.
var trivialHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

const clientOrigin = "http://localhost:3000"

// TestCORSHandler_GET_AllowedOrigin verifies that a GET from an allowed origin
// receives the Access-Control-Allow-Origin and credentials headers.
func TestCORSHandler_GET_AllowedOrigin(t *testing.T) {
	h := middleware.NewCORSHandler([]string{clientOrigin})(trivialHandler)

	req := httptest.NewRequest(http.MethodGet, "/api/recommendations", nil)
	req.Header.Set("Origin", clientOrigin)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, clientOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
}

// TestCORSHandler_OPTIONS_Preflight verifies that a preflight for a JSON PUT
// returns a 2xx status and the necessary CORS headers.
func TestCORSHandler_OPTIONS_Preflight(t *testing.T) {
	h := middleware.NewCORSHandler([]string{clientOrigin})(trivialHandler)

	req := httptest.NewRequest(http.MethodOptions, "/api/recommendations/abc", nil)
	req.Header.Set("Origin", clientOrigin)
	req.Header.Set("Access-Control-Request-Method", http.MethodPut)
	// rs/cors compares requested headers in lowercase, as browsers send them.
	req.Header.Set("Access-Control-Request-Headers", "content-type")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.True(t, rec.Code == http.StatusNoContent || rec.Code == http.StatusOK,
		"expected 2xx for OPTIONS preflight, got %d", rec.Code)
	assert.Equal(t, clientOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, http.MethodPut, rec.Header().Get("Access-Control-Allow-Methods"))
}

// TestCORSHandler_GET_DisallowedOrigin verifies that a request from a
// disallowed origin does NOT receive the Access-Control-Allow-Origin header.
func TestCORSHandler_GET_DisallowedOrigin(t *testing.T) {
	h := middleware.NewCORSHandler([]string{clientOrigin})(trivialHandler)

	req := httptest.NewRequest(http.MethodGet, "/api/recommendations", nil)
	req.Header.Set("Origin", "http://evil.example.com")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
