package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/guy32807/travel-recommentation/internal/domain"
)

// ErrorDetail is the body of every error response.
type ErrorDetail struct {
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Details json.RawMessage `json:"details,omitempty"`
}

// ErrorResponse wraps ErrorDetail as {"error": {...}}.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeRaw sends upstream JSON as-is.
func writeRaw(w http.ResponseWriter, status int, raw json.RawMessage) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(raw)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: ErrorDetail{Code: code, Message: message}})
}

func badRequest(w http.ResponseWriter, message string) {
	writeError(w, http.StatusBadRequest, "bad_request", message)
}

func notConfigured(w http.ResponseWriter, provider string) {
	writeError(w, http.StatusServiceUnavailable, "not_configured", provider+" is not configured")
}

// fail maps err to a status and error body. subject names what was being
// looked up, for the 404 message.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error, subject string) {
	var (
		upstream *domain.UpstreamError
		tooLarge *http.MaxBytesError
	)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", subject+" not found")
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusUnprocessableEntity, "validation_error", validationMessage(err))
	case errors.As(err, &tooLarge):
		writeError(w, http.StatusRequestEntityTooLarge, "payload_too_large", "request body too large")
	case errors.Is(err, domain.ErrNotConfigured):
		writeError(w, http.StatusServiceUnavailable, "not_configured", subject+" is not configured")
	case errors.Is(err, domain.ErrUpstreamAuth):
		s.log.ErrorContext(r.Context(), "upstream authentication failed", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "upstream_auth_failed", "could not authenticate with "+subject)
	case errors.As(err, &upstream) && upstream.StatusCode > 0:
		s.log.WarnContext(r.Context(), "upstream error",
			"provider", upstream.Provider, "status", upstream.StatusCode, "path", r.URL.Path)
		writeJSON(w, upstream.StatusCode, ErrorResponse{Error: ErrorDetail{
			Code:    "upstream_error",
			Message: upstream.Provider + " returned " + http.StatusText(upstream.StatusCode),
			Details: upstream.Body,
		}})
	default:
		attrs := []any{"path", r.URL.Path, "error", err}
		if upstream != nil {
			attrs = append(attrs, "provider", upstream.Provider)
		}
		s.log.ErrorContext(r.Context(), "request failed", attrs...)
		message := "internal server error"
		if !s.production() {
			message = err.Error()
		}
		writeError(w, http.StatusInternalServerError, "internal_error", message)
	}
}

// validationMessage extracts the human-readable part from a wrapped
// ErrValidation: "service.X.Create: validation error: name is required"
// becomes "name is required".
func validationMessage(err error) string {
	msg := err.Error()
	marker := domain.ErrValidation.Error() + ": "
	if i := strings.LastIndex(msg, marker); i >= 0 {
		return msg[i+len(marker):]
	}
	return msg
}

// decodeBody reads a JSON request body into dst. A body over the limit set
// by the MaxBodySize middleware surfaces as *http.MaxBytesError.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil {
		return true
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeError(w, http.StatusRequestEntityTooLarge, "payload_too_large", "request body too large")
		return false
	}
	badRequest(w, "malformed JSON body")
	return false
}
