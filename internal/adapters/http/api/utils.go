package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/okian/floww/internal/domain/forms"
	"github.com/okian/floww/pkg/logger"
)

// maxBodyBytes bounds POST bodies.
const maxBodyBytes = 1 << 20

type errorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  forms.FieldErrors `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string, fields forms.FieldErrors) {
	writeJSON(w, status, errorResponse{Code: code, Message: message, Fields: fields})
}

// writeFailure classifies err, logs the full chain and writes the envelope.
// Clients only see the sentinel text and the form field messages.
func writeFailure(w http.ResponseWriter, r *http.Request, err error) {
	status, code, message := classify(err)
	fields := []logger.Field{
		logger.String("method", r.Method),
		logger.String("path", r.URL.Path),
		logger.Int("status", status),
		logger.Error(err),
	}
	if status >= http.StatusInternalServerError {
		logger.Named("api").Error(r.Context(), "request failed", fields...)
	} else {
		logger.Named("api").Debug(r.Context(), "request rejected", fields...)
	}
	writeError(w, status, code, message, forms.Fields(err))
}

// decodeJSON reads a single JSON object from the request body.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: %w", ErrBadRequest, err)
	}
	return nil
}

// queryLimit parses ?limit=. A missing value means zero; negative or
// malformed values are rejected.
func queryLimit(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: limit must be a non-negative integer", ErrBadRequest)
	}
	return n, nil
}
