// Package render writes JSON responses and is the single path by which
// errors reach the client.
package render

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/isdelr/mesto-api/internal/apperr"
)

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Message string `json:"message"`
}

// JSON writes v with the given status code.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

// Error classifies err, logs it and writes {"message": ...}.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := apperr.Classify(err)

	level := zerolog.WarnLevel
	if status >= http.StatusInternalServerError {
		level = zerolog.ErrorLevel
	}
	log.WithLevel(level).
		Err(err).
		Int("status", status).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Str("request_id", middleware.GetReqID(r.Context())).
		Msg("Request failed")

	JSON(w, status, ErrorResponse{Message: msg})
}
