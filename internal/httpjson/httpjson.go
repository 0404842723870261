// Package httpjson provides small helpers shared by the JSON HTTP handlers.
package httpjson

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"
)

// Write serializes v as the response body with the given status.
func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

type errorBody struct {
	Error string `json:"error"`
}

// Error writes a JSON error body with the given status.
func Error(w http.ResponseWriter, status int, msg string) {
	Write(w, status, errorBody{Error: msg})
}

// Decode parses the request body into dst, rejecting unknown fields.
func Decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}
