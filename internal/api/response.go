// Otaku - Anime and Manga Title Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otaku

package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/tomtom215/otaku/internal/logging"
	"github.com/tomtom215/otaku/internal/models"
	"github.com/tomtom215/otaku/internal/recommend"
	"github.com/tomtom215/otaku/internal/validation"
)

// maxBodyBytes bounds POST bodies.
const maxBodyBytes = 1 << 20

// sanitizeLogValue escapes control characters so client input cannot forge
// log lines.
func sanitizeLogValue(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			fmt.Fprintf(&b, "\\x%02x", r)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func respondJSON(w http.ResponseWriter, status int, response *models.APIResponse) {
	w.Header().Set("Content-Type", "application/json")

	data, err := json.Marshal(response)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

func respondData(w http.ResponseWriter, r *http.Request, start time.Time, data interface{}) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: models.StatusSuccess,
		Data:   data,
		Metadata: models.Metadata{
			Timestamp:   time.Now().UTC(),
			QueryTimeMS: time.Since(start).Milliseconds(),
			RequestID:   logging.RequestID(r.Context()),
		},
	})
}

func respondError(w http.ResponseWriter, r *http.Request, status int, apiErr *models.APIError) {
	respondJSON(w, status, &models.APIResponse{
		Status: models.StatusError,
		Metadata: models.Metadata{
			Timestamp: time.Now().UTC(),
			RequestID: logging.RequestID(r.Context()),
		},
		Error: apiErr,
	})
}

func respondValidation(w http.ResponseWriter, r *http.Request, message string, details map[string]interface{}) {
	respondError(w, r, http.StatusBadRequest, &models.APIError{
		Code:    models.ErrCodeValidation,
		Message: message,
		Details: details,
	})
}

func respondNotConfigured(w http.ResponseWriter, r *http.Request, engine string) {
	respondError(w, r, http.StatusServiceUnavailable, &models.APIError{
		Code:    models.ErrCodeNotReady,
		Message: engine + " engine is not configured",
	})
}

// respondEngineError maps engine errors to status codes.
func respondEngineError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := http.StatusInternalServerError, models.ErrCodeInternal
	switch {
	case errors.Is(err, recommend.ErrUnknownID):
		status, code = http.StatusNotFound, models.ErrCodeNotFound
	case errors.Is(err, recommend.ErrInvalidMetric), errors.Is(err, recommend.ErrUnsupportedMetric):
		status, code = http.StatusBadRequest, models.ErrCodeBadMetric
	case errors.Is(err, recommend.ErrInvalidArgument):
		status, code = http.StatusBadRequest, models.ErrCodeValidation
	case errors.Is(err, recommend.ErrNotReady):
		status, code = http.StatusServiceUnavailable, models.ErrCodeNotReady
	}

	message := err.Error()
	if status == http.StatusInternalServerError {
		logging.Ctx(r.Context()).Error().
			Str("path", sanitizeLogValue(r.URL.Path)).
			Str("error", sanitizeLogValue(err.Error())).
			Msg("Engine query failed")
		message = "internal error"
	}
	respondError(w, r, status, &models.APIError{Code: code, Message: message})
}

// pathID parses a positive integer URL parameter.
func pathID(r *http.Request, name string) (int, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", name, sanitizeLogValue(raw))
	}
	return id, nil
}

// queryInt parses an optional integer query parameter.
func queryInt(r *http.Request, key string, def int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", key, sanitizeLogValue(raw))
	}
	return v, nil
}

// queryBool parses an optional boolean query parameter.
func queryBool(r *http.Request, key string, def bool) (bool, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean, got %q", key, sanitizeLogValue(raw))
	}
	return v, nil
}

// decodeBody reads a JSON body into v and validates it. It writes the 400
// response itself and reports whether the handler may continue.
func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil {
		respondValidation(w, r, "failed to read request body", nil)
		return false
	}
	if len(body) > maxBodyBytes {
		respondValidation(w, r, "request body too large", nil)
		return false
	}
	if err := json.Unmarshal(body, v); err != nil {
		respondValidation(w, r, "invalid JSON body", map[string]interface{}{"error": err.Error()})
		return false
	}
	if verr := validation.ValidateStruct(v); verr != nil {
		apiErr := verr.ToAPIError()
		respondValidation(w, r, apiErr.Message, apiErr.Details)
		return false
	}
	return true
}
