// Otaku - Anime and Manga Title Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otaku

package models

import (
	"time"
)

// Response status values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Error codes used by the API.
const (
	ErrCodeValidation  = "VALIDATION_ERROR"
	ErrCodeNotFound    = "NOT_FOUND"
	ErrCodeBadMetric   = "UNSUPPORTED_METRIC"
	ErrCodeNotReady    = "ENGINE_NOT_READY"
	ErrCodeRateLimited = "RATE_LIMIT_EXCEEDED"
	ErrCodeInternal    = "INTERNAL_ERROR"
)

// APIResponse is the envelope of every JSON response.
//
//	{
//	  "status": "success",
//	  "data": {"title_id": 1, "results": [...]},
//	  "metadata": {"timestamp": "2026-01-02T12:00:00Z", "query_time_ms": 3}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata carries response timing.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	RequestID   string    `json:"request_id,omitempty"`
}

// APIError describes a failed request.
//
//	{"code": "NOT_FOUND", "message": "unknown id: title 42", "details": {"title_id": 42}}
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// HealthResponse reports readiness of each engine.
type HealthResponse struct {
	Status  string         `json:"status"`
	Version string         `json:"version"`
	Uptime  float64        `json:"uptime_seconds"`
	Engines []EngineHealth `json:"engines"`
}

// EngineHealth is one engine's readiness.
type EngineHealth struct {
	Name    string    `json:"name"`
	Ready   bool      `json:"ready"`
	Version int64     `json:"version"`
	BuiltAt time.Time `json:"built_at,omitempty"`
	Indexed int       `json:"indexed"`
	Metric  string    `json:"metric,omitempty"`
}
