// Otaku - Anime and Manga Title Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otaku

package logging

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type contextKey string

const (
	requestIDKey contextKey = "request_id"
	runIDKey     contextKey = "run_id"
)

// NewRequestID returns a full UUID for an HTTP request.
func NewRequestID() string {
	return uuid.New().String()
}

// NewRunID returns a short id for an evaluation or rebuild run.
func NewRunID() string {
	return uuid.New().String()[:8]
}

// WithRequestID stores an HTTP request id in ctx.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestID returns the request id stored in ctx, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// WithRunID stores a run id in ctx.
func WithRunID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, runIDKey, id)
}

// RunID returns the run id stored in ctx, or "".
func RunID(ctx context.Context) string {
	id, _ := ctx.Value(runIDKey).(string)
	return id
}

// Ctx returns the global logger enriched with the ids stored in ctx.
//
//	logging.Ctx(r.Context()).Info().Msg("query served")
//	// {"level":"info","request_id":"...","message":"query served"}
func Ctx(ctx context.Context) *zerolog.Logger {
	c := With()
	if id := RequestID(ctx); id != "" {
		c = c.Str("request_id", id)
	}
	if id := RunID(ctx); id != "" {
		c = c.Str("run_id", id)
	}
	l := c.Logger()
	return &l
}
