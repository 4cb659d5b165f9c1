// Otaku - Anime and Manga Title Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otaku

package algorithms

import (
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/otaku/internal/metrics"
)

// Engine names used in logs, metrics and status reports.
const (
	EngineContent       = "content"
	EngineCollaborative = "collaborative"
	EngineImage         = "image"
)

// Status describes an engine for health reporting.
type Status struct {
	Name    string    `json:"name"`
	Ready   bool      `json:"ready"`
	Version int64     `json:"version"`
	BuiltAt time.Time `json:"built_at,omitempty"`
	Indexed int       `json:"indexed"`
	Metric  string    `json:"metric,omitempty"`
}

// Recommender is implemented by every engine.
type Recommender interface {
	// Name returns the engine identifier.
	Name() string

	// Status reports readiness and the size of the live index.
	Status() Status
}

// BaseAlgorithm provides identity, build bookkeeping and query
// instrumentation shared by every engine.
type BaseAlgorithm struct {
	name    string
	logger  zerolog.Logger
	version atomic.Int64
	builtAt atomic.Int64
}

//nolint:gocritic // logger passed by value is acceptable for zerolog
func (b *BaseAlgorithm) init(name string, logger zerolog.Logger) {
	b.name = name
	b.logger = logger.With().Str("engine", name).Logger()
}

// Name returns the engine identifier.
func (b *BaseAlgorithm) Name() string {
	return b.name
}

// Version returns how many times the engine's matrices have been built.
func (b *BaseAlgorithm) Version() int64 {
	return b.version.Load()
}

// LastBuiltAt returns when the engine's matrices were last built.
func (b *BaseAlgorithm) LastBuiltAt() time.Time {
	ns := b.builtAt.Load()
	if ns == 0 {
		return time.Time{}
	}
	return time.Unix(0, ns)
}

func (b *BaseAlgorithm) markBuilt() {
	b.builtAt.Store(time.Now().UnixNano())
	b.version.Add(1)
}

// observe records latency and outcome of a query.
func (b *BaseAlgorithm) observe(operation string, start time.Time, results int, err error) {
	duration := time.Since(start)
	metrics.RecordQuery(b.name, operation, results, duration, err)
	b.logger.Debug().
		Str("operation", operation).
		Int("results", results).
		Dur("duration", duration).
		Err(err).
		Msg("query")
}
