// Otaku - Anime and Manga Title Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otaku

package api

import (
	"time"

	"github.com/tomtom215/otaku/internal/models"
	"github.com/tomtom215/otaku/internal/recommend"
)

// Handler holds the engines and answers API requests.
type Handler struct {
	engines   Engines
	limits    Limits
	version   string
	startTime time.Time
}

// NewHandler creates a Handler. Zero limits fall back to DefaultLimits.
func NewHandler(engines Engines, limits Limits, version string) *Handler {
	def := DefaultLimits()
	if limits.DefaultTopN <= 0 {
		limits.DefaultTopN = def.DefaultTopN
	}
	if limits.MaxTopN <= 0 {
		limits.MaxTopN = def.MaxTopN
	}
	if limits.Neighbors <= 0 {
		limits.Neighbors = def.Neighbors
	}
	return &Handler{
		engines:   engines,
		limits:    limits,
		version:   version,
		startTime: time.Now(),
	}
}

func toScoredItems(items []recommend.Scored) []models.ScoredItem {
	out := make([]models.ScoredItem, len(items))
	for i, it := range items {
		out[i] = models.ScoredItem{ID: it.ID, Score: it.Score}
	}
	return out
}
