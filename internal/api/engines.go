// Otaku - Anime and Manga Title Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otaku

package api

import (
	"github.com/tomtom215/otaku/internal/recommend"
	"github.com/tomtom215/otaku/internal/recommend/algorithms"
	"github.com/tomtom215/otaku/internal/recommend/similarity"
)

// ContentEngine is the content-similarity surface used by the handlers.
// *algorithms.ContentRecommender implements it.
type ContentEngine interface {
	Status() algorithms.Status
	Recommend(titleID, topN int, onlyPopular, withNames bool) ([]algorithms.Recommendation, error)
}

// CollaborativeEngine is the user-similarity surface used by the handlers.
// *algorithms.CollaborativeRecommender implements it.
type CollaborativeEngine interface {
	Status() algorithms.Status
	SimilarUsersByID(userID int, metric similarity.Metric, startCol int) ([]recommend.Scored, error)
	SimilarUsersByTitles(titleIDs []int, minTitles int) ([]recommend.Scored, error)
	RecommendUnread(n int, neighbors []int, userID int, policy algorithms.UnreadPolicy) ([]recommend.Scored, error)
	RecommendByTitleNeighbors(titleID, k int) ([]algorithms.NeighborTitle, error)
	EvaluateOverlap(neighbors []int, userID int) *algorithms.OverlapReport
}

// ImageEngine is the image-embedding surface used by the handlers.
// *algorithms.ImageRecommender implements it.
type ImageEngine interface {
	Status() algorithms.Status
	SimilarCharacters(characterID, topN int) (*algorithms.CharacterMatches, error)
	SimilarTitles(titleID, topN int) ([]recommend.Scored, error)
}

// Engines groups the engines served by the API. A nil field marks an
// engine that was not configured; its routes answer 503.
type Engines struct {
	Content       ContentEngine
	Collaborative CollaborativeEngine
	Image         ImageEngine
}

// Limits bounds result sizes requested over HTTP.
type Limits struct {
	DefaultTopN int
	MaxTopN     int
	Neighbors   int
}

// DefaultLimits mirrors the configuration defaults.
func DefaultLimits() Limits {
	return Limits{DefaultTopN: 20, MaxTopN: 100, Neighbors: 20}
}

// topN bounds a requested result count: <= 0 selects the default.
func (l Limits) topN(n int) int {
	if n <= 0 {
		n = l.DefaultTopN
	}
	if n > l.MaxTopN {
		n = l.MaxTopN
	}
	return n
}

// neighbors bounds a requested k: <= 0 selects the configured neighbor count.
func (l Limits) neighbors(k int) int {
	if k <= 0 {
		k = l.Neighbors
	}
	if k > l.MaxTopN {
		k = l.MaxTopN
	}
	return k
}
