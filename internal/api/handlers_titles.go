// Otaku - Anime and Manga Title Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otaku

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/otaku/internal/models"
	"github.com/tomtom215/otaku/internal/recommend/algorithms"
)

// SimilarTitles handles GET /api/v1/titles/{titleID}/similar.
//
// Query parameters:
//   - n: result count (default and cap from configuration)
//   - popular: restrict candidates to popular titles (default false)
//   - names: include display names (default true)
func (h *Handler) SimilarTitles(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if h.engines.Content == nil {
		respondNotConfigured(w, r, algorithms.EngineContent)
		return
	}

	titleID, err := pathID(r, "titleID")
	if err != nil {
		respondValidation(w, r, err.Error(), nil)
		return
	}
	n, err := queryInt(r, "n", 0)
	if err != nil {
		respondValidation(w, r, err.Error(), nil)
		return
	}
	popular, err := queryBool(r, "popular", false)
	if err != nil {
		respondValidation(w, r, err.Error(), nil)
		return
	}
	names, err := queryBool(r, "names", true)
	if err != nil {
		respondValidation(w, r, err.Error(), nil)
		return
	}

	recs, err := h.engines.Content.Recommend(titleID, h.limits.topN(n), popular, names)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}

	results := make([]models.ScoredItem, len(recs))
	for i, rec := range recs {
		results[i] = models.ScoredItem{ID: rec.ID, Score: rec.Score, Name: rec.Name}
	}
	respondData(w, r, start, models.SimilarTitlesResponse{
		TitleID: titleID,
		Metric:  h.engines.Content.Status().Metric,
		Results: results,
	})
}

// TitleNeighbors handles GET /api/v1/titles/{titleID}/neighbors?k=.
func (h *Handler) TitleNeighbors(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if h.engines.Collaborative == nil {
		respondNotConfigured(w, r, algorithms.EngineCollaborative)
		return
	}

	titleID, err := pathID(r, "titleID")
	if err != nil {
		respondValidation(w, r, err.Error(), nil)
		return
	}
	k, err := queryInt(r, "k", 0)
	if err != nil {
		respondValidation(w, r, err.Error(), nil)
		return
	}

	neighbors, err := h.engines.Collaborative.RecommendByTitleNeighbors(titleID, h.limits.neighbors(k))
	if err != nil {
		respondEngineError(w, r, err)
		return
	}

	out := make([]models.NeighborTitle, len(neighbors))
	for i, nb := range neighbors {
		out[i] = models.NeighborTitle{TitleID: nb.TitleID, Distance: nb.Distance}
	}
	respondData(w, r, start, models.TitleNeighborsResponse{TitleID: titleID, Neighbors: out})
}

// VisualTitles handles GET /api/v1/titles/{titleID}/visual?n=.
func (h *Handler) VisualTitles(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if h.engines.Image == nil {
		respondNotConfigured(w, r, algorithms.EngineImage)
		return
	}

	titleID, err := pathID(r, "titleID")
	if err != nil {
		respondValidation(w, r, err.Error(), nil)
		return
	}
	n, err := queryInt(r, "n", 0)
	if err != nil {
		respondValidation(w, r, err.Error(), nil)
		return
	}

	titles, err := h.engines.Image.SimilarTitles(titleID, h.limits.topN(n))
	if err != nil {
		respondEngineError(w, r, err)
		return
	}
	respondData(w, r, start, models.SimilarTitlesResponse{
		TitleID: titleID,
		Metric:  h.engines.Image.Status().Metric,
		Results: toScoredItems(titles),
	})
}

// SimilarCharacters handles GET /api/v1/characters/{characterID}/similar?n=.
func (h *Handler) SimilarCharacters(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if h.engines.Image == nil {
		respondNotConfigured(w, r, algorithms.EngineImage)
		return
	}

	characterID, err := pathID(r, "characterID")
	if err != nil {
		respondValidation(w, r, err.Error(), nil)
		return
	}
	n, err := queryInt(r, "n", 0)
	if err != nil {
		respondValidation(w, r, err.Error(), nil)
		return
	}

	matches, err := h.engines.Image.SimilarCharacters(characterID, h.limits.topN(n))
	if err != nil {
		respondEngineError(w, r, err)
		return
	}
	respondData(w, r, start, models.SimilarCharactersResponse{
		CharacterID: characterID,
		Characters:  toScoredItems(matches.Characters),
		TitleIDs:    matches.TitleIDs,
	})
}
