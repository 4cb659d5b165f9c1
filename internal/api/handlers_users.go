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
	"github.com/tomtom215/otaku/internal/recommend/similarity"
)

// SimilarUsers handles GET /api/v1/users/{userID}/similar.
//
// Query parameters:
//   - metric: cosine (default), manhattan or euclidean
//   - start_col: first genre column used in the comparison (default 0)
func (h *Handler) SimilarUsers(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if h.engines.Collaborative == nil {
		respondNotConfigured(w, r, algorithms.EngineCollaborative)
		return
	}

	userID, err := pathID(r, "userID")
	if err != nil {
		respondValidation(w, r, err.Error(), nil)
		return
	}
	metricName := r.URL.Query().Get("metric")
	if metricName == "" {
		metricName = similarity.MetricCosine.String()
	}
	metric, err := similarity.ParseMetric(metricName)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}
	startCol, err := queryInt(r, "start_col", 0)
	if err != nil || startCol < 0 {
		respondValidation(w, r, "start_col must be a non-negative integer", nil)
		return
	}

	users, err := h.engines.Collaborative.SimilarUsersByID(userID, metric, startCol)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}
	respondData(w, r, start, models.SimilarUsersResponse{
		UserID:  userID,
		Metric:  metric.String(),
		Results: toScoredItems(users),
	})
}

// SimilarUsersByTitles handles POST /api/v1/users/similar-by-titles.
func (h *Handler) SimilarUsersByTitles(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if h.engines.Collaborative == nil {
		respondNotConfigured(w, r, algorithms.EngineCollaborative)
		return
	}

	var req models.SimilarByTitlesRequest
	if !decodeBody(w, r, &req) {
		return
	}
	minTitles := -1
	if req.MinTitles != nil {
		minTitles = *req.MinTitles
	}

	users, err := h.engines.Collaborative.SimilarUsersByTitles(req.TitleIDs, minTitles)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}
	respondData(w, r, start, models.SimilarUsersResponse{
		Metric:  similarity.MetricCosine.String(),
		Results: toScoredItems(users),
	})
}

// UnreadTitles handles POST /api/v1/users/{userID}/unread.
func (h *Handler) UnreadTitles(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if h.engines.Collaborative == nil {
		respondNotConfigured(w, r, algorithms.EngineCollaborative)
		return
	}

	userID, err := pathID(r, "userID")
	if err != nil {
		respondValidation(w, r, err.Error(), nil)
		return
	}
	var req models.UnreadRequest
	if !decodeBody(w, r, &req) {
		return
	}
	policy, err := algorithms.ParseUnreadPolicy(req.Policy)
	if err != nil {
		respondValidation(w, r, err.Error(), nil)
		return
	}

	titles, err := h.engines.Collaborative.RecommendUnread(h.limits.topN(req.N), req.NeighborIDs, userID, policy)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}
	respondData(w, r, start, models.UnreadResponse{
		UserID:  userID,
		Policy:  policy.String(),
		Results: toScoredItems(titles),
	})
}

// overlapResponse wraps the engine report with the queried user.
type overlapResponse struct {
	UserID int `json:"user_id"`
	*algorithms.OverlapReport
}

// NeighborOverlap handles POST /api/v1/users/{userID}/overlap.
func (h *Handler) NeighborOverlap(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if h.engines.Collaborative == nil {
		respondNotConfigured(w, r, algorithms.EngineCollaborative)
		return
	}

	userID, err := pathID(r, "userID")
	if err != nil {
		respondValidation(w, r, err.Error(), nil)
		return
	}
	var req models.OverlapRequest
	if !decodeBody(w, r, &req) {
		return
	}

	report := h.engines.Collaborative.EvaluateOverlap(req.NeighborIDs, userID)
	respondData(w, r, start, overlapResponse{UserID: userID, OverlapReport: report})
}
