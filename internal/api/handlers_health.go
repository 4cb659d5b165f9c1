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

// Health handles GET /api/v1/health. The service is "healthy" when every
// configured engine has a live index, "degraded" otherwise. It always
// answers 200 so liveness probes do not restart a loading process.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var statuses []algorithms.Status
	if h.engines.Content != nil {
		statuses = append(statuses, h.engines.Content.Status())
	}
	if h.engines.Collaborative != nil {
		statuses = append(statuses, h.engines.Collaborative.Status())
	}
	if h.engines.Image != nil {
		statuses = append(statuses, h.engines.Image.Status())
	}

	resp := models.HealthResponse{
		Status:  "healthy",
		Version: h.version,
		Uptime:  time.Since(h.startTime).Seconds(),
		Engines: make([]models.EngineHealth, 0, len(statuses)),
	}
	for _, s := range statuses {
		if !s.Ready {
			resp.Status = "degraded"
		}
		resp.Engines = append(resp.Engines, models.EngineHealth{
			Name:    s.Name,
			Ready:   s.Ready,
			Version: s.Version,
			BuiltAt: s.BuiltAt,
			Indexed: s.Indexed,
			Metric:  s.Metric,
		})
	}
	if len(statuses) == 0 {
		resp.Status = "degraded"
	}

	respondData(w, r, start, resp)
}
