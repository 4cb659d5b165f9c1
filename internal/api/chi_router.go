// Otaku - Anime and Manga Title Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otaku

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/otaku/internal/middleware"
	"github.com/tomtom215/otaku/internal/models"
)

// Router wires the handler into a Chi route tree.
type Router struct {
	handler *Handler
	config  MiddlewareConfig
}

// NewRouter creates a Router.
func NewRouter(handler *Handler, config MiddlewareConfig) *Router {
	return &Router{handler: handler, config: config}
}

// SetupChi builds the HTTP handler with every route and middleware.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(corsMiddleware(router.config))

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.PrometheusMetrics)
		r.Use(rateLimit(router.config))
		r.Use(securityHeaders)
		r.Use(chimiddleware.Compress(5, "application/json"))

		r.Get("/health", router.handler.Health)

		r.Route("/titles/{titleID}", func(r chi.Router) {
			r.Get("/similar", router.handler.SimilarTitles)
			r.Get("/neighbors", router.handler.TitleNeighbors)
			r.Get("/visual", router.handler.VisualTitles)
		})

		r.Get("/characters/{characterID}/similar", router.handler.SimilarCharacters)

		r.Route("/users", func(r chi.Router) {
			r.Post("/similar-by-titles", router.handler.SimilarUsersByTitles)
			r.Get("/{userID}/similar", router.handler.SimilarUsers)
			r.Post("/{userID}/unread", router.handler.UnreadTitles)
			r.Post("/{userID}/overlap", router.handler.NeighborOverlap)
		})

		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			respondError(w, r, http.StatusNotFound, &models.APIError{
				Code:    models.ErrCodeNotFound,
				Message: "no such endpoint",
			})
		})
	})

	return r
}
