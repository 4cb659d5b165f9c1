// Otaku - Anime and Manga Title Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otaku

// Package middleware holds Otaku's own HTTP middleware: request ids wired
// into the logging context and Prometheus request instrumentation keyed by
// chi route pattern. Generic middleware (compression, recovery, timeouts)
// comes from github.com/go-chi/chi/v5/middleware.
package middleware
