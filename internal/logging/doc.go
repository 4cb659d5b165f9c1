// Otaku - Anime and Manga Title Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otaku

// Package logging provides the process-wide zerolog logger for Otaku.
//
// # Quick Start
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//
//	logging.Info().Str("metric", "cosine").Msg("building content matrix")
//	logging.Err(err).Msg("dataset load failed")
//
//	// Engines receive a component logger at construction
//	engine := algorithms.NewContentRecommender(titles, cfg, logging.Component("content"))
//
//	// Request-scoped logging in HTTP handlers
//	logging.Ctx(r.Context()).Warn().Int("title_id", id).Msg("unknown title")
//
// # Configuration
//
// The server and evaluation commands pass the "logging" section of the
// koanf configuration to Init:
//   - level: trace, debug, info, warn, error (default: info)
//   - format: json or console (default: json)
//   - caller: include file:line (default: false)
//
// # slog Interop
//
// NewSlogLogger returns a *slog.Logger that writes through zerolog. The
// supervisor tree uses it for sutureslog events.
//
// # Best Practices
//
// Always terminate event chains with .Msg() or .Send(), and prefer
// structured fields over formatted messages.
package logging
