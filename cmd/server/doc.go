// Otaku - Anime and Manga Title Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otaku

// Package main is the entry point for the Otaku query server.
//
// The server reads the materialized input tables through an in-memory DuckDB,
// builds every engine whose inputs are configured, and serves recommendation
// queries over HTTP under a suture supervisor tree.
//
// # Startup Order
//
//  1. Configuration: Koanf v2 layers (defaults, config.yaml, environment)
//  2. Logging: zerolog with the configured level and format
//  3. Dataset: in-memory DuckDB reading CSV or Parquet tables
//  4. Engines: content, collaborative and image, each only when its tables
//     are configured (see config.DataConfig)
//  5. Supervisor tree: HTTP server in the api layer, the optional content
//     rebuild loop in the engine layer
//
// An engine whose tables are configured but fail to load is fatal. An engine
// with no tables configured is skipped and its routes answer 503.
//
// # Example Usage
//
//	export OTAKU_DATA_TITLES=data/titles.parquet
//	export OTAKU_DATA_CONTENT_FEATURES=data/content_features.parquet
//	export OTAKU_RECOMMEND_CONTENT_METRIC=cosine
//	./otaku
//
//	curl 'http://localhost:8650/api/v1/titles/5114/similar?n=10&popular=true'
//
// # Signal Handling
//
// SIGINT and SIGTERM cancel the root context. The HTTP server drains
// in-flight requests within server.shutdown_timeout and the process exits.
package main
