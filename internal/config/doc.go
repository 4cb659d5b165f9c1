// Otaku - Anime and Manga Title Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otaku

/*
Package config loads Otaku configuration with koanf v2.

# Sources

Configuration is layered, later sources overriding earlier ones:
 1. Built-in defaults (defaultConfig)
 2. YAML file: CONFIG_PATH, else config.yaml / config.yml / /etc/otaku/config.yaml
 3. Environment variables from a fixed mapping (unknown variables are ignored)

# Sections

  - server: host, port, timeout, shutdown_timeout, cors_origins, rate_limit_*
  - logging: level, format, caller
  - database: DuckDB memory limit and threads used by the dataset loader
  - data: paths of the input tables (CSV or Parquet)
  - recommend: content metric, popularity threshold, neighbor counts, top-N limits
  - evaluation: train/test tables, relevance threshold, push count

# Environment Variables

	HTTP_HOST, HTTP_PORT, HTTP_TIMEOUT, HTTP_SHUTDOWN_TIMEOUT
	CORS_ORIGINS (comma separated)
	RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT
	LOG_LEVEL, LOG_FORMAT, LOG_CALLER
	DUCKDB_MAX_MEMORY, DUCKDB_THREADS
	DATA_TITLES, DATA_CONTENT_FEATURES, DATA_TITLE_GENRES, DATA_USER_GENRES,
	DATA_INTERACTIONS, DATA_USER_TITLE_COUNTS, DATA_TITLE_USER_MATRIX,
	DATA_CHARACTERS, DATA_CHARACTER_EMBEDDINGS
	RECOMMEND_CONTENT_METRIC, RECOMMEND_POPULARITY_THRESHOLD, RECOMMEND_NEIGHBORS,
	RECOMMEND_MIN_TITLES, RECOMMEND_SIMILAR_USERS, RECOMMEND_USER_MATRIX_CACHE,
	RECOMMEND_DEFAULT_TOP_N,
	RECOMMEND_MAX_TOP_N, RECOMMEND_REBUILD_INTERVAL, RECOMMEND_BINARY_INTERACTIONS
	EVAL_TRAIN_FILE, EVAL_TEST_FILE, EVAL_RELEVANT_THRESHOLD, EVAL_NUM_PUSH

Every OTAKU_-prefixed form of the names above (OTAKU_HTTP_PORT) is accepted too.

# Usage

	cfg, err := config.Load()
	if err != nil {
	    logging.Fatal().Err(err).Msg("invalid configuration")
	}
*/
package config
