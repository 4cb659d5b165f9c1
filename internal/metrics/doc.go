// Otaku - Anime and Manga Title Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otaku

/*
Package metrics provides Prometheus metrics collection and export for observability.

Collectors are registered on the default registry through promauto and are
exposed by the API server at /metrics.

# Available Metrics

Dataset Metrics:
  - otaku_dataset_load_duration_seconds: DuckDB table load time (histogram)
    Labels: table
  - otaku_dataset_rows_loaded: rows per input table (gauge)
  - otaku_dataset_load_errors_total: failed loads (counter)

Similarity Metrics:
  - otaku_similarity_build_duration_seconds: matrix build time (histogram)
    Labels: engine, metric
  - otaku_similarity_matrix_ids: ids indexed by the live matrix (gauge)
  - otaku_similarity_rebuilds_total: atomic swaps (counter)

Query Metrics:
  - otaku_recommend_queries_total: queries by outcome (counter)
    Labels: engine, operation, outcome (ok, empty, unknown_id, invalid, error)
  - otaku_recommend_query_duration_seconds: query latency (histogram)

Evaluation Metrics:
  - otaku_evaluation_runs_total: runs per engine and kind (counter)
  - otaku_evaluation_skipped_users_total: users excluded from a mean (counter)
  - otaku_evaluation_result: latest aggregate value (gauge)

API Metrics:
  - api_requests_total, api_request_duration_seconds, api_active_requests,
    api_rate_limit_hits_total

# Usage

	start := time.Now()
	recs, err := engine.Recommend(id, 10, true, false)
	metrics.RecordQuery("content", "recommend", len(recs), time.Since(start), err)
*/
package metrics
