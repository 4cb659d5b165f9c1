// Otaku - Anime and Manga Title Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otaku

package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/tomtom215/otaku/internal/recommend"
)

// Query outcomes used as the "outcome" label.
const (
	OutcomeOK      = "ok"
	OutcomeEmpty   = "empty"
	OutcomeUnknown = "unknown_id"
	OutcomeInvalid = "invalid"
	OutcomeError   = "error"
)

var (
	// Dataset Metrics
	DatasetLoadDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "otaku_dataset_load_duration_seconds",
			Help:    "Duration of DuckDB table loads in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60},
		},
		[]string{"table"},
	)

	DatasetRowsLoaded = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "otaku_dataset_rows_loaded",
			Help: "Number of rows loaded per input table",
		},
		[]string{"table"},
	)

	DatasetLoadErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "otaku_dataset_load_errors_total",
			Help: "Total number of failed table loads",
		},
		[]string{"table"},
	)

	// Similarity Matrix Metrics
	SimilarityBuildDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "otaku_similarity_build_duration_seconds",
			Help:    "Duration of similarity matrix builds in seconds",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10, 30, 60, 300}, // Full catalogs take minutes
		},
		[]string{"engine", "metric"},
	)

	SimilarityMatrixSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "otaku_similarity_matrix_ids",
			Help: "Number of ids indexed by the current similarity matrix",
		},
		[]string{"engine", "metric"},
	)

	SimilarityRebuilds = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "otaku_similarity_rebuilds_total",
			Help: "Total number of atomic similarity matrix swaps",
		},
		[]string{"engine"},
	)

	// Query Metrics
	RecommendQueries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "otaku_recommend_queries_total",
			Help: "Total number of recommendation queries by outcome",
		},
		[]string{"engine", "operation", "outcome"},
	)

	RecommendQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "otaku_recommend_query_duration_seconds",
			Help:    "Duration of recommendation queries in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"engine", "operation"},
	)

	// Evaluation Metrics
	EvaluationRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "otaku_evaluation_runs_total",
			Help: "Total number of offline evaluation runs",
		},
		[]string{"engine", "kind"}, // "rmse", "ranking", "overlap"
	)

	EvaluationSkippedUsers = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "otaku_evaluation_skipped_users_total",
			Help: "Users excluded from an evaluation aggregate",
		},
		[]string{"engine", "metric"}, // "precision", "recall", "overlap"
	)

	EvaluationResult = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "otaku_evaluation_result",
			Help: "Most recent aggregate evaluation value",
		},
		[]string{"engine", "metric"},
	)

	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)
)

// RecordDatasetLoad records a table load.
func RecordDatasetLoad(table string, rows int, duration time.Duration, err error) {
	DatasetLoadDuration.WithLabelValues(table).Observe(duration.Seconds())
	if err != nil {
		DatasetLoadErrors.WithLabelValues(table).Inc()
		return
	}
	DatasetRowsLoaded.WithLabelValues(table).Set(float64(rows))
}

// RecordSimilarityBuild records a matrix build and its resulting size.
func RecordSimilarityBuild(engine, metric string, ids int, duration time.Duration) {
	SimilarityBuildDuration.WithLabelValues(engine, metric).Observe(duration.Seconds())
	SimilarityMatrixSize.WithLabelValues(engine, metric).Set(float64(ids))
}

// RecordQuery records a query and classifies its outcome from the error and
// result size.
func RecordQuery(engine, operation string, results int, duration time.Duration, err error) {
	RecommendQueryDuration.WithLabelValues(engine, operation).Observe(duration.Seconds())
	RecommendQueries.WithLabelValues(engine, operation, QueryOutcome(results, err)).Inc()
}

// QueryOutcome maps a query result to its outcome label.
func QueryOutcome(results int, err error) string {
	switch {
	case err == nil && results == 0:
		return OutcomeEmpty
	case err == nil:
		return OutcomeOK
	case errors.Is(err, recommend.ErrUnknownID):
		return OutcomeUnknown
	case errors.Is(err, recommend.ErrInvalidMetric), errors.Is(err, recommend.ErrUnsupportedMetric):
		return OutcomeInvalid
	default:
		return OutcomeError
	}
}

// RecordEvaluation records an evaluation run and the number of users skipped
// for each aggregate.
func RecordEvaluation(engine, kind string, skipped map[string]int) {
	EvaluationRuns.WithLabelValues(engine, kind).Inc()
	for metric, n := range skipped {
		EvaluationSkippedUsers.WithLabelValues(engine, metric).Add(float64(n))
	}
}

// SetEvaluationResult publishes an aggregate evaluation value.
func SetEvaluationResult(engine, metric string, value float64) {
	EvaluationResult.WithLabelValues(engine, metric).Set(value)
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}
