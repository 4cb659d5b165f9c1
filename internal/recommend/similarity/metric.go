// Otaku - Anime and Manga Title Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otaku

package similarity

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/tomtom215/otaku/internal/recommend"
)

// Metric selects how two feature vectors are compared.
type Metric int

const (
	// MetricCosine is cosine similarity.
	MetricCosine Metric = iota + 1
	// MetricManhattan is the L1 (city block) distance.
	MetricManhattan
	// MetricEuclidean is the L2 distance.
	MetricEuclidean
)

// ParseMetric maps a metric name to a Metric. Both the short names and the
// pairwise-function names used by the data pipeline are accepted.
func ParseMetric(name string) (Metric, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "cosine", "cosine_similarity":
		return MetricCosine, nil
	case "manhattan", "manhattan_distances", "l1", "cityblock":
		return MetricManhattan, nil
	case "euclidean", "euclidean_distances", "l2":
		return MetricEuclidean, nil
	default:
		return 0, fmt.Errorf("%w: %q", recommend.ErrInvalidMetric, name)
	}
}

// String returns the canonical metric name.
func (m Metric) String() string {
	switch m {
	case MetricCosine:
		return "cosine"
	case MetricManhattan:
		return "manhattan"
	case MetricEuclidean:
		return "euclidean"
	default:
		return "unknown"
	}
}

// Valid reports whether m is one of the defined metrics.
func (m Metric) Valid() bool {
	switch m {
	case MetricCosine, MetricManhattan, MetricEuclidean:
		return true
	default:
		return false
	}
}

// IsSimilarity reports whether larger values mean "closer".
func (m Metric) IsSimilarity() bool {
	return m == MetricCosine
}

// SelfValue is the diagonal value: the maximum for similarities, zero for
// distances.
func (m Metric) SelfValue() float64 {
	if m.IsSimilarity() {
		return 1
	}
	return 0
}

// Between compares two equal-length vectors. Cosine similarity with a
// zero-norm vector is 0.
func (m Metric) Between(a, b []float64) float64 {
	switch m {
	case MetricCosine:
		return cosine(a, b, floats.Norm(a, 2), floats.Norm(b, 2))
	case MetricManhattan:
		return floats.Distance(a, b, 1)
	case MetricEuclidean:
		return floats.Distance(a, b, 2)
	default:
		return 0
	}
}

func cosine(a, b []float64, normA, normB float64) float64 {
	if normA == 0 || normB == 0 {
		return 0
	}
	return floats.Dot(a, b) / (normA * normB)
}
