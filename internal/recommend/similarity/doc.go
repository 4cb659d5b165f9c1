// Otaku - Anime and Manga Title Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otaku

// Package similarity builds pairwise similarity and distance matrices over
// id-indexed feature tables and answers ranked-neighbor queries.
//
// # Metrics
//
// Three metrics are supported, as a closed enumeration:
//
//   - MetricCosine: similarity in [-1, 1], diagonal forced to 1, ranked descending
//   - MetricManhattan: L1 distance, diagonal 0, ranked ascending
//   - MetricEuclidean: L2 distance, diagonal 0, ranked ascending
//
// Matrices are stored in a gonum SymDense, so M[i][j] == M[j][i] holds by
// construction.
//
// # Usage
//
//	metric, err := similarity.ParseMetric("cosine")
//	m, err := similarity.Build(features, metric, recommend.TitleIDs(titles))
//	top, err := m.Query(titleID, 10, similarity.QueryOptions{RestrictTo: popular})
//
// A Matrix is immutable once built and is safe for concurrent queries.
package similarity
