// Otaku - Anime and Manga Title Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otaku

// Package sparse provides the title x user interaction matrix used by the
// collaborative recommender, stored as a github.com/james-bowman/sparse CSR
// matrix with a parallel title id index, and an exact cosine
// k-nearest-neighbor search over its rows.
//
// The matrix is immutable after construction. NearestNeighbors is fit once
// (row norms are precomputed) and is safe for concurrent queries.
package sparse
