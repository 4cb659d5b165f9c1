// Otaku - Anime and Manga Title Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otaku

// Package recommend holds the shared vocabulary of the Otaku recommendation
// core: titles, interactions, feature tables and the error taxonomy used by
// every engine.
//
// # Architecture
//
// The core is split into three layers:
//
//   - similarity: pairwise similarity/distance matrices over a feature table
//     and ranked-neighbor queries against them
//   - sparse: a title x user incidence matrix with brute-force cosine k-NN
//   - algorithms: the Content, Collaborative and Image recommenders built on
//     top of the two layers above, plus their offline evaluation
//
// Every engine is a pure function of the tables handed to its constructor.
// Nothing is read from disk implicitly; the dataset package is the only
// place that touches files.
//
// # Errors
//
// Failures are reported through the sentinel errors in errors.go and should
// be tested with errors.Is:
//
//   - ErrUnknownID: the queried id is not in the relevant index
//   - ErrInvalidMetric: the metric name is not recognized
//   - ErrUnsupportedMetric: the operation is not defined for the metric
//   - ErrSchemaMismatch: an input table lacks a required column or is ragged
//   - ErrNotReady: a query arrived before a matrix was attached
//
// An empty candidate set is not an error. Queries return an empty, non-nil
// slice instead.
//
// # Thread Safety
//
// Tables and matrices are immutable after construction. Engines that allow a
// matrix to be rebuilt swap it atomically, so in-flight queries finish
// against the matrix they started with.
package recommend
