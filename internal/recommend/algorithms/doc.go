// Otaku - Anime and Manga Title Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otaku

// Package algorithms implements the three recommendation engines and their
// offline evaluation.
//
// # Engines
//
// ContentRecommender:
//   - Ranks titles by a similarity.Matrix over content features
//     (genre one-hot, tag weights or synopsis embeddings)
//   - Optional restriction to popular titles (popularity above a threshold)
//   - PredictRating: similarity-weighted average of a user's train scores, with RMSE
//   - EvaluateRanking: per-user precision and recall of pushed neighbors
//
// CollaborativeRecommender:
//   - User to user similarity over genre-preference distributions
//   - Users closest to the mean genre vector of a title set
//   - Unread titles aggregated from neighbor histories, by frequency or favorites
//   - Title to title cosine k-NN over the sparse title x user matrix
//   - EvaluateOverlap: how much neighbor histories overlap with the query user
//
// ImageRecommender:
//   - Character to character cosine similarity over image embeddings
//   - Title to title similarity over the mean embedding of each title's characters
//
// # Ties
//
// Equal scores are ordered by id ascending in every ranked result.
//
// # Duplicates
//
// Interaction logs are used as given. Duplicate (user, title) rows count
// twice in frequency ranking and rating prediction; callers that want set
// semantics deduplicate upstream.
//
// # Thread Safety
//
// Engines are immutable after construction, except that the content engine
// may rebuild its matrix through CreateSimMat. The new matrix is swapped in
// atomically; queries already running keep the matrix they loaded. The
// collaborative engine builds user x user matrices on demand and keeps the
// most recently used ones in a bounded cache.
package algorithms
