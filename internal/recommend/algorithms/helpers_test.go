// Otaku - Anime and Manga Title Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otaku

package algorithms

import (
	"math"

	"github.com/tomtom215/otaku/internal/recommend"
)

const floatTolerance = 1e-6

const (
	titleA = 1
	titleB = 2
	titleC = 3
	titleD = 4
)

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) <= floatTolerance
}

// catalog returns A..D with A and C above the default popularity threshold.
func catalog() []recommend.Title {
	return []recommend.Title{
		{ID: titleA, Romaji: "Alpha", Popularity: 50000, Favorites: 900},
		{ID: titleB, Romaji: "Bravo", Popularity: 800, Favorites: 50},
		{ID: titleC, Romaji: "Charlie", Popularity: 20000, Favorites: 400},
		{ID: titleD, English: "Delta", Popularity: 100, Favorites: 400},
	}
}

// genreFeatures: A and B are pure Action, C and D pure Romance.
func genreFeatures() *recommend.FeatureTable {
	return &recommend.FeatureTable{
		IDs:     []int{titleA, titleB, titleC, titleD},
		Columns: []string{"Action", "Romance"},
		Rows:    [][]float64{{1, 0}, {1, 0}, {0, 1}, {0, 1}},
	}
}
