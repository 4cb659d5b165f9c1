// Otaku - Anime and Manga Title Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otaku

package dataset

import (
	"reflect"
	"testing"
)

func TestParseGenres(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"python list", "['Action', 'Sci-Fi']", []string{"Action", "Sci-Fi"}},
		{"double quotes", `["Slice of Life", "Comedy"]`, []string{"Slice of Life", "Comedy"}},
		{"duckdb list", "[Drama, Romance]", []string{"Drama", "Romance"}},
		{"pipe", "Drama|Mystery", []string{"Drama", "Mystery"}},
		{"comma", "Drama,Mystery", []string{"Drama", "Mystery"}},
		{"single", "Sports", []string{"Sports"}},
		{"empty list", "[]", nil},
		{"blank", "  ", nil},
		{"drops empties", "Action||Drama|", []string{"Action", "Drama"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseGenres(tt.raw); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseGenres(%q) = %#v, want %#v", tt.raw, got, tt.want)
			}
		})
	}
}
