// Otaku - Anime and Manga Title Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otaku

package dataset

import "strings"

// ParseGenres decodes a genre cell. Accepted encodings:
//
//	['Action', 'Drama']   list literal (single or double quotes)
//	[Action, Drama]       DuckDB list cast to text
//	Action|Drama
//	Action,Drama
//
// Empty names are dropped; order is kept.
func ParseGenres(raw string) []string {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "[")
	raw = strings.TrimSuffix(raw, "]")
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	sep := ","
	if strings.Contains(raw, "|") {
		sep = "|"
	}

	var out []string
	for _, part := range strings.Split(raw, sep) {
		name := strings.Trim(strings.TrimSpace(part), `'"`)
		if name = strings.TrimSpace(name); name != "" {
			out = append(out, name)
		}
	}
	return out
}
