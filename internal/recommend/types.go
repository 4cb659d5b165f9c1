// Otaku - Anime and Manga Title Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otaku

package recommend

import (
	"fmt"
	"sort"
)

// Title is a catalog entry (anime or manga).
type Title struct {
	// ID is the stable catalog identifier.
	ID int `json:"id"`

	// Romaji is the romanized display name.
	Romaji string `json:"title_romaji"`

	// English is the English display name, empty when not licensed.
	English string `json:"title_english,omitempty"`

	// Popularity is the number of users tracking the title.
	Popularity int `json:"popularity"`

	// Favorites is the number of users who marked the title as a favorite.
	Favorites int `json:"favorites"`

	// Genres is the title's genre set.
	Genres []string `json:"genres,omitempty"`
}

// DisplayName returns the romanized name, falling back to the English name
// and finally to the numeric id.
//
//nolint:gocritic // Title passed by value matches how callers range over tables
func (t Title) DisplayName() string {
	switch {
	case t.Romaji != "":
		return t.Romaji
	case t.English != "":
		return t.English
	default:
		return fmt.Sprintf("title %d", t.ID)
	}
}

// Interaction is a single observed (user, title, score) event.
// Duplicate (user, title) pairs are distinct events and are never merged here.
type Interaction struct {
	UserID  int     `json:"user_id"`
	TitleID int     `json:"title_id"`
	Score   float64 `json:"score"`
}

// Scored is a ranked result: an id and its similarity or distance.
type Scored struct {
	ID    int     `json:"id"`
	Score float64 `json:"score"`
}

// Character links a character to the title it appears in.
type Character struct {
	ID        int    `json:"character_id"`
	TitleID   int    `json:"title_id"`
	Name      string `json:"character_name"`
	TitleName string `json:"title_romaji,omitempty"`
}

// FeatureTable is a dense, id-indexed numeric table. Row i belongs to IDs[i]
// and has one value per entry of Columns.
type FeatureTable struct {
	IDs     []int
	Columns []string
	Rows    [][]float64
}

// Validate checks that the table is rectangular and that ids are unique.
func (f *FeatureTable) Validate() error {
	if len(f.IDs) != len(f.Rows) {
		return fmt.Errorf("%w: %d ids for %d rows", ErrSchemaMismatch, len(f.IDs), len(f.Rows))
	}
	seen := make(map[int]struct{}, len(f.IDs))
	for i, id := range f.IDs {
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: duplicate id %d", ErrSchemaMismatch, id)
		}
		seen[id] = struct{}{}
		if len(f.Rows[i]) != len(f.Columns) {
			return fmt.Errorf("%w: row for id %d has %d values, want %d",
				ErrSchemaMismatch, id, len(f.Rows[i]), len(f.Columns))
		}
	}
	return nil
}

// ColumnIndex returns the position of the named column, or -1.
func (f *FeatureTable) ColumnIndex(name string) int {
	for i, c := range f.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Index maps each id to its row position.
func (f *FeatureTable) Index() map[int]int {
	idx := make(map[int]int, len(f.IDs))
	for i, id := range f.IDs {
		idx[id] = i
	}
	return idx
}

// IDSet is a set of integer ids.
type IDSet map[int]struct{}

// NewIDSet builds a set from the given ids.
func NewIDSet(ids ...int) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Contains reports whether id is in the set. A nil set contains nothing.
func (s IDSet) Contains(id int) bool {
	_, ok := s[id]
	return ok
}

// Sorted returns the members in ascending order.
func (s IDSet) Sorted() []int {
	out := make([]int, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}

// TitleIDs returns the id universe of a title table.
func TitleIDs(titles []Title) IDSet {
	s := make(IDSet, len(titles))
	for i := range titles {
		s[titles[i].ID] = struct{}{}
	}
	return s
}

// CountTitlesPerUser derives the per-user title-count summary from an
// interaction log. Duplicate rows count once per row.
func CountTitlesPerUser(interactions []Interaction) map[int]int {
	counts := make(map[int]int)
	for _, in := range interactions {
		counts[in.UserID]++
	}
	return counts
}

// SortScored orders results by score, descending when desc is true, with
// id ascending as the tie-break.
func SortScored(items []Scored, desc bool) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Score != items[j].Score {
			if desc {
				return items[i].Score > items[j].Score
			}
			return items[i].Score < items[j].Score
		}
		return items[i].ID < items[j].ID
	})
}
