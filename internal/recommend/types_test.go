// Otaku - Anime and Manga Title Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otaku

package recommend

import (
	"errors"
	"testing"
)

func TestTitle_DisplayName(t *testing.T) {
	tests := []struct {
		name  string
		title Title
		want  string
	}{
		{"romaji", Title{ID: 1, Romaji: "Shingeki no Kyojin", English: "Attack on Titan"}, "Shingeki no Kyojin"},
		{"english fallback", Title{ID: 2, English: "Frieren"}, "Frieren"},
		{"id fallback", Title{ID: 3}, "title 3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.title.DisplayName(); got != tt.want {
				t.Errorf("DisplayName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFeatureTable_Validate(t *testing.T) {
	tests := []struct {
		name    string
		table   FeatureTable
		wantErr bool
	}{
		{
			name:  "valid",
			table: FeatureTable{IDs: []int{1, 2}, Columns: []string{"a", "b"}, Rows: [][]float64{{1, 0}, {0, 1}}},
		},
		{
			name:    "id and row count differ",
			table:   FeatureTable{IDs: []int{1}, Columns: []string{"a"}, Rows: [][]float64{{1}, {2}}},
			wantErr: true,
		},
		{
			name:    "duplicate id",
			table:   FeatureTable{IDs: []int{1, 1}, Columns: []string{"a"}, Rows: [][]float64{{1}, {2}}},
			wantErr: true,
		},
		{
			name:    "ragged row",
			table:   FeatureTable{IDs: []int{1, 2}, Columns: []string{"a", "b"}, Rows: [][]float64{{1, 0}, {1}}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.table.Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrSchemaMismatch) {
					t.Errorf("Validate() error = %v, want ErrSchemaMismatch", err)
				}
				return
			}
			if err != nil {
				t.Errorf("Validate() unexpected error: %v", err)
			}
		})
	}
}

func TestFeatureTable_ColumnIndex(t *testing.T) {
	table := FeatureTable{Columns: []string{"Action", "Drama"}}

	if got := table.ColumnIndex("Drama"); got != 1 {
		t.Errorf("ColumnIndex(Drama) = %d, want 1", got)
	}
	if got := table.ColumnIndex("Horror"); got != -1 {
		t.Errorf("ColumnIndex(Horror) = %d, want -1", got)
	}
}

func TestCountTitlesPerUser(t *testing.T) {
	// Duplicate (user, title) rows are counted as separate events.
	interactions := []Interaction{
		{UserID: 1, TitleID: 10},
		{UserID: 1, TitleID: 10},
		{UserID: 1, TitleID: 11},
		{UserID: 2, TitleID: 10},
	}

	counts := CountTitlesPerUser(interactions)

	if counts[1] != 3 {
		t.Errorf("counts[1] = %d, want 3", counts[1])
	}
	if counts[2] != 1 {
		t.Errorf("counts[2] = %d, want 1", counts[2])
	}
}

func TestSortScored(t *testing.T) {
	tests := []struct {
		name string
		desc bool
		want []int
	}{
		{"descending with id tie-break", true, []int{2, 3, 1}},
		{"ascending with id tie-break", false, []int{1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := []Scored{{ID: 3, Score: 0.9}, {ID: 1, Score: 0.1}, {ID: 2, Score: 0.9}}
			SortScored(items, tt.desc)

			for i, id := range tt.want {
				if items[i].ID != id {
					t.Errorf("items[%d].ID = %d, want %d", i, items[i].ID, id)
				}
			}
		})
	}
}

func TestIDSet(t *testing.T) {
	s := NewIDSet(5, 1, 3)

	if !s.Contains(3) {
		t.Error("Contains(3) = false, want true")
	}
	if s.Contains(2) {
		t.Error("Contains(2) = true, want false")
	}

	var empty IDSet
	if empty.Contains(1) {
		t.Error("nil set Contains(1) = true, want false")
	}

	got := s.Sorted()
	want := []int{1, 3, 5}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Sorted()[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}
