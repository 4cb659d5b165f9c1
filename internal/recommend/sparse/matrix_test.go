// Otaku - Anime and Manga Title Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otaku

package sparse

import (
	"testing"

	jsparse "github.com/james-bowman/sparse"

	"github.com/tomtom215/otaku/internal/recommend"
)

func TestNew(t *testing.T) {
	m := New([]Entry{
		{TitleID: 20, UserID: 2, Weight: 1},
		{TitleID: 10, UserID: 1, Weight: 1},
		{TitleID: 10, UserID: 3, Weight: 2},
		{TitleID: 10, UserID: 3, Weight: 1},
		{TitleID: 30, UserID: 1, Weight: 0},
	})

	if m.Rows() != 3 {
		t.Errorf("Rows() = %d, want 3", m.Rows())
	}
	if m.Cols() != 3 {
		t.Errorf("Cols() = %d, want 3", m.Cols())
	}
	if m.NNZ() != 3 {
		t.Errorf("NNZ() = %d, want 3", m.NNZ())
	}

	wantIDs := []int{10, 20, 30}
	for r, id := range wantIDs {
		if m.TitleID(r) != id {
			t.Errorf("TitleID(%d) = %d, want %d", r, m.TitleID(r), id)
		}
	}

	row, ok := m.Row(10)
	if !ok {
		t.Fatal("Row(10) not found")
	}
	users := m.UserIDs(row)
	if len(users) != 2 || users[0] != 1 || users[1] != 3 {
		t.Errorf("UserIDs(10) = %v, want [1 3]", users)
	}

	// Repeated cells are summed.
	_, vals := m.rowData(row)
	if vals[1] != 3 {
		t.Errorf("cell (10, 3) = %v, want 3", vals[1])
	}

	// Zero-weight cells keep the title row but store nothing.
	row30, _ := m.Row(30)
	if len(m.UserIDs(row30)) != 0 {
		t.Errorf("UserIDs(30) = %v, want empty", m.UserIDs(row30))
	}

	if _, ok := m.Row(99); ok {
		t.Error("Row(99) found, want missing")
	}
}

func TestFromInteractions(t *testing.T) {
	interactions := []recommend.Interaction{
		{UserID: 1, TitleID: 10, Score: 80},
		{UserID: 1, TitleID: 10, Score: 60},
		{UserID: 2, TitleID: 10, Score: 50},
	}

	tests := []struct {
		name   string
		binary bool
		want   []float64
	}{
		{"binary incidence", true, []float64{1, 1}},
		{"summed scores", false, []float64{140, 50}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := FromInteractions(interactions, tt.binary)
			row, _ := m.Row(10)
			_, vals := m.rowData(row)
			if len(vals) != len(tt.want) {
				t.Fatalf("row has %d cells, want %d", len(vals), len(tt.want))
			}
			for i := range tt.want {
				if vals[i] != tt.want[i] {
					t.Errorf("vals[%d] = %v, want %v", i, vals[i], tt.want[i])
				}
			}
		})
	}
}

func TestTitleIDs_ReturnsCopy(t *testing.T) {
	m := New([]Entry{{TitleID: 1, UserID: 1, Weight: 1}})
	ids := m.TitleIDs()
	ids[0] = 42

	if m.TitleID(0) != 1 {
		t.Errorf("TitleID(0) = %d after mutating the copy, want 1", m.TitleID(0))
	}
}

func TestNew_CSRCells(t *testing.T) {
	m := New([]Entry{
		{TitleID: 10, UserID: 1, Weight: 1},
		{TitleID: 10, UserID: 3, Weight: 3},
		{TitleID: 20, UserID: 2, Weight: 2},
		{TitleID: 20, UserID: 3, Weight: 1},
	})

	rows, cols := m.csr.Dims()
	if rows != 2 || cols != 3 {
		t.Fatalf("Dims() = %d x %d, want 2 x 3", rows, cols)
	}

	// Columns follow ascending user id: 1, 2, 3.
	want := [][]float64{
		{1, 0, 3},
		{0, 2, 1},
	}
	for r := range want {
		for c := range want[r] {
			if got := m.csr.At(r, c); got != want[r][c] {
				t.Errorf("At(%d, %d) = %v, want %v", r, c, got, want[r][c])
			}
		}
	}

	if got := jsparse.Dot(m.rowView(0), m.rowView(1)); got != 3 {
		t.Errorf("Dot(row 10, row 20) = %v, want 3", got)
	}
	if got := jsparse.Dot(m.rowView(0), m.rowView(0)); got != 10 {
		t.Errorf("Dot(row 10, row 10) = %v, want 10", got)
	}
}
