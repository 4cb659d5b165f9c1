// Otaku - Anime and Manga Title Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otaku

package sparse

import (
	"math"
	"testing"
)

const (
	titleX = 100
	titleY = 200
	titleZ = 300
	titleE = 400
)

// overlapMatrix: X is consumed by users {1,2,3}, Y by {1,2,3,4}, Z by {4,5}
// and E by nobody with a non-zero weight.
func overlapMatrix() *Matrix {
	var entries []Entry
	for _, u := range []int{1, 2, 3} {
		entries = append(entries, Entry{TitleID: titleX, UserID: u, Weight: 1})
	}
	for _, u := range []int{1, 2, 3, 4} {
		entries = append(entries, Entry{TitleID: titleY, UserID: u, Weight: 1})
	}
	for _, u := range []int{4, 5} {
		entries = append(entries, Entry{TitleID: titleZ, UserID: u, Weight: 1})
	}
	entries = append(entries, Entry{TitleID: titleE, UserID: 1, Weight: 0})
	return New(entries)
}

func TestKNeighbors_OverlapScenario(t *testing.T) {
	nn := Fit(overlapMatrix(), 0)
	row, _ := nn.Matrix().Row(titleX)

	got := nn.KNeighbors(row, 2)

	if len(got) != 2 {
		t.Fatalf("len(KNeighbors) = %d, want 2", len(got))
	}
	if got[0].TitleID != titleX || got[0].Distance != 0 {
		t.Errorf("first neighbor = %+v, want the query at distance 0", got[0])
	}
	if got[1].TitleID != titleY {
		t.Errorf("second neighbor = %d, want %d", got[1].TitleID, titleY)
	}

	want := 1 - 3/(math.Sqrt(3)*2)
	if math.Abs(got[1].Distance-want) > 1e-9 {
		t.Errorf("distance(X, Y) = %v, want %v", got[1].Distance, want)
	}
}

func TestKNeighbors_Ordering(t *testing.T) {
	nn := Fit(overlapMatrix(), 3)
	m := nn.Matrix()

	for r := 0; r < m.Rows(); r++ {
		got := nn.KNeighbors(r, 10)
		if len(got) != m.Rows() {
			t.Errorf("row %d: len = %d, want %d", r, len(got), m.Rows())
		}
		for i := 1; i < len(got); i++ {
			if got[i].Distance < got[i-1].Distance {
				t.Errorf("row %d: distances decrease at %d", r, i)
			}
		}
	}
}

func TestKNeighbors_DefaultK(t *testing.T) {
	nn := Fit(overlapMatrix(), 3)
	if nn.K() != 3 {
		t.Errorf("K() = %d, want 3", nn.K())
	}

	got := nn.KNeighbors(0, 0)
	if len(got) != 3 {
		t.Errorf("len(KNeighbors(0, 0)) = %d, want 3", len(got))
	}

	if Fit(overlapMatrix(), -1).K() != DefaultNeighbors {
		t.Errorf("Fit(k=-1).K() != %d", DefaultNeighbors)
	}
}

func TestDistance(t *testing.T) {
	nn := Fit(overlapMatrix(), 0)
	m := nn.Matrix()
	x, _ := m.Row(titleX)
	z, _ := m.Row(titleZ)
	e, _ := m.Row(titleE)

	tests := []struct {
		name string
		a, b int
		want float64
	}{
		{"disjoint users", x, z, 1},
		{"empty row", x, e, 1},
		{"symmetric", z, x, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := nn.Distance(tt.a, tt.b); got != tt.want {
				t.Errorf("Distance() = %v, want %v", got, tt.want)
			}
		})
	}
}
