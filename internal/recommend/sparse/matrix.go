// Otaku - Anime and Manga Title Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otaku

package sparse

import (
	"sort"

	jsparse "github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"

	"github.com/tomtom215/otaku/internal/recommend"
)

// Entry is one non-zero cell of the title x user matrix.
type Entry struct {
	TitleID int
	UserID  int
	Weight  float64
}

// Matrix is a CSR title x user matrix. Row r belongs to TitleID(r) and
// column c to the c-th smallest user id.
type Matrix struct {
	titleIDs []int
	userIDs  []int
	rowIndex map[int]int

	csr *jsparse.CSR
}

// New builds a matrix from entries. Titles and users are ordered by id.
// Repeated (title, user) entries are summed and zero weights are dropped.
func New(entries []Entry) *Matrix {
	cells := make(map[[2]int]float64, len(entries))
	titles := make(recommend.IDSet)
	users := make(recommend.IDSet)
	for _, e := range entries {
		titles[e.TitleID] = struct{}{}
		users[e.UserID] = struct{}{}
		cells[[2]int{e.TitleID, e.UserID}] += e.Weight
	}

	m := &Matrix{
		titleIDs: titles.Sorted(),
		userIDs:  users.Sorted(),
	}
	m.rowIndex = make(map[int]int, len(m.titleIDs))
	for r, id := range m.titleIDs {
		m.rowIndex[id] = r
	}
	colIndex := make(map[int]int, len(m.userIDs))
	for c, id := range m.userIDs {
		colIndex[id] = c
	}

	rows := make([][]int, len(m.titleIDs))
	for key, w := range cells {
		if w == 0 {
			continue
		}
		r := m.rowIndex[key[0]]
		rows[r] = append(rows[r], colIndex[key[1]])
	}

	indptr := make([]int, len(m.titleIDs)+1)
	var indices []int
	var data []float64
	for r, cols := range rows {
		sort.Ints(cols)
		for _, c := range cols {
			indices = append(indices, c)
			data = append(data, cells[[2]int{m.titleIDs[r], m.userIDs[c]}])
		}
		indptr[r+1] = len(indices)
	}
	m.csr = jsparse.NewCSR(len(m.titleIDs), len(m.userIDs), indptr, indices, data)

	return m
}

// FromInteractions builds the matrix from an interaction log. With binary
// set every consumed (title, user) cell is 1; otherwise cells hold the
// summed scores.
func FromInteractions(interactions []recommend.Interaction, binary bool) *Matrix {
	entries := make([]Entry, 0, len(interactions))
	seen := make(map[[2]int]struct{}, len(interactions))
	for _, in := range interactions {
		if binary {
			key := [2]int{in.TitleID, in.UserID}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			entries = append(entries, Entry{TitleID: in.TitleID, UserID: in.UserID, Weight: 1})
			continue
		}
		entries = append(entries, Entry{TitleID: in.TitleID, UserID: in.UserID, Weight: in.Score})
	}
	return New(entries)
}

// Rows returns the number of titles.
func (m *Matrix) Rows() int {
	return len(m.titleIDs)
}

// Cols returns the number of users.
func (m *Matrix) Cols() int {
	return len(m.userIDs)
}

// NNZ returns the number of stored non-zero cells.
func (m *Matrix) NNZ() int {
	return m.csr.NNZ()
}

// TitleID returns the title id of row r.
func (m *Matrix) TitleID(r int) int {
	return m.titleIDs[r]
}

// TitleIDs returns a copy of the parallel title id index.
func (m *Matrix) TitleIDs() []int {
	out := make([]int, len(m.titleIDs))
	copy(out, m.titleIDs)
	return out
}

// Row returns the row of titleID.
func (m *Matrix) Row(titleID int) (int, bool) {
	r, ok := m.rowIndex[titleID]
	return r, ok
}

// UserIDs returns the user ids with a non-zero cell in row r.
func (m *Matrix) UserIDs(r int) []int {
	cols, _ := m.rowData(r)
	out := make([]int, len(cols))
	for i, c := range cols {
		out[i] = m.userIDs[c]
	}
	return out
}

func (m *Matrix) rowData(r int) (cols []int, vals []float64) {
	raw := m.csr.RawMatrix()
	lo, hi := raw.Indptr[r], raw.Indptr[r+1]
	return raw.Ind[lo:hi], raw.Data[lo:hi]
}

// rowView returns row r as a sparse vector sharing the matrix storage.
func (m *Matrix) rowView(r int) mat.Vector {
	return m.csr.RowView(r)
}
