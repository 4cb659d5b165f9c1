// Otaku - Anime and Manga Title Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otaku

package sparse

import (
	"math"
	"sort"

	jsparse "github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"
)

// DefaultNeighbors is the k used when a caller passes k <= 0 at fit time.
const DefaultNeighbors = 20

// Neighbor is a row returned by a k-NN query.
type Neighbor struct {
	Row      int     `json:"-"`
	TitleID  int     `json:"title_id"`
	Distance float64 `json:"distance"`
}

// NearestNeighbors is an exact brute-force cosine k-NN index over the rows
// of a Matrix. Distance is 1 - cosine similarity; a zero row is at distance
// 1 from every row.
type NearestNeighbors struct {
	matrix *Matrix
	rows   []mat.Vector
	norms  []float64
	k      int
}

// Fit precomputes row views and norms for m. k is the default neighbor count.
func Fit(m *Matrix, k int) *NearestNeighbors {
	if k <= 0 {
		k = DefaultNeighbors
	}
	rows := make([]mat.Vector, m.Rows())
	norms := make([]float64, m.Rows())
	for r := range rows {
		rows[r] = m.rowView(r)
		norms[r] = math.Sqrt(jsparse.Dot(rows[r], rows[r]))
	}
	return &NearestNeighbors{matrix: m, rows: rows, norms: norms, k: k}
}

// K returns the default neighbor count.
func (nn *NearestNeighbors) K() int {
	return nn.k
}

// Matrix returns the fitted matrix.
func (nn *NearestNeighbors) Matrix() *Matrix {
	return nn.matrix
}

// Distance returns the cosine distance between rows a and b.
func (nn *NearestNeighbors) Distance(a, b int) float64 {
	if nn.norms[a] == 0 || nn.norms[b] == 0 {
		return 1
	}
	d := 1 - jsparse.Dot(nn.rows[a], nn.rows[b])/(nn.norms[a]*nn.norms[b])
	if d < 0 {
		d = 0
	}
	return d
}

// KNeighbors returns the k rows closest to row, including row itself, by
// ascending distance with title id ascending as the tie-break. A k <= 0
// uses the fitted default.
func (nn *NearestNeighbors) KNeighbors(row, k int) []Neighbor {
	if k <= 0 {
		k = nn.k
	}

	all := make([]Neighbor, nn.matrix.Rows())
	for r := range all {
		d := 0.0
		if r != row {
			d = nn.Distance(row, r)
		}
		all[r] = Neighbor{Row: r, TitleID: nn.matrix.TitleID(r), Distance: d}
	}

	sort.SliceStable(all, func(i, j int) bool {
		if all[i].Distance != all[j].Distance {
			return all[i].Distance < all[j].Distance
		}
		return all[i].TitleID < all[j].TitleID
	})

	if len(all) > k {
		all = all[:k]
	}
	return all
}
