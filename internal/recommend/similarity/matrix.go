// Otaku - Anime and Manga Title Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otaku

package similarity

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/tomtom215/otaku/internal/recommend"
)

// Order selects how query results are ranked.
type Order int

const (
	// OrderAuto ranks descending for similarities and ascending for distances.
	OrderAuto Order = iota
	// OrderDescending ranks the largest values first.
	OrderDescending
	// OrderAscending ranks the smallest values first.
	OrderAscending
)

// QueryOptions narrows and orders a ranked-neighbor query.
type QueryOptions struct {
	// RestrictTo limits candidates to the given ids. Nil means no restriction;
	// an empty non-nil set yields an empty result.
	RestrictTo recommend.IDSet

	// Order must agree with the metric when set explicitly.
	Order Order
}

// Matrix is a symmetric pairwise matrix over a set of ids.
type Matrix struct {
	metric  Metric
	ids     []int
	index   map[int]int
	values  *mat.SymDense
	dropped int
}

// Build computes the pairwise matrix of table under metric. Rows whose id is
// not in universe are dropped first; a nil universe keeps every row.
func Build(table *recommend.FeatureTable, metric Metric, universe recommend.IDSet) (*Matrix, error) {
	if !metric.Valid() {
		return nil, fmt.Errorf("%w: %d", recommend.ErrInvalidMetric, int(metric))
	}
	if table == nil {
		return nil, fmt.Errorf("%w: nil feature table", recommend.ErrSchemaMismatch)
	}
	if err := table.Validate(); err != nil {
		return nil, err
	}

	ids := make([]int, 0, len(table.IDs))
	rows := make([][]float64, 0, len(table.IDs))
	for i, id := range table.IDs {
		if universe != nil && !universe.Contains(id) {
			continue
		}
		ids = append(ids, id)
		rows = append(rows, table.Rows[i])
	}

	m := &Matrix{
		metric:  metric,
		ids:     ids,
		index:   make(map[int]int, len(ids)),
		dropped: len(table.IDs) - len(ids),
	}
	for i, id := range ids {
		m.index[id] = i
	}

	n := len(ids)
	if n == 0 {
		return m, nil
	}
	m.values = mat.NewSymDense(n, nil)

	var norms []float64
	if metric == MetricCosine {
		norms = make([]float64, n)
		for i := range rows {
			norms[i] = floats.Norm(rows[i], 2)
		}
	}

	for i := 0; i < n; i++ {
		m.values.SetSym(i, i, metric.SelfValue())
		for j := i + 1; j < n; j++ {
			var v float64
			if metric == MetricCosine {
				v = cosine(rows[i], rows[j], norms[i], norms[j])
			} else {
				v = metric.Between(rows[i], rows[j])
			}
			m.values.SetSym(i, j, v)
		}
	}

	return m, nil
}

// Metric returns the metric the matrix was built with.
func (m *Matrix) Metric() Metric {
	return m.metric
}

// Len returns the number of indexed ids.
func (m *Matrix) Len() int {
	return len(m.ids)
}

// Dropped returns how many input rows were excluded by the id universe.
func (m *Matrix) Dropped() int {
	return m.dropped
}

// IDs returns a copy of the indexed ids in row order.
func (m *Matrix) IDs() []int {
	out := make([]int, len(m.ids))
	copy(out, m.ids)
	return out
}

// Contains reports whether id is indexed.
func (m *Matrix) Contains(id int) bool {
	_, ok := m.index[id]
	return ok
}

// Lookup returns the value between a and b, and false if either is not indexed.
func (m *Matrix) Lookup(a, b int) (float64, bool) {
	i, ok := m.index[a]
	if !ok {
		return 0, false
	}
	j, ok := m.index[b]
	if !ok {
		return 0, false
	}
	return m.values.At(i, j), true
}

// Score returns the value between a and b.
func (m *Matrix) Score(a, b int) (float64, error) {
	if !m.Contains(a) {
		return 0, fmt.Errorf("%w: %d", recommend.ErrUnknownID, a)
	}
	if !m.Contains(b) {
		return 0, fmt.Errorf("%w: %d", recommend.ErrUnknownID, b)
	}
	v, _ := m.Lookup(a, b)
	return v, nil
}

// Query returns up to topN ids ranked against id, never including id itself.
// Ties are broken by id ascending.
func (m *Matrix) Query(id, topN int, opts QueryOptions) ([]recommend.Scored, error) {
	row, ok := m.index[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", recommend.ErrUnknownID, id)
	}

	desc := m.metric.IsSimilarity()
	switch opts.Order {
	case OrderAuto:
	case OrderDescending:
		if !desc {
			return nil, fmt.Errorf("%w: descending order over %s distance", recommend.ErrUnsupportedMetric, m.metric)
		}
	case OrderAscending:
		if desc {
			return nil, fmt.Errorf("%w: ascending order over %s similarity", recommend.ErrUnsupportedMetric, m.metric)
		}
	default:
		return nil, fmt.Errorf("%w: order %d", recommend.ErrUnsupportedMetric, int(opts.Order))
	}

	if topN <= 0 {
		return []recommend.Scored{}, nil
	}

	candidates := make([]recommend.Scored, 0, len(m.ids))
	for j, other := range m.ids {
		if j == row {
			continue
		}
		if opts.RestrictTo != nil && !opts.RestrictTo.Contains(other) {
			continue
		}
		candidates = append(candidates, recommend.Scored{ID: other, Score: m.values.At(row, j)})
	}

	recommend.SortScored(candidates, desc)
	if len(candidates) > topN {
		candidates = candidates[:topN]
	}
	return candidates, nil
}
