// Copyright 2020 The Tradeviz Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tradestat

import (
	"fmt"
	"math"
	"sort"

	"github.com/aclements/go-gg/table"
	"gonum.org/v1/gonum/mat"
)

// Matrix is a square symmetric matrix whose rows and columns are
// labeled by the same set of labels, such as a correlation matrix
// over commodity categories.
type Matrix struct {
	labels []string
	pos    map[string]int
	sym    *mat.SymDense // nil if there are no labels
}

// NewMatrix returns the matrix with the given labels and values.
// values must be square with one row per label and symmetric. Labels
// must be distinct.
func NewMatrix(labels []string, values [][]float64) (*Matrix, error) {
	n := len(labels)
	if len(values) != n {
		return nil, fmt.Errorf("matrix has %d rows for %d labels", len(values), n)
	}
	m := &Matrix{labels: append([]string(nil), labels...), pos: make(map[string]int, n)}
	for i, l := range labels {
		if _, ok := m.pos[l]; ok {
			return nil, fmt.Errorf("duplicate label %q", l)
		}
		m.pos[l] = i
	}
	if n == 0 {
		return m, nil
	}
	m.sym = mat.NewSymDense(n, nil)
	for i := range values {
		if len(values[i]) != n {
			return nil, fmt.Errorf("matrix row %d has %d columns, want %d", i, len(values[i]), n)
		}
	}
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			a, b := values[i][j], values[j][i]
			if !sameValue(a, b) {
				return nil, fmt.Errorf("matrix not symmetric at (%s, %s)", labels[i], labels[j])
			}
			m.sym.SetSym(i, j, a)
		}
	}
	return m, nil
}

func sameValue(a, b float64) bool {
	if math.IsNaN(a) || math.IsNaN(b) {
		return math.IsNaN(a) && math.IsNaN(b)
	}
	return math.Abs(a-b) <= 1e-12*math.Max(1, math.Abs(a))
}

// Labels returns the row (and column) labels of m.
func (m *Matrix) Labels() []string {
	return append([]string(nil), m.labels...)
}

// Len returns the number of rows of m.
func (m *Matrix) Len() int {
	return len(m.labels)
}

// At returns the element at row i, column j.
func (m *Matrix) At(i, j int) float64 {
	return m.sym.At(i, j)
}

// Value returns the element at the labeled row and column.
func (m *Matrix) Value(row, col string) (float64, bool) {
	i, ok1 := m.pos[row]
	j, ok2 := m.pos[col]
	if !ok1 || !ok2 {
		return 0, false
	}
	return m.At(i, j), true
}

// Table returns m as a table with a "label" column followed by one
// column per label.
func (m *Matrix) Table() *table.Table {
	b := new(table.Builder).Add("label", m.Labels())
	for j, l := range m.labels {
		col := make([]float64, len(m.labels))
		for i := range m.labels {
			col[i] = m.At(i, j)
		}
		b.Add(l, col)
	}
	return b.Done()
}

// A Pair names one cell of a Matrix.
type Pair struct {
	Row, Col string
}

func (p Pair) String() string {
	return p.Row + " - " + p.Col
}

// PairValue is a matrix cell and its value.
type PairValue struct {
	Pair
	Value float64
}

// RedundantPairs returns the cells of m on or below the diagonal:
// every (labels[i], labels[j]) with j <= i. These are the self pairs
// and one copy of each mirrored pair, so an n×n matrix yields
// n(n+1)/2 pairs.
func RedundantPairs(m *Matrix) map[Pair]struct{} {
	pairs := make(map[Pair]struct{}, m.Len()*(m.Len()+1)/2)
	for i, a := range m.labels {
		for _, b := range m.labels[:i+1] {
			pairs[Pair{a, b}] = struct{}{}
		}
	}
	return pairs
}

// Unstack flattens m into its n² cells, row by row.
func Unstack(m *Matrix) []PairValue {
	out := make([]PairValue, 0, m.Len()*m.Len())
	for i, a := range m.labels {
		for j, b := range m.labels {
			out = append(out, PairValue{Pair{a, b}, m.At(i, j)})
		}
	}
	return out
}

// RankOptions controls TopCorrelations.
type RankOptions struct {
	// N is the number of pairs to return. If N < 0, all pairs
	// are returned.
	N int

	// Ascending sorts from the smallest value up.
	Ascending bool

	// Abs ranks, and reports, the absolute value of each
	// element.
	Abs bool
}

// DefaultRankOptions selects the five weakest correlations by
// magnitude.
var DefaultRankOptions = RankOptions{N: 5, Ascending: true, Abs: true}

// TopCorrelations ranks the distinct off-diagonal pairs of m and
// returns the first opts.N. Each unordered pair appears once; self
// pairs are excluded. NaN values sort last.
func TopCorrelations(m *Matrix, opts RankOptions) []PairValue {
	drop := RedundantPairs(m)
	var pairs []PairValue
	for _, pv := range Unstack(m) {
		if _, ok := drop[pv.Pair]; ok {
			continue
		}
		if opts.Abs {
			pv.Value = math.Abs(pv.Value)
		}
		pairs = append(pairs, pv)
	}
	o := Descending
	if opts.Ascending {
		o = Ascending
	}
	sort.SliceStable(pairs, func(i, j int) bool {
		return less(pairs[i].Value, pairs[j].Value, o)
	})
	if opts.N >= 0 && opts.N < len(pairs) {
		pairs = pairs[:opts.N]
	}
	return pairs
}
