// Copyright 2020 The Tradeviz Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tradestat

import (
	"math"
	"sort"
	"strconv"

	"github.com/aclements/go-gg/ggstat"
	"github.com/aclements/go-gg/table"
	"github.com/tradelens/tradeviz/trade"
	"gonum.org/v1/gonum/stat"
)

// Wide is a two-way table of values, such as years by categories.
// Missing cells are NaN.
type Wide struct {
	Index   []string
	Columns []string

	// Cells[i][j] is the value at Index[i], Columns[j].
	Cells [][]float64
}

// Column returns the values of column j.
func (w *Wide) Column(j int) []float64 {
	out := make([]float64, len(w.Index))
	for i := range w.Index {
		out[i] = w.Cells[i][j]
	}
	return out
}

// Table returns w as a table whose first column is the index.
func (w *Wide) Table(indexName string) *table.Table {
	b := new(table.Builder).Add(indexName, w.Index)
	for j, c := range w.Columns {
		b.Add(c, w.Column(j))
	}
	return b.Done()
}

// Pivot spreads t into a table indexed by the index field with one
// column per value of the column field. Each cell is the mean of the
// totals that share its index and column values; totals keyed by
// other fields (such as a reporter) are averaged together. Index and
// column labels are sorted, numerically when they are all numbers.
func Pivot(t *Totals, index, column string) (*Wide, error) {
	ii, err := t.FieldIndex(index)
	if err != nil {
		return nil, err
	}
	ci, err := t.FieldIndex(column)
	if err != nil {
		return nil, err
	}

	if len(t.rows) == 0 {
		return &Wide{}, nil
	}

	// Average the totals of each (index, column) cell.
	fields, idx := []string{index, column}, []int{ii, ci}
	tab := keyTable(fields, len(t.rows), func(i, j int) string {
		return t.rows[i].Key[idx[j]]
	})
	vals := make([]float64, len(t.rows))
	for i, r := range t.rows {
		vals[i] = r.Value
	}
	tab = withColumn(tab, t.Value, vals)
	means := fromAgg(tab, fields, t.Value, ggstat.AggMean(t.Value), "mean "+t.Value)

	rowLabels, err := t.Labels(t.rows, index)
	if err != nil {
		return nil, err
	}
	colLabels, err := t.Labels(t.rows, column)
	if err != nil {
		return nil, err
	}
	rowLabels, colLabels = distinct(rowLabels), distinct(colLabels)
	sortLabels(rowLabels)
	sortLabels(colLabels)

	w := &Wide{Index: rowLabels, Columns: colLabels, Cells: make([][]float64, len(rowLabels))}
	for i, rl := range rowLabels {
		w.Cells[i] = make([]float64, len(colLabels))
		for j, cl := range colLabels {
			v, ok := means.Get(rl, cl)
			if !ok {
				v = math.NaN()
			}
			w.Cells[i][j] = v
		}
	}
	return w, nil
}

func distinct(labels []string) []string {
	var out []string
	seen := map[string]bool{}
	for _, l := range labels {
		if !seen[l] {
			seen[l] = true
			out = append(out, l)
		}
	}
	return out
}

// sortLabels sorts labels numerically if they all parse as numbers
// and lexically otherwise.
func sortLabels(labels []string) {
	nums := make(map[string]float64, len(labels))
	for _, l := range labels {
		x, err := strconv.ParseFloat(l, 64)
		if err != nil {
			sort.Strings(labels)
			return
		}
		nums[l] = x
	}
	sort.SliceStable(labels, func(i, j int) bool {
		return nums[labels[i]] < nums[labels[j]]
	})
}

// Correlate returns the Pearson correlation matrix of the columns of
// w. Each coefficient uses the rows where both columns have values.
// A coefficient is NaN if fewer than two such rows exist or either
// column is constant over them.
func Correlate(w *Wide) (*Matrix, error) {
	if len(w.Index) == 0 {
		return nil, &trade.EmptyInputError{Op: "correlate"}
	}
	n := len(w.Columns)
	cols := make([][]float64, n)
	for j := range cols {
		cols[j] = w.Column(j)
	}
	vals := make([][]float64, n)
	for i := range vals {
		vals[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			c := pairwise(cols[i], cols[j])
			if i == j && !math.IsNaN(c) {
				c = 1
			}
			vals[i][j], vals[j][i] = c, c
		}
	}
	return NewMatrix(w.Columns, vals)
}

func pairwise(x, y []float64) float64 {
	var xs, ys []float64
	for k := range x {
		if math.IsNaN(x[k]) || math.IsNaN(y[k]) {
			continue
		}
		xs = append(xs, x[k])
		ys = append(ys, y[k])
	}
	if len(xs) < 2 || constant(xs) || constant(ys) {
		return math.NaN()
	}
	c := stat.Correlation(xs, ys, nil)
	return math.Max(-1, math.Min(1, c))
}

func constant(xs []float64) bool {
	for _, x := range xs[1:] {
		if x != xs[0] {
			return false
		}
	}
	return true
}

// Shares expresses each total as a percentage of the sum of the
// totals that share its by field. Groups that sum to zero have
// shares of zero.
func Shares(t *Totals, by string) (*Totals, error) {
	bi, err := t.FieldIndex(by)
	if err != nil {
		return nil, err
	}
	sums := map[string]float64{}
	for _, r := range t.rows {
		sums[r.Key[bi]] += r.Value
	}
	nt := newTotals(t.Fields, t.Value)
	for _, r := range t.rows {
		v := 0.0
		if s := sums[r.Key[bi]]; s != 0 {
			v = 100 * r.Value / s
		}
		nt.add(r.Key, v)
	}
	return nt, nil
}
