// Copyright 2020 The Tradeviz Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tradestat aggregates and ranks trade records.
//
// The operations mirror what an analyst does with a data frame before
// plotting it: group records by a key and sum a value (Aggregate),
// flip the sign of one flow direction so imports and exports can be
// drawn on opposite sides of an axis (NegateFlow), pick the top or
// bottom entities by total (Select), and find the most correlated
// pairs of categories (TopCorrelations).
//
// All operations return fresh values and never modify their inputs.
package tradestat

import (
	"strings"

	"github.com/aclements/go-gg/ggstat"
	"github.com/aclements/go-gg/table"
	"github.com/aclements/go-moremath/vec"
	"github.com/tradelens/tradeviz/trade"
)

// CountField is the value name of totals produced by Count.
const CountField = "Count"

// Key is a tuple of categorical values, one per grouping field.
type Key []string

func (k Key) String() string {
	return strings.Join(k, "/")
}

func (k Key) encode() string {
	return strings.Join(k, "\x00")
}

// Total is the aggregated value of one key.
type Total struct {
	Key   Key
	Value float64
}

// Totals maps keys to aggregated values. Keys are kept in the order
// the aggregation that produced them emitted them.
type Totals struct {
	// Fields names the component of each key.
	Fields []string

	// Value names the aggregated column.
	Value string

	rows  []Total
	index map[string]int
}

func newTotals(fields []string, value string) *Totals {
	return &Totals{
		Fields: append([]string(nil), fields...),
		Value:  value,
		index:  make(map[string]int),
	}
}

// add adds v to the total of k, creating it if necessary.
func (t *Totals) add(k Key, v float64) {
	enc := k.encode()
	if i, ok := t.index[enc]; ok {
		t.rows[i].Value += v
		return
	}
	t.index[enc] = len(t.rows)
	t.rows = append(t.rows, Total{append(Key(nil), k...), v})
}

// Len returns the number of distinct keys in t.
func (t *Totals) Len() int {
	return len(t.rows)
}

// Rows returns a copy of the totals in order.
func (t *Totals) Rows() []Total {
	return copyRows(t.rows)
}

// copyRows copies rows and their keys.
func copyRows(rows []Total) []Total {
	out := make([]Total, len(rows))
	for i, r := range rows {
		out[i] = Total{append(Key(nil), r.Key...), r.Value}
	}
	return out
}

// Get returns the total of key.
func (t *Totals) Get(key ...string) (float64, bool) {
	i, ok := t.index[Key(key).encode()]
	if !ok {
		return 0, false
	}
	return t.rows[i].Value, true
}

// Sum returns the sum of all totals.
func (t *Totals) Sum() float64 {
	xs := make([]float64, len(t.rows))
	for i, r := range t.rows {
		xs[i] = r.Value
	}
	return vec.Sum(xs)
}

// FieldIndex returns the position of field within keys of t.
func (t *Totals) FieldIndex(field string) (int, error) {
	for i, f := range t.Fields {
		if f == field {
			return i, nil
		}
	}
	return -1, &trade.MissingFieldError{Field: field}
}

// Labels returns the field component of the key of each row.
func (t *Totals) Labels(rows []Total, field string) ([]string, error) {
	i, err := t.FieldIndex(field)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(rows))
	for j, r := range rows {
		out[j] = r.Key[i]
	}
	return out, nil
}

// Filter returns the totals whose field is one of values.
func (t *Totals) Filter(field string, values ...string) (*Totals, error) {
	i, err := t.FieldIndex(field)
	if err != nil {
		return nil, err
	}
	want := make(map[string]bool, len(values))
	for _, v := range values {
		want[v] = true
	}
	nt := newTotals(t.Fields, t.Value)
	for _, r := range t.rows {
		if want[r.Key[i]] {
			nt.add(r.Key, r.Value)
		}
	}
	return nt, nil
}

// Regroup sums t over the fields not listed, producing totals keyed
// by fields alone.
func (t *Totals) Regroup(fields ...string) (*Totals, error) {
	idx := make([]int, len(fields))
	for j, f := range fields {
		i, err := t.FieldIndex(f)
		if err != nil {
			return nil, err
		}
		idx[j] = i
	}
	if len(t.rows) == 0 {
		return newTotals(fields, t.Value), nil
	}
	tab := keyTable(fields, len(t.rows), func(i, j int) string {
		return t.rows[i].Key[idx[j]]
	})
	vals := make([]float64, len(t.rows))
	for i, r := range t.rows {
		vals[i] = r.Value
	}
	tab = withColumn(tab, t.Value, vals)
	return fromAgg(tab, fields, t.Value, ggstat.AggSum(t.Value), "sum "+t.Value), nil
}

// Table returns t as a table with one column per key field followed
// by the value column.
func (t *Totals) Table() *table.Table {
	return rowsTable(t.Fields, t.Value, t.rows)
}

// RowsTable returns rows, which must come from t, as a table.
func (t *Totals) RowsTable(rows []Total) *table.Table {
	return rowsTable(t.Fields, t.Value, rows)
}

func rowsTable(fields []string, value string, rows []Total) *table.Table {
	b := new(table.Builder)
	for i, f := range fields {
		col := make([]string, len(rows))
		for j, r := range rows {
			col[j] = r.Key[i]
		}
		b.Add(f, col)
	}
	vals := make([]float64, len(rows))
	for j, r := range rows {
		vals[j] = r.Value
	}
	b.Add(value, vals)
	return b.Done()
}

// Aggregate groups the records of d by the key fields and sums the
// numeric value field within each group.
//
// Rows are ordered by the first appearance of each key field value,
// nested from the first field to the last: records keyed (A,X),
// (B,Y), (A,Z) total as A/X, A/Z, B/Y.
//
// Every field must be a column of d. Keys that no record has are
// absent from the result. An empty dataset yields empty totals.
func Aggregate(d *trade.Dataset, keys []string, value string) (*Totals, error) {
	if err := requireKeys(d, keys); err != nil {
		return nil, err
	}
	if !trade.IsNumeric(value) {
		return nil, &trade.MissingFieldError{Field: value}
	}
	if err := d.Require(value); err != nil {
		return nil, err
	}
	if d.Len() == 0 {
		return newTotals(keys, value), nil
	}
	tab := recordTable(d, keys)
	vals := make([]float64, d.Len())
	for i := range d.Records {
		vals[i], _ = d.Records[i].Num(value)
	}
	tab = withColumn(tab, value, vals)
	return fromAgg(tab, keys, value, ggstat.AggSum(value), "sum "+value), nil
}

// Count groups the records of d by the key fields and counts the
// records within each group. Rows are ordered as for Aggregate.
func Count(d *trade.Dataset, keys []string) (*Totals, error) {
	if err := requireKeys(d, keys); err != nil {
		return nil, err
	}
	if d.Len() == 0 {
		return newTotals(keys, CountField), nil
	}
	ones := make([]float64, d.Len())
	for i := range ones {
		ones[i] = 1
	}
	tab := withColumn(recordTable(d, keys), CountField, ones)
	return fromAgg(tab, keys, CountField, ggstat.AggCount(CountField), CountField), nil
}

func requireKeys(d *trade.Dataset, keys []string) error {
	for _, f := range keys {
		if !trade.IsKey(f) {
			return &trade.MissingFieldError{Field: f}
		}
	}
	return d.Require(keys...)
}

// keyTable builds a table with one string column per distinct field.
// keyOf(i, j) is the value of fields[j] in row i.
func keyTable(fields []string, n int, keyOf func(i, j int) string) *table.Table {
	b := new(table.Builder)
	for j, f := range fields {
		if b.Has(f) {
			continue
		}
		col := make([]string, n)
		for i := range col {
			col[i] = keyOf(i, j)
		}
		b.Add(f, col)
	}
	return b.Done()
}

func recordTable(d *trade.Dataset, keys []string) *table.Table {
	return keyTable(keys, d.Len(), func(i, j int) string {
		v, _ := d.Records[i].Key(keys[j])
		return v
	})
}

// withColumn returns tab with the additional column name.
func withColumn(tab *table.Table, name string, col []float64) *table.Table {
	b := new(table.Builder)
	for _, c := range tab.Columns() {
		b.Add(c, tab.Column(c))
	}
	return b.Add(name, col).Done()
}

// fromAgg groups tab by fields, applies agg to each group and reads
// the aggregated column out back into totals.
func fromAgg(tab *table.Table, fields []string, value string, agg ggstat.Aggregator, out string) *Totals {
	uniq := make([]string, 0, len(fields))
	seen := map[string]bool{}
	for _, f := range fields {
		if !seen[f] {
			seen[f] = true
			uniq = append(uniq, f)
		}
	}
	res := table.Flatten(ggstat.Agg(uniq...)(agg).F(tab))

	keyCols := make([][]string, len(fields))
	for j, f := range fields {
		keyCols[j] = res.MustColumn(f).([]string)
	}
	var vals []float64
	switch col := res.MustColumn(out).(type) {
	case []float64:
		vals = col
	case []int:
		vals = make([]float64, len(col))
		for i, x := range col {
			vals[i] = float64(x)
		}
	}

	t := newTotals(fields, value)
	k := make(Key, len(fields))
	for i, v := range vals {
		for j := range fields {
			k[j] = keyCols[j][i]
		}
		t.add(k, v)
	}
	return t
}
