// Copyright 2020 The Tradeviz Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trade

import (
	"github.com/aclements/go-gg/table"
)

// Dataset is a set of records together with the columns that were
// present in their source. Fields not listed in Columns hold zero
// values and must not be used.
type Dataset struct {
	Columns []string
	Records []Record
}

// NewDataset returns a dataset over recs with the given columns.
func NewDataset(columns []string, recs []Record) *Dataset {
	return &Dataset{Columns: append([]string(nil), columns...), Records: recs}
}

// Len returns the number of records in d.
func (d *Dataset) Len() int {
	return len(d.Records)
}

// Has reports whether field is a column of d.
func (d *Dataset) Has(field string) bool {
	for _, c := range d.Columns {
		if c == field {
			return true
		}
	}
	return false
}

// Require returns a *MissingFieldError for the first of fields that
// is not a column of d.
func (d *Dataset) Require(fields ...string) error {
	for _, f := range fields {
		if !d.Has(f) {
			return &MissingFieldError{Field: f}
		}
	}
	return nil
}

// Copy returns a deep copy of d. Modifying the records of the copy
// does not affect d.
func (d *Dataset) Copy() *Dataset {
	recs := make([]Record, len(d.Records))
	copy(recs, d.Records)
	return NewDataset(d.Columns, recs)
}

// WithColumns returns a copy of d that additionally lists columns.
func (d *Dataset) WithColumns(columns ...string) *Dataset {
	nd := d.Copy()
	for _, c := range columns {
		if !nd.Has(c) {
			nd.Columns = append(nd.Columns, c)
		}
	}
	return nd
}

// Filter returns the records of d whose categorical field equals one
// of values. The returned dataset shares no storage with d.
func (d *Dataset) Filter(field string, values ...string) (*Dataset, error) {
	if err := d.requireKey(field); err != nil {
		return nil, err
	}
	want := make(map[string]bool, len(values))
	for _, v := range values {
		want[v] = true
	}
	var recs []Record
	for i := range d.Records {
		v, _ := d.Records[i].Key(field)
		if want[v] {
			recs = append(recs, d.Records[i])
		}
	}
	return NewDataset(d.Columns, recs), nil
}

// Values returns the distinct values of the categorical field in
// order of first appearance.
func (d *Dataset) Values(field string) ([]string, error) {
	if err := d.requireKey(field); err != nil {
		return nil, err
	}
	seen := map[string]bool{}
	var out []string
	for i := range d.Records {
		v, _ := d.Records[i].Key(field)
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out, nil
}

func (d *Dataset) requireKey(field string) error {
	if !IsKey(field) {
		return &MissingFieldError{Field: field}
	}
	return d.Require(field)
}

// Table returns d as a table with one column per column of d.
func (d *Dataset) Table() *table.Table {
	b := new(table.Builder)
	for _, col := range d.Columns {
		switch {
		case col == Year:
			ys := make([]int, len(d.Records))
			for i := range d.Records {
				ys[i] = d.Records[i].Year
			}
			b.Add(col, ys)
		case IsNumeric(col):
			xs := make([]float64, len(d.Records))
			for i := range d.Records {
				xs[i], _ = d.Records[i].Num(col)
			}
			b.Add(col, xs)
		default:
			ss := make([]string, len(d.Records))
			for i := range d.Records {
				ss[i], _ = d.Records[i].Key(col)
			}
			b.Add(col, ss)
		}
	}
	return b.Done()
}
