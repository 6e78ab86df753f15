// Copyright 2020 The Tradeviz Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package report formats analysis results as text: aligned tables
// for terminals, tab-separated tables for other programs, and short
// prose summaries.
package report

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/aclements/go-gg/table"
)

// errWriter records the first error written through it.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}

// Fprint writes t to w as a table with aligned columns.
func Fprint(w io.Writer, t *table.Table) error {
	ew := &errWriter{w: w}
	table.Fprint(ew, t)
	return ew.err
}

// WriteTSV writes t to w as tab-separated values, preceded by a row of
// column names if header is true. Floating-point values are written
// in the shortest form that round-trips.
func WriteTSV(w io.Writer, t *table.Table, header bool) (err error) {
	buf := bufio.NewWriter(w)
	defer func() {
		if ferr := buf.Flush(); err == nil {
			err = ferr
		}
	}()

	cols := t.Columns()
	if header {
		fmt.Fprintf(buf, "%s\n", strings.Join(cols, "\t"))
	}

	vs := make([]reflect.Value, len(cols))
	for i, name := range cols {
		vs[i] = reflect.ValueOf(t.Column(name))
	}
	for i := 0; i < t.Len(); i++ {
		for j, v := range vs {
			if j > 0 {
				buf.WriteString("\t")
			}
			buf.WriteString(cell(v.Index(i).Interface()))
		}
		buf.WriteString("\n")
	}
	return nil
}

func cell(v interface{}) string {
	switch v := v.(type) {
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case string:
		return v
	}
	return fmt.Sprint(v)
}

// HumanFormat formats v compactly with a K, M, B or T suffix, such as
// "1.5M" for 1,500,000. Values below one thousand in magnitude are
// formatted with at most one decimal.
func HumanFormat(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	const units = "KMBT"
	unit := ""
	for i := 0; i < len(units) && math.Abs(v) >= 1000; i++ {
		v /= 1000
		unit = units[i : i+1]
	}
	s := strconv.FormatFloat(v, 'f', 1, 64)
	s = strings.TrimSuffix(s, ".0")
	if s == "-0" {
		s = "0"
	}
	return s + unit
}

// Humanize returns a copy of t in which every float64 column is
// replaced by its HumanFormat strings.
func Humanize(t *table.Table) *table.Table {
	b := new(table.Builder)
	for _, name := range t.Columns() {
		col := t.Column(name)
		if xs, ok := col.([]float64); ok {
			ss := make([]string, len(xs))
			for i, x := range xs {
				ss[i] = HumanFormat(x)
			}
			col = ss
		}
		b.Add(name, col)
	}
	return b.Done()
}
