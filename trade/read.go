// Copyright 2020 The Tradeviz Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trade

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Open reads the trade records in the file at path. The format is
// chosen by extension: ".csv", ".xlsx", or ".db"/".sqlite"/".sqlite3"
// for a SQLite database with a table named "trade".
func Open(ctx context.Context, path string) (*Dataset, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return ReadCSVFile(path)
	case ".xlsx":
		return ReadXLSXFile(path)
	case ".db", ".sqlite", ".sqlite3":
		return ReadSQLiteFile(ctx, path, DefaultSQLiteTable)
	}
	return nil, fmt.Errorf("%s: unknown input format", path)
}

// ReadCSVFile reads the CSV file at path. See ReadCSV.
func ReadCSVFile(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	d, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadCSV reads comma-separated trade records from r. The first row
// must be a header. Columns with unrecognized headers are ignored.
func ReadCSV(r io.Reader) (*Dataset, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	content = bytes.TrimPrefix(content, utf8BOM)

	cr := csv.NewReader(bytes.NewReader(content))
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	return fromRows(rows)
}

// fromRows converts a header row followed by data rows into a
// Dataset.
func fromRows(rows [][]string) (*Dataset, error) {
	if len(rows) == 0 {
		return nil, &EmptyInputError{Op: "read header"}
	}

	// Map header positions to canonical columns. If a column
	// appears twice (e.g., "Year" and "Time"), the first wins.
	header := rows[0]
	cols := make([]string, len(header))
	var columns []string
	seen := map[string]bool{}
	for i, h := range header {
		c := Canonical(strings.TrimSpace(h))
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		cols[i] = c
		columns = append(columns, c)
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("no recognized columns in header %q", header)
	}

	recs := make([]Record, 0, len(rows)-1)
	for n, row := range rows[1:] {
		if blank(row) {
			continue
		}
		var rec Record
		for i, cell := range row {
			if i >= len(cols) || cols[i] == "" {
				continue
			}
			if err := setCell(&rec, cols[i], cell); err != nil {
				// Row numbers are 1-based and count the header.
				return nil, fmt.Errorf("row %d: %s: %w", n+2, cols[i], err)
			}
		}
		recs = append(recs, rec)
	}
	return NewDataset(columns, recs), nil
}

func setCell(rec *Record, col, cell string) error {
	cell = strings.TrimSpace(cell)
	if IsNumeric(col) {
		v, err := parseNum(cell)
		if err != nil {
			return err
		}
		rec.SetNum(col, v)
		return nil
	}
	if col == Year {
		// Spreadsheets sometimes store years as "2019.0" or
		// as a date.
		if i := strings.IndexAny(cell, ".-/"); i > 0 {
			cell = cell[:i]
		}
	}
	return rec.SetKey(col, cell)
}

// parseNum parses a numeric cell. Empty cells are zero; thousands
// separators are ignored.
func parseNum(cell string) (float64, error) {
	if cell == "" {
		return 0, nil
	}
	return strconv.ParseFloat(strings.ReplaceAll(cell, ",", ""), 64)
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
