// Copyright 2020 The Tradeviz Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trade

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ReadXLSXFile reads the Excel workbook at path. See ReadXLSX.
func ReadXLSXFile(path string) (*Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	d, err := readWorkbook(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// ReadXLSX reads trade records from an Excel workbook. It uses the
// first sheet whose first row names at least two recognized columns.
func ReadXLSX(r io.Reader) (*Dataset, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readWorkbook(f)
}

func readWorkbook(f *excelize.File) (*Dataset, error) {
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil || len(rows) == 0 {
			continue
		}
		if recognized(rows[0]) < 2 {
			continue
		}
		return fromRows(rows)
	}
	return nil, fmt.Errorf("no sheet with a trade header")
}

func recognized(header []string) int {
	n := 0
	for _, h := range header {
		if Canonical(strings.TrimSpace(h)) != "" {
			n++
		}
	}
	return n
}
