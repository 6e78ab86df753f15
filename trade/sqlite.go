// Copyright 2020 The Tradeviz Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trade

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"regexp"

	_ "modernc.org/sqlite"
)

// DefaultSQLiteTable is the table Open reads from SQLite databases.
const DefaultSQLiteTable = "trade"

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ReadSQLiteFile reads trade records from table tab of the SQLite
// database at path. Column names are matched like CSV headers.
func ReadSQLiteFile(ctx context.Context, path, tab string) (*Dataset, error) {
	// Opening a missing file would create an empty database.
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	d, err := ReadSQL(ctx, db, tab)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// ReadSQL reads all rows of table tab from db.
func ReadSQL(ctx context.Context, db *sql.DB, tab string) (*Dataset, error) {
	if !identRe.MatchString(tab) {
		return nil, fmt.Errorf("bad table name %q", tab)
	}
	rows, err := db.QueryContext(ctx, `SELECT * FROM "`+tab+`"`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	header, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	out := [][]string{header}
	cells := make([]sql.NullString, len(header))
	ptrs := make([]interface{}, len(header))
	for i := range cells {
		ptrs[i] = &cells[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		row := make([]string, len(cells))
		for i, c := range cells {
			row[i] = c.String
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return fromRows(out)
}
