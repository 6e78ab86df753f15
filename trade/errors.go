// Copyright 2020 The Tradeviz Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trade

import "fmt"

// MissingFieldError reports that a required column is absent from a
// dataset, or that a name is not a column at all.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing field %q", e.Field)
}

// InsufficientRowsError reports that a per-entity selection that must
// have rows has fewer than required.
type InsufficientRowsError struct {
	// Entity names the slice, such as a reporter code.
	Entity string
	Want   int
	Got    int
}

func (e *InsufficientRowsError) Error() string {
	return fmt.Sprintf("%s: want at least %d rows, got %d", e.Entity, e.Want, e.Got)
}

// EmptyInputError reports that Op was given no records.
type EmptyInputError struct {
	Op string
}

func (e *EmptyInputError) Error() string {
	return fmt.Sprintf("%s: no records", e.Op)
}
