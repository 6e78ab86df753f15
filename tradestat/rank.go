// Copyright 2020 The Tradeviz Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tradestat

import (
	"fmt"
	"math"
	"sort"
)

// Order is a sort direction.
type Order int

const (
	Descending Order = iota
	Ascending
)

func (o Order) String() string {
	if o == Ascending {
		return "ascending"
	}
	return "descending"
}

// Window selects a contiguous run of a ranking: it skips the first
// Skip entries and keeps at most Limit of the rest. A negative Limit
// keeps everything after Skip.
//
// Skip is usually 0. A Skip of 1 drops the leading entry when it is
// known to be uninteresting, such as a "World" partner that totals
// every other partner.
type Window struct {
	Skip, Limit int
}

// All is the window that keeps an entire ranking.
var All = Window{0, -1}

func (w Window) String() string {
	if w.Limit < 0 || w.Skip > 0 && w.Limit > math.MaxInt-w.Skip {
		return fmt.Sprintf("[%d:]", w.Skip)
	}
	return fmt.Sprintf("[%d:%d]", w.Skip, w.Skip+w.Limit)
}

func (w Window) apply(rows []Total) []Total {
	lo := w.Skip
	if lo < 0 {
		lo = 0
	}
	if lo > len(rows) {
		lo = len(rows)
	}
	hi := len(rows)
	if w.Limit >= 0 && w.Limit < hi-lo {
		hi = lo + w.Limit
	}
	return rows[lo:hi]
}

// Rank returns the totals of t sorted by value. Equal values keep
// their order in t. NaN values sort last in either order.
func Rank(t *Totals, o Order) []Total {
	rows := t.Rows()
	sortTotals(rows, o)
	return rows
}

func sortTotals(rows []Total, o Order) {
	sort.SliceStable(rows, func(i, j int) bool {
		return less(rows[i].Value, rows[j].Value, o)
	})
}

// less orders a before b in order o, with NaNs last.
func less(a, b float64, o Order) bool {
	switch {
	case math.IsNaN(a):
		return false
	case math.IsNaN(b):
		return true
	case o == Ascending:
		return a < b
	}
	return a > b
}

// Select ranks t in order o and returns the entries in window w.
func Select(t *Totals, o Order, w Window) []Total {
	return w.apply(Rank(t, o))
}

// Top returns the k largest totals.
func Top(t *Totals, k int) []Total {
	return Select(t, Descending, Window{0, k})
}

// TopExcludingBest returns the k largest totals after the largest.
func TopExcludingBest(t *Totals, k int) []Total {
	return Select(t, Descending, Window{1, k})
}

// Bottom returns the k smallest totals.
func Bottom(t *Totals, k int) []Total {
	return Select(t, Ascending, Window{0, k})
}

// Group is the selection for one entity.
type Group struct {
	Entity string
	Rows   []Total
}

// SelectWithin ranks the totals of each distinct value of the entity
// field separately and applies w to each ranking. Groups are returned
// in the order their entity first appears in t.
//
// For example, with totals keyed by reporter and partner,
// SelectWithin(t, "Reporter ISO", Descending, Window{1, 5}) picks
// each reporter's five largest partners after the first.
func SelectWithin(t *Totals, entity string, o Order, w Window) ([]Group, error) {
	i, err := t.FieldIndex(entity)
	if err != nil {
		return nil, err
	}
	var groups []Group
	pos := map[string]int{}
	for _, r := range t.rows {
		e := r.Key[i]
		g, ok := pos[e]
		if !ok {
			g = len(groups)
			pos[e] = g
			groups = append(groups, Group{Entity: e})
		}
		groups[g].Rows = append(groups[g].Rows, Total{append(Key(nil), r.Key...), r.Value})
	}
	for g := range groups {
		sortTotals(groups[g].Rows, o)
		groups[g].Rows = w.apply(groups[g].Rows)
	}
	return groups, nil
}
