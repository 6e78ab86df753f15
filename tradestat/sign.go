// Copyright 2020 The Tradeviz Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tradestat

import (
	"github.com/tradelens/tradeviz/trade"
)

// NegateFlow returns a copy of d in which the value field of every
// record with the given flow is negated. d is not modified.
//
// Negating imports turns a sum over both flows into the trade
// balance. Applying NegateFlow twice with the same flow restores the
// original values.
func NegateFlow(d *trade.Dataset, value string, flow trade.Flow) (*trade.Dataset, error) {
	if !trade.IsNumeric(value) {
		return nil, &trade.MissingFieldError{Field: value}
	}
	if err := d.Require(trade.TradeFlow, value); err != nil {
		return nil, err
	}
	nd := d.Copy()
	for i := range nd.Records {
		r := &nd.Records[i]
		if r.Flow != flow {
			continue
		}
		v, _ := r.Num(value)
		r.SetNum(value, -v)
	}
	return nd, nil
}

// Negate returns a copy of t in which every total whose field equals
// match is negated.
func (t *Totals) Negate(field, match string) (*Totals, error) {
	i, err := t.FieldIndex(field)
	if err != nil {
		return nil, err
	}
	nt := newTotals(t.Fields, t.Value)
	for _, r := range t.rows {
		v := r.Value
		if r.Key[i] == match {
			v = -v
		}
		nt.add(r.Key, v)
	}
	return nt, nil
}

// Net aggregates d by keys after negating flow. With flow Import this
// is the net export (exports minus imports) of each key.
func Net(d *trade.Dataset, keys []string, value string, flow trade.Flow) (*Totals, error) {
	nd, err := NegateFlow(d, value, flow)
	if err != nil {
		return nil, err
	}
	return Aggregate(nd, keys, value)
}
