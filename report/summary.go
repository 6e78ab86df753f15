// Copyright 2020 The Tradeviz Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/tradelens/tradeviz/trade"
	"github.com/tradelens/tradeviz/tradestat"
)

// SummaryOptions controls PartnerSummary.
type SummaryOptions struct {
	// Value is the numeric column partners are ranked by. Empty
	// means trade.ValuePerCapita.
	Value string

	// Skip is the number of leading partners passed over in each
	// reporter's ranking. The usual value is 1, since the largest
	// "partner" of a reporter is typically the World aggregate.
	Skip int

	// Strict makes a reporter with no partner after Skip an
	// error. Otherwise the partner is reported as "none".
	Strict bool
}

// DefaultSummaryOptions are the options the tradeq summary command
// starts from.
var DefaultSummaryOptions = SummaryOptions{Value: trade.ValuePerCapita, Skip: 1}

var separator = strings.Repeat("#", 72)

// PartnerSummary writes, for each flow direction, one sentence per
// reporter naming its leading partner by traded value and by number
// of transactions.
//
// d must have Reporter ISO, Partner ISO and Trade Flow columns as well
// as the value column. Reporters are listed in the order they first
// appear in d.
func PartnerSummary(w io.Writer, d *trade.Dataset, opts SummaryOptions) error {
	if opts.Value == "" {
		opts.Value = trade.ValuePerCapita
	}
	keys := []string{trade.ReporterISO, trade.PartnerISO, trade.TradeFlow}
	if err := d.Require(append(keys, opts.Value)...); err != nil {
		return err
	}
	if d.Len() == 0 {
		return &trade.EmptyInputError{Op: "partner summary"}
	}
	reporters, err := d.Values(trade.ReporterISO)
	if err != nil {
		return err
	}
	byValue, err := tradestat.Aggregate(d, keys, opts.Value)
	if err != nil {
		return err
	}
	byCount, err := tradestat.Count(d, keys)
	if err != nil {
		return err
	}

	ew := &errWriter{w: w}
	fmt.Fprintln(ew, separator)
	for _, flow := range trade.Flows {
		fmt.Fprintf(ew, "%s partners by %s:\n", flow, strings.ToLower(opts.Value))
		valueLeaders, err := leaders(byValue, flow, opts)
		if err != nil {
			return err
		}
		countLeaders, err := leaders(byCount, flow, opts)
		if err != nil {
			return err
		}
		for _, r := range reporters {
			fmt.Fprintf(ew, "The first %s partner of %s is %s in trade value, and %s in transaction number.\n",
				flow, r, valueLeaders[r], countLeaders[r])
		}
		fmt.Fprintln(ew, separator)
	}
	return ew.err
}

// leaders returns the partner at rank opts.Skip of each reporter's
// flow totals, or "none".
func leaders(t *tradestat.Totals, flow trade.Flow, opts SummaryOptions) (map[string]string, error) {
	ft, err := t.Filter(trade.TradeFlow, string(flow))
	if err != nil {
		return nil, err
	}
	groups, err := tradestat.SelectWithin(ft, trade.ReporterISO, tradestat.Descending, tradestat.All)
	if err != nil {
		return nil, err
	}
	ranked := map[string][]tradestat.Total{}
	for _, g := range groups {
		ranked[g.Entity] = g.Rows
	}

	reporters, err := t.Labels(t.Rows(), trade.ReporterISO)
	if err != nil {
		return nil, err
	}
	out := map[string]string{}
	for _, r := range reporters {
		if _, ok := out[r]; ok {
			continue
		}
		rows := ranked[r]
		if opts.Skip >= len(rows) || opts.Skip < 0 {
			if opts.Strict {
				return nil, &trade.InsufficientRowsError{
					Entity: fmt.Sprintf("%s %s partners", r, flow),
					Want:   opts.Skip + 1,
					Got:    len(rows),
				}
			}
			out[r] = "none"
			continue
		}
		p, err := ft.Labels(rows[opts.Skip:opts.Skip+1], trade.PartnerISO)
		if err != nil {
			return nil, err
		}
		out[r] = p[0]
	}
	return out, nil
}

// RequireSlots checks that entities exactly fill a fixed number of
// output slots, such as one panel per reporter in a grid. Too few
// entities is an *trade.InsufficientRowsError.
func RequireSlots(entities []string, slots int) error {
	switch {
	case len(entities) < slots:
		return &trade.InsufficientRowsError{Entity: "slots", Want: slots, Got: len(entities)}
	case len(entities) > slots:
		return fmt.Errorf("%d entities for %d slots: %s", len(entities), slots, strings.Join(entities[slots:], ", "))
	}
	return nil
}
