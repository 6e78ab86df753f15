// Copyright 2020 The Tradeviz Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"strings"

	"github.com/tradelens/tradeviz/report"
	"github.com/tradelens/tradeviz/trade"
	"github.com/tradelens/tradeviz/tradestat"
)

func init() {
	registerSubcommand("partners", "[flags] - rank trade partners, or trace the net trade of the top ones", func(f *flag.FlagSet) func(*env) error {
		fl := addFilters(f)
		value := f.String("value", trade.TradeValue, "rank by numeric `column`")
		n := f.Int("n", 3, "show `n` partners")
		skip := f.Int("skip", 1, "pass over the first `k` partners, usually the World aggregate (default 0 with -bottom)")
		bottom := f.Bool("bottom", false, "rank from the smallest partner up")
		perReporter := f.Bool("per-reporter", false, "rank the partners of each reporter separately")
		slots := f.Int("slots", 0, "with -per-reporter, require exactly `n` reporters")
		series := f.Bool("series", false, "print the yearly net trade of the selected partners by category and flow instead of the ranking")
		negate := f.String("negate", "", "with -series, subtract the `flow` direction (default Import, or Export with -bottom)")
		human := f.Bool("human", false, "format values like 1.5M")

		return func(e *env) error {
			flow := trade.Import
			if *bottom {
				flow = trade.Export
			}
			if *negate != "" {
				var err error
				if flow, err = parseFlow(*negate); err != nil {
					return err
				}
			}
			d, err := fl.load(e)
			if err != nil {
				return err
			}
			o, w := tradestat.Descending, tradestat.Window{Skip: *skip, Limit: *n}
			if *bottom {
				o = tradestat.Ascending
				if !isSet(f, "skip") {
					w.Skip = 0
				}
			}
			e.log.Debug().Stringer("order", o).Stringer("window", w).Msg("ranking partners")

			var tot *tradestat.Totals
			var rows []tradestat.Total
			if !*perReporter {
				tot, err = tradestat.Aggregate(d, []string{trade.PartnerISO}, *value)
				if err != nil {
					return err
				}
				rows = tradestat.Select(tot, o, w)
			} else {
				tot, err = tradestat.Aggregate(d, []string{trade.ReporterISO, trade.PartnerISO}, *value)
				if err != nil {
					return err
				}
				groups, err := tradestat.SelectWithin(tot, trade.ReporterISO, o, w)
				if err != nil {
					return err
				}
				if *slots > 0 {
					var reporters []string
					for _, g := range groups {
						reporters = append(reporters, g.Entity)
					}
					if err := report.RequireSlots(reporters, *slots); err != nil {
						return err
					}
				}
				for _, g := range groups {
					rows = append(rows, g.Rows...)
				}
			}

			t := tot.RowsTable(rows)
			if *series {
				keys := []string{trade.Year, trade.PartnerISO, trade.Category, trade.TradeFlow}
				if *perReporter {
					keys = append([]string{trade.ReporterISO}, keys...)
				}
				net, err := tradestat.Net(selected(d, tot, rows), keys, *value, flow)
				if err != nil {
					return err
				}
				e.log.Debug().Int("partners", len(rows)).Str("negate", string(flow)).Msg("partner series")
				t = net.Table()
			}
			if *human {
				t = report.Humanize(t)
			}
			return e.emit(t)
		}
	})
}

// selected returns the records of d that match the key of one of
// rows, which come from tot.
func selected(d *trade.Dataset, tot *tradestat.Totals, rows []tradestat.Total) *trade.Dataset {
	want := make(map[string]bool, len(rows))
	for _, r := range rows {
		want[strings.Join(r.Key, "\x00")] = true
	}
	var recs []trade.Record
	k := make([]string, len(tot.Fields))
	for _, rec := range d.Records {
		for i, f := range tot.Fields {
			k[i], _ = rec.Key(f)
		}
		if want[strings.Join(k, "\x00")] {
			recs = append(recs, rec)
		}
	}
	return trade.NewDataset(d.Columns, recs)
}
