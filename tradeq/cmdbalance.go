// Copyright 2020 The Tradeviz Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"

	"github.com/tradelens/tradeviz/report"
	"github.com/tradelens/tradeviz/trade"
	"github.com/tradelens/tradeviz/tradestat"
)

func init() {
	registerSubcommand("balance", "[flags] - net trade per key", func(f *flag.FlagSet) func(*env) error {
		fl := addFilters(f)
		by := f.String("by", trade.Year+","+trade.ReporterISO, "net per comma-separated key `columns`")
		value := f.String("value", trade.TradeValue, "net the numeric `column`")
		negate := f.String("negate", string(trade.Import), "subtract the `flow` direction")
		human := f.Bool("human", false, "format values like 1.5M")

		return func(e *env) error {
			flow, err := parseFlow(*negate)
			if err != nil {
				return err
			}
			d, err := fl.load(e)
			if err != nil {
				return err
			}
			tot, err := tradestat.Net(d, splitList(*by), *value, flow)
			if err != nil {
				return err
			}
			t := tot.Table()
			if *human {
				t = report.Humanize(t)
			}
			return e.emit(t)
		}
	})
}
