// Copyright 2020 The Tradeviz Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"math"

	"github.com/tradelens/tradeviz/trade"
	"github.com/tradelens/tradeviz/tradestat"
)

func init() {
	registerSubcommand("shares", "[flags] - per-year category shares of trade", func(f *flag.FlagSet) func(*env) error {
		fl := addFilters(f)
		by := f.String("by", trade.Category, "share out over the key `column`")
		value := f.String("value", trade.TradeValue, "share the numeric `column`")

		return func(e *env) error {
			d, err := fl.load(e)
			if err != nil {
				return err
			}
			tot, err := tradestat.Aggregate(d, []string{trade.Year, *by}, *value)
			if err != nil {
				return err
			}
			sh, err := tradestat.Shares(tot, trade.Year)
			if err != nil {
				return err
			}
			w, err := tradestat.Pivot(sh, trade.Year, *by)
			if err != nil {
				return err
			}
			// A category absent from a year has no share of it.
			for _, row := range w.Cells {
				for j, v := range row {
					if math.IsNaN(v) {
						row[j] = 0
					}
				}
			}
			return e.emit(w.Table(trade.Year))
		}
	})
}
