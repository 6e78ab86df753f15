// Copyright 2020 The Tradeviz Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"

	"github.com/tradelens/tradeviz/trade"
	"github.com/tradelens/tradeviz/tradestat"
)

func init() {
	registerSubcommand("counts", "[flags] - rank entities by number of transactions", func(f *flag.FlagSet) func(*env) error {
		fl := addFilters(f)
		by := f.String("by", trade.PartnerISO, "count per comma-separated key `columns`")
		n := f.Int("n", 10, "show `n` rows; negative shows all")
		skip := f.Int("skip", 0, "pass over the first `k` rows")
		bottom := f.Bool("bottom", false, "rank from the fewest transactions up")

		return func(e *env) error {
			d, err := fl.load(e)
			if err != nil {
				return err
			}
			tot, err := tradestat.Count(d, splitList(*by))
			if err != nil {
				return err
			}
			o := tradestat.Descending
			if *bottom {
				o = tradestat.Ascending
			}
			rows := tradestat.Select(tot, o, tradestat.Window{Skip: *skip, Limit: *n})
			return e.emit(tot.RowsTable(rows))
		}
	})
}
