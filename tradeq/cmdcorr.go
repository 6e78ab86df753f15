// Copyright 2020 The Tradeviz Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"flag"

	"github.com/aclements/go-gg/table"
	"github.com/tradelens/tradeviz/tiers"
	"github.com/tradelens/tradeviz/trade"
	"github.com/tradelens/tradeviz/tradestat"
)

func init() {
	registerSubcommand("corr", "[flags] - correlate categories over the years", func(f *flag.FlagSet) func(*env) error {
		fl := addFilters(f)
		value := f.String("value", trade.TradeValue, "correlate the numeric `column`")
		index := f.String("index", trade.Year, "observe over the key `column`")
		column := f.String("column", trade.Category, "correlate the values of key `column`")
		n := f.Int("n", 5, "show `n` pairs; negative shows all")
		desc := f.Bool("desc", false, "show the strongest pairs first")
		signed := f.Bool("signed", false, "rank by signed coefficient instead of magnitude")
		matrix := f.Bool("matrix", false, "print the whole correlation matrix")
		each := f.String("each", "", "rank pairs separately for each level of tier `kind`")

		return func(e *env) error {
			d, err := fl.load(e)
			if err != nil {
				return err
			}
			corr := func(d *trade.Dataset) (*tradestat.Matrix, error) {
				keys := []string{*index, *column}
				if d.Has(trade.ReporterISO) {
					keys = append(keys, trade.ReporterISO)
				}
				tot, err := tradestat.Aggregate(d, keys, *value)
				if err != nil {
					return nil, err
				}
				w, err := tradestat.Pivot(tot, *index, *column)
				if err != nil {
					return nil, err
				}
				return tradestat.Correlate(w)
			}
			opts := tradestat.RankOptions{N: *n, Ascending: !*desc, Abs: !*signed}

			if *each == "" {
				m, err := corr(d)
				if err != nil {
					return err
				}
				if *matrix {
					return e.emit(m.Table())
				}
				return e.emit(pairTable(nil, tradestat.TopCorrelations(m, opts)))
			}

			k := tiers.Kind(*each)
			if k.Field() == "" {
				return usageError("unknown tier kind " + *each)
			}
			tc, err := e.tierConfig()
			if err != nil {
				return err
			}
			var levels []string
			var pairs []tradestat.PairValue
			for _, lv := range tiers.Levels {
				sub, err := tc.Members(d, k, lv)
				if err != nil {
					return err
				}
				m, err := corr(sub)
				var empty *trade.EmptyInputError
				if errors.As(err, &empty) {
					e.log.Warn().Str("tier", string(k)+"="+string(lv)).Msg("no records")
					continue
				} else if err != nil {
					return err
				}
				for _, pv := range tradestat.TopCorrelations(m, opts) {
					levels = append(levels, string(lv))
					pairs = append(pairs, pv)
				}
			}
			return e.emit(pairTable(levels, pairs))
		}
	})
}

// pairTable tabulates ranked pairs, with a leading tier level column
// if levels is non-nil.
func pairTable(levels []string, pairs []tradestat.PairValue) *table.Table {
	rows := make([]string, len(pairs))
	cols := make([]string, len(pairs))
	vals := make([]float64, len(pairs))
	for i, pv := range pairs {
		rows[i], cols[i], vals[i] = pv.Row, pv.Col, pv.Value
	}
	b := new(table.Builder)
	if levels != nil {
		b.Add("Level", levels)
	}
	return b.Add("Row", rows).Add("Col", cols).Add("Correlation", vals).Done()
}
