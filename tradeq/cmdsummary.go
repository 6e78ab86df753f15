// Copyright 2020 The Tradeviz Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"

	"github.com/tradelens/tradeviz/report"
)

func init() {
	registerSubcommand("summary", "[flags] - describe each reporter's leading partners", func(f *flag.FlagSet) func(*env) error {
		fl := addFilters(f)
		opts := report.DefaultSummaryOptions
		f.StringVar(&opts.Value, "value", opts.Value, "rank partners by numeric `column`")
		f.IntVar(&opts.Skip, "skip", opts.Skip, "pass over the first `k` partners of each reporter")
		f.BoolVar(&opts.Strict, "strict", false, "fail if a reporter has no partner after -skip")

		return func(e *env) error {
			d, err := fl.load(e)
			if err != nil {
				return err
			}
			return report.PartnerSummary(e.stdout, d, opts)
		}
	})
}
