// Copyright 2020 The Tradeviz Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aclements/go-gg/table"
	"github.com/rs/zerolog"
	"github.com/tradelens/tradeviz/report"
	"github.com/tradelens/tradeviz/tiers"
	"github.com/tradelens/tradeviz/trade"
	"golang.org/x/crypto/ssh/terminal"
)

// env is what a subcommand runs with.
type env struct {
	ctx    context.Context
	cfg    config
	log    zerolog.Logger
	stdout io.Writer

	tiers *tiers.Config
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || os.Getenv("TERM") == "dumb" {
		return false
	}
	return terminal.IsTerminal(int(f.Fd()))
}

// tierConfig returns the tier configuration, loading it on first
// use.
func (e *env) tierConfig() (*tiers.Config, error) {
	if e.tiers != nil {
		return e.tiers, nil
	}
	if e.cfg.Tiers == "" {
		e.tiers = tiers.Default()
		return e.tiers, nil
	}
	c, err := tiers.Load(e.cfg.Tiers)
	if err != nil {
		return nil, err
	}
	e.log.Debug().Str("file", e.cfg.Tiers).Msg("loaded tiers")
	e.tiers = c
	return c, nil
}

// dataset reads the input and annotates its reporters with their
// tiers.
func (e *env) dataset() (*trade.Dataset, error) {
	path := e.cfg.Input
	if path == "" {
		return nil, usageError("no input; set -i or TRADEQ_INPUT")
	}
	var d *trade.Dataset
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		d, err = trade.ReadSQLiteFile(e.ctx, path, e.cfg.Table)
	default:
		d, err = trade.Open(e.ctx, path)
	}
	if err != nil {
		return nil, err
	}
	e.log.Debug().Str("file", path).Int("records", d.Len()).Strs("columns", d.Columns).Msg("read input")

	if !d.Has(trade.ReporterISO) {
		return d, nil
	}
	tc, err := e.tierConfig()
	if err != nil {
		return nil, err
	}
	return tc.Annotate(d)
}

// emit writes t to standard output.
func (e *env) emit(t *table.Table) error {
	if e.cfg.TSV || !isTerminal(e.stdout) {
		return report.WriteTSV(e.stdout, t, true)
	}
	return report.Fprint(e.stdout, t)
}

// filters are the record filters shared by subcommands.
type filters struct {
	flow      string
	years     string
	reporters string
	partners  string
	tier      string
}

func addFilters(f *flag.FlagSet) *filters {
	fl := new(filters)
	f.StringVar(&fl.flow, "flow", "", "keep only `Import` or `Export` records")
	f.StringVar(&fl.years, "year", "", "keep only the comma-separated `years`")
	f.StringVar(&fl.reporters, "reporter", "", "keep only the comma-separated reporter `codes`")
	f.StringVar(&fl.partners, "partner", "", "keep only the comma-separated partner `codes`")
	f.StringVar(&fl.tier, "tier", "", "keep only reporters in tier `kind=level`, such as gdp=high")
	return fl
}

// load reads the input and applies fl to it.
func (fl *filters) load(e *env) (*trade.Dataset, error) {
	d, err := e.dataset()
	if err != nil {
		return nil, err
	}
	if fl.flow != "" {
		flow, err := parseFlow(fl.flow)
		if err != nil {
			return nil, err
		}
		if d, err = d.Filter(trade.TradeFlow, string(flow)); err != nil {
			return nil, err
		}
	}
	if fl.years != "" {
		if d, err = d.Filter(trade.Year, splitList(fl.years)...); err != nil {
			return nil, err
		}
	}
	if fl.reporters != "" {
		if d, err = d.Filter(trade.ReporterISO, splitList(fl.reporters)...); err != nil {
			return nil, err
		}
	}
	if fl.partners != "" {
		if d, err = d.Filter(trade.PartnerISO, splitList(fl.partners)...); err != nil {
			return nil, err
		}
	}
	if fl.tier != "" {
		k, lv, err := tiers.ParseSelector(fl.tier)
		if err != nil {
			return nil, usageError(err.Error())
		}
		tc, err := e.tierConfig()
		if err != nil {
			return nil, err
		}
		if d, err = tc.Members(d, k, lv); err != nil {
			return nil, err
		}
	}
	e.log.Debug().Int("records", d.Len()).Msg("filtered input")
	return d, nil
}

func parseFlow(s string) (trade.Flow, error) {
	for _, f := range trade.Flows {
		if strings.EqualFold(s, string(f)) {
			return f, nil
		}
	}
	return "", usageError(fmt.Sprintf("unknown trade flow %q", s))
}

// splitList splits a comma-separated flag value.
func splitList(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// isSet reports whether the flag name was given on the command line.
func isSet(f *flag.FlagSet, name string) bool {
	set := false
	f.Visit(func(fl *flag.Flag) {
		if fl.Name == name {
			set = true
		}
	})
	return set
}
