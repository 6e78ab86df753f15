// Copyright 2020 The Tradeviz Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Tradeq answers questions about international trade tables.
//
// Usage:
//
//	tradeq [-i input] [-tiers file] [-tsv] [-v level] <subcommand> [flags]
//
// The input is a table of trade records in the UN Comtrade layout,
// with columns such as "Year", "Reporter ISO", "Partner ISO", "Trade
// Flow" and "Trade Value (US$)". It may be a CSV file, an Excel
// workbook (.xlsx) or a SQLite database (.db, .sqlite, .sqlite3)
// holding a table named by -table.
//
// The subcommands are:
//
//	partners   rank trade partners, overall or per reporter, or with
//	           -series trace the net trade of the selected partners
//	           per year, category and flow
//	counts     rank entities by number of transactions
//	balance    net trade (exports minus imports) per key
//	corr       correlation between categories over the years
//	shares     per-year category shares of a reporter's trade
//	summary    leading partner of each reporter, as prose
//	tiers      print the country tiers in effect
//
// Run "tradeq <subcommand> -h" for the flags of each.
//
// Reporters are annotated with GDP, development and population tiers
// before analysis, using the built-in tier lists or the YAML file
// given by -tiers, so every subcommand can filter with -tier
// kind=level. Every subcommand also filters with -flow, -year,
// -reporter and -partner.
//
// Tables are printed aligned when standard output is a terminal and
// as tab-separated values otherwise, or always with -tsv.
//
// Every global flag has an environment variable default: TRADEQ_INPUT,
// TRADEQ_TIERS, TRADEQ_TABLE, TRADEQ_TSV, TRADEQ_LOG_LEVEL and
// TRADEQ_LOG_PRETTY. TRADEQ_ARGS holds extra arguments, quoted as for
// a shell, that are placed before the command line. Variables may
// also be set in a .env file in the current directory.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sort"

	"github.com/joho/godotenv"
	"github.com/kballard/go-shellquote"
	"github.com/kelseyhightower/envconfig"
	"github.com/tradelens/tradeviz/internal/logging"
	"github.com/tradelens/tradeviz/trade"
)

// config holds the global settings.
type config struct {
	Input     string `envconfig:"INPUT"`
	Tiers     string `envconfig:"TIERS"`
	Table     string `envconfig:"TABLE" default:"trade"`
	TSV       bool   `envconfig:"TSV"`
	LogLevel  string `envconfig:"LOG_LEVEL"`
	LogPretty bool   `envconfig:"LOG_PRETTY"`
	Args      string `envconfig:"ARGS"`
}

type subcommand struct {
	name, usage string

	// setup defines the subcommand's flags on f and returns the
	// function that runs it once f is parsed.
	setup func(f *flag.FlagSet) func(e *env) error
}

var subcommands = map[string]*subcommand{}

func registerSubcommand(name, usage string, setup func(f *flag.FlagSet) func(e *env) error) {
	subcommands[name] = &subcommand{name, usage, setup}
}

// usageError is an error in how tradeq was invoked. It exits with
// status 2.
type usageError string

func (e usageError) Error() string { return string(e) }

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run runs tradeq with args and returns its exit status.
func run(args []string, stdout, stderr io.Writer) int {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(stderr, "tradeq: .env: %v\n", err)
		return 1
	}
	var cfg config
	if err := envconfig.Process("TRADEQ", &cfg); err != nil {
		fmt.Fprintf(stderr, "tradeq: %v\n", err)
		return 2
	}
	extra, err := shellquote.Split(cfg.Args)
	if err != nil {
		fmt.Fprintf(stderr, "tradeq: TRADEQ_ARGS: %v\n", err)
		return 2
	}
	args = append(extra, args...)

	gf := flag.NewFlagSet("tradeq", flag.ContinueOnError)
	gf.SetOutput(stderr)
	gf.Usage = func() {
		fmt.Fprintf(stderr, "Usage: tradeq [global flags] <subcommand> [flags]\n\nSubcommands:\n")
		var names []string
		for name := range subcommands {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(stderr, "  %s %s\n", name, subcommands[name].usage)
		}
		fmt.Fprintf(stderr, "\nGlobal flags:\n")
		gf.PrintDefaults()
	}
	gf.StringVar(&cfg.Input, "i", cfg.Input, "read trade records from `file` (.csv, .xlsx, .db, .sqlite)")
	gf.StringVar(&cfg.Tiers, "tiers", cfg.Tiers, "load country tiers from YAML `file`")
	gf.StringVar(&cfg.Table, "table", cfg.Table, "read records from SQLite `table`")
	gf.BoolVar(&cfg.TSV, "tsv", cfg.TSV, "write tab-separated tables even to a terminal")
	gf.StringVar(&cfg.LogLevel, "v", cfg.LogLevel, "log `level`: debug, info, warn or error")
	if err := gf.Parse(args); err != nil {
		return 2
	}
	if gf.NArg() == 0 {
		gf.Usage()
		return 2
	}
	sub := subcommands[gf.Arg(0)]
	if sub == nil {
		fmt.Fprintf(stderr, "unknown subcommand %q\n", gf.Arg(0))
		gf.Usage()
		return 2
	}

	sf := flag.NewFlagSet("tradeq "+sub.name, flag.ContinueOnError)
	sf.SetOutput(stderr)
	sf.Usage = func() {
		fmt.Fprintf(stderr, "Usage: tradeq [global flags] %s %s\n", sub.name, sub.usage)
		sf.PrintDefaults()
	}
	cmd := sub.setup(sf)
	if err := sf.Parse(gf.Args()[1:]); err != nil {
		return 2
	}
	if sf.NArg() > 0 {
		sf.Usage()
		return 2
	}

	log, err := logging.New(logging.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.LogPretty || isTerminal(stderr),
		Out:    stderr,
	})
	if err != nil {
		fmt.Fprintf(stderr, "tradeq: %v\n", err)
		return 2
	}

	e := &env{ctx: context.Background(), cfg: cfg, log: log, stdout: stdout}
	if err := cmd(e); err != nil {
		var ue usageError
		if errors.As(err, &ue) {
			fmt.Fprintf(stderr, "tradeq %s: %v\n", sub.name, err)
			sf.Usage()
			return 2
		}
		ev := log.Error().Err(err).Str("cmd", sub.name)
		var missing *trade.MissingFieldError
		var short *trade.InsufficientRowsError
		switch {
		case errors.As(err, &missing):
			ev = ev.Str("field", missing.Field)
		case errors.As(err, &short):
			ev = ev.Str("entity", short.Entity)
		}
		ev.Msg("failed")
		return 1
	}
	return 0
}
