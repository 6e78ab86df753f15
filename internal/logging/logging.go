// Copyright 2020 The Tradeviz Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package logging configures the diagnostic logger of the tradeq
// command. Diagnostics go to stderr so they never mix with table
// output.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Config configures New.
type Config struct {
	// Level is one of debug, info, warn or error. Empty means
	// warn.
	Level string

	// Pretty selects human-readable console output instead of
	// JSON lines.
	Pretty bool

	// Out is the log destination. Nil means os.Stderr.
	Out io.Writer
}

// New returns a logger configured by cfg.
func New(cfg Config) (zerolog.Logger, error) {
	level := zerolog.WarnLevel
	switch cfg.Level {
	case "":
	case "debug":
		level = zerolog.DebugLevel
	case "info":
		level = zerolog.InfoLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	default:
		return zerolog.Nop(), fmt.Errorf("unknown log level %q", cfg.Level)
	}

	out := cfg.Out
	if out == nil {
		out = os.Stderr
	}
	if cfg.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"}
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger(), nil
}
