// Copyright 2020 The Tradeviz Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevels(t *testing.T) {
	for _, test := range []struct {
		level string
		want  zerolog.Level
	}{
		{"", zerolog.WarnLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
	} {
		l, err := New(Config{Level: test.level, Out: new(bytes.Buffer)})
		require.NoError(t, err)
		assert.Equal(t, test.want, l.GetLevel(), "level %q", test.level)
	}

	_, err := New(Config{Level: "loud"})
	assert.Error(t, err)
}

func TestFiltering(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Config{Level: "error", Out: &buf})
	require.NoError(t, err)
	l.Info().Msg("hidden")
	l.Error().Str("file", "x.csv").Msg("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"file":"x.csv"`)
	assert.Contains(t, buf.String(), `"message":"shown"`)
}

func TestPretty(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Config{Level: "debug", Pretty: true, Out: &buf})
	require.NoError(t, err)
	l.Debug().Msg("reading input")
	assert.Contains(t, buf.String(), "reading input")
	assert.NotContains(t, buf.String(), `"message"`)
}
