// Copyright 2020 The Tradeviz Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tiers

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tradelens/tradeviz/trade"
)

func TestDefault(t *testing.T) {
	c := Default()
	for _, test := range []struct {
		kind Kind
		iso  string
		want Level
	}{
		{GDP, "USA", High},
		{GDP, "CHN", Medium},
		{GDP, "PAK", Low},
		{Development, "GER", High},
		{Development, "THA", Medium},
		{Population, "IND", High},
		{Population, "HKG", Low},
	} {
		lv, ok := c.Level(test.kind, test.iso)
		assert.True(t, ok, "%s %s", test.kind, test.iso)
		assert.Equal(t, test.want, lv, "%s %s", test.kind, test.iso)
	}
	_, ok := c.Level(Development, "CHN")
	assert.False(t, ok)
	assert.Equal(t, []string{"CHN", "IND", "USA", "BRA"}, c.Countries(Population, High))
}

func TestParse(t *testing.T) {
	c, err := Parse([]byte(`
gdp:
  high: [USA]
  low: [EGY, NGA]
population:
  medium: [PAK]
`))
	require.NoError(t, err)
	lv, ok := c.Level(GDP, "NGA")
	assert.True(t, ok)
	assert.Equal(t, Low, lv)
	assert.Empty(t, c.Countries(Development, High))

	for name, doc := range map[string]string{
		"lowercase": "gdp:\n  high: [usa]\n",
		"length":    "gdp:\n  high: [US]\n",
		"digits":    "gdp:\n  high: [U5A]\n",
		"duplicate": "gdp:\n  high: [USA]\n  low: [USA]\n",
		"unknown":   "wealth:\n  high: [USA]\n",
	} {
		_, err := Parse([]byte(doc))
		assert.Error(t, err, name)
	}
}

func TestLoadRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Default().WriteYAML(&buf))
	path := filepath.Join(t.TempDir(), "tiers.yaml")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default().GDP, c.GDP)
	assert.Equal(t, Default().Population, c.Population)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestAnnotate(t *testing.T) {
	d := trade.NewDataset([]string{trade.ReporterISO, trade.TradeValue}, []trade.Record{
		{ReporterISO: "USA", Value: 1},
		{ReporterISO: "EGY", Value: 2},
		{ReporterISO: "FRA", Value: 3},
	})
	nd, err := Default().Annotate(d)
	require.NoError(t, err)

	assert.True(t, nd.Has(trade.GDPLevel))
	assert.False(t, d.Has(trade.GDPLevel))
	assert.Equal(t, "", d.Records[0].GDPLevel)

	got := nd.Records
	assert.Equal(t, []string{"high", "high", "high"}, []string{got[0].GDPLevel, got[0].DevelopmentLevel, got[0].PopulationLevel})
	assert.Equal(t, []string{"low", "low", "low"}, []string{got[1].GDPLevel, got[1].DevelopmentLevel, got[1].PopulationLevel})
	assert.Equal(t, []string{"", "", ""}, []string{got[2].GDPLevel, got[2].DevelopmentLevel, got[2].PopulationLevel})

	_, err = Default().Annotate(trade.NewDataset([]string{trade.TradeValue}, nil))
	var missing *trade.MissingFieldError
	assert.ErrorAs(t, err, &missing)
}

func TestMembers(t *testing.T) {
	d := trade.NewDataset([]string{trade.ReporterISO}, []trade.Record{
		{ReporterISO: "USA"}, {ReporterISO: "EGY"}, {ReporterISO: "JPN"},
	})
	m, err := Default().Members(d, GDP, High)
	require.NoError(t, err)
	vals, err := m.Values(trade.ReporterISO)
	require.NoError(t, err)
	assert.Equal(t, []string{"USA", "JPN"}, vals)
}

func TestParseSelector(t *testing.T) {
	k, lv, err := ParseSelector("GDP=high")
	require.NoError(t, err)
	assert.Equal(t, GDP, k)
	assert.Equal(t, High, lv)

	for _, s := range []string{"gdp", "wealth=high", "gdp=huge"} {
		_, _, err := ParseSelector(s)
		assert.Error(t, err, s)
	}
}

func TestTable(t *testing.T) {
	tab := Default().Table()
	assert.Equal(t, []string{"kind", "level", trade.ReporterISO}, tab.Columns())
	assert.Equal(t, 5+5+5+4+4+4+4+4+7, tab.Len())
}
