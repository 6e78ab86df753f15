// Copyright 2020 The Tradeviz Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/aclements/go-gg/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tradelens/tradeviz/trade"
)

func sampleTable() *table.Table {
	return new(table.Builder).
		Add("Partner ISO", []string{"CHN", "MEX"}).
		Add("Year", []int{2019, 2020}).
		Add("value", []float64{1.5, 2e6}).
		Done()
}

func TestWriteTSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTSV(&buf, sampleTable(), true))
	assert.Equal(t, "Partner ISO\tYear\tvalue\nCHN\t2019\t1.5\nMEX\t2020\t2000000\n", buf.String())

	buf.Reset()
	require.NoError(t, WriteTSV(&buf, sampleTable(), false))
	assert.Equal(t, "CHN\t2019\t1.5\nMEX\t2020\t2000000\n", buf.String())
}

type failWriter struct{}

func (failWriter) Write(p []byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteErrors(t *testing.T) {
	assert.EqualError(t, WriteTSV(failWriter{}, sampleTable(), true), "disk full")
	assert.EqualError(t, Fprint(failWriter{}, sampleTable()), "disk full")
}

func TestFprint(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Fprint(&buf, sampleTable()))
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "Partner ISO"))
	assert.True(t, strings.HasPrefix(lines[1], "CHN"))
	assert.Contains(t, lines[2], "2020")
}

func TestHumanFormat(t *testing.T) {
	for _, test := range []struct {
		v    float64
		want string
	}{
		{0, "0"},
		{12, "12"},
		{12.34, "12.3"},
		{500e3, "500K"},
		{1.5e6, "1.5M"},
		{-2e6, "-2M"},
		{3.2e9, "3.2B"},
		{7e12, "7T"},
		{7e15, "7000T"},
		{math.NaN(), "NaN"},
	} {
		assert.Equal(t, test.want, HumanFormat(test.v), "%g", test.v)
	}
}

func TestHumanize(t *testing.T) {
	h := Humanize(sampleTable())
	assert.Equal(t, []string{"1.5", "2M"}, h.MustColumn("value"))
	assert.Equal(t, []int{2019, 2020}, h.MustColumn("Year"))
}

var summaryColumns = []string{trade.ReporterISO, trade.PartnerISO, trade.TradeFlow, trade.ValuePerCapita}

func summaryDataset() *trade.Dataset {
	rec := func(rep, partner string, flow trade.Flow, v float64) trade.Record {
		return trade.Record{ReporterISO: rep, PartnerISO: partner, Flow: flow, PerCapita: v}
	}
	return trade.NewDataset(summaryColumns, []trade.Record{
		rec("USA", "WLD", trade.Import, 40),
		rec("USA", "WLD", trade.Import, 30),
		rec("USA", "CHN", trade.Import, 50),
		rec("USA", "WLD", trade.Import, 30),
		rec("USA", "MEX", trade.Import, 5),
		rec("USA", "MEX", trade.Import, 5),
		rec("USA", "WLD", trade.Export, 20),
		rec("DEU", "WLD", trade.Export, 60),
		rec("DEU", "FRA", trade.Export, 10),
		rec("DEU", "ITA", trade.Export, 30),
	})
}

func TestPartnerSummary(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PartnerSummary(&buf, summaryDataset(), DefaultSummaryOptions))

	sep := strings.Repeat("#", 72)
	want := strings.Join([]string{
		sep,
		"Import partners by trade value per capita:",
		"The first Import partner of USA is CHN in trade value, and MEX in transaction number.",
		"The first Import partner of DEU is none in trade value, and none in transaction number.",
		sep,
		"Export partners by trade value per capita:",
		"The first Export partner of USA is none in trade value, and none in transaction number.",
		"The first Export partner of DEU is ITA in trade value, and FRA in transaction number.",
		sep,
	}, "\n") + "\n"
	assert.Equal(t, want, buf.String())
}

func TestPartnerSummarySkipZero(t *testing.T) {
	var buf bytes.Buffer
	opts := SummaryOptions{Skip: 0}
	require.NoError(t, PartnerSummary(&buf, summaryDataset(), opts))
	assert.Contains(t, buf.String(), "The first Import partner of USA is WLD in trade value, and WLD in transaction number.")
}

func TestPartnerSummaryErrors(t *testing.T) {
	opts := DefaultSummaryOptions
	opts.Strict = true
	err := PartnerSummary(new(bytes.Buffer), summaryDataset(), opts)
	var short *trade.InsufficientRowsError
	require.ErrorAs(t, err, &short)
	assert.Equal(t, "DEU Import partners", short.Entity)
	assert.Equal(t, 2, short.Want)
	assert.Equal(t, 0, short.Got)

	err = PartnerSummary(new(bytes.Buffer), trade.NewDataset(summaryColumns, nil), DefaultSummaryOptions)
	var empty *trade.EmptyInputError
	assert.ErrorAs(t, err, &empty)

	opts = DefaultSummaryOptions
	opts.Value = trade.TradeValue
	err = PartnerSummary(new(bytes.Buffer), summaryDataset(), opts)
	var missing *trade.MissingFieldError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, trade.TradeValue, missing.Field)
}

func TestRequireSlots(t *testing.T) {
	assert.NoError(t, RequireSlots([]string{"a", "b"}, 2))

	err := RequireSlots([]string{"a"}, 2)
	var short *trade.InsufficientRowsError
	require.ErrorAs(t, err, &short)
	assert.Equal(t, 1, short.Got)

	assert.EqualError(t, RequireSlots([]string{"a", "b", "c"}, 2), "3 entities for 2 slots: c")
}
