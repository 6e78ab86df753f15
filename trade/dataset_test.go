// Copyright 2020 The Tradeviz Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trade

import (
	"bytes"
	"errors"
	"testing"

	"github.com/aclements/go-gg/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDataset() *Dataset {
	return NewDataset([]string{Year, ReporterISO, PartnerISO, TradeFlow, TradeValue}, []Record{
		{Year: 2019, ReporterISO: "USA", PartnerISO: "CHN", Flow: Import, Value: 10},
		{Year: 2019, ReporterISO: "DEU", PartnerISO: "FRA", Flow: Export, Value: 20},
		{Year: 2020, ReporterISO: "USA", PartnerISO: "MEX", Flow: Export, Value: 30},
	})
}

func TestDatasetRequire(t *testing.T) {
	d := testDataset()
	assert.NoError(t, d.Require(Year, TradeValue))

	err := d.Require(Year, ValuePerCapita)
	var missing *MissingFieldError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, ValuePerCapita, missing.Field)
	assert.EqualError(t, err, `missing field "Trade Value per capita"`)
}

func TestDatasetFilter(t *testing.T) {
	d := testDataset()

	usa, err := d.Filter(ReporterISO, "USA")
	require.NoError(t, err)
	assert.Equal(t, 2, usa.Len())

	y, err := d.Filter(Year, "2019")
	require.NoError(t, err)
	assert.Equal(t, 2, y.Len())

	// Filtering must not alias the source records.
	usa.Records[0].Value = -1
	assert.Equal(t, 10.0, d.Records[0].Value)

	_, err = d.Filter(Category, "Guns")
	assert.Error(t, err)
	_, err = d.Filter(TradeValue, "10")
	assert.Error(t, err, "numeric columns are not keys")
}

func TestDatasetValues(t *testing.T) {
	vs, err := testDataset().Values(ReporterISO)
	require.NoError(t, err)
	assert.Equal(t, []string{"USA", "DEU"}, vs)
}

func TestDatasetCopy(t *testing.T) {
	d := testDataset()
	c := d.WithColumns(GDPLevel, Year)
	c.Records[1].GDPLevel = "high"
	assert.Equal(t, "", d.Records[1].GDPLevel)
	assert.False(t, d.Has(GDPLevel))
	assert.True(t, c.Has(GDPLevel))
	assert.Len(t, c.Columns, len(d.Columns)+1)
}

func TestDatasetTable(t *testing.T) {
	tab := testDataset().Table()
	assert.Equal(t, 3, tab.Len())
	assert.Equal(t, []int{2019, 2019, 2020}, tab.MustColumn(Year))
	assert.Equal(t, []string{"Import", "Export", "Export"}, tab.MustColumn(TradeFlow))
	assert.Equal(t, []float64{10, 20, 30}, tab.MustColumn(TradeValue))

	var buf bytes.Buffer
	table.Fprint(&buf, tab)
	assert.Contains(t, buf.String(), "Reporter ISO")
}

func TestRecordFields(t *testing.T) {
	var r Record
	require.NoError(t, r.SetKey(Year, "1999"))
	require.NoError(t, r.SetKey(TradeFlow, "Export"))
	assert.Equal(t, Export, r.Flow)
	assert.Error(t, r.SetKey(Year, "soon"))
	assert.Error(t, r.SetKey(TradeValue, "1"))
	assert.True(t, r.SetNum(ValuePerCapita, 3))

	v, ok := r.Key(Year)
	assert.True(t, ok)
	assert.Equal(t, "1999", v)
	_, ok = r.Key("Weight")
	assert.False(t, ok)
	x, ok := r.Num(ValuePerCapita)
	assert.True(t, ok)
	assert.Equal(t, 3.0, x)

	assert.Equal(t, Year, Canonical("Time"))
	assert.Equal(t, "", Canonical("Weight"))
}
