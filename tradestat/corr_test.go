// Copyright 2020 The Tradeviz Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tradestat

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// identityish returns an n×n symmetric matrix with labels l0..ln-1.
func identityish(n int) *Matrix {
	labels := make([]string, n)
	vals := make([][]float64, n)
	for i := range labels {
		labels[i] = fmt.Sprintf("l%d", i)
		vals[i] = make([]float64, n)
		for j := range vals[i] {
			vals[i][j] = 1 / float64(1+i+j)
		}
	}
	m, err := NewMatrix(labels, vals)
	if err != nil {
		panic(err)
	}
	return m
}

func TestRedundantPairsSize(t *testing.T) {
	for n := 0; n <= 7; n++ {
		m := identityish(n)
		pairs := RedundantPairs(m)
		assert.Len(t, pairs, n*(n+1)/2, "n=%d", n)

		// Every self pair is present once and no pair lies
		// above the diagonal.
		for _, l := range m.Labels() {
			_, ok := pairs[Pair{l, l}]
			assert.True(t, ok)
		}
		for i, a := range m.Labels() {
			for _, b := range m.Labels()[i+1:] {
				_, ok := pairs[Pair{a, b}]
				assert.False(t, ok, "%s,%s", a, b)
			}
		}
	}
}

func TestRedundantPairsExample(t *testing.T) {
	m, err := NewMatrix([]string{"a", "b", "c"}, [][]float64{
		{1, 0.5, 0.2},
		{0.5, 1, -0.7},
		{0.2, -0.7, 1},
	})
	require.NoError(t, err)
	want := map[Pair]struct{}{
		{"a", "a"}: {}, {"b", "a"}: {}, {"b", "b"}: {},
		{"c", "a"}: {}, {"c", "b"}: {}, {"c", "c"}: {},
	}
	assert.Equal(t, want, RedundantPairs(m))

	single, err := NewMatrix([]string{"x"}, [][]float64{{1}})
	require.NoError(t, err)
	assert.Equal(t, map[Pair]struct{}{{"x", "x"}: {}}, RedundantPairs(single))
}

func TestTopCorrelations(t *testing.T) {
	m, err := NewMatrix([]string{"a", "b", "c", "d"}, [][]float64{
		{1, 0.5, 0.2, math.NaN()},
		{0.5, 1, -0.7, 0.1},
		{0.2, -0.7, 1, 0.9},
		{math.NaN(), 0.1, 0.9, 1},
	})
	require.NoError(t, err)

	for _, test := range []struct {
		opts RankOptions
		want []PairValue
	}{
		{RankOptions{N: 2, Ascending: false, Abs: true}, []PairValue{
			{Pair{"c", "d"}, 0.9}, {Pair{"b", "c"}, 0.7},
		}},
		{RankOptions{N: 2, Ascending: true, Abs: false}, []PairValue{
			{Pair{"b", "c"}, -0.7}, {Pair{"b", "d"}, 0.1},
		}},
		{DefaultRankOptions, []PairValue{
			{Pair{"b", "d"}, 0.1}, {Pair{"a", "c"}, 0.2}, {Pair{"a", "b"}, 0.5},
			{Pair{"b", "c"}, 0.7}, {Pair{"c", "d"}, 0.9},
		}},
	} {
		assert.Equal(t, test.want, TopCorrelations(m, test.opts), "%+v", test.opts)
	}

	all := TopCorrelations(m, RankOptions{N: -1})
	require.Len(t, all, 6)
	last := all[len(all)-1]
	assert.Equal(t, Pair{"a", "d"}, last.Pair)
	assert.True(t, math.IsNaN(last.Value))

	assert.Empty(t, TopCorrelations(identityish(1), DefaultRankOptions))
	assert.Empty(t, TopCorrelations(identityish(0), DefaultRankOptions))
}

func TestNewMatrixErrors(t *testing.T) {
	_, err := NewMatrix([]string{"a", "b"}, [][]float64{{1, 2}})
	assert.ErrorContains(t, err, "rows")
	_, err = NewMatrix([]string{"a", "b"}, [][]float64{{1, 2}, {2}})
	assert.ErrorContains(t, err, "columns")
	_, err = NewMatrix([]string{"a", "b"}, [][]float64{{1, 2}, {3, 1}})
	assert.ErrorContains(t, err, "not symmetric")
	_, err = NewMatrix([]string{"a", "a"}, [][]float64{{1, 2}, {2, 1}})
	assert.ErrorContains(t, err, "duplicate")
}

func TestMatrixLookup(t *testing.T) {
	m := identityish(3)
	v, ok := m.Value("l1", "l2")
	assert.True(t, ok)
	assert.Equal(t, 0.25, v)
	_, ok = m.Value("l1", "zz")
	assert.False(t, ok)
	assert.Equal(t, []string{"label", "l0", "l1", "l2"}, m.Table().Columns())
	assert.Len(t, Unstack(m), 9)
}
