// SPDX-License-Identifier: MIT
package gp_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/vecgp/kernel"
	"github.com/katalvlaran/vecgp/matrix"
)

func mustRows(t *testing.T, rows [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewFromRows(rows)
	require.NoError(t, err)

	return m
}

func mustConfig(t *testing.T, f kernel.Family, opts ...kernel.Option) kernel.Config {
	t.Helper()
	cfg, err := kernel.New(f, opts...)
	require.NoError(t, err)

	return cfg
}

func at(t *testing.T, m matrix.Matrix, i, j int) float64 {
	t.Helper()
	v, err := m.At(i, j)
	require.NoError(t, err)

	return v
}

func requireShape(t *testing.T, m matrix.Matrix, rows, cols int) {
	t.Helper()
	require.NotNil(t, m)
	require.Equal(t, rows, m.Rows(), "rows")
	require.Equal(t, cols, m.Cols(), "cols")
}

func emptyPoints(t *testing.T, d int) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewZeros(0, d)
	require.NoError(t, err)

	return m
}
