// SPDX-License-Identifier: MIT
// Package matrix_test contains test helpers
//
// Purpose:
//   • Provide small, deterministic test fixtures for kernels.
//   • Bridge to gonum/mat so results can be cross-checked against a reference implementation.

package matrix_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/vecgp/matrix"
)

// hide WRAPS any Matrix to hide its concrete type from type assertions.
// Use hide{X} to force the At/Set fallback paths in code under test.
type hide struct{ matrix.Matrix }

// MustFromRows builds a *Dense from literal rows or fails the test.
func MustFromRows(t *testing.T, rows [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewFromRows(rows)
	require.NoError(t, err)

	return m
}

// MustAt reads (i,j) or fails the test.
func MustAt(t *testing.T, m matrix.Matrix, i, j int) float64 {
	t.Helper()
	v, err := m.At(i, j)
	require.NoError(t, err)

	return v
}

// RandomDense fills an r×c matrix with uniform values in [-1,1) from a seeded source.
func RandomDense(t *testing.T, rng *rand.Rand, r, c int) *matrix.Dense {
	t.Helper()
	data := make([]float64, r*c)
	for i := range data {
		data[i] = 2*rng.Float64() - 1
	}
	m, err := matrix.NewFromData(r, c, data)
	require.NoError(t, err)

	return m
}

// RandomSPD returns A·Aᵗ + n·I, which is symmetric positive definite.
func RandomSPD(t *testing.T, rng *rand.Rand, n int) *matrix.Dense {
	t.Helper()
	a := RandomDense(t, rng, n, n)
	at, err := matrix.Transpose(a)
	require.NoError(t, err)
	p, err := matrix.Mul(a, at)
	require.NoError(t, err)
	spd, err := matrix.AddDiagonal(p, float64(n))
	require.NoError(t, err)

	return spd
}

// toGonum copies m into a *mat.Dense.
func toGonum(t *testing.T, m matrix.Matrix) *mat.Dense {
	t.Helper()
	out := mat.NewDense(m.Rows(), m.Cols(), nil)
	for i := 0; i < m.Rows(); i++ {
		for j := 0; j < m.Cols(); j++ {
			out.Set(i, j, MustAt(t, m, i, j))
		}
	}

	return out
}

// requireMatchesGonum asserts element-wise agreement with a gonum result.
func requireMatchesGonum(t *testing.T, got matrix.Matrix, want mat.Matrix, tol float64) {
	t.Helper()
	r, c := want.Dims()
	require.Equal(t, r, got.Rows())
	require.Equal(t, c, got.Cols())
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			require.InDeltaf(t, want.At(i, j), MustAt(t, got, i, j), tol, "(%d,%d)", i, j)
		}
	}
}
