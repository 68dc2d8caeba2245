// SPDX-License-Identifier: MIT
package matrix_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/vecgp/matrix"
)

// TestCholeskyMatchesGonum compares L, read column by column through MulVec(e_j),
// against mat.Cholesky.LTo.
func TestCholeskyMatchesGonum(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	a := RandomSPD(t, rng, 5)

	sym := mat.NewSymDense(5, nil)
	for i := 0; i < 5; i++ {
		for j := i; j < 5; j++ {
			sym.SetSym(i, j, MustAt(t, a, i, j))
		}
	}
	var ref mat.Cholesky
	require.True(t, ref.Factorize(sym))
	var wantL mat.TriDense
	ref.LTo(&wantL)

	f, err := matrix.Cholesky(a)
	require.NoError(t, err)
	l, err := matrix.NewZeros(5, 5)
	require.NoError(t, err)
	for j := 0; j < 5; j++ {
		e := make([]float64, 5)
		e[j] = 1
		col, err := f.MulVec(e)
		require.NoError(t, err)
		for i, v := range col {
			require.NoError(t, l.Set(i, j, v))
		}
	}
	requireMatchesGonum(t, l, &wantL, 1e-10)
}

func TestCholeskyMulVec(t *testing.T) {
	a := MustFromRows(t, [][]float64{{4, 2}, {2, 3}})
	f, err := matrix.Cholesky(hide{a})
	require.NoError(t, err)

	// L·e0 is the first column of L: (2, 1).
	lz, err := f.MulVec([]float64{1, 0})
	require.NoError(t, err)
	require.InDelta(t, 2.0, lz[0], 1e-12)
	require.InDelta(t, 1.0, lz[1], 1e-12)

	_, err = f.MulVec([]float64{1})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestCholeskyRejects(t *testing.T) {
	_, err := matrix.Cholesky(MustFromRows(t, [][]float64{{1, 2}, {2, 1}}))
	require.ErrorIs(t, err, matrix.ErrNotPositiveDefinite)

	_, err = matrix.Cholesky(MustFromRows(t, [][]float64{{1, 0.5}, {0, 1}}))
	require.ErrorIs(t, err, matrix.ErrAsymmetry)

	_, err = matrix.Cholesky(MustFromRows(t, [][]float64{{1, 2}}))
	require.ErrorIs(t, err, matrix.ErrNonSquare)
}
