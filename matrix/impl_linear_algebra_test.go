// SPDX-License-Identifier: MIT
package matrix_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/vecgp/matrix"
)

const algebraTol = 1e-10

func TestAddSub(t *testing.T) {
	a := MustFromRows(t, [][]float64{{1, 2}, {3, 4}})
	b := MustFromRows(t, [][]float64{{5, 6}, {7, 8}})

	sum, err := matrix.Add(a, b)
	require.NoError(t, err)
	require.Equal(t, []float64{6, 8, 10, 12}, sum.(*matrix.Dense).Flatten())

	diff, err := matrix.Sub(hide{a}, b)
	require.NoError(t, err)
	require.Equal(t, []float64{-4, -4, -4, -4}, diff.(*matrix.Dense).Flatten())

	_, err = matrix.Add(a, MustFromRows(t, [][]float64{{1, 2, 3}}))
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = matrix.Add(nil, b)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

// TestMulMatchesGonum cross-checks Mul (fast-path and fallback) against mat.Dense.Mul.
func TestMulMatchesGonum(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	a := RandomDense(t, rng, 5, 3)
	b := RandomDense(t, rng, 3, 4)

	var want mat.Dense
	want.Mul(toGonum(t, a), toGonum(t, b))

	fast, err := matrix.Mul(a, b)
	require.NoError(t, err)
	requireMatchesGonum(t, fast, &want, algebraTol)

	slow, err := matrix.Mul(hide{a}, hide{b})
	require.NoError(t, err)
	requireMatchesGonum(t, slow, &want, algebraTol)

	_, err = matrix.Mul(a, a)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestMulEmptyOperands(t *testing.T) {
	a, err := matrix.NewZeros(0, 3)
	require.NoError(t, err)
	b := MustFromRows(t, [][]float64{{1, 0}, {0, 1}, {1, 1}})

	p, err := matrix.Mul(a, b)
	require.NoError(t, err)
	require.Equal(t, 0, p.Rows())
	require.Equal(t, 2, p.Cols())
}

func TestTransposeScaleMatVec(t *testing.T) {
	m := MustFromRows(t, [][]float64{{1, 2, 3}, {4, 5, 6}})

	tr, err := matrix.Transpose(hide{m})
	require.NoError(t, err)
	require.Equal(t, []float64{1, 4, 2, 5, 3, 6}, tr.(*matrix.Dense).Flatten())

	sc, err := matrix.Scale(m, -2)
	require.NoError(t, err)
	require.Equal(t, -12.0, MustAt(t, sc, 1, 2))

	y, err := matrix.MatVec(m, []float64{1, 1, 1})
	require.NoError(t, err)
	require.Equal(t, []float64{6, 15}, y)

	_, err = matrix.MatVec(m, []float64{1})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

// TestInverseMatchesGonum checks the pivoted LU inverse against mat.Dense.Inverse.
func TestInverseMatchesGonum(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	a := RandomSPD(t, rng, 6)

	var want mat.Dense
	require.NoError(t, want.Inverse(toGonum(t, a)))

	got, err := matrix.Inverse(a)
	require.NoError(t, err)
	requireMatchesGonum(t, got, &want, 1e-9)

	// A·A⁻¹ = I
	prod, err := matrix.Mul(a, got)
	require.NoError(t, err)
	id, err := matrix.NewIdentity(6)
	require.NoError(t, err)
	ok, err := matrix.AllClose(prod, id, 0, 1e-9)
	require.NoError(t, err)
	require.True(t, ok)
}

// TestInverseNeedsPivoting uses a matrix with a zero leading entry.
func TestInverseNeedsPivoting(t *testing.T) {
	a := MustFromRows(t, [][]float64{{0, 1}, {1, 0}})
	inv, err := matrix.Inverse(a)
	require.NoError(t, err)
	require.Equal(t, []float64{0, 1, 1, 0}, inv.(*matrix.Dense).Flatten())
}

func TestInverseSingular(t *testing.T) {
	cases := map[string][][]float64{
		"rank-one":  {{1, 2}, {2, 4}},
		"all-zero":  {{0, 0}, {0, 0}},
		"near-rank": {{1, 1}, {1, 1 + 1e-17}},
	}
	for name, rows := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := matrix.Inverse(MustFromRows(t, rows))
			require.ErrorIs(t, err, matrix.ErrSingular)
		})
	}

	_, err := matrix.Inverse(MustFromRows(t, [][]float64{{1, 2, 3}}))
	require.ErrorIs(t, err, matrix.ErrNonSquare)
}

func TestInverseEmpty(t *testing.T) {
	e, err := matrix.NewZeros(0, 0)
	require.NoError(t, err)
	inv, err := matrix.Inverse(e)
	require.NoError(t, err)
	require.Equal(t, 0, inv.Rows())
}

func TestLUSolve(t *testing.T) {
	a := MustFromRows(t, [][]float64{{2, 1, 1}, {4, -6, 0}, {-2, 7, 2}})
	f, err := matrix.LU(a)
	require.NoError(t, err)

	x, err := f.Solve([]float64{5, -2, 9})
	require.NoError(t, err)
	require.InDelta(t, 1.0, x[0], algebraTol)
	require.InDelta(t, 1.0, x[1], algebraTol)
	require.InDelta(t, 2.0, x[2], algebraTol)

	_, err = f.Solve([]float64{1})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}
