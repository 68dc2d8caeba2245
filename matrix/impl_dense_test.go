// Package matrix_test contains unit tests for the Dense implementation
// of the Matrix interface in the matrix package.
package matrix_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/vecgp/matrix"
)

// TestNewDenseInvalidDimensions ensures that NewDense rejects non-positive dimensions.
func TestNewDenseInvalidDimensions(t *testing.T) {
	_, err := matrix.NewDense(0, 5)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)

	_, err = matrix.NewDense(5, 0)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
}

// TestNewZerosAllowsEmpty checks the zero-OK constructors.
func TestNewZerosAllowsEmpty(t *testing.T) {
	m, err := matrix.NewZeros(0, 3)
	require.NoError(t, err)
	require.Equal(t, 0, m.Rows())
	require.Equal(t, 3, m.Cols())
	require.Empty(t, m.Flatten())

	_, err = matrix.NewZeros(-1, 3)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)

	e, err := matrix.NewFromRows(nil)
	require.NoError(t, err)
	r, c := e.Shape()
	require.Zero(t, r)
	require.Zero(t, c)
}

// TestAtSetOutOfRange ensures At() and Set() return ErrOutOfRange on invalid access.
func TestAtSetOutOfRange(t *testing.T) {
	m, err := matrix.NewDense(2, 2)
	require.NoError(t, err)

	_, err = m.At(-1, 0)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
	_, err = m.At(0, 2)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
	require.ErrorIs(t, m.Set(2, 0, 1.23), matrix.ErrOutOfRange)
	require.ErrorIs(t, m.Set(0, -1, 4.56), matrix.ErrOutOfRange)
}

func TestSetRejectsNaNInf(t *testing.T) {
	m, err := matrix.NewDense(1, 1)
	require.NoError(t, err)
	require.ErrorIs(t, m.Set(0, 0, math.NaN()), matrix.ErrNaNInf)
	require.ErrorIs(t, m.Set(0, 0, math.Inf(1)), matrix.ErrNaNInf)

	_, err = matrix.NewFromData(1, 2, []float64{1, math.Inf(-1)})
	require.ErrorIs(t, err, matrix.ErrNaNInf)
}

func TestNewFromRowsRagged(t *testing.T) {
	_, err := matrix.NewFromRows([][]float64{{1, 2}, {3}})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, err = matrix.NewFromData(2, 2, []float64{1, 2, 3})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

// TestRowMajorLayout pins the i*cols+j layout that label flattening relies on.
func TestRowMajorLayout(t *testing.T) {
	m := MustFromRows(t, [][]float64{{1, 2}, {3, 4}, {5, 6}})
	require.Equal(t, []float64{1, 2, 3, 4, 5, 6}, m.Flatten())

	row, err := m.RowView(1)
	require.NoError(t, err)
	require.Equal(t, []float64{3, 4}, row)

	_, err = m.RowView(3)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
}

func TestCloneIsIndependent(t *testing.T) {
	m := MustFromRows(t, [][]float64{{1, 2}})
	cp := m.Clone()
	require.NoError(t, cp.Set(0, 0, 9))
	require.Equal(t, 1.0, MustAt(t, m, 0, 0))
	require.Equal(t, 9.0, MustAt(t, cp, 0, 0))
}

// TestViewWritesThrough checks that a block window shares storage with its base.
func TestViewWritesThrough(t *testing.T) {
	m, err := matrix.NewZeros(4, 4)
	require.NoError(t, err)

	v, err := m.View(2, 2, 2, 2)
	require.NoError(t, err)
	require.NoError(t, v.CopyRowMajor([]float64{1, 2, 3, 4}))
	require.NoError(t, v.Set(0, 0, 7))

	require.Equal(t, 7.0, MustAt(t, m, 2, 2))
	require.Equal(t, 2.0, MustAt(t, m, 2, 3))
	require.Equal(t, 4.0, MustAt(t, m, 3, 3))
	got, err := v.At(1, 0)
	require.NoError(t, err)
	require.Equal(t, 3.0, got)

	_, err = m.View(3, 3, 2, 2)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
	require.ErrorIs(t, v.CopyRowMajor([]float64{1}), matrix.ErrDimensionMismatch)
}

func TestApplyAndDo(t *testing.T) {
	m := MustFromRows(t, [][]float64{{1, 2}, {3, 4}})
	require.NoError(t, m.Apply(func(i, j int, v float64) float64 { return v * 10 }))
	require.Equal(t, []float64{10, 20, 30, 40}, m.Flatten())

	var visited int
	m.Do(func(i, j int, v float64) bool {
		visited++
		return visited < 3
	})
	require.Equal(t, 3, visited)

	require.ErrorIs(t, m.Apply(func(_, _ int, _ float64) float64 { return math.NaN() }), matrix.ErrNaNInf)
}

func TestString(t *testing.T) {
	m := MustFromRows(t, [][]float64{{1, 2}, {3, 4}})
	require.Equal(t, "[1, 2]\n[3, 4]\n", m.String())
}
