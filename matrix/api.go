// SPDX-License-Identifier: MIT
// Package matrix: public API facades.
//
// Purpose:
//   - Provide thin, well-documented entry points for common tasks across the package.
//   - Avoid any logic duplication: each facade delegates to the canonical implementation.
//
// Determinism & Policy:
//   - Facades never change the loop orders or numeric policy of underlying kernels.
//   - Constructors here accept empty shapes; zero points is a legal GP input.
//
// AI-Hints:
//   - Prefer passing *Dense to unlock fast-paths in kernels (flat-slice loops).
//   - Use AddDiagonal for jitter/noise regularization of Gram matrices.

package matrix

import (
	"fmt"
	"math"
)

const (
	opAddDiagonal = "AddDiagonal"
	opDiagonal    = "Diagonal"
	opReshape     = "Reshape"
	opAllClose    = "AllClose"
)

// ---------- Constructors & Utilities ----------

// NewZeros returns a new zero-initialized *Dense of size rows×cols.
// Unlike NewDense, empty shapes (rows==0 or cols==0) are accepted.
//
// Note: Returns (*Dense, error) to surface ErrInvalidDimensions for negative sizes.
func NewZeros(rows, cols int) (*Dense, error) {
	return newDenseZeroOK(rows, cols)
}

// NewIdentity returns I_n (n×n identity; ones on the diagonal, zeros elsewhere).
// n == 0 yields an empty matrix.
// Complexity: O(n^2) zeroing (constructor) + O(n) writes on the diagonal.
func NewIdentity(n int) (*Dense, error) {
	I, err := newDenseZeroOK(n, n)
	if err != nil {
		return nil, err // propagate constructor error unchanged
	}
	for i := 0; i < n; i++ { // fixed i order guarantees reproducibility
		I.data[i*n+i] = 1.0
	}

	return I, nil
}

// AddDiagonal returns a copy of square m with alpha added to every diagonal entry.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, ErrNaNInf (non-finite alpha).
//
// Complexity:
//   - Time O(n²) for the copy, O(n) for the shift.
//
// AI-Hints:
//   - K + (σ²_obs + jitter)·I is the standard way to regularize a Gram matrix.
func AddDiagonal(m Matrix, alpha float64) (*Dense, error) {
	if err := ValidateSquare(m); err != nil {
		return nil, matrixErrorf(opAddDiagonal, err)
	}
	if math.IsNaN(alpha) || math.IsInf(alpha, 0) {
		return nil, matrixErrorf(opAddDiagonal, ErrNaNInf)
	}
	n := m.Rows()
	out, err := toDense(m)
	if err != nil {
		return nil, matrixErrorf(opAddDiagonal, err)
	}
	for i := 0; i < n; i++ {
		out.data[i*n+i] += alpha
	}

	return out, nil
}

// Diagonal returns the main diagonal of square m.
func Diagonal(m Matrix) ([]float64, error) {
	if err := ValidateSquare(m); err != nil {
		return nil, matrixErrorf(opDiagonal, err)
	}
	n := m.Rows()
	out := make([]float64, n)
	var v float64
	var err error
	for i := 0; i < n; i++ {
		if v, err = m.At(i, i); err != nil {
			return nil, matrixErrorf(opDiagonal, err)
		}
		out[i] = v
	}

	return out, nil
}

// Reshape wraps a copy of the flat vector v as a rows×cols matrix (row-major).
// Reshape(v, n, D) turns a length-nD GP draw back into n labels of D components.
func Reshape(v []float64, rows, cols int) (*Dense, error) {
	if rows < 0 || cols < 0 {
		return nil, matrixErrorf(opReshape, ErrInvalidDimensions)
	}
	if len(v) != rows*cols {
		return nil, matrixErrorf(opReshape, fmt.Errorf("len=%d shape=%dx%d: %w", len(v), rows, cols, ErrDimensionMismatch))
	}
	out, err := newDenseZeroOK(rows, cols)
	if err != nil {
		return nil, matrixErrorf(opReshape, err)
	}
	copy(out.data, v)

	return out, nil
}

// toDense returns a *Dense deep copy of any Matrix implementation.
func toDense(m Matrix) (*Dense, error) {
	if md, ok := m.(*Dense); ok {
		return md.Clone().(*Dense), nil
	}
	r, c := m.Rows(), m.Cols()
	out, err := newDenseZeroOK(r, c)
	if err != nil {
		return nil, err
	}
	var i, j int
	var v float64
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, err
			}
			out.data[i*c+j] = v
		}
	}

	return out, nil
}

// Symmetrize returns (m + mᵀ)/2. Deterministic composition: Transpose → Add → Scale.
// Complexity: O(rc).
//
// AI-Hints: Useful to repair asymmetry drift accumulated by K_tc·K⁻¹·K_ct products.
func Symmetrize(m Matrix) (Matrix, error) {
	mt, err := Transpose(m)
	if err != nil {
		return nil, matrixErrorf("Symmetrize", err)
	}
	sum, err := Add(m, mt)
	if err != nil {
		return nil, matrixErrorf("Symmetrize", err)
	}

	return Scale(sum, 0.5)
}

// AllClose checks element-wise |a-b| ≤ atol + rtol*|b| for identical shapes.
// Returns (true,nil) if all elements satisfy the relation; (false,nil) otherwise.
// NaN != anything; +Inf equals +Inf; -Inf equals -Inf.
// Time: O(r*c). Space: O(1). Deterministic.
//
// Policy:
//   - a and b must be non-nil and have identical shapes.
//   - rtol, atol are treated as |rtol|, |atol| (negative values are normalized).
func AllClose(a, b Matrix, rtol, atol float64) (bool, error) {
	if err := ValidateBinarySameShape(a, b); err != nil {
		return false, matrixErrorf(opAllClose, err)
	}
	rtol, atol = math.Abs(rtol), math.Abs(atol)
	var i, j int
	var av, bv float64
	var err error
	for i = 0; i < a.Rows(); i++ {
		for j = 0; j < a.Cols(); j++ {
			if av, err = a.At(i, j); err != nil {
				return false, matrixErrorf(opAllClose, err)
			}
			if bv, err = b.At(i, j); err != nil {
				return false, matrixErrorf(opAllClose, err)
			}
			if math.IsNaN(av) || math.IsNaN(bv) {
				return false, nil
			}
			if math.IsInf(av, 0) || math.IsInf(bv, 0) {
				if av != bv {
					return false, nil
				}
				continue
			}
			if math.Abs(av-bv) > atol+rtol*math.Abs(bv) {
				return false, nil
			}
		}
	}

	return true, nil
}
