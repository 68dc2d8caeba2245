// SPDX-License-Identifier: MIT
// Package matrix provides universal operations on any Matrix implementation,
// including element-wise addition, subtraction, matrix multiplication,
// transpose, scalar scaling and LU-based inversion. All functions perform strict
// fail-fast validation and return clear errors on dimension mismatches.
//
// Purpose:
//   - Canonical linear-algebra kernels used by the Gram assembler and GP posterior.
//   - Operation tags and shared constants for determinism and error reporting.
//
// Notes:
//   - Results are allocated with the zero-OK constructor: an empty operand
//     (e.g. zero target points) produces an empty, well-shaped result.
//   - Every kernel has a *Dense fast-path and an At/Set fallback with the same loop order.

package matrix

import (
	"fmt"
	"math"
)

// ZeroSum is the initial sum value for dot products and substitutions.
const ZeroSum = 0.0

// Operation name constants for unified error wrapping and reducing magic strings.
const (
	opAdd       = "Add"
	opSub       = "Sub"
	opMul       = "Mul"
	opTranspose = "Transpose"
	opScale     = "Scale"
	opInverse   = "Inverse"
	opLU        = "LU"
	opLUSolve   = "LU.Solve"
	opMatVec    = "MatVec"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// Use only when err != nil to avoid creating a non-nil wrapper around a nil cause.
//
// AI-Hints:
//   - Always gate calls with `if err != nil { return nil, matrixErrorf(tag, err) }`.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// addSub computes elementwise out = a + sign*b for sign ∈ {+1, -1}.
//
// Implementation:
//   - Stage 1: ValidateBinarySameShape(a, b). Allocate result Dense(rows, cols).
//   - Stage 2: Fast-path if both are *Dense - single flat loop 0..n-1.
//     Otherwise, fallback At/Set with fixed i→j order.
//
// Complexity:
//   - Time O(r*c), Space O(r*c) for the new result.
func addSub(a, b Matrix, sign float64, opTag string) (Matrix, error) {
	if err := ValidateBinarySameShape(a, b); err != nil {
		return nil, matrixErrorf(opTag, err)
	}
	rows, cols := a.Rows(), b.Cols()
	res, err := newDenseZeroOK(rows, cols)
	if err != nil {
		return nil, matrixErrorf(opTag, err)
	}

	ad, okA := a.(*Dense)
	bd, okB := b.(*Dense)
	if okA && okB {
		var k int
		for k = 0; k < len(res.data); k++ {
			res.data[k] = ad.data[k] + sign*bd.data[k]
		}

		return res, nil
	}

	var i, j int
	var av, bv float64
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			if av, err = a.At(i, j); err != nil {
				return nil, matrixErrorf(opTag, err)
			}
			if bv, err = b.At(i, j); err != nil {
				return nil, matrixErrorf(opTag, err)
			}
			res.data[i*cols+j] = av + sign*bv
		}
	}

	return res, nil
}

// Add returns a new matrix a + b.
// Errors: ErrNilMatrix, ErrDimensionMismatch.
func Add(a, b Matrix) (Matrix, error) { return addSub(a, b, 1, opAdd) }

// Sub returns a new matrix a - b.
// Errors: ErrNilMatrix, ErrDimensionMismatch.
func Sub(a, b Matrix) (Matrix, error) { return addSub(a, b, -1, opSub) }

// Mul computes the matrix product a×b (r×n · n×c → r×c).
//
// Implementation:
//   - Stage 1: ValidateMulCompatible(a, b); allocate r×c result (zero-OK).
//   - Stage 2: Fast-path i-k-j loop order on *Dense for streaming access to b rows.
//     Fallback uses At with the same loop order.
//
// Behavior highlights:
//   - Zero-sized operands are legal; e.g. (0×n)·(n×c) yields a 0×c matrix.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch.
//
// Determinism:
//   - Fixed i→k→j accumulation order.
//
// Complexity:
//   - Time O(r*n*c), Space O(r*c).
func Mul(a, b Matrix) (Matrix, error) {
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	r, n, c := a.Rows(), a.Cols(), b.Cols()
	res, err := newDenseZeroOK(r, c)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	var i, k, j, baseA, baseB, baseR int
	var aik float64
	ad, okA := a.(*Dense)
	bd, okB := b.(*Dense)
	if okA && okB {
		for i = 0; i < r; i++ {
			baseA = i * n
			baseR = i * c
			for k = 0; k < n; k++ {
				aik = ad.data[baseA+k]
				if aik == 0 {
					continue
				}
				baseB = k * c
				for j = 0; j < c; j++ {
					res.data[baseR+j] += aik * bd.data[baseB+j]
				}
			}
		}

		return res, nil
	}

	var bkj float64
	for i = 0; i < r; i++ {
		baseR = i * c
		for k = 0; k < n; k++ {
			if aik, err = a.At(i, k); err != nil {
				return nil, matrixErrorf(opMul, err)
			}
			for j = 0; j < c; j++ {
				if bkj, err = b.At(k, j); err != nil {
					return nil, matrixErrorf(opMul, err)
				}
				res.data[baseR+j] += aik * bkj
			}
		}
	}

	return res, nil
}

// Transpose returns a new c×r matrix with res[j,i] = m[i,j].
// Complexity: O(r*c).
func Transpose(m Matrix) (Matrix, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	r, c := m.Rows(), m.Cols()
	res, err := newDenseZeroOK(c, r)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}

	var i, j int
	if md, ok := m.(*Dense); ok {
		for i = 0; i < r; i++ {
			for j = 0; j < c; j++ {
				res.data[j*r+i] = md.data[i*c+j]
			}
		}

		return res, nil
	}

	var v float64
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, matrixErrorf(opTranspose, err)
			}
			res.data[j*r+i] = v
		}
	}

	return res, nil
}

// Scale returns a new matrix alpha*m.
func Scale(m Matrix, alpha float64) (Matrix, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	if math.IsNaN(alpha) || math.IsInf(alpha, 0) {
		return nil, matrixErrorf(opScale, ErrNaNInf)
	}
	r, c := m.Rows(), m.Cols()
	res, err := newDenseZeroOK(r, c)
	if err != nil {
		return nil, matrixErrorf(opScale, err)
	}

	if md, ok := m.(*Dense); ok {
		for k, v := range md.data {
			res.data[k] = alpha * v
		}

		return res, nil
	}

	var i, j int
	var v float64
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, matrixErrorf(opScale, err)
			}
			res.data[i*c+j] = alpha * v
		}
	}

	return res, nil
}

// MatVec computes y = m·x for an r×c matrix and a length-c vector.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (len(x) != Cols()).
//
// Complexity:
//   - Time O(r*c), Space O(r).
func MatVec(m Matrix, x []float64) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	r, c := m.Rows(), m.Cols()
	if err := ValidateVecLen(x, c); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	y := make([]float64, r)

	var i, j, base int
	var acc float64
	if md, ok := m.(*Dense); ok {
		for i = 0; i < r; i++ {
			acc = ZeroSum
			base = i * c
			for j = 0; j < c; j++ {
				acc += md.data[base+j] * x[j]
			}
			y[i] = acc
		}

		return y, nil
	}

	var v float64
	var err error
	for i = 0; i < r; i++ {
		acc = ZeroSum
		for j = 0; j < c; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, matrixErrorf(opMatVec, err)
			}
			acc += v * x[j]
		}
		y[i] = acc
	}

	return y, nil
}

// LUFactors holds a row-pivoted LU factorization P·A = L·U in packed form.
// The strict lower triangle of lu stores L (unit diagonal implied); the upper
// triangle including the diagonal stores U. piv[i] is the original row placed at i.
type LUFactors struct {
	n   int
	lu  []float64
	piv []int
}

// LU computes the partially pivoted factorization P·A = L·U.
//
// Implementation:
//   - Stage 1: Validate m (not nil, square); copy into a packed n×n buffer.
//   - Stage 2: For each column k pick the row with the largest |a[i,k]| (i ≥ k),
//     swap it into place and eliminate below the pivot.
//
// Behavior highlights:
//   - A pivot with |u[k,k]| ≤ n·ε·max|a| is treated as a zero pivot; an all-zero
//     input is singular regardless of n.
//   - n == 0 yields an empty factorization (no error).
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, ErrSingular.
//
// Determinism:
//   - Ties in pivot magnitude keep the lowest row index.
//
// Complexity:
//   - Time O(n³), Space O(n²).
func LU(m Matrix) (*LUFactors, error) {
	if err := ValidateSquare(m); err != nil {
		return nil, matrixErrorf(opLU, err)
	}
	n := m.Rows()
	f := &LUFactors{n: n, lu: make([]float64, n*n), piv: make([]int, n)}

	var i, j, k int
	var v float64
	var err error
	if md, ok := m.(*Dense); ok {
		copy(f.lu, md.data)
	} else {
		for i = 0; i < n; i++ {
			for j = 0; j < n; j++ {
				if v, err = m.At(i, j); err != nil {
					return nil, matrixErrorf(opLU, err)
				}
				f.lu[i*n+j] = v
			}
		}
	}
	for i = 0; i < n; i++ {
		f.piv[i] = i
	}
	if n == 0 {
		return f, nil
	}

	maxAbs := 0.0
	for _, v = range f.lu {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, matrixErrorf(opLU, ErrNaNInf)
		}
		if a := math.Abs(v); a > maxAbs {
			maxAbs = a
		}
	}
	if maxAbs == 0 {
		return nil, matrixErrorf(opLU, ErrSingular)
	}
	tol := float64(n) * epsilon * maxAbs

	var p int
	var best, pivot, factor float64
	for k = 0; k < n; k++ {
		p = k
		best = math.Abs(f.lu[k*n+k])
		for i = k + 1; i < n; i++ {
			if v = math.Abs(f.lu[i*n+k]); v > best {
				best, p = v, i
			}
		}
		if best <= tol {
			return nil, matrixErrorf(opLU, fmt.Errorf("pivot %d: %w", k, ErrSingular))
		}
		if p != k {
			for j = 0; j < n; j++ {
				f.lu[k*n+j], f.lu[p*n+j] = f.lu[p*n+j], f.lu[k*n+j]
			}
			f.piv[k], f.piv[p] = f.piv[p], f.piv[k]
		}
		pivot = f.lu[k*n+k]
		for i = k + 1; i < n; i++ {
			factor = f.lu[i*n+k] / pivot
			f.lu[i*n+k] = factor
			if factor == 0 {
				continue
			}
			for j = k + 1; j < n; j++ {
				f.lu[i*n+j] -= factor * f.lu[k*n+j]
			}
		}
	}

	return f, nil
}

// Solve returns x with A·x = b using the stored factors.
// Errors: ErrDimensionMismatch when len(b) != n.
// Complexity: O(n²).
func (f *LUFactors) Solve(b []float64) ([]float64, error) {
	if err := ValidateVecLen(b, f.n); err != nil {
		return nil, matrixErrorf(opLUSolve, err)
	}
	n := f.n
	x := make([]float64, n)
	f.solveInto(b, x)

	return x, nil
}

// solveInto runs forward (L·y = P·b) then backward (U·x = y) substitution.
// x doubles as the y workspace.
func (f *LUFactors) solveInto(b, x []float64) {
	n := f.n
	var i, k, base int
	var sum float64
	for i = 0; i < n; i++ {
		sum = b[f.piv[i]]
		base = i * n
		for k = 0; k < i; k++ {
			sum -= f.lu[base+k] * x[k]
		}
		x[i] = sum
	}
	for i = n - 1; i >= 0; i-- {
		sum = x[i]
		base = i * n
		for k = i + 1; k < n; k++ {
			sum -= f.lu[base+k] * x[k]
		}
		x[i] = sum / f.lu[base+i]
	}
}

// Inverse returns A⁻¹ via pivoted LU, solving A·x = e_col column by column.
//
// Implementation:
//   - Stage 1: LU(m) (validation and singularity detection live there).
//   - Stage 2: For each unit vector e_col, solve and write x into column col.
//
// Inputs:
//   - m: square Matrix (n×n). n == 0 returns an empty 0×0 result.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, ErrNaNInf, ErrSingular.
//
// Complexity:
//   - Time O(n³), Space O(n²).
//
// AI-Hints:
//   - Reuse LU(m).Solve if only a few right-hand sides are needed.
func Inverse(m Matrix) (Matrix, error) {
	f, err := LU(m)
	if err != nil {
		return nil, matrixErrorf(opInverse, err)
	}
	n := f.n
	inv, err := newDenseZeroOK(n, n)
	if err != nil {
		return nil, matrixErrorf(opInverse, err)
	}

	var col, i int
	e := make([]float64, n)
	x := make([]float64, n)
	for col = 0; col < n; col++ {
		for i = range e {
			e[i] = 0
		}
		e[col] = 1
		f.solveInto(e, x)
		for i = 0; i < n; i++ {
			inv.data[i*n+col] = x[i]
		}
	}

	return inv, nil
}
