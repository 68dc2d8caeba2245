// SPDX-License-Identifier: MIT

// Package matrix - Cholesky factorization of symmetric positive-definite matrices.
//
// Purpose:
//   - Provide the A = L·Lᵗ factor the GP sampler multiplies standard-normal draws by.
//   - Offer triangular solves reusing the factor (posterior mean without forming A⁻¹).
//
// Determinism:
//   - Fixed j→k accumulation order (Cholesky-Banachiewicz, row by row).
//
// AI-Hints:
//   - Add a small diagonal jitter (AddDiagonal) before factorizing Gram matrices;
//     rank-deficient kernels (dot-product, div-free in high d) are PSD, not PD.
package matrix

import (
	"fmt"
	"math"
)

const (
	opCholesky = "Cholesky"
	opLowerMul = "Cholesky.MulVec"
)

// CholeskyFactor holds the lower-triangular L with A = L·Lᵗ.
type CholeskyFactor struct {
	l *Dense
}

// Cholesky factorizes a symmetric positive-definite matrix.
//
// Implementation:
//   - Stage 1: ValidateSymmetric(m, DefaultEpsilon·scale) on the input.
//   - Stage 2: Row-by-row Cholesky-Banachiewicz on a flat buffer.
//
// Behavior highlights:
//   - Only the lower triangle of m is read during factorization.
//   - A non-positive or NaN diagonal term aborts with ErrNotPositiveDefinite.
//   - n == 0 returns an empty factor.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, ErrAsymmetry, ErrNotPositiveDefinite.
//
// Complexity:
//   - Time O(n³/3), Space O(n²).
func Cholesky(m Matrix) (*CholeskyFactor, error) {
	if err := ValidateSquare(m); err != nil {
		return nil, matrixErrorf(opCholesky, err)
	}
	n := m.Rows()
	a, err := newDenseZeroOK(n, n)
	if err != nil {
		return nil, matrixErrorf(opCholesky, err)
	}
	var i, j, k int
	var v float64
	if md, ok := m.(*Dense); ok {
		copy(a.data, md.data)
	} else {
		for i = 0; i < n; i++ {
			for j = 0; j < n; j++ {
				if v, err = m.At(i, j); err != nil {
					return nil, matrixErrorf(opCholesky, err)
				}
				a.data[i*n+j] = v
			}
		}
	}

	scale := 1.0
	for i = 0; i < n; i++ {
		if d := math.Abs(a.data[i*n+i]); d > scale {
			scale = d
		}
	}
	if err = ValidateSymmetric(a, DefaultEpsilon*scale); err != nil {
		return nil, matrixErrorf(opCholesky, err)
	}

	l, _ := newDenseZeroOK(n, n)
	var sum float64
	for i = 0; i < n; i++ {
		for j = 0; j <= i; j++ {
			sum = a.data[i*n+j]
			for k = 0; k < j; k++ {
				sum -= l.data[i*n+k] * l.data[j*n+k]
			}
			if i == j {
				if !(sum > 0) {
					return nil, matrixErrorf(opCholesky, fmt.Errorf("diagonal %d = %g: %w", i, sum, ErrNotPositiveDefinite))
				}
				l.data[i*n+i] = math.Sqrt(sum)
			} else {
				l.data[i*n+j] = sum / l.data[j*n+j]
			}
		}
	}

	return &CholeskyFactor{l: l}, nil
}

// MulVec returns L·z. The sampler maps iid N(0,1) draws z to N(0, A) this way.
// Errors: ErrDimensionMismatch when len(z) != n.
func (c *CholeskyFactor) MulVec(z []float64) ([]float64, error) {
	n := c.l.r
	if err := ValidateVecLen(z, n); err != nil {
		return nil, matrixErrorf(opLowerMul, err)
	}
	out := make([]float64, n)
	var i, k, base int
	var acc float64
	for i = 0; i < n; i++ {
		acc = ZeroSum
		base = i * n
		for k = 0; k <= i; k++ {
			acc += c.l.data[base+k] * z[k]
		}
		out[i] = acc
	}

	return out, nil
}
