// SPDX-License-Identifier: MIT

// Package matrix offers the dense linear-algebra layer under the kernel and gp packages.
//
// The matrix package provides:
//
//   - Dense, a row-major float64 matrix with error-returning accessors, no-copy
//     row views and block windows (View) used to fill Gram matrices block by block.
//   - Add, Sub, Mul, Transpose, Scale and MatVec with *Dense fast-paths.
//   - LU with partial pivoting and a relative singularity threshold; Inverse on top of it.
//   - Cholesky for symmetric positive-definite matrices, used to draw GP samples.
//   - Precision, the float64/float32 switch for reported results.
//
// Empty shapes are legal wherever a zero-point GP input can reach them
// (NewZeros, NewFromData, Mul, Transpose); the strict NewDense still rejects them.
//
// All sentinels live in errors.go and are matched with errors.Is.
package matrix
