// SPDX-License-Identifier: MIT

// Package gp builds on kernel Gram matrices to smooth, sample and condition
// vector-valued Gaussian processes.
//
//   - Smooth: K_tc·vec(Y), optionally normalized per target by the inverse of its
//     D×D column-block sum (a matrix Nadaraya–Watson estimator).
//   - Sample: one joint draw L·z + √obs·z′ with L the Cholesky factor of the
//     jittered self Gram; randomness comes only from the caller's rand.Source.
//   - Infer: exact posterior mean, covariance and variance at target points.
//
// Each operation has a batched form sharing one kernel.Config across items.
// Numerical failures are returned, never retried: jitter is the caller's knob.
package gp
