// SPDX-License-Identifier: MIT

// Package matrix: numeric policy defaults.
//
// Design goals:
//   - Deterministic behavior: no global state, no implicit randomness.
//   - A single source of truth for tolerances shared by LU, Cholesky and comparisons.
package matrix

// ---------- Defaults (single source of truth) ----------

// Numeric policy.
const (
	// DefaultEpsilon is the absolute tolerance used by AllClose and symmetry checks.
	DefaultEpsilon = 1e-9

	// DefaultValidateNaNInf toggles strict finite-value validation on ingestion and Set.
	DefaultValidateNaNInf = true
)

// epsilon is the float64 machine epsilon (2^-52); LU scales it by n·max|a|.
const epsilon = 2.220446049250313e-16
