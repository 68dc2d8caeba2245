// SPDX-License-Identifier: MIT

package gp

import (
	"errors"

	"github.com/katalvlaran/vecgp/kernel"
	"github.com/katalvlaran/vecgp/matrix"
)

var (
	// ErrEmptyInput is returned when zero context points reach an operation that
	// must normalize or invert over them.
	ErrEmptyInput = errors.New("gp: empty context")

	// ErrNilSource is returned by the sampler when no random source is supplied.
	ErrNilSource = errors.New("gp: nil random source")

	// ErrInvalidNoise signals a negative or non-finite observation noise or jitter.
	ErrInvalidNoise = errors.New("gp: invalid noise or jitter")

	// ErrSingular re-exports matrix.ErrSingular (non-invertible K_cc or normalizer).
	ErrSingular = matrix.ErrSingular

	// ErrNotPositiveDefinite re-exports matrix.ErrNotPositiveDefinite (sampler Cholesky).
	ErrNotPositiveDefinite = matrix.ErrNotPositiveDefinite

	// ErrDimensionMismatch re-exports the shared shape sentinel.
	ErrDimensionMismatch = kernel.ErrDimensionMismatch
)
