// SPDX-License-Identifier: MIT

package kernel

import (
	"fmt"
	"math"

	"github.com/katalvlaran/vecgp/matrix"
)

// Assemble flattens a block tensor into the (n·D)×(m·D) Gram matrix.
//
// Block (i,j) lands at rows [i·D,(i+1)·D) and columns [j·D,(j+1)·D), so point i
// component k maps to row i·D+k. This is the same point-major, component-minor
// order as a row-major n×D label matrix flattened with Dense.Flatten.
//
// Complexity: O(n·m·D²).
func Assemble(b *Blocks) (*matrix.Dense, error) {
	if b == nil {
		return nil, fmt.Errorf("%s: %w", opAssemble, matrix.ErrNilMatrix)
	}
	dim := b.dim
	g, err := matrix.NewZeros(b.n*dim, b.m*dim)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opAssemble, err)
	}
	if dim == 0 {
		return g, nil
	}

	var i, j int
	var view *matrix.MatrixView
	for i = 0; i < b.n; i++ {
		for j = 0; j < b.m; j++ {
			if view, err = g.View(i*dim, j*dim, dim, dim); err != nil {
				return nil, fmt.Errorf("%s(%d,%d): %w", opAssemble, i, j, err)
			}
			if err = view.CopyRowMajor(b.block(i, j)); err != nil {
				return nil, fmt.Errorf("%s(%d,%d): %w", opAssemble, i, j, err)
			}
		}
	}

	return g, nil
}

// Disassemble is the inverse of Assemble: it cuts g into D×D blocks.
//
// Errors:
//   - matrix.ErrNilMatrix, ErrInvalidConfig for dim < 1,
//     ErrDimensionMismatch when a side of g is not a multiple of dim.
func Disassemble(g matrix.Matrix, dim int) (*Blocks, error) {
	if err := matrix.ValidateNotNil(g); err != nil {
		return nil, fmt.Errorf("Disassemble: %w", err)
	}
	if dim < 1 {
		return nil, fmt.Errorf("Disassemble(dim=%d): %w", dim, ErrInvalidConfig)
	}
	if g.Rows()%dim != 0 || g.Cols()%dim != 0 {
		return nil, fmt.Errorf("Disassemble(%dx%d, dim=%d): %w", g.Rows(), g.Cols(), dim, ErrDimensionMismatch)
	}
	b := newBlocks(g.Rows()/dim, g.Cols()/dim, dim)
	var i, j, k, l int
	var v float64
	var err error
	var blk []float64
	for i = 0; i < b.n; i++ {
		for j = 0; j < b.m; j++ {
			blk = b.block(i, j)
			for k = 0; k < dim; k++ {
				for l = 0; l < dim; l++ {
					if v, err = g.At(i*dim+k, j*dim+l); err != nil {
						return nil, fmt.Errorf("Disassemble: %w", err)
					}
					blk[k*dim+l] = v
				}
			}
		}
	}

	return b, nil
}

// Gram evaluates and assembles K(X, Y) as one (n·D)×(m·D) matrix.
// y == nil means K(X, X). Errors as in Evaluate.
func Gram(x, y matrix.Matrix, cfg Config) (*matrix.Dense, error) {
	b, err := evaluate(x, y, cfg)
	if err != nil {
		return nil, err
	}
	g, err := Assemble(b)
	if err != nil {
		return nil, opErr(opGram, cfg.Family, err)
	}
	if err = cfg.Precision.Round(g); err != nil {
		return nil, opErr(opGram, cfg.Family, err)
	}

	return g, nil
}

// SelfGram returns K(X, X) + jitter·I.
//
// Errors:
//   - ErrInvalidConfig for a negative or non-finite jitter; others as in Evaluate.
func SelfGram(x matrix.Matrix, cfg Config, jitter float64) (*matrix.Dense, error) {
	if !(jitter >= 0) || math.IsInf(jitter, 0) {
		return nil, opErr(opSelfGram, cfg.Family, fmt.Errorf("jitter %g: %w", jitter, ErrInvalidConfig))
	}
	b, err := evaluate(x, nil, cfg)
	if err != nil {
		return nil, err
	}
	g, err := Assemble(b)
	if err != nil {
		return nil, opErr(opSelfGram, cfg.Family, err)
	}
	if jitter > 0 {
		if g, err = matrix.AddDiagonal(g, jitter); err != nil {
			return nil, opErr(opSelfGram, cfg.Family, err)
		}
	}
	if err = cfg.Precision.Round(g); err != nil {
		return nil, opErr(opSelfGram, cfg.Family, err)
	}

	return g, nil
}
