// SPDX-License-Identifier: MIT

package gp

import (
	"fmt"

	"github.com/katalvlaran/vecgp/internal/batch"
	"github.com/katalvlaran/vecgp/kernel"
	"github.com/katalvlaran/vecgp/matrix"
)

const (
	opSmooth      = "Smooth"
	opSmoothBatch = "SmoothBatch"
)

// Smooth estimates the vector field at target points as K_tc·vec(Y_c).
//
// Implementation:
//   - Stage 1: blocks = Evaluate(X_t, X_c); estimate = Assemble(blocks)·flatten(Y_c).
//   - Stage 2 (normalize): for each target i, S_i = Σ_j block(i,j) + NormalizerJitter·I;
//     the estimate at i becomes S_i⁻¹·estimate_i.
//
// Behavior highlights:
//   - B defaults to I_D with D the label dimension.
//   - Zero context points: ErrEmptyInput when normalizing, zeros otherwise.
//   - Zero target points: an empty 0×D result.
//
// Errors (wrapped in *kernel.OpError):
//   - ErrEmptyInput, ErrDimensionMismatch, ErrSingular (with the target index),
//     plus every error of kernel.Evaluate.
//
// Complexity:
//   - Time O(n_t·n_c·D² + n_t·D³), Space O(n_t·n_c·D²).
func Smooth(xc, yc, xt matrix.Matrix, cfg kernel.Config, normalize bool) (*matrix.Dense, error) {
	inner, err := labelled(cfg, xc, yc, xt)
	if err != nil {
		return nil, opErr(opSmooth, cfg, err, shapeOf("Xc", xc), shapeOf("Yc", yc), shapeOf("Xt", xt))
	}
	nt, dim := xt.Rows(), yc.Cols()
	if xc.Rows() == 0 {
		if normalize {
			return nil, opErr(opSmooth, cfg, ErrEmptyInput, shapeOf("Xc", xc))
		}
		return matrix.NewZeros(nt, dim)
	}

	blocks, err := kernel.Evaluate(xt, xc, inner)
	if err != nil {
		return nil, err
	}
	gram, err := kernel.Assemble(blocks)
	if err != nil {
		return nil, opErr(opSmooth, cfg, err)
	}
	labels, err := flatten(yc)
	if err != nil {
		return nil, opErr(opSmooth, cfg, err)
	}
	est, err := matrix.MatVec(gram, labels)
	if err != nil {
		return nil, opErr(opSmooth, cfg, err, shapeOf("K_tc", gram))
	}

	if normalize {
		if err = normalizeEstimate(blocks, est, cfg.NormalizerJitter); err != nil {
			return nil, opErr(opSmooth, cfg, err)
		}
	}

	out, err := matrix.Reshape(est, nt, dim)
	if err != nil {
		return nil, opErr(opSmooth, cfg, err)
	}
	if err = cfg.Precision.Round(out); err != nil {
		return nil, opErr(opSmooth, cfg, err)
	}

	return out, nil
}

// normalizeEstimate left-multiplies each D-length slice of est by the inverse
// of that target's column-block sum.
func normalizeEstimate(blocks *kernel.Blocks, est []float64, jitter float64) error {
	nt, _, dim := blocks.Shape()
	var sum *matrix.Dense
	var inv matrix.Matrix
	var y []float64
	var err error
	for i := 0; i < nt; i++ {
		if sum, err = blocks.RowSum(i); err != nil {
			return err
		}
		if jitter > 0 {
			if sum, err = matrix.AddDiagonal(sum, jitter); err != nil {
				return err
			}
		}
		if inv, err = matrix.Inverse(sum); err != nil {
			return fmt.Errorf("normalizer of target %d: %w", i, err)
		}
		if y, err = matrix.MatVec(inv, est[i*dim:(i+1)*dim]); err != nil {
			return err
		}
		copy(est[i*dim:(i+1)*dim], y)
	}

	return nil
}

// SmoothBatch runs Smooth on every item of a batch with one shared Config.
// The three slices are index-aligned; failures carry the item index (*batch.ItemError).
func SmoothBatch(xcs, ycs, xts []matrix.Matrix, cfg kernel.Config, normalize bool) ([]*matrix.Dense, error) {
	if len(ycs) != len(xcs) || len(xts) != len(xcs) {
		return nil, opErr(opSmoothBatch, cfg,
			fmt.Errorf("batch sizes %d/%d/%d: %w", len(xcs), len(ycs), len(xts), ErrDimensionMismatch))
	}
	out := make([]*matrix.Dense, len(xcs))
	err := batch.Run(len(xcs), func(i int) error {
		m, err := Smooth(xcs[i], ycs[i], xts[i], cfg, normalize)
		if err != nil {
			return err
		}
		out[i] = m
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opSmoothBatch, err)
	}

	return out, nil
}
