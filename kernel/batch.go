// SPDX-License-Identifier: MIT

package kernel

import (
	"fmt"

	"github.com/katalvlaran/vecgp/internal/batch"
	"github.com/katalvlaran/vecgp/matrix"
)

const (
	opEvaluateBatch = "EvaluateBatch"
	opGramBatch     = "GramBatch"
)

// pairAt resolves the Y operand for batch item i (nil ys or nil entry means X).
func pairAt(xs, ys []matrix.Matrix, i int) (matrix.Matrix, matrix.Matrix) {
	if ys == nil {
		return xs[i], nil
	}

	return xs[i], ys[i]
}

func checkBatch(op string, cfg Config, xs, ys []matrix.Matrix) error {
	if ys != nil && len(ys) != len(xs) {
		return opErr(op, cfg.Family, fmt.Errorf("batch sizes %d and %d: %w", len(xs), len(ys), ErrDimensionMismatch))
	}

	return nil
}

// EvaluateBatch runs Evaluate on every item of a batch with one shared Config.
// ys may be nil (self kernels) or index-aligned with xs.
// Items are independent; a failure is reported as *batch.ItemError wrapping the item's *OpError.
func EvaluateBatch(xs, ys []matrix.Matrix, cfg Config) ([]*Blocks, error) {
	if err := checkBatch(opEvaluateBatch, cfg, xs, ys); err != nil {
		return nil, err
	}
	out := make([]*Blocks, len(xs))
	err := batch.Run(len(xs), func(i int) error {
		x, y := pairAt(xs, ys, i)
		b, err := Evaluate(x, y, cfg)
		if err != nil {
			return err
		}
		out[i] = b
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opEvaluateBatch, err)
	}

	return out, nil
}

// AssembleBatch flattens every block tensor of a batch.
func AssembleBatch(bs []*Blocks) ([]*matrix.Dense, error) {
	out := make([]*matrix.Dense, len(bs))
	err := batch.Run(len(bs), func(i int) error {
		g, err := Assemble(bs[i])
		if err != nil {
			return err
		}
		out[i] = g
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("AssembleBatch: %w", err)
	}

	return out, nil
}

// GramBatch is Gram over a batch with one shared Config.
func GramBatch(xs, ys []matrix.Matrix, cfg Config) ([]*matrix.Dense, error) {
	if err := checkBatch(opGramBatch, cfg, xs, ys); err != nil {
		return nil, err
	}
	out := make([]*matrix.Dense, len(xs))
	err := batch.Run(len(xs), func(i int) error {
		x, y := pairAt(xs, ys, i)
		g, err := Gram(x, y, cfg)
		if err != nil {
			return err
		}
		out[i] = g
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opGramBatch, err)
	}

	return out, nil
}
