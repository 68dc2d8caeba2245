// SPDX-License-Identifier: MIT

package gp

import (
	"fmt"

	"github.com/katalvlaran/vecgp/internal/batch"
	"github.com/katalvlaran/vecgp/kernel"
	"github.com/katalvlaran/vecgp/matrix"
)

const (
	opInfer      = "Infer"
	opInferBatch = "InferBatch"
)

// DefaultInferObsNoise is the observation noise variance used by the CLI's infer command.
const DefaultInferObsNoise = 0.1

// Posterior is the conditional distribution at the target points.
//   - Mean: n_t×D
//   - Cov:  (n_t·D)×(n_t·D), rows/cols point-major, component-minor
//   - Var:  n_t×D, the diagonal of Cov reshaped
type Posterior struct {
	Mean *matrix.Dense
	Cov  *matrix.Dense
	Var  *matrix.Dense
}

// Infer computes the exact GP posterior at xt given noisy observations (xc, yc).
//
// Implementation:
//   - K_cc = Gram(Xc,Xc) + (obsNoise+jitter)·I, K_tt = Gram(Xt,Xt) + (obsNoise+jitter)·I,
//     K_tc = Gram(Xt,Xc).
//   - K_cc is factorized once with pivoted LU; no explicit inverse is formed.
//   - Mean = K_tc·α with K_cc·α = vec(Yc).
//   - Cov = sym(K_tt − K_tc·K_cc⁻¹·K_ct), one LU solve per target row; Var = diag(Cov).
//
// Behavior highlights:
//   - B defaults to I_D with D the label dimension.
//   - Zero context points fail with ErrEmptyInput; zero target points yield
//     empty 0×D, 0×0, 0×D results.
//
// Errors (wrapped in *kernel.OpError):
//   - ErrEmptyInput, ErrInvalidNoise, ErrDimensionMismatch, ErrSingular (K_cc),
//     plus kernel.Evaluate errors.
//
// Complexity:
//   - Time O((n_c·D)³ + n_t·D·(n_c·D)² + (n_t·D)²·n_c·D), Space O((n_c·D)² + (n_t·D)²).
func Infer(xc, yc, xt matrix.Matrix, cfg kernel.Config, obsNoise, jitter float64) (*Posterior, error) {
	if err := checkNoise("obs noise", obsNoise); err != nil {
		return nil, opErr(opInfer, cfg, err)
	}
	if err := checkNoise("jitter", jitter); err != nil {
		return nil, opErr(opInfer, cfg, err)
	}
	inner, err := labelled(cfg, xc, yc, xt)
	if err != nil {
		return nil, opErr(opInfer, cfg, err, shapeOf("Xc", xc), shapeOf("Yc", yc), shapeOf("Xt", xt))
	}
	if xc.Rows() == 0 {
		return nil, opErr(opInfer, cfg, ErrEmptyInput, shapeOf("Xc", xc))
	}
	nt, dim := xt.Rows(), yc.Cols()
	noise := obsNoise + jitter

	kcc, err := kernel.SelfGram(xc, inner, noise)
	if err != nil {
		return nil, err
	}
	ktt, err := kernel.SelfGram(xt, inner, noise)
	if err != nil {
		return nil, err
	}
	ktc, err := kernel.Gram(xt, xc, inner)
	if err != nil {
		return nil, err
	}

	lu, err := matrix.LU(kcc)
	if err != nil {
		return nil, opErr(opInfer, cfg, err, shapeOf("K_cc", kcc))
	}
	labels, err := flatten(yc)
	if err != nil {
		return nil, opErr(opInfer, cfg, err)
	}
	alpha, err := lu.Solve(labels)
	if err != nil {
		return nil, opErr(opInfer, cfg, err)
	}
	meanVec, err := matrix.MatVec(ktc, alpha)
	if err != nil {
		return nil, opErr(opInfer, cfg, err)
	}

	// Row r of W is K_cc⁻¹·k_r with k_r the r-th row of K_tc, so K_tc·Wᵗ = K_tc·K_cc⁻¹·K_ct.
	rows, cols := ktc.Shape()
	w := make([]float64, 0, rows*cols)
	for r := 0; r < rows; r++ {
		kr, err := ktc.RowView(r)
		if err != nil {
			return nil, opErr(opInfer, cfg, err)
		}
		wr, err := lu.Solve(kr)
		if err != nil {
			return nil, opErr(opInfer, cfg, err)
		}
		w = append(w, wr...)
	}
	wm, err := matrix.Reshape(w, rows, cols)
	if err != nil {
		return nil, opErr(opInfer, cfg, err)
	}
	wt, err := matrix.Transpose(wm)
	if err != nil {
		return nil, opErr(opInfer, cfg, err)
	}
	explained, err := matrix.Mul(ktc, wt)
	if err != nil {
		return nil, opErr(opInfer, cfg, err)
	}
	covM, err := matrix.Sub(ktt, explained)
	if err != nil {
		return nil, opErr(opInfer, cfg, err)
	}
	if covM, err = matrix.Symmetrize(covM); err != nil {
		return nil, opErr(opInfer, cfg, err)
	}
	cov := covM.(*matrix.Dense)
	varVec, err := matrix.Diagonal(cov)
	if err != nil {
		return nil, opErr(opInfer, cfg, err)
	}

	post := &Posterior{Cov: cov}
	if post.Mean, err = matrix.Reshape(meanVec, nt, dim); err != nil {
		return nil, opErr(opInfer, cfg, err)
	}
	if post.Var, err = matrix.Reshape(varVec, nt, dim); err != nil {
		return nil, opErr(opInfer, cfg, err)
	}
	for _, m := range []*matrix.Dense{post.Mean, post.Cov, post.Var} {
		if err = cfg.Precision.Round(m); err != nil {
			return nil, opErr(opInfer, cfg, err)
		}
	}

	return post, nil
}

// InferBatch runs Infer on every item with one shared Config, obsNoise and jitter.
func InferBatch(xcs, ycs, xts []matrix.Matrix, cfg kernel.Config, obsNoise, jitter float64) ([]*Posterior, error) {
	if len(ycs) != len(xcs) || len(xts) != len(xcs) {
		return nil, opErr(opInferBatch, cfg,
			fmt.Errorf("batch sizes %d/%d/%d: %w", len(xcs), len(ycs), len(xts), ErrDimensionMismatch))
	}
	out := make([]*Posterior, len(xcs))
	err := batch.Run(len(xcs), func(i int) error {
		p, err := Infer(xcs[i], ycs[i], xts[i], cfg, obsNoise, jitter)
		if err != nil {
			return err
		}
		out[i] = p
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opInferBatch, err)
	}

	return out, nil
}
