// SPDX-License-Identifier: MIT

// Package kernel - matrix-valued kernel evaluation.
//
// Purpose:
//   - Compute the D×D covariance block k(xᵢ, yⱼ) for every pair of points.
//   - Dispatch over the closed Family enum inside one loop nest, shared by the
//     single and batched entry points.
//
// Formulas (r² = ‖xᵢ−yⱼ‖², Δ = xᵢ−yⱼ, ℓ divides r² directly):
//   - rbf:         σ²·exp(−r²/2ℓ)·B
//   - dot_product: (xᵢ·yⱼ)·B
//   - div_free:    exp(−r²/2ℓ)/ℓ · (ΔΔᵗ/ℓ + (d−1−r²/ℓ)·I_d)
//   - curl_free:   exp(−r²/2ℓ)/ℓ · (I_d − ΔΔᵗ/ℓ)
//
// AI-Hints:
//   - div_free/curl_free ignore σ² and B; B, if set, must still be d×d.
//   - Pass y == nil for the self Gram; the result is symmetric by construction.
package kernel

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/vecgp/matrix"
)

const (
	opEvaluate = "Evaluate"
	opGram     = "Gram"
	opSelfGram = "SelfGram"
	opAssemble = "Assemble"
)

// Evaluate computes the block tensor K(X, Y) of shape (n, m, D, D).
//
// Inputs:
//   - x: n×d point set; y: m×d point set, or nil to use x.
//   - cfg: validated against Config.Validate on every call.
//
// Errors (wrapped in *OpError):
//   - ErrUnsupportedKernel, ErrInvalidConfig, matrix.ErrNilMatrix.
//   - ErrDimensionMismatch when x and y differ in d, or D≠d for div_free/curl_free.
//
// Complexity:
//   - Time O(n·m·(d + D²)), Space O(n·m·D²).
func Evaluate(x, y matrix.Matrix, cfg Config) (*Blocks, error) {
	b, err := evaluate(x, y, cfg)
	if err != nil {
		return nil, err
	}
	cfg.Precision.RoundSlice(b.data)

	return b, nil
}

func evaluate(x, y matrix.Matrix, cfg Config) (*Blocks, error) {
	if err := cfg.Validate(); err != nil {
		return nil, opErr(opEvaluate, cfg.Family, err)
	}
	if err := matrix.ValidateNotNil(x); err != nil {
		return nil, opErr(opEvaluate, cfg.Family, err)
	}
	if matrix.ValidateNotNil(y) != nil {
		y = x
	}
	d := x.Cols()
	if y.Cols() != d {
		return nil, opErr(opEvaluate, cfg.Family, ErrDimensionMismatch,
			Shape("X", x.Rows(), d), Shape("Y", y.Rows(), y.Cols()))
	}
	dim := cfg.OutputDim(d)
	if cfg.Family.Structural() && dim != d {
		return nil, opErr(opEvaluate, cfg.Family, ErrDimensionMismatch,
			Shape("X", x.Rows(), d), Shape("B", dim, dim))
	}

	xs, err := pointRows(x)
	if err != nil {
		return nil, opErr(opEvaluate, cfg.Family, err)
	}
	ys := xs
	if y != x {
		if ys, err = pointRows(y); err != nil {
			return nil, opErr(opEvaluate, cfg.Family, err)
		}
	}

	out := newBlocks(len(xs), len(ys), dim)
	coupling := couplingData(cfg.B, dim)
	delta := make([]float64, d)
	l := cfg.LengthScale

	var i, j, k, q int
	var r2, s, e, diag float64
	var blk []float64
	for i = range xs {
		for j = range ys {
			blk = out.block(i, j)
			switch cfg.Family {
			case RBF:
				floats.SubTo(delta, xs[i], ys[j])
				r2 = floats.Dot(delta, delta)
				s = cfg.SigmaVar * math.Exp(-0.5*r2/l)
				floats.ScaleTo(blk, s, coupling)
			case DotProduct:
				s = floats.Dot(xs[i], ys[j])
				floats.ScaleTo(blk, s, coupling)
			case DivFree:
				floats.SubTo(delta, xs[i], ys[j])
				r2 = floats.Dot(delta, delta)
				e = math.Exp(-0.5*r2/l) / l
				diag = float64(d-1) - r2/l
				for k = 0; k < d; k++ {
					for q = 0; q < d; q++ {
						s = delta[k] * delta[q] / l
						if k == q {
							s += diag
						}
						blk[k*d+q] = e * s
					}
				}
			case CurlFree:
				floats.SubTo(delta, xs[i], ys[j])
				r2 = floats.Dot(delta, delta)
				e = math.Exp(-0.5*r2/l) / l
				for k = 0; k < d; k++ {
					for q = 0; q < d; q++ {
						s = -delta[k] * delta[q] / l
						if k == q {
							s += 1
						}
						blk[k*d+q] = e * s
					}
				}
			}
		}
	}

	return out, nil
}

// pointRows exposes each row of an n×d point set as a slice (no copy for *Dense).
func pointRows(m matrix.Matrix) ([][]float64, error) {
	n, d := m.Rows(), m.Cols()
	rows := make([][]float64, n)
	if md, ok := m.(*matrix.Dense); ok {
		var err error
		for i := 0; i < n; i++ {
			if rows[i], err = md.RowView(i); err != nil {
				return nil, err
			}
		}
		return rows, nil
	}

	flat := make([]float64, n*d)
	var v float64
	var err error
	for i := 0; i < n; i++ {
		rows[i] = flat[i*d : (i+1)*d : (i+1)*d]
		for j := 0; j < d; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, err
			}
			rows[i][j] = v
		}
	}

	return rows, nil
}

// couplingData returns B row-major, or I_dim when b is nil.
func couplingData(b *matrix.Dense, dim int) []float64 {
	if b != nil {
		return b.Flatten()
	}
	id := make([]float64, dim*dim)
	for k := 0; k < dim; k++ {
		id[k*dim+k] = 1
	}

	return id
}
