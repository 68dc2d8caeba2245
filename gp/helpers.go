// SPDX-License-Identifier: MIT

package gp

import (
	"fmt"
	"math"

	"github.com/katalvlaran/vecgp/kernel"
	"github.com/katalvlaran/vecgp/matrix"
)

func opErr(op string, cfg kernel.Config, err error, shapes ...string) error {
	return &kernel.OpError{Op: op, Family: cfg.Family, Shapes: shapes, Err: err}
}

func shapeOf(name string, m matrix.Matrix) string {
	if matrix.ValidateNotNil(m) != nil {
		return name + "=nil"
	}

	return kernel.Shape(name, m.Rows(), m.Cols())
}

// flatten returns m row-major (point-major, component-minor for labels).
func flatten(m matrix.Matrix) ([]float64, error) {
	if md, ok := m.(*matrix.Dense); ok {
		return md.Flatten(), nil
	}
	r, c := m.Rows(), m.Cols()
	out := make([]float64, r*c)
	var v float64
	var err error
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, err
			}
			out[i*c+j] = v
		}
	}

	return out, nil
}

func checkNoise(name string, v float64) error {
	if !(v >= 0) || math.IsInf(v, 0) {
		return fmt.Errorf("%s %g: %w", name, v, ErrInvalidNoise)
	}

	return nil
}

// labelled validates a (points, labels) pair and ties B to the label dimension.
// The returned Config computes in float64; callers round with the caller's precision.
func labelled(cfg kernel.Config, xc, yc, xt matrix.Matrix) (kernel.Config, error) {
	for _, m := range []matrix.Matrix{xc, yc, xt} {
		if err := matrix.ValidateFinite(m); err != nil {
			return cfg, err
		}
	}
	if xc.Rows() != yc.Rows() {
		return cfg, fmt.Errorf("%d context points, %d labels: %w", xc.Rows(), yc.Rows(), ErrDimensionMismatch)
	}
	if xc.Cols() != xt.Cols() {
		return cfg, fmt.Errorf("context d=%d, target d=%d: %w", xc.Cols(), xt.Cols(), ErrDimensionMismatch)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	dim := yc.Cols()
	inner, err := cfg.WithDefaultCoupling(dim)
	if err != nil {
		return cfg, err
	}
	if inner.B.Rows() != dim {
		return cfg, fmt.Errorf("B is %dx%d, labels have D=%d: %w", inner.B.Rows(), inner.B.Cols(), dim, ErrDimensionMismatch)
	}
	inner.Precision = matrix.Float64

	return inner, nil
}
