// SPDX-License-Identifier: MIT

package gp

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/katalvlaran/vecgp/grid"
	"github.com/katalvlaran/vecgp/internal/batch"
	"github.com/katalvlaran/vecgp/kernel"
	"github.com/katalvlaran/vecgp/matrix"
)

const (
	opSample      = "Sample"
	opSampleBatch = "SampleBatch"
	opSampleGrid  = "SampleGrid"
)

// Defaults of the sampler's numerical knobs.
const (
	// DefaultJitter is added to the self-Gram diagonal before Cholesky.
	DefaultJitter = 1e-4
	// DefaultObsNoise is the variance of the iid observation noise added to a draw.
	DefaultObsNoise = 1e-4
)

// Sample draws one joint sample of a zero-mean GP at the points of x.
//
// Implementation:
//   - Stage 1: K = SelfGram(x, cfg, jitter); L = Cholesky(K).
//   - Stage 2: z ~ N(0, I_{nD}), then z′ ~ N(0, I_{nD}) from the same source;
//     y = L·z + √obsNoise·z′, reshaped to n×D.
//
// Behavior highlights:
//   - B defaults to I_d, so D = d unless cfg.B says otherwise.
//   - The same source state always yields the same sample.
//   - Zero points yield an empty 0×D sample without consuming randomness.
//
// Errors (wrapped in *kernel.OpError):
//   - ErrNilSource, ErrInvalidNoise, ErrNotPositiveDefinite, plus kernel.Evaluate errors.
//
// Complexity:
//   - Time O((nD)³/3) for the factorization, Space O((nD)²).
func Sample(x matrix.Matrix, cfg kernel.Config, obsNoise, jitter float64, src rand.Source) (*matrix.Dense, error) {
	if src == nil {
		return nil, opErr(opSample, cfg, ErrNilSource)
	}
	if err := checkNoise("obs noise", obsNoise); err != nil {
		return nil, opErr(opSample, cfg, err)
	}
	if err := checkNoise("jitter", jitter); err != nil {
		return nil, opErr(opSample, cfg, err)
	}
	if err := matrix.ValidateNotNil(x); err != nil {
		return nil, opErr(opSample, cfg, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, opErr(opSample, cfg, err)
	}
	n, dim := x.Rows(), cfg.OutputDim(x.Cols())
	if n == 0 {
		return matrix.NewZeros(0, dim)
	}

	inner := cfg
	inner.Precision = matrix.Float64
	gram, err := kernel.SelfGram(x, inner, jitter)
	if err != nil {
		return nil, err
	}
	chol, err := matrix.Cholesky(gram)
	if err != nil {
		return nil, opErr(opSample, cfg, err, shapeOf("K", gram))
	}

	normal := distuv.Normal{Mu: 0, Sigma: 1, Src: src}
	size := n * dim
	z := make([]float64, size)
	for i := range z {
		z[i] = normal.Rand()
	}
	y, err := chol.MulVec(z)
	if err != nil {
		return nil, opErr(opSample, cfg, err)
	}
	scale := math.Sqrt(obsNoise)
	for i := range y {
		y[i] += scale * normal.Rand()
	}

	out, err := matrix.Reshape(y, n, dim)
	if err != nil {
		return nil, opErr(opSample, cfg, err)
	}
	if err = cfg.Precision.Round(out); err != nil {
		return nil, opErr(opSample, cfg, err)
	}

	return out, nil
}

// SampleGrid draws a vector field on every point of g.
// It returns the N²×2 point set and the N²×D field, index-aligned.
func SampleGrid(g *grid.Grid, cfg kernel.Config, obsNoise, jitter float64, src rand.Source) (points, field *matrix.Dense, err error) {
	if g == nil {
		return nil, nil, opErr(opSampleGrid, cfg, grid.ErrEmptyGrid)
	}
	points = g.Points()
	if field, err = Sample(points, cfg, obsNoise, jitter, src); err != nil {
		return nil, nil, err
	}

	return points, field, nil
}

// SampleBatch draws one sample per item, item i reading only from srcs[i].
// Sources must be distinct: x/exp/rand sources are not safe for concurrent use.
func SampleBatch(xs []matrix.Matrix, cfg kernel.Config, obsNoise, jitter float64, srcs []rand.Source) ([]*matrix.Dense, error) {
	if len(srcs) != len(xs) {
		return nil, opErr(opSampleBatch, cfg,
			fmt.Errorf("%d point sets, %d sources: %w", len(xs), len(srcs), ErrDimensionMismatch))
	}
	out := make([]*matrix.Dense, len(xs))
	err := batch.Run(len(xs), func(i int) error {
		m, err := Sample(xs[i], cfg, obsNoise, jitter, srcs[i])
		if err != nil {
			return err
		}
		out[i] = m
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opSampleBatch, err)
	}

	return out, nil
}
