// SPDX-License-Identifier: MIT
package gp_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/vecgp/gp"
	"github.com/katalvlaran/vecgp/grid"
	"github.com/katalvlaran/vecgp/kernel"
	"github.com/katalvlaran/vecgp/matrix"
)

func TestSampleDeterministic(t *testing.T) {
	x := mustRows(t, [][]float64{{0, 0}, {1, 0}, {0, 1}})
	cfg := mustConfig(t, kernel.DivFree)

	a, err := gp.Sample(x, cfg, gp.DefaultObsNoise, gp.DefaultJitter, rand.NewSource(7))
	require.NoError(t, err)
	b, err := gp.Sample(x, cfg, gp.DefaultObsNoise, gp.DefaultJitter, rand.NewSource(7))
	require.NoError(t, err)
	c, err := gp.Sample(x, cfg, gp.DefaultObsNoise, gp.DefaultJitter, rand.NewSource(8))
	require.NoError(t, err)

	requireShape(t, a, 3, 2)
	require.Equal(t, a.Flatten(), b.Flatten())
	require.NotEqual(t, a.Flatten(), c.Flatten())
}

func TestSampleCouplingSetsOutputDim(t *testing.T) {
	x := mustRows(t, [][]float64{{0, 0}, {2, 2}})
	b3, err := matrix.NewIdentity(3)
	require.NoError(t, err)
	out, err := gp.Sample(x, mustConfig(t, kernel.RBF, kernel.WithCoupling(b3)), 0, 1e-6, rand.NewSource(1))
	require.NoError(t, err)
	requireShape(t, out, 2, 3)

	empty, err := gp.Sample(emptyPoints(t, 2), mustConfig(t, kernel.RBF), 0, 1e-6, rand.NewSource(1))
	require.NoError(t, err)
	requireShape(t, empty, 0, 2)
}

func TestSampleErrors(t *testing.T) {
	x := mustRows(t, [][]float64{{0, 0}})
	cfg := mustConfig(t, kernel.RBF)

	_, err := gp.Sample(x, cfg, 0, 0, nil)
	require.ErrorIs(t, err, gp.ErrNilSource)

	_, err = gp.Sample(x, cfg, -1, 0, rand.NewSource(1))
	require.ErrorIs(t, err, gp.ErrInvalidNoise)
	_, err = gp.Sample(x, cfg, 0, math.Inf(1), rand.NewSource(1))
	require.ErrorIs(t, err, gp.ErrInvalidNoise)

	// Duplicate points without jitter: K = [[I,I],[I,I]] is singular.
	dup := mustRows(t, [][]float64{{0.5, 0.5}, {0.5, 0.5}})
	_, err = gp.Sample(dup, cfg, 0, 0, rand.NewSource(1))
	require.ErrorIs(t, err, gp.ErrNotPositiveDefinite)

	_, err = gp.Sample(dup, cfg, 0, 1e-6, rand.NewSource(1))
	require.NoError(t, err)
}

// TestSampleMarginalVariance: a single rbf point has marginal variance σ² + obs.
func TestSampleMarginalVariance(t *testing.T) {
	const draws = 4000
	x := mustRows(t, [][]float64{{0.1, 0.2}})
	cfg := mustConfig(t, kernel.RBF, kernel.WithSigmaVar(2))
	src := rand.NewSource(99)

	comp0 := make([]float64, draws)
	for i := range comp0 {
		s, err := gp.Sample(x, cfg, 0.5, 0, src)
		require.NoError(t, err)
		comp0[i] = at(t, s, 0, 0)
	}
	require.InDelta(t, 0, stat.Mean(comp0, nil), 0.1)
	require.InDelta(t, 2.5, stat.Variance(comp0, nil), 0.25)
}

func TestSampleBatch(t *testing.T) {
	xs := []matrix.Matrix{
		mustRows(t, [][]float64{{0, 0}, {1, 1}}),
		mustRows(t, [][]float64{{0, 1}}),
	}
	cfg := mustConfig(t, kernel.CurlFree)
	got, err := gp.SampleBatch(xs, cfg, 0, 1e-6, []rand.Source{rand.NewSource(1), rand.NewSource(2)})
	require.NoError(t, err)

	for i, seed := range []uint64{1, 2} {
		want, err := gp.Sample(xs[i], cfg, 0, 1e-6, rand.NewSource(seed))
		require.NoError(t, err)
		require.Equal(t, want.Flatten(), got[i].Flatten())
	}

	_, err = gp.SampleBatch(xs, cfg, 0, 1e-6, []rand.Source{rand.NewSource(1)})
	require.ErrorIs(t, err, gp.ErrDimensionMismatch)
}

// TestSampleGridDivergenceFree samples fields on a 5×5 grid and compares the
// finite-difference divergence to the field magnitude: small for div_free,
// of order one for rbf.
func TestSampleGridDivergenceFree(t *testing.T) {
	const samples = 20
	g, err := grid.New(-0.5, 0.5, 5)
	require.NoError(t, err)

	ratio := func(f kernel.Family, seed uint64) float64 {
		src := rand.NewSource(seed)
		var div, norm float64
		for s := 0; s < samples; s++ {
			pts, field, err := gp.SampleGrid(g, mustConfig(t, f), 1e-8, 1e-6, src)
			require.NoError(t, err)
			requireShape(t, pts, 25, 2)
			requireShape(t, field, 25, 2)
			st, err := g.Report(field)
			require.NoError(t, err)
			div += st.MeanAbsDiv
			norm += st.MeanNorm
		}
		return div / norm
	}

	require.Less(t, ratio(kernel.DivFree, 11), 0.2)
	require.Greater(t, ratio(kernel.RBF, 11), 0.5)
}

func TestSampleGridCurlFree(t *testing.T) {
	g, err := grid.New(-0.5, 0.5, 5)
	require.NoError(t, err)
	src := rand.NewSource(3)

	var curl, norm float64
	for s := 0; s < 10; s++ {
		_, field, err := gp.SampleGrid(g, mustConfig(t, kernel.CurlFree), 1e-8, 1e-6, src)
		require.NoError(t, err)
		st, err := g.Report(field)
		require.NoError(t, err)
		curl += st.MeanAbsCurl
		norm += st.MeanNorm
	}
	require.Less(t, curl/norm, 0.2)

	_, _, err = gp.SampleGrid(nil, mustConfig(t, kernel.RBF), 0, 0, src)
	require.ErrorIs(t, err, grid.ErrEmptyGrid)
}
