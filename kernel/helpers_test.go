// SPDX-License-Identifier: MIT
package kernel_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/vecgp/kernel"
	"github.com/katalvlaran/vecgp/matrix"
)

var allFamilies = []kernel.Family{kernel.RBF, kernel.DotProduct, kernel.DivFree, kernel.CurlFree}

// hide masks *matrix.Dense to force the At-based point reader.
type hide struct{ matrix.Matrix }

func mustPoints(t *testing.T, rows [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewFromRows(rows)
	require.NoError(t, err)

	return m
}

// randomPoints draws n points uniformly in [-2,2]^d, rejecting near-duplicates.
func randomPoints(t *testing.T, rng *rand.Rand, n, d int) *matrix.Dense {
	t.Helper()
	rows := make([][]float64, 0, n)
	for len(rows) < n {
		p := make([]float64, d)
		for k := range p {
			p[k] = 4*rng.Float64() - 2
		}
		ok := true
		for _, q := range rows {
			var r2 float64
			for k := range p {
				r2 += (p[k] - q[k]) * (p[k] - q[k])
			}
			if r2 < 0.25 {
				ok = false
				break
			}
		}
		if ok {
			rows = append(rows, p)
		}
	}

	return mustPoints(t, rows)
}

func mustConfig(t *testing.T, f kernel.Family, opts ...kernel.Option) kernel.Config {
	t.Helper()
	cfg, err := kernel.New(f, opts...)
	require.NoError(t, err)

	return cfg
}

func at(t *testing.T, m matrix.Matrix, i, j int) float64 {
	t.Helper()
	v, err := m.At(i, j)
	require.NoError(t, err)

	return v
}
