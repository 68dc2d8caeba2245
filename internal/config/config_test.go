// SPDX-License-Identifier: MIT
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/vecgp/grid"
	"github.com/katalvlaran/vecgp/internal/dataset"
	"github.com/katalvlaran/vecgp/internal/logutil"
	"github.com/katalvlaran/vecgp/kernel"
	"github.com/katalvlaran/vecgp/matrix"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vecgp.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeFile(t, `
seed    = 42
samples = 3

[kernel]
family       = "curl-free"
length-scale = 0.5
precision    = "float32"

[grid]
min = -0.5
max = 0.5
n   = 4

[output]
path = "out/fields.parquet"

[log]
level  = "debug"
format = "json"
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, uint64(42), cfg.Seed)
	require.Equal(t, 3, cfg.Samples)
	require.Equal(t, Default().Noise, cfg.Noise, "untouched section keeps defaults")
	require.Equal(t, "json", cfg.Log.Format)

	kc, err := cfg.Kernel.Build()
	require.NoError(t, err)
	require.Equal(t, kernel.CurlFree, kc.Family)
	require.Equal(t, 0.5, kc.LengthScale)
	require.Equal(t, kernel.DefaultSigmaVar, kc.SigmaVar)
	require.Equal(t, matrix.Float32, kc.Precision)

	g, err := cfg.Grid.Build()
	require.NoError(t, err)
	require.Equal(t, 16, g.Len())

	f, err := cfg.Output.ResolveFormat()
	require.NoError(t, err)
	require.Equal(t, dataset.Parquet, f)
}

func TestLoadCoupling(t *testing.T) {
	path := writeFile(t, `
[kernel]
family   = "rbf"
coupling = [[2.0, 0.5, 0.0], [0.5, 1.0, 0.0], [0.0, 0.0, 1.0]]
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	kc, err := cfg.Kernel.Build()
	require.NoError(t, err)
	require.Equal(t, 3, kc.OutputDim(2))
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want error
	}{
		{"unknown key", "sampels = 3\n", ErrInvalid},
		{"samples", "samples = 0\n", ErrInvalid},
		{"family", "[kernel]\nfamily = \"matern\"\n", kernel.ErrUnsupportedKernel},
		{"length scale", "[kernel]\nlength-scale = 0.0\n", kernel.ErrInvalidConfig},
		{"coupling", "[kernel]\ncoupling = [[1.0, 0.0]]\n", matrix.ErrNonSquare},
		{"precision", "[kernel]\nprecision = \"half\"\n", matrix.ErrUnknownPrecision},
		{"grid", "[grid]\nn = 0\n", grid.ErrEmptyGrid},
		{"bounds", "[grid]\nmin = 1.0\nmax = -1.0\n", grid.ErrInvalidBounds},
		{"noise", "[noise]\nobs = -0.1\n", ErrInvalid},
		{"stride", "[infer]\nstride = 0\n", ErrInvalid},
		{"output format", "[output]\npath = \"fields.txt\"\n", dataset.ErrUnknownFormat},
		{"log", "[log]\nlevel = \"loud\"\n", logutil.ErrInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.body))
			require.ErrorIs(t, err, tt.want)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
}
