// SPDX-License-Identifier: MIT
package kernel_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/vecgp/kernel"
	"github.com/katalvlaran/vecgp/matrix"
)

func TestParseFamily(t *testing.T) {
	for _, f := range allFamilies {
		got, err := kernel.ParseFamily(f.String())
		require.NoError(t, err)
		require.Equal(t, f, got)
	}
	got, err := kernel.ParseFamily(" Div-Free ")
	require.NoError(t, err)
	require.Equal(t, kernel.DivFree, got)

	_, err = kernel.ParseFamily("matern")
	require.ErrorIs(t, err, kernel.ErrUnsupportedKernel)

	var f kernel.Family
	require.NoError(t, f.UnmarshalText([]byte("curl_free")))
	require.Equal(t, kernel.CurlFree, f)
	txt, err := kernel.DotProduct.MarshalText()
	require.NoError(t, err)
	require.Equal(t, "dot_product", string(txt))
	_, err = kernel.Family(9).MarshalText()
	require.ErrorIs(t, err, kernel.ErrUnsupportedKernel)
}

func TestNewDefaults(t *testing.T) {
	cfg := mustConfig(t, kernel.RBF)
	require.Equal(t, kernel.DefaultLengthScale, cfg.LengthScale)
	require.Equal(t, kernel.DefaultSigmaVar, cfg.SigmaVar)
	require.Equal(t, kernel.DefaultNormalizerJitter, cfg.NormalizerJitter)
	require.Equal(t, matrix.Float64, cfg.Precision)
	require.Nil(t, cfg.B)
	require.Equal(t, 3, cfg.OutputDim(3))
}

func TestNewRejectsInvalid(t *testing.T) {
	cases := map[string]struct {
		family kernel.Family
		opts   []kernel.Option
		want   error
	}{
		"unknown family":    {kernel.Family(-1), nil, kernel.ErrUnsupportedKernel},
		"zero length scale": {kernel.RBF, []kernel.Option{kernel.WithLengthScale(0)}, kernel.ErrInvalidConfig},
		"nan length scale":  {kernel.RBF, []kernel.Option{kernel.WithLengthScale(math.NaN())}, kernel.ErrInvalidConfig},
		"negative sigma":    {kernel.RBF, []kernel.Option{kernel.WithSigmaVar(-1)}, kernel.ErrInvalidConfig},
		"negative jitter":   {kernel.RBF, []kernel.Option{kernel.WithNormalizerJitter(-1e-3)}, kernel.ErrInvalidConfig},
		"bad precision":     {kernel.RBF, []kernel.Option{kernel.WithPrecision(matrix.Precision(7))}, matrix.ErrUnknownPrecision},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := kernel.New(tc.family, tc.opts...)
			require.ErrorIs(t, err, tc.want)
		})
	}

	nonSquare, err := matrix.NewFromRows([][]float64{{1, 0, 0}, {0, 1, 0}})
	require.NoError(t, err)
	_, err = kernel.New(kernel.RBF, kernel.WithCoupling(nonSquare))
	require.ErrorIs(t, err, matrix.ErrNonSquare)
}

func TestWithCouplingClones(t *testing.T) {
	b, err := matrix.NewIdentity(2)
	require.NoError(t, err)
	cfg := mustConfig(t, kernel.RBF, kernel.WithCoupling(b))
	require.NoError(t, b.Set(0, 0, 5))
	require.Equal(t, 1.0, at(t, cfg.B, 0, 0))

	withID, err := mustConfig(t, kernel.RBF).WithDefaultCoupling(3)
	require.NoError(t, err)
	require.Equal(t, 3, withID.OutputDim(1))
}
