package grid

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/vecgp/matrix"
)

// Neighbor offsets used by the central differences: E, W, N, S.
var (
	offE = [2]int{1, 0}
	offW = [2]int{-1, 0}
	offN = [2]int{0, 1}
	offS = [2]int{0, -1}

	stencil = [...][2]int{offE, offW, offN, offS}
)

// interior lists, in row-major order, the cells whose whole stencil is on the grid.
func (g *Grid) interior() [][2]int {
	out := make([][2]int, 0, max(g.N-2, 0)*max(g.N-2, 0))
	for idx := 0; idx < g.Len(); idx++ {
		ix, iy := g.Coordinate(idx)
		inside := true
		for _, off := range stencil {
			if !g.InBounds(ix+off[0], iy+off[1]) {
				inside = false
				break
			}
		}
		if inside {
			out = append(out, [2]int{ix, iy})
		}
	}

	return out
}

// fieldValues copies an N²×2 field into (u, v) component slices.
func (g *Grid) fieldValues(field matrix.Matrix) (u, v []float64, err error) {
	if err = matrix.ValidateNotNil(field); err != nil {
		return nil, nil, err
	}
	if field.Rows() != g.Len() || field.Cols() != 2 {
		return nil, nil, fmt.Errorf("field %dx%d, grid %d points: %w", field.Rows(), field.Cols(), g.Len(), ErrFieldShape)
	}
	if g.N < 3 {
		return nil, nil, ErrNoInterior
	}
	u = make([]float64, g.Len())
	v = make([]float64, g.Len())
	for i := 0; i < g.Len(); i++ {
		if u[i], err = field.At(i, 0); err != nil {
			return nil, nil, err
		}
		if v[i], err = field.At(i, 1); err != nil {
			return nil, nil, err
		}
	}

	return u, v, nil
}

// partial returns the central difference of c along off at (ix,iy).
func (g *Grid) partial(c []float64, ix, iy int, plus, minus [2]int) float64 {
	hi := c[g.Index(ix+plus[0], iy+plus[1])]
	lo := c[g.Index(ix+minus[0], iy+minus[1])]

	return (hi - lo) / (2 * g.Step)
}

// Divergence estimates ∂u/∂x + ∂v/∂y at every interior point, in row-major
// order over the (N−2)×(N−2) interior.
// Errors: ErrFieldShape, ErrNoInterior, matrix.ErrNilMatrix.
func (g *Grid) Divergence(field matrix.Matrix) ([]float64, error) {
	u, v, err := g.fieldValues(field)
	if err != nil {
		return nil, fmt.Errorf("Divergence: %w", err)
	}
	cells := g.interior()
	out := make([]float64, len(cells))
	for k, c := range cells {
		out[k] = g.partial(u, c[0], c[1], offE, offW) + g.partial(v, c[0], c[1], offN, offS)
	}

	return out, nil
}

// Curl estimates the scalar 2-D curl ∂v/∂x − ∂u/∂y at every interior point.
func (g *Grid) Curl(field matrix.Matrix) ([]float64, error) {
	u, v, err := g.fieldValues(field)
	if err != nil {
		return nil, fmt.Errorf("Curl: %w", err)
	}
	cells := g.interior()
	out := make([]float64, len(cells))
	for k, c := range cells {
		out[k] = g.partial(v, c[0], c[1], offE, offW) - g.partial(u, c[0], c[1], offN, offS)
	}

	return out, nil
}

// Report computes divergence/curl statistics of one field.
func (g *Grid) Report(field matrix.Matrix) (Stats, error) {
	div, err := g.Divergence(field)
	if err != nil {
		return Stats{}, fmt.Errorf("Report: %w", err)
	}
	curl, err := g.Curl(field)
	if err != nil {
		return Stats{}, fmt.Errorf("Report: %w", err)
	}
	u, v, err := g.fieldValues(field)
	if err != nil {
		return Stats{}, fmt.Errorf("Report: %w", err)
	}

	norms := make([]float64, 0, len(div))
	for _, c := range g.interior() {
		i := g.Index(c[0], c[1])
		norms = append(norms, math.Hypot(u[i], v[i]))
	}

	s := Stats{Interior: len(div), MeanNorm: stat.Mean(norms, nil)}
	s.MeanAbsDiv, s.StdAbsDiv = meanStdAbs(div)
	s.MeanAbsCurl, s.StdAbsCurl = meanStdAbs(curl)
	if s.MeanNorm > 0 {
		s.DivRatio = s.MeanAbsDiv / s.MeanNorm
		s.CurlRatio = s.MeanAbsCurl / s.MeanNorm
	}

	return s, nil
}

func meanStdAbs(xs []float64) (mean, std float64) {
	abs := make([]float64, len(xs))
	for i, x := range xs {
		abs[i] = math.Abs(x)
	}
	if len(abs) < 2 {
		return stat.Mean(abs, nil), 0
	}

	return stat.MeanStdDev(abs, nil)
}
