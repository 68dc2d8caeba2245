// Package grid builds regular 2-D point grids and checks sampled vector fields on them.
//
// It supports:
//
//   - Evenly spaced N×N grids over [min, max]² (linspace per axis)
//   - Row-major index mapping between (ix, iy) and point index
//   - Central-difference divergence and curl at interior points
//   - Summary statistics of those estimates (Report)
package grid

import (
	"fmt"
	"math"

	"github.com/katalvlaran/vecgp/matrix"
)

// New constructs an N×N grid over [min, max]².
// n == 1 places the single point at (min, min), like linspace.
// Returns ErrEmptyGrid if n < 1, ErrInvalidBounds for non-finite bounds or max < min.
// Complexity: O(1).
func New(min, max float64, n int) (*Grid, error) {
	if n < 1 {
		return nil, ErrEmptyGrid
	}
	if math.IsNaN(min) || math.IsNaN(max) || math.IsInf(min, 0) || math.IsInf(max, 0) || max < min {
		return nil, fmt.Errorf("New(%g, %g): %w", min, max, ErrInvalidBounds)
	}
	step := 0.0
	if n > 1 {
		step = (max - min) / float64(n-1)
	}

	return &Grid{Min: min, Max: max, N: n, Step: step}, nil
}

// Len returns the number of points, N².
func (g *Grid) Len() int { return g.N * g.N }

// InBounds reports whether (ix,iy) lies within the grid boundaries.
// Complexity: O(1).
func (g *Grid) InBounds(ix, iy int) bool {
	return ix >= 0 && ix < g.N && iy >= 0 && iy < g.N
}

// Index maps (ix,iy) to a row‑major index: iy*N + ix.
// Complexity: O(1).
func (g *Grid) Index(ix, iy int) int {
	return iy*g.N + ix
}

// Coordinate converts a row‑major index back to (ix,iy).
// Complexity: O(1).
func (g *Grid) Coordinate(idx int) (ix, iy int) {
	return idx % g.N, idx / g.N
}

// Position returns the location of point (ix,iy).
func (g *Grid) Position(ix, iy int) (x, y float64) {
	return g.Min + float64(ix)*g.Step, g.Min + float64(iy)*g.Step
}

// Points returns the N²×2 point set in row-major order.
// Complexity: O(N²) time and memory.
func (g *Grid) Points() *matrix.Dense {
	data := make([]float64, 0, 2*g.Len())
	var ix, iy int
	var x, y float64
	for iy = 0; iy < g.N; iy++ {
		for ix = 0; ix < g.N; ix++ {
			x, y = g.Position(ix, iy)
			data = append(data, x, y)
		}
	}
	// Bounds were validated in New, so every coordinate is finite.
	pts, _ := matrix.NewFromData(g.Len(), 2, data)

	return pts
}
