// Package grid defines core types and sentinel errors
// for the grid subpackage of github.com/katalvlaran/vecgp.
package grid

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/vecgp/matrix"
)

// Sentinel errors for grid operations.
var (
	// ErrEmptyGrid indicates fewer than one point per axis.
	ErrEmptyGrid = errors.New("grid: grid must have at least one point per axis")
	// ErrInvalidBounds indicates non-finite bounds or max < min.
	ErrInvalidBounds = errors.New("grid: invalid bounds")
	// ErrNoInterior indicates the grid is too small for central differences (n < 3).
	ErrNoInterior = errors.New("grid: grid has no interior points")
	// ErrFieldShape indicates a field that is not N²×2 for this grid.
	// It wraps matrix.ErrDimensionMismatch.
	ErrFieldShape = fmt.Errorf("grid: field shape does not match grid: %w", matrix.ErrDimensionMismatch)
)

// Grid is an evenly spaced square grid over [Min, Max]² with N points per axis.
// Point (ix, iy) sits at (Min + ix·Step, Min + iy·Step) and has row-major
// index iy·N + ix, so x varies fastest. It is immutable once built.
type Grid struct {
	Min, Max float64
	N        int
	Step     float64
}

// Stats summarizes finite-difference diagnostics of a sampled 2-D vector field.
//
// DivRatio and CurlRatio normalize the mean absolute divergence/curl by the
// mean field norm over the same interior points; a div-free sample has a
// small DivRatio, a curl-free sample a small CurlRatio.
type Stats struct {
	Interior    int
	MeanAbsDiv  float64
	StdAbsDiv   float64
	MeanAbsCurl float64
	StdAbsCurl  float64
	MeanNorm    float64
	DivRatio    float64
	CurlRatio   float64
}
