// SPDX-License-Identifier: MIT

// Package matrix - Dense storage (row-major) & safe accessors.
//
// Purpose:
//   - Provide a cache-friendly row-major buffer with the explicit index formula i*cols + j.
//   - Guarantee safety at the public surface: At/Set return errors instead of panicking.
//   - Keep algorithmic determinism (fixed loop orders, no map iteration).
//   - Support no-copy row views (RowView) and block windows (View) for block-structured fills.
//   - Enforce a numeric policy (optional rejection of NaN/Inf) from a single source of truth.
//
// AI-Hints:
//   - Prefer fast-paths on *Dense in hot algebra (see impl_linear_algebra.go): operate on the flat data slice directly.
//   - Use View(r0,c0,h,w) to write a D×D block into a Gram matrix without copies.
//   - Point sets are n×d Dense values; labels are n×D. Row-major flattening of an
//     n×D label matrix is exactly the point-major/component-minor ordering.
//
// Complexity quicksheet:
//   - NewDense: O(r*c) zero-init; At/Set: O(1); Clone: O(r*c); View: O(1); Flatten: O(r*c).

package matrix

import (
	"fmt"
	"math"
	"strings"
)

// ---------- error context tags ----------

const (
	ctxAt      = "At"      // method tag used in error wrappers
	ctxSet     = "Set"     // method tag used in error wrappers
	ctxApply   = "Apply"   // method tag used in error wrappers
	ctxView    = "View"    // ctor tag for Dense.View
	ctxRowView = "RowView" // tag for Dense.RowView
	ctxFrom    = "NewFromData"
)

// ---------- Formatting literals  ----------
const (
	_fmtRowOpen  = "["
	_fmtRowClose = "]\n"
	_fmtSep      = ", "
)

// denseErrorf wraps an error with a uniform Dense context and callsite indices.
//
// Implementation:
//   - Stage 1: format "Dense.<method>(row,col): %w".
//
// Notes:
//   - Keep tags in constants for grep-ability and consistency.
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a concrete row-major matrix.
//   - r,c hold dimensions (rows, cols).
//   - data is a flat buffer of length r*c in row-major order (offset = i*c + j).
//   - validateNaNInf enables optional NaN/Inf rejection in Set.
type Dense struct {
	r, c           int       // row and column counts (>=0; zero allowed only for zero-OK constructors)
	data           []float64 // contiguous row-major storage (len == r*c)
	validateNaNInf bool      // numeric guard: reject NaN/Inf in Set when true
}

// Compile-time assertions for interface & fmt.Stringer conformance.
var (
	_ Matrix       = (*Dense)(nil)
	_ fmt.Stringer = (*Dense)(nil)
)

// NewDense creates an r×c zero matrix using row-major storage.
//
// Implementation:
//   - Stage 1: validate rows>0 && cols>0; else ErrInvalidDimensions.
//   - Stage 2: allocate zero-filled buffer and initialize policy.
//
// Behavior highlights:
//   - Public constructor forbids empty dimensions to avoid accidental 0×0 matrices;
//     use NewZeros when an empty shape is a legal result (e.g. zero target points).
//
// Errors:
//   - ErrInvalidDimensions (shape contract violation).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewDense(rows, cols int) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}

	return &Dense{
		r:              rows,
		c:              cols,
		data:           make([]float64, rows*cols),
		validateNaNInf: DefaultValidateNaNInf,
	}, nil
}

// newDenseZeroOK is an internal constructor that allows rows==0 or cols==0.
// Same numeric policy as the public constructor.
// Complexity: O(rows*cols).
func newDenseZeroOK(rows, cols int) (*Dense, error) {
	if rows < 0 || cols < 0 {
		return nil, ErrInvalidDimensions
	}

	return &Dense{
		r:              rows,
		c:              cols,
		data:           make([]float64, rows*cols),
		validateNaNInf: DefaultValidateNaNInf,
	}, nil
}

// NewFromData wraps a copy of data (row-major, len == rows*cols) into a Dense.
//
// Behavior highlights:
//   - Zero-sized shapes are legal (rows==0 or cols==0 with empty data).
//   - Every value must be finite under the default numeric policy.
//
// Errors:
//   - ErrInvalidDimensions (negative shape), ErrDimensionMismatch (len(data) != rows*cols),
//     ErrNaNInf (non-finite value).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewFromData(rows, cols int, data []float64) (*Dense, error) {
	m, err := newDenseZeroOK(rows, cols)
	if err != nil {
		return nil, fmt.Errorf("%s(%d,%d): %w", ctxFrom, rows, cols, err)
	}
	if len(data) != rows*cols {
		return nil, fmt.Errorf("%s(%d,%d): len=%d: %w", ctxFrom, rows, cols, len(data), ErrDimensionMismatch)
	}
	for idx, v := range data {
		if m.validateNaNInf && (math.IsNaN(v) || math.IsInf(v, 0)) {
			return nil, fmt.Errorf("%s: index %d: %w", ctxFrom, idx, ErrNaNInf)
		}
	}
	copy(m.data, data)

	return m, nil
}

// NewFromRows builds a Dense from a rectangular [][]float64 (copying values).
// An empty outer slice yields a 0×0 matrix.
//
// Errors:
//   - ErrDimensionMismatch on ragged rows, ErrNaNInf on non-finite values.
func NewFromRows(rows [][]float64) (*Dense, error) {
	if len(rows) == 0 {
		return newDenseZeroOK(0, 0)
	}
	cols := len(rows[0])
	flat := make([]float64, 0, len(rows)*cols)
	for i, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("NewFromRows: row %d has %d values, want %d: %w", i, len(row), cols, ErrDimensionMismatch)
		}
		flat = append(flat, row...)
	}

	return NewFromData(len(rows), cols, flat)
}

// Rows returns the row count. No side effects.
func (m *Dense) Rows() int { return m.r }

// Cols returns the column count. No side effects.
func (m *Dense) Cols() int { return m.c }

// Shape packs Rows() and Cols() into a single call for convenience.
func (m *Dense) Shape() (rows, cols int) { return m.r, m.c }

// indexOf computes the row-major offset or returns ErrOutOfRange.
func (m *Dense) indexOf(row, col int) (int, error) {
	if row < 0 || row >= m.r {
		return 0, ErrOutOfRange
	}
	if col < 0 || col >= m.c {
		return 0, ErrOutOfRange
	}

	// Row-major offset: i*c + j.
	return row*m.c + col, nil
}

// At returns the value at (row, col) or ErrOutOfRange.
// Complexity: O(1).
func (m *Dense) At(row, col int) (float64, error) {
	off, err := m.indexOf(row, col)
	if err != nil {
		return 0, denseErrorf(ctxAt, row, col, err)
	}

	return m.data[off], nil
}

// Set stores v at (row, col) or returns an error (bounds or numeric policy).
//
// Errors:
//   - ErrOutOfRange for bounds; ErrNaNInf for invalid numbers when the policy is on.
//
// Complexity:
//   - Time O(1), Space O(1).
func (m *Dense) Set(row, col int, v float64) error {
	off, err := m.indexOf(row, col)
	if err != nil {
		return denseErrorf(ctxSet, row, col, err)
	}
	if m.validateNaNInf && (math.IsNaN(v) || math.IsInf(v, 0)) {
		return denseErrorf(ctxSet, row, col, ErrNaNInf)
	}
	m.data[off] = v

	return nil
}

// Clone returns a deep copy (new buffer, same numeric policy).
// Complexity: O(r*c).
func (m *Dense) Clone() Matrix {
	cp := make([]float64, len(m.data))
	copy(cp, m.data)

	return &Dense{
		r:              m.r,
		c:              m.c,
		data:           cp,
		validateNaNInf: m.validateNaNInf,
	}
}

// Flatten returns a row-major copy of the values (len == r*c).
// For an n×D label matrix this is the point-major, component-minor vector
// that Gram matrices multiply against.
func (m *Dense) Flatten() []float64 {
	out := make([]float64, len(m.data))
	copy(out, m.data)

	return out
}

// RowView returns row i as a slice sharing the backing storage.
//
// Notes:
//   - Writes through the slice bypass the numeric policy; treat it as read-only
//     unless the caller owns the matrix.
//
// Errors:
//   - ErrOutOfRange when i is outside [0, Rows()).
func (m *Dense) RowView(i int) ([]float64, error) {
	if i < 0 || i >= m.r {
		return nil, fmt.Errorf("Dense.%s(%d): %w", ctxRowView, i, ErrOutOfRange)
	}

	return m.data[i*m.c : (i+1)*m.c : (i+1)*m.c], nil
}

// String HUMAN-READABLE dump of rows for diagnostics.
// Not for hot paths; intended for logs and debugging.
func (m *Dense) String() string {
	var b strings.Builder
	var i, j, base int
	for i = 0; i < m.r; i++ {
		b.WriteString(_fmtRowOpen)
		base = i * m.c
		for j = 0; j < m.c; j++ {
			b.WriteString(fmt.Sprintf("%g", m.data[base+j]))
			if j+1 < m.c {
				b.WriteString(_fmtSep)
			}
		}
		b.WriteString(_fmtRowClose)
	}

	return b.String()
}

// View creates a no-copy window [r0:r0+rows, c0:c0+cols) over the same storage.
//
// Behavior highlights:
//   - Writes via view reflect in base; policy is inherited.
//
// Errors:
//   - ErrOutOfRange when the window exceeds the base bounds.
//
// Complexity:
//   - Time O(1), Space O(1).
//
// AI-Hints:
//   - The Gram assembler writes block (i,j) through View(i*D, j*D, D, D).
func (m *Dense) View(r0, c0, rows, cols int) (*MatrixView, error) {
	if r0 < 0 || c0 < 0 || rows < 0 || cols < 0 || r0+rows > m.r || c0+cols > m.c {
		return nil, fmt.Errorf("Dense.%s(%d,%d,%d,%d): %w", ctxView, r0, c0, rows, cols, ErrOutOfRange)
	}

	return &MatrixView{
		base: m,
		r0:   r0,
		c0:   c0,
		r:    rows,
		c:    cols,
	}, nil
}

// MatrixView is a non-owning window into a Dense (shared storage).
// Not implementing Matrix interface to avoid accidental copies in ops.
type MatrixView struct {
	base *Dense // underlying storage owner
	r0   int    // top-left row offset in base
	c0   int    // top-left col offset in base
	r    int    // view height
	c    int    // view width
}

// Rows returns the number of rows in the view.
func (v *MatrixView) Rows() int { return v.r }

// Cols returns the number of columns in the view.
func (v *MatrixView) Cols() int { return v.c }

// At reads element (i,j) in the view or returns ErrOutOfRange.
func (v *MatrixView) At(i, j int) (float64, error) {
	if i < 0 || i >= v.r || j < 0 || j >= v.c {
		return 0, fmt.Errorf("MatrixView.At(%d,%d): %w", i, j, ErrOutOfRange)
	}

	return v.base.data[(v.r0+i)*v.base.c+(v.c0+j)], nil
}

// Set writes element (i,j) in the view, honoring the base numeric policy.
func (v *MatrixView) Set(i, j int, val float64) error {
	if i < 0 || i >= v.r || j < 0 || j >= v.c {
		return fmt.Errorf("MatrixView.Set(%d,%d): %w", i, j, ErrOutOfRange)
	}
	if v.base.validateNaNInf && (math.IsNaN(val) || math.IsInf(val, 0)) {
		return fmt.Errorf("MatrixView.Set(%d,%d): %w", i, j, ErrNaNInf)
	}
	v.base.data[(v.r0+i)*v.base.c+(v.c0+j)] = val

	return nil
}

// CopyRowMajor writes src (row-major, len == Rows()*Cols()) into the window.
//
// Errors:
//   - ErrDimensionMismatch when len(src) does not match the window area,
//     ErrNaNInf when the base policy rejects a value.
func (v *MatrixView) CopyRowMajor(src []float64) error {
	if len(src) != v.r*v.c {
		return fmt.Errorf("MatrixView.CopyRowMajor: len=%d want %d: %w", len(src), v.r*v.c, ErrDimensionMismatch)
	}
	var i, j, dst int
	var val float64
	for i = 0; i < v.r; i++ {
		dst = (v.r0+i)*v.base.c + v.c0
		for j = 0; j < v.c; j++ {
			val = src[i*v.c+j]
			if v.base.validateNaNInf && (math.IsNaN(val) || math.IsInf(val, 0)) {
				return fmt.Errorf("MatrixView.CopyRowMajor(%d,%d): %w", i, j, ErrNaNInf)
			}
			v.base.data[dst+j] = val
		}
	}

	return nil
}

// Do visits each element (i,j) in row-major order and calls f(i,j,v).
// Read-only visitor; stops early when f returns false.
// Complexity: O(r*c).
func (m *Dense) Do(f func(i, j int, v float64) bool) {
	var i, j, base int
	for i = 0; i < m.r; i++ {
		base = i * m.c
		for j = 0; j < m.c; j++ {
			if !f(i, j, m.data[base+j]) {
				return
			}
		}
	}
}

// Apply replaces each element with f(i,j,v) in-place.
//
// Behavior highlights:
//   - Deterministic row-major order; no extra allocations.
//   - Respects validateNaNInf (rejects NaN/±Inf when enabled).
//   - Early error aborts; elements written before the error remain updated.
//
// Complexity:
//   - Time O(r*c), Space O(1).
func (m *Dense) Apply(f func(i, j int, v float64) float64) error {
	var i, j, base int
	var nv float64
	for i = 0; i < m.r; i++ {
		base = i * m.c
		for j = 0; j < m.c; j++ {
			nv = f(i, j, m.data[base+j])
			if m.validateNaNInf && (math.IsNaN(nv) || math.IsInf(nv, 0)) {
				return denseErrorf(ctxApply, i, j, ErrNaNInf)
			}
			m.data[base+j] = nv
		}
	}

	return nil
}
