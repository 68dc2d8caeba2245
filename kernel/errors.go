// SPDX-License-Identifier: MIT

package kernel

import (
	"errors"
	"fmt"
	"strings"

	"github.com/katalvlaran/vecgp/matrix"
)

var (
	// ErrUnsupportedKernel is returned for a family name or value outside the closed enum.
	ErrUnsupportedKernel = errors.New("kernel: unsupported kernel family")

	// ErrDimensionMismatch covers D≠d for div-free/curl-free, X/Y input dimensions
	// that differ, and point/label count mismatches. It is the matrix sentinel,
	// so errors.Is matches across both packages.
	ErrDimensionMismatch = matrix.ErrDimensionMismatch

	// ErrInvalidConfig signals a hyperparameter outside its domain
	// (ℓ ≤ 0, σ² < 0, negative jitter, non-finite values, non-square B).
	ErrInvalidConfig = errors.New("kernel: invalid configuration")
)

// OpError reports which operation failed, for which family, on which shapes.
// Unwrap exposes the underlying sentinel for errors.Is.
type OpError struct {
	Op     string
	Family Family
	Shapes []string
	Err    error
}

func (e *OpError) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	b.WriteString("[")
	b.WriteString(e.Family.String())
	if len(e.Shapes) > 0 {
		b.WriteString(" ")
		b.WriteString(strings.Join(e.Shapes, " "))
	}
	b.WriteString("]: ")
	b.WriteString(e.Err.Error())

	return b.String()
}

func (e *OpError) Unwrap() error { return e.Err }

// Shape formats a matrix-like operand as name=r×c for OpError.Shapes.
func Shape(name string, rows, cols int) string {
	return fmt.Sprintf("%s=%dx%d", name, rows, cols)
}

func opErr(op string, f Family, err error, shapes ...string) error {
	return &OpError{Op: op, Family: f, Shapes: shapes, Err: err}
}
