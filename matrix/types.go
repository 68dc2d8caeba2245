// SPDX-License-Identifier: MIT

// Package matrix: the Matrix interface.
// Point sets, label sets, Gram matrices and covariance factors all travel
// through this interface; *Dense is the only storage behind it.
package matrix

// Matrix is a mutable rows×cols array of float64 values.
// Shapes may be zero in either dimension (an empty point set is 0×d).
type Matrix interface {
	// Rows is the number of rows (points, for a point set).
	Rows() int

	// Cols is the number of columns (coordinates or field components).
	Cols() int

	// At reads (i, j); ErrOutOfRange outside [0,Rows)×[0,Cols).
	At(i, j int) (float64, error)

	// Set writes v at (i, j); ErrOutOfRange outside the shape.
	Set(i, j int, v float64) error

	// Clone deep-copies the matrix in O(rows*cols).
	Clone() Matrix
}
