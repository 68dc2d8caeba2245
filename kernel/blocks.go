// SPDX-License-Identifier: MIT

package kernel

import (
	"fmt"

	"github.com/katalvlaran/vecgp/matrix"
)

const (
	ctxBlock    = "Blocks.Block"
	ctxBlockAt  = "Blocks.At"
	ctxBlockSum = "Blocks.RowSum"
)

// Blocks is the unflattened Gram tensor of shape (n, m, D, D).
//
// Storage is one flat slice in [i][j][k][l] order: block (i,j) occupies the
// D² consecutive values starting at (i*m + j)*D², itself row-major in (k,l).
type Blocks struct {
	n, m, dim int
	data      []float64
}

func newBlocks(n, m, dim int) *Blocks {
	return &Blocks{n: n, m: m, dim: dim, data: make([]float64, n*m*dim*dim)}
}

// Shape returns (n, m, D).
func (b *Blocks) Shape() (n, m, dim int) { return b.n, b.m, b.dim }

// Data returns a copy of the flat tensor in [i][j][k][l] order.
func (b *Blocks) Data() []float64 {
	out := make([]float64, len(b.data))
	copy(out, b.data)

	return out
}

func (b *Blocks) offset(i, j int) int { return (i*b.m + j) * b.dim * b.dim }

// block returns the (i,j) block as a sub-slice of the backing storage.
func (b *Blocks) block(i, j int) []float64 {
	off := b.offset(i, j)
	size := b.dim * b.dim

	return b.data[off : off+size : off+size]
}

// Block returns a copy of block (i,j) as a D×D matrix.
func (b *Blocks) Block(i, j int) (*matrix.Dense, error) {
	if i < 0 || i >= b.n || j < 0 || j >= b.m {
		return nil, fmt.Errorf("%s(%d,%d): %w", ctxBlock, i, j, matrix.ErrOutOfRange)
	}

	return matrix.NewFromData(b.dim, b.dim, b.block(i, j))
}

// At returns entry (k,l) of block (i,j).
func (b *Blocks) At(i, j, k, l int) (float64, error) {
	if i < 0 || i >= b.n || j < 0 || j >= b.m || k < 0 || k >= b.dim || l < 0 || l >= b.dim {
		return 0, fmt.Errorf("%s(%d,%d,%d,%d): %w", ctxBlockAt, i, j, k, l, matrix.ErrOutOfRange)
	}

	return b.data[b.offset(i, j)+k*b.dim+l], nil
}

// RowSum returns Σ_j block(i,j), the D×D column-block sum for first-set point i.
// The kernel smoother inverts it to normalize the estimate at target i.
func (b *Blocks) RowSum(i int) (*matrix.Dense, error) {
	if i < 0 || i >= b.n {
		return nil, fmt.Errorf("%s(%d): %w", ctxBlockSum, i, matrix.ErrOutOfRange)
	}
	size := b.dim * b.dim
	sum := make([]float64, size)
	var j, k int
	var blk []float64
	for j = 0; j < b.m; j++ {
		blk = b.block(i, j)
		for k = 0; k < size; k++ {
			sum[k] += blk[k]
		}
	}

	return matrix.NewFromData(b.dim, b.dim, sum)
}
