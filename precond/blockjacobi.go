package precond

import (
	"github.com/sparsekit/ginkgo-go"
	"github.com/sparsekit/ginkgo-go/errs"
)

// BlockJacobi is a block-diagonal preconditioner: the matrix's rows are
// partitioned into contiguous blocks, each block's dense diagonal
// sub-matrix is inverted, and Apply multiplies a vector's corresponding
// segment by that inverse (§4.G "BlockJacobi").
type BlockJacobi struct {
	blockStarts []int // length numBlocks+1, row offsets bounding each block
	inverses    [][]float64
}

// FindBlocks partitions [0, rows) into consecutive blocks of maxBlockSize
// rows; the last block may be shorter, and a maxBlockSize below 1 is taken
// as 1. The sparsity pattern is not inspected, so block boundaries do not
// follow the matrix's connected components.
func FindBlocks(rows, maxBlockSize int) []int {
	if maxBlockSize < 1 {
		maxBlockSize = 1
	}
	var starts []int
	for r := 0; r < rows; r += maxBlockSize {
		starts = append(starts, r)
	}
	starts = append(starts, rows)
	return starts
}

// Generate builds a BlockJacobi preconditioner for a from the given block
// partition by extracting and inverting each block's dense diagonal
// sub-matrix via Gauss-Jordan elimination.
func Generate(a *sparse.CSR, blockStarts []int) (*BlockJacobi, error) {
	numBlocks := len(blockStarts) - 1
	inverses := make([][]float64, numBlocks)
	for b := 0; b < numBlocks; b++ {
		lo, hi := blockStarts[b], blockStarts[b+1]
		size := hi - lo
		dense := make([]float64, size*size)
		for i := 0; i < size; i++ {
			for j := 0; j < size; j++ {
				dense[i*size+j] = a.At(lo+i, lo+j)
			}
		}
		inv, err := invertDense(dense, size)
		if err != nil {
			return nil, errs.Wrap(errs.ValueMismatch, "precond.Generate", "block singular", err)
		}
		inverses[b] = inv
	}
	return &BlockJacobi{blockStarts: blockStarts, inverses: inverses}, nil
}

// Apply computes out <- M^-1 * b, applying each block's inverse to its own
// segment of b independently (the blocks have no cross terms, so this is
// embarrassingly parallel across blocks -- a real device would dispatch one
// cooperative group per block).
func (bj *BlockJacobi) Apply(b, out *sparse.Dense) error {
	numBlocks := len(bj.blockStarts) - 1
	for blk := 0; blk < numBlocks; blk++ {
		lo, hi := bj.blockStarts[blk], bj.blockStarts[blk+1]
		size := hi - lo
		inv := bj.inverses[blk]
		for col := 0; col < b.Dims().Cols; col++ {
			for i := 0; i < size; i++ {
				var sum float64
				for j := 0; j < size; j++ {
					sum += inv[i*size+j] * b.At(lo+j, col)
				}
				out.Set(lo+i, col, sum)
			}
		}
	}
	return nil
}

// invertDense inverts an n x n matrix stored row-major via Gauss-Jordan
// elimination with partial pivoting.
func invertDense(m []float64, n int) ([]float64, error) {
	aug := make([]float64, n*2*n)
	for i := 0; i < n; i++ {
		copy(aug[i*2*n:i*2*n+n], m[i*n:i*n+n])
		aug[i*2*n+n+i] = 1
	}

	for col := 0; col < n; col++ {
		pivot := col
		best := aug[col*2*n+col]
		if best < 0 {
			best = -best
		}
		for r := col + 1; r < n; r++ {
			v := aug[r*2*n+col]
			if v < 0 {
				v = -v
			}
			if v > best {
				pivot, best = r, v
			}
		}
		if best == 0 {
			return nil, errs.New(errs.ValueMismatch, "invertDense", "singular block")
		}
		if pivot != col {
			for k := 0; k < 2*n; k++ {
				aug[col*2*n+k], aug[pivot*2*n+k] = aug[pivot*2*n+k], aug[col*2*n+k]
			}
		}
		pv := aug[col*2*n+col]
		for k := 0; k < 2*n; k++ {
			aug[col*2*n+k] /= pv
		}
		for r := 0; r < n; r++ {
			if r == col {
				continue
			}
			factor := aug[r*2*n+col]
			if factor == 0 {
				continue
			}
			for k := 0; k < 2*n; k++ {
				aug[r*2*n+k] -= factor * aug[col*2*n+k]
			}
		}
	}

	inv := make([]float64, n*n)
	for i := 0; i < n; i++ {
		copy(inv[i*n:i*n+n], aug[i*2*n+n:i*2*n+2*n])
	}
	return inv, nil
}
