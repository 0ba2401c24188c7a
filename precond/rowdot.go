// Package precond implements the preconditioner cores used ahead of an
// iterative solve: BlockJacobi, ISAI (sparse approximate inverse) and
// ILU/ParILU (incomplete LU with a fixed sparsity pattern).
package precond

import "github.com/sparsekit/ginkgo-go"

// sparseRowDot computes the dot product of two sparse rows, given as
// parallel (column-index, value) slices truncated to columns < limit, via
// the same merge-join shape the teacher's dotSparseSparse uses for two
// Vector operands (vector.go): walk the shorter row's indices, advancing a
// cursor into the longer row's indices, and accumulate only where columns
// coincide.
//
// cholesky.go, which called two variants of this ("NoSortBefore"/"NoSort")
// that were never defined, is not part of this module (see DESIGN.md); this
// reimplements the working merge-join shape directly against CSR row slices.
func sparseRowDot(aCols []int, aVals []float64, bCols []int, bVals []float64, limit int) float64 {
	lhsCols, lhsVals, rhsCols, rhsVals := aCols, aVals, bCols, bVals
	if len(aCols) > len(bCols) {
		lhsCols, lhsVals, rhsCols, rhsVals = bCols, bVals, aCols, aVals
	}

	var result float64
	j := 0
	for k := 0; k < len(lhsCols); k++ {
		if lhsCols[k] >= limit {
			break
		}
		for j < len(rhsCols) && rhsCols[j] < lhsCols[k] {
			j++
		}
		if j >= len(rhsCols) || rhsCols[j] >= limit {
			break
		}
		if lhsCols[k] == rhsCols[j] {
			result += lhsVals[k] * rhsVals[j]
		}
	}
	return result
}

// rowSlice returns row i's (column, value) slices from a CSR's raw
// buffers.
func rowSlice(c *sparse.CSR, i int) ([]int, []float64) {
	ptrs := c.RowPtrs()
	start, end := ptrs[i], ptrs[i+1]
	return c.ColIdxs()[start:end], c.Values()[start:end]
}
