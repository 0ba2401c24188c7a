package precond

import (
	"sort"

	"github.com/sparsekit/ginkgo-go"
	"github.com/sparsekit/ginkgo-go/errs"
)

// ISAI is a sparse approximate inverse of a triangular factor (typically
// an ILU L or U), carrying the same sparsity pattern as its source so
// Apply is a plain sparse matrix-vector product rather than a triangular
// solve (§4.G "sparse approximate inverse over a triangular factor's
// pattern").
type ISAI struct {
	m *sparse.CSR
}

// Apply computes out <- M*b, the approximate triangular solve.
func (s *ISAI) Apply(b, out *sparse.Dense) error {
	return s.m.Apply(b, out)
}

// GenerateLowerISAI builds the approximate inverse of a unit-lower-triangular
// CSR factor l: for each column j, it solves the small dense system formed
// by restricting l to the rows/columns that already appear in l's own
// sparsity pattern for that column, which remains lower triangular because
// l is, then reads off column j of that local inverse (the standard
// ISAI construction restricted to the source's own pattern, rather than a
// power-pattern extension).
func GenerateLowerISAI(l *sparse.CSR) (*ISAI, error) {
	rows, cols := l.Dims()
	if rows != cols {
		return nil, errs.New(errs.DimensionMismatch, "precond.GenerateLowerISAI", "ISAI requires a square factor")
	}

	mIndptr := make([]int, rows+1)
	var mInd []int
	var mData []float64

	colRows := make([][]int, cols)
	for i := 0; i < rows; i++ {
		ic, _ := rowSlice(l, i)
		for _, j := range ic {
			colRows[j] = append(colRows[j], i)
		}
		colRows[i] = append(colRows[i], i)
	}

	// Build column-major (row, value) entries, then re-sort into CSR order.
	type triplet struct {
		row, col int
		val      float64
	}
	var triplets []triplet

	for j := 0; j < cols; j++ {
		local := dedupeSorted(colRows[j])
		n := len(local)
		pos := make(map[int]int, n)
		for idx, r := range local {
			pos[r] = idx
		}

		dense := make([]float64, n*n)
		for a := 0; a < n; a++ {
			dense[a*n+a] = 1
		}
		for a, r := range local {
			if r == j {
				dense[a*n+a] = 1
				continue
			}
			rc, rv := rowSlice(l, r)
			for k, c := range rc {
				if idx, ok := pos[c]; ok {
					dense[a*n+idx] = rv[k]
				}
			}
			dense[a*n+a] = 1
		}

		rhs := make([]float64, n)
		rhs[pos[j]] = 1

		x, err := forwardSolveUnitLower(dense, rhs, n)
		if err != nil {
			return nil, errs.Wrap(errs.ValueMismatch, "precond.GenerateLowerISAI", "local solve", err)
		}

		for a, r := range local {
			if x[a] == 0 {
				continue
			}
			triplets = append(triplets, triplet{row: r, col: j, val: x[a]})
		}
	}

	sort.Slice(triplets, func(a, b int) bool {
		if triplets[a].row != triplets[b].row {
			return triplets[a].row < triplets[b].row
		}
		return triplets[a].col < triplets[b].col
	})

	rowStart := 0
	for i := 0; i < rows; i++ {
		for rowStart < len(triplets) && triplets[rowStart].row == i {
			mInd = append(mInd, triplets[rowStart].col)
			mData = append(mData, triplets[rowStart].val)
			rowStart++
		}
		mIndptr[i+1] = len(mInd)
	}

	return &ISAI{m: sparse.NewCSR(rows, cols, mIndptr, mInd, mData)}, nil
}

// dedupeSorted returns rows sorted ascending with duplicates removed,
// guarding against a column appearing twice in colRows (e.g. a stored
// explicit diagonal alongside the implicit one this builder always adds).
func dedupeSorted(rows []int) []int {
	sorted := append([]int(nil), rows...)
	sort.Ints(sorted)
	out := sorted[:0]
	for i, r := range sorted {
		if i == 0 || r != sorted[i-1] {
			out = append(out, r)
		}
	}
	return out
}

// forwardSolveUnitLower solves m*x = rhs by forward substitution, assuming
// m (n x n, row-major) is lower triangular with unit diagonal once its rows
// are read in ascending local order -- guaranteed here because local is
// sorted ascending and l itself is lower triangular.
func forwardSolveUnitLower(m, rhs []float64, n int) ([]float64, error) {
	x := make([]float64, n)
	for i := 0; i < n; i++ {
		sum := rhs[i]
		for k := 0; k < i; k++ {
			sum -= m[i*n+k] * x[k]
		}
		diag := m[i*n+i]
		if diag == 0 {
			return nil, errs.New(errs.ValueMismatch, "forwardSolveUnitLower", "zero diagonal")
		}
		x[i] = sum / diag
	}
	return x, nil
}
