package precond

import (
	"github.com/sparsekit/ginkgo-go"
	"github.com/sparsekit/ginkgo-go/errs"
	"github.com/sparsekit/ginkgo-go/exec"
)

// ILU holds an incomplete LU factorization sharing a's sparsity pattern:
// L (unit lower triangular, diagonal implicit) and U (upper triangular,
// including diagonal) are both CSR matrices with exactly a's non-zero
// positions split by which triangle they fall in (§4.G "fixed
// sparsity-pattern incomplete LU").
type ILU struct {
	l, u *sparse.CSR
}

// L returns the unit-lower-triangular factor (diagonal entries are 1 and
// not stored).
func (f *ILU) L() *sparse.CSR { return f.l }

// U returns the upper-triangular factor, diagonal included.
func (f *ILU) U() *sparse.CSR { return f.u }

// Factorize computes ILU(0): for each row i in order, every position
// (i, j) keeps a's sparsity pattern, with off-diagonal lower entries
// divided by the pivot and both triangles updated by the running row-dot
// product against previously-factored rows, the classical sequential
// ILU(0) sweep.
func Factorize(a *sparse.CSR) (*ILU, error) {
	rows, cols := a.Dims()
	if rows != cols {
		return nil, errs.New(errs.DimensionMismatch, "precond.Factorize", "ILU requires a square matrix")
	}

	work := make([]float64, cols)
	present := make([]bool, cols)

	lIndptr := []int{0}
	uIndptr := []int{0}
	var lInd []int
	var lData []float64
	var uInd []int
	var uData []float64

	for i := 0; i < rows; i++ {
		rowCols, rowVals := rowSlice(a, i)
		for k, c := range rowCols {
			work[c] = rowVals[k]
			present[c] = true
		}

		for _, j := range rowCols {
			if j >= i {
				break
			}
			pivot := diagOf(uInd, uData, uIndptr, j)
			if pivot == 0 {
				return nil, errs.New(errs.ValueMismatch, "precond.Factorize", "zero pivot")
			}
			factor := work[j] / pivot
			work[j] = factor

			uCols, uVals := rowSliceBuilt(uInd, uData, uIndptr, j)
			for k, col := range uCols {
				if col <= j {
					continue
				}
				if !present[col] {
					continue
				}
				work[col] -= factor * uVals[k]
			}
		}

		for _, j := range rowCols {
			if j < i {
				lInd = append(lInd, j)
				lData = append(lData, work[j])
			}
		}
		lIndptr = append(lIndptr, len(lInd))

		for _, j := range rowCols {
			if j >= i {
				uInd = append(uInd, j)
				uData = append(uData, work[j])
			}
		}
		uIndptr = append(uIndptr, len(uInd))

		for _, c := range rowCols {
			present[c] = false
			work[c] = 0
		}
	}

	l := sparse.NewCSR(rows, cols, lIndptr, lInd, lData)
	u := sparse.NewCSR(rows, cols, uIndptr, uInd, uData)
	return &ILU{l: l, u: u}, nil
}

func rowSliceBuilt(ind []int, data []float64, indptr []int, row int) ([]int, []float64) {
	start, end := indptr[row], indptr[row+1]
	return ind[start:end], data[start:end]
}

func diagOf(ind []int, data []float64, indptr []int, row int) float64 {
	start, end := indptr[row], indptr[row+1]
	for k := start; k < end; k++ {
		if ind[k] == row {
			return data[k]
		}
	}
	return 0
}

// ParILU computes ILU(0) for the same fixed sparsity pattern as Factorize,
// but via the parallel fixed-point sweep (Chow & Patel): starting from A's
// own entries, every (i, j) position is repeatedly recomputed from the
// other entries of the CURRENT L/U factors:
//
//	l[i][j] = (a[i][j] - sum_{k<j} l[i][k]*u[k][j]) / u[j][j]   (j < i)
//	u[i][j] =  a[i][j] - sum_{k<i} l[i][k]*u[k][j]              (j >= i)
//
// dispatched across host workers each sweep, until no entry changes by
// more than tol, matching §4.G's "parallel fixed-point Newton sweep" (the
// update is linear rather than Newton's-method nonlinear, but the
// fixed-point-iteration structure is the same).
func ParILU(host *exec.HostExecutor, a *sparse.CSR, maxSweeps int, tol float64) (*ILU, error) {
	rows, cols := a.Dims()
	if rows != cols {
		return nil, errs.New(errs.DimensionMismatch, "precond.ParILU", "ILU requires a square matrix")
	}

	lIndptr, uIndptr := []int{0}, []int{0}
	var lInd, uInd []int
	var lData, uData []float64
	for i := 0; i < rows; i++ {
		rowCols, rowVals := rowSlice(a, i)
		for k, j := range rowCols {
			if j < i {
				lInd = append(lInd, j)
				lData = append(lData, rowVals[k])
			} else {
				v := rowVals[k]
				if j == i && v == 0 {
					v = 1
				}
				uInd = append(uInd, j)
				uData = append(uData, v)
			}
		}
		lIndptr = append(lIndptr, len(lInd))
		uIndptr = append(uIndptr, len(uInd))
	}

	rangeFn := func(low, high int, fn func(low, high int)) { fn(low, high) }
	if host != nil {
		rangeFn = host.ParallelRange
	}

	for sweep := 0; sweep < maxSweeps; sweep++ {
		deltas := make([]float64, rows)
		rangeFn(0, rows, func(lo, hi int) {
			for i := lo; i < hi; i++ {
				for k := lIndptr[i]; k < lIndptr[i+1]; k++ {
					j := lInd[k]
					var sum float64
					for m := lIndptr[i]; m < k; m++ {
						sum += lData[m] * entryAt(uInd, uData, uIndptr, lInd[m], j)
					}
					pivot := diagOf(uInd, uData, uIndptr, j)
					var newVal float64
					if pivot != 0 {
						newVal = (a.At(i, j) - sum) / pivot
					}
					if d := absDiff(newVal, lData[k]); d > deltas[i] {
						deltas[i] = d
					}
					lData[k] = newVal
				}
				for k := uIndptr[i]; k < uIndptr[i+1]; k++ {
					j := uInd[k]
					var sum float64
					for m := lIndptr[i]; m < lIndptr[i+1]; m++ {
						sum += lData[m] * entryAt(uInd, uData, uIndptr, lInd[m], j)
					}
					newVal := a.At(i, j) - sum
					if d := absDiff(newVal, uData[k]); d > deltas[i] {
						deltas[i] = d
					}
					uData[k] = newVal
				}
			}
		})
		maxDelta := 0.0
		for _, d := range deltas {
			if d > maxDelta {
				maxDelta = d
			}
		}
		if maxDelta < tol {
			break
		}
	}

	l := sparse.NewCSR(rows, cols, lIndptr, lInd, lData)
	u := sparse.NewCSR(rows, cols, uIndptr, uInd, uData)
	return &ILU{l: l, u: u}, nil
}

// entryAt returns the value at (row, col) in a CSR-shaped (ind, data,
// indptr) triple, or 0 if col is not in row's pattern.
func entryAt(ind []int, data []float64, indptr []int, row, col int) float64 {
	for k := indptr[row]; k < indptr[row+1]; k++ {
		if ind[k] == col {
			return data[k]
		}
	}
	return 0
}

func absDiff(a, b float64) float64 {
	d := a - b
	if d < 0 {
		return -d
	}
	return d
}
