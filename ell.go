package sparse

import (
	"github.com/gonum/matrix/mat64"

	"github.com/sparsekit/ginkgo-go/errs"
	"github.com/sparsekit/ginkgo-go/exec"
)

var (
	_ Sparser       = (*ELL)(nil)
	_ TypeConverter = (*ELL)(nil)
)

// ELL is an ELLPACK format sparse matrix: a column-major tile of width
// MaxNNZPerRow, padded so every row occupies the same number of slots
// (§3 "ELL"). Padding entries carry ColIdx == row and Value == 0, used as an
// end-of-row sentinel by SpMV kernels (§4.D). Element (r, k) (the k'th
// stored slot of row r) lives at Values[k*Stride+r].
//
// ELL generalizes the teacher's compressedSparse addressing convention
// (row_ptrs-based CSR/CSC, see compressed.go) to a fixed-width, column-major
// layout; there is no teacher analogue since the library it is derived from
// targets only CPU arithmetic, where ELL's only advantage (regular stride
// for SIMT lockstep) does not apply.
type ELL struct {
	rows, cols    int
	stride        int
	maxNNZPerRow  int
	colIdxs       []int
	values        []float64
	bound         Executor
	workersPerRow int
}

// NewELL constructs an ELL matrix of the given shape and max non-zeros per
// row, with stride == rows (no padding between columns of the tile).
func NewELL(rows, cols, maxNNZPerRow int, colIdxs []int, values []float64) *ELL {
	if rows < 0 || cols < 0 {
		panic(errs.New(errs.OutOfBounds, "NewELL", "negative dimension"))
	}
	return &ELL{
		rows: rows, cols: cols, stride: rows, maxNNZPerRow: maxNNZPerRow,
		colIdxs: colIdxs, values: values, workersPerRow: 1,
	}
}

// Dims returns (rows, cols).
func (e *ELL) Dims() (int, int) { return e.rows, e.cols }

// MaxNNZPerRow returns the tile width.
func (e *ELL) MaxNNZPerRow() int { return e.maxNNZPerRow }

// BindExecutor binds e to exec for Apply dispatch.
func (e *ELL) BindExecutor(ex Executor) { e.bound = ex }

// SetWorkersPerRow configures the cooperative-group width used per row by
// the SpMV kernel: 1 (stream the row per-thread) up to a simulated warp
// size (§4.D "configurable workers per row").
func (e *ELL) SetWorkersPerRow(n int) {
	if n < 1 {
		n = 1
	}
	e.workersPerRow = n
}

// At returns element (i, j); O(MaxNNZPerRow).
func (e *ELL) At(i, j int) float64 {
	if uint(i) >= uint(e.rows) || uint(j) >= uint(e.cols) {
		panic(errs.New(errs.OutOfBounds, "ELL.At", "index out of range"))
	}
	for k := 0; k < e.maxNNZPerRow; k++ {
		idx := e.colIdxs[k*e.stride+i]
		if idx == i && e.values[k*e.stride+i] == 0 {
			// padding sentinel
			continue
		}
		if idx == j {
			return e.values[k*e.stride+i]
		}
	}
	return 0
}

// NNZ returns the number of non-padding stored entries.
func (e *ELL) NNZ() int {
	n := 0
	for i := 0; i < e.rows; i++ {
		for k := 0; k < e.maxNNZPerRow; k++ {
			idx := e.colIdxs[k*e.stride+i]
			v := e.values[k*e.stride+i]
			if !(idx == i && v == 0) {
				n++
			}
		}
	}
	return n
}

// DoNonZero calls fn for every stored (non-padding) entry.
func (e *ELL) DoNonZero(fn func(i, j int, v float64)) {
	for i := 0; i < e.rows; i++ {
		for k := 0; k < e.maxNNZPerRow; k++ {
			idx := e.colIdxs[k*e.stride+i]
			v := e.values[k*e.stride+i]
			if idx == i && v == 0 {
				continue
			}
			fn(i, idx, v)
		}
	}
}

// ToDense returns a mat64.Dense dense format version of the matrix.
func (e *ELL) ToDense() *mat64.Dense {
	d := mat64.NewDense(e.rows, e.cols, nil)
	e.DoNonZero(func(i, j int, v float64) { d.Set(i, j, v) })
	return d
}

// ToCOO converts to COOrdinate format.
func (e *ELL) ToCOO() *COO {
	var rows, cols []int
	var data []float64
	e.DoNonZero(func(i, j int, v float64) {
		rows = append(rows, i)
		cols = append(cols, j)
		data = append(data, v)
	})
	return NewCOO(e.rows, e.cols, rows, cols, data)
}

// ToDOK converts to Dictionary Of Keys format.
func (e *ELL) ToDOK() *DOK {
	dok := NewDOK(e.rows, e.cols)
	e.DoNonZero(func(i, j int, v float64) { dok.Set(i, j, dok.At(i, j)+v) })
	return dok
}

// ToCSR converts to CSR by a sizing pass (count non-padding entries per
// row) then a fill pass, the spec's mandatory two-phase conversion
// structure (§4.D "Conversions"), generalizing the teacher's
// coordinate.go compress/dedupe helpers.
func (e *ELL) ToCSR() *CSR {
	rowCounts := make([]int, e.rows)
	for i := 0; i < e.rows; i++ {
		for k := 0; k < e.maxNNZPerRow; k++ {
			idx := e.colIdxs[k*e.stride+i]
			v := e.values[k*e.stride+i]
			if !(idx == i && v == 0) {
				rowCounts[i]++
			}
		}
	}
	indptr := make([]int, e.rows+1)
	nnz := 0
	for i := 0; i < e.rows; i++ {
		indptr[i] = nnz
		nnz += rowCounts[i]
	}
	indptr[e.rows] = nnz

	ind := make([]int, nnz)
	data := make([]float64, nnz)
	pos := make([]int, e.rows)
	copy(pos, indptr[:e.rows])
	for i := 0; i < e.rows; i++ {
		for k := 0; k < e.maxNNZPerRow; k++ {
			idx := e.colIdxs[k*e.stride+i]
			v := e.values[k*e.stride+i]
			if idx == i && v == 0 {
				continue
			}
			ind[pos[i]] = idx
			data[pos[i]] = v
			pos[i]++
		}
	}
	return NewCSR(e.rows, e.cols, indptr, ind, data)
}

// ToCSC returns a Compressed Sparse Column version of the matrix, via CSR.
func (e *ELL) ToCSC() *CSC {
	return e.ToCSR().ToCSC()
}

// ToELL returns the receiver.
func (e *ELL) ToELL() *ELL { return e }

// ToSELLP returns a SELL-P format version of the matrix (default slice
// size), via CSR.
func (e *ELL) ToSELLP() *SELLP {
	return NewSELLPFromCSR(e.ToCSR(), DefaultSliceSize)
}

// ToHybrid returns a HYBRID format version of the matrix (automatic
// partitioning strategy), via CSR.
func (e *ELL) ToHybrid() *Hybrid {
	return NewHybridFromCSR(e.ToCSR(), HybridAutomatic)
}

// ToSparsityCSR returns the pattern-only CSR version of the matrix.
func (e *ELL) ToSparsityCSR() *SparsityCSR {
	return e.ToCSR().ToSparsityCSR()
}

// ToType returns the receiver converted to the given target format.
func (e *ELL) ToType(matType MatrixType) mat64.Matrix {
	return matType.Convert(e)
}

// NewELLFromCSR builds an ELL matrix from a from CSR source via a sizing
// kernel (max row nnz across the matrix) then a fill kernel, per §4.D.
func NewELLFromCSR(c *CSR) *ELL {
	maxNNZ := 0
	for i := 0; i < c.i; i++ {
		if n := c.indptr[i+1] - c.indptr[i]; n > maxNNZ {
			maxNNZ = n
		}
	}
	colIdxs := make([]int, maxNNZ*c.i)
	values := make([]float64, maxNNZ*c.i)
	for i := 0; i < c.i; i++ {
		k := 0
		for p := c.indptr[i]; p < c.indptr[i+1]; p, k = p+1, k+1 {
			colIdxs[k*c.i+i] = c.ind[p]
			values[k*c.i+i] = c.data[p]
		}
		for ; k < maxNNZ; k++ {
			colIdxs[k*c.i+i] = i
			values[k*c.i+i] = 0
		}
	}
	return NewELL(c.i, c.j, maxNNZ, colIdxs, values)
}

// Apply computes out <- A*b.
func (e *ELL) Apply(b, out *Dense) error {
	return e.ApplyScaled(1, b, 0, out)
}

// ApplyScaled computes out <- alpha*A*b + beta*out using the configured
// workers-per-row: with 1 worker, each row is streamed sequentially; with
// more, the row's MaxNNZPerRow slots are split across workersPerRow
// partial sums that are then reduced, modeling the spec's
// "threads cooperate in shared memory and reduce via shuffle."
func (e *ELL) ApplyScaled(alpha float64, b *Dense, beta float64, out *Dense) error {
	if e.cols != b.rows {
		return errs.New(errs.DimensionMismatch, "ELL.ApplyScaled", "A.cols must equal b.rows")
	}
	if e.rows != out.rows || b.cols != out.cols {
		return errs.New(errs.DimensionMismatch, "ELL.ApplyScaled", "out shape mismatch")
	}
	run := func() error {
		for col := 0; col < b.cols; col++ {
			for i := 0; i < e.rows; i++ {
				partials := make([]float64, e.workersPerRow)
				for k := 0; k < e.maxNNZPerRow; k++ {
					idx := e.colIdxs[k*e.stride+i]
					v := e.values[k*e.stride+i]
					if idx == i && v == 0 {
						continue
					}
					w := k % e.workersPerRow
					partials[w] += v * b.At(idx, col)
				}
				var sum float64
				for _, p := range partials {
					sum += p
				}
				out.Set(i, col, alpha*sum+beta*out.At(i, col))
			}
		}
		return nil
	}
	op := exec.NewOperation("ell_spmv", run, exec.WithCUDA(run), exec.WithHIP(run))
	if e.bound == nil {
		return run()
	}
	return e.bound.Run(op)
}
