package sparse

import (
	"github.com/gonum/matrix/mat64"

	"github.com/sparsekit/ginkgo-go/errs"
)

var (
	_ Sparser       = (*SparsityCSR)(nil)
	_ TypeConverter = (*SparsityCSR)(nil)
)

// SparsityCSR is a pattern-only CSR matrix: it stores row pointers and
// column indices identically to CSR but no value buffer, representing
// every stored position with a single uniform scalar (§3 "SparsityCSR").
// It is used where only the non-zero pattern matters, e.g. symbolic
// factorization or graph-structure operations ahead of a numeric pass.
//
// Grounded on the teacher's compressedSparse row/col layout
// (compressed.go); this strips the value slice the way the spec's
// pattern-only format requires.
type SparsityCSR struct {
	rows, cols int
	indptr     []int
	ind        []int
	uniform    float64
}

// NewSparsityCSR constructs a pattern-only CSR from row pointers and column
// indices, with every stored position reporting uniform when read back.
func NewSparsityCSR(rows, cols int, indptr, ind []int, uniform float64) *SparsityCSR {
	return &SparsityCSR{rows: rows, cols: cols, indptr: indptr, ind: ind, uniform: uniform}
}

// NewSparsityCSRFromCSR strips the value buffer from a CSR matrix,
// keeping only its row pointers and column indices; stored positions read
// back as 1.
func NewSparsityCSRFromCSR(c *CSR) *SparsityCSR {
	indptr := make([]int, len(c.indptr))
	copy(indptr, c.indptr)
	ind := make([]int, len(c.ind))
	copy(ind, c.ind)
	return NewSparsityCSR(c.i, c.j, indptr, ind, 1)
}

// Dims returns (rows, cols).
func (s *SparsityCSR) Dims() (int, int) { return s.rows, s.cols }

// RowPtrs exposes the raw row-pointer buffer.
func (s *SparsityCSR) RowPtrs() []int { return s.indptr }

// ColIdxs exposes the raw column-index buffer.
func (s *SparsityCSR) ColIdxs() []int { return s.ind }

// At returns s.uniform if (i, j) is a stored position, else 0.
func (s *SparsityCSR) At(i, j int) float64 {
	if uint(i) >= uint(s.rows) || uint(j) >= uint(s.cols) {
		panic(errs.New(errs.OutOfBounds, "SparsityCSR.At", "index out of range"))
	}
	for k := s.indptr[i]; k < s.indptr[i+1]; k++ {
		if s.ind[k] == j {
			return s.uniform
		}
	}
	return 0
}

// NNZ returns the number of stored positions.
func (s *SparsityCSR) NNZ() int { return s.indptr[len(s.indptr)-1] }

// DoNonZero calls fn for every stored position.
func (s *SparsityCSR) DoNonZero(fn func(i, j int, v float64)) {
	for i := 0; i < s.rows; i++ {
		for k := s.indptr[i]; k < s.indptr[i+1]; k++ {
			fn(i, s.ind[k], s.uniform)
		}
	}
}

// ToDense returns a mat64.Dense dense format version of the matrix.
func (s *SparsityCSR) ToDense() *mat64.Dense {
	d := mat64.NewDense(s.rows, s.cols, nil)
	s.DoNonZero(func(i, j int, v float64) { d.Set(i, j, v) })
	return d
}

// ToCOO returns a COOrdinate sparse format version of the matrix.
func (s *SparsityCSR) ToCOO() *COO {
	nnz := s.NNZ()
	rows := make([]int, 0, nnz)
	cols := make([]int, 0, nnz)
	data := make([]float64, 0, nnz)
	s.DoNonZero(func(i, j int, v float64) {
		rows = append(rows, i)
		cols = append(cols, j)
		data = append(data, v)
	})
	return NewCOO(s.rows, s.cols, rows, cols, data)
}

// ToDOK returns a Dictionary Of Keys sparse format version of the matrix.
func (s *SparsityCSR) ToDOK() *DOK {
	dok := NewDOK(s.rows, s.cols)
	s.DoNonZero(func(i, j int, v float64) { dok.Set(i, j, v) })
	return dok
}

// ToCSR returns a CSR sparse format version of the matrix, with every
// stored position carrying s.uniform as its value.
func (s *SparsityCSR) ToCSR() *CSR {
	data := make([]float64, len(s.ind))
	for i := range data {
		data[i] = s.uniform
	}
	indptr := make([]int, len(s.indptr))
	copy(indptr, s.indptr)
	ind := make([]int, len(s.ind))
	copy(ind, s.ind)
	return NewCSR(s.rows, s.cols, indptr, ind, data)
}

// ToCSC returns a CSC sparse format version of the matrix, via CSR.
func (s *SparsityCSR) ToCSC() *CSC { return s.ToCSR().ToCSC() }

// ToELL returns an ELLPACK sparse format version of the matrix, via CSR.
func (s *SparsityCSR) ToELL() *ELL { return s.ToCSR().ToELL() }

// ToSELLP returns a SELL-P sparse format version of the matrix, via CSR.
func (s *SparsityCSR) ToSELLP() *SELLP { return s.ToCSR().ToSELLP() }

// ToHybrid returns a HYBRID sparse format version of the matrix, via CSR.
func (s *SparsityCSR) ToHybrid() *Hybrid { return s.ToCSR().ToHybrid() }

// ToSparsityCSR returns the receiver.
func (s *SparsityCSR) ToSparsityCSR() *SparsityCSR { return s }

// ToType returns the receiver converted to the given target format.
func (s *SparsityCSR) ToType(matType MatrixType) mat64.Matrix {
	return matType.Convert(s)
}

// Transpose returns the transposed sparsity pattern as a fresh
// SparsityCSR, by swapping row/column coordinates and re-compressing.
func (s *SparsityCSR) Transpose() *SparsityCSR {
	nnz := s.NNZ()
	rows := make([]int, 0, nnz)
	cols := make([]int, 0, nnz)
	data := make([]float64, 0, nnz)
	s.DoNonZero(func(i, j int, v float64) {
		rows = append(rows, j)
		cols = append(cols, i)
		data = append(data, v)
	})
	t := NewCOO(s.cols, s.rows, rows, cols, data).ToCSR()
	return NewSparsityCSRFromCSR(t)
}
