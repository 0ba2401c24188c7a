package sparse

import (
	"sort"

	"github.com/sparsekit/ginkgo-go/errs"
)

// MatrixData is the matrix-market-style triple form described by
// Matrix::read/write in the external interface: a size plus a flat list of
// (row, col, value) non-zero entries, with no ordering or format commitment.
// It is the interchange format external collaborators (solvers, file
// readers) use to hand a matrix to, or pull a matrix out of, this package
// without depending on any particular storage layout.
type MatrixData struct {
	Size   errs.Dim
	Rows   []int
	Cols   []int
	Values []float64
}

// ReadMatrixData builds a CSR matrix from triple-form matrix data. Entries
// need not be sorted: they are grouped by row while compressing to CSR
// (via NewCOO and COO.ToCSR); within a row, columns keep their input order
// and are not sorted. Duplicate (row, col) pairs are summed, matching the
// dedupe rule in coordinate.go.
func ReadMatrixData(md MatrixData) (*CSR, error) {
	if len(md.Rows) != len(md.Cols) || len(md.Rows) != len(md.Values) {
		return nil, errs.New(errs.ValueMismatch, "sparse.ReadMatrixData", "rows/cols/values length mismatch")
	}
	if !md.Size.Valid() {
		return nil, errs.New(errs.DimensionMismatch, "sparse.ReadMatrixData", "negative size")
	}
	for k := range md.Rows {
		r, c := md.Rows[k], md.Cols[k]
		if r < 0 || r >= md.Size.Rows || c < 0 || c >= md.Size.Cols {
			return nil, errs.New(errs.OutOfBounds, "sparse.ReadMatrixData", "triple index outside matrix size")
		}
	}

	coo := NewCOO(md.Size.Rows, md.Size.Cols, append([]int(nil), md.Rows...), append([]int(nil), md.Cols...), append([]float64(nil), md.Values...))
	return coo.ToCSR(), nil
}

// WriteMatrixData flattens any TypeConverter into triple form by pivoting
// through ToCSR, the same delegation every new format in this package
// already uses for conversions it doesn't implement directly.
func WriteMatrixData(m TypeConverter) MatrixData {
	csr := m.ToCSR()
	rows, cols := csr.Dims()
	md := MatrixData{
		Size:   errs.Dim{Rows: rows, Cols: cols},
		Rows:   make([]int, 0, csr.NNZ()),
		Cols:   make([]int, 0, csr.NNZ()),
		Values: make([]float64, 0, csr.NNZ()),
	}
	for i := 0; i < rows; i++ {
		for k := csr.indptr[i]; k < csr.indptr[i+1]; k++ {
			md.Rows = append(md.Rows, i)
			md.Cols = append(md.Cols, csr.ind[k])
			md.Values = append(md.Values, csr.data[k])
		}
	}
	return md
}

// SortTriples orders a MatrixData's entries by (row, col) in place, the
// canonical order WriteMatrixData already produces from a CSR source.
// Callers that build MatrixData by hand (e.g. a file reader) can call this
// before ReadMatrixData to get a deterministic diff against round-tripped
// output, though ReadMatrixData itself does not require pre-sorted input.
func SortTriples(md *MatrixData) {
	n := len(md.Rows)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool {
		ia, ib := idx[a], idx[b]
		if md.Rows[ia] != md.Rows[ib] {
			return md.Rows[ia] < md.Rows[ib]
		}
		return md.Cols[ia] < md.Cols[ib]
	})
	rows := make([]int, n)
	cols := make([]int, n)
	vals := make([]float64, n)
	for i, j := range idx {
		rows[i], cols[i], vals[i] = md.Rows[j], md.Cols[j], md.Values[j]
	}
	md.Rows, md.Cols, md.Values = rows, cols, vals
}
