package dist

import (
	"math"

	"github.com/sparsekit/ginkgo-go"
	"github.com/sparsekit/ginkgo-go/blas"
	"github.com/sparsekit/ginkgo-go/errs"
	"github.com/sparsekit/ginkgo-go/exec"
)

// Matrix is a row-partitioned distributed sparse matrix: each rank holds
// Local, a CSR shard whose rows are exactly those RowSet names out of the
// GlobalSize-shaped logical matrix (§4.F). Comm carries out the
// collectives Apply/Gather*/Compute* need to combine per-rank results.
type Matrix struct {
	Comm       exec.Communicator
	GlobalSize errs.Dim
	RowSet     RowIndexSet
	Local      *sparse.CSR
}

// NewMatrix validates that local's shape matches RowSet and wraps it.
func NewMatrix(comm exec.Communicator, globalSize errs.Dim, rowSet RowIndexSet, local *sparse.CSR) (*Matrix, error) {
	lr, lc := local.Dims()
	if lr != rowSet.Len() {
		return nil, errs.New(errs.DimensionMismatch, "dist.NewMatrix", "local row count must equal RowSet size")
	}
	if lc != globalSize.Cols {
		return nil, errs.New(errs.DimensionMismatch, "dist.NewMatrix", "local column count must equal GlobalSize.Cols")
	}
	return &Matrix{Comm: comm, GlobalSize: globalSize, RowSet: rowSet, Local: local}, nil
}

// Apply computes out <- A*b for this rank's row shard. When replicated is
// true, b is assumed already identical on every rank (e.g. the solution
// vector in an iterative solve) and Local.Apply runs directly; when false,
// b holds only this rank's own rows and is first all-gathered into the
// full right-hand side before applying, per §4.F "direct local apply
// (replicated RHS) vs. all-gather-then-apply (partitioned RHS)".
func (m *Matrix) Apply(b *sparse.Dense, replicated bool, out *sparse.Dense) error {
	if replicated {
		return m.Local.Apply(b, out)
	}
	full, err := m.gatherDense(b)
	if err != nil {
		return err
	}
	return m.Local.Apply(full, out)
}

// gatherDense all-gathers a per-rank-owned-rows Dense vector (one column)
// into a full GlobalSize.Rows-length Dense vector available on every rank.
func (m *Matrix) gatherDense(b *sparse.Dense) (*sparse.Dense, error) {
	bRows, bCols := b.Dims().Rows, b.Dims().Cols
	if bCols != 1 {
		return nil, errs.New(errs.NotSupported, "dist.Matrix.gatherDense", "partitioned-RHS gather only supports single-column vectors")
	}
	if bRows != m.RowSet.Len() {
		return nil, errs.New(errs.DimensionMismatch, "dist.Matrix.gatherDense", "b rows must equal this rank's RowSet size")
	}
	local := make([]float64, bRows)
	for i := 0; i < bRows; i++ {
		local[i] = b.At(i, 0)
	}
	combined, err := m.Comm.AllGather(local)
	if err != nil {
		return nil, errs.Wrap(errs.MpiError, "dist.Matrix.gatherDense", "all-gather", err)
	}
	full, err := sparse.NewDenseWithStride(b.Exec(), m.GlobalSize.Rows, 1, 1, combined)
	if err != nil {
		return nil, err
	}
	return full, nil
}

// GatherOnRoot assembles this rank's owned rows of v (one column) into the
// full global vector, available on root only (nil elsewhere).
func (m *Matrix) GatherOnRoot(v *sparse.Dense, root int) ([]float64, error) {
	n := v.Dims().Rows
	local := make([]float64, n)
	for i := 0; i < n; i++ {
		local[i] = v.At(i, 0)
	}
	out, err := m.Comm.GatherV(local, root)
	if err != nil {
		return nil, errs.Wrap(errs.MpiError, "dist.Matrix.GatherOnRoot", "gatherv", err)
	}
	return out, nil
}

// GatherOnAll assembles the full global vector on every rank.
func (m *Matrix) GatherOnAll(v *sparse.Dense) ([]float64, error) {
	n := v.Dims().Rows
	local := make([]float64, n)
	for i := 0; i < n; i++ {
		local[i] = v.At(i, 0)
	}
	out, err := m.Comm.AllGather(local)
	if err != nil {
		return nil, errs.Wrap(errs.MpiError, "dist.Matrix.GatherOnAll", "all-gather", err)
	}
	return out, nil
}

// ComputeDot computes the global dot product of two row-partitioned
// vectors: each rank reduces its own rows locally via the teacher's blas
// level-1 kernels -- Dusga gathers a's (possibly strided) column into a
// packed identity-indexed slice, then Dusdot walks that slice against b's
// raw buffer at b's own stride -- then AllReduce(Sum) combines the partial
// sums (§4.F).
func (m *Matrix) ComputeDot(a, b *sparse.Dense) (float64, error) {
	if a.Dims() != b.Dims() {
		return 0, errs.New(errs.DimensionMismatch, "dist.Matrix.ComputeDot", "vector shapes must match")
	}
	n := a.Dims().Rows
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	ax := make([]float64, n)
	blas.Dusga(a.Raw(), a.Stride(), ax, idx)
	local := blas.Dusdot(ax, idx, b.Raw(), b.Stride())

	combined, err := m.Comm.AllReduce([]float64{local}, exec.Sum)
	if err != nil {
		return 0, errs.Wrap(errs.MpiError, "dist.Matrix.ComputeDot", "all-reduce", err)
	}
	return combined[0], nil
}

// ComputeNorm2 computes the global Euclidean norm of a row-partitioned
// vector via ComputeDot(v, v).
func (m *Matrix) ComputeNorm2(v *sparse.Dense) (float64, error) {
	dot, err := m.ComputeDot(v, v)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(dot), nil
}
