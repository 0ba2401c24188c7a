package sparse

import (
	"math"

	"github.com/sparsekit/ginkgo-go/exec"
)

// Strategy selects the CSR SpMV kernel family and its tuning, generalizing
// the spec's {classical, load_balance, merge_path, sparselib, automatical}
// policy bundle (§4.D) as a Go sum type rather than subclass polymorphism
// (§9 design note: "implementations may use a sum type instead of
// subclass polymorphism").
type Strategy int

const (
	// Classical assigns one worker per row with a uniform loop.
	Classical Strategy = iota
	// LoadBalance precomputes SRow so nnz/worker is balanced across
	// cooperative groups, accumulating atomically where a group's range
	// spans more than one row.
	LoadBalance
	// MergePath balances non-zeros and rows per group via a merge path
	// through (row_ptrs, values).
	MergePath
	// Sparselib names the vendor sparse-BLAS strategy. This module carries
	// no vendor BLAS binding, so CSR.ApplyScaled runs Sparselib as
	// Classical; nothing is logged when it does.
	Sparselib
	// Automatical picks among the above from row-length statistics and
	// simulated device properties.
	Automatical
)

func (s Strategy) String() string {
	switch s {
	case Classical:
		return "classical"
	case LoadBalance:
		return "load_balance"
	case MergePath:
		return "merge_path"
	case Sparselib:
		return "sparselib"
	case Automatical:
		return "automatical"
	}
	return "unknown"
}

// rowLengthStats returns the mean and population standard deviation of per
// row non-zero counts, used by the Automatical tie-break.
func rowLengthStats(rowPtrs []int) (mean, stddev float64) {
	rows := len(rowPtrs) - 1
	if rows <= 0 {
		return 0, 0
	}
	total := 0
	for i := 0; i < rows; i++ {
		total += rowPtrs[i+1] - rowPtrs[i]
	}
	mean = float64(total) / float64(rows)
	var sumSq float64
	for i := 0; i < rows; i++ {
		d := float64(rowPtrs[i+1]-rowPtrs[i]) - mean
		sumSq += d * d
	}
	stddev = math.Sqrt(sumSq / float64(rows))
	return mean, stddev
}

// resolveAutomatical implements the §4.D tie-break policy: prefer sparselib
// when available (i.e. bound to a device executor) and the matrix exceeds a
// size threshold; otherwise load_balance when nnz/row is highly variable
// (stddev exceeds the mean), else classical.
func resolveAutomatical(rowPtrs []int, e exec.Executor, sparselibThreshold int) Strategy {
	nnz := 0
	if len(rowPtrs) > 0 {
		nnz = rowPtrs[len(rowPtrs)-1]
	}
	isDevice := e != nil && (e.Kind() == exec.CUDAKind || e.Kind() == exec.HIPKind)
	if isDevice && nnz > sparselibThreshold {
		return Sparselib
	}
	mean, stddev := rowLengthStats(rowPtrs)
	if mean > 0 && stddev > mean {
		return LoadBalance
	}
	return Classical
}

// defaultSparselibThreshold is the nnz above which Automatical prefers
// Sparselib on a device executor, per §4.D's "matrix size exceeds a
// threshold" tie-break; the exact value is an implementation policy choice
// since the spec leaves it unspecified.
const defaultSparselibThreshold = 1 << 16
