package exec

import "github.com/sparsekit/ginkgo-go/errs"

// DenseOperand is the minimal shape a LinOp's apply operands must satisfy:
// a dense matrix with element access by (row, col). Package sparse's Dense
// type implements this; it is declared here (rather than imported from sparse)
// so the abstract LinOp contract in this package has no dependency on any
// concrete matrix implementation, avoiding an import cycle (package sparse
// depends on exec, not the reverse).
type DenseOperand interface {
	Dims() errs.Dim
	At(r, c int) float64
	Set(r, c int, v float64)
}

// LinOp is the abstract operator contract: dimensions, apply, scaled apply
// and clone. Transposition and permutation are not part of it. No type in
// this module implements LinOp: the matrix formats and dist.Matrix take
// *sparse.Dense operands in Apply/ApplyScaled and have no CloneTo, and the
// permutations are package-level functions over *sparse.CSR
// (permutation.go).
type LinOp interface {
	// Dims returns the operator's (rows, cols).
	Dims() errs.Dim
	// Apply computes c <- A*b.
	Apply(b, c DenseOperand) error
	// ApplyScaled computes c <- alpha*A*b + beta*c.
	ApplyScaled(alpha float64, b DenseOperand, beta float64, c DenseOperand) error
	// CloneTo returns a deep copy of the receiver bound to e.
	CloneTo(e Executor) LinOp
}
