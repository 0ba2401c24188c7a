package sparse

import "github.com/sparsekit/ginkgo-go/errs"

// PermuteMask selects which combination of row/column permutation a
// Permutation applies (§4.D "permute_mask"). The values are bit flags so a
// caller can request row-only, column-only, or symmetric permutation.
type PermuteMask int

const (
	// PermuteNone applies no permutation.
	PermuteNone PermuteMask = 0
	// PermuteRows permutes rows: out[i] = in[perm[i]].
	PermuteRows PermuteMask = 1 << iota
	// PermuteCols permutes columns: out[:,j] = in[:,perm[j]].
	PermuteCols
	// PermuteInverse applies the inverse permutation instead of perm itself.
	PermuteInverse
)

// Permutation is an index array describing a reordering of 0..n-1, used by
// row/column permute operations and by fill-reducing reorderings ahead of
// factorization (§4.D). It is the array-of-indices analogue of the
// teacher's other index buffers (CSR.indptr/ind), generalized into its own
// type since permutations are shared across every matrix format.
type Permutation struct {
	perm []int
}

// NewPermutation validates that perm is a permutation of 0..len(perm)-1
// and wraps it.
func NewPermutation(perm []int) (*Permutation, error) {
	n := len(perm)
	seen := make([]bool, n)
	for _, p := range perm {
		if uint(p) >= uint(n) {
			return nil, errs.New(errs.OutOfBounds, "NewPermutation", "index out of range")
		}
		if seen[p] {
			return nil, errs.New(errs.ValueMismatch, "NewPermutation", "duplicate index")
		}
		seen[p] = true
	}
	return &Permutation{perm: perm}, nil
}

// Len returns the permutation's size.
func (p *Permutation) Len() int { return len(p.perm) }

// At returns perm[i].
func (p *Permutation) At(i int) int { return p.perm[i] }

// Inverse returns the inverse permutation: if p maps i -> perm[i], the
// inverse maps perm[i] -> i.
func (p *Permutation) Inverse() *Permutation {
	inv := make([]int, len(p.perm))
	for i, v := range p.perm {
		inv[v] = i
	}
	return &Permutation{perm: inv}
}

// Compose returns the permutation equivalent to applying p then q:
// result[i] = q.perm[p.perm[i]].
func (p *Permutation) Compose(q *Permutation) (*Permutation, error) {
	if p.Len() != q.Len() {
		return nil, errs.New(errs.DimensionMismatch, "Permutation.Compose", "length mismatch")
	}
	out := make([]int, p.Len())
	for i, v := range p.perm {
		out[i] = q.perm[v]
	}
	return &Permutation{perm: out}, nil
}

// RowPermute returns c with rows reordered according to p: row i of the
// result is row p.At(i) of c (§4.D "RowPermute").
func RowPermute(p *Permutation, c *CSR) (*CSR, error) {
	if p.Len() != c.i {
		return nil, errs.New(errs.DimensionMismatch, "RowPermute", "permutation length must equal row count")
	}
	indptr := make([]int, c.i+1)
	nnz := 0
	for i := 0; i < c.i; i++ {
		indptr[i] = nnz
		src := p.perm[i]
		nnz += c.indptr[src+1] - c.indptr[src]
	}
	indptr[c.i] = nnz
	ind := make([]int, nnz)
	data := make([]float64, nnz)
	pos := 0
	for i := 0; i < c.i; i++ {
		src := p.perm[i]
		for k := c.indptr[src]; k < c.indptr[src+1]; k++ {
			ind[pos] = c.ind[k]
			data[pos] = c.data[k]
			pos++
		}
	}
	return NewCSR(c.i, c.j, indptr, ind, data), nil
}

// ColumnPermute returns c with columns reordered according to p: column j
// of the result holds what was column p.At(j) in c (§4.D "ColumnPermute").
func ColumnPermute(p *Permutation, c *CSR) (*CSR, error) {
	if p.Len() != c.j {
		return nil, errs.New(errs.DimensionMismatch, "ColumnPermute", "permutation length must equal column count")
	}
	inv := p.Inverse()
	indptr := make([]int, len(c.indptr))
	copy(indptr, c.indptr)
	ind := make([]int, len(c.ind))
	data := make([]float64, len(c.data))
	copy(data, c.data)
	for k, col := range c.ind {
		ind[k] = inv.perm[col]
	}
	return NewCSR(c.i, c.j, indptr, ind, data), nil
}

// InverseRowPermute applies p's inverse as a row permutation (§4.D
// "InverseRowPermute").
func InverseRowPermute(p *Permutation, c *CSR) (*CSR, error) {
	return RowPermute(p.Inverse(), c)
}

// InverseColumnPermute applies p's inverse as a column permutation (§4.D
// "InverseColumnPermute").
func InverseColumnPermute(p *Permutation, c *CSR) (*CSR, error) {
	return ColumnPermute(p.Inverse(), c)
}

// ExtractDiagonal returns the matrix's main diagonal as a DIA, reusing the
// teacher's existing DIA storage (diagonal.go) for the result.
func ExtractDiagonal(c *CSR) *DIA {
	n := c.i
	if c.j < n {
		n = c.j
	}
	diag := make([]float64, n)
	for i := 0; i < n; i++ {
		for k := c.indptr[i]; k < c.indptr[i+1]; k++ {
			if c.ind[k] == i {
				diag[i] = c.data[k]
				break
			}
		}
	}
	return NewDIA(n, diag)
}
