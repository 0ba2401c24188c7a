package sparse

import (
	"github.com/sparsekit/ginkgo-go/errs"
	"github.com/sparsekit/ginkgo-go/exec"
)

// Dense is a row-major dense matrix bound to an Executor, storing its
// values in an exec.Array as §3 requires ("every raw pointer surfaced to
// kernels comes from an Array bound to the executing device"). Element
// (r, c) lives at values[r*stride+c]; stride >= cols, matching the spec's
// Dense invariant. The teacher has no first-class Dense type of its own (it
// uses gonum's mat.Dense directly); this generalizes that usage into an
// Executor-aware type the rest of this package's Apply/ApplyScaled
// dispatch can target uniformly alongside CSR/ELL/SELLP/Hybrid.
type Dense struct {
	rows, cols, stride int
	values             *exec.Array[float64]
	exec               Executor
}

// NewDense allocates a zero-valued rows x cols Dense matrix bound to e, with
// stride == cols.
func NewDense(e Executor, rows, cols int) *Dense {
	return &Dense{rows: rows, cols: cols, stride: cols, values: exec.New[float64](e, rows*cols), exec: e}
}

// NewDenseWithStride builds a Dense matrix over an existing backing slice,
// borrowing it as a view (§3 "Raw pointers in views model borrowing").
func NewDenseWithStride(e Executor, rows, cols, stride int, values []float64) (*Dense, error) {
	if stride < cols {
		return nil, errs.New(errs.DimensionMismatch, "NewDenseWithStride", "stride must be >= cols")
	}
	if len(values) < rows*stride {
		return nil, errs.New(errs.OutOfBounds, "NewDenseWithStride", "values slice too small for stride")
	}
	return &Dense{rows: rows, cols: cols, stride: stride, values: exec.View[float64](e, values), exec: e}, nil
}

// Dims returns (rows, cols).
func (d *Dense) Dims() errs.Dim { return errs.Dim{Rows: d.rows, Cols: d.cols} }

// Stride returns the row stride (>= Cols).
func (d *Dense) Stride() int { return d.stride }

// Exec returns the bound executor.
func (d *Dense) Exec() Executor { return d.exec }

// Raw exposes the backing buffer for kernels running on d.Exec().
func (d *Dense) Raw() []float64 { return d.values.Slice() }

// At returns element (r, c).
func (d *Dense) At(r, c int) float64 {
	if uint(r) >= uint(d.rows) || uint(c) >= uint(d.cols) {
		panic(errs.New(errs.OutOfBounds, "Dense.At", "index out of range"))
	}
	return d.values.Slice()[r*d.stride+c]
}

// Set assigns element (r, c).
func (d *Dense) Set(r, c int, v float64) {
	if uint(r) >= uint(d.rows) || uint(c) >= uint(d.cols) {
		panic(errs.New(errs.OutOfBounds, "Dense.Set", "index out of range"))
	}
	d.values.Slice()[r*d.stride+c] = v
}

// Scale multiplies every element by alpha in place.
func (d *Dense) Scale(alpha float64) {
	raw := d.Raw()
	for r := 0; r < d.rows; r++ {
		base := r * d.stride
		for c := 0; c < d.cols; c++ {
			raw[base+c] *= alpha
		}
	}
}

// AddScaled computes d <- d + alpha*b, panicking on shape mismatch.
func (d *Dense) AddScaled(alpha float64, b *Dense) {
	if err := errs.CheckEqualShape("Dense.AddScaled", d.Dims(), b.Dims()); err != nil {
		panic(err)
	}
	for r := 0; r < d.rows; r++ {
		for c := 0; c < d.cols; c++ {
			d.Set(r, c, d.At(r, c)+alpha*b.At(r, c))
		}
	}
}

// Clone returns a deep copy of d bound to the same executor.
func (d *Dense) Clone() *Dense {
	out := NewDense(d.exec, d.rows, d.cols)
	for r := 0; r < d.rows; r++ {
		for c := 0; c < d.cols; c++ {
			out.Set(r, c, d.At(r, c))
		}
	}
	return out
}

// Apply computes c <- d*b: a plain GEMV/GEMM, naive on the Reference and
// Host executors as §4.D specifies ("naive loop for the reference
// variant"); this module carries no vendor BLAS binding so the device
// executors below reuse the identical naive loop.
func (d *Dense) Apply(b, c *Dense) error {
	return d.ApplyScaled(1, b, 0, c)
}

// ApplyScaled computes c <- alpha*d*b + beta*c.
func (d *Dense) ApplyScaled(alpha float64, b *Dense, beta float64, c *Dense) error {
	if d.cols != b.rows {
		return errs.New(errs.DimensionMismatch, "Dense.ApplyScaled", "d.cols must equal b.rows")
	}
	if d.rows != c.rows || b.cols != c.cols {
		return errs.New(errs.DimensionMismatch, "Dense.ApplyScaled", "c shape must be (d.rows, b.cols)")
	}
	op := exec.NewOperation("dense_gemv", func() error {
		gemvNaive(alpha, d, b, beta, c)
		return nil
	}, exec.WithCUDA(func() error { gemvNaive(alpha, d, b, beta, c); return nil }),
		exec.WithHIP(func() error { gemvNaive(alpha, d, b, beta, c); return nil }))
	if d.exec == nil {
		gemvNaive(alpha, d, b, beta, c)
		return nil
	}
	return d.exec.Run(op)
}

func gemvNaive(alpha float64, a, b *Dense, beta float64, c *Dense) {
	for i := 0; i < a.rows; i++ {
		for j := 0; j < b.cols; j++ {
			var sum float64
			for k := 0; k < a.cols; k++ {
				sum += a.At(i, k) * b.At(k, j)
			}
			c.Set(i, j, alpha*sum+beta*c.At(i, j))
		}
	}
}
