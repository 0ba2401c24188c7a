package precond

import (
	"math"
	"testing"

	"github.com/sparsekit/ginkgo-go"
)

func denseVec(ex sparse.Executor, vals []float64) *sparse.Dense {
	d, err := sparse.NewDenseWithStride(ex, len(vals), 1, 1, vals)
	if err != nil {
		panic(err)
	}
	return d
}

func TestBlockJacobiAppliesBlockInverse(t *testing.T) {
	// Two 2x2 diagonal blocks: [[2,0],[0,4]] and [[1,0],[0,5]].
	a := sparse.NewCSR(4, 4,
		[]int{0, 1, 2, 3, 4},
		[]int{0, 1, 2, 3},
		[]float64{2, 4, 1, 5})

	starts := FindBlocks(4, 2)
	bj, err := Generate(a, starts)
	if err != nil {
		t.Fatal(err)
	}

	ex := sparse.NewReferenceExecutor()
	b := denseVec(ex, []float64{2, 4, 1, 5})
	out := sparse.NewDense(ex, 4, 1)
	if err := bj.Apply(b, out); err != nil {
		t.Fatal(err)
	}
	want := []float64{1, 1, 1, 1}
	for i, w := range want {
		if math.Abs(out.At(i, 0)-w) > 1e-9 {
			t.Errorf("out[%d] = %v, want %v", i, out.At(i, 0), w)
		}
	}
}

func TestFindBlocks(t *testing.T) {
	starts := FindBlocks(5, 2)
	want := []int{0, 2, 4, 5}
	if len(starts) != len(want) {
		t.Fatalf("FindBlocks = %v, want %v", starts, want)
	}
	for i, w := range want {
		if starts[i] != w {
			t.Errorf("FindBlocks[%d] = %d, want %d", i, starts[i], w)
		}
	}
}

func TestFactorizeRecoversDiagonalMatrix(t *testing.T) {
	a := sparse.NewCSR(3, 3,
		[]int{0, 1, 2, 3},
		[]int{0, 1, 2},
		[]float64{2, 3, 4})

	ilu, err := Factorize(a)
	if err != nil {
		t.Fatal(err)
	}
	u := ilu.U()
	for i := 0; i < 3; i++ {
		if u.At(i, i) != a.At(i, i) {
			t.Errorf("U diag[%d] = %v, want %v", i, u.At(i, i), a.At(i, i))
		}
	}
	if ilu.L().NNZ() != 0 {
		t.Errorf("L should have no entries for a diagonal matrix, got NNZ=%d", ilu.L().NNZ())
	}
}

func TestParILUConvergesOnDiagonalMatrix(t *testing.T) {
	a := sparse.NewCSR(3, 3,
		[]int{0, 1, 2, 3},
		[]int{0, 1, 2},
		[]float64{2, 3, 4})

	ilu, err := ParILU(nil, a, 10, 1e-10)
	if err != nil {
		t.Fatal(err)
	}
	u := ilu.U()
	for i := 0; i < 3; i++ {
		if math.Abs(u.At(i, i)-a.At(i, i)) > 1e-9 {
			t.Errorf("U diag[%d] = %v, want %v", i, u.At(i, i), a.At(i, i))
		}
	}
}

func TestGenerateLowerISAIApproximatesInverseOnDiagonal(t *testing.T) {
	// L has an implicit unit diagonal and no strictly-lower entries (the
	// shape ILU.L() actually returns), i.e. L == I; its ISAI is also I.
	l := sparse.NewCSR(3, 3,
		[]int{0, 0, 0, 0},
		[]int{},
		[]float64{})

	isai, err := GenerateLowerISAI(l)
	if err != nil {
		t.Fatal(err)
	}

	ex := sparse.NewReferenceExecutor()
	b := denseVec(ex, []float64{5, 6, 7})
	out := sparse.NewDense(ex, 3, 1)
	if err := isai.Apply(b, out); err != nil {
		t.Fatal(err)
	}
	for i, w := range []float64{5, 6, 7} {
		if out.At(i, 0) != w {
			t.Errorf("out[%d] = %v, want %v", i, out.At(i, 0), w)
		}
	}
}
