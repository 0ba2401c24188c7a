package spgemm

import (
	"testing"

	"github.com/sparsekit/ginkgo-go"
)

func denseAt(c *sparse.CSR, i, j int) float64 { return c.At(i, j) }

func TestMultiplyIdentity(t *testing.T) {
	// A: 2x2 [[1,2],[3,4]], I: 2x2 identity. A*I == A.
	a := sparse.NewCSR(2, 2, []int{0, 2, 4}, []int{0, 1, 0, 1}, []float64{1, 2, 3, 4})
	ident := sparse.NewCSR(2, 2, []int{0, 1, 2}, []int{0, 1}, []float64{1, 1})

	c, err := Multiply(a, ident)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			if denseAt(c, i, j) != denseAt(a, i, j) {
				t.Errorf("(A*I).At(%d,%d) = %v, want %v", i, j, denseAt(c, i, j), denseAt(a, i, j))
			}
		}
	}
}

func TestMultiplyGeneral(t *testing.T) {
	// A: 2x3, B: 3x2.
	// A = [[1,0,2],[0,3,0]]
	// B = [[1,4],[0,5],[6,0]]
	// A*B = [[1*1+2*6, 1*4+2*0], [0, 3*5]] = [[13,4],[0,15]]
	a := sparse.NewCSR(2, 3, []int{0, 2, 3}, []int{0, 2, 1}, []float64{1, 2, 3})
	b := sparse.NewCSR(3, 2, []int{0, 2, 3, 4}, []int{0, 1, 1, 0}, []float64{1, 4, 5, 6})

	c, err := Multiply(a, b)
	if err != nil {
		t.Fatal(err)
	}
	want := [][]float64{{13, 4}, {0, 15}}
	for i := range want {
		for j := range want[i] {
			if denseAt(c, i, j) != want[i][j] {
				t.Errorf("(A*B).At(%d,%d) = %v, want %v", i, j, denseAt(c, i, j), want[i][j])
			}
		}
	}
}

func TestMultiplyDimensionMismatch(t *testing.T) {
	a := sparse.NewCSR(2, 2, []int{0, 1, 2}, []int{0, 1}, []float64{1, 1})
	b := sparse.NewCSR(3, 2, []int{0, 1, 2, 3}, []int{0, 1, 0}, []float64{1, 1, 1})
	if _, err := Multiply(a, b); err == nil {
		t.Error("expected dimension mismatch error")
	}
}
