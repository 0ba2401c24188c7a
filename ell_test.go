package sparse

import "testing"

func sampleCSRForNewFormats() *CSR {
	// 3x4:
	// 1 0 0 0
	// 0 2 0 0
	// 0 0 3 6
	return NewCSR(3, 4,
		[]int{0, 1, 2, 4},
		[]int{0, 1, 2, 3},
		[]float64{1, 2, 3, 6})
}

func TestELLFromCSRRoundTrip(t *testing.T) {
	csr := sampleCSRForNewFormats()
	ell := NewELLFromCSR(csr)

	r, c := ell.Dims()
	if r != 3 || c != 4 {
		t.Fatalf("Dims() = (%d, %d), want (3, 4)", r, c)
	}
	if ell.MaxNNZPerRow() != 2 {
		t.Fatalf("MaxNNZPerRow() = %d, want 2", ell.MaxNNZPerRow())
	}

	for i := 0; i < 3; i++ {
		for j := 0; j < 4; j++ {
			want := csr.At(i, j)
			got := ell.At(i, j)
			if want != got {
				t.Errorf("At(%d,%d) = %v, want %v", i, j, got, want)
			}
		}
	}

	back := ell.ToCSR()
	for i := 0; i < 3; i++ {
		for j := 0; j < 4; j++ {
			if back.At(i, j) != csr.At(i, j) {
				t.Errorf("round trip At(%d,%d) = %v, want %v", i, j, back.At(i, j), csr.At(i, j))
			}
		}
	}
}

func TestELLApply(t *testing.T) {
	csr := sampleCSRForNewFormats()
	ell := NewELLFromCSR(csr)

	ex := NewReferenceExecutor()
	b, err := NewDenseWithStride(ex, 4, 1, 1, []float64{1, 1, 1, 1})
	if err != nil {
		t.Fatal(err)
	}
	out := NewDense(ex, 3, 1)
	if err := ell.Apply(b, out); err != nil {
		t.Fatal(err)
	}
	want := []float64{1, 2, 9}
	for i, w := range want {
		if out.At(i, 0) != w {
			t.Errorf("out[%d] = %v, want %v", i, out.At(i, 0), w)
		}
	}
}

func TestELLNNZAndDoNonZero(t *testing.T) {
	csr := sampleCSRForNewFormats()
	ell := NewELLFromCSR(csr)
	if ell.NNZ() != csr.NNZ() {
		t.Fatalf("NNZ() = %d, want %d", ell.NNZ(), csr.NNZ())
	}
	count := 0
	ell.DoNonZero(func(i, j int, v float64) { count++ })
	if count != csr.NNZ() {
		t.Fatalf("DoNonZero visited %d entries, want %d", count, csr.NNZ())
	}
}
