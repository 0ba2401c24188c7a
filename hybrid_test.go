package sparse

import "testing"

func TestHybridFromCSRRoundTrip(t *testing.T) {
	csr := sampleCSRForNewFormats()
	for _, strategy := range []HybridStrategy{
		HybridAutomatic, HybridColumnLimit, HybridImbalanceBounded, HybridMinimalStorage,
	} {
		h := NewHybridFromCSR(csr, strategy)
		r, c := h.Dims()
		if r != 3 || c != 4 {
			t.Fatalf("strategy %v: Dims() = (%d, %d), want (3, 4)", strategy, r, c)
		}
		for i := 0; i < 3; i++ {
			for j := 0; j < 4; j++ {
				if h.At(i, j) != csr.At(i, j) {
					t.Errorf("strategy %v: At(%d,%d) = %v, want %v", strategy, i, j, h.At(i, j), csr.At(i, j))
				}
			}
		}
		if h.NNZ() != csr.NNZ() {
			t.Errorf("strategy %v: NNZ() = %d, want %d", strategy, h.NNZ(), csr.NNZ())
		}
	}
}

func TestHybridApply(t *testing.T) {
	csr := sampleCSRForNewFormats()
	h := NewHybridFromCSR(csr, HybridAutomatic)

	ex := NewReferenceExecutor()
	b, err := NewDenseWithStride(ex, 4, 1, 1, []float64{1, 1, 1, 1})
	if err != nil {
		t.Fatal(err)
	}
	out := NewDense(ex, 3, 1)
	if err := h.Apply(b, out); err != nil {
		t.Fatal(err)
	}
	want := []float64{1, 2, 9}
	for i, w := range want {
		if out.At(i, 0) != w {
			t.Errorf("out[%d] = %v, want %v", i, out.At(i, 0), w)
		}
	}
}
