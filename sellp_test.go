package sparse

import "testing"

func TestSELLPFromCSRRoundTrip(t *testing.T) {
	csr := sampleCSRForNewFormats()
	s := NewSELLPFromCSR(csr, 2)

	r, c := s.Dims()
	if r != 3 || c != 4 {
		t.Fatalf("Dims() = (%d, %d), want (3, 4)", r, c)
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 4; j++ {
			if s.At(i, j) != csr.At(i, j) {
				t.Errorf("At(%d,%d) = %v, want %v", i, j, s.At(i, j), csr.At(i, j))
			}
		}
	}

	back := s.ToCSR()
	for i := 0; i < 3; i++ {
		for j := 0; j < 4; j++ {
			if back.At(i, j) != csr.At(i, j) {
				t.Errorf("round trip At(%d,%d) = %v, want %v", i, j, back.At(i, j), csr.At(i, j))
			}
		}
	}
}

func TestSELLPApply(t *testing.T) {
	csr := sampleCSRForNewFormats()
	s := NewSELLPFromCSR(csr, 2)

	ex := NewReferenceExecutor()
	b, err := NewDenseWithStride(ex, 4, 1, 1, []float64{1, 1, 1, 1})
	if err != nil {
		t.Fatal(err)
	}
	out := NewDense(ex, 3, 1)
	if err := s.Apply(b, out); err != nil {
		t.Fatal(err)
	}
	want := []float64{1, 2, 9}
	for i, w := range want {
		if out.At(i, 0) != w {
			t.Errorf("out[%d] = %v, want %v", i, out.At(i, 0), w)
		}
	}
}

func TestSELLPNNZ(t *testing.T) {
	csr := sampleCSRForNewFormats()
	s := NewSELLPFromCSR(csr, 2)
	if s.NNZ() != csr.NNZ() {
		t.Fatalf("NNZ() = %d, want %d", s.NNZ(), csr.NNZ())
	}
}
