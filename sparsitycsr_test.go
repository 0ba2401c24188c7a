package sparse

import "testing"

func TestSparsityCSRFromCSR(t *testing.T) {
	csr := sampleCSRForNewFormats()
	s := NewSparsityCSRFromCSR(csr)

	r, c := s.Dims()
	if r != 3 || c != 4 {
		t.Fatalf("Dims() = (%d, %d), want (3, 4)", r, c)
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 4; j++ {
			want := 0.0
			if csr.At(i, j) != 0 {
				want = 1
			}
			if s.At(i, j) != want {
				t.Errorf("At(%d,%d) = %v, want %v", i, j, s.At(i, j), want)
			}
		}
	}
	if s.NNZ() != csr.NNZ() {
		t.Fatalf("NNZ() = %d, want %d", s.NNZ(), csr.NNZ())
	}
}

func TestSparsityCSRTranspose(t *testing.T) {
	csr := sampleCSRForNewFormats()
	s := NewSparsityCSRFromCSR(csr)
	tr := s.Transpose()

	tRows, tCols := tr.Dims()
	if tRows != 4 || tCols != 3 {
		t.Fatalf("Transpose Dims() = (%d, %d), want (4, 3)", tRows, tCols)
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 4; j++ {
			if s.At(i, j) != tr.At(j, i) {
				t.Errorf("At(%d,%d) = %v, want transpose At(%d,%d) = %v", i, j, s.At(i, j), j, i, tr.At(j, i))
			}
		}
	}
}
