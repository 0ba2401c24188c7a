package sparse

import "testing"

func TestPermutationInverseAndCompose(t *testing.T) {
	p, err := NewPermutation([]int{2, 0, 1})
	if err != nil {
		t.Fatal(err)
	}
	inv := p.Inverse()
	for i := 0; i < p.Len(); i++ {
		if inv.At(p.At(i)) != i {
			t.Errorf("inv.At(p.At(%d)) = %d, want %d", i, inv.At(p.At(i)), i)
		}
	}
	id, err := p.Compose(inv)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < id.Len(); i++ {
		if id.At(i) != i {
			t.Errorf("p.Compose(inv).At(%d) = %d, want %d (identity)", i, id.At(i), i)
		}
	}
}

func TestNewPermutationRejectsDuplicatesAndOutOfRange(t *testing.T) {
	if _, err := NewPermutation([]int{0, 0, 1}); err == nil {
		t.Error("expected error for duplicate index")
	}
	if _, err := NewPermutation([]int{0, 3, 1}); err == nil {
		t.Error("expected error for out-of-range index")
	}
}

func TestRowPermute(t *testing.T) {
	csr := sampleCSRForNewFormats()
	p, err := NewPermutation([]int{2, 0, 1})
	if err != nil {
		t.Fatal(err)
	}
	out, err := RowPermute(p, csr)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		src := p.At(i)
		for j := 0; j < 4; j++ {
			if out.At(i, j) != csr.At(src, j) {
				t.Errorf("RowPermute out.At(%d,%d) = %v, want csr.At(%d,%d) = %v", i, j, out.At(i, j), src, j, csr.At(src, j))
			}
		}
	}
}

func TestColumnPermute(t *testing.T) {
	csr := sampleCSRForNewFormats()
	p, err := NewPermutation([]int{3, 1, 2, 0})
	if err != nil {
		t.Fatal(err)
	}
	out, err := ColumnPermute(p, csr)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 4; j++ {
			src := p.At(j)
			if out.At(i, j) != csr.At(i, src) {
				t.Errorf("ColumnPermute out.At(%d,%d) = %v, want csr.At(%d,%d) = %v", i, j, out.At(i, j), i, src, csr.At(i, src))
			}
		}
	}
}

func TestInverseRowPermuteUndoesRowPermute(t *testing.T) {
	csr := sampleCSRForNewFormats()
	p, err := NewPermutation([]int{2, 0, 1})
	if err != nil {
		t.Fatal(err)
	}
	permuted, err := RowPermute(p, csr)
	if err != nil {
		t.Fatal(err)
	}
	back, err := InverseRowPermute(p, permuted)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 4; j++ {
			if back.At(i, j) != csr.At(i, j) {
				t.Errorf("InverseRowPermute(RowPermute(csr)).At(%d,%d) = %v, want %v", i, j, back.At(i, j), csr.At(i, j))
			}
		}
	}
}

func TestExtractDiagonal(t *testing.T) {
	csr := sampleCSRForNewFormats()
	diag := ExtractDiagonal(csr)
	want := []float64{1, 2, 3}
	for i, w := range want {
		if diag.At(i, i) != w {
			t.Errorf("diag.At(%d,%d) = %v, want %v", i, i, diag.At(i, i), w)
		}
	}
}
