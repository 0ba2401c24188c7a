package sparse

import (
	"bytes"
	"testing"

	"github.com/gonum/matrix/mat64"

	"github.com/sparsekit/ginkgo-go/errs"
)

// DIA is a square-only format (NewDIA takes a single dimension), so unlike
// the other formats tested below there is only one shape case here rather
// than one per (rows, cols) combination.
var diagonals = []struct {
	want *DIA
	raw  []byte
}{
	{
		want: NewDIA(2, []float64{1, 5}),
		raw:  []byte("\x02\x00\x00\x00\x00\x00\x00\x00\x02\x00\x00\x00\x00\x00\x00\x00\x02\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\xF0\x3F\x00\x00\x00\x00\x00\x00\x14\x40"),
	},
}

func TestDIAMarshallBinary(t *testing.T) {
	for ti, test := range diagonals {
		t.Logf("**** TestDIAMarshallBinary - Test Run %d.\n", ti+1)

		buf, err := test.want.MarshalBinary()
		if err != nil {
			t.Errorf("error encoding: %v\n", err)
			continue
		}

		size := 3*sizeInt64 + test.want.NNZ()*sizeFloat64
		if len(buf) != size {
			t.Errorf("encoded size test: want=%d got=%d\n", size, len(buf))
		}

		if !bytes.Equal(buf, test.raw) {
			t.Errorf("error encoding test: bytes mismatch.\n got=%q\nwant=%q\n",
				string(buf),
				string(test.raw),
			)
		}
	}
}

func TestDIAMarshallTo(t *testing.T) {
	for ti, test := range diagonals {
		t.Logf("**** TestDIAMarshallTo - Test Run %d.\n", ti+1)
		buf := new(bytes.Buffer)
		n, err := test.want.MarshalBinaryTo(buf)
		if err != nil {
			t.Errorf("error encoding: %v\n", err)
			continue
		}

		nnz := test.want.NNZ()
		size := nnz*sizeFloat64 + 3*sizeInt64
		if n != size {
			t.Errorf("encoded size: want=%d got=%d\n", size, n)
		}

		if !bytes.Equal(buf.Bytes(), test.raw) {
			t.Errorf("error encoding: bytes mismatch.\n got=%q\nwant=%q\n",
				string(buf.Bytes()),
				string(test.raw),
			)
		}
	}
}

func TestDIAUnmarshalBinary(t *testing.T) {
	for ti, test := range diagonals {
		t.Logf("**** TestDIAUnmarshalBinary - Test Run %d.\n", ti+1)
		var v DIA
		err := v.UnmarshalBinary(test.raw)
		if err != nil {
			t.Errorf("error decoding: %v\n", err)
			continue
		}
		if !mat64.Equal(&v, test.want) {
			t.Errorf("error decoding: values differ.\n got=%v\nwant=%v\n",
				&v,
				test.want,
			)
		}
	}
}

func TestDIAUnmarshalFrom(t *testing.T) {
	for ti, test := range diagonals {
		t.Logf("**** TestDIAUnmarshalFrom - Test Run %d.\n", ti+1)
		var v DIA
		buf := bytes.NewReader(test.raw)
		n, err := v.UnmarshalBinaryFrom(buf)
		if err != nil {
			t.Errorf("error decoding: %v\n", err)
			continue
		}
		if n != len(test.raw) {
			t.Errorf("error decoding: lengths differ.\n got=%d\nwant=%d\n",
				n, len(test.raw),
			)
		}
		if !mat64.Equal(&v, test.want) {
			t.Errorf("error decoding: values differ.\n got=%v\nwant=%v\n",
				&v,
				test.want,
			)
		}
	}
}

func TestELLMarshalRoundTrip(t *testing.T) {
	want := NewELLFromCSR(NewCSR(3, 3, []int{0, 2, 3, 5}, []int{0, 2, 1, 0, 2}, []float64{2, -1, 2, -1, 2}))
	buf, err := want.MarshalBinary()
	if err != nil {
		t.Fatalf("error encoding: %v", err)
	}
	var got ELL
	if err := got.UnmarshalBinary(buf); err != nil {
		t.Fatalf("error decoding: %v", err)
	}
	if !mat64.Equal(want.ToDense(), got.ToDense()) {
		t.Errorf("round trip mismatch: want=%v got=%v", want.ToDense(), got.ToDense())
	}
}

func TestSELLPMarshalRoundTrip(t *testing.T) {
	want := NewSELLPFromCSR(NewCSR(3, 3, []int{0, 2, 3, 5}, []int{0, 2, 1, 0, 2}, []float64{2, -1, 2, -1, 2}), 2)
	buf, err := want.MarshalBinary()
	if err != nil {
		t.Fatalf("error encoding: %v", err)
	}
	var got SELLP
	if err := got.UnmarshalBinary(buf); err != nil {
		t.Fatalf("error decoding: %v", err)
	}
	if !mat64.Equal(want.ToDense(), got.ToDense()) {
		t.Errorf("round trip mismatch: want=%v got=%v", want.ToDense(), got.ToDense())
	}
}

func TestHybridMarshalRoundTrip(t *testing.T) {
	want := NewHybridFromCSR(NewCSR(3, 3, []int{0, 2, 3, 5}, []int{0, 2, 1, 0, 2}, []float64{2, -1, 2, -1, 2}), HybridAutomatic)
	buf, err := want.MarshalBinary()
	if err != nil {
		t.Fatalf("error encoding: %v", err)
	}
	var got Hybrid
	if err := got.UnmarshalBinary(buf); err != nil {
		t.Fatalf("error decoding: %v", err)
	}
	if !mat64.Equal(want.ToDense(), got.ToDense()) {
		t.Errorf("round trip mismatch: want=%v got=%v", want.ToDense(), got.ToDense())
	}
}

func TestSparsityCSRMarshalRoundTrip(t *testing.T) {
	want := NewSparsityCSRFromCSR(NewCSR(3, 3, []int{0, 2, 3, 5}, []int{0, 2, 1, 0, 2}, []float64{2, -1, 2, -1, 2}))
	buf, err := want.MarshalBinary()
	if err != nil {
		t.Fatalf("error encoding: %v", err)
	}
	var got SparsityCSR
	if err := got.UnmarshalBinary(buf); err != nil {
		t.Fatalf("error decoding: %v", err)
	}
	if !mat64.Equal(want.ToDense(), got.ToDense()) {
		t.Errorf("round trip mismatch: want=%v got=%v", want.ToDense(), got.ToDense())
	}
}

func TestMatrixDataRoundTrip(t *testing.T) {
	src := NewCSR(3, 3, []int{0, 2, 3, 5}, []int{0, 2, 1, 0, 2}, []float64{2, -1, 2, -1, 2})
	md := WriteMatrixData(src)
	got, err := ReadMatrixData(md)
	if err != nil {
		t.Fatalf("error reading matrix data: %v", err)
	}
	if !mat64.Equal(src.ToDense(), got.ToDense()) {
		t.Errorf("round trip mismatch: want=%v got=%v", src.ToDense(), got.ToDense())
	}
}

func TestReadMatrixDataRejectsOutOfBounds(t *testing.T) {
	md := MatrixData{Size: errs.Dim{Rows: 2, Cols: 2}, Rows: []int{0}, Cols: []int{5}, Values: []float64{1}}
	if _, err := ReadMatrixData(md); err == nil {
		t.Errorf("expected an out-of-bounds error, got nil")
	}
}

func TestReadMatrixDataRejectsLengthMismatch(t *testing.T) {
	md := MatrixData{Size: errs.Dim{Rows: 2, Cols: 2}, Rows: []int{0, 1}, Cols: []int{0}, Values: []float64{1}}
	if _, err := ReadMatrixData(md); err == nil {
		t.Errorf("expected a length-mismatch error, got nil")
	}
}
