package dist

import (
	"sync"
	"testing"

	"github.com/sparsekit/ginkgo-go"
	"github.com/sparsekit/ginkgo-go/errs"
	"github.com/sparsekit/ginkgo-go/exec"
)

func TestRowIndexSetEvenDistribution(t *testing.T) {
	sets := EvenRowDistribution(10, 3)
	if len(sets) != 3 {
		t.Fatalf("got %d sets, want 3", len(sets))
	}
	total := 0
	for _, s := range sets {
		total += s.Len()
	}
	if total != 10 {
		t.Fatalf("total rows = %d, want 10", total)
	}
	for row := 0; row < 10; row++ {
		owners := 0
		for _, s := range sets {
			if s.Contains(row) {
				owners++
			}
		}
		if owners != 1 {
			t.Errorf("row %d owned by %d sets, want 1", row, owners)
		}
	}
}

func TestRowIndexSetLocalIndex(t *testing.T) {
	s := NewContiguousRowIndexSet(5, 9)
	if s.LocalIndex(5) != 0 || s.LocalIndex(8) != 3 {
		t.Errorf("LocalIndex mismatch: LocalIndex(5)=%d LocalIndex(8)=%d", s.LocalIndex(5), s.LocalIndex(8))
	}
	if s.LocalIndex(4) != -1 || s.LocalIndex(9) != -1 {
		t.Errorf("LocalIndex should be -1 outside the set")
	}
}

func runGroup(t *testing.T, comms []*InProcessCommunicator, fn func(c *InProcessCommunicator) error) {
	t.Helper()
	var wg sync.WaitGroup
	errsCh := make(chan error, len(comms))
	for _, c := range comms {
		wg.Add(1)
		go func(c *InProcessCommunicator) {
			defer wg.Done()
			errsCh <- fn(c)
		}(c)
	}
	wg.Wait()
	close(errsCh)
	for err := range errsCh {
		if err != nil {
			t.Fatal(err)
		}
	}
}

func TestInProcessCommunicatorAllReduceSum(t *testing.T) {
	comms := NewInProcessGroup(3)
	results := make([][]float64, 3)
	runGroup(t, comms, func(c *InProcessCommunicator) error {
		r, err := c.AllReduce([]float64{float64(c.Rank() + 1)}, exec.Sum)
		results[c.Rank()] = r
		return err
	})
	for r := range results {
		if results[r][0] != 6 {
			t.Errorf("rank %d: AllReduce(Sum) = %v, want 6", r, results[r][0])
		}
	}
}

func TestInProcessCommunicatorAllGather(t *testing.T) {
	comms := NewInProcessGroup(2)
	results := make([][]float64, 2)
	runGroup(t, comms, func(c *InProcessCommunicator) error {
		r, err := c.AllGather([]float64{float64(c.Rank())})
		results[c.Rank()] = r
		return err
	})
	want := []float64{0, 1}
	for r := range results {
		for i, w := range want {
			if results[r][i] != w {
				t.Errorf("rank %d: AllGather[%d] = %v, want %v", r, i, results[r][i], w)
			}
		}
	}
}

func TestInProcessCommunicatorScatterV(t *testing.T) {
	comms := NewInProcessGroup(2)
	counts := []int{2, 3}
	send := []float64{10, 11, 20, 21, 22}
	results := make([][]float64, 2)
	runGroup(t, comms, func(c *InProcessCommunicator) error {
		var mySend []float64
		if c.Rank() == 0 {
			mySend = send
		}
		r, err := c.ScatterV(mySend, counts, 0)
		results[c.Rank()] = r
		return err
	})
	if len(results[0]) != 2 || results[0][0] != 10 || results[0][1] != 11 {
		t.Errorf("rank 0 ScatterV = %v, want [10 11]", results[0])
	}
	if len(results[1]) != 3 || results[1][0] != 20 || results[1][1] != 21 || results[1][2] != 22 {
		t.Errorf("rank 1 ScatterV = %v, want [20 21 22]", results[1])
	}
}

func TestMatrixApplyReplicated(t *testing.T) {
	comms := NewInProcessGroup(1)
	local := sparse.NewCSR(2, 2, []int{0, 1, 2}, []int{0, 1}, []float64{1, 1})
	rowSet := NewContiguousRowIndexSet(0, 2)
	m, err := NewMatrix(comms[0], errs.Dim{Rows: 2, Cols: 2}, rowSet, local)
	if err != nil {
		t.Fatal(err)
	}

	ex := sparse.NewReferenceExecutor()
	b, err := sparse.NewDenseWithStride(ex, 2, 1, 1, []float64{3, 4})
	if err != nil {
		t.Fatal(err)
	}
	out := sparse.NewDense(ex, 2, 1)
	if err := m.Apply(b, true, out); err != nil {
		t.Fatal(err)
	}
	if out.At(0, 0) != 3 || out.At(1, 0) != 4 {
		t.Errorf("Apply(replicated) = [%v %v], want [3 4]", out.At(0, 0), out.At(1, 0))
	}
}

func TestMatrixComputeDot(t *testing.T) {
	comms := NewInProcessGroup(2)
	ex := sparse.NewReferenceExecutor()
	results := make([]float64, 2)
	runGroup(t, comms, func(c *InProcessCommunicator) error {
		local := sparse.NewCSR(1, 1, []int{0, 1}, []int{0}, []float64{1})
		rowSet := NewContiguousRowIndexSet(c.Rank(), c.Rank()+1)
		m, err := NewMatrix(c, errs.Dim{Rows: 2, Cols: 1}, rowSet, local)
		if err != nil {
			return err
		}
		v, err := sparse.NewDenseWithStride(ex, 1, 1, 1, []float64{float64(c.Rank() + 1)})
		if err != nil {
			return err
		}
		dot, err := m.ComputeDot(v, v)
		results[c.Rank()] = dot
		return err
	})
	for r, got := range results {
		if got != 5 {
			t.Errorf("rank %d: ComputeDot = %v, want 5 (1^2+2^2)", r, got)
		}
	}
}
