// Package dist implements the row-partitioned distributed matrix layer: a
// Communicator abstraction modeling MPI-style collectives, plus
// dist.Matrix binding a local CSR shard to a RowIndexSet of globally-owned
// rows.
//
// Grounded on the in-process worker/queue goroutine pattern used elsewhere
// in the retrieved example pack (channel-dispatched workers coordinating
// over a shared barrier), generalized here from one queue to N
// communicating ranks that all participate in the same collective call.
package dist

import (
	"sync"

	"github.com/sparsekit/ginkgo-go/errs"
	"github.com/sparsekit/ginkgo-go/exec"
)

// InProcessCommunicator implements exec.Communicator across goroutines in
// the same process: every rank's call to a collective blocks on a
// sync.WaitGroup-style rendezvous until all ranks have arrived, then each
// rank computes its share of the combined result locally. This models an
// MPI communicator without linking against a real MPI implementation,
// per §4.F's explicit license to keep collectives in-process.
type InProcessCommunicator struct {
	rank, size int
	hub        *commHub
}

// commHub is the shared rendezvous point all ranks in one communicator
// group reference; it is created once via NewInProcessGroup and not
// exported so ranks cannot be constructed independently of their group.
type commHub struct {
	size int

	mu        sync.Mutex
	barrierN  int
	barrierCh chan struct{}

	gatherMu   sync.Mutex
	gatherN    int
	gatherBufs [][]float64
	gatherDone chan struct{}
}

// NewInProcessGroup constructs size InProcessCommunicators that all share
// one rendezvous hub, one per simulated rank.
func NewInProcessGroup(size int) []*InProcessCommunicator {
	hub := &commHub{size: size}
	comms := make([]*InProcessCommunicator, size)
	for r := 0; r < size; r++ {
		comms[r] = &InProcessCommunicator{rank: r, size: size, hub: hub}
	}
	return comms
}

// Rank returns this communicator's rank within its group.
func (c *InProcessCommunicator) Rank() int { return c.rank }

// Size returns the group's size.
func (c *InProcessCommunicator) Size() int { return c.size }

// Barrier blocks until every rank in the group has called Barrier.
func (c *InProcessCommunicator) Barrier() error {
	h := c.hub
	h.mu.Lock()
	if h.barrierCh == nil {
		h.barrierCh = make(chan struct{})
	}
	ch := h.barrierCh
	h.barrierN++
	if h.barrierN == h.size {
		h.barrierN = 0
		h.barrierCh = nil
		h.mu.Unlock()
		close(ch)
		return nil
	}
	h.mu.Unlock()
	<-ch
	return nil
}

// AllGather concatenates every rank's contribution, in rank order, and
// returns it to all ranks.
func (c *InProcessCommunicator) AllGather(local []float64) ([]float64, error) {
	bufs := c.collectAll(local)
	var out []float64
	for _, b := range bufs {
		out = append(out, b...)
	}
	return out, nil
}

// collectAll is a rendezvous: every rank (not just the one that completes
// it) keeps its own reference to the round's shared table, which the hub
// releases once the last rank has arrived, and returns that table.
func (c *InProcessCommunicator) collectAll(local []float64) [][]float64 {
	h := c.hub
	h.gatherMu.Lock()
	if h.gatherBufs == nil {
		h.gatherBufs = make([][]float64, h.size)
		h.gatherDone = make(chan struct{})
	}
	h.gatherBufs[c.rank] = local
	h.gatherN++
	bufsSlot := h.gatherBufs
	done := h.gatherDone
	if h.gatherN == h.size {
		h.gatherN = 0
		h.gatherBufs = nil
		h.gatherDone = nil
		h.gatherMu.Unlock()
		close(done)
		return bufsSlot
	}
	h.gatherMu.Unlock()
	<-done
	return bufsSlot
}

// AllReduce combines local across every rank with op, returning the
// combined result to all ranks. Every rank's local slice must be the same
// length.
func (c *InProcessCommunicator) AllReduce(local []float64, op exec.ReduceOp) ([]float64, error) {
	bufs := c.collectAll(local)
	n := len(local)
	out := make([]float64, n)
	copy(out, bufs[0])
	for r := 1; r < len(bufs); r++ {
		if len(bufs[r]) != n {
			return nil, errs.New(errs.DimensionMismatch, "InProcessCommunicator.AllReduce", "rank contribution length mismatch")
		}
		for i := 0; i < n; i++ {
			switch op {
			case exec.Sum:
				out[i] += bufs[r][i]
			case exec.Min:
				if bufs[r][i] < out[i] {
					out[i] = bufs[r][i]
				}
			case exec.Max:
				if bufs[r][i] > out[i] {
					out[i] = bufs[r][i]
				}
			}
		}
	}
	return out, nil
}

// GatherV gathers variable-sized per-rank contributions to root only.
func (c *InProcessCommunicator) GatherV(local []float64, root int) ([]float64, error) {
	bufs := c.collectAll(local)
	if c.rank != root {
		return nil, nil
	}
	var out []float64
	for _, b := range bufs {
		out = append(out, b...)
	}
	return out, nil
}

// ScatterV distributes a root-provided buffer to every rank according to
// counts. Only root's send/counts arguments are meaningful; every rank
// must still call ScatterV to participate in the two rendezvous points
// (one broadcasting root's buffer, one broadcasting root's counts).
func (c *InProcessCommunicator) ScatterV(send []float64, counts []int, root int) ([]float64, error) {
	var rootSend, rootCounts []float64
	if c.rank == root {
		rootSend = send
		rootCounts = floatize(counts)
	}
	sendBufs := c.collectAll(rootSend)
	countBufs := c.collectAll(rootCounts)

	allCounts := countBufs[root]
	n := make([]int, len(allCounts))
	for i, v := range allCounts {
		n[i] = int(v)
	}
	offset := 0
	for r := 0; r < c.rank && r < len(n); r++ {
		offset += n[r]
	}
	myCount := 0
	if c.rank < len(n) {
		myCount = n[c.rank]
	}
	full := sendBufs[root]
	if offset+myCount > len(full) {
		return nil, errs.New(errs.DimensionMismatch, "InProcessCommunicator.ScatterV", "counts exceed send buffer length")
	}
	out := make([]float64, myCount)
	copy(out, full[offset:offset+myCount])
	return out, nil
}

func floatize(ints []int) []float64 {
	out := make([]float64, len(ints))
	for i, v := range ints {
		out[i] = float64(v)
	}
	return out
}
