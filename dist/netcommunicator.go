package dist

import (
	"net"
	"net/rpc"
	"sync"

	"github.com/sparsekit/ginkgo-go/errs"
	"github.com/sparsekit/ginkgo-go/exec"
)

// NetCommunicator layers exec.Communicator over net/rpc so ranks can run as
// separate OS processes (possibly separate machines) rather than
// goroutines in one process, for the "true multi-process placement" case
// §4.F calls out as out of InProcessCommunicator's reach. Rank 0 acts as
// the RPC server every other rank dials; collectives are implemented the
// same rendezvous-then-combine way as InProcessCommunicator, just over the
// wire instead of over channels.
type NetCommunicator struct {
	rank, size int
	client     *rpc.Client // nil on rank 0
	server     *rpc.Server // non-nil on rank 0
	listener   net.Listener

	mu      sync.Mutex
	pending map[string][][]float64
	waiters map[string]chan struct{}
}

// rpcHub is the RPC-exported type rank 0 serves; it multiplexes collective
// calls from every rank by operation name only. A round's table is dropped
// once every rank has submitted, so a repeated collective starts a fresh
// round; two overlapping calls of the same collective share one table.
type rpcHub struct {
	comm *NetCommunicator
}

// SubmitArgs carries one rank's contribution to a named collective round.
type SubmitArgs struct {
	Op    string
	Rank  int
	Local []float64
}

// SubmitReply carries the combined result of a collective round.
type SubmitReply struct {
	Combined [][]float64
}

// Submit blocks the RPC call until every rank has submitted its
// contribution for Op, then replies with the full per-rank table.
func (h *rpcHub) Submit(args *SubmitArgs, reply *SubmitReply) error {
	c := h.comm
	c.mu.Lock()
	if c.pending[args.Op] == nil {
		c.pending[args.Op] = make([][]float64, c.size)
		c.waiters[args.Op] = make(chan struct{})
	}
	local := args.Local
	if local == nil {
		// nil marks a rank that has not submitted yet, so an empty
		// contribution (Barrier, a non-root ScatterV) is stored non-nil.
		local = []float64{}
	}
	table := c.pending[args.Op]
	table[args.Rank] = local
	done := c.waiters[args.Op]
	complete := true
	for _, v := range table {
		if v == nil {
			complete = false
			break
		}
	}
	if complete {
		combined := c.pending[args.Op]
		delete(c.pending, args.Op)
		delete(c.waiters, args.Op)
		c.mu.Unlock()
		close(done)
		reply.Combined = combined
		return nil
	}
	c.mu.Unlock()
	<-done
	reply.Combined = table
	return nil
}

// NewNetServer starts rank 0's RPC listener on addr (e.g. ":7070") and
// returns its communicator; other ranks join via NewNetClient.
func NewNetServer(addr string, size int) (*NetCommunicator, error) {
	c := &NetCommunicator{rank: 0, size: size, pending: map[string][][]float64{}, waiters: map[string]chan struct{}{}}
	c.server = rpc.NewServer()
	if err := c.server.RegisterName("Hub", &rpcHub{comm: c}); err != nil {
		return nil, errs.Wrap(errs.MpiError, "NewNetServer", "register", err)
	}
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, errs.Wrap(errs.MpiError, "NewNetServer", "listen", err)
	}
	c.listener = l
	go c.server.Accept(l)
	return c, nil
}

// NewNetClient dials rank 0's listener at addr and returns this rank's
// communicator handle.
func NewNetClient(addr string, rank, size int) (*NetCommunicator, error) {
	client, err := rpc.Dial("tcp", addr)
	if err != nil {
		return nil, errs.Wrap(errs.MpiError, "NewNetClient", "dial", err)
	}
	return &NetCommunicator{rank: rank, size: size, client: client}, nil
}

func (c *NetCommunicator) Rank() int { return c.rank }
func (c *NetCommunicator) Size() int { return c.size }

func (c *NetCommunicator) submit(op string, local []float64) ([][]float64, error) {
	args := &SubmitArgs{Op: op, Rank: c.rank, Local: local}
	reply := &SubmitReply{}
	if c.rank == 0 {
		if err := (&rpcHub{comm: c}).Submit(args, reply); err != nil {
			return nil, errs.Wrap(errs.MpiError, "NetCommunicator.submit", op, err)
		}
		return reply.Combined, nil
	}
	if err := c.client.Call("Hub.Submit", args, reply); err != nil {
		return nil, errs.Wrap(errs.MpiError, "NetCommunicator.submit", op, err)
	}
	return reply.Combined, nil
}

func (c *NetCommunicator) AllGather(local []float64) ([]float64, error) {
	bufs, err := c.submit("allgather", local)
	if err != nil {
		return nil, err
	}
	var out []float64
	for _, b := range bufs {
		out = append(out, b...)
	}
	return out, nil
}

func (c *NetCommunicator) AllReduce(local []float64, op exec.ReduceOp) ([]float64, error) {
	bufs, err := c.submit("allreduce", local)
	if err != nil {
		return nil, err
	}
	n := len(local)
	out := make([]float64, n)
	copy(out, bufs[0])
	for r := 1; r < len(bufs); r++ {
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

func (c *NetCommunicator) GatherV(local []float64, root int) ([]float64, error) {
	bufs, err := c.submit("gatherv", local)
	if err != nil {
		return nil, err
	}
	if c.rank != root {
		return nil, nil
	}
	var out []float64
	for _, b := range bufs {
		out = append(out, b...)
	}
	return out, nil
}

func (c *NetCommunicator) ScatterV(send []float64, counts []int, root int) ([]float64, error) {
	var rootSend []float64
	if c.rank == root {
		rootSend = send
	}
	sendBufs, err := c.submit("scatterv_send", rootSend)
	if err != nil {
		return nil, err
	}
	var rootCounts []float64
	if c.rank == root {
		rootCounts = floatize(counts)
	}
	countBufs, err := c.submit("scatterv_counts", rootCounts)
	if err != nil {
		return nil, err
	}
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
	out := make([]float64, myCount)
	copy(out, full[offset:offset+myCount])
	return out, nil
}

func (c *NetCommunicator) Barrier() error {
	_, err := c.submit("barrier", nil)
	return err
}

// Close releases the RPC listener (rank 0) or client connection.
func (c *NetCommunicator) Close() error {
	if c.listener != nil {
		return c.listener.Close()
	}
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}
