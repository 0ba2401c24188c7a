package exec

import (
	"github.com/intel/forGoParallel/parallel"
)

// HostExecutor runs Operations' Host kernels directly (the kernel closures
// themselves are responsible for any internal thread-parallelism) and
// exposes ParallelRange so kernels can request grid-strided host
// parallelism, mirroring how a real CPU backend would grid-stride a loop
// across cores the way an accelerator kernel grid-strides across SMs (§5
// "thread-parallel Host/OMP"). The actual fan-out is delegated to
// github.com/intel/forGoParallel/parallel, the task-parallel library the
// example pack's nearest domain match (a sparse/GraphBLAS package) uses for
// exactly this shape of loop.
type HostExecutor struct {
	baseExecutor
}

// NewHost constructs a thread-parallel host executor.
func NewHost() *HostExecutor {
	e := &HostExecutor{}
	e.kind = HostKind
	e.space = HostSpace
	e.master = e
	return e
}

func (e *HostExecutor) Run(op *Operation) error {
	return e.dispatch(op)
}

func (e *HostExecutor) RunClosure(host, dist, cuda, hip func() error) error {
	return runClosureByKind(e.kind, host, dist, cuda, hip)
}

// ParallelRange splits [low, high) into chunks and runs fn over each chunk
// concurrently, blocking until all chunks complete. Host kernels (CSR SpMV
// and ParILU's sweep) call this instead of hand rolling a sync.WaitGroup
// fan-out.
func (e *HostExecutor) ParallelRange(low, high int, fn func(low, high int)) {
	parallel.Range(low, high, fn)
}

// RefExecutor is the unoptimized, single-goroutine oracle executor used as
// the correctness reference for tests (§4.B "Reference").
type RefExecutor struct {
	baseExecutor
}

// NewReference constructs a Reference executor.
func NewReference() *RefExecutor {
	e := &RefExecutor{}
	e.kind = ReferenceKind
	e.space = HostSpace
	e.master = e
	return e
}

func (e *RefExecutor) Run(op *Operation) error {
	return e.dispatch(op)
}

func (e *RefExecutor) RunClosure(host, dist, cuda, hip func() error) error {
	return runClosureByKind(e.kind, host, dist, cuda, hip)
}

// ParallelRange on the Reference executor runs fn once over the whole range,
// sequentially, by design: the Reference executor exists to have no
// parallel scheduling surprises to debug against.
func (e *RefExecutor) ParallelRange(low, high int, fn func(low, high int)) {
	fn(low, high)
}
