package exec

import (
	"github.com/rs/zerolog/log"
	"github.com/sparsekit/ginkgo-go/errs"
)

// Executor is the device-identity, kernel-launch and synchronization
// abstraction every matrix format is bound to (§4.B). It owns a MemSpace and
// routes Operations to the kernel matching its own Kind.
type Executor interface {
	// Kind reports which concrete variant this is, used by Operation
	// dispatch and by callers branching on executor type.
	Kind() Kind
	// Run dispatches op to the kernel matching Kind(), logging launch and
	// completion, and surfacing NotImplemented if no such kernel exists.
	Run(op *Operation) error
	// RunClosure is the convenience lambda form of Run: exactly one of the
	// four closures (matching Kind()) is invoked.
	RunClosure(host, dist, cuda, hip func() error) error
	// Master returns the host executor backing this one (itself, for Host
	// and Reference executors).
	Master() Executor
	// SubExecutor returns the per-rank local executor for a Distributed
	// executor, or nil for any other kind.
	SubExecutor() Executor
	// MemSpace returns the memory space this executor allocates from.
	MemSpace() MemSpace
	// Synchronize blocks until all work submitted to this executor has
	// completed, surfacing any deferred kernel-launch error.
	Synchronize() error
	// CopyValToHost copies a single value from this executor's memory space
	// to host memory, suspending the caller (§5 "suspension points").
	CopyValToHost(ptr *float64) (float64, error)
}

// baseExecutor centralizes the launch-logging and dispatch-table lookup
// shared by every concrete Executor, mirroring how the teacher centralizes
// shared CSR/CSC bookkeeping in compressedSparse.
type baseExecutor struct {
	kind     Kind
	space    MemSpace
	master   Executor
	sub      Executor
	deferErr error
}

func (b *baseExecutor) Kind() Kind            { return b.kind }
func (b *baseExecutor) MemSpace() MemSpace    { return b.space }
func (b *baseExecutor) Master() Executor      { return b.master }
func (b *baseExecutor) SubExecutor() Executor { return b.sub }

func (b *baseExecutor) Synchronize() error {
	err := b.deferErr
	b.deferErr = nil
	return err
}

func (b *baseExecutor) CopyValToHost(ptr *float64) (float64, error) {
	if ptr == nil {
		return 0, errs.New(errs.OutOfBounds, "Executor.CopyValToHost", "nil pointer")
	}
	return *ptr, nil
}

func (b *baseExecutor) dispatch(op *Operation) error {
	kernel, ok := op.kernelFor(b.kind)
	if !ok {
		log.Debug().Str("op", op.name).Str("executor", b.kind.String()).Msg("launch failed: not implemented")
		return notImplemented(op, b.kind)
	}
	log.Debug().Str("op", op.name).Str("executor", b.kind.String()).Msg("launch")
	if err := kernel(); err != nil {
		kerr := errs.Wrap(errs.KernelLaunchError, "Executor.Run", op.name+" on "+b.kind.String(), err)
		// Accelerator kernels are asynchronous: the spec requires the error
		// to surface at the next synchronize/dependent operation rather
		// than at launch time. Host/Reference kernels run synchronously so
		// the error is available immediately either way.
		if b.kind == CUDAKind || b.kind == HIPKind {
			b.deferErr = kerr
			return nil
		}
		return kerr
	}
	log.Debug().Str("op", op.name).Str("executor", b.kind.String()).Msg("completed")
	return nil
}

// runClosureByKind picks exactly one of the four closures by Kind; there is
// no reference-specific closure, so Reference runs the host closure. A nil
// closure for the selected kind is skipped and nil is returned.
func runClosureByKind(kind Kind, host, dist, cuda, hip func() error) error {
	switch kind {
	case HostKind, ReferenceKind:
		if host == nil {
			return nil
		}
		return host()
	case CUDAKind:
		if cuda == nil {
			return nil
		}
		return cuda()
	case HIPKind:
		if hip == nil {
			return nil
		}
		return hip()
	case DistributedKind:
		if dist == nil {
			return nil
		}
		return dist()
	}
	return errs.New(errs.NotSupported, "Executor.RunClosure", "unknown executor kind")
}
