package exec

import "github.com/sparsekit/ginkgo-go/errs"

// Kernel is a single device-specialized entry point for an Operation.
type Kernel func() error

// Operation carries captured arguments (via closure) and one Kernel per
// executor variant. Executor.Run dispatches to whichever Kernel matches its
// own kind; a nil Kernel for the requested kind is a NotImplemented error.
// This is the Go realization of Ginkgo's GKO_REGISTER_OPERATION macro: the
// macro's job (name the operation, forward args, allow per-type
// specialization) is done here with a plain struct instead of template
// metaprogramming.
type Operation struct {
	name string
	host Kernel
	ref  Kernel
	cuda Kernel
	hip  Kernel
	dist Kernel
}

// Option configures an Operation's per-variant kernels.
type Option func(*Operation)

// WithRef supplies the Reference-executor kernel. If omitted, Reference
// falls back to the Host kernel, matching the spec's "Reference variant may
// default to the host variant."
func WithRef(k Kernel) Option { return func(o *Operation) { o.ref = k } }

// WithCUDA supplies the CUDA-executor kernel.
func WithCUDA(k Kernel) Option { return func(o *Operation) { o.cuda = k } }

// WithHIP supplies the HIP-executor kernel.
func WithHIP(k Kernel) Option { return func(o *Operation) { o.hip = k } }

// WithDist supplies the Distributed-executor kernel.
func WithDist(k Kernel) Option { return func(o *Operation) { o.dist = k } }

// NewOperation names the operation (for logging) and supplies its Host
// kernel plus any per-variant specializations via options.
func NewOperation(name string, host Kernel, opts ...Option) *Operation {
	op := &Operation{name: name, host: host}
	for _, opt := range opts {
		opt(op)
	}
	return op
}

// Name returns the operation's log name.
func (o *Operation) Name() string { return o.name }

func (o *Operation) kernelFor(kind Kind) (Kernel, bool) {
	switch kind {
	case HostKind:
		return o.host, o.host != nil
	case ReferenceKind:
		if o.ref != nil {
			return o.ref, true
		}
		return o.host, o.host != nil
	case CUDAKind:
		return o.cuda, o.cuda != nil
	case HIPKind:
		return o.hip, o.hip != nil
	case DistributedKind:
		return o.dist, o.dist != nil
	}
	return nil, false
}

func notImplemented(op *Operation, kind Kind) error {
	return errs.New(errs.NotImplemented, "Executor.Run", op.name+" has no kernel for "+kind.String())
}
