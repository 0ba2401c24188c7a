package exec

import (
	"sync"
	"unsafe"

	"github.com/sparsekit/ginkgo-go/errs"
)

// MemSpace is a typed allocator bound to a device. It is the Go analogue of
// gko::Executor's memory_space: allocate/free/copy primitives that an
// Executor delegates to rather than implementing itself.
type MemSpace interface {
	// Name identifies the space for logging and MemorySpaceMismatch errors.
	Name() string
	// Allocate reserves n bytes and returns an opaque pointer to them.
	Allocate(n int) (unsafe.Pointer, error)
	// Free releases a pointer previously returned by Allocate.
	Free(p unsafe.Pointer)
	// CopyFrom copies n bytes from src (owned by other) into dst (owned by
	// this space), choosing host<->device or device<->device staging as
	// required. Cross-space incompatibility is rejected here.
	CopyFrom(other MemSpace, n int, src, dst unsafe.Pointer) error
}

// hostSpace allocates ordinary Go heap memory. It backs Host and Reference
// executors, and also the simulated accelerator executors below: the module
// carries no cgo/CUDA toolchain dependency (the teacher library it is
// derived from has none either), so CUDA/HIP allocation is modeled as
// tagged host memory exercised through the same MemSpace contract a real
// device allocator would present.
type hostSpace struct {
	name string
}

// HostSpace is the ordinary host allocator.
var HostSpace MemSpace = &hostSpace{name: "host"}

func (s *hostSpace) Name() string { return s.name }

func (s *hostSpace) Allocate(n int) (unsafe.Pointer, error) {
	if n < 0 {
		return nil, errs.New(errs.AllocationError, "MemSpace.Allocate", "negative size")
	}
	if n == 0 {
		return nil, nil
	}
	buf := make([]byte, n)
	return unsafe.Pointer(&buf[0]), nil
}

func (s *hostSpace) Free(p unsafe.Pointer) {
	// Go's GC owns the backing slice; nothing to release explicitly. The
	// hook exists so device spaces below have a symmetric place to call
	// into their (simulated) device deallocator.
}

func (s *hostSpace) CopyFrom(other MemSpace, n int, src, dst unsafe.Pointer) error {
	if n == 0 {
		return nil
	}
	srcSlice := unsafe.Slice((*byte)(src), n)
	dstSlice := unsafe.Slice((*byte)(dst), n)
	copy(dstSlice, srcSlice)
	return nil
}

// deviceSpace models a simulated accelerator memory space (CUDA, CUDA UVM,
// HIP): allocations are plain host memory tagged with a device id so the
// executor and kernel-dispatch layers are written against the same
// MemSpace/Array contracts a real device allocator would require.
type deviceSpace struct {
	kind     string
	deviceID int
	mu       sync.Mutex
	live     int
}

// NewCUDASpace returns a simulated CUDA device memory space for deviceID.
func NewCUDASpace(deviceID int) MemSpace { return &deviceSpace{kind: "cuda", deviceID: deviceID} }

// NewCUDAUVMSpace returns a simulated CUDA unified-memory space.
func NewCUDAUVMSpace(deviceID int) MemSpace { return &deviceSpace{kind: "cuda-uvm", deviceID: deviceID} }

// NewHIPSpace returns a simulated HIP device memory space.
func NewHIPSpace(deviceID int) MemSpace { return &deviceSpace{kind: "hip", deviceID: deviceID} }

func (s *deviceSpace) Name() string { return s.kind }

func (s *deviceSpace) Allocate(n int) (unsafe.Pointer, error) {
	if n < 0 {
		return nil, errs.New(errs.AllocationError, "MemSpace.Allocate", "negative size")
	}
	s.mu.Lock()
	s.live++
	s.mu.Unlock()
	if n == 0 {
		return nil, nil
	}
	buf := make([]byte, n)
	return unsafe.Pointer(&buf[0]), nil
}

func (s *deviceSpace) Free(p unsafe.Pointer) {
	s.mu.Lock()
	s.live--
	s.mu.Unlock()
}

func (s *deviceSpace) CopyFrom(other MemSpace, n int, src, dst unsafe.Pointer) error {
	if n == 0 {
		return nil
	}
	srcSlice := unsafe.Slice((*byte)(src), n)
	dstSlice := unsafe.Slice((*byte)(dst), n)
	copy(dstSlice, srcSlice)
	return nil
}

// distSpace is a marker memory space for the Distributed executor: it never
// allocates directly, it delegates to the sub-executor's own space.
type distSpace struct {
	sub MemSpace
}

// NewDistributedSpace wraps the per-rank sub-executor's memory space.
func NewDistributedSpace(sub MemSpace) MemSpace { return &distSpace{sub: sub} }

func (s *distSpace) Name() string { return "distributed(" + s.sub.Name() + ")" }
func (s *distSpace) Allocate(n int) (unsafe.Pointer, error) { return s.sub.Allocate(n) }
func (s *distSpace) Free(p unsafe.Pointer)                  { s.sub.Free(p) }
func (s *distSpace) CopyFrom(other MemSpace, n int, src, dst unsafe.Pointer) error {
	return s.sub.CopyFrom(other, n, src, dst)
}
