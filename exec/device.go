package exec

import "github.com/sparsekit/ginkgo-go/errs"

// HandleManager owns a scoped vendor handle (cuBLAS/cuSPARSE or their HIP
// equivalents) for the lifetime of the executor that created it. Only the
// owning Executor may use the handle; callers must serialize concurrent use
// (§5 "BLAS/SPARSE handles are owned by one executor instance and may not be
// used concurrently from multiple host threads").
type HandleManager struct {
	DeviceID int
	closed   bool
}

// Close releases the handle. Idempotent.
func (h *HandleManager) Close() {
	h.closed = true
}

// deviceExecutor holds the fields shared by the simulated CUDA and HIP
// executors: device id, warp size, multiprocessor count, and the scoped
// handle manager, per §4.B.
type deviceExecutor struct {
	baseExecutor
	deviceID         int
	warpSize         int
	multiprocessors  int
	handle           *HandleManager
	resetOnLastClose bool
}

// DeviceOption configures a CUDA/HIP executor at construction.
type DeviceOption func(*deviceExecutor)

// WithResetOnLast enables the device-reset hook firing after the last
// accelerator executor on this device id is destroyed (§9).
func WithResetOnLast() DeviceOption {
	return func(d *deviceExecutor) { d.resetOnLastClose = true }
}

// WithMultiprocessors overrides the simulated SM count used by the
// automatical CSR SpMV strategy's device-property tie-break (§4.D).
func WithMultiprocessors(n int) DeviceOption {
	return func(d *deviceExecutor) { d.multiprocessors = n }
}

// WithWarpSize overrides the simulated warp/wavefront width.
func WithWarpSize(n int) DeviceOption {
	return func(d *deviceExecutor) { d.warpSize = n }
}

func newDeviceExecutor(kind Kind, deviceID int, master Executor, space MemSpace, opts []DeviceOption) *deviceExecutor {
	d := &deviceExecutor{
		deviceID:        deviceID,
		warpSize:        32,
		multiprocessors: 16,
		handle:          &HandleManager{DeviceID: deviceID},
	}
	d.kind = kind
	d.space = space
	d.master = master
	for _, opt := range opts {
		opt(d)
	}
	var hook ResetHook
	if d.resetOnLastClose {
		hook = func(id int) { d.handle.Close() }
	}
	registerDevice(deviceID, hook)
	return d
}

// DeviceID returns the simulated device ordinal.
func (d *deviceExecutor) DeviceID() int { return d.deviceID }

// WarpSize returns the simulated SIMT width used to pick ELL worker counts
// and SpGEMM subwarp sizes.
func (d *deviceExecutor) WarpSize() int { return d.warpSize }

// Multiprocessors returns the simulated SM/CU count.
func (d *deviceExecutor) Multiprocessors() int { return d.multiprocessors }

// Handle returns the scoped vendor handle manager owned by this executor.
func (d *deviceExecutor) Handle() *HandleManager { return d.handle }

// Release decrements the device's live-executor count, firing the reset
// hook if this was the last live executor on deviceID.
func (d *deviceExecutor) Release() {
	releaseDevice(d.deviceID)
}

// CUDAExecutor is a simulated NVIDIA GPU executor (see MemSpace doc comment
// for why "simulated": no cgo/CUDA toolchain dependency is carried).
type CUDAExecutor struct {
	deviceExecutor
}

// NewCUDA constructs a CUDA executor for deviceID backed by master (the host
// executor driving it), per the factory contract in §6.
func NewCUDA(deviceID int, master Executor, opts ...DeviceOption) (*CUDAExecutor, error) {
	if master == nil {
		return nil, errs.New(errs.NotSupported, "exec.NewCUDA", "master executor required")
	}
	e := &CUDAExecutor{deviceExecutor: *newDeviceExecutor(CUDAKind, deviceID, master, NewCUDASpace(deviceID), opts)}
	return e, nil
}

func (e *CUDAExecutor) Run(op *Operation) error { return e.dispatch(op) }
func (e *CUDAExecutor) RunClosure(host, dist, cuda, hip func() error) error {
	return runClosureByKind(e.kind, host, dist, cuda, hip)
}

// HIPExecutor is a simulated AMD GPU executor.
type HIPExecutor struct {
	deviceExecutor
}

// NewHIP constructs a HIP executor for deviceID backed by master.
func NewHIP(deviceID int, master Executor, opts ...DeviceOption) (*HIPExecutor, error) {
	if master == nil {
		return nil, errs.New(errs.NotSupported, "exec.NewHIP", "master executor required")
	}
	e := &HIPExecutor{deviceExecutor: *newDeviceExecutor(HIPKind, deviceID, master, NewHIPSpace(deviceID), opts)}
	return e, nil
}

func (e *HIPExecutor) Run(op *Operation) error { return e.dispatch(op) }
func (e *HIPExecutor) RunClosure(host, dist, cuda, hip func() error) error {
	return runClosureByKind(e.kind, host, dist, cuda, hip)
}
