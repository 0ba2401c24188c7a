package sparse

import (
	"math"
	"sync/atomic"
	"unsafe"
)

// atomicAddFloat64 adds delta to *addr using a compare-and-swap retry loop,
// standing in for the atomicAdd intrinsic the spec's load_balance,
// merge_path and HYBRID COO segment-scan SpMV kernels rely on to
// accumulate partial sums across cooperative groups/warps that share a row
// (§4.D, §5 "inter-block coordination uses atomics... only where
// documented").
func atomicAddFloat64(addr *float64, delta float64) {
	bits := (*uint64)(unsafe.Pointer(addr))
	for {
		old := atomic.LoadUint64(bits)
		newVal := math.Float64frombits(old) + delta
		if atomic.CompareAndSwapUint64(bits, old, math.Float64bits(newVal)) {
			return
		}
	}
}
