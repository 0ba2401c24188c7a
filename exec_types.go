package sparse

import "github.com/sparsekit/ginkgo-go/exec"

// Executor aliases exec.Executor, keeping the rest of this package's files
// free of a direct "exec." qualifier sprinkled through teacher-derived code,
// while still binding every matrix format to the same exec.Executor
// abstraction.
type Executor = exec.Executor

// NewHostExecutor and NewReferenceExecutor re-export the exec package's host
// and reference factories so callers constructing matrices do not need a
// second import for the common case. The CUDA and HIP factories are only
// available from package exec (exec.NewCUDA, exec.NewHIP).
var (
	NewHostExecutor      = exec.NewHost
	NewReferenceExecutor = exec.NewReference
)
