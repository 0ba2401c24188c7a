// Package errs defines the domain error taxonomy shared by the executor,
// matrix and distributed layers, plus the Dim size type used throughout
// the module in place of bare (rows, cols int) pairs.
package errs

import (
	"errors"
	"fmt"

	pkgerrors "github.com/pkg/errors"
)

// Kind classifies a domain error so callers can branch on recoverability
// without string matching.
type Kind int

const (
	// NotImplemented means the operation-executor pair has no kernel.
	NotImplemented Kind = iota
	// NotSupported means the operation cannot be performed on this object.
	NotSupported
	// DimensionMismatch means sizes were incompatible in an operation.
	DimensionMismatch
	// OutOfBounds means an index or size exceeded an allocation.
	OutOfBounds
	// AllocationError means a memory space refused an allocation.
	AllocationError
	// MemorySpaceMismatch means an object lives on the wrong memory space
	// for the requested executor.
	MemorySpaceMismatch
	// KernelLaunchError means a device kernel returned an error code.
	KernelLaunchError
	// MpiError means a collective returned non-zero.
	MpiError
	// ValueMismatch means a data precondition was violated.
	ValueMismatch
)

func (k Kind) String() string {
	switch k {
	case NotImplemented:
		return "not implemented"
	case NotSupported:
		return "not supported"
	case DimensionMismatch:
		return "dimension mismatch"
	case OutOfBounds:
		return "out of bounds"
	case AllocationError:
		return "allocation error"
	case MemorySpaceMismatch:
		return "memory space mismatch"
	case KernelLaunchError:
		return "kernel launch error"
	case MpiError:
		return "mpi error"
	case ValueMismatch:
		return "value mismatch"
	}
	return "unknown error"
}

// Error is the concrete domain error surfaced by this module. It carries
// enough context (Kind, Op, Detail) for a caller to log or branch on without
// parsing a message string, and wraps any underlying Cause.
type Error struct {
	Kind   Kind
	Op     string
	Detail string
	Cause  error
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %s", e.Op, e.Kind, e.Detail)
}

// Unwrap exposes the wrapped cause for errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New constructs an *Error with no underlying cause.
func New(kind Kind, op, detail string) *Error {
	return &Error{Kind: kind, Op: op, Detail: detail}
}

// Wrap constructs an *Error around a cause, preserving its chain via
// github.com/pkg/errors so callers can still recover the root cause with
// errors.Cause.
func Wrap(kind Kind, op, detail string, cause error) *Error {
	return &Error{Kind: kind, Op: op, Detail: detail, Cause: pkgerrors.Wrap(cause, op)}
}

// Is reports whether err is an *Error of the given Kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
