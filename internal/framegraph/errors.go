package framegraph

import "errors"

// Contract violations surfaced by declaration and execution calls. The
// first four are programmer errors meant to be eliminated during
// development; ErrAllocationFailure is the only runtime condition and
// aborts the executing graph without rolling back already-recorded
// transitions.
var (
	// ErrUseAfterExecute marks a declaration attempted after Execute began.
	ErrUseAfterExecute = errors.New("graph already executed")

	// ErrInvalidHandle marks a stale or foreign resource, view or pass
	// reference.
	ErrInvalidHandle = errors.New("invalid handle")

	// ErrCapabilityMismatch marks a view or binding requested on a
	// resource lacking the required usage flag.
	ErrCapabilityMismatch = errors.New("resource capability mismatch")

	// ErrInvalidComputePass marks a compute-flagged pass declaring
	// render-target writes.
	ErrInvalidComputePass = errors.New("compute pass declares render targets")

	// ErrAllocationFailure marks a failed physical resource acquisition
	// at execute time.
	ErrAllocationFailure = errors.New("physical resource allocation failed")
)
