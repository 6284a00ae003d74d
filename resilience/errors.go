package resilience

import "errors"

// Sentinel errors for call execution.
var (
	// ErrTimeout is returned when a single attempt exceeds the policy timeout.
	ErrTimeout = errors.New("resilience: operation timed out")

	// ErrMaxRetriesExceeded wraps the last failure once retries are exhausted.
	ErrMaxRetriesExceeded = errors.New("resilience: max retries exceeded")
)
