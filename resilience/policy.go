package resilience

import (
	"math"
	"time"
)

// Policy bounds one logical upstream call. Immutable per call site.
type Policy struct {
	// MaxRetries is the number of additional attempts after the first.
	// Default: 2
	MaxRetries int

	// InitialDelay is the backoff before the first retry. Subsequent
	// retries double it: delay(n) = InitialDelay * 2^n, n zero-indexed.
	// Default: 1s
	InitialDelay time.Duration

	// MaxDelay caps the backoff between retries.
	// Default: 30s
	MaxDelay time.Duration

	// Timeout is the hard deadline for each individual attempt.
	// Default: 25s, sized to stay under the surrounding protocol's
	// response-time budget.
	Timeout time.Duration
}

// DefaultPolicy returns the default call policy.
func DefaultPolicy() Policy {
	return Policy{
		MaxRetries:   2,
		InitialDelay: time.Second,
		MaxDelay:     30 * time.Second,
		Timeout:      25 * time.Second,
	}
}

// withDefaults fills in zero fields. A negative MaxRetries is treated as
// zero (single attempt).
func (p Policy) withDefaults() Policy {
	if p.MaxRetries < 0 {
		p.MaxRetries = 0
	}
	if p.InitialDelay <= 0 {
		p.InitialDelay = time.Second
	}
	if p.MaxDelay <= 0 {
		p.MaxDelay = 30 * time.Second
	}
	if p.Timeout <= 0 {
		p.Timeout = 25 * time.Second
	}
	return p
}

// Backoff returns the delay inserted after the given zero-indexed attempt,
// capped at MaxDelay.
func (p Policy) Backoff(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}

	multiplier := math.Pow(2, float64(attempt))
	delay := time.Duration(float64(p.InitialDelay) * multiplier)

	if delay > p.MaxDelay || delay <= 0 {
		delay = p.MaxDelay
	}
	return delay
}
