package resilience

import (
	"context"
	"errors"
	"net"
	"strings"
)

// Class is the retry classification of a failure.
type Class int

const (
	// ClassTerminal marks failures that will not succeed on retry
	// (malformed requests, auth failures, not-found results).
	ClassTerminal Class = iota

	// ClassTransient marks failures likely to succeed on retry
	// (rate limiting, timeouts, transient network conditions).
	ClassTransient
)

// String returns the string representation of the class.
func (c Class) String() string {
	switch c {
	case ClassTransient:
		return "transient"
	case ClassTerminal:
		return "terminal"
	default:
		return "unknown"
	}
}

// StatusCoder is implemented by upstream errors that carry an HTTP-like
// status code. The classifier uses it without depending on any concrete
// upstream error type.
type StatusCoder interface {
	StatusCode() int
}

// Classify reports whether a failure is worth retrying. It is a pure
// function of the error value, so it can be tested without a live upstream.
//
// Transient: rate limiting (429), server-side errors (5xx), attempt
// timeouts, and transport-level transient conditions. Terminal: everything
// else. Retrying terminal failures wastes time and masks bugs.
func Classify(err error) Class {
	if err == nil {
		return ClassTerminal
	}

	// Attempt deadline and transport timeouts.
	if errors.Is(err, ErrTimeout) || errors.Is(err, context.DeadlineExceeded) {
		return ClassTransient
	}

	// Caller cancellation is not retryable.
	if errors.Is(err, context.Canceled) {
		return ClassTerminal
	}

	// Upstream status signal.
	var sc StatusCoder
	if errors.As(err, &sc) {
		code := sc.StatusCode()
		switch {
		case code == 429:
			return ClassTransient
		case code >= 500:
			return ClassTransient
		case code > 0:
			return ClassTerminal
		}
	}

	// Transport-level transient conditions.
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ClassTransient
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return ClassTransient
	}

	if hasTransientMessage(err.Error()) {
		return ClassTransient
	}

	return ClassTerminal
}

// transientFragments are message fragments that indicate a transient
// condition when no structured signal is available.
var transientFragments = []string{
	"timeout",
	"timed out",
	"connection reset",
	"connection refused",
	"no such host",
	"econnreset",
	"enotfound",
	"etimedout",
	"rate limit",
	"too many requests",
}

func hasTransientMessage(msg string) bool {
	msg = strings.ToLower(msg)
	for _, frag := range transientFragments {
		if strings.Contains(msg, frag) {
			return true
		}
	}
	return false
}
