package health

import (
	"context"
	"time"
)

// Pinger is the minimal upstream surface the checker needs. The Amadeus
// client satisfies it by acquiring an access token.
type Pinger interface {
	Ping(ctx context.Context) error
}

// UpstreamChecker verifies the upstream API is reachable and accepting
// our credentials.
type UpstreamChecker struct {
	pinger  Pinger
	timeout time.Duration
}

// NewUpstreamChecker creates a checker for the upstream API.
// A timeout of 0 defaults to 10 seconds.
func NewUpstreamChecker(pinger Pinger, timeout time.Duration) *UpstreamChecker {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &UpstreamChecker{pinger: pinger, timeout: timeout}
}

// Name returns "upstream".
func (c *UpstreamChecker) Name() string {
	return "upstream"
}

// Check pings the upstream within the checker's timeout.
func (c *UpstreamChecker) Check(ctx context.Context) Result {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	if err := c.pinger.Ping(ctx); err != nil {
		return Unhealthy("upstream unreachable", err)
	}
	return Healthy("upstream reachable").WithDetails(map[string]any{
		"latency": time.Since(start).String(),
	})
}

// Ensure UpstreamChecker implements Checker
var _ Checker = (*UpstreamChecker)(nil)
