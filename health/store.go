package health

import (
	"context"
	"fmt"

	"github.com/markesphere/amadeus-mcp-server-standalone/cache"
)

// DefaultSoftEntryCap is the entry count past which the store check
// reports degraded. The cache is unbounded by design; this surfaces
// unexpected growth before it becomes a memory problem.
const DefaultSoftEntryCap = 10000

// StoreChecker reports on the response cache.
type StoreChecker struct {
	store        cache.Store
	softEntryCap int
}

// NewStoreChecker creates a checker for the given store. A cap of 0 uses
// DefaultSoftEntryCap; a negative cap disables the degraded threshold.
func NewStoreChecker(store cache.Store, softEntryCap int) *StoreChecker {
	if softEntryCap == 0 {
		softEntryCap = DefaultSoftEntryCap
	}
	return &StoreChecker{store: store, softEntryCap: softEntryCap}
}

// Name returns "cache".
func (c *StoreChecker) Name() string {
	return "cache"
}

// Check reports the store's entry count.
func (c *StoreChecker) Check(_ context.Context) Result {
	if c.store == nil {
		return Unhealthy("cache store not configured", cache.ErrNilStore)
	}

	entries := c.store.Len()
	details := map[string]any{"entries": entries}

	if c.softEntryCap > 0 && entries > c.softEntryCap {
		return Degraded(fmt.Sprintf("cache holds %d entries, above soft cap %d", entries, c.softEntryCap)).
			WithDetails(details)
	}
	return Healthy("cache operational").WithDetails(details)
}

// Ensure StoreChecker implements Checker
var _ Checker = (*StoreChecker)(nil)
