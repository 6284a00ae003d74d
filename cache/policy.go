package cache

import "time"

// TTL tiers used by the upstream client. Search results go stale quickly;
// reference data (airports, cities, hotel lists) is near-static.
const (
	GeneralTTL   = 10 * time.Minute
	ReferenceTTL = 24 * time.Hour
)

// Policy configures caching behavior.
type Policy struct {
	// DefaultTTL is the TTL to use when none is specified.
	// If zero, caching is disabled by default.
	DefaultTTL time.Duration

	// ReferenceTTL is the TTL for near-static reference data.
	ReferenceTTL time.Duration

	// MaxTTL is the maximum allowed TTL. Override TTLs are clamped to this.
	// If zero, no maximum is enforced.
	MaxTTL time.Duration
}

// DefaultPolicy returns the default caching policy.
func DefaultPolicy() Policy {
	return Policy{
		DefaultTTL:   GeneralTTL,
		ReferenceTTL: ReferenceTTL,
		MaxTTL:       ReferenceTTL,
	}
}

// NoCachePolicy returns a policy that disables caching entirely.
func NoCachePolicy() Policy {
	return Policy{}
}

// ShouldCache returns true if caching is enabled by this policy.
func (p Policy) ShouldCache() bool {
	return p.DefaultTTL > 0
}

// EffectiveTTL returns the TTL to use, applying defaults and clamping.
func (p Policy) EffectiveTTL(override time.Duration) time.Duration {
	ttl := override
	if ttl <= 0 {
		ttl = p.DefaultTTL
	}
	if p.MaxTTL > 0 && ttl > p.MaxTTL {
		ttl = p.MaxTTL
	}
	return ttl
}

// EffectiveReferenceTTL returns the TTL for reference data, clamped to MaxTTL.
func (p Policy) EffectiveReferenceTTL() time.Duration {
	return p.EffectiveTTL(p.ReferenceTTL)
}
