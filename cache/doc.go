// Package cache provides bounded-lifetime memoization of upstream API
// responses.
//
// It provides a Store interface with an in-memory implementation,
// SHA-256-based key derivation from request parameters, and TTL tiers
// for volatile search results versus near-static reference data.
package cache
