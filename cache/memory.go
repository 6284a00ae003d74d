package cache

import (
	"context"
	"sync"
	"time"
)

// DefaultSweepInterval is how often the background sweep reclaims expired
// entries. Sweeping only bounds memory; correctness relies on the lazy
// expiry check in Get.
const DefaultSweepInterval = 5 * time.Minute

// MemoryStore is an in-memory Store implementation.
//
// Capacity is unbounded: the store holds low-volume travel-API responses
// whose TTLs keep growth in check. Callers needing a hard cap must apply
// one externally.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]*storeEntry

	sweepInterval time.Duration
	done          chan struct{}
	closeOnce     sync.Once
}

type storeEntry struct {
	value     []byte
	expiresAt time.Time
}

// StoreOption configures a MemoryStore.
type StoreOption func(*MemoryStore)

// WithSweepInterval sets the background sweep interval.
// A non-positive interval disables the sweep entirely.
func WithSweepInterval(d time.Duration) StoreOption {
	return func(s *MemoryStore) {
		s.sweepInterval = d
	}
}

// NewMemoryStore creates a new in-memory store and starts its background
// sweep. Call Close to stop the sweep goroutine.
func NewMemoryStore(opts ...StoreOption) *MemoryStore {
	s := &MemoryStore{
		entries:       make(map[string]*storeEntry),
		sweepInterval: DefaultSweepInterval,
		done:          make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.sweepInterval > 0 {
		go s.sweep()
	}
	return s
}

// Get retrieves a value from the store. Returns (nil, false) on miss or expiry.
func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool) {
	s.mu.RLock()
	entry, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok {
		return nil, false
	}

	// Expired entries are never served; reclaim lazily on observation.
	if !time.Now().Before(entry.expiresAt) {
		s.mu.Lock()
		// Re-check under the write lock: a concurrent Set may have
		// replaced the entry with a fresh one.
		if cur, ok := s.entries[key]; ok && cur == entry {
			delete(s.entries, key)
		}
		s.mu.Unlock()
		return nil, false
	}

	return entry.value, true
}

// Set stores a value with the given TTL. Last writer wins. TTL<=0 means
// the value is not cached.
func (s *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := ValidateKey(key); err != nil {
		return err
	}

	s.mu.Lock()
	s.entries[key] = &storeEntry{
		value:     value,
		expiresAt: time.Now().Add(ttl),
	}
	s.mu.Unlock()

	return nil
}

// Delete removes a value from the store. Idempotent - no error on miss.
func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
	return nil
}

// Len reports the number of entries currently held.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Close stops the background sweep. Safe to call more than once.
func (s *MemoryStore) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
	})
}

// sweep periodically removes expired entries that nobody has looked up,
// so abandoned keys do not accumulate forever.
func (s *MemoryStore) sweep() {
	ticker := time.NewTicker(s.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case now := <-ticker.C:
			s.removeExpired(now)
		}
	}
}

func (s *MemoryStore) removeExpired(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, entry := range s.entries {
		if !now.Before(entry.expiresAt) {
			delete(s.entries, key)
		}
	}
}

// Ensure MemoryStore implements Store
var _ Store = (*MemoryStore)(nil)
