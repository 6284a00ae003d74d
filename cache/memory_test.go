package cache

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"
)

func newTestStore(t *testing.T, opts ...StoreOption) *MemoryStore {
	t.Helper()
	s := NewMemoryStore(opts...)
	t.Cleanup(s.Close)
	return s
}

func TestMemoryStore_GetSetDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	val, ok := store.Get(ctx, "nonexistent")
	if ok {
		t.Error("Get on empty store should return ok=false")
	}
	if val != nil {
		t.Error("Get on empty store should return nil value")
	}

	key := "test-key"
	value := []byte("test-value")
	if err := store.Set(ctx, key, value, 5*time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, ok := store.Get(ctx, key)
	if !ok {
		t.Error("Get after Set should return ok=true")
	}
	if !bytes.Equal(got, value) {
		t.Errorf("Get returned %q, want %q", got, value)
	}

	if err := store.Delete(ctx, key); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if _, ok := store.Get(ctx, key); ok {
		t.Error("Get after Delete should return ok=false")
	}

	if err := store.Delete(ctx, "nonexistent"); err != nil {
		t.Errorf("Delete on non-existent key should not error, got: %v", err)
	}
}

func TestMemoryStore_Expiry(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Set(ctx, "key", []byte("value"), 30*time.Millisecond); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	if _, ok := store.Get(ctx, "key"); !ok {
		t.Error("Get before expiry should return ok=true")
	}

	time.Sleep(50 * time.Millisecond)

	if _, ok := store.Get(ctx, "key"); ok {
		t.Error("Get after expiry should return ok=false")
	}

	// The expired entry was reclaimed by the lazy check.
	if n := store.Len(); n != 0 {
		t.Errorf("Len() = %d after lazy reclaim, want 0", n)
	}
}

func TestMemoryStore_ZeroTTLNotCached(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Set(ctx, "key", []byte("value"), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if _, ok := store.Get(ctx, "key"); ok {
		t.Error("TTL=0 should not cache")
	}

	if err := store.Set(ctx, "key", []byte("value"), -time.Second); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if _, ok := store.Get(ctx, "key"); ok {
		t.Error("negative TTL should not cache")
	}
}

func TestMemoryStore_InvalidKeyRejected(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Set(ctx, "", []byte("value"), time.Minute); err == nil {
		t.Error("Set with empty key should error")
	}
	if err := store.Set(ctx, "bad\nkey", []byte("value"), time.Minute); err == nil {
		t.Error("Set with newline in key should error")
	}
}

func TestMemoryStore_LastWriterWins(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Set(ctx, "key", []byte("first"), time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := store.Set(ctx, "key", []byte("second"), time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, ok := store.Get(ctx, "key")
	if !ok {
		t.Fatal("Get should return ok=true")
	}
	if string(got) != "second" {
		t.Errorf("Get returned %q, want %q", got, "second")
	}
}

func TestMemoryStore_Sweep(t *testing.T) {
	store := newTestStore(t, WithSweepInterval(20*time.Millisecond))
	ctx := context.Background()

	if err := store.Set(ctx, "short", []byte("value"), 10*time.Millisecond); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := store.Set(ctx, "long", []byte("value"), time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	// Nobody looks up "short"; the sweep alone must reclaim it.
	deadline := time.Now().Add(time.Second)
	for store.Len() != 1 {
		if time.Now().After(deadline) {
			t.Fatalf("sweep did not reclaim expired entry, Len() = %d", store.Len())
		}
		time.Sleep(10 * time.Millisecond)
	}

	if _, ok := store.Get(ctx, "long"); !ok {
		t.Error("unexpired entry should survive the sweep")
	}
}

func TestMemoryStore_CloseIdempotent(t *testing.T) {
	store := NewMemoryStore()
	store.Close()
	store.Close()
}

func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := fmt.Sprintf("key-%d", n%3)
			for j := 0; j < 100; j++ {
				_ = store.Set(ctx, key, []byte("value"), time.Minute)
				store.Get(ctx, key)
				if j%10 == 0 {
					_ = store.Delete(ctx, key)
				}
			}
		}(i)
	}
	wg.Wait()
}

func TestValidateKey(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		wantErr error
	}{
		{"valid", "amadeus:flight-offers:abc123", nil},
		{"empty", "", ErrInvalidKey},
		{"whitespace only", "   ", ErrInvalidKey},
		{"newline", "key\nwith-newline", ErrInvalidKey},
		{"carriage return", "key\rwith-cr", ErrInvalidKey},
		{"too long", strings.Repeat("a", MaxKeyLength+1), ErrKeyTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateKey(tt.key)
			if err != tt.wantErr {
				t.Errorf("ValidateKey(%q) = %v, want %v", tt.key, err, tt.wantErr)
			}
		})
	}
}
