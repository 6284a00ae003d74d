package cache

import (
	"strings"
	"testing"
)

func TestDefaultKeyer_Deterministic(t *testing.T) {
	keyer := NewDefaultKeyer()

	params := map[string]string{
		"originLocationCode":      "JFK",
		"destinationLocationCode": "LHR",
		"departureDate":           "2026-09-01",
		"adults":                  "2",
	}

	key1, err := keyer.Key("flight-offers", params)
	if err != nil {
		t.Fatalf("Key failed: %v", err)
	}

	for i := 0; i < 20; i++ {
		key2, err := keyer.Key("flight-offers", params)
		if err != nil {
			t.Fatalf("Key failed: %v", err)
		}
		if key1 != key2 {
			t.Fatalf("Key not deterministic: %q != %q", key1, key2)
		}
	}
}

func TestDefaultKeyer_OrderIndependent(t *testing.T) {
	keyer := NewDefaultKeyer()

	// Maps iterate in random order; canonicalization must hide that.
	a := map[string]any{"a": "1", "b": "2", "c": map[string]any{"x": 1, "y": 2}}
	b := map[string]any{"c": map[string]any{"y": 2, "x": 1}, "b": "2", "a": "1"}

	keyA, err := keyer.Key("op", a)
	if err != nil {
		t.Fatalf("Key failed: %v", err)
	}
	keyB, err := keyer.Key("op", b)
	if err != nil {
		t.Fatalf("Key failed: %v", err)
	}

	if keyA != keyB {
		t.Errorf("equivalent params produced different keys: %q vs %q", keyA, keyB)
	}
}

func TestDefaultKeyer_DistinctInputs(t *testing.T) {
	keyer := NewDefaultKeyer()

	key1, _ := keyer.Key("flight-offers", map[string]string{"adults": "1"})
	key2, _ := keyer.Key("flight-offers", map[string]string{"adults": "2"})
	key3, _ := keyer.Key("hotel-offers", map[string]string{"adults": "1"})

	if key1 == key2 {
		t.Error("different params should produce different keys")
	}
	if key1 == key3 {
		t.Error("different operations should produce different keys")
	}
}

func TestDefaultKeyer_Format(t *testing.T) {
	keyer := NewDefaultKeyer()

	key, err := keyer.Key("locations", map[string]string{"keyword": "paris"})
	if err != nil {
		t.Fatalf("Key failed: %v", err)
	}

	if !strings.HasPrefix(key, "amadeus:locations:") {
		t.Errorf("key %q missing expected prefix", key)
	}
	hash := strings.TrimPrefix(key, "amadeus:locations:")
	if len(hash) != 16 {
		t.Errorf("hash part is %d chars, want 16", len(hash))
	}
	if err := ValidateKey(key); err != nil {
		t.Errorf("generated key failed validation: %v", err)
	}
}

func TestDefaultKeyer_NilParams(t *testing.T) {
	keyer := NewDefaultKeyer()

	key1, err := keyer.Key("ping", nil)
	if err != nil {
		t.Fatalf("Key(nil) failed: %v", err)
	}
	key2, _ := keyer.Key("ping", nil)
	if key1 != key2 {
		t.Error("nil params should produce a stable key")
	}
}
