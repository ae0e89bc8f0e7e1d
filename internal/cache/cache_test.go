package cache

import (
	"testing"
	"time"
)

func TestTTLSetGet(t *testing.T) {
	c := NewTTL[string](time.Minute)
	c.Set("k", "v")

	got, ok := c.Get("k")
	if !ok {
		t.Fatalf("expected hit before TTL elapsed")
	}
	if got != "v" {
		t.Fatalf("expected %q, got %q", "v", got)
	}
}

func TestTTLExpiry(t *testing.T) {
	c := NewTTL[int](20 * time.Millisecond)
	c.Set("k", 42)

	time.Sleep(40 * time.Millisecond)

	if _, ok := c.Get("k"); ok {
		t.Fatalf("expected miss after TTL elapsed")
	}
	if size := c.Size(); size != 0 {
		t.Fatalf("expired entry still counted in size: %d", size)
	}
}

func TestTTLMissOnAbsentKey(t *testing.T) {
	c := NewTTL[string](time.Minute)
	if _, ok := c.Get("absent"); ok {
		t.Fatalf("expected miss for absent key")
	}
}

func TestTTLClear(t *testing.T) {
	c := NewTTL[string](time.Minute)
	c.Set("a", "1")
	c.Set("b", "2")

	c.Clear()

	if size := c.Size(); size != 0 {
		t.Fatalf("expected empty cache after Clear, size=%d", size)
	}
}

func TestTTLStats(t *testing.T) {
	c := NewTTL[string](5 * time.Minute)
	c.Set("a", "1")

	s := c.Stats()
	if s.Size != 1 {
		t.Fatalf("expected size 1, got %d", s.Size)
	}
	if s.TTLSeconds != 300 {
		t.Fatalf("expected ttl 300s, got %v", s.TTLSeconds)
	}
}
