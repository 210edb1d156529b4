package cache

import (
	"testing"
	"time"
)

func TestTTLCacheSetGet(t *testing.T) {
	c := NewTTLCache[int64, string]()
	c.Set(1, "one", time.Minute)

	got, ok := c.Get(1)
	if !ok || got != "one" {
		t.Fatalf("expected hit with %q, got %q ok=%v", "one", got, ok)
	}
	if _, ok := c.Get(2); ok {
		t.Fatal("expected miss for absent key")
	}
}

func TestTTLCacheExpiry(t *testing.T) {
	c := NewTTLCache[int64, string]()
	c.Set(1, "one", time.Millisecond)
	time.Sleep(5 * time.Millisecond)

	if _, ok := c.Get(1); ok {
		t.Fatal("expected expired entry to miss")
	}
}

func TestTTLCacheZeroTTLNeverExpires(t *testing.T) {
	c := NewTTLCache[int64, string]()
	c.Set(1, "one", 0)

	if _, ok := c.Get(1); !ok {
		t.Fatal("expected zero-TTL entry to stay cached")
	}
}

func TestTTLCacheDeleteAndFlush(t *testing.T) {
	c := NewTTLCache[int64, string]()
	c.Set(1, "one", time.Minute)
	c.Set(2, "two", time.Minute)

	c.Delete(1)
	if _, ok := c.Get(1); ok {
		t.Fatal("expected deleted entry to miss")
	}

	c.Flush()
	if _, ok := c.Get(2); ok {
		t.Fatal("expected flushed cache to miss")
	}
}

func TestNoopCache(t *testing.T) {
	var c Cache[int64, string] = NoopCache[int64, string]{}
	c.Set(1, "one", time.Minute)
	if _, ok := c.Get(1); ok {
		t.Fatal("expected noop cache to always miss")
	}
	c.Delete(1)
	c.Flush()
}
