package cache

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestCacheKey(t *testing.T) {
	k1 := CacheKey("llama-3.3-70b-versatile", "prompt text")
	k2 := CacheKey("llama-3.3-70b-versatile", "prompt text")
	if k1 != k2 {
		t.Errorf("same inputs produced different keys: %s vs %s", k1, k2)
	}

	if !strings.HasPrefix(k1, "ddrgen:v1:") {
		t.Errorf("missing version prefix: %s", k1)
	}

	k3 := CacheKey("llama-3.3-70b-versatile", "other prompt")
	if k1 == k3 {
		t.Errorf("different prompts produced the same key")
	}

	// Joining must not be ambiguous across part boundaries
	if CacheKey("ab", "c") == CacheKey("a", "bc") {
		t.Errorf("part boundaries collided")
	}
}

func TestMemoryCache(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if _, found := c.Get("missing"); found {
		t.Errorf("expected miss for absent key")
	}

	if err := c.Set("k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	val, found := c.Get("k")
	if !found || !bytes.Equal(val, []byte("v")) {
		t.Errorf("get after set: found=%v val=%q", found, val)
	}

	if err := c.Delete("k"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, found := c.Get("k"); found {
		t.Errorf("expected miss after delete")
	}
}

func TestDiskCache(t *testing.T) {
	dir := t.TempDir()
	c := NewDiskCache(dir, time.Minute)

	key := CacheKey("model", "prompt")
	if err := c.Set(key, []byte("response"), 0); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	val, found := c.Get(key)
	if !found || !bytes.Equal(val, []byte("response")) {
		t.Errorf("get after set: found=%v val=%q", found, val)
	}

	// A fresh instance over the same directory sees the entry
	c2 := NewDiskCache(dir, time.Minute)
	if _, found := c2.Get(key); !found {
		t.Errorf("entry not visible to new instance")
	}

	if err := c.Clear(); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if _, found := c.Get(key); found {
		t.Errorf("expected miss after clear")
	}
}

func TestDiskCache_Expiry(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Minute)

	key := CacheKey("model", "prompt")
	if err := c.Set(key, []byte("response"), time.Millisecond); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	time.Sleep(5 * time.Millisecond)
	if _, found := c.Get(key); found {
		t.Errorf("expected expired entry to miss")
	}
}

func TestLayeredCache(t *testing.T) {
	dir := t.TempDir()
	c := NewLayeredCache(time.Minute, dir, time.Minute)

	key := CacheKey("model", "prompt")
	if err := c.Set(key, []byte("response"), time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	val, found := c.Get(key)
	if !found || !bytes.Equal(val, []byte("response")) {
		t.Errorf("get after set: found=%v val=%q", found, val)
	}

	// Disk hit promotes into memory when the memory layer is cold
	c2 := NewLayeredCache(time.Minute, dir, time.Minute)
	if _, found := c2.Get(key); !found {
		t.Errorf("expected disk hit through fresh layered cache")
	}
	if _, found := c2.memory.Get(key); !found {
		t.Errorf("expected promotion into memory layer")
	}
}
