package cache

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	// Set does nothing (no error)
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	// Delete does nothing (no error)
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestHash(t *testing.T) {
	// Test determinism
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	// Test different inputs produce different hashes
	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	// Test hash length (SHA-256 produces 64 hex chars)
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	// Options participate in the key
	k1 := k.ReportKey("hash123", ReportKeyOpts{ToolVersion: "1.0", Strict: false})
	k2 := k.ReportKey("hash123", ReportKeyOpts{ToolVersion: "1.0", Strict: true})
	k3 := k.ReportKey("hash123", ReportKeyOpts{ToolVersion: "1.1", Strict: false})
	if k1 == k2 || k1 == k3 {
		t.Error("Different ReportKeyOpts should produce different keys")
	}

	// Same inputs reproduce the same key
	if k1 != k.ReportKey("hash123", ReportKeyOpts{ToolVersion: "1.0"}) {
		t.Error("ReportKey should be deterministic")
	}

	// Different assets never collide
	if k1 == k.ReportKey("hash456", ReportKeyOpts{ToolVersion: "1.0"}) {
		t.Error("Different asset hashes should produce different keys")
	}
}

func TestScopedKeyer(t *testing.T) {
	scoped := NewScopedKeyer(NewDefaultKeyer(), "projA:")

	key := scoped.ReportKey("hash123", ReportKeyOpts{})
	if len(key) < 7 || key[:6] != "projA:" {
		t.Errorf("ScopedKeyer ReportKey should be prefixed: %s", key)
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	// Should use DefaultKeyer when inner is nil
	scoped := NewScopedKeyer(nil, "prefix:")
	key := scoped.ReportKey("h", ReportKeyOpts{})
	want := "prefix:" + NewDefaultKeyer().ReportKey("h", ReportKeyOpts{})
	if key != want {
		t.Errorf("Unexpected key with nil inner: %s", key)
	}
}

func TestFileCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("report"), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil || !hit {
		t.Fatalf("Get: hit=%v err=%v", hit, err)
	}
	if string(data) != "report" {
		t.Errorf("Get data = %q", data)
	}

	if err := c.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "key"); hit {
		t.Error("entry should be gone after Delete")
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("v"), -time.Second); err != nil {
		t.Fatalf("Set: %v", err)
	}
	// Negative TTL means no expiration metadata at all.
	if _, hit, _ := c.Get(ctx, "key"); !hit {
		t.Error("non-positive TTL should mean no expiration")
	}

	if err := c.Set(ctx, "gone", []byte("v"), time.Nanosecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(10 * time.Millisecond)
	if _, hit, _ := c.Get(ctx, "gone"); hit {
		t.Error("expired entry should be a miss")
	}
}

func TestMemoryCacheLRU(t *testing.T) {
	ctx := context.Background()
	c, err := NewMemoryCache(2)
	if err != nil {
		t.Fatalf("NewMemoryCache: %v", err)
	}
	defer c.Close()

	_ = c.Set(ctx, "a", []byte("1"), 0)
	_ = c.Set(ctx, "b", []byte("2"), 0)
	_ = c.Set(ctx, "c", []byte("3"), 0) // evicts a

	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Error("oldest entry should have been evicted")
	}
	if data, hit, _ := c.Get(ctx, "c"); !hit || string(data) != "3" {
		t.Errorf("newest entry missing: hit=%v data=%q", hit, data)
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewMemoryCache(8)
	if err != nil {
		t.Fatalf("NewMemoryCache: %v", err)
	}
	defer c.Close()

	_ = c.Set(ctx, "key", []byte("v"), time.Nanosecond)
	time.Sleep(10 * time.Millisecond)
	if _, hit, _ := c.Get(ctx, "key"); hit {
		t.Error("expired entry should be a miss")
	}
}

func TestTieredCache(t *testing.T) {
	ctx := context.Background()
	fast, _ := NewMemoryCache(8)
	slow, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	c := NewTieredCache(fast, slow)
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("v"), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}

	// Fast-tier miss falls through and promotes.
	_ = fast.Delete(ctx, "key")
	data, hit, err := c.Get(ctx, "key")
	if err != nil || !hit || string(data) != "v" {
		t.Fatalf("Get after fast eviction: hit=%v data=%q err=%v", hit, data, err)
	}
	if _, hit, _ := fast.Get(ctx, "key"); !hit {
		t.Error("slow-tier hit should be promoted into the fast tier")
	}
}
