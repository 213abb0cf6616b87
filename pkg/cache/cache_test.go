package cache

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// ============================================================================
// NULL CACHE
// ============================================================================

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	_, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if hit {
		t.Error("null cache reported a hit")
	}

	if err := c.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
}

// ============================================================================
// MEMORY CACHE
// ============================================================================

func TestMemoryCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !hit {
		t.Fatal("expected cache hit")
	}
	if string(data) != "value" {
		t.Errorf("got %q, want %q", data, "value")
	}

	if c.Len() != 1 {
		t.Errorf("Len = %d, want 1", c.Len())
	}

	if err := c.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "key"); hit {
		t.Error("got hit after delete")
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	if err := c.Set(ctx, "key", []byte("value"), time.Nanosecond); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	time.Sleep(time.Millisecond)

	if _, hit, _ := c.Get(ctx, "key"); hit {
		t.Error("got hit for expired entry")
	}
	if c.Len() != 0 {
		t.Errorf("Len = %d after lazy expiry, want 0", c.Len())
	}
}

func TestMemoryCacheCopiesData(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	data := []byte("original")
	if err := c.Set(ctx, "key", data, 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	data[0] = 'X'

	stored, _, _ := c.Get(ctx, "key")
	if string(stored) != "original" {
		t.Errorf("stored value mutated: got %q", stored)
	}
}

// ============================================================================
// FILE CACHE
// ============================================================================

func TestFileCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache failed: %v", err)
	}

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !hit {
		t.Fatal("expected cache hit")
	}
	if string(data) != "value" {
		t.Errorf("got %q, want %q", data, "value")
	}
}

func TestFileCacheMiss(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache failed: %v", err)
	}

	if _, hit, err := c.Get(ctx, "absent"); err != nil || hit {
		t.Errorf("Get absent key: hit=%v err=%v, want miss with nil error", hit, err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache failed: %v", err)
	}

	if err := c.Set(ctx, "key", []byte("value"), time.Nanosecond); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	time.Sleep(time.Millisecond)

	if _, hit, _ := c.Get(ctx, "key"); hit {
		t.Error("got hit for expired entry")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache failed: %v", err)
	}

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	// Corrupt the entry on disk.
	hash := Hash([]byte("key"))
	path := filepath.Join(dir, hash[:2], hash[2:]+".json")
	if err := os.WriteFile(path, []byte("not json"), 0644); err != nil {
		t.Fatalf("corrupting entry failed: %v", err)
	}

	if _, hit, err := c.Get(ctx, "key"); err != nil || hit {
		t.Errorf("corrupt entry: hit=%v err=%v, want miss with nil error", hit, err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("corrupt entry not removed")
	}
}

func TestFileCachePurge(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache failed: %v", err)
	}

	for _, key := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, key, []byte("value"), time.Hour); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
	}

	count, err := c.Purge()
	if err != nil {
		t.Fatalf("Purge failed: %v", err)
	}
	if count != 3 {
		t.Errorf("Purge removed %d files, want 3", count)
	}

	for _, key := range []string{"a", "b", "c"} {
		if _, hit, _ := c.Get(ctx, key); hit {
			t.Errorf("got hit for %q after purge", key)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("cache dir has %d leftover entries after purge", len(entries))
	}
}

func TestFileCacheDeleteAbsent(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache failed: %v", err)
	}
	if err := c.Delete(ctx, "absent"); err != nil {
		t.Errorf("Delete absent key failed: %v", err)
	}
}

// ============================================================================
// KEYERS
// ============================================================================

func TestDefaultKeyerDeterminism(t *testing.T) {
	k := NewDefaultKeyer()
	opts := ArrangementKeyOpts{FixedTracks: 3, Flow: "rows", SpanPolicy: "drop"}

	key1 := k.ArrangementKey("abc", opts)
	key2 := k.ArrangementKey("abc", opts)
	if key1 != key2 {
		t.Error("same inputs produced different keys")
	}
	if !strings.HasPrefix(key1, "arrangement:") {
		t.Errorf("key %q missing stage prefix", key1)
	}
}

func TestDefaultKeyerDistinguishesInputs(t *testing.T) {
	k := NewDefaultKeyer()

	base := k.ArrangementKey("abc", ArrangementKeyOpts{FixedTracks: 3, Flow: "rows"})
	tests := []struct {
		name string
		key  string
	}{
		{"different hash", k.ArrangementKey("def", ArrangementKeyOpts{FixedTracks: 3, Flow: "rows"})},
		{"different tracks", k.ArrangementKey("abc", ArrangementKeyOpts{FixedTracks: 4, Flow: "rows"})},
		{"different flow", k.ArrangementKey("abc", ArrangementKeyOpts{FixedTracks: 3, Flow: "columns"})},
	}
	for _, tt := range tests {
		if tt.key == base {
			t.Errorf("%s: key collision", tt.name)
		}
	}
}

func TestKeyerStagePrefixes(t *testing.T) {
	k := NewDefaultKeyer()

	layoutKey := k.LayoutKey("a", "b", LayoutKeyOpts{Width: 300, Height: 200, Mode: "fill", Flow: "rows"})
	if !strings.HasPrefix(layoutKey, "layout:") {
		t.Errorf("layout key %q missing stage prefix", layoutKey)
	}

	artifactKey := k.ArtifactKey("a", ArtifactKeyOpts{Format: "svg"})
	if !strings.HasPrefix(artifactKey, "artifact:") {
		t.Errorf("artifact key %q missing stage prefix", artifactKey)
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "tenant:42:")

	innerKey := inner.ArtifactKey("abc", ArtifactKeyOpts{Format: "svg"})
	scopedKey := scoped.ArtifactKey("abc", ArtifactKeyOpts{Format: "svg"})

	if scopedKey != "tenant:42:"+innerKey {
		t.Errorf("scoped key %q does not wrap inner key %q", scopedKey, innerKey)
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	scoped := NewScopedKeyer(nil, "pre:")
	key := scoped.ArrangementKey("abc", ArrangementKeyOpts{FixedTracks: 2})
	if !strings.HasPrefix(key, "pre:arrangement:") {
		t.Errorf("key %q missing expected prefixes", key)
	}
}

// ============================================================================
// HASHING
// ============================================================================

func TestHash(t *testing.T) {
	h1 := Hash([]byte("data"))
	h2 := Hash([]byte("data"))
	h3 := Hash([]byte("other"))

	if h1 != h2 {
		t.Error("same input produced different hashes")
	}
	if h1 == h3 {
		t.Error("different inputs produced the same hash")
	}
	if len(h1) != 64 {
		t.Errorf("hash length = %d, want 64", len(h1))
	}
}
