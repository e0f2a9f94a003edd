package cache

import (
	"path/filepath"
	"testing"
	"time"
)

func TestNewCache(t *testing.T) {
	c := NewCache()
	if c == nil {
		t.Fatal("NewCache returned nil")
	}
}

func TestSet_Get(t *testing.T) {
	c := NewCache()
	c.Set("k", "val", 0)
	got, ok := c.Get("k")
	if !ok {
		t.Fatal("Get: want true")
	}
	if got != "val" {
		t.Errorf("Get = %v, want val", got)
	}
}

func TestGet_Missing(t *testing.T) {
	c := NewCache()
	if _, ok := c.Get("nonexistent-key-xyz"); ok {
		t.Error("Get missing key: want false")
	}
}

func TestGet_Expired(t *testing.T) {
	c := NewCache()
	c.m.Store("old", cacheItem{Value: "v", ExpiresAt: time.Now().Add(-time.Second).UnixNano()})
	if _, ok := c.Get("old"); ok {
		t.Error("Get expired key: want false")
	}
}

func TestDelete(t *testing.T) {
	c := NewCache()
	c.Set("k", "x", 0)
	c.Delete("k")
	if _, ok := c.Get("k"); ok {
		t.Error("Delete: key should be gone")
	}
}

func TestDumpToFile_RestoreFromFile(t *testing.T) {
	c := NewCache()
	c.Set("dump-key", "dump-val", 0)

	tmp := filepath.Join(t.TempDir(), "cache.json")
	if err := c.DumpToFile(tmp); err != nil {
		t.Fatalf("DumpToFile: %v", err)
	}

	restored := NewCache()
	if err := restored.RestoreFromFile(tmp); err != nil {
		t.Fatalf("RestoreFromFile: %v", err)
	}
	got, ok := restored.Get("dump-key")
	if !ok || got != "dump-val" {
		t.Errorf("after restore Get = %v, ok=%v; want dump-val, true", got, ok)
	}
}

func TestRestoreFromFile_MissingFile(t *testing.T) {
	c := NewCache()
	if err := c.RestoreFromFile("/nonexistent/path/cache.json"); err == nil {
		t.Error("RestoreFromFile missing file: want error")
	}
}
