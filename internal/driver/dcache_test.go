package driver

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestDiskCachePutGet(t *testing.T) {
	cache, err := OpenDiskCacheAt(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatalf("OpenDiskCacheAt: %v", err)
	}

	var key Digest
	key[0] = 0xAB

	in := CachePayload{
		Schema:     diskCacheSchemaVersion,
		SourcePath: "hello.py",
		Output:     []byte("// SIMULATED transpilation of hello.py\npass\n"),
	}
	if err := cache.Put(key, &in); err != nil {
		t.Fatalf("Put: %v", err)
	}

	var out CachePayload
	ok, err := cache.Get(key, &out)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatal("expected cache hit")
	}
	if out.SourcePath != in.SourcePath || !bytes.Equal(out.Output, in.Output) {
		t.Errorf("payload mismatch: %+v vs %+v", out, in)
	}
}

func TestDiskCacheMiss(t *testing.T) {
	cache, err := OpenDiskCacheAt(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatalf("OpenDiskCacheAt: %v", err)
	}

	var key Digest
	var out CachePayload
	ok, err := cache.Get(key, &out)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Error("expected miss on empty cache")
	}
}

func TestDiskCacheStaleSchemaIsMiss(t *testing.T) {
	cache, err := OpenDiskCacheAt(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatalf("OpenDiskCacheAt: %v", err)
	}

	var key Digest
	in := CachePayload{Schema: diskCacheSchemaVersion + 1, Output: []byte("x")}
	if err := cache.Put(key, &in); err != nil {
		t.Fatalf("Put: %v", err)
	}

	var out CachePayload
	ok, err := cache.Get(key, &out)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Error("stale schema must read as a miss")
	}
}

func TestDiskCacheCorruptEntryIsMiss(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")
	cache, err := OpenDiskCacheAt(dir)
	if err != nil {
		t.Fatalf("OpenDiskCacheAt: %v", err)
	}

	var key Digest
	key[0] = 0x01
	if err := cache.Put(key, &CachePayload{Schema: diskCacheSchemaVersion}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := os.WriteFile(cache.pathFor(key), []byte("not msgpack"), 0o644); err != nil {
		t.Fatalf("corrupt entry: %v", err)
	}

	var out CachePayload
	ok, err := cache.Get(key, &out)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Error("corrupt entry must read as a miss")
	}
}

func TestNilDiskCacheIsNoop(t *testing.T) {
	var cache *DiskCache
	var key Digest

	if err := cache.Put(key, &CachePayload{}); err != nil {
		t.Errorf("nil Put: %v", err)
	}
	var out CachePayload
	ok, err := cache.Get(key, &out)
	if err != nil {
		t.Errorf("nil Get: %v", err)
	}
	if ok {
		t.Error("nil cache cannot hit")
	}
}
