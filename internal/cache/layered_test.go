package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLayeredCache_SurvivesRestart(t *testing.T) {
	dir := t.TempDir()

	first := NewLayeredCache(time.Minute, dir, time.Minute)
	if err := first.Set("verdict-key", []byte("payload"), time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}

	// A fresh cache over the same directory simulates a new run: the
	// memory layer is empty, the disk layer still has the entry.
	second := NewLayeredCache(time.Minute, dir, time.Minute)
	val, found := second.Get("verdict-key")
	if !found || string(val) != "payload" {
		t.Fatalf("expected disk hit after restart, got found=%v val=%q", found, val)
	}

	// The disk hit was promoted: removing the file must not cause a miss.
	if err := os.Remove(filepath.Join(dir, "verdict-key.cache")); err != nil {
		t.Fatalf("remove cache file: %v", err)
	}
	if _, found := second.Get("verdict-key"); !found {
		t.Error("expected promoted entry to be served from memory")
	}
}

func TestLayeredCache_Delete(t *testing.T) {
	layered := NewLayeredCache(time.Minute, t.TempDir(), time.Minute)
	if err := layered.Set("k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := layered.Delete("k"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, found := layered.Get("k"); found {
		t.Error("expected miss after delete")
	}
}
