package cache

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestKey_StableAndContentSensitive(t *testing.T) {
	a := Key([]byte("corpus contents"))
	b := Key([]byte("corpus contents"))
	c := Key([]byte("edited corpus contents"))

	if a != b {
		t.Error("same contents produced different keys")
	}
	if a == c {
		t.Error("different contents produced the same key")
	}
	if !strings.HasPrefix(a, "corefilter:v1:") {
		t.Errorf("key missing version prefix: %q", a)
	}
}

func TestMemoryCache_SetGet(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if _, found := c.Get("missing"); found {
		t.Error("unexpected hit for missing key")
	}
	if err := c.Set("doc", []byte("parsed"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	val, found := c.Get("doc")
	if !found || !bytes.Equal(val, []byte("parsed")) {
		t.Errorf("Get = %q, %v", val, found)
	}

	if err := c.Delete("doc"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, found := c.Get("doc"); found {
		t.Error("value survived Delete")
	}
}

func TestMemoryCache_Clear(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)
	_ = c.Set("a", []byte("1"), 0)
	_ = c.Set("b", []byte("2"), 0)

	if err := c.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, found := c.Get("a"); found {
		t.Error("value survived Clear")
	}
}

func TestDiskCache_SetGet(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Minute)

	if _, found := c.Get("missing"); found {
		t.Error("unexpected hit for missing key")
	}
	if err := c.Set("doc", []byte("parsed"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	val, found := c.Get("doc")
	if !found || !bytes.Equal(val, []byte("parsed")) {
		t.Errorf("Get = %q, %v", val, found)
	}

	if err := c.Delete("doc"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, found := c.Get("doc"); found {
		t.Error("value survived Delete")
	}
}

func TestDiskCache_Expiry(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Minute)

	if err := c.Set("doc", []byte("parsed"), -time.Second); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, found := c.Get("doc"); found {
		t.Error("expired entry served")
	}
	// A second read must also miss: expiry removes the entry.
	if _, found := c.Get("doc"); found {
		t.Error("expired entry not removed")
	}
}

func TestDiskCache_Clear(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Minute)
	_ = c.Set("a", []byte("1"), 0)

	if err := c.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, found := c.Get("a"); found {
		t.Error("value survived Clear")
	}
	// Clearing and then writing again must recreate the directory.
	if err := c.Set("b", []byte("2"), 0); err != nil {
		t.Fatalf("Set after Clear: %v", err)
	}
	if _, found := c.Get("b"); !found {
		t.Error("write after Clear not readable")
	}
}

func TestLayeredCache_PromotesDiskHits(t *testing.T) {
	dir := t.TempDir()
	c := NewLayeredCache(time.Minute, dir, time.Minute)

	// Seed only the disk layer, simulating a previous run.
	seed := NewDiskCache(dir, time.Minute)
	if err := seed.Set("doc", []byte("parsed"), 0); err != nil {
		t.Fatalf("seed disk: %v", err)
	}

	val, found := c.Get("doc")
	if !found || !bytes.Equal(val, []byte("parsed")) {
		t.Fatalf("Get = %q, %v", val, found)
	}

	// The hit must now be served from memory even if the disk copy goes.
	if err := seed.Delete("doc"); err != nil {
		t.Fatalf("delete disk copy: %v", err)
	}
	if _, found := c.Get("doc"); !found {
		t.Error("disk hit was not promoted into memory")
	}
}

func TestLayeredCache_WritesBothLayers(t *testing.T) {
	dir := t.TempDir()
	c := NewLayeredCache(time.Minute, dir, time.Minute)

	if err := c.Set("doc", []byte("parsed"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	disk := NewDiskCache(dir, time.Minute)
	if _, found := disk.Get("doc"); !found {
		t.Error("value missing from disk layer")
	}

	if err := c.Delete("doc"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, found := c.Get("doc"); found {
		t.Error("value survived Delete")
	}
	if _, found := disk.Get("doc"); found {
		t.Error("disk copy survived Delete")
	}
}
