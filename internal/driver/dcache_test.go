package driver_test

import (
	"os"
	"path/filepath"
	"testing"

	"postfix/internal/driver"
)

func TestDiskCacheRoundTrip(t *testing.T) {
	cache, err := driver.OpenDiskCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	opts := driver.Options{Cache: cache}
	src := "let v = x.f!(1);"

	_, first := rewriteVirtual(t, "a.rs", src, opts)
	if first.Failed() || first.Cached {
		t.Fatalf("first run: failed=%v cached=%v", first.Failed(), first.Cached)
	}

	_, second := rewriteVirtual(t, "b.rs", src, opts)
	if !second.Cached {
		t.Fatal("second run of the same content must hit the cache")
	}
	if second.Output != first.Output || second.Invocations != first.Invocations || second.Changed != first.Changed {
		t.Fatalf("cached result %+v differs from %+v", second, first)
	}

	// другая глубина, другой ключ
	_, depth := rewriteVirtual(t, "a.rs", src, driver.Options{Cache: cache, MaxDepth: 8})
	if depth.Cached {
		t.Fatal("different options must miss")
	}
}

func TestDiskCacheSkipsFailures(t *testing.T) {
	cache, err := driver.OpenDiskCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for range 2 {
		_, res := rewriteVirtual(t, "a.rs", ".f!();", driver.Options{Cache: cache})
		if res.Cached || !res.Failed() {
			t.Fatalf("failed file: cached=%v failed=%v", res.Cached, res.Failed())
		}
	}
}

func TestDiskCacheDropAll(t *testing.T) {
	dir := t.TempDir()
	cache, err := driver.OpenDiskCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	if cache.Dir() != dir {
		t.Fatalf("Dir() = %q", cache.Dir())
	}
	rewriteVirtual(t, "a.rs", "x.f!();", driver.Options{Cache: cache})
	if err := cache.DropAll(); err != nil {
		t.Fatal(err)
	}
	_, res := rewriteVirtual(t, "a.rs", "x.f!();", driver.Options{Cache: cache})
	if res.Cached {
		t.Fatal("cache hit after DropAll")
	}
	if _, err := os.Stat(filepath.Join(dir, "rw")); err != nil {
		t.Fatalf("cache dir missing after re-put: %v", err)
	}
}

func TestNilDiskCache(t *testing.T) {
	var cache *driver.DiskCache
	if cache.Dir() != "" {
		t.Fatal("nil cache has a dir")
	}
}
