package cli

import (
	"context"
	"io"
	"testing"

	"github.com/sunwheel-labs/sunwheel/pkg/cache"
	"github.com/sunwheel-labs/sunwheel/pkg/document"
)

func TestFirstNonEmpty(t *testing.T) {
	tests := []struct {
		name string
		vals []string
		want string
	}{
		{"first wins", []string{"a", "b"}, "a"},
		{"skips empty", []string{"", "b", "c"}, "b"},
		{"all empty", []string{"", ""}, ""},
		{"no values", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := firstNonEmpty(tt.vals...); got != tt.want {
				t.Errorf("firstNonEmpty(%v) = %q, want %q", tt.vals, got, tt.want)
			}
		})
	}
}

func TestOpenServeStoreFileDefault(t *testing.T) {
	c := New(io.Discard, LogInfo)
	dir := t.TempDir()

	store, err := c.openServeStore(context.Background(), "", appName, dir)
	if err != nil {
		t.Fatalf("openServeStore() error: %v", err)
	}
	defer store.Close()

	fs, ok := store.(*document.FileStore)
	if !ok {
		t.Fatalf("store = %T, want *document.FileStore", store)
	}
	if fs.Dir() != dir {
		t.Errorf("store dir = %q, want %q", fs.Dir(), dir)
	}
}

func TestOpenServeCacheSelection(t *testing.T) {
	c := New(io.Discard, LogInfo)

	noCache, err := c.openServeCache(context.Background(), true, "", "", 0)
	if err != nil {
		t.Fatalf("openServeCache(noCache) error: %v", err)
	}
	if _, ok := noCache.(*cache.NullCache); !ok {
		t.Errorf("noCache cache = %T, want *cache.NullCache", noCache)
	}

	// Default path: a file cache under XDG_CACHE_HOME.
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	fileCache, err := c.openServeCache(context.Background(), false, "", "", 0)
	if err != nil {
		t.Fatalf("openServeCache(file) error: %v", err)
	}
	if _, ok := fileCache.(*cache.FileCache); !ok {
		t.Errorf("default cache = %T, want *cache.FileCache", fileCache)
	}
}
