package shader

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNewWatcherRequiresCache(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for nil cache")
		}
	}()
	NewWatcher(nil)
}

func TestWatcherEvictsChangedSources(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shader.wgsl")
	if err := os.WriteFile(path, []byte("fn v1() {}"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	comp := &stubCompiler{}
	cache := NewProgramCache(comp.compile)
	u := NewUnit("hot", WithSourcePath(path), WithVertexData([]byte{0}))
	if _, err := cache.Get(u); err != nil {
		t.Fatalf("Get: %v", err)
	}

	evicted := make(chan string, 1)
	w, err := NewWatcher(cache, WithEvictCallback(func(p string) {
		select {
		case evicted <- p:
		default:
		}
	}))
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	if err := w.Watch(dir); err != nil {
		t.Fatalf("Watch: %v", err)
	}

	if err := os.WriteFile(path, []byte("fn v2() {}"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case got := <-evicted:
		if got != path {
			t.Fatalf("evicted %q, want %q", got, path)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for eviction")
	}
	if cache.Len() != 0 {
		t.Fatalf("Len = %d after change, want 0", cache.Len())
	}

	// The next request recompiles from the updated file.
	if _, err := cache.Get(u); err != nil {
		t.Fatalf("Get after eviction: %v", err)
	}
	if len(comp.descs) != 2 {
		t.Fatalf("compiles = %d, want 2", len(comp.descs))
	}
}

func TestWatcherCloseTwice(t *testing.T) {
	cache := NewProgramCache((&stubCompiler{}).compile)
	w, err := NewWatcher(cache)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}
