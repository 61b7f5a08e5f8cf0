package texture

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writeTestPNG(t *testing.T, dir, name string, width, height int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return path
}

func TestCacheAcquireDecodesOnce(t *testing.T) {
	dir := t.TempDir()
	path := writeTestPNG(t, dir, "a.png", 4, 3)

	cache := NewCache()
	first, err := cache.Acquire(path)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if first.Slot != 0 {
		t.Fatalf("slot = %d, want 0", first.Slot)
	}
	if first.Data.Width != 4 || first.Data.Height != 3 {
		t.Fatalf("size = %dx%d, want 4x3", first.Data.Width, first.Data.Height)
	}
	if len(first.Data.Pixels) != 4*3*4 {
		t.Fatalf("pixels = %d bytes", len(first.Data.Pixels))
	}

	second, err := cache.Acquire(path)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if second.Slot != first.Slot {
		t.Fatalf("repeat acquire changed the slot: %d vs %d", second.Slot, first.Slot)
	}
	if cache.Len() != 1 {
		t.Fatalf("Len = %d, want 1", cache.Len())
	}
}

func TestCacheSlotsAreSequentialAndNeverReused(t *testing.T) {
	dir := t.TempDir()
	a := writeTestPNG(t, dir, "a.png", 2, 2)
	b := writeTestPNG(t, dir, "b.png", 2, 2)

	cache := NewCache()
	entryA, err := cache.Acquire(a)
	if err != nil {
		t.Fatalf("Acquire a: %v", err)
	}
	entryB, err := cache.Acquire(b)
	if err != nil {
		t.Fatalf("Acquire b: %v", err)
	}
	if entryA.Slot != 0 || entryB.Slot != 1 {
		t.Fatalf("slots = %d, %d, want 0, 1", entryA.Slot, entryB.Slot)
	}

	cache.Release(a)
	if cache.Len() != 1 {
		t.Fatalf("Len = %d after release, want 1", cache.Len())
	}

	reacquired, err := cache.Acquire(a)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if reacquired.Slot != 2 {
		t.Fatalf("slot = %d after release, want fresh slot 2", reacquired.Slot)
	}
}

func TestCacheAcquireErrors(t *testing.T) {
	dir := t.TempDir()
	cache := NewCache()

	if _, err := cache.Acquire(filepath.Join(dir, "missing.png")); err == nil {
		t.Fatalf("expected error for a missing file")
	}

	garbage := filepath.Join(dir, "garbage.png")
	if err := os.WriteFile(garbage, []byte("not an image"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := cache.Acquire(garbage); err == nil {
		t.Fatalf("expected error for undecodable data")
	}
	if cache.Len() != 0 {
		t.Fatalf("failed decodes were cached")
	}
}

func TestCacheMaxDimensionDownscales(t *testing.T) {
	dir := t.TempDir()
	path := writeTestPNG(t, dir, "big.png", 64, 32)

	cache := NewCache(WithMaxDimension(16))
	entry, err := cache.Acquire(path)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if entry.Data.Width != 16 || entry.Data.Height != 8 {
		t.Fatalf("size = %dx%d, want 16x8", entry.Data.Width, entry.Data.Height)
	}
	if len(entry.Data.Pixels) != 16*8*4 {
		t.Fatalf("pixels = %d bytes", len(entry.Data.Pixels))
	}
}

func TestCacheReleaseUnknownPathIsNoOp(t *testing.T) {
	cache := NewCache()
	cache.Release("/nowhere/nothing.png")
	if cache.Len() != 0 {
		t.Fatalf("Len = %d", cache.Len())
	}
}
