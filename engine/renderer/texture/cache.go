// package texture maps image file paths to texture slots and caches their
// decoded pixel data, so repeated references to the same file share one decode
// and one GPU upload.
package texture

import (
	"fmt"
	"sync"

	"github.com/XingYaoA/manim/common"
)

// Entry is a cached texture: its assigned slot plus the decoded pixels.
type Entry struct {
	// Slot is the sequential id assigned when the path was first acquired.
	// Slots are never reused; releasing a path and acquiring it again yields
	// a fresh slot.
	Slot int

	// Data is the decoded RGBA pixel data ready for GPU upload.
	Data common.TextureStagingData
}

// cacheImpl is the implementation of the Cache interface.
type cacheImpl struct {
	mu       sync.Mutex
	entries  map[string]Entry
	nextSlot int
	maxDim   int
}

// Cache assigns sequential slots to texture file paths and holds their decoded
// pixel data.
type Cache interface {
	// Acquire returns the cached entry for the path, decoding the file on
	// first request. A failed decode is an error, never a placeholder.
	//
	// Parameters:
	//   - path: the image file path
	//
	// Returns:
	//   - Entry: the slot and decoded pixels
	//   - error: an error if the file could not be read or decoded
	Acquire(path string) (Entry, error)

	// Release drops the cached entry for the path. Unknown paths are a no-op.
	// A later Acquire of the same path decodes again under a new slot.
	//
	// Parameters:
	//   - path: the image file path
	Release(path string)

	// Len reports the number of cached entries.
	//
	// Returns:
	//   - int: the cache size
	Len() int
}

var _ Cache = &cacheImpl{}

// CacheBuilderOption configures a Cache during construction.
type CacheBuilderOption func(*cacheImpl)

// WithMaxDimension caps decoded texture dimensions; larger images are
// downscaled preserving aspect ratio.
//
// Parameters:
//   - max: the maximum width or height in pixels, 0 for unlimited
//
// Returns:
//   - CacheBuilderOption: the option to apply
func WithMaxDimension(max int) CacheBuilderOption {
	return func(c *cacheImpl) {
		c.maxDim = max
	}
}

// NewCache creates an empty texture cache.
//
// Parameters:
//   - options: variadic list of CacheBuilderOption functions
//
// Returns:
//   - Cache: a new Cache instance
func NewCache(options ...CacheBuilderOption) Cache {
	c := &cacheImpl{
		entries: make(map[string]Entry),
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

func (c *cacheImpl) Acquire(path string) (Entry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, ok := c.entries[path]; ok {
		return entry, nil
	}

	imported := common.ImportedTexture{Path: path, MaxDimension: c.maxDim}
	pixels, width, height, err := imported.Decode()
	if err != nil {
		return Entry{}, fmt.Errorf("failed to load texture %s: %w", path, err)
	}

	entry := Entry{
		Slot: c.nextSlot,
		Data: common.TextureStagingData{
			Pixels: pixels,
			Width:  width,
			Height: height,
		},
	}
	c.nextSlot++
	c.entries[path] = entry
	return entry, nil
}

func (c *cacheImpl) Release(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, path)
}

func (c *cacheImpl) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
