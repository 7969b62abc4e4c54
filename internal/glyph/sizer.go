package glyph

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
)

const (
	// ReferenceGlyph is measured to decide the font size for a canvas.
	ReferenceGlyph = "A"

	// searchFactor bounds the size search at this multiple of the larger
	// canvas side.
	searchFactor = 4
)

// ErrDegenerateFontSize is returned when no positive font size fits the
// canvas.
var ErrDegenerateFontSize = errors.New("degenerate font size")

// SizeKey identifies one font size computation.
type SizeKey struct {
	FontPath string
	Width    int
	Height   int
}

// SizeCache stores computed font sizes by SizeKey. Values are never
// invalidated. It is safe for concurrent use; two goroutines racing on the
// same key both compute the same value and the last write wins.
type SizeCache struct {
	sizes map[SizeKey]int
	mu    sync.RWMutex
}

// NewSizeCache creates an empty cache.
func NewSizeCache() *SizeCache {
	return &SizeCache{
		sizes: make(map[SizeKey]int),
	}
}

// Get returns the cached size for key.
func (c *SizeCache) Get(key SizeKey) (int, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	size, ok := c.sizes[key]
	return size, ok
}

// Put stores size for key.
func (c *SizeCache) Put(key SizeKey, size int) {
	c.mu.Lock()
	c.sizes[key] = size
	c.mu.Unlock()
}

// Len returns the number of cached entries.
func (c *SizeCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.sizes)
}

// measureFunc returns the ink width and height of the reference glyph
// rendered from f at the given pixel size.
type measureFunc func(f *opentype.Font, size int) (width, height int, err error)

// Sizer finds the largest font size whose reference glyph fits a canvas.
//
// Results are memoized in a SizeCache, so the search runs once per
// (font, width, height) for the lifetime of the cache.
//
// Example:
//
//	sizer := glyph.NewSizer(glyph.NewLibrary(), glyph.NewSizeCache())
//	size, err := sizer.MaxSize("font/Fresh Juice.ttf", 1024, 1024)
type Sizer struct {
	library *Library
	cache   *SizeCache
	measure measureFunc
}

// NewSizer creates a Sizer backed by the given font library and cache.
func NewSizer(library *Library, cache *SizeCache) *Sizer {
	return &Sizer{
		library: library,
		cache:   cache,
		measure: measureReference,
	}
}

// Cache returns the cache used by the sizer.
func (s *Sizer) Cache() *SizeCache {
	return s.cache
}

// MaxSize returns the largest font size, searching upward from 1, at which
// the reference glyph's ink box is no wider than width and no taller than
// height.
//
// Returns ErrDegenerateFontSize (wrapped) if size 1 already overflows, if
// the reference glyph has no ink, or if the search passes searchFactor times
// the larger canvas side without overflowing.
func (s *Sizer) MaxSize(fontPath string, width, height int) (int, error) {
	key := SizeKey{FontPath: fontPath, Width: width, Height: height}
	if size, ok := s.cache.Get(key); ok {
		return size, nil
	}

	f, err := s.library.Font(fontPath)
	if err != nil {
		return 0, err
	}

	limit := searchFactor * max(width, height, 1)
	size := 1
	for ; size <= limit; size++ {
		w, h, err := s.measure(f, size)
		if err != nil {
			return 0, err
		}
		if w == 0 && h == 0 {
			return 0, fmt.Errorf("%w: %q has no ink for %q at %dpx",
				ErrDegenerateFontSize, fontPath, ReferenceGlyph, size)
		}
		if w > width || h > height {
			break
		}
	}
	size--

	if size < 1 || size >= limit {
		return 0, fmt.Errorf("%w: %q in %dx%d canvas resolved to %d",
			ErrDegenerateFontSize, fontPath, width, height, size)
	}

	s.cache.Put(key, size)
	return size, nil
}

func measureReference(f *opentype.Font, size int) (int, int, error) {
	face, err := newFace(f, size)
	if err != nil {
		return 0, 0, err
	}
	defer face.Close()

	bounds, _ := font.BoundString(face, ReferenceGlyph)
	return (bounds.Max.X - bounds.Min.X).Ceil(), (bounds.Max.Y - bounds.Min.Y).Ceil(), nil
}
