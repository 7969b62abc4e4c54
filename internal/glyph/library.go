package glyph

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// ErrFontUnavailable is returned when a font file cannot be read or parsed.
var ErrFontUnavailable = errors.New("font unavailable")

// Library loads fonts by path and keeps the parsed result for the lifetime
// of the process. It is safe for concurrent use.
//
// The empty path refers to the embedded Go Regular font.
type Library struct {
	fonts map[string]*opentype.Font
	mu    sync.RWMutex
}

// NewLibrary creates an empty font library.
func NewLibrary() *Library {
	return &Library{
		fonts: make(map[string]*opentype.Font),
	}
}

// Font returns the parsed font at path, loading it on first use.
func (l *Library) Font(path string) (*opentype.Font, error) {
	l.mu.RLock()
	f, ok := l.fonts[path]
	l.mu.RUnlock()
	if ok {
		return f, nil
	}

	data := goregular.TTF
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFontUnavailable, err)
		}
	}

	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: parse %q: %v", ErrFontUnavailable, path, err)
	}

	l.mu.Lock()
	if cached, ok := l.fonts[path]; ok {
		f = cached
	} else {
		l.fonts[path] = f
	}
	l.mu.Unlock()

	return f, nil
}

// Face returns a face for the font at path with the given pixel size.
// Callers must Close the face.
func (l *Library) Face(path string, size int) (font.Face, error) {
	f, err := l.Font(path)
	if err != nil {
		return nil, err
	}
	return newFace(f, size)
}

// Len returns the number of fonts loaded so far.
func (l *Library) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.fonts)
}

// newFace creates an unhinted face at 72 DPI so that one point equals one
// pixel.
func newFace(f *opentype.Font, size int) (font.Face, error) {
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("create font face at %dpx: %w", size, err)
	}
	return face, nil
}
