package glyph

import (
	"errors"
	"fmt"
	"image"

	ioutils "github.com/handiism/glyphmask/internal/io"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Default canvas dimensions in pixels.
const (
	DefaultWidth  = 1024
	DefaultHeight = 1024
)

var (
	// ErrEmptyGlyph is returned for characters that render no ink.
	ErrEmptyGlyph = errors.New("glyph has no ink")

	// ErrPaddingTooLarge is returned when padding leaves no room on the canvas.
	ErrPaddingTooLarge = errors.New("padding leaves no room for the glyph")
)

// Rasterizer draws single characters onto fixed-size transparent canvases.
//
// Glyphs are rendered in opaque black. A glyph larger than the padded
// region of the canvas is downscaled to fit it, then every glyph is centered
// on the canvas.
//
// Example:
//
//	r := glyph.NewRasterizer(glyph.NewLibrary(), ioutils.NewImageService(), 1024, 1024)
//	canvas, err := r.Render('A', "font/Fresh Juice.ttf", 1180, 100)
type Rasterizer struct {
	library *Library
	images  *ioutils.ImageService
	width   int
	height  int
}

// NewRasterizer creates a Rasterizer producing width x height canvases.
func NewRasterizer(library *Library, images *ioutils.ImageService, width, height int) *Rasterizer {
	return &Rasterizer{
		library: library,
		images:  images,
		width:   width,
		height:  height,
	}
}

// Size returns the canvas dimensions.
func (r *Rasterizer) Size() (width, height int) {
	return r.width, r.height
}

// Letter renders ch at the given font size into an image sized exactly to
// the glyph's ink bounds. Covered pixels are black with coverage as alpha;
// fully covered pixels are opaque black.
func (r *Rasterizer) Letter(ch rune, fontPath string, size int) (*image.RGBA, error) {
	if size < 1 {
		return nil, fmt.Errorf("%w: %d", ErrDegenerateFontSize, size)
	}

	face, err := r.library.Face(fontPath, size)
	if err != nil {
		return nil, err
	}
	defer face.Close()

	bounds, _ := font.BoundString(face, string(ch))
	minX, minY := bounds.Min.X.Floor(), bounds.Min.Y.Floor()
	w := bounds.Max.X.Ceil() - minX
	h := bounds.Max.Y.Ceil() - minY
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %q", ErrEmptyGlyph, ch)
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	d := font.Drawer{
		Dst:  img,
		Src:  image.Black,
		Face: face,
		Dot:  fixed.P(-minX, -minY),
	}
	d.DrawString(string(ch))

	return img, nil
}

// Render draws ch centered on a new canvas, leaving at least padding pixels
// on every side when the glyph has to be downscaled.
func (r *Rasterizer) Render(ch rune, fontPath string, size, padding int) (*image.RGBA, error) {
	maxWidth := r.width - 2*padding
	maxHeight := r.height - 2*padding
	if maxWidth <= 0 || maxHeight <= 0 {
		return nil, fmt.Errorf("%w: %d on %dx%d", ErrPaddingTooLarge, padding, r.width, r.height)
	}

	letter, err := r.Letter(ch, fontPath, size)
	if err != nil {
		return nil, err
	}

	fitted := r.images.Fit(letter, maxWidth, maxHeight)
	fb := fitted.Bounds()
	x := (r.width - fb.Dx()) / 2
	y := (r.height - fb.Dy()) / 2

	canvas := image.NewRGBA(image.Rect(0, 0, r.width, r.height))
	draw.Draw(canvas, image.Rect(x, y, x+fb.Dx(), y+fb.Dy()), fitted, fb.Min, draw.Over)

	return canvas, nil
}
