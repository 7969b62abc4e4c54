package texture

import (
	"fmt"
	"image"
	"image/color"
	"math/rand/v2"

	ioutils "github.com/handiism/glyphmask/internal/io"
)

// DilationSize is the side of the square max-filter window applied to the
// glyph mask.
const DilationSize = 5

// opaqueBlack is the only canvas color that enters the mask.
var opaqueBlack = color.RGBA{A: 255}

// Compositor fills the opaque black area of a glyph canvas with a texture.
//
// The texture is optionally rotated and flipped, stretched to the canvas
// size, and copied through a dilated mask of the canvas's opaque black
// pixels. Everything outside the mask keeps the canvas value.
//
// Example:
//
//	c := texture.NewCompositor(ioutils.NewImageService())
//	out, err := c.Apply(canvas, "input/demo/wood.jpg", true, rng)
type Compositor struct {
	images *ioutils.ImageService
}

// NewCompositor creates a Compositor that loads and resamples textures with
// images.
func NewCompositor(images *ioutils.ImageService) *Compositor {
	return &Compositor{images: images}
}

// Apply loads the texture at texturePath and composites it onto canvas.
func (c *Compositor) Apply(canvas *image.RGBA, texturePath string, rotate bool, rng *rand.Rand) (*image.NRGBA, error) {
	tex, err := c.images.Load(texturePath)
	if err != nil {
		return nil, fmt.Errorf("load texture: %w", err)
	}
	return c.Composite(canvas, tex, rotate, rng), nil
}

// Composite returns a new image the size of canvas in which every pixel
// under the dilated mask comes from the transformed, stretched texture.
// canvas is not modified.
func (c *Compositor) Composite(canvas *image.RGBA, tex image.Image, rotate bool, rng *rand.Rand) *image.NRGBA {
	bounds := canvas.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	tex = Randomize(tex, rotate, rng)
	fill := ioutils.ToNRGBA(c.images.Stretch(tex, w, h))

	mask := Dilate(BuildMask(canvas), DilationSize)
	out := ioutils.ToNRGBA(canvas)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if mask.Pix[y*mask.Stride+x] != 255 {
				continue
			}
			i := out.PixOffset(x, y)
			j := fill.PixOffset(x, y)
			copy(out.Pix[i:i+4], fill.Pix[j:j+4])
		}
	}

	return out
}

// BuildMask returns a gray mask the size of canvas that is 255 where the
// canvas pixel is exactly opaque black and 0 elsewhere.
func BuildMask(canvas *image.RGBA) *image.Gray {
	bounds := canvas.Bounds()
	mask := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := 0; y < bounds.Dy(); y++ {
		for x := 0; x < bounds.Dx(); x++ {
			if canvas.RGBAAt(bounds.Min.X+x, bounds.Min.Y+y) == opaqueBlack {
				mask.Pix[y*mask.Stride+x] = 255
			}
		}
	}
	return mask
}

// Dilate applies a size x size max filter to mask, whose bounds must start
// at the origin. The window is clipped at the image border. Even sizes use
// the window of the next odd size.
func Dilate(mask *image.Gray, size int) *image.Gray {
	radius := size / 2
	bounds := mask.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	// The max filter is separable: rows first, then columns.
	rows := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		src := mask.Pix[y*mask.Stride : y*mask.Stride+w]
		dst := rows.Pix[y*rows.Stride : y*rows.Stride+w]
		for x := 0; x < w; x++ {
			var m uint8
			for k := max(0, x-radius); k <= min(w-1, x+radius); k++ {
				m = max(m, src[k])
			}
			dst[x] = m
		}
	}

	out := image.NewGray(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			var m uint8
			for k := max(0, y-radius); k <= min(h-1, y+radius); k++ {
				m = max(m, rows.Pix[k*rows.Stride+x])
			}
			out.Pix[y*out.Stride+x] = m
		}
	}

	return out
}
