package ioutils

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder registration
	"image/png"
	"os"

	"github.com/nfnt/resize"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // WebP decoder registration
)

// ImageService provides image loading, saving and resampling for the
// render pipeline.
//
// ImageService is used to:
//   - Decode texture files (PNG, JPEG, WebP) into NRGBA images
//   - Resize glyphs to fit a padded region, preserving aspect ratio
//   - Stretch textures to the exact canvas size
//   - Encode finished glyphs as PNG
//
// All resampling uses the Lanczos3 filter.
//
// Example usage:
//
//	svc := NewImageService()
//	tex, _ := svc.Load("input/demo/wood.jpg")
//	tex = svc.Stretch(tex, 1024, 1024)
//	err := svc.SavePNG(ctx, "output/Demo/A-Z UPPER/A.png", tex)
type ImageService struct{}

// NewImageService creates a new ImageService.
func NewImageService() *ImageService {
	return &ImageService{}
}

// Load decodes the image file at path and converts it to NRGBA.
//
// Returns an error if the file cannot be opened or its format is not one of
// the registered decoders.
func (s *ImageService) Load(path string) (*image.NRGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return ToNRGBA(img), nil
}

// SavePNG encodes img as PNG at path, replacing any existing file.
func (s *ImageService) SavePNG(ctx context.Context, path string, img image.Image) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Fit downscales img so that it fits within maxWidth x maxHeight.
//
// The aspect ratio is preserved: the scale factor is the smaller of the two
// axis ratios and the result dimensions are truncated to whole pixels. An
// image that already fits is returned unchanged.
//
// Example:
//
//	// A 1200x900 image becomes 824x618
//	fitted := svc.Fit(img, 824, 824)
func (s *ImageService) Fit(img image.Image, maxWidth, maxHeight int) image.Image {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	if width <= maxWidth && height <= maxHeight {
		return img
	}

	scale := min(float64(maxWidth)/float64(width), float64(maxHeight)/float64(height))
	newWidth := max(int(float64(width)*scale), 1)
	newHeight := max(int(float64(height)*scale), 1)

	return resize.Resize(uint(newWidth), uint(newHeight), img, resize.Lanczos3)
}

// Stretch resamples img to exactly width x height, ignoring aspect ratio.
// An image that already has those dimensions is returned unchanged.
func (s *ImageService) Stretch(img image.Image, width, height int) image.Image {
	bounds := img.Bounds()
	if bounds.Dx() == width && bounds.Dy() == height {
		return img
	}
	return resize.Resize(uint(width), uint(height), img, resize.Lanczos3)
}

// ToNRGBA returns img as an *image.NRGBA whose bounds start at the origin.
// Images that already satisfy this are returned as is.
func ToNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) {
		return n
	}
	bounds := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(dst, dst.Bounds(), img, bounds.Min, draw.Src)
	return dst
}
