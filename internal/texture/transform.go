package texture

import (
	"fmt"
	"image"
	"math/rand/v2"

	"github.com/disintegration/imaging"
)

// Rotation is a counter-clockwise rotation in quarter turns.
type Rotation int

const (
	Rotate0 Rotation = iota
	Rotate90
	Rotate180
	Rotate270
)

// Flip mirrors an image along one axis.
type Flip int

const (
	FlipNone Flip = iota
	FlipHorizontal
	FlipVertical
)

// Transform is one rotation followed by one flip.
type Transform struct {
	Rotation Rotation
	Flip     Flip
}

// RandomTransform draws a rotation and a flip independently and uniformly
// from rng.
func RandomTransform(rng *rand.Rand) Transform {
	return Transform{
		Rotation: Rotation(rng.IntN(4)),
		Flip:     Flip(rng.IntN(3)),
	}
}

// Apply rotates img, growing the bounds to fit (quarter turns never crop),
// then flips it. The identity transform returns img itself.
func (t Transform) Apply(img image.Image) image.Image {
	switch t.Rotation {
	case Rotate90:
		img = imaging.Rotate90(img)
	case Rotate180:
		img = imaging.Rotate180(img)
	case Rotate270:
		img = imaging.Rotate270(img)
	}

	switch t.Flip {
	case FlipHorizontal:
		img = imaging.FlipH(img)
	case FlipVertical:
		img = imaging.FlipV(img)
	}

	return img
}

func (t Transform) String() string {
	flip := "none"
	switch t.Flip {
	case FlipHorizontal:
		flip = "horizontal"
	case FlipVertical:
		flip = "vertical"
	}
	return fmt.Sprintf("rotate %d, flip %s", int(t.Rotation)*90, flip)
}

// Randomize applies a random Transform drawn from rng when enabled is true.
// When enabled is false img is returned unchanged and rng is not used.
func Randomize(img image.Image, enabled bool, rng *rand.Rand) image.Image {
	if !enabled {
		return img
	}
	return RandomTransform(rng).Apply(img)
}
