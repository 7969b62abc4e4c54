// Package texture fills rendered glyphs with texture images.
//
// A texture is optionally turned by a random quarter rotation and a random
// flip, stretched to the canvas size, and copied onto the canvas through a
// mask of the glyph's opaque black pixels. The mask is dilated with a 5x5
// max filter so thin strokes are fully covered.
//
//	rng := rand.New(rand.NewPCG(seed, uint64(jobIndex)))
//	c := texture.NewCompositor(ioutils.NewImageService())
//	out, err := c.Apply(canvas, "input/demo/wood.jpg", meta.Rotate, rng)
//
// Only pixels that are exactly opaque black (0, 0, 0, 255) enter the mask.
// Anti-aliased edge pixels rely on the dilation to be covered.
package texture
