// Package glyph renders alphanumeric characters onto fixed-size canvases.
//
// # Font Library
//
// Library parses font files once and shares them between goroutines. The
// empty path selects the embedded Go Regular font:
//
//	lib := glyph.NewLibrary()
//	f, err := lib.Font("font/Fresh Juice.ttf")
//
// # Font Sizing
//
// Sizer finds the largest font size at which the reference glyph "A" fits a
// canvas. Results are kept in a SizeCache keyed by font path and canvas size:
//
//	sizer := glyph.NewSizer(lib, glyph.NewSizeCache())
//	size, err := sizer.MaxSize("font/Fresh Juice.ttf", 1024, 1024)
//	if errors.Is(err, glyph.ErrDegenerateFontSize) {
//	    // the canvas cannot hold the glyph at any size
//	}
//
// # Rasterizing
//
// Rasterizer draws one character in opaque black on a transparent canvas.
// Glyphs larger than the canvas minus padding are downscaled with Lanczos
// resampling; all glyphs are centered:
//
//	r := glyph.NewRasterizer(lib, ioutils.NewImageService(), 1024, 1024)
//	canvas, err := r.Render('g', "font/Fresh Juice.ttf", size, 200)
package glyph
