package texture

import (
	"image"
	"image/color"
	"image/png"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"

	ioutils "github.com/handiism/glyphmask/internal/io"
)

// gradient returns a w x h image in which every pixel is distinct.
func gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 10), G: uint8(y * 10), B: 7, A: 255})
		}
	}
	return img
}

func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

func at(img image.Image, x, y int) color.NRGBA {
	return color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
}

func TestTransform_Apply(t *testing.T) {
	const w, h = 6, 4
	src := gradient(w, h)

	tests := []struct {
		name   string
		tr     Transform
		wantW  int
		wantH  int
		origin image.Point // source pixel expected at (0, 0)
	}{
		{"identity", Transform{Rotate0, FlipNone}, w, h, image.Pt(0, 0)},
		{"rotate 90 ccw", Transform{Rotate90, FlipNone}, h, w, image.Pt(w-1, 0)},
		{"rotate 180", Transform{Rotate180, FlipNone}, w, h, image.Pt(w-1, h-1)},
		{"rotate 270 ccw", Transform{Rotate270, FlipNone}, h, w, image.Pt(0, h-1)},
		{"flip horizontal", Transform{Rotate0, FlipHorizontal}, w, h, image.Pt(w-1, 0)},
		{"flip vertical", Transform{Rotate0, FlipVertical}, w, h, image.Pt(0, h-1)},
		{"rotate 90 then flip horizontal", Transform{Rotate90, FlipHorizontal}, h, w, image.Pt(w-1, h-1)},
		{"rotate 180 then flip vertical", Transform{Rotate180, FlipVertical}, w, h, image.Pt(w-1, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.tr.Apply(src)
			if got.Bounds().Dx() != tt.wantW || got.Bounds().Dy() != tt.wantH {
				t.Fatalf("size = %dx%d, want %dx%d", got.Bounds().Dx(), got.Bounds().Dy(), tt.wantW, tt.wantH)
			}
			want := src.NRGBAAt(tt.origin.X, tt.origin.Y)
			if p := at(got, got.Bounds().Min.X, got.Bounds().Min.Y); p != want {
				t.Errorf("pixel (0,0) = %v, want source %v = %v", p, tt.origin, want)
			}
		})
	}
}

func TestTransform_IdentityReturnsInput(t *testing.T) {
	src := gradient(3, 3)
	if got := (Transform{}).Apply(src); got != image.Image(src) {
		t.Error("identity transform should return the input image")
	}
}

func TestRandomize_Disabled(t *testing.T) {
	src := gradient(7, 3)
	before := append([]byte(nil), src.Pix...)
	rng := rand.New(rand.NewPCG(1, 2))

	for i := 0; i < 20; i++ {
		got := Randomize(src, false, rng)
		if got != image.Image(src) {
			t.Fatal("disabled transform should return the input image")
		}
	}
	if string(before) != string(src.Pix) {
		t.Error("input pixels changed")
	}
}

func TestRandomize_EnabledDimensions(t *testing.T) {
	const w, h = 7, 3
	src := gradient(w, h)
	rng := rand.New(rand.NewPCG(3, 4))

	for i := 0; i < 50; i++ {
		b := Randomize(src, true, rng).Bounds()
		same := b.Dx() == w && b.Dy() == h
		swapped := b.Dx() == h && b.Dy() == w
		if !same && !swapped {
			t.Fatalf("unexpected size %dx%d", b.Dx(), b.Dy())
		}
	}
}

func TestRandomTransform_CoversAllChoices(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 6))
	rotations := make(map[Rotation]int)
	flips := make(map[Flip]int)

	for i := 0; i < 600; i++ {
		tr := RandomTransform(rng)
		rotations[tr.Rotation]++
		flips[tr.Flip]++
	}

	if len(rotations) != 4 {
		t.Errorf("saw rotations %v, want all 4", rotations)
	}
	if len(flips) != 3 {
		t.Errorf("saw flips %v, want all 3", flips)
	}
}

func TestRandomTransform_Deterministic(t *testing.T) {
	a := rand.New(rand.NewPCG(9, 9))
	b := rand.New(rand.NewPCG(9, 9))
	for i := 0; i < 30; i++ {
		if ta, tb := RandomTransform(a), RandomTransform(b); ta != tb {
			t.Fatalf("draw %d differs: %v vs %v", i, ta, tb)
		}
	}
}

func TestBuildMask(t *testing.T) {
	canvas := image.NewRGBA(image.Rect(0, 0, 4, 1))
	canvas.SetRGBA(0, 0, color.RGBA{A: 255})
	canvas.SetRGBA(1, 0, color.RGBA{A: 254})
	canvas.SetRGBA(2, 0, color.RGBA{R: 1, A: 255})

	mask := BuildMask(canvas)
	want := []uint8{255, 0, 0, 0}
	for x, v := range want {
		if got := mask.GrayAt(x, 0).Y; got != v {
			t.Errorf("mask[%d] = %d, want %d", x, got, v)
		}
	}
}

func TestDilate(t *testing.T) {
	mask := image.NewGray(image.Rect(0, 0, 11, 11))
	mask.SetGray(5, 5, color.Gray{Y: 255})
	mask.SetGray(0, 10, color.Gray{Y: 255})

	got := Dilate(mask, DilationSize)
	for y := 0; y < 11; y++ {
		for x := 0; x < 11; x++ {
			nearCenter := abs(x-5) <= 2 && abs(y-5) <= 2
			nearCorner := x <= 2 && y >= 8
			want := uint8(0)
			if nearCenter || nearCorner {
				want = 255
			}
			if v := got.GrayAt(x, y).Y; v != want {
				t.Errorf("dilated (%d,%d) = %d, want %d", x, y, v, want)
			}
		}
	}
	if mask.GrayAt(4, 4).Y != 0 {
		t.Error("input mask was modified")
	}
}

func TestCompositor_Composite(t *testing.T) {
	const size = 40
	canvas := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 10; y < 13; y++ {
		for x := 10; x < 13; x++ {
			canvas.SetRGBA(x, y, color.RGBA{A: 255})
		}
	}
	edge := color.RGBA{A: 128}
	canvas.SetRGBA(30, 30, edge)

	tex := gradient(size, size)
	out := NewCompositor(ioutils.NewImageService()).Composite(canvas, tex, false, nil)

	if out.Bounds() != canvas.Bounds() {
		t.Fatalf("bounds = %v, want %v", out.Bounds(), canvas.Bounds())
	}

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			inDilated := x >= 8 && x < 15 && y >= 8 && y < 15
			got := out.NRGBAAt(x, y)
			switch {
			case inDilated:
				if want := tex.NRGBAAt(x, y); got != want {
					t.Errorf("(%d,%d) = %v, want texture %v", x, y, got, want)
				}
			case x == 30 && y == 30:
				if got != (color.NRGBA{A: 128}) {
					t.Errorf("anti-aliased pixel = %v, want canvas value", got)
				}
			default:
				if got != (color.NRGBA{}) {
					t.Errorf("(%d,%d) = %v, want transparent", x, y, got)
				}
			}
		}
	}

	if canvas.RGBAAt(10, 10) != (color.RGBA{A: 255}) {
		t.Error("canvas was modified")
	}
}

func TestCompositor_StretchesTexture(t *testing.T) {
	const size = 32
	canvas := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			canvas.SetRGBA(x, y, color.RGBA{A: 255})
		}
	}

	tex := solid(8, 20, color.NRGBA{R: 200, G: 100, B: 50, A: 255})
	rng := rand.New(rand.NewPCG(1, 1))
	out := NewCompositor(ioutils.NewImageService()).Composite(canvas, tex, true, rng)

	if out.Bounds().Dx() != size || out.Bounds().Dy() != size {
		t.Fatalf("bounds = %v", out.Bounds())
	}
	p := out.NRGBAAt(size/2, size/2)
	if p.A < 250 || p.R < 190 || p.R > 210 || p.G < 90 || p.G > 110 {
		t.Errorf("center pixel = %v, want close to the texture color", p)
	}
}

func TestCompositor_Apply(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tex.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, gradient(16, 16)); err != nil {
		t.Fatal(err)
	}
	f.Close()

	canvas := image.NewRGBA(image.Rect(0, 0, 16, 16))
	canvas.SetRGBA(8, 8, color.RGBA{A: 255})

	c := NewCompositor(ioutils.NewImageService())
	out, err := c.Apply(canvas, path, false, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := out.NRGBAAt(8, 8), gradient(16, 16).NRGBAAt(8, 8); got != want {
		t.Errorf("masked pixel = %v, want %v", got, want)
	}

	if _, err := c.Apply(canvas, filepath.Join(dir, "missing.png"), false, nil); err == nil {
		t.Error("expected error for missing texture")
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
