package raster

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func uniform(w, h int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func writePNG(t *testing.T, img image.Image) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "in.png")
	f, err := os.Create(p)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return p
}

func TestThreshold_LuminanceBoundary(t *testing.T) {
	for _, level := range []uint8{0, 1, 99, 100, 127, 128, 200, 255} {
		img := uniform(1, 1, color.Gray{Y: level})
		for _, th := range []uint8{0, 1, 100, 128, 255} {
			m := Threshold(img, th)
			want := level < th
			if got := m.At(0, 0); got != want {
				t.Fatalf("level=%d threshold=%d: on=%v want %v", level, th, got, want)
			}
		}
	}
}

func TestThreshold_AlphaGatesDarkPixels(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 1))
	img.SetNRGBA(0, 0, color.NRGBA{0, 0, 0, 0})
	img.SetNRGBA(1, 0, color.NRGBA{0, 0, 0, 1})
	img.SetNRGBA(2, 0, color.NRGBA{255, 255, 255, 255})

	m := Threshold(img, 128)
	if m.At(0, 0) {
		t.Fatalf("transparent pixel must be off")
	}
	if !m.At(1, 0) {
		t.Fatalf("barely opaque dark pixel must be on")
	}
	if m.At(2, 0) {
		t.Fatalf("white pixel must be off")
	}
}

func TestThreshold_FullyTransparentIsEmpty(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 5))
	m := Threshold(img, 255)
	if m.Count() != 0 {
		t.Fatalf("expected empty mask, got %d on pixels", m.Count())
	}
	if m.Width() != 8 || m.Height() != 5 {
		t.Fatalf("mask size = %dx%d", m.Width(), m.Height())
	}
}

func TestThreshold_Idempotent(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			img.SetNRGBA(x, y, color.NRGBA{uint8(x * 16), uint8(y * 16), 90, uint8(255 - x*y)})
		}
	}
	a := Threshold(img, 110)
	b := Threshold(img, 110)
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			if a.At(x, y) != b.At(x, y) {
				t.Fatalf("mask differs at (%d,%d)", x, y)
			}
		}
	}
}

func TestThreshold_NonZeroOrigin(t *testing.T) {
	img := image.NewNRGBA(image.Rect(10, 20, 12, 21))
	img.SetNRGBA(10, 20, color.NRGBA{0, 0, 0, 255})
	img.SetNRGBA(11, 20, color.NRGBA{255, 255, 255, 255})

	m := Threshold(img, 128)
	if !m.At(0, 0) || m.At(1, 0) {
		t.Fatalf("mask not relative to bounds origin")
	}
	if m.At(-1, 0) || m.At(2, 0) {
		t.Fatalf("out of range pixels must be off")
	}
}

func TestLoadImage_PNG(t *testing.T) {
	p := writePNG(t, uniform(4, 4, color.Black))
	img, err := LoadImage(p)
	if err != nil {
		t.Fatalf("LoadImage: %v", err)
	}
	if m := Threshold(img, 128); m.Count() != 16 {
		t.Fatalf("on pixels = %d, want 16", m.Count())
	}
}

func TestLoadImage_Errors(t *testing.T) {
	if _, err := LoadImage(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Fatalf("expected error for missing file")
	}

	p := filepath.Join(t.TempDir(), "x.xyz")
	if err := os.WriteFile(p, []byte("data"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadImage(p); err == nil {
		t.Fatalf("expected error for unsupported extension")
	}

	p = filepath.Join(t.TempDir(), "broken.png")
	if err := os.WriteFile(p, []byte("not a png"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadImage(p); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestLoadImage_SVG(t *testing.T) {
	const doc = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 20 10" width="20" height="10">
<rect x="0" y="0" width="10" height="10" fill="#000000"/>
</svg>`
	p := filepath.Join(t.TempDir(), "in.svg")
	if err := os.WriteFile(p, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	img, err := LoadImage(p)
	if err != nil {
		t.Fatalf("LoadImage: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 20 || b.Dy() != 10 {
		t.Fatalf("bounds = %v", b)
	}
	m := Threshold(img, 128)
	if !m.At(5, 5) {
		t.Fatalf("filled rect should be on")
	}
	if m.At(15, 5) {
		t.Fatalf("background should be off")
	}
}

func TestDownsample(t *testing.T) {
	img := uniform(40, 20, color.Black)

	if got := Downsample(img, 0); got != image.Image(img) {
		t.Fatalf("maxRes 0 must be a no-op")
	}
	if got := Downsample(img, 64); got != image.Image(img) {
		t.Fatalf("small image must be unchanged")
	}

	small := Downsample(img, 10)
	if b := small.Bounds(); b.Dx() != 10 || b.Dy() != 5 {
		t.Fatalf("downsampled bounds = %v", b)
	}
	if m := Threshold(small, 128); m.Count() != 50 {
		t.Fatalf("downsampled black image should stay black, got %d on", m.Count())
	}
}
