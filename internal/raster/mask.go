package raster

import (
	"image"
	"image/color"
)

// Mask marks which pixels of a source image are dark and opaque enough to
// engrave. It is built once by Threshold and never modified afterwards.
type Mask struct {
	width, height int
	on            []bool
}

func (m *Mask) Width() int { return m.width }
func (m *Mask) Height() int { return m.height }

// At reports whether pixel (x, y) is on. Out-of-range pixels are off.
func (m *Mask) At(x, y int) bool {
	if x < 0 || y < 0 || x >= m.width || y >= m.height {
		return false
	}
	return m.on[y*m.width+x]
}

// Count returns the number of on pixels.
func (m *Mask) Count() int {
	n := 0
	for _, v := range m.on {
		if v {
			n++
		}
	}
	return n
}

// Threshold binarises img. A pixel is on when its alpha is non-zero and its
// luminance is below threshold; opaque images therefore reduce to the plain
// luminance test.
func Threshold(img image.Image, threshold uint8) *Mask {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	m := &Mask{
		width:  width,
		height: height,
		on:     make([]bool, width*height),
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			gray, alpha := luminance(img, bounds, x, y)
			m.on[y*width+x] = alpha > 0 && gray < int(threshold)
		}
	}
	return m
}

// luminance returns the 8-bit grey level and alpha of a pixel, computed on
// non-premultiplied channels.
func luminance(img image.Image, bounds image.Rectangle, x, y int) (int, uint8) {
	c := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
	return (299*int(c.R) + 587*int(c.G) + 114*int(c.B)) / 1000, c.A
}
