package engrave

import (
	"errors"

	"github.com/unixpickle/model3d/model3d"
)

// Layout places an image of Width x Height pixels on a tile's top face.
type Layout struct {
	Width, Height int
	Size          model3d.Coord3D
	Center        model3d.Coord3D
	Scale         float64
}

func (p Params) Layout(width, height int) Layout {
	return Layout{
		Width:  width,
		Height: height,
		Size:   p.Size,
		Center: p.Position,
		Scale:  p.PatternScale,
	}
}

// MapPoint maps continuous pixel coordinates (u, v) onto the top face.
// (0, 0) is the top-left image corner; image rows run towards -Y so the
// pattern reads upright from above.
func (l Layout) MapPoint(u, v float64) (model3d.Coord3D, error) {
	if l.Width <= 0 || l.Height <= 0 {
		return model3d.Coord3D{}, errors.New("image has zero width or height")
	}
	patternW := l.Size.X * l.Scale
	patternD := l.Size.Y * l.Scale
	return model3d.XYZ(
		l.Center.X-patternW/2+u/float64(l.Width)*patternW,
		l.Center.Y+patternD/2-v/float64(l.Height)*patternD,
		l.Center.Z+l.Size.Z/2,
	), nil
}

// PixelPitch returns the size of one pixel on the tile.
func (l Layout) PixelPitch() (dx, dy float64) {
	if l.Width <= 0 || l.Height <= 0 {
		return 0, 0
	}
	return l.Size.X * l.Scale / float64(l.Width), l.Size.Y * l.Scale / float64(l.Height)
}
