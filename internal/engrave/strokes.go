package engrave

import (
	"github.com/unixpickle/model3d/model3d"

	"mahjongtile/internal/raster"
)

// Stroke is one engraved line segment, lying just above the top face.
type Stroke struct {
	Start, End model3d.Coord3D
}

type run struct {
	startX, endX int // inclusive
}

// EmitStrokes scans mask row by row and returns one stroke per on pixel,
// running along the pixel's centre line. With merge set, horizontally
// adjacent on pixels share a single stroke.
func EmitStrokes(mask *raster.Mask, layout Layout, lift float64, merge bool) ([]Stroke, error) {
	var strokes []Stroke

	for y := 0; y < mask.Height(); y++ {
		for _, r := range rowRuns(mask, y, merge) {
			start, err := layout.MapPoint(float64(r.startX), float64(y)+0.5)
			if err != nil {
				return nil, err
			}
			end, err := layout.MapPoint(float64(r.endX+1), float64(y)+0.5)
			if err != nil {
				return nil, err
			}
			start.Z += lift
			end.Z += lift
			strokes = append(strokes, Stroke{Start: start, End: end})
		}
	}
	return strokes, nil
}

func rowRuns(mask *raster.Mask, y int, merge bool) []run {
	var runs []run
	startSegment := -1

	for x := 0; x < mask.Width(); x++ {
		if !mask.At(x, y) {
			if startSegment != -1 {
				runs = append(runs, run{startSegment, x - 1})
				startSegment = -1
			}
			continue
		}
		if !merge {
			runs = append(runs, run{x, x})
			continue
		}
		if startSegment == -1 {
			startSegment = x
		}
	}
	if startSegment != -1 {
		runs = append(runs, run{startSegment, mask.Width() - 1})
	}
	return runs
}
