package scene

import (
	"math"

	"github.com/unixpickle/model3d/model2d"
	"github.com/unixpickle/model3d/model3d"
)

// profile is a flattened curve: line segments in the XY plane at height z,
// each widened to a ribbon of the given half-width.
type profile struct {
	segments []model2d.Segment
	radius   float64
	z        float64
}

// stampSolid is a profile swept vertically between minZ and maxZ. Segments
// are bucketed on a uniform grid so Contains only visits nearby strokes.
type stampSolid struct {
	profile  profile
	minZ     float64
	maxZ     float64
	min, max model3d.Coord3D

	cellSize float64
	cells    map[[2]int][]int
}

func newStampSolid(p profile, minZ, maxZ float64) *stampSolid {
	s := &stampSolid{
		profile: p,
		minZ:    minZ,
		maxZ:    maxZ,
		cells:   map[[2]int][]int{},
	}

	s.cellSize = 2 * p.radius
	lo := model2d.XY(math.Inf(1), math.Inf(1))
	hi := model2d.XY(math.Inf(-1), math.Inf(-1))
	for _, seg := range p.segments {
		s.cellSize = math.Max(s.cellSize, seg[0].Dist(seg[1]))
		lo = lo.Min(seg[0].Min(seg[1]))
		hi = hi.Max(seg[0].Max(seg[1]))
	}
	if s.cellSize == 0 {
		s.cellSize = 1
	}
	pad := model2d.XY(p.radius, p.radius)
	lo, hi = lo.Sub(pad), hi.Add(pad)
	s.min = model3d.XYZ(lo.X, lo.Y, minZ)
	s.max = model3d.XYZ(hi.X, hi.Y, maxZ)

	for i, seg := range p.segments {
		a := seg[0].Min(seg[1]).Sub(pad)
		b := seg[0].Max(seg[1]).Add(pad)
		x0, y0 := s.cell(a)
		x1, y1 := s.cell(b)
		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				key := [2]int{x, y}
				s.cells[key] = append(s.cells[key], i)
			}
		}
	}
	return s
}

func (s *stampSolid) cell(c model2d.Coord) (int, int) {
	return int(math.Floor(c.X / s.cellSize)), int(math.Floor(c.Y / s.cellSize))
}

func (s *stampSolid) Min() model3d.Coord3D { return s.min }
func (s *stampSolid) Max() model3d.Coord3D { return s.max }

func (s *stampSolid) Contains(c model3d.Coord3D) bool {
	if !model3d.InBounds(s, c) {
		return false
	}
	flat := model2d.XY(c.X, c.Y)
	x, y := s.cell(flat)
	for _, i := range s.cells[[2]int{x, y}] {
		if s.profile.segments[i].Dist(flat) <= s.profile.radius {
			return true
		}
	}
	return false
}
