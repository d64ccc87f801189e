package engrave

import (
	"errors"
	"fmt"

	"github.com/unixpickle/model3d/model3d"
)

// Params describes one tile. Lengths are in scene units.
type Params struct {
	Name     string
	Size     model3d.Coord3D // width (X), depth (Y), height (Z)
	Position model3d.Coord3D // block centre

	InsetDepth   float64
	Threshold    uint8
	PatternScale float64

	StrokeRadius      float64 // curve bevel depth
	SurfaceOffset     float64 // stroke height above the top face
	SubdivisionLevels int
	BaseColor         [4]float64
	MaxResolution     int // longest image side after downsampling, 0 = off
	MergeRuns         bool
}

func DefaultParams() Params {
	return Params{
		Name:              "MahjongTile",
		Size:              model3d.XYZ(2.1, 2.8, 1.2),
		InsetDepth:        0.1,
		Threshold:         128,
		PatternScale:      1,
		StrokeRadius:      0.01,
		SurfaceOffset:     0.005,
		SubdivisionLevels: 2,
		BaseColor:         [4]float64{0.9, 0.9, 0.8, 1.0},
	}
}

func (p Params) Validate() error {
	if p.Name == "" {
		return errors.New("tile name is empty")
	}
	if p.Size.X <= 0 || p.Size.Y <= 0 || p.Size.Z <= 0 {
		return fmt.Errorf("tile size must be positive, got %v", p.Size)
	}
	if p.InsetDepth <= 0 {
		return fmt.Errorf("inset depth must be positive, got %g", p.InsetDepth)
	}
	if p.PatternScale < 0 || p.PatternScale > 1 {
		return fmt.Errorf("pattern scale must be in [0, 1], got %g", p.PatternScale)
	}
	if p.StrokeRadius < 0 || p.SurfaceOffset < 0 {
		return errors.New("stroke radius and surface offset must not be negative")
	}
	if p.SubdivisionLevels < 0 {
		return fmt.Errorf("subdivision levels must not be negative, got %d", p.SubdivisionLevels)
	}
	if p.MaxResolution < 0 {
		return fmt.Errorf("max resolution must not be negative, got %d", p.MaxResolution)
	}
	return nil
}
