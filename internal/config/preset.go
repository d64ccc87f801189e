package config

import (
	"fmt"
	"os"

	"github.com/unixpickle/model3d/model3d"
	"gopkg.in/yaml.v3"

	"mahjongtile/internal/engrave"
)

// Preset is a YAML description of a tile. Omitted fields keep their
// defaults.
type Preset struct {
	Name       string      `yaml:"name"`
	Size       *[3]float64 `yaml:"size"`
	Position   *[3]float64 `yaml:"position"`
	InsetDepth *float64    `yaml:"inset_depth"`
	Threshold  *int        `yaml:"threshold"`
	Scale      *float64    `yaml:"pattern_scale"`

	StrokeRadius  *float64    `yaml:"stroke_radius"`
	SurfaceOffset *float64    `yaml:"surface_offset"`
	Subdivision   *int        `yaml:"subdivision_levels"`
	BaseColor     *[4]float64 `yaml:"base_color"`
	MaxResolution *int        `yaml:"max_resolution"`
	MergeRuns     *bool       `yaml:"merge_runs"`

	Resolution *float64 `yaml:"mesh_resolution"`
}

func Load(path string) (Preset, error) {
	var p Preset
	raw, err := os.ReadFile(path)
	if err != nil {
		return p, err
	}
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return p, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Apply overlays the preset onto params.
func (p Preset) Apply(params *engrave.Params) error {
	if p.Name != "" {
		params.Name = p.Name
	}
	if p.Size != nil {
		params.Size = model3d.XYZ(p.Size[0], p.Size[1], p.Size[2])
	}
	if p.Position != nil {
		params.Position = model3d.XYZ(p.Position[0], p.Position[1], p.Position[2])
	}
	if p.InsetDepth != nil {
		params.InsetDepth = *p.InsetDepth
	}
	if p.Threshold != nil {
		if *p.Threshold < 0 || *p.Threshold > 255 {
			return fmt.Errorf("threshold must be in [0, 255], got %d", *p.Threshold)
		}
		params.Threshold = uint8(*p.Threshold)
	}
	if p.Scale != nil {
		params.PatternScale = *p.Scale
	}
	if p.StrokeRadius != nil {
		params.StrokeRadius = *p.StrokeRadius
	}
	if p.SurfaceOffset != nil {
		params.SurfaceOffset = *p.SurfaceOffset
	}
	if p.Subdivision != nil {
		params.SubdivisionLevels = *p.Subdivision
	}
	if p.BaseColor != nil {
		params.BaseColor = *p.BaseColor
	}
	if p.MaxResolution != nil {
		params.MaxResolution = *p.MaxResolution
	}
	if p.MergeRuns != nil {
		params.MergeRuns = *p.MergeRuns
	}
	return nil
}
