package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/unixpickle/model3d/model3d"

	"mahjongtile/internal/engrave"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "tile.yaml")
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoadAndApply(t *testing.T) {
	path := writeFile(t, `
name: Bamboo1
size: [2.0, 2.6, 1.1]
position: [1, 0, 0]
threshold: 100
pattern_scale: 0.9
merge_runs: true
mesh_resolution: 0.01
`)
	preset, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if preset.Resolution == nil || *preset.Resolution != 0.01 {
		t.Fatalf("mesh resolution = %v", preset.Resolution)
	}

	params := engrave.DefaultParams()
	if err := preset.Apply(&params); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if params.Name != "Bamboo1" || params.Threshold != 100 || params.PatternScale != 0.9 || !params.MergeRuns {
		t.Fatalf("params = %+v", params)
	}
	if params.Size != model3d.XYZ(2, 2.6, 1.1) || params.Position != model3d.XYZ(1, 0, 0) {
		t.Fatalf("geometry = %v %v", params.Size, params.Position)
	}
	// Untouched fields keep their defaults.
	if params.InsetDepth != 0.1 || params.SubdivisionLevels != 2 {
		t.Fatalf("defaults overwritten: %+v", params)
	}
}

func TestApply_RejectsThresholdOutOfRange(t *testing.T) {
	preset, err := Load(writeFile(t, "threshold: 300\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	params := engrave.DefaultParams()
	if err := preset.Apply(&params); err == nil {
		t.Fatalf("expected error for threshold 300")
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
	if _, err := Load(writeFile(t, "size: [1, 2\n")); err == nil {
		t.Fatalf("expected parse error")
	}
}
