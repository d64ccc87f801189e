package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/charmbracelet/lipgloss"

	"mahjongtile/internal/config"
	"mahjongtile/internal/engrave"
	"mahjongtile/internal/scene"
)

var (
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#22C55E")).Bold(true)
	dimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	pathStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7C3AED"))
)

func main() {
	defaults := engrave.DefaultParams()

	inputFile := flag.String("input", "", "Path to the input image (png, jpg, gif, bmp, tiff, webp, svg)")
	outputFile := flag.String("output", "tile.stl", "Output mesh (.stl or .zip, optionally with .zst)")
	configFile := flag.String("config", "", "YAML tile preset; flags given explicitly override it")
	name := flag.String("name", defaults.Name, "Tile object name")
	width := flag.Float64("width", defaults.Size.X, "Tile width")
	depth := flag.Float64("depth", defaults.Size.Y, "Tile depth")
	height := flag.Float64("height", defaults.Size.Z, "Tile height")
	posX := flag.Float64("x", 0, "Tile centre X")
	posY := flag.Float64("y", 0, "Tile centre Y")
	posZ := flag.Float64("z", 0, "Tile centre Z")
	inset := flag.Float64("inset", defaults.InsetDepth, "Engraving inset depth")
	threshold := flag.Uint("threshold", uint(defaults.Threshold), "Grayscale threshold for engraving (0-255)")
	scale := flag.Float64("scale", defaults.PatternScale, "Fraction of the tile face covered by the pattern (0-1)")
	radius := flag.Float64("radius", defaults.StrokeRadius, "Stroke bevel radius")
	subdiv := flag.Int("subdiv", defaults.SubdivisionLevels, "Subdivision levels")
	resolution := flag.Float64("resolution", scene.DefaultResolution, "Marching cubes grid size")
	maxRes := flag.Int("max-res", 0, "Downsample images whose longer side exceeds this (0 = off)")
	mergeRuns := flag.Bool("merge-runs", false, "Merge adjacent pixels in a row into one stroke")
	flag.Parse()

	if *inputFile == "" {
		flag.Usage()
		os.Exit(1)
	}
	if *threshold > 255 {
		log.Fatalf("threshold must be in [0, 255], got %d", *threshold)
	}

	params := defaults
	meshRes := *resolution
	if *configFile != "" {
		preset, err := config.Load(*configFile)
		if err != nil {
			log.Fatalf("failed to load preset: %v", err)
		}
		if err := preset.Apply(&params); err != nil {
			log.Fatalf("invalid preset: %v", err)
		}
		if preset.Resolution != nil {
			meshRes = *preset.Resolution
		}
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "name":
			params.Name = *name
		case "width":
			params.Size.X = *width
		case "depth":
			params.Size.Y = *depth
		case "height":
			params.Size.Z = *height
		case "x":
			params.Position.X = *posX
		case "y":
			params.Position.Y = *posY
		case "z":
			params.Position.Z = *posZ
		case "inset":
			params.InsetDepth = *inset
		case "threshold":
			params.Threshold = uint8(*threshold)
		case "scale":
			params.PatternScale = *scale
		case "radius":
			params.StrokeRadius = *radius
		case "subdiv":
			params.SubdivisionLevels = *subdiv
		case "resolution":
			meshRes = *resolution
		case "max-res":
			params.MaxResolution = *maxRes
		case "merge-runs":
			params.MergeRuns = *mergeRuns
		}
	})

	logger := log.New(os.Stderr, "[tile] ", log.LstdFlags|log.Lmicroseconds)
	s := scene.New(meshRes)
	res, err := engrave.NewGenerator(s, logger).Generate(*inputFile, params)
	if err != nil {
		log.Fatalf("failed to generate tile: %v", err)
	}

	if err := s.Export(res.Tile, *outputFile); err != nil {
		log.Fatalf("failed to write output file: %v", err)
	}

	fmt.Println(okStyle.Render("done") + " " +
		dimStyle.Render(fmt.Sprintf("%.2fs | strokes: %d | polygons: %d |", res.Elapsed.Seconds(), res.Strokes, res.Polygons)) + " " +
		pathStyle.Render(*outputFile))
}
