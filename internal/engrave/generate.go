package engrave

import (
	"fmt"
	"io"
	"log"
	"time"

	"github.com/unixpickle/essentials"
	"github.com/unixpickle/model3d/model3d"

	"mahjongtile/internal/raster"
)

// ObjectID names an object held by a Scene. The zero value is never a
// valid object.
type ObjectID int

type Material struct {
	Name      string
	BaseColor [4]float64
}

// Scene is the 3D host the tile is built in.
type Scene interface {
	ClearMeshes() error
	AddBlock(name string, size, center model3d.Coord3D) (ObjectID, error)
	NewCurve(name string, bevelDepth float64) (ObjectID, error)
	AddPolyline(curve ObjectID, points ...model3d.Coord3D) error
	ConvertToMesh(curve ObjectID, name string) (ObjectID, error)
	Extrude(obj ObjectID, offset model3d.Coord3D) error
	BooleanDifference(target, cutter ObjectID) error
	Subdivide(obj ObjectID, levels int) error
	ShadeSmooth(obj ObjectID) error
	AssignMaterial(obj ObjectID, m Material) error
	Delete(obj ObjectID) error
	PolygonCount(obj ObjectID) (int, error)
}

type Result struct {
	Tile     ObjectID
	Strokes  int
	Polygons int
	Elapsed  time.Duration
}

type Generator struct {
	scene  Scene
	logger *log.Logger
}

func NewGenerator(scene Scene, logger *log.Logger) *Generator {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Generator{scene: scene, logger: logger}
}

// Generate builds a tile in the scene with the image at imagePath engraved
// into its top face. On failure the error is logged and returned; objects
// created before the failure stay in the scene.
func (g *Generator) Generate(imagePath string, p Params) (res Result, err error) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("scene panic: %v", r)
		}
		if err != nil {
			g.logger.Printf("error: %v", err)
			res = Result{}
		}
	}()

	if err := p.Validate(); err != nil {
		return Result{}, err
	}

	if err := g.scene.ClearMeshes(); err != nil {
		return Result{}, essentials.AddCtx("clear scene", err)
	}
	tile, err := g.scene.AddBlock(p.Name, p.Size, p.Position)
	if err != nil {
		return Result{}, essentials.AddCtx("add block", err)
	}

	strokes, err := g.strokes(imagePath, p)
	if err != nil {
		return Result{}, err
	}

	var cutter ObjectID
	if len(strokes) > 0 {
		cutter, err = g.cut(tile, strokes, p)
		if err != nil {
			return Result{}, err
		}
	} else {
		g.logger.Printf("%s: image has no engravable pixels, leaving tile blank", imagePath)
	}

	if err := g.scene.Subdivide(tile, p.SubdivisionLevels); err != nil {
		return Result{}, essentials.AddCtx("subdivide", err)
	}
	if cutter != 0 {
		if err := g.scene.Delete(cutter); err != nil {
			return Result{}, essentials.AddCtx("delete cutter", err)
		}
	}
	if err := g.scene.ShadeSmooth(tile); err != nil {
		return Result{}, essentials.AddCtx("shade smooth", err)
	}
	material := Material{Name: "MahjongMaterial", BaseColor: p.BaseColor}
	if err := g.scene.AssignMaterial(tile, material); err != nil {
		return Result{}, essentials.AddCtx("assign material", err)
	}

	polys, err := g.scene.PolygonCount(tile)
	if err != nil {
		return Result{}, essentials.AddCtx("count polygons", err)
	}

	res = Result{
		Tile:     tile,
		Strokes:  len(strokes),
		Polygons: polys,
		Elapsed:  time.Since(start),
	}
	g.logger.Printf("generated %s in %.2fs | strokes: %d | polygons: %d",
		p.Name, res.Elapsed.Seconds(), res.Strokes, res.Polygons)
	return res, nil
}

func (g *Generator) strokes(imagePath string, p Params) ([]Stroke, error) {
	img, err := raster.LoadImage(imagePath)
	if err != nil {
		return nil, essentials.AddCtx("load image", err)
	}
	img = raster.Downsample(img, p.MaxResolution)

	mask := raster.Threshold(img, p.Threshold)
	g.logger.Printf("%s: %dx%d mask, %d pixels on", imagePath, mask.Width(), mask.Height(), mask.Count())

	strokes, err := EmitStrokes(mask, p.Layout(mask.Width(), mask.Height()), p.SurfaceOffset, p.MergeRuns)
	if err != nil {
		return nil, essentials.AddCtx("emit strokes", err)
	}
	return strokes, nil
}

// cut turns strokes into a stamp solid and subtracts it from tile.
func (g *Generator) cut(tile ObjectID, strokes []Stroke, p Params) (ObjectID, error) {
	curve, err := g.scene.NewCurve(p.Name+"_Curve", p.StrokeRadius)
	if err != nil {
		return 0, essentials.AddCtx("new curve", err)
	}
	for _, s := range strokes {
		if err := g.scene.AddPolyline(curve, s.Start, s.End); err != nil {
			return 0, essentials.AddCtx("add polyline", err)
		}
	}

	cutter, err := g.scene.ConvertToMesh(curve, p.Name+"_Cutter")
	if err != nil {
		return 0, essentials.AddCtx("convert curve", err)
	}
	if err := g.scene.Extrude(cutter, model3d.XYZ(0, 0, -p.InsetDepth)); err != nil {
		return 0, essentials.AddCtx("extrude cutter", err)
	}
	if err := g.scene.BooleanDifference(tile, cutter); err != nil {
		return 0, essentials.AddCtx("boolean difference", err)
	}
	return cutter, nil
}
