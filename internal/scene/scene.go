// Package scene is a small solid-modelling host for tile generation. Objects
// are kept as implicit solids and meshed on demand with marching cubes.
package scene

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/unixpickle/model3d/model2d"
	"github.com/unixpickle/model3d/model3d"

	"mahjongtile/internal/engrave"
)

const DefaultResolution = 0.02

type object struct {
	name string

	solid model3d.Solid
	mesh  *model3d.Mesh

	// curve data, before conversion
	isCurve   bool
	bevel     float64
	polylines [][]model3d.Coord3D

	// flat profile, after conversion and before extrusion
	profile *profile

	smooth   bool
	material *engrave.Material
}

// Scene implements engrave.Scene on top of model3d.
type Scene struct {
	resolution float64
	objects    map[engrave.ObjectID]*object
	nextID     engrave.ObjectID
}

// New creates an empty scene. Curved solids are meshed with marching cubes
// at the given grid resolution; non-positive values select
// DefaultResolution.
func New(resolution float64) *Scene {
	if resolution <= 0 {
		resolution = DefaultResolution
	}
	return &Scene{
		resolution: resolution,
		objects:    map[engrave.ObjectID]*object{},
	}
}

func (s *Scene) add(o *object) engrave.ObjectID {
	s.nextID++
	s.objects[s.nextID] = o
	return s.nextID
}

func (s *Scene) get(id engrave.ObjectID) (*object, error) {
	o, ok := s.objects[id]
	if !ok {
		return nil, fmt.Errorf("no object with id %d", id)
	}
	return o, nil
}

// Names lists the objects currently in the scene.
func (s *Scene) Names() []string {
	names := make([]string, 0, len(s.objects))
	for _, o := range s.objects {
		names = append(names, o.name)
	}
	sort.Strings(names)
	return names
}

func (s *Scene) ClearMeshes() error {
	s.objects = map[engrave.ObjectID]*object{}
	return nil
}

func (s *Scene) AddBlock(name string, size, center model3d.Coord3D) (engrave.ObjectID, error) {
	if size.X <= 0 || size.Y <= 0 || size.Z <= 0 {
		return 0, fmt.Errorf("block %q: size must be positive, got %v", name, size)
	}
	half := size.Scale(0.5)
	return s.add(&object{
		name:  name,
		solid: &model3d.Rect{MinVal: center.Sub(half), MaxVal: center.Add(half)},
	}), nil
}

func (s *Scene) NewCurve(name string, bevelDepth float64) (engrave.ObjectID, error) {
	if bevelDepth < 0 {
		return 0, fmt.Errorf("curve %q: negative bevel depth %g", name, bevelDepth)
	}
	return s.add(&object{name: name, isCurve: true, bevel: bevelDepth}), nil
}

func (s *Scene) AddPolyline(curve engrave.ObjectID, points ...model3d.Coord3D) error {
	o, err := s.get(curve)
	if err != nil {
		return err
	}
	if !o.isCurve {
		return fmt.Errorf("object %q is not a curve", o.name)
	}
	if len(points) < 2 {
		return fmt.Errorf("curve %q: polyline needs at least two points", o.name)
	}
	o.polylines = append(o.polylines, append([]model3d.Coord3D(nil), points...))
	return nil
}

// ConvertToMesh replaces a curve with a flat ribbon object. Every polyline
// must lie in a single horizontal plane.
func (s *Scene) ConvertToMesh(curve engrave.ObjectID, name string) (engrave.ObjectID, error) {
	o, err := s.get(curve)
	if err != nil {
		return 0, err
	}
	if !o.isCurve {
		return 0, fmt.Errorf("object %q is not a curve", o.name)
	}
	if len(o.polylines) == 0 {
		return 0, fmt.Errorf("curve %q is empty", o.name)
	}

	p := &profile{radius: o.bevel, z: o.polylines[0][0].Z}
	for _, line := range o.polylines {
		for i := 1; i < len(line); i++ {
			a, b := line[i-1], line[i]
			if math.Abs(a.Z-p.z) > 1e-9 || math.Abs(b.Z-p.z) > 1e-9 {
				return 0, fmt.Errorf("curve %q is not planar", o.name)
			}
			p.segments = append(p.segments, model2d.Segment{model2d.XY(a.X, a.Y), model2d.XY(b.X, b.Y)})
		}
	}

	delete(s.objects, curve)
	return s.add(&object{name: name, profile: p}), nil
}

// Extrude sweeps a converted curve along offset, which must be vertical.
func (s *Scene) Extrude(obj engrave.ObjectID, offset model3d.Coord3D) error {
	o, err := s.get(obj)
	if err != nil {
		return err
	}
	if o.profile == nil {
		return fmt.Errorf("object %q has no profile to extrude", o.name)
	}
	if offset.X != 0 || offset.Y != 0 || offset.Z == 0 {
		return fmt.Errorf("object %q: only vertical extrusion is supported, got %v", o.name, offset)
	}
	z0, z1 := o.profile.z, o.profile.z+offset.Z
	o.solid = newStampSolid(*o.profile, math.Min(z0, z1), math.Max(z0, z1))
	o.profile = nil
	o.mesh = nil
	return nil
}

func (s *Scene) BooleanDifference(target, cutter engrave.ObjectID) error {
	if target == cutter {
		return errors.New("cannot subtract an object from itself")
	}
	t, err := s.get(target)
	if err != nil {
		return err
	}
	c, err := s.get(cutter)
	if err != nil {
		return err
	}
	if t.solid == nil || c.solid == nil {
		return fmt.Errorf("boolean %q - %q: both operands must be solids", t.name, c.name)
	}
	t.solid = &model3d.SubtractedSolid{Positive: t.solid, Negative: c.solid}
	t.mesh = nil
	return nil
}

func (s *Scene) Subdivide(obj engrave.ObjectID, levels int) error {
	o, err := s.get(obj)
	if err != nil {
		return err
	}
	if levels < 0 {
		return fmt.Errorf("object %q: negative subdivision level %d", o.name, levels)
	}
	mesh, err := s.meshOf(o)
	if err != nil {
		return err
	}
	if levels > 0 {
		o.mesh = model3d.LoopSubdivision(mesh, levels)
	}
	return nil
}

func (s *Scene) ShadeSmooth(obj engrave.ObjectID) error {
	o, err := s.get(obj)
	if err != nil {
		return err
	}
	o.smooth = true
	return nil
}

func (s *Scene) AssignMaterial(obj engrave.ObjectID, m engrave.Material) error {
	o, err := s.get(obj)
	if err != nil {
		return err
	}
	o.material = &m
	return nil
}

func (s *Scene) Delete(obj engrave.ObjectID) error {
	if _, err := s.get(obj); err != nil {
		return err
	}
	delete(s.objects, obj)
	return nil
}

// PolygonCount returns the number of triangles in the object's mesh.
func (s *Scene) PolygonCount(obj engrave.ObjectID) (int, error) {
	o, err := s.get(obj)
	if err != nil {
		return 0, err
	}
	mesh, err := s.meshOf(o)
	if err != nil {
		return 0, err
	}
	return mesh.NumTriangles(), nil
}

// Mesh returns the object's current mesh, building it if needed.
func (s *Scene) Mesh(obj engrave.ObjectID) (*model3d.Mesh, error) {
	o, err := s.get(obj)
	if err != nil {
		return nil, err
	}
	return s.meshOf(o)
}

func (s *Scene) meshOf(o *object) (*model3d.Mesh, error) {
	if o.mesh != nil {
		return o.mesh, nil
	}
	switch solid := o.solid.(type) {
	case nil:
		return nil, fmt.Errorf("object %q has no solid geometry", o.name)
	case *model3d.Rect:
		o.mesh = model3d.NewMeshRect(solid.MinVal, solid.MaxVal)
	default:
		o.mesh = model3d.MarchingCubesSearch(solid, s.resolution, 8)
	}
	return o.mesh, nil
}
