package scene

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/unixpickle/model3d/model3d"

	"mahjongtile/internal/engrave"
)

var defaultColor = [3]float64{0.8, 0.8, 0.8}

// Info describes an object for reporting.
type Info struct {
	Name      string
	Smooth    bool
	Material  *engrave.Material
	Triangles int
}

func (s *Scene) Info(obj engrave.ObjectID) (Info, error) {
	o, err := s.get(obj)
	if err != nil {
		return Info{}, err
	}
	mesh, err := s.meshOf(o)
	if err != nil {
		return Info{}, err
	}
	return Info{
		Name:      o.name,
		Smooth:    o.smooth,
		Material:  o.material,
		Triangles: mesh.NumTriangles(),
	}, nil
}

// Export writes an object's mesh to path. ".stl" writes binary STL and
// ".zip" writes an OBJ/MTL archive coloured with the object's material.
// A trailing ".zst" compresses either format with zstd.
func (s *Scene) Export(obj engrave.ObjectID, path string) error {
	o, err := s.get(obj)
	if err != nil {
		return err
	}
	mesh, err := s.meshOf(o)
	if err != nil {
		return err
	}

	base := path
	compressed := strings.EqualFold(filepath.Ext(base), ".zst")
	if compressed {
		base = strings.TrimSuffix(base, filepath.Ext(base))
	}

	var data []byte
	switch ext := strings.ToLower(filepath.Ext(base)); ext {
	case ".stl":
		data = model3d.EncodeSTL(mesh.TriangleSlice())
	case ".zip":
		color := defaultColor
		if o.material != nil {
			color = [3]float64{o.material.BaseColor[0], o.material.BaseColor[1], o.material.BaseColor[2]}
		}
		data = model3d.EncodeMaterialOBJ(mesh.TriangleSlice(), func(t *model3d.Triangle) [3]float64 {
			return color
		})
	default:
		return fmt.Errorf("unsupported output format: %q", ext)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f, data, compressed); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func write(w io.Writer, data []byte, compressed bool) error {
	if !compressed {
		_, err := w.Write(data)
		return err
	}
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	if _, err := enc.Write(data); err != nil {
		_ = enc.Close()
		return err
	}
	return enc.Close()
}
