package scene

import (
	"fmt"
	"log/slog"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"gpu-raytracer/math"
)

// ImportOptions supplies the per-record vectors a glTF mesh does not carry.
type ImportOptions struct {
	Color    math.Vec3
	Material math.Vec3 // x = shininess, y = specular colour, z = reflectance
}

// DefaultImportOptions is a white, mildly specular, non-reflective surface.
func DefaultImportOptions() ImportOptions {
	return ImportOptions{
		Color:    math.Vec3One,
		Material: math.NewVec3(16, 0.5, 0),
	}
}

// ImportGLTF opens a .gltf or .glb file and turns every triangle-mode mesh
// primitive into triangle records. Positions are taken in mesh-local space;
// node transforms are not applied.
func ImportGLTF(path string, opts ImportOptions) (*Scene, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gltf open %q: %w", path, err)
	}

	s := New()
	for mi, gm := range doc.Meshes {
		for pi, prim := range gm.Primitives {
			if prim.Mode != gltf.PrimitiveTriangles {
				slog.Warn("gltf: skipping non-triangle primitive", "mesh", mi, "primitive", pi, "mode", prim.Mode)
				continue
			}
			tris, err := gltfTriangles(doc, prim)
			if err != nil {
				return nil, fmt.Errorf("gltf mesh %d prim %d: %w", mi, pi, err)
			}
			for _, t := range tris {
				if err := s.Add(Triangle, t[0], t[1], t[2], opts.Color, opts.Material); err != nil {
					return nil, err
				}
			}
		}
	}
	return s, nil
}

func gltfTriangles(doc *gltf.Document, prim *gltf.Primitive) ([][3]math.Vec3, error) {
	posIdx, ok := prim.Attributes["POSITION"]
	if !ok {
		return nil, fmt.Errorf("no POSITION attribute")
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return nil, fmt.Errorf("positions: %w", err)
	}

	var indices []uint32
	if prim.Indices != nil {
		indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return nil, fmt.Errorf("indices: %w", err)
		}
	} else {
		indices = make([]uint32, len(positions))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}

	tris := make([][3]math.Vec3, 0, len(indices)/3)
	for i := 0; i+2 < len(indices); i += 3 {
		var t [3]math.Vec3
		for c := 0; c < 3; c++ {
			idx := int(indices[i+c])
			if idx >= len(positions) {
				return nil, fmt.Errorf("index %d out of range (%d positions)", idx, len(positions))
			}
			t[c] = math.Vec3FromArray(positions[idx])
		}
		tris = append(tris, t)
	}
	return tris, nil
}
