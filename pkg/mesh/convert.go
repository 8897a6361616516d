package mesh

import (
	"math"

	"github.com/philipparndt/godim/pkg/geometry"
	"github.com/philipparndt/godim/pkg/stl"
)

// DefaultWeldTolerance is the distance under which STL triangle corners are
// merged into a single vertex
const DefaultWeldTolerance = 1e-5

type weldKey struct {
	x, y, z int64
}

// FromModel builds a mesh from an STL triangle soup. Corners closer than
// tolerance (snapped to a grid of that size) become one shared vertex, so
// that edges are shared between neighbouring triangles. Triangles that
// collapse after welding are dropped.
func FromModel(model *stl.Model, tolerance float64) *Mesh {
	if tolerance <= 0 {
		tolerance = DefaultWeldTolerance
	}

	m := New(model.Name)
	index := make(map[weldKey]VertexID)
	weld := func(p geometry.Vector3) VertexID {
		key := weldKey{
			x: int64(math.Round(p.X / tolerance)),
			y: int64(math.Round(p.Y / tolerance)),
			z: int64(math.Round(p.Z / tolerance)),
		}
		if id, ok := index[key]; ok {
			return id
		}
		id := m.AddVertex(p)
		index[key] = id
		return id
	}

	for _, tri := range model.Triangles {
		corners := tri.Vertices()
		a, b, c := weld(corners[0]), weld(corners[1]), weld(corners[2])
		if a == b || b == c || c == a {
			continue
		}
		m.AddFace(a, b, c)
	}
	return m
}

// ToModel triangulates every face as a fan and returns an STL model
func (m *Mesh) ToModel() *stl.Model {
	model := stl.NewModel(m.Name)
	for _, f := range m.faces {
		first := m.verts[f.Verts[0]].Co
		for i := 1; i+1 < len(f.Verts); i++ {
			model.AddTriangle(geometry.NewTriangle(
				f.Normal,
				first,
				m.verts[f.Verts[i]].Co,
				m.verts[f.Verts[i+1]].Co,
			))
		}
	}
	return model
}
