package dimension

import (
	"github.com/philipparndt/godim/pkg/feature"
	"github.com/philipparndt/godim/pkg/geometry"
	"github.com/philipparndt/godim/pkg/mesh"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

// Solver applies dimension values to a mesh. It moves vertices in place and
// must not run concurrently with any other traversal of the same mesh.
type Solver struct {
	Mesh *mesh.Mesh
	// Features are the detected circles and arcs. A feature that contains a
	// moved controlling vertex moves along with it.
	Features []*feature.Feature
	// Defaults are the constraints used by dimensions without
	// OverrideConstraint
	Defaults Constraint
	Log      zerolog.Logger
}

// NewSolver returns a solver for m with no default constraints
func NewSolver(m *mesh.Mesh, features []*feature.Feature) *Solver {
	return &Solver{
		Mesh:     m,
		Features: features,
		Log:      zerolog.Nop(),
	}
}

// Apply moves the mesh so that d measures value. Face normals and the
// derived fields of d are updated afterwards. marks is scratch state and is
// empty again when Apply returns.
func (s *Solver) Apply(d *Dimension, value float64, marks *mesh.Marks) {
	defer marks.Clear()

	info := lookup(d.Kind)
	c := d.Constraints.Effective(s.Defaults)
	d.Update(s.Mesh)

	s.Log.Debug().
		Stringer("dimension", d).
		Float64("from", d.Value(s.Mesh)).
		Float64("to", value).
		Stringer("constraints", c).
		Stringer("dir", d.Dir).
		Msg("apply dimension")

	info.impl.solve(s, d, value, c, marks)

	s.Mesh.UpdateNormals()
	d.Update(s.Mesh)
}

// tagAffected tags the loops of all features that contain one of the
// vertices moving for dir
func (s *Solver) tagAffected(d *Dimension, dir Direction, marks *mesh.Marks) {
	moving := lookup(d.Kind).impl.moving(d, dir)
	for _, f := range s.Features {
		if !lo.Some(f.Loop, moving) {
			continue
		}
		for _, v := range f.Loop {
			marks.TagVertex(v)
		}
	}
}

// tagCoplanarFaces tags the vertices of every face lying in the plane
// through point with the given normal
func (s *Solver) tagCoplanarFaces(point, normal geometry.Vector3, marks *mesh.Marks) {
	for _, f := range s.Mesh.Faces() {
		if !f.Normal.ParallelTo(normal) {
			continue
		}
		if !geometry.PointOnPlane(point, normal, s.Mesh.Co(f.Verts[0])) {
			continue
		}
		for _, v := range f.Verts {
			marks.TagVertex(v)
		}
	}
}

func (s *Solver) untagControlling(d *Dimension, marks *mesh.Marks) {
	for _, v := range d.Verts {
		marks.UntagVertex(v)
	}
}

// translate moves every tagged vertex by delta
func (s *Solver) translate(delta geometry.Vector3, marks *mesh.Marks) {
	for _, v := range marks.TaggedVertices() {
		s.Mesh.SetCo(v, s.Mesh.Co(v).Add(delta))
	}
}
