package dimension

import (
	"math"

	"github.com/philipparndt/godim/pkg/geometry"
	"github.com/philipparndt/godim/pkg/mesh"
)

// radial implements Radius (scale 1) and Diameter (scale 2)
type radial struct {
	scale float64
}

func (r radial) value(d *Dimension, p Positions) float64 {
	return d.co(p, 0).Distance(d.Center) * r.scale
}

// center takes the circle through the three controlling vertices, retrying
// with the first two swapped when that ordering is degenerate
func (radial) center(d *Dimension, p Positions) geometry.Vector3 {
	a, b, c := d.co(p, 0), d.co(p, 1), d.co(p, 2)
	if center, ok := geometry.CenterOf3Points(a, b, c); ok {
		return center
	}
	if center, ok := geometry.CenterOf3Points(b, a, c); ok {
		return center
	}
	panic("dimension: controlling vertices of " + d.Kind.String() + " are collinear")
}

func (radial) plane(d *Dimension, p Positions) geometry.Vector3 {
	m := d.co(p, 0).Sub(d.Center).Normalize()
	r := d.co(p, 1).Sub(d.Center).Normalize()
	if m.ParallelTo(r) {
		r = d.co(p, 2).Sub(d.Center).Normalize()
	}
	return m.Cross(r).Normalize()
}

// derive places the dimension line through the center along FPos
func (r radial) derive(d *Dimension, p Positions) {
	d.Center = r.center(d, p)
	d.flattenFPos(p)

	radius := d.co(p, 0).Distance(d.Center)
	v := d.FPos.Normalize().Mul(radius)
	d.Start = d.Center.Add(v)
	d.End = d.Center.Sub(v)

	if r.scale == 2 {
		d.DPos = d.Start.Lerp(d.End, d.DPosFact)
	} else {
		d.DPos = d.Start.Add(d.End.Sub(d.Center).Mul(d.DPosFact))
	}
}

// moving returns the controlling vertices; radial edits move all of them
func (radial) moving(d *Dimension, _ Direction) []mesh.VertexID {
	return d.Verts
}

// solve pushes every affected vertex radially, in its own plane normal to
// the dimension axis, until it sits at the new radius
func (r radial) solve(s *Solver, d *Dimension, value float64, c Constraint, marks *mesh.Marks) {
	defer marks.Clear()

	radius := value / r.scale
	current := r.value(d, s.Mesh) / r.scale
	axis, _ := d.Plane(s.Mesh)

	s.tagAffected(d, d.Dir, marks)
	if c.Has(AxisConstraint) {
		for _, v := range s.Mesh.Vertices() {
			if marks.VertexTagged(v.ID) {
				continue
			}
			if math.Abs(geometry.DistanceToAxis(d.Center, axis, v.Co)-current) < ConstraintPrecision {
				marks.TagVertex(v.ID)
			}
		}
	}
	s.untagControlling(d, marks)

	push := func(v mesh.VertexID) {
		co := s.Mesh.Co(v)
		onAxis := d.Center.Add(co.Sub(d.Center).Project(axis))
		out := co.Sub(onAxis)
		if out.IsZero() {
			return
		}
		s.Mesh.SetCo(v, onAxis.Add(out.Normalize().Mul(radius)))
	}
	for _, v := range d.Verts {
		push(v)
	}
	for _, v := range marks.TaggedVertices() {
		push(v)
	}

	s.Log.Debug().
		Float64("radius", radius).
		Int("tagged", marks.VertexCount()).
		Msg("radial edit")
}
