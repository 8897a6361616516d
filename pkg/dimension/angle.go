package dimension

import (
	"math"

	"github.com/philipparndt/godim/pkg/geometry"
	"github.com/philipparndt/godim/pkg/mesh"
)

// axisSymmetricTolerance is how far from the auxiliary circle radius a
// vertex may be and still follow its own concentric arc
const axisSymmetricTolerance = 4.0

// angle implements Angle3P and Angle4P. The measured arms run from the
// center to Verts[0] and Verts[end].
type angle struct {
	end      int
	forward  []int
	backward []int
}

func (a angle) value(d *Dimension, p Positions) float64 {
	return degrees(geometry.AngleAt(d.co(p, 0), d.Center, d.co(p, a.end)))
}

// center is the corner vertex for three points and the intersection of the
// two lines for four. Skew lines give two nearest points; the one on the
// first line is used.
func (a angle) center(d *Dimension, p Positions) geometry.Vector3 {
	if a.end == 2 {
		return d.co(p, 1)
	}
	c, _, ok := geometry.IntersectLineLine(d.co(p, 0), d.co(p, 1), d.co(p, 2), d.co(p, 3))
	if !ok {
		panic("dimension: lines of angle4p are parallel")
	}
	return c
}

func (a angle) plane(d *Dimension, p Positions) geometry.Vector3 {
	m := d.co(p, 0).Sub(d.Center)
	r := d.co(p, a.end).Sub(d.Center)
	n := m.Cross(r).Normalize()
	if n.IsZero() {
		panic("dimension: arms of " + d.Kind.String() + " are collinear")
	}
	return n
}

// derive puts Start and End on the arms at the label distance and DPos on
// the arc between them
func (a angle) derive(d *Dimension, p Positions) {
	d.Center = a.center(d, p)
	d.flattenFPos(p)

	l := d.FPos.Length()
	d.Start = d.Center.Add(d.co(p, 0).Sub(d.Center).Normalize().Mul(l))
	d.End = d.Center.Add(d.co(p, a.end).Sub(d.Center).Normalize().Mul(l))
	if l == 0 {
		d.DPos = d.Center
		return
	}

	v1 := d.Start.Sub(d.Center).Normalize()
	v2 := d.End.Sub(d.Center).Normalize()
	d.DPos = d.Center.Add(v1.Mul(l).Rotate(v1.Cross(v2), v1.AngleTo(v2)*d.DPosFact))
}

func (a angle) moving(d *Dimension, dir Direction) []mesh.VertexID {
	idx := a.forward
	switch dir {
	case Backward:
		idx = a.backward
	case Both:
		idx = append(append([]int(nil), a.backward...), a.forward...)
	}
	verts := make([]mesh.VertexID, len(idx))
	for i, j := range idx {
		verts[i] = d.Verts[j]
	}
	return verts
}

// solve splits a Both edit into half the change on the forward arm and the
// remainder on the backward arm
func (a angle) solve(s *Solver, d *Dimension, value float64, c Constraint, marks *mesh.Marks) {
	if d.Dir != Both {
		s.rotateArm(a, d, d.Dir, value, c, marks)
		return
	}
	d.UpdateCenter(s.Mesh)
	delta := value - a.value(d, s.Mesh)
	s.rotateArm(a, d, Forward, value-delta/2, c, marks)
	s.rotateArm(a, d, Backward, value, c, marks)
}

// auxCircle is the circle through Verts[0] and the first two extra
// vertices, together with the foot of the dimension center on its axis
type auxCircle struct {
	center     geometry.Vector3
	axis       geometry.Vector3
	radius     float64
	axisCenter geometry.Vector3
	axisRadius float64
}

func (s *Solver) auxCircle(d *Dimension) (auxCircle, bool) {
	if len(d.Extra) < 2 {
		return auxCircle{}, false
	}
	v0 := s.Mesh.Co(d.Verts[0])
	e0 := s.Mesh.Co(d.Extra[0])
	e1 := s.Mesh.Co(d.Extra[1])
	cc, ok := geometry.CenterOf3Points(v0, e0, e1)
	if !ok {
		return auxCircle{}, false
	}

	axis := v0.Sub(cc).Cross(e0.Sub(cc)).Normalize()
	out := geometry.PerpendicularToAxis(cc, d.Center, axis)
	return auxCircle{
		center:     cc,
		axis:       axis,
		radius:     cc.Distance(v0),
		axisCenter: d.Center.Sub(out),
		axisRadius: out.Length(),
	}, true
}

// rotateArm turns one arm of the angle around the dimension axis until the
// angle measures value. Tagged vertices rotate by the same amount, either
// around the dimension axis or, on axis-symmetric parts, around their own
// center on the auxiliary circle.
func (s *Solver) rotateArm(a angle, d *Dimension, dir Direction, value float64, c Constraint, marks *mesh.Marks) {
	defer marks.Clear()

	m := s.Mesh
	d.UpdateCenter(m)
	axis, _ := d.Plane(m)
	delta := value - a.value(d, m)

	arm := d.co(m, a.end)
	if dir == Backward {
		arm = d.co(m, 0)
	}
	armNormal := axis.Cross(arm.Sub(d.Center)).Normalize()

	s.tagAffected(d, dir, marks)
	if c.Has(PlaneConstraint) {
		s.tagCoplanarFaces(arm, armNormal, marks)
	}

	aux, symmetric := s.auxCircle(d)
	if symmetric && c.Has(AxisConstraint) {
		for _, v := range m.Vertices() {
			if math.Abs(geometry.DistanceToAxis(aux.center, aux.axis, v.Co)-aux.radius) < ConstraintPrecision {
				marks.TagVertex(v.ID)
			}
		}
	}
	s.untagControlling(d, marks)

	if !symmetric {
		for _, v := range marks.TaggedVertices() {
			if !geometry.PointOnPlane(d.Center, armNormal, m.Co(v)) {
				marks.UntagVertex(v)
			}
		}
	}

	if dir == Backward {
		delta = -delta
	}
	for _, v := range a.moving(d, dir) {
		s.rotate(v, d.Center, axis, delta, c)
	}

	for _, v := range marks.TaggedVertices() {
		co := m.Co(v)
		if symmetric && math.Abs(geometry.DistanceToAxis(aux.center, aux.axis, co)-aux.radius) < axisSymmetricTolerance {
			out := geometry.PerpendicularToAxis(aux.axisCenter, co, aux.axis)
			center := aux.axisCenter.Add(out.Normalize().Mul(aux.axisRadius))
			s.rotate(v, center, geometry.TriangleNormal(aux.center, aux.axisCenter, center), delta, c)
			continue
		}
		center := d.Center.Add(co.Sub(d.Center).Project(axis))
		s.rotate(v, center, axis, delta, c)
	}

	s.Log.Debug().
		Stringer("dir", dir).
		Float64("delta", delta).
		Bool("symmetric", symmetric).
		Int("tagged", marks.VertexCount()).
		Msg("angle edit")
}

// rotate turns v around the axis through center by deg degrees. With
// AllowSlideConstraint the vertex is then pulled back into each incident
// face the rotation would have lifted it out of.
func (s *Solver) rotate(v mesh.VertexID, center, axis geometry.Vector3, deg float64, c Constraint) {
	m := s.Mesh
	offset := m.Co(v).Sub(center)
	tangent := offset.Cross(axis).Normalize()
	moved := center.Add(offset.Rotate(axis, radians(deg)))
	m.SetCo(v, moved)

	if !c.Has(AllowSlideConstraint) {
		return
	}
	for _, fid := range m.FacesOfVertex(v) {
		f := m.Face(fid)
		if !axis.PerpendicularTo(f.Normal) || tangent.ParallelTo(f.Normal) {
			continue
		}
		if geometry.PointOnAxis(center, axis, moved) {
			continue
		}
		other := f.Verts[0]
		if other == v {
			other = f.Verts[1]
		}
		if hit, ok := geometry.IntersectLinePlane(center, moved, m.Co(other), f.Normal); ok {
			moved = hit
			m.SetCo(v, moved)
		}
	}
}
