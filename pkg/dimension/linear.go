package dimension

import (
	"github.com/philipparndt/godim/pkg/geometry"
	"github.com/philipparndt/godim/pkg/mesh"
)

type linear struct{}

func (linear) value(d *Dimension, p Positions) float64 {
	return d.co(p, 0).Distance(d.co(p, 1))
}

func (linear) center(*Dimension, Positions) geometry.Vector3 {
	return geometry.Vector3{}
}

func (linear) plane(*Dimension, Positions) geometry.Vector3 {
	panic("dimension: linear dimensions have no plane")
}

// derive keeps FPos perpendicular to the measured edge and builds the
// baseline parallel to it
func (linear) derive(d *Dimension, p Positions) {
	a, b := d.co(p, 0), d.co(p, 1)
	d.Center = geometry.Vector3{}

	l := d.FPos.Length()
	axis := a.Sub(b).Normalize()
	d.FPos = d.FPos.Sub(d.FPos.Project(axis)).Normalize().Mul(l)

	d.Start = a.Add(d.FPos)
	d.End = b.Add(d.FPos)
	d.DPos = d.Start.Lerp(d.End, d.DPosFact)
}

func (linear) moving(d *Dimension, dir Direction) []mesh.VertexID {
	switch dir {
	case Forward:
		return d.Verts[1:2]
	case Backward:
		return d.Verts[0:1]
	default:
		return d.Verts
	}
}

// solve grows a Both edit from each end in turn: first half the change
// forward, then the rest backward
func (l linear) solve(s *Solver, d *Dimension, value float64, c Constraint, marks *mesh.Marks) {
	if d.Dir != Both {
		s.stretch(d, d.Dir, value, c, marks)
		return
	}
	current := l.value(d, s.Mesh)
	s.stretch(d, Forward, current+(value-current)/2, c, marks)
	s.stretch(d, Backward, value, c, marks)
}

// stretch moves one end of the dimension along the measured line, away from
// or towards the fixed end. Tagged vertices get the same translation.
func (s *Solver) stretch(d *Dimension, dir Direction, value float64, c Constraint, marks *mesh.Marks) {
	defer marks.Clear()

	moving, fixed := d.Verts[1], d.Verts[0]
	if dir == Backward {
		moving, fixed = fixed, moving
	}

	s.tagAffected(d, dir, marks)
	if c.Has(PlaneConstraint) {
		normal := s.Mesh.Co(d.Verts[0]).Sub(s.Mesh.Co(d.Verts[1])).Normalize()
		s.tagCoplanarFaces(s.Mesh.Co(moving), normal, marks)
	}
	s.untagControlling(d, marks)

	a, b := s.Mesh.Co(moving), s.Mesh.Co(fixed)
	moved := b.Add(a.Sub(b).Normalize().Mul(value))
	delta := moved.Sub(a)
	s.Mesh.SetCo(moving, moved)
	s.translate(delta, marks)

	s.Log.Debug().
		Stringer("dir", dir).
		Int("tagged", marks.VertexCount()).
		Float64("value", value).
		Msg("linear edit")
}
