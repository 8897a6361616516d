package dimension

import (
	"errors"
	"fmt"

	"github.com/philipparndt/godim/pkg/geometry"
	"github.com/philipparndt/godim/pkg/mesh"
	"github.com/samber/lo"
)

// ErrDegenerate is returned for controlling vertices that define no
// measurable geometry
var ErrDegenerate = errors.New("degenerate dimension")

// Validate checks the controlling vertices against the current positions.
// A dimension that passes can be given to Update, Value, Plane and the
// Solver without hitting their precondition panics.
func (d *Dimension) Validate(p Positions) error {
	info, ok := kinds[d.Kind]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownKind, int(d.Kind))
	}
	if len(d.Verts) != info.verts {
		return fmt.Errorf("%w: %s needs %d, got %d", ErrVertexCount, d.Kind, info.verts, len(d.Verts))
	}
	if len(lo.Uniq(d.Verts)) != len(d.Verts) {
		return fmt.Errorf("%w: %s uses a vertex twice", ErrDegenerate, d)
	}

	pts := lo.Map(d.Verts, func(v mesh.VertexID, _ int) geometry.Vector3 { return p.Co(v) })
	switch d.Kind {
	case Diameter, Radius:
		if _, ok := geometry.CenterOf3Points(pts[0], pts[1], pts[2]); ok {
			return nil
		}
		if _, ok := geometry.CenterOf3Points(pts[1], pts[0], pts[2]); ok {
			return nil
		}
		return fmt.Errorf("%w: vertices of %s are collinear", ErrDegenerate, d)
	case Angle3P:
		return checkArms(d, pts[1], pts[0], pts[2])
	case Angle4P:
		c, _, ok := geometry.IntersectLineLine(pts[0], pts[1], pts[2], pts[3])
		if !ok {
			return fmt.Errorf("%w: lines of %s are parallel", ErrDegenerate, d)
		}
		return checkArms(d, c, pts[0], pts[3])
	}
	return nil
}

// checkArms rejects angles whose arms span no plane
func checkArms(d *Dimension, center, a, b geometry.Vector3) error {
	m, r := a.Sub(center), b.Sub(center)
	if m.Cross(r).Normalize().IsZero() || m.ParallelTo(r) {
		return fmt.Errorf("%w: arms of %s are collinear", ErrDegenerate, d)
	}
	return nil
}
