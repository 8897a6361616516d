package dimension

import (
	"math"

	"github.com/philipparndt/godim/pkg/geometry"
)

// Value returns the current measurement: a length for Linear, Radius and
// Diameter, degrees for the angle kinds. Center must be up to date for the
// radial and angle kinds.
func (d *Dimension) Value(p Positions) float64 {
	return lookup(d.Kind).impl.value(d, p)
}

// UpdateCenter recomputes Center from the controlling vertices
func (d *Dimension) UpdateCenter(p Positions) {
	d.Center = lookup(d.Kind).impl.center(d, p)
}

// Plane returns the normal of the plane the dimension lies in and a point
// on it. Linear dimensions have no plane; calling Plane on one panics.
func (d *Dimension) Plane(p Positions) (normal, point geometry.Vector3) {
	return lookup(d.Kind).impl.plane(d, p), p.Co(d.Verts[0])
}

// Mid returns the mid point of a Linear dimension
func (d *Dimension) Mid(p Positions) geometry.Vector3 {
	if d.Kind != Linear {
		panic("dimension: Mid is only defined for linear dimensions")
	}
	return p.Co(d.Verts[0]).Lerp(p.Co(d.Verts[1]), 0.5)
}

// Update recomputes the derived fields after the geometry changed. FPos is
// flattened onto the dimension plane so the label never drifts off it.
func (d *Dimension) Update(p Positions) {
	lookup(d.Kind).impl.derive(d, p)
}

// flattenFPos projects the label offset onto the dimension plane
func (d *Dimension) flattenFPos(p Positions) {
	n, point := d.Plane(p)
	d.FPos = d.FPos.Add(d.Center).ProjectOnPlane(n, point).Sub(d.Center)
}

func (d *Dimension) co(p Positions, i int) geometry.Vector3 {
	return p.Co(d.Verts[i])
}

func degrees(rad float64) float64 { return rad * 180 / math.Pi }
func radians(deg float64) float64 { return deg * math.Pi / 180 }
