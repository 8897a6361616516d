package geometry

import "math"

// IntersectLineLine returns the closest points between the line through a1, a2
// and the line through b1, b2. The two points coincide when the lines
// intersect. It returns false for parallel or degenerate lines.
func IntersectLineLine(a1, a2, b1, b2 Vector3) (Vector3, Vector3, bool) {
	d1 := a2.Sub(a1)
	d2 := b2.Sub(b1)
	r := a1.Sub(b1)

	a := d1.Dot(d1)
	e := d2.Dot(d2)
	if a == 0 || e == 0 {
		return Vector3{}, Vector3{}, false
	}
	b := d1.Dot(d2)
	c := d1.Dot(r)
	f := d2.Dot(r)

	denom := a*e - b*b
	if math.Abs(denom) <= Epsilon*Epsilon*a*e {
		return Vector3{}, Vector3{}, false
	}

	s := (b*f - c*e) / denom
	t := (a*f - b*c) / denom
	return a1.Add(d1.Mul(s)), b1.Add(d2.Mul(t)), true
}

// IntersectLinePlane intersects the line through l1, l2 with the plane
// through point with the given normal. It returns false when the line is
// parallel to the plane.
func IntersectLinePlane(l1, l2, point, normal Vector3) (Vector3, bool) {
	dir := l2.Sub(l1)
	denom := dir.Dot(normal)
	if math.Abs(denom) <= Epsilon*dir.Length()*normal.Length() {
		return Vector3{}, false
	}
	t := point.Sub(l1).Dot(normal) / denom
	return l1.Add(dir.Mul(t)), true
}

// PerpendicularToAxis returns the component of p-origin orthogonal to the
// axis through origin, i.e. the vector from the axis to p
func PerpendicularToAxis(origin, p, axis Vector3) Vector3 {
	v := p.Sub(origin)
	return v.Sub(v.Project(axis))
}

// DistanceToAxis returns the distance from p to the axis through origin
func DistanceToAxis(origin, axis, p Vector3) float64 {
	return PerpendicularToAxis(origin, p, axis).Length()
}

// PointOnAxis reports whether p lies on the axis through origin
func PointOnAxis(origin, axis, p Vector3) bool {
	return DistanceToAxis(origin, axis, p) < Epsilon
}

// DistanceToPlane returns the signed distance from p to the plane through point
func DistanceToPlane(point, normal, p Vector3) float64 {
	return p.Sub(point).Dot(normal.Normalize())
}

// PointOnPlane reports whether p lies on the plane through point
func PointOnPlane(point, normal, p Vector3) bool {
	return math.Abs(DistanceToPlane(point, normal, p)) < Epsilon
}
