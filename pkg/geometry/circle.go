package geometry

import (
	"fmt"
	"math"
)

// CircleFit represents the result of fitting a circle to points
type CircleFit struct {
	Center Vector3 // Circle center in 3D
	Radius float64 // Circle radius
	Normal Vector3 // Normal vector of the plane containing the circle
	StdDev float64 // Standard deviation of fit (quality measure)
}

// CenterOf3Points returns the center of the circle passing through a, b and c.
// It returns false when the points are collinear or coincident.
//
// With u = a-c and w = b-c the circumcenter is
//
//	c + ((|u|²w - |w|²u) × (u × w)) / (2|u × w|²)
func CenterOf3Points(a, b, c Vector3) (Vector3, bool) {
	u := a.Sub(c)
	w := b.Sub(c)
	n := u.Cross(w)

	nn := n.Dot(n)
	if math.Sqrt(nn) <= Epsilon*Epsilon*u.Length()*w.Length() {
		return Vector3{}, false
	}

	num := w.Mul(u.Dot(u)).Sub(u.Mul(w.Dot(w))).Cross(n)
	return c.Add(num.Mul(1.0 / (2.0 * nn))), true
}

// AngleAt returns the angle in radians at vertex b between the rays b->a and b->c
func AngleAt(a, b, c Vector3) float64 {
	return a.Sub(b).AngleTo(c.Sub(b))
}

// TriangleNormal returns the unit normal of the triangle a, b, c
func TriangleNormal(a, b, c Vector3) Vector3 {
	return a.Sub(b).Cross(b.Sub(c)).Normalize()
}

// FitCircle fits a circle to a set of 3D points lying on a common plane.
// Returns the best-fit circle parameters or an error if the fit fails.
//
// The circle is taken through the first, middle, and last points to get good
// coverage of the arc; the remaining points only contribute to StdDev.
func FitCircle(points []Vector3) (*CircleFit, error) {
	if len(points) < 3 {
		return nil, fmt.Errorf("need at least 3 points to fit a circle")
	}

	p1 := points[0]
	p2 := points[len(points)/2]
	p3 := points[len(points)-1]

	center, ok := CenterOf3Points(p1, p2, p3)
	if !ok {
		return nil, fmt.Errorf("points are collinear")
	}
	normal := TriangleNormal(p1, p2, p3)
	radius := p1.Distance(center)

	// Fit quality: distances measured in the circle plane
	n := float64(len(points))
	var sumError float64
	for _, p := range points {
		dist := p.ProjectOnPlane(normal, center).Distance(center)
		sumError += (dist - radius) * (dist - radius)
	}

	return &CircleFit{
		Center: center,
		Radius: radius,
		Normal: normal,
		StdDev: math.Sqrt(sumError / n),
	}, nil
}
