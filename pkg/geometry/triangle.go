package geometry

// Triangle is an STL facet. Normal is the stored facet normal and may be
// zero when the source file did not provide one.
type Triangle struct {
	Normal     Vector3
	V1, V2, V3 Vector3
}

// NewTriangle creates a new triangle
func NewTriangle(normal, v1, v2, v3 Vector3) Triangle {
	return Triangle{Normal: normal, V1: v1, V2: v2, V3: v3}
}

// CalculateNormal returns the unit normal of the winding order, zero for a
// degenerate triangle
func (t Triangle) CalculateNormal() Vector3 {
	return TriangleNormal(t.V1, t.V2, t.V3)
}

// Area returns the surface area of the triangle
func (t Triangle) Area() float64 {
	return t.V2.Sub(t.V1).Cross(t.V3.Sub(t.V1)).Length() / 2
}

// Vertices returns the three corners in winding order
func (t Triangle) Vertices() [3]Vector3 {
	return [3]Vector3{t.V1, t.V2, t.V3}
}

// IsDegenerate reports whether the triangle has (almost) no area
func (t Triangle) IsDegenerate() bool {
	return t.Area() < Epsilon*Epsilon
}
