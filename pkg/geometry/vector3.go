package geometry

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Epsilon is the tolerance used by the parallel, perpendicular and
// on-axis/on-plane predicates
const Epsilon = 1e-5

// Vector3 represents a 3D point or vector
type Vector3 struct {
	X, Y, Z float64
}

// NewVector3 creates a new 3D vector
func NewVector3(x, y, z float64) Vector3 {
	return Vector3{X: x, Y: y, Z: z}
}

// Add returns the sum of two vectors
func (v Vector3) Add(other Vector3) Vector3 {
	return Vector3{
		X: v.X + other.X,
		Y: v.Y + other.Y,
		Z: v.Z + other.Z,
	}
}

// Sub returns the difference between two vectors
func (v Vector3) Sub(other Vector3) Vector3 {
	return Vector3{
		X: v.X - other.X,
		Y: v.Y - other.Y,
		Z: v.Z - other.Z,
	}
}

// Mul multiplies the vector by a scalar
func (v Vector3) Mul(scalar float64) Vector3 {
	return Vector3{
		X: v.X * scalar,
		Y: v.Y * scalar,
		Z: v.Z * scalar,
	}
}

// Negate returns the opposite vector
func (v Vector3) Negate() Vector3 {
	return Vector3{X: -v.X, Y: -v.Y, Z: -v.Z}
}

// Dot returns the dot product of two vectors
func (v Vector3) Dot(other Vector3) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the cross product of two vectors
func (v Vector3) Cross(other Vector3) Vector3 {
	return Vector3{
		X: v.Y*other.Z - v.Z*other.Y,
		Y: v.Z*other.X - v.X*other.Z,
		Z: v.X*other.Y - v.Y*other.X,
	}
}

// Length returns the magnitude of the vector
func (v Vector3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Distance returns the distance between two points
func (v Vector3) Distance(other Vector3) float64 {
	return v.Sub(other).Length()
}

// Normalize returns a unit vector in the same direction
func (v Vector3) Normalize() Vector3 {
	length := v.Length()
	if length == 0 {
		return Vector3{}
	}
	return v.Mul(1.0 / length)
}

// IsZero reports whether all components are zero
func (v Vector3) IsZero() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

// Lerp interpolates linearly from v towards other by t
func (v Vector3) Lerp(other Vector3, t float64) Vector3 {
	return v.Add(other.Sub(v).Mul(t))
}

// Project returns the projection of v onto the direction of onto
func (v Vector3) Project(onto Vector3) Vector3 {
	d := onto.Dot(onto)
	if d == 0 {
		return Vector3{}
	}
	return onto.Mul(v.Dot(onto) / d)
}

// ProjectOnPlane projects the point v onto the plane through point with the given normal
func (v Vector3) ProjectOnPlane(normal, point Vector3) Vector3 {
	return v.Sub(v.Sub(point).Project(normal))
}

// AngleTo returns the angle in radians between two vectors
func (v Vector3) AngleTo(other Vector3) float64 {
	a := v.Normalize()
	b := other.Normalize()
	if a.IsZero() || b.IsZero() {
		return 0
	}
	return math.Acos(clamp(a.Dot(b), -1, 1))
}

// Rotate rotates v around axis by angle radians (right handed)
func (v Vector3) Rotate(axis Vector3, angle float64) Vector3 {
	if axis.IsZero() || angle == 0 {
		return v
	}
	rot := r3.NewRotation(angle, axis.r3())
	return fromR3(rot.Rotate(v.r3()))
}

// ParallelTo reports whether two vectors point along the same line (either sense)
func (v Vector3) ParallelTo(other Vector3) bool {
	a := v.Normalize()
	b := other.Normalize()
	if a.IsZero() || b.IsZero() {
		return false
	}
	return math.Abs(a.Dot(b)) > 1-Epsilon
}

// PerpendicularTo reports whether two vectors are orthogonal
func (v Vector3) PerpendicularTo(other Vector3) bool {
	a := v.Normalize()
	b := other.Normalize()
	if a.IsZero() || b.IsZero() {
		return false
	}
	return math.Abs(a.Dot(b)) < Epsilon
}

// Min returns a vector with the minimum components of two vectors
func (v Vector3) Min(other Vector3) Vector3 {
	return Vector3{
		X: math.Min(v.X, other.X),
		Y: math.Min(v.Y, other.Y),
		Z: math.Min(v.Z, other.Z),
	}
}

// Max returns a vector with the maximum components of two vectors
func (v Vector3) Max(other Vector3) Vector3 {
	return Vector3{
		X: math.Max(v.X, other.X),
		Y: math.Max(v.Y, other.Y),
		Z: math.Max(v.Z, other.Z),
	}
}

func (v Vector3) r3() r3.Vec {
	return r3.Vec{X: v.X, Y: v.Y, Z: v.Z}
}

func fromR3(v r3.Vec) Vector3 {
	return Vector3{X: v.X, Y: v.Y, Z: v.Z}
}

func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}
