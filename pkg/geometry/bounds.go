package geometry

import "math"

// BoundingBox is an axis-aligned box. A new box is empty (Min > Max) until
// the first point is added.
type BoundingBox struct {
	Min Vector3
	Max Vector3
}

// NewBoundingBox creates a new, empty bounding box
func NewBoundingBox() BoundingBox {
	inf := math.Inf(1)
	return BoundingBox{
		Min: Vector3{X: inf, Y: inf, Z: inf},
		Max: Vector3{X: -inf, Y: -inf, Z: -inf},
	}
}

// Extend grows the box to include point
func (b *BoundingBox) Extend(point Vector3) {
	b.Min = b.Min.Min(point)
	b.Max = b.Max.Max(point)
}

// IsEmpty reports whether no point was added
func (b BoundingBox) IsEmpty() bool {
	return b.Min.X > b.Max.X
}

// Size is zero for an empty box
func (b BoundingBox) Size() Vector3 {
	if b.IsEmpty() {
		return Vector3{}
	}
	return b.Max.Sub(b.Min)
}

// Center returns the center point of the bounding box, zero when empty
func (b BoundingBox) Center() Vector3 {
	if b.IsEmpty() {
		return Vector3{}
	}
	return b.Min.Lerp(b.Max, 0.5)
}

// Diagonal is the distance between the two extreme corners
func (b BoundingBox) Diagonal() float64 {
	return b.Size().Length()
}

// Contains reports whether p lies inside the box grown by tolerance
func (b BoundingBox) Contains(p Vector3, tolerance float64) bool {
	return p.X >= b.Min.X-tolerance && p.X <= b.Max.X+tolerance &&
		p.Y >= b.Min.Y-tolerance && p.Y <= b.Max.Y+tolerance &&
		p.Z >= b.Min.Z-tolerance && p.Z <= b.Max.Z+tolerance
}
