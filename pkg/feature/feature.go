// Package feature recognizes circles and arcs in the edge topology of a mesh.
//
// Meshes loaded from STL carry no circle primitives, only polygon loops that
// approximate them. The Detector walks chains of edges whose vertices share a
// common circumcenter and records them as features with a cached center and
// axis, so that radius and diameter dimensions can refer to them.
package feature

import (
	"fmt"
	"math"

	"github.com/philipparndt/godim/pkg/geometry"
	"github.com/philipparndt/godim/pkg/mesh"
	"github.com/samber/lo"
)

const (
	// Precision is the distance under which two circle centers are the same
	Precision = 1e-3

	// MaxSegmentAngle bounds the angle an edge of a loop may subtend at the
	// circle center. Tighter chains are rejected as corners.
	MaxSegmentAngle = 3.14 / 10
)

// Kind is the shape of a detected feature
type Kind int

const (
	Circle Kind = iota + 1
	Arc
)

func (k Kind) String() string {
	switch k {
	case Circle:
		return "circle"
	case Arc:
		return "arc"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// MarshalText implements encoding.TextMarshaler
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Feature is a circular or open arc vertex loop with its cached center.
// Consecutive loop vertices are joined by the matching entry of LoopEdges. A
// Circle also has the closing edge from the last vertex back to the first as
// its final loop edge.
type Feature struct {
	Center    geometry.Vector3
	Axis      geometry.Vector3
	Kind      Kind
	Loop      []mesh.VertexID
	LoopEdges []mesh.EdgeID
}

// Radius returns the distance from the center to the first loop vertex
func (f *Feature) Radius(m *mesh.Mesh) float64 {
	return m.Co(f.Loop[0]).Distance(f.Center)
}

// Contains reports whether v is part of the loop
func (f *Feature) Contains(v mesh.VertexID) bool {
	return lo.Contains(f.Loop, v)
}

// Points returns the loop coordinates in loop order
func (f *Feature) Points(m *mesh.Mesh) []geometry.Vector3 {
	return lo.Map(f.Loop, func(v mesh.VertexID, _ int) geometry.Vector3 {
		return m.Co(v)
	})
}

// Fit fits a circle to the current loop coordinates. StdDev of the result
// tells how round the loop still is.
func (f *Feature) Fit(m *mesh.Mesh) (*geometry.CircleFit, error) {
	fit, err := geometry.FitCircle(f.Points(m))
	if err != nil {
		return nil, fmt.Errorf("fit %s: %w", f.Kind, err)
	}
	return fit, nil
}

// Sweep returns the angle covered by the loop in radians
func (f *Feature) Sweep(m *mesh.Mesh) float64 {
	if f.Kind == Circle {
		return 2 * math.Pi
	}
	pts := f.Points(m)
	return lo.Sum(lo.Map(pts[1:], func(p geometry.Vector3, i int) float64 {
		return geometry.AngleAt(pts[i], f.Center, p)
	}))
}

// MidPoint returns the point on an arc halfway along its sweep. For a
// circle it returns the center.
func (f *Feature) MidPoint(m *mesh.Mesh) geometry.Vector3 {
	if f.Kind == Circle {
		return f.Center
	}
	start := m.Co(f.Loop[0]).Sub(f.Center)
	return f.Center.Add(start.Rotate(f.Axis, f.Sweep(m)/2))
}
