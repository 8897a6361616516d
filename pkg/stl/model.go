// Package stl reads and writes ASCII and binary STL triangle soups.
package stl

import (
	"github.com/philipparndt/godim/pkg/geometry"
	"github.com/samber/lo"
)

// Model is an STL file: a name and an unconnected list of triangles
type Model struct {
	Name      string
	Triangles []geometry.Triangle
}

// NewModel creates a new STL model
func NewModel(name string) *Model {
	return &Model{Name: name}
}

// AddTriangle adds a triangle to the model
func (m *Model) AddTriangle(triangle geometry.Triangle) {
	m.Triangles = append(m.Triangles, triangle)
}

// TriangleCount returns the number of triangles in the model
func (m *Model) TriangleCount() int {
	return len(m.Triangles)
}

// BoundingBox returns the box around all triangle corners
func (m *Model) BoundingBox() geometry.BoundingBox {
	bbox := geometry.NewBoundingBox()
	for _, t := range m.Triangles {
		for _, v := range t.Vertices() {
			bbox.Extend(v)
		}
	}
	return bbox
}

// SurfaceArea calculates the total surface area of the model
func (m *Model) SurfaceArea() float64 {
	return lo.SumBy(m.Triangles, func(t geometry.Triangle) float64 { return t.Area() })
}

// Degenerate counts the triangles without area
func (m *Model) Degenerate() int {
	return lo.CountBy(m.Triangles, func(t geometry.Triangle) bool { return t.IsDegenerate() })
}
