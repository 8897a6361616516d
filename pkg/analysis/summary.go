package analysis

import (
	"cmp"
	"math"
	"slices"

	"github.com/philipparndt/godim/pkg/feature"
	"github.com/philipparndt/godim/pkg/geometry"
	"github.com/philipparndt/godim/pkg/mesh"
	"github.com/samber/lo"
)

// EdgeInfo contains information about an edge of the mesh
type EdgeInfo struct {
	ID     mesh.EdgeID
	Start  geometry.Vector3
	End    geometry.Vector3
	Length float64
}

// Summary contains the measurements of a mesh
type Summary struct {
	Name          string
	BoundingBox   geometry.BoundingBox
	Dimensions    geometry.Vector3
	SurfaceArea   float64
	VertexCount   int
	EdgeCount     int
	FaceCount     int
	MinEdgeLength float64
	MaxEdgeLength float64
	AvgEdgeLength float64
	Circles       int
	Arcs          int
}

// Summarize measures the mesh and counts the detected features
func Summarize(m *mesh.Mesh, features []*feature.Feature) *Summary {
	result := &Summary{
		Name:        m.Name,
		BoundingBox: m.BoundingBox(),
		SurfaceArea: m.ToModel().SurfaceArea(),
		VertexCount: m.VertexCount(),
		EdgeCount:   m.EdgeCount(),
		FaceCount:   m.FaceCount(),
	}
	result.Dimensions = result.BoundingBox.Size()

	edges := Edges(m)
	if len(edges) > 0 {
		lengths := lo.Map(edges, func(e EdgeInfo, _ int) float64 { return e.Length })
		result.MinEdgeLength = slices.Min(lengths)
		result.MaxEdgeLength = slices.Max(lengths)
		result.AvgEdgeLength = lo.Sum(lengths) / float64(len(lengths))
	}

	result.Circles = lo.CountBy(features, func(f *feature.Feature) bool { return f.Kind == feature.Circle })
	result.Arcs = lo.CountBy(features, func(f *feature.Feature) bool { return f.Kind == feature.Arc })
	return result
}

// Edges returns every edge of the mesh with its length
func Edges(m *mesh.Mesh) []EdgeInfo {
	return lo.Map(m.Edges(), func(e *mesh.Edge, _ int) EdgeInfo {
		start, end := m.Co(e.V1), m.Co(e.V2)
		return EdgeInfo{ID: e.ID, Start: start, End: end, Length: start.Distance(end)}
	})
}

// FindEdgesByLength finds all edges within a length range
func FindEdgesByLength(m *mesh.Mesh, minLength, maxLength float64) []EdgeInfo {
	return lo.Filter(Edges(m), func(e EdgeInfo, _ int) bool {
		return e.Length >= minLength && e.Length <= maxLength
	})
}

// FindLongestEdges returns the N longest edges in the mesh
func FindLongestEdges(m *mesh.Mesh, count int) []EdgeInfo {
	edges := Edges(m)
	slices.SortStableFunc(edges, func(a, b EdgeInfo) int { return cmp.Compare(b.Length, a.Length) })
	return edges[:min(count, len(edges))]
}

// FindShortestEdges returns the N shortest edges in the mesh
func FindShortestEdges(m *mesh.Mesh, count int) []EdgeInfo {
	edges := Edges(m)
	slices.SortStableFunc(edges, func(a, b EdgeInfo) int { return cmp.Compare(a.Length, b.Length) })
	return edges[:min(count, len(edges))]
}

// FeatureInfo describes a detected feature for output
type FeatureInfo struct {
	Index    int             `yaml:"index"`
	Kind     feature.Kind    `yaml:"kind"`
	Center   [3]float64      `yaml:"center,flow"`
	Axis     [3]float64      `yaml:"axis,flow"`
	Radius   float64         `yaml:"radius"`
	Diameter float64         `yaml:"diameter"`
	Sweep    float64         `yaml:"sweep"`
	StdDev   float64         `yaml:"stddev"`
	Verts    []mesh.VertexID `yaml:"verts,flow"`
}

// DescribeFeatures returns output records for the features, largest first
func DescribeFeatures(m *mesh.Mesh, features []*feature.Feature) []FeatureInfo {
	infos := lo.Map(features, func(f *feature.Feature, i int) FeatureInfo {
		r := f.Radius(m)
		info := FeatureInfo{
			Index:    i,
			Kind:     f.Kind,
			Center:   array(f.Center),
			Axis:     array(f.Axis),
			Radius:   r,
			Diameter: 2 * r,
			Sweep:    f.Sweep(m) * 180 / math.Pi,
			Verts:    f.Loop,
		}
		if fit, err := f.Fit(m); err == nil {
			info.StdDev = fit.StdDev
		}
		return info
	})
	slices.SortStableFunc(infos, func(a, b FeatureInfo) int { return cmp.Compare(b.Radius, a.Radius) })
	return infos
}

func array(v geometry.Vector3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}
