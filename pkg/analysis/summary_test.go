package analysis

import (
	"math"
	"testing"

	"github.com/philipparndt/godim/pkg/dimension"
	"github.com/philipparndt/godim/pkg/feature"
	"github.com/philipparndt/godim/pkg/geometry"
	"github.com/philipparndt/godim/pkg/mesh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plate(t *testing.T) *mesh.Mesh {
	t.Helper()
	m := mesh.New("plate")
	a := m.AddVertex(geometry.NewVector3(0, 0, 0))
	b := m.AddVertex(geometry.NewVector3(4, 0, 0))
	c := m.AddVertex(geometry.NewVector3(4, 3, 0))
	d := m.AddVertex(geometry.NewVector3(0, 3, 0))
	m.AddFace(a, b, c, d)
	return m
}

func TestSummarize(t *testing.T) {
	m := plate(t)

	s := Summarize(m, []*feature.Feature{{Kind: feature.Circle}, {Kind: feature.Arc}, {Kind: feature.Arc}})

	assert.Equal(t, "plate", s.Name)
	assert.Equal(t, 4, s.VertexCount)
	assert.Equal(t, 4, s.EdgeCount)
	assert.Equal(t, 1, s.FaceCount)
	assert.InDelta(t, 12, s.SurfaceArea, 1e-9)
	assert.InDelta(t, 3, s.MinEdgeLength, 1e-9)
	assert.InDelta(t, 4, s.MaxEdgeLength, 1e-9)
	assert.InDelta(t, 3.5, s.AvgEdgeLength, 1e-9)
	assert.Equal(t, geometry.NewVector3(4, 3, 0), s.Dimensions)
	assert.Equal(t, 1, s.Circles)
	assert.Equal(t, 2, s.Arcs)
}

func TestEdgeQueries(t *testing.T) {
	m := plate(t)

	longest := FindLongestEdges(m, 2)
	require.Len(t, longest, 2)
	assert.Equal(t, []mesh.EdgeID{0, 2}, []mesh.EdgeID{longest[0].ID, longest[1].ID})

	shortest := FindShortestEdges(m, 10)
	assert.Len(t, shortest, 4)
	assert.InDelta(t, 3, shortest[0].Length, 1e-9)

	assert.Len(t, FindEdgesByLength(m, 2.5, 3.5), 2)
}

func TestDescribeFeatures(t *testing.T) {
	m := mesh.New("rings")
	for _, r := range []float64{1, 3} {
		var verts []mesh.VertexID
		for i := 0; i < 24; i++ {
			a := 2 * math.Pi * float64(i) / 24
			verts = append(verts, m.AddVertex(geometry.NewVector3(r*math.Cos(a), r*math.Sin(a), 0)))
		}
		for i := range verts {
			m.AddEdge(verts[i], verts[(i+1)%len(verts)])
		}
	}
	features := feature.NewDetector().Detect(m, mesh.NewMarks())
	require.Len(t, features, 2)

	infos := DescribeFeatures(m, features)

	require.Len(t, infos, 2)
	assert.InDelta(t, 3, infos[0].Radius, 1e-9)
	assert.InDelta(t, 6, infos[0].Diameter, 1e-9)
	assert.Equal(t, 1, infos[0].Index)
	assert.InDelta(t, 360, infos[1].Sweep, 1e-9)
	assert.Len(t, infos[1].Verts, 24)
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "1.500000 mm", FormatMeasurement(1.5, "mm"))
	assert.Equal(t, "2.000000 units", FormatMeasurement(2, ""))
	assert.Equal(t, "90.000000°", FormatMeasurement(90, "°"))
	assert.Equal(t, "(1.000000, -2.000000, 0.500000)", FormatVector(geometry.NewVector3(1, -2, 0.5)))

	m := plate(t)
	d, err := dimension.New(dimension.Angle3P, 1, 0, 3)
	require.NoError(t, err)
	d.UpdateCenter(m)
	assert.Equal(t, "angle3p   90.000000°  center (0.000000, 0.000000, 0.000000)", FormatDimension(m, d))

	l, err := dimension.New(dimension.Linear, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, "linear    4.000000 units", FormatDimension(m, l))
}
