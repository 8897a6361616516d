package dimension

import (
	"math"
	"testing"

	"github.com/philipparndt/godim/pkg/feature"
	"github.com/philipparndt/godim/pkg/geometry"
	"github.com/philipparndt/godim/pkg/mesh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ring(m *mesh.Mesh, n int, r float64, center geometry.Vector3) []mesh.VertexID {
	verts := make([]mesh.VertexID, n)
	for i := 0; i < n; i++ {
		a := 2 * math.Pi * float64(i) / float64(n)
		verts[i] = m.AddVertex(center.Add(vec(r*math.Cos(a), r*math.Sin(a), 0)))
	}
	for i := 0; i < n; i++ {
		m.AddEdge(verts[i], verts[(i+1)%n])
	}
	return verts
}

func cube(t *testing.T) *mesh.Mesh {
	t.Helper()
	m := mesh.New("cube")
	for _, p := range []geometry.Vector3{
		vec(0, 0, 0), vec(1, 0, 0), vec(1, 1, 0), vec(0, 1, 0),
		vec(0, 0, 1), vec(1, 0, 1), vec(1, 1, 1), vec(0, 1, 1),
	} {
		m.AddVertex(p)
	}
	m.AddFace(0, 3, 2, 1)
	m.AddFace(4, 5, 6, 7)
	m.AddFace(0, 1, 5, 4)
	m.AddFace(2, 3, 7, 6)
	m.AddFace(0, 4, 7, 3)
	m.AddFace(1, 2, 6, 5)
	return m
}

func TestApplyLinearForward(t *testing.T) {
	m := mesh.New("edge")
	a := m.AddVertex(vec(0, 0, 0))
	b := m.AddVertex(vec(2, 0, 0))
	m.AddEdge(a, b)

	d := mustNew(t, Linear, a, b)
	d.Dir = Forward
	marks := mesh.NewMarks()

	NewSolver(m, nil).Apply(d, 5, marks)

	assertVec(t, vec(0, 0, 0), m.Co(a))
	assertVec(t, vec(5, 0, 0), m.Co(b))
	assert.InDelta(t, 5, d.Value(m), 1e-9)
	assert.True(t, marks.Empty())
}

func TestApplyLinearBackward(t *testing.T) {
	m := mesh.New("edge")
	a := m.AddVertex(vec(0, 0, 0))
	b := m.AddVertex(vec(2, 0, 0))

	d := mustNew(t, Linear, a, b)
	d.Dir = Backward
	NewSolver(m, nil).Apply(d, 5, mesh.NewMarks())

	assertVec(t, vec(-3, 0, 0), m.Co(a))
	assertVec(t, vec(2, 0, 0), m.Co(b))
}

func TestApplyLinearBothKeepsMidPoint(t *testing.T) {
	m := mesh.New("edge")
	a := m.AddVertex(vec(0, 0, 0))
	b := m.AddVertex(vec(2, 0, 0))

	d := mustNew(t, Linear, a, b)
	mid := d.Mid(m)
	marks := mesh.NewMarks()
	NewSolver(m, nil).Apply(d, 4, marks)

	assertVec(t, vec(-1, 0, 0), m.Co(a))
	assertVec(t, vec(3, 0, 0), m.Co(b))
	assertVec(t, mid, d.Mid(m))
	assert.Equal(t, Both, d.Dir)
	assert.True(t, marks.Empty())
}

func TestApplyLinearPlaneConstraint(t *testing.T) {
	m := cube(t)
	d := mustNew(t, Linear, 0, 1)
	d.Dir = Forward

	s := NewSolver(m, nil)
	s.Defaults = PlaneConstraint
	marks := mesh.NewMarks()
	s.Apply(d, 3, marks)

	for _, v := range []mesh.VertexID{1, 2, 5, 6} {
		assert.InDelta(t, 3, m.Co(v).X, 1e-9, "vertex %d", v)
	}
	for _, v := range []mesh.VertexID{0, 3, 4, 7} {
		assert.InDelta(t, 0, m.Co(v).X, 1e-9, "vertex %d", v)
	}
	assert.InDelta(t, 1, math.Abs(m.Face(5).Normal.X), 1e-9)
	assert.InDelta(t, 3, d.Value(m), 1e-9)
	assert.True(t, marks.Empty())
}

func TestApplyLinearOverrideIgnoresDefaults(t *testing.T) {
	m := cube(t)
	d := mustNew(t, Linear, 0, 1)
	d.Dir = Forward
	d.Constraints = OverrideConstraint

	s := NewSolver(m, nil)
	s.Defaults = PlaneConstraint
	s.Apply(d, 3, mesh.NewMarks())

	assertVec(t, vec(3, 0, 0), m.Co(1))
	assertVec(t, vec(1, 1, 0), m.Co(2))
}

func TestApplyLinearMovesFeature(t *testing.T) {
	m := mesh.New("boss")
	a := m.AddVertex(vec(0, 0, 0))
	loop := ring(m, 24, 1, vec(10, 0, 0))
	features := feature.NewDetector().Detect(m, mesh.NewMarks())
	require.Len(t, features, 1)

	d := mustNew(t, Linear, a, loop[0])
	d.Dir = Forward
	NewSolver(m, features).Apply(d, 12, mesh.NewMarks())

	assertVec(t, vec(12, 0, 0), m.Co(loop[0]))
	assertVec(t, vec(11, 1, 0), m.Co(loop[6]))
	assertVec(t, vec(10, 0, 0), m.Co(loop[12]))
}

func TestApplyRadiusSquare(t *testing.T) {
	build := func() (*mesh.Mesh, []mesh.VertexID) {
		m := mesh.New("square")
		return m, ring(m, 4, 1, vec(0, 0, 0))
	}

	t.Run("axis constraint", func(t *testing.T) {
		m, verts := build()
		d := mustNew(t, Radius, verts[0], verts[1], verts[2])
		d.UpdateCenter(m)
		require.InDelta(t, 1, d.Value(m), 1e-9)

		s := NewSolver(m, nil)
		s.Defaults = AxisConstraint
		marks := mesh.NewMarks()
		s.Apply(d, 2, marks)

		for _, v := range verts {
			assert.InDelta(t, 2, m.Co(v).Length(), 1e-9, "vertex %d", v)
		}
		assert.InDelta(t, 2, d.Value(m), 1e-9)
		assert.True(t, marks.Empty())
	})

	t.Run("detected feature", func(t *testing.T) {
		m, verts := build()
		det := feature.NewDetector()
		det.MaxSegmentAngle = 1.7
		features := det.Detect(m, mesh.NewMarks())
		require.Len(t, features, 1)
		require.Len(t, features[0].Loop, 4)

		d := mustNew(t, Radius, verts[0], verts[1], verts[2])
		NewSolver(m, features).Apply(d, 2, mesh.NewMarks())

		for _, v := range verts {
			assert.InDelta(t, 2, m.Co(v).Length(), 1e-9, "vertex %d", v)
		}
	})

	t.Run("no constraint", func(t *testing.T) {
		m, verts := build()
		d := mustNew(t, Radius, verts[0], verts[1], verts[2])
		NewSolver(m, nil).Apply(d, 2, mesh.NewMarks())

		assert.InDelta(t, 2, m.Co(verts[2]).Length(), 1e-9)
		assert.InDelta(t, 1, m.Co(verts[3]).Length(), 1e-9)
	})
}

func TestApplyDiameterCylinder(t *testing.T) {
	m := mesh.New("cylinder")
	bottom := ring(m, 24, 5, vec(0, 0, 0))
	top := ring(m, 24, 5, vec(0, 0, 2))
	inner := m.AddVertex(vec(3, 0, 0))

	d := mustNew(t, Diameter, bottom[0], bottom[8], bottom[16])
	d.UpdateCenter(m)
	require.InDelta(t, 10, d.Value(m), 1e-9)

	s := NewSolver(m, nil)
	s.Defaults = AxisConstraint
	marks := mesh.NewMarks()
	s.Apply(d, 16, marks)

	for _, v := range append(bottom, top...) {
		co := m.Co(v)
		assert.InDelta(t, 8, math.Hypot(co.X, co.Y), 1e-9, "vertex %d", v)
	}
	assert.InDelta(t, 2, m.Co(top[3]).Z, 1e-9)
	assertVec(t, vec(3, 0, 0), m.Co(inner))
	assert.InDelta(t, 16, d.Value(m), 1e-9)
	assert.True(t, marks.Empty())
}

func TestApplyDiameterOppositeVertices(t *testing.T) {
	m := mesh.New("ring")
	verts := ring(m, 24, 5, vec(0, 0, 0))

	d := mustNew(t, Diameter, verts[0], verts[12], verts[6])
	s := NewSolver(m, nil)
	s.Defaults = AxisConstraint
	s.Apply(d, 6, mesh.NewMarks())

	for _, v := range verts {
		assert.InDelta(t, 3, m.Co(v).Length(), 1e-9, "vertex %d", v)
	}
}

func rightAngle() (*mesh.Mesh, *Dimension) {
	m := mesh.New("corner")
	m.AddVertex(vec(1, 0, 0))
	m.AddVertex(vec(0, 0, 0))
	m.AddVertex(vec(0, 1, 0))
	d, _ := New(Angle3P, 0, 1, 2)
	return m, d
}

func TestApplyAngle3PForward(t *testing.T) {
	m, d := rightAngle()
	d.Dir = Forward
	marks := mesh.NewMarks()

	NewSolver(m, nil).Apply(d, 120, marks)

	assertVec(t, vec(1, 0, 0), m.Co(0))
	assertVec(t, vec(-0.5, math.Sqrt(3)/2, 0), m.Co(2))
	assert.InDelta(t, 120, d.Value(m), 1e-9)
	assert.True(t, marks.Empty())
}

func TestApplyAngle3PBackward(t *testing.T) {
	m, d := rightAngle()
	d.Dir = Backward

	NewSolver(m, nil).Apply(d, 60, mesh.NewMarks())

	a := math.Pi / 6
	assertVec(t, vec(math.Cos(a), math.Sin(a), 0), m.Co(0))
	assertVec(t, vec(0, 1, 0), m.Co(2))
	assert.InDelta(t, 60, d.Value(m), 1e-9)
}

func TestApplyAngle3PBothKeepsBisector(t *testing.T) {
	m, d := rightAngle()

	NewSolver(m, nil).Apply(d, 120, mesh.NewMarks())

	a := 105 * math.Pi / 180
	assertVec(t, vec(math.Cos(a), math.Sin(a), 0), m.Co(2))
	b := -15 * math.Pi / 180
	assertVec(t, vec(math.Cos(b), math.Sin(b), 0), m.Co(0))
	assertVec(t, vec(0, 0, 0), d.Center)
	assert.InDelta(t, 120, d.Value(m), 1e-9)

	bisector := m.Co(0).Add(m.Co(2)).Normalize()
	assertVec(t, vec(math.Sqrt2/2, math.Sqrt2/2, 0), bisector)
}

func TestApplyAngle4P(t *testing.T) {
	m := mesh.New("lines")
	m.AddVertex(vec(2, 0, 0))
	m.AddVertex(vec(1, 0, 0))
	m.AddVertex(vec(0, 1, 0))
	m.AddVertex(vec(0, 2, 0))
	d := mustNew(t, Angle4P, 0, 1, 2, 3)
	d.Dir = Forward

	NewSolver(m, nil).Apply(d, 60, mesh.NewMarks())

	a := math.Pi / 3
	assertVec(t, vec(math.Cos(a), math.Sin(a), 0), m.Co(2))
	assertVec(t, vec(2*math.Cos(a), 2*math.Sin(a), 0), m.Co(3))
	assertVec(t, vec(2, 0, 0), m.Co(0))
	assert.InDelta(t, 60, d.Value(m), 1e-9)
}

func TestApplyAngle4PBothKeepsCenter(t *testing.T) {
	m := mesh.New("lines")
	m.AddVertex(vec(2, 0, 0))
	m.AddVertex(vec(1, 0, 0))
	m.AddVertex(vec(0, 1, 0))
	m.AddVertex(vec(0, 2, 0))
	d := mustNew(t, Angle4P, 0, 1, 2, 3)
	marks := mesh.NewMarks()

	NewSolver(m, nil).Apply(d, 60, marks)

	// each arm turns by half of the 30 degree change
	a := 15 * math.Pi / 180
	assertVec(t, vec(2*math.Cos(a), 2*math.Sin(a), 0), m.Co(0))
	assertVec(t, vec(math.Cos(a), math.Sin(a), 0), m.Co(1))
	b := 75 * math.Pi / 180
	assertVec(t, vec(math.Cos(b), math.Sin(b), 0), m.Co(2))
	assertVec(t, vec(2*math.Cos(b), 2*math.Sin(b), 0), m.Co(3))

	assertVec(t, vec(0, 0, 0), d.Center)
	assert.InDelta(t, 60, d.Value(m), 1e-9)
	assert.True(t, marks.Empty())
}

func TestApplyAnglePlaneConstraint(t *testing.T) {
	m, d := rightAngle()
	top := m.AddVertex(vec(0, 1, 1))
	axis := m.AddVertex(vec(0, 0, 1))
	m.AddFace(1, 2, top, axis)
	d.Dir = Forward

	s := NewSolver(m, nil)
	s.Defaults = PlaneConstraint
	marks := mesh.NewMarks()
	s.Apply(d, 120, marks)

	assertVec(t, vec(-0.5, math.Sqrt(3)/2, 1), m.Co(top))
	assertVec(t, vec(0, 0, 1), m.Co(axis))
	assert.True(t, marks.Empty())
}

func TestApplyAngleAllowSlide(t *testing.T) {
	build := func() (*mesh.Mesh, *Dimension) {
		m := mesh.New("wall")
		m.AddVertex(vec(1, 0, 0))
		m.AddVertex(vec(0, 0, 0))
		m.AddVertex(vec(1, 1, 0))
		m.AddVertex(vec(3, 1, 0))
		m.AddVertex(vec(3, 1, 1))
		m.AddVertex(vec(1, 1, 1))
		m.AddFace(2, 3, 4, 5)
		d, _ := New(Angle3P, 0, 1, 2)
		d.Dir = Forward
		return m, d
	}

	m, d := build()
	s := NewSolver(m, nil)
	s.Defaults = AllowSlideConstraint
	s.Apply(d, 30, mesh.NewMarks())

	assertVec(t, vec(math.Sqrt(3), 1, 0), m.Co(2), "vertex stays in its face")
	assert.InDelta(t, 30, d.Value(m), 1e-9)

	m, d = build()
	NewSolver(m, nil).Apply(d, 30, mesh.NewMarks())

	a := math.Pi / 6
	assertVec(t, vec(math.Sqrt2*math.Cos(a), math.Sqrt2*math.Sin(a), 0), m.Co(2), "vertex leaves its face")
}

func TestApplyAngleAxisSymmetric(t *testing.T) {
	m := mesh.New("elbow")
	m.AddVertex(vec(1, 0, 0))
	m.AddVertex(vec(2, 0, 1))
	m.AddVertex(vec(2, 1, 1))
	e0 := m.AddVertex(vec(0, 1, 0))
	e1 := m.AddVertex(vec(-1, 0, 0))

	d := mustNew(t, Angle3P, 0, 1, 2)
	d.Extra = []mesh.VertexID{e0, e1}
	d.Dir = Forward
	d.Constraints = OverrideConstraint | AxisConstraint
	d.UpdateCenter(m)
	require.InDelta(t, 90, d.Value(m), 1e-9)

	marks := mesh.NewMarks()
	NewSolver(m, nil).Apply(d, 100, marks)

	assert.InDelta(t, 100, d.Value(m), 1e-9)
	assert.True(t, marks.Empty())

	// Each vertex of the auxiliary circle turns around its own center at
	// distance 2 from the circle axis
	tests := []struct {
		v      mesh.VertexID
		old    geometry.Vector3
		center geometry.Vector3
		axis   geometry.Vector3
	}{
		{e0, vec(0, 1, 0), vec(0, 2, 1), vec(1, 0, 0)},
		{e1, vec(-1, 0, 0), vec(-2, 0, 1), vec(0, 1, 0)},
	}
	for _, tt := range tests {
		co := m.Co(tt.v)
		before := tt.old.Sub(tt.center)
		after := co.Sub(tt.center)
		assert.InDelta(t, before.Length(), after.Length(), 1e-9, "vertex %d keeps its radius", tt.v)
		assert.InDelta(t, 0, after.Dot(tt.axis), 1e-9, "vertex %d stays in its plane", tt.v)
		assert.InDelta(t, 10*math.Pi/180, before.AngleTo(after), 1e-9, "vertex %d turns by the edit", tt.v)
	}
}
