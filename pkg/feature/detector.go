package feature

import (
	"slices"

	"github.com/philipparndt/godim/pkg/geometry"
	"github.com/philipparndt/godim/pkg/mesh"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

// Detector finds circle and arc features. It is not safe for concurrent use
// on the same mesh; the Marks passed in are its only scratch state.
type Detector struct {
	// MaxSegmentAngle is the largest angle (radians) a loop edge may subtend
	MaxSegmentAngle float64
	// Precision is the center tolerance
	Precision float64
	Log       zerolog.Logger
}

// NewDetector returns a detector with the default tolerances
func NewDetector() *Detector {
	return &Detector{
		MaxSegmentAngle: MaxSegmentAngle,
		Precision:       Precision,
		Log:             zerolog.Nop(),
	}
}

// circle is the running state of one loop walk
type circle struct {
	center geometry.Vector3
	a, b   geometry.Vector3 // first two loop points, anchor every center check
	first  mesh.VertexID
}

type step struct {
	edge  mesh.EdgeID
	far   mesh.VertexID
	angle float64
}

// Detect scans every edge of the mesh and returns the features found.
// Marks are used to consume edges and are cleared before returning.
func (d *Detector) Detect(m *mesh.Mesh, marks *mesh.Marks) []*Feature {
	defer marks.Clear()
	return d.detect(m, marks)
}

// Revalidate returns the features whose loop still lies on the cached
// circle. Features referring to vertices or edges that no longer exist are
// dropped as well.
func (d *Detector) Revalidate(m *mesh.Mesh, features []*Feature, marks *mesh.Marks) []*Feature {
	defer marks.Clear()
	return d.revalidate(m, features, marks)
}

// Update revalidates the known features and detects new ones on the edges
// that no surviving feature owns.
func (d *Detector) Update(m *mesh.Mesh, features []*Feature, marks *mesh.Marks) []*Feature {
	defer marks.Clear()

	kept := d.revalidate(m, features, marks)
	for _, f := range kept {
		for _, e := range f.LoopEdges {
			marks.TagEdge(e)
		}
	}
	found := d.detect(m, marks)

	d.Log.Debug().
		Int("kept", len(kept)).
		Int("dropped", len(features)-len(kept)).
		Int("new", len(found)).
		Msg("geometry updated")
	return append(kept, found...)
}

func (d *Detector) detect(m *mesh.Mesh, marks *mesh.Marks) []*Feature {
	var features []*Feature
	for _, e1 := range m.Edges() {
		if marks.EdgeTagged(e1.ID) {
			continue
		}
		for _, id := range d.continuations(m, e1, marks) {
			if f := d.follow(m, e1, m.Edge(id), marks); f != nil {
				features = append(features, f)
				break
			}
		}
	}
	return features
}

// continuations returns the unconsumed edges after e1 that share one of its
// endpoints, in ID order
func (d *Detector) continuations(m *mesh.Mesh, e1 *mesh.Edge, marks *mesh.Marks) []mesh.EdgeID {
	ids := append(slices.Clone(m.EdgesOfVertex(e1.V1)), m.EdgesOfVertex(e1.V2)...)
	ids = lo.Filter(ids, func(id mesh.EdgeID, _ int) bool {
		return id > e1.ID && !marks.EdgeTagged(id)
	})
	slices.Sort(ids)
	return ids
}

// follow tries to grow a feature from the adjacent edges e1 and e2
func (d *Detector) follow(m *mesh.Mesh, e1, e2 *mesh.Edge, marks *mesh.Marks) *Feature {
	shared := e1.Shared(e2)
	v1, v2, v3 := e1.Other(shared), shared, e2.Other(shared)

	center, ok := geometry.CenterOf3Points(m.Co(v1), m.Co(v2), m.Co(v3))
	if !ok || d.subtended(m, center, e1) >= d.MaxSegmentAngle || d.subtended(m, center, e2) >= d.MaxSegmentAngle {
		return nil
	}

	e1, e2, v1, v2, v3 = d.findStart(m, e1, e2, v1, v2, v3, center, marks)

	c := circle{center: center, a: m.Co(v1), b: m.Co(v2), first: v1}
	loop := []mesh.VertexID{v1, v2, v3}
	edges := []mesh.EdgeID{e1.ID, e2.ID}
	visited := map[mesh.VertexID]bool{v1: true, v2: true, v3: true}
	marks.TagEdge(e1.ID)
	marks.TagEdge(e2.ID)

	kind := Arc
	current := v3
	for {
		next, ok := d.next(m, &c, current, visited, marks.EdgeTagged)
		if !ok {
			break
		}
		marks.TagEdge(next.edge)
		edges = append(edges, next.edge)
		if next.far == c.first {
			kind = Circle
			break
		}
		loop = append(loop, next.far)
		visited[next.far] = true
		current = next.far
	}

	f := &Feature{
		Center:    center,
		Axis:      geometry.TriangleNormal(m.Co(loop[0]), m.Co(loop[1]), m.Co(loop[2])),
		Kind:      kind,
		Loop:      loop,
		LoopEdges: edges,
	}
	d.Log.Debug().
		Stringer("kind", kind).
		Int("verts", len(loop)).
		Float64("radius", f.Radius(m)).
		Msg("feature detected")
	return f
}

// findStart walks forward from v3 as far as the chain stays on the circle
// and re-seeds the walk from its far end, so an arc is always collected
// from one of its tips. A dead end stops the walk where it is.
func (d *Detector) findStart(m *mesh.Mesh, e1, e2 *mesh.Edge, v1, v2, v3 mesh.VertexID,
	center geometry.Vector3, marks *mesh.Marks,
) (*mesh.Edge, *mesh.Edge, mesh.VertexID, mesh.VertexID, mesh.VertexID) {
	c := circle{center: center, a: m.Co(v1), b: m.Co(v2), first: v1}
	visited := map[mesh.VertexID]bool{v1: true, v2: true, v3: true}
	prev, curr := e1, e2
	skip := func(id mesh.EdgeID) bool {
		return id == prev.ID || id == curr.ID || marks.EdgeTagged(id)
	}

	for current := v3; ; {
		next, ok := d.next(m, &c, current, visited, skip)
		if !ok || next.far == c.first {
			break
		}
		prev, curr = curr, m.Edge(next.edge)
		visited[next.far] = true
		current = next.far
	}

	shared := prev.Shared(curr)
	return curr, prev, curr.Other(shared), shared, prev.Other(shared)
}

// next picks the edge leaving current that keeps the loop on the circle.
// Among several candidates the one subtending the smallest angle wins, the
// lower edge ID on ties. Reaching c.first only needs the angle check.
func (d *Detector) next(m *mesh.Mesh, c *circle, current mesh.VertexID,
	visited map[mesh.VertexID]bool, skip func(mesh.EdgeID) bool,
) (step, bool) {
	best := step{angle: d.MaxSegmentAngle}
	found := false
	for _, id := range m.EdgesOfVertex(current) {
		if skip(id) {
			continue
		}
		e := m.Edge(id)
		far := e.Other(current)
		if far != c.first && visited[far] {
			continue
		}
		angle := d.subtended(m, c.center, e)
		if angle >= best.angle {
			continue
		}
		if far != c.first && !d.onCircle(c, m.Co(far)) {
			continue
		}
		best = step{edge: id, far: far, angle: angle}
		found = true
	}
	return best, found
}

func (d *Detector) onCircle(c *circle, p geometry.Vector3) bool {
	center, ok := geometry.CenterOf3Points(c.a, c.b, p)
	return ok && center.Distance(c.center) < d.Precision
}

func (d *Detector) subtended(m *mesh.Mesh, center geometry.Vector3, e *mesh.Edge) float64 {
	return geometry.AngleAt(m.Co(e.V1), center, m.Co(e.V2))
}

func (d *Detector) revalidate(m *mesh.Mesh, features []*Feature, marks *mesh.Marks) []*Feature {
	return lo.Filter(features, func(f *Feature, _ int) bool {
		if !d.valid(m, f) {
			d.Log.Debug().Stringer("kind", f.Kind).Int("verts", len(f.Loop)).Msg("feature dropped")
			return false
		}
		for _, v := range f.Loop {
			marks.TagVertex(v)
		}
		return true
	})
}

func (d *Detector) valid(m *mesh.Mesh, f *Feature) bool {
	if len(f.Loop) < 3 {
		return false
	}
	for _, v := range f.Loop {
		if m.Vertex(v) == nil {
			return false
		}
	}
	for _, e := range f.LoopEdges {
		if m.Edge(e) == nil {
			return false
		}
	}

	c := circle{center: f.Center, a: m.Co(f.Loop[0]), b: m.Co(f.Loop[1])}
	for _, v := range f.Loop[2:] {
		if !d.onCircle(&c, m.Co(v)) {
			return false
		}
	}
	return true
}
