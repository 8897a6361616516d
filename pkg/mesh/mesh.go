// Package mesh is the polygon mesh topology service: vertices, edges and
// faces with stable integer identities, adjacency lookups, and in-place
// coordinate edits.
package mesh

import (
	"fmt"
	"math"

	"github.com/philipparndt/godim/pkg/geometry"
)

// Typed identities keep vertex, edge and face references apart.
type VertexID int
type EdgeID int
type FaceID int

// NoVertex marks an absent vertex reference
const NoVertex = VertexID(-1)

// Vertex is a mesh point, mutated in place by editing operations
type Vertex struct {
	ID VertexID
	Co geometry.Vector3
}

// Edge joins two vertices. V1 < V2 is not guaranteed; the order is the one
// given at creation.
type Edge struct {
	ID     EdgeID
	V1, V2 VertexID
}

// Other returns the endpoint of e that is not v, or NoVertex if v is not an endpoint
func (e *Edge) Other(v VertexID) VertexID {
	switch v {
	case e.V1:
		return e.V2
	case e.V2:
		return e.V1
	default:
		return NoVertex
	}
}

// Shared returns the vertex shared by e and other, or NoVertex
func (e *Edge) Shared(other *Edge) VertexID {
	switch {
	case e.V1 == other.V1 || e.V1 == other.V2:
		return e.V1
	case e.V2 == other.V1 || e.V2 == other.V2:
		return e.V2
	default:
		return NoVertex
	}
}

// Face is a planar polygon. Normal is derived data, refreshed by UpdateNormals.
type Face struct {
	ID     FaceID
	Verts  []VertexID
	Normal geometry.Vector3
}

// Contains reports whether v is a corner of f
func (f *Face) Contains(v VertexID) bool {
	for _, fv := range f.Verts {
		if fv == v {
			return true
		}
	}
	return false
}

type edgeKey struct {
	a, b VertexID
}

func makeEdgeKey(a, b VertexID) edgeKey {
	if a > b {
		a, b = b, a
	}
	return edgeKey{a: a, b: b}
}

// Mesh stores the topology. Iteration over vertices, edges and faces is
// always in ascending ID order.
type Mesh struct {
	Name string

	verts []*Vertex
	edges []*Edge
	faces []*Face

	edgeIndex map[edgeKey]EdgeID
	vertEdges map[VertexID][]EdgeID
	vertFaces map[VertexID][]FaceID
}

// New creates an empty mesh
func New(name string) *Mesh {
	return &Mesh{
		Name:      name,
		edgeIndex: make(map[edgeKey]EdgeID),
		vertEdges: make(map[VertexID][]EdgeID),
		vertFaces: make(map[VertexID][]FaceID),
	}
}

// AddVertex appends a vertex and returns its ID
func (m *Mesh) AddVertex(co geometry.Vector3) VertexID {
	id := VertexID(len(m.verts))
	m.verts = append(m.verts, &Vertex{ID: id, Co: co})
	return id
}

// AddEdge returns the edge joining a and b, creating it if needed
func (m *Mesh) AddEdge(a, b VertexID) EdgeID {
	m.mustVertex(a)
	m.mustVertex(b)
	if a == b {
		panic(fmt.Sprintf("mesh: edge from vertex %d to itself", a))
	}

	key := makeEdgeKey(a, b)
	if id, ok := m.edgeIndex[key]; ok {
		return id
	}

	id := EdgeID(len(m.edges))
	m.edges = append(m.edges, &Edge{ID: id, V1: a, V2: b})
	m.edgeIndex[key] = id
	m.vertEdges[a] = append(m.vertEdges[a], id)
	m.vertEdges[b] = append(m.vertEdges[b], id)
	return id
}

// AddFace adds a polygon over the given corners, creating its boundary edges
func (m *Mesh) AddFace(verts ...VertexID) FaceID {
	if len(verts) < 3 {
		panic(fmt.Sprintf("mesh: face needs at least 3 vertices, got %d", len(verts)))
	}
	for i := range verts {
		m.AddEdge(verts[i], verts[(i+1)%len(verts)])
	}

	id := FaceID(len(m.faces))
	f := &Face{ID: id, Verts: append([]VertexID(nil), verts...)}
	m.faces = append(m.faces, f)
	for _, v := range verts {
		m.vertFaces[v] = append(m.vertFaces[v], id)
	}
	m.updateFaceNormal(f)
	return id
}

// Vertex returns the vertex with the given ID, or nil
func (m *Mesh) Vertex(id VertexID) *Vertex {
	if id < 0 || int(id) >= len(m.verts) {
		return nil
	}
	return m.verts[id]
}

// Edge returns the edge with the given ID, or nil
func (m *Mesh) Edge(id EdgeID) *Edge {
	if id < 0 || int(id) >= len(m.edges) {
		return nil
	}
	return m.edges[id]
}

// Face returns the face with the given ID, or nil
func (m *Mesh) Face(id FaceID) *Face {
	if id < 0 || int(id) >= len(m.faces) {
		return nil
	}
	return m.faces[id]
}

// FindEdge returns the edge joining a and b
func (m *Mesh) FindEdge(a, b VertexID) (EdgeID, bool) {
	id, ok := m.edgeIndex[makeEdgeKey(a, b)]
	return id, ok
}

// Vertices returns all vertices in ID order
func (m *Mesh) Vertices() []*Vertex { return m.verts }

// Edges returns all edges in ID order
func (m *Mesh) Edges() []*Edge { return m.edges }

// Faces returns all faces in ID order
func (m *Mesh) Faces() []*Face { return m.faces }

// VertexCount returns the number of vertices
func (m *Mesh) VertexCount() int { return len(m.verts) }

// EdgeCount returns the number of edges
func (m *Mesh) EdgeCount() int { return len(m.edges) }

// FaceCount returns the number of faces
func (m *Mesh) FaceCount() int { return len(m.faces) }

// EdgesOfVertex returns the edges incident to v in ID order
func (m *Mesh) EdgesOfVertex(v VertexID) []EdgeID {
	return m.vertEdges[v]
}

// FacesOfVertex returns the faces using v as a corner in ID order
func (m *Mesh) FacesOfVertex(v VertexID) []FaceID {
	return m.vertFaces[v]
}

// Co returns the coordinates of a vertex
func (m *Mesh) Co(v VertexID) geometry.Vector3 {
	return m.mustVertex(v).Co
}

// SetCo moves a vertex. Face normals are stale until UpdateNormals is called.
func (m *Mesh) SetCo(v VertexID, co geometry.Vector3) {
	m.mustVertex(v).Co = co
}

// UpdateNormals recomputes every face normal from the current coordinates
func (m *Mesh) UpdateNormals() {
	for _, f := range m.faces {
		m.updateFaceNormal(f)
	}
}

// updateFaceNormal uses Newell's method so that non-triangular polygons get
// a stable normal
func (m *Mesh) updateFaceNormal(f *Face) {
	var n geometry.Vector3
	for i := range f.Verts {
		cur := m.verts[f.Verts[i]].Co
		next := m.verts[f.Verts[(i+1)%len(f.Verts)]].Co
		n.X += (cur.Y - next.Y) * (cur.Z + next.Z)
		n.Y += (cur.Z - next.Z) * (cur.X + next.X)
		n.Z += (cur.X - next.X) * (cur.Y + next.Y)
	}
	f.Normal = n.Normalize()
}

// BoundingBox calculates the bounding box of all vertices
func (m *Mesh) BoundingBox() geometry.BoundingBox {
	bbox := geometry.NewBoundingBox()
	for _, v := range m.verts {
		bbox.Extend(v.Co)
	}
	return bbox
}

// NearestVertex finds the vertex nearest to a given point
func (m *Mesh) NearestVertex(p geometry.Vector3) (VertexID, float64) {
	nearest := NoVertex
	minDistance := math.MaxFloat64
	for _, v := range m.verts {
		if d := p.Distance(v.Co); d < minDistance {
			minDistance = d
			nearest = v.ID
		}
	}
	return nearest, minDistance
}

func (m *Mesh) mustVertex(id VertexID) *Vertex {
	v := m.Vertex(id)
	if v == nil {
		panic(fmt.Sprintf("mesh: no vertex %d", id))
	}
	return v
}
