package mesh

import "sort"

// Marks is a per-call traversal context: the set of tagged vertices and
// edges. Callers own it and pass it by reference, so two operations on the
// same mesh never share scratch state. Operations that take a Marks leave it
// empty when they return.
type Marks struct {
	verts map[VertexID]struct{}
	edges map[EdgeID]struct{}
}

// NewMarks returns an empty traversal context
func NewMarks() *Marks {
	return &Marks{
		verts: make(map[VertexID]struct{}),
		edges: make(map[EdgeID]struct{}),
	}
}

// TagVertex marks v
func (mk *Marks) TagVertex(v VertexID) { mk.verts[v] = struct{}{} }

// UntagVertex removes the mark of v
func (mk *Marks) UntagVertex(v VertexID) { delete(mk.verts, v) }

// TagEdge marks e
func (mk *Marks) TagEdge(e EdgeID) { mk.edges[e] = struct{}{} }

// UntagEdge removes the mark of e
func (mk *Marks) UntagEdge(e EdgeID) { delete(mk.edges, e) }

// VertexTagged reports whether v is marked
func (mk *Marks) VertexTagged(v VertexID) bool {
	_, ok := mk.verts[v]
	return ok
}

// EdgeTagged reports whether e is marked
func (mk *Marks) EdgeTagged(e EdgeID) bool {
	_, ok := mk.edges[e]
	return ok
}

// TaggedVertices returns the tagged vertices in ascending ID order
func (mk *Marks) TaggedVertices() []VertexID {
	out := make([]VertexID, 0, len(mk.verts))
	for v := range mk.verts {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// VertexCount returns the number of tagged vertices
func (mk *Marks) VertexCount() int { return len(mk.verts) }

// EdgeCount returns the number of tagged edges
func (mk *Marks) EdgeCount() int { return len(mk.edges) }

// Empty reports whether nothing is tagged
func (mk *Marks) Empty() bool {
	return len(mk.verts) == 0 && len(mk.edges) == 0
}

// Clear untags every vertex and edge
func (mk *Marks) Clear() {
	clear(mk.verts)
	clear(mk.edges)
}
