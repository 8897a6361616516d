// Package dimension implements editable mesh dimensions.
//
// A Dimension measures a distance, radius, diameter or angle between a few
// controlling vertices of a mesh. Its value can be read back at any time, and
// a Solver applies a new value by moving the controlling vertices together
// with the vertices the edit affects.
package dimension

import (
	"errors"
	"fmt"
	"strings"

	"github.com/philipparndt/godim/pkg/feature"
	"github.com/philipparndt/godim/pkg/geometry"
	"github.com/philipparndt/godim/pkg/mesh"
	"github.com/samber/lo"
)

const (
	// ConstraintPrecision is the tolerance used to match vertices to a
	// constraint radius
	ConstraintPrecision = 0.01

	// DefaultDPosFact places the label halfway along the dimension line
	DefaultDPosFact = 0.5
)

var (
	// ErrVertexCount is returned when a dimension is created with the wrong
	// number of controlling vertices
	ErrVertexCount = errors.New("wrong number of vertices for dimension")
	// ErrNotRadial is returned when a feature dimension is not a radius or
	// diameter
	ErrNotRadial = errors.New("dimension kind is not radial")
)

// Direction selects which side of a dimension moves on an edit
type Direction int

const (
	Both     Direction = 0
	Forward  Direction = 1
	Backward Direction = -1
)

func (d Direction) String() string {
	switch d {
	case Both:
		return "both"
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// ParseDirection parses "both", "forward" or "backward" (also 0, +1, -1)
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "both", "0":
		return Both, nil
	case "forward", "+1", "1":
		return Forward, nil
	case "backward", "-1":
		return Backward, nil
	}
	return Both, fmt.Errorf("unknown direction %q", s)
}

// Dimension is a measurement bound to controlling vertices.
//
// Center, Start, End and DPos are derived by Update. FPos is the label
// offset relative to Center; DPosFact positions the label text along the
// dimension line.
type Dimension struct {
	Kind  Kind
	Verts []mesh.VertexID
	// Extra vertices describe an auxiliary circle for angle edits on
	// axis-symmetric parts. Unused by the other kinds.
	Extra []mesh.VertexID

	Center geometry.Vector3
	Start  geometry.Vector3
	End    geometry.Vector3
	FPos   geometry.Vector3
	DPos   geometry.Vector3

	DPosFact    float64
	Dir         Direction
	Constraints Constraint
}

// New creates a dimension of the given kind on the controlling vertices
func New(kind Kind, verts ...mesh.VertexID) (*Dimension, error) {
	info, ok := kinds[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, int(kind))
	}
	if len(verts) != info.verts {
		return nil, fmt.Errorf("%w: %s needs %d, got %d", ErrVertexCount, kind, info.verts, len(verts))
	}
	return &Dimension{
		Kind:     kind,
		Verts:    append([]mesh.VertexID(nil), verts...),
		DPosFact: DefaultDPosFact,
		Dir:      Both,
	}, nil
}

// FromFeature creates a radius or diameter dimension on three evenly spaced
// vertices of a detected circle or arc
func FromFeature(kind Kind, f *feature.Feature) (*Dimension, error) {
	if !kind.Radial() {
		return nil, fmt.Errorf("%w: %s", ErrNotRadial, kind)
	}
	n := len(f.Loop)
	if n < 3 {
		return nil, fmt.Errorf("%w: feature has %d vertices", ErrVertexCount, n)
	}
	last := n / 3 * 2
	if f.Kind == feature.Arc {
		last = n - 1
	}
	return New(kind, f.Loop[0], f.Loop[last/2], f.Loop[last])
}

// TotVerts returns the number of controlling and extra vertices
func (d *Dimension) TotVerts() int {
	return len(d.Verts) + len(d.Extra)
}

// Uses reports whether v is a controlling or extra vertex
func (d *Dimension) Uses(v mesh.VertexID) bool {
	return lo.Contains(d.Verts, v) || lo.Contains(d.Extra, v)
}

func (d *Dimension) String() string {
	return fmt.Sprintf("%s%v", d.Kind, d.Verts)
}
