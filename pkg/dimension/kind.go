package dimension

import (
	"errors"
	"fmt"
	"strings"

	"github.com/philipparndt/godim/pkg/geometry"
	"github.com/philipparndt/godim/pkg/mesh"
)

// ErrUnknownKind is returned when a dimension kind cannot be parsed
var ErrUnknownKind = errors.New("unknown dimension kind")

// Kind selects what a dimension measures
type Kind int

const (
	Linear Kind = iota + 1
	Diameter
	Radius
	Angle3P
	Angle4P
)

// Positions gives read access to vertex coordinates. *mesh.Mesh implements it.
type Positions interface {
	Co(v mesh.VertexID) geometry.Vector3
}

// variant holds the per kind behaviour
type variant interface {
	value(d *Dimension, p Positions) float64
	center(d *Dimension, p Positions) geometry.Vector3
	plane(d *Dimension, p Positions) geometry.Vector3
	derive(d *Dimension, p Positions)
	moving(d *Dimension, dir Direction) []mesh.VertexID
	solve(s *Solver, d *Dimension, value float64, c Constraint, marks *mesh.Marks)
}

type kindInfo struct {
	name        string
	verts       int
	constraints Constraint
	impl        variant
}

var kinds = map[Kind]kindInfo{
	Linear: {
		name:        "linear",
		verts:       2,
		constraints: PlaneConstraint,
		impl:        linear{},
	},
	Diameter: {
		name:        "diameter",
		verts:       3,
		constraints: AxisConstraint,
		impl:        radial{scale: 2},
	},
	Radius: {
		name:        "radius",
		verts:       3,
		constraints: AxisConstraint,
		impl:        radial{scale: 1},
	},
	Angle3P: {
		name:        "angle3p",
		verts:       3,
		constraints: PlaneConstraint | AllowSlideConstraint,
		impl:        angle{end: 2, forward: []int{2}, backward: []int{0}},
	},
	Angle4P: {
		name:        "angle4p",
		verts:       4,
		constraints: PlaneConstraint | AllowSlideConstraint,
		impl:        angle{end: 3, forward: []int{2, 3}, backward: []int{0, 1}},
	},
}

// Kinds returns all dimension kinds in order
func Kinds() []Kind {
	return []Kind{Linear, Diameter, Radius, Angle3P, Angle4P}
}

func lookup(k Kind) kindInfo {
	info, ok := kinds[k]
	if !ok {
		panic(fmt.Sprintf("dimension: unknown kind %d", int(k)))
	}
	return info
}

func (k Kind) String() string {
	if info, ok := kinds[k]; ok {
		return info.name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// MarshalText implements encoding.TextMarshaler
func (k Kind) MarshalText() ([]byte, error) {
	if _, ok := kinds[k]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParseKind parses a kind name such as "radius" or "angle3p"
func ParseKind(name string) (Kind, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for k, info := range kinds {
		if info.name == key {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// RequiredVerts returns the number of controlling vertices of the kind, 0
// for an unknown kind
func (k Kind) RequiredVerts() int {
	return kinds[k].verts
}

// ValidConstraint reports whether the constraint flag applies to the kind.
// OverrideConstraint and ConcentricConstraint are not tied to any kind.
func (k Kind) ValidConstraint(c Constraint) bool {
	return c != 0 && kinds[k].constraints.Has(c)
}

// Radial reports whether the kind is measured from a circle center
func (k Kind) Radial() bool {
	return k == Diameter || k == Radius
}
