package dimension

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownConstraint is returned when a constraint name cannot be parsed
var ErrUnknownConstraint = errors.New("unknown constraint")

// Constraint is a set of flags restricting how an edit propagates
type Constraint uint8

const (
	// PlaneConstraint moves the faces coplanar with the moved vertex along
	PlaneConstraint Constraint = 1 << iota
	// AxisConstraint moves every vertex at the same distance from the axis
	AxisConstraint
	// OverrideConstraint makes the dimension use its own flags instead of
	// the tool-wide defaults
	OverrideConstraint
	// AllowSlideConstraint lets rotated vertices slide inside their faces
	AllowSlideConstraint
	// ConcentricConstraint is accepted but has no effect yet
	ConcentricConstraint
)

var constraintNames = []struct {
	flag Constraint
	name string
}{
	{PlaneConstraint, "plane"},
	{AxisConstraint, "axis"},
	{OverrideConstraint, "override"},
	{AllowSlideConstraint, "allow_slide"},
	{ConcentricConstraint, "concentric"},
}

// Has reports whether all flags of f are set
func (c Constraint) Has(f Constraint) bool {
	return c&f == f
}

// Effective returns the flags an edit must honor: the dimension's own set
// when it carries OverrideConstraint, otherwise defaults.
func (c Constraint) Effective(defaults Constraint) Constraint {
	if c.Has(OverrideConstraint) {
		return c
	}
	return defaults
}

// Names returns the names of the flags set, in bit order
func (c Constraint) Names() []string {
	var names []string
	for _, n := range constraintNames {
		if c.Has(n.flag) {
			names = append(names, n.name)
		}
	}
	return names
}

func (c Constraint) String() string {
	if c == 0 {
		return "none"
	}
	return strings.Join(c.Names(), "|")
}

// ParseConstraint parses a single constraint name
func ParseConstraint(name string) (Constraint, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "slide" {
		key = "allow_slide"
	}
	for _, n := range constraintNames {
		if n.name == key {
			return n.flag, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownConstraint, name)
}

// ParseConstraints combines a list of constraint names into one set
func ParseConstraints(names []string) (Constraint, error) {
	var c Constraint
	for _, name := range names {
		f, err := ParseConstraint(name)
		if err != nil {
			return 0, err
		}
		c |= f
	}
	return c, nil
}
