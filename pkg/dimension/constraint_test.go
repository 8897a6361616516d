package dimension

import (
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstraintEffective(t *testing.T) {
	defaults := PlaneConstraint | AxisConstraint

	assert.Equal(t, defaults, Constraint(0).Effective(defaults))
	assert.Equal(t, defaults, AllowSlideConstraint.Effective(defaults))

	own := OverrideConstraint | AllowSlideConstraint
	assert.Equal(t, own, own.Effective(defaults))
}

func TestConstraintString(t *testing.T) {
	assert.Equal(t, "none", Constraint(0).String())
	assert.Equal(t, "plane|axis", (AxisConstraint | PlaneConstraint).String())
	assert.Equal(t, "override|allow_slide|concentric",
		(OverrideConstraint | AllowSlideConstraint | ConcentricConstraint).String())
}

func TestParseConstraints(t *testing.T) {
	c, err := ParseConstraints([]string{"plane", " Slide ", "override"})
	require.NoError(t, err)
	assert.Equal(t, PlaneConstraint|AllowSlideConstraint|OverrideConstraint, c)

	c, err = ParseConstraints(nil)
	require.NoError(t, err)
	assert.Zero(t, c)

	_, err = ParseConstraints([]string{"axis", "tangent"})
	assert.ErrorIs(t, err, ErrUnknownConstraint)
}

func TestKindTable(t *testing.T) {
	tests := []struct {
		kind  Kind
		name  string
		verts int
		valid []Constraint
	}{
		{Linear, "linear", 2, []Constraint{PlaneConstraint}},
		{Diameter, "diameter", 3, []Constraint{AxisConstraint}},
		{Radius, "radius", 3, []Constraint{AxisConstraint}},
		{Angle3P, "angle3p", 3, []Constraint{PlaneConstraint, AllowSlideConstraint}},
		{Angle4P, "angle4p", 4, []Constraint{PlaneConstraint, AllowSlideConstraint}},
	}

	all := []Constraint{PlaneConstraint, AxisConstraint, OverrideConstraint, AllowSlideConstraint, ConcentricConstraint}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.kind.String())
			assert.Equal(t, tt.verts, tt.kind.RequiredVerts())

			parsed, err := ParseKind(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, parsed)

			for _, c := range all {
				assert.Equal(t, lo.Contains(tt.valid, c), tt.kind.ValidConstraint(c), "constraint %s", c)
			}
		})
	}
}

func TestUnknownKind(t *testing.T) {
	assert.Equal(t, 0, Kind(0).RequiredVerts())
	assert.False(t, Kind(9).ValidConstraint(PlaneConstraint))
	assert.Equal(t, "Kind(9)", Kind(9).String())

	_, err := ParseKind("chamfer")
	assert.ErrorIs(t, err, ErrUnknownKind)

	_, err = Kind(9).MarshalText()
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestKindText(t *testing.T) {
	var k Kind
	require.NoError(t, k.UnmarshalText([]byte("Angle4P")))
	assert.Equal(t, Angle4P, k)

	text, err := Radius.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "radius", string(text))
}

func TestParseDirection(t *testing.T) {
	for in, want := range map[string]Direction{
		"":         Both,
		"both":     Both,
		"forward":  Forward,
		"+1":       Forward,
		"Backward": Backward,
		"-1":       Backward,
	} {
		got, err := ParseDirection(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseDirection("sideways")
	assert.Error(t, err)
}
