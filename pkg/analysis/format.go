package analysis

import (
	"fmt"
	"strings"

	"github.com/philipparndt/godim/pkg/dimension"
	"github.com/philipparndt/godim/pkg/geometry"
	"github.com/philipparndt/godim/pkg/mesh"
)

// FormatMeasurement formats a measurement with appropriate units
func FormatMeasurement(value float64, unit string) string {
	if unit == "" {
		unit = "units"
	}
	if unit == "°" {
		return fmt.Sprintf("%.6f°", value)
	}
	return fmt.Sprintf("%.6f %s", value, unit)
}

// FormatVector formats a 3D vector
func FormatVector(v geometry.Vector3) string {
	return fmt.Sprintf("(%.6f, %.6f, %.6f)", v.X, v.Y, v.Z)
}

// Unit returns the unit a dimension value is measured in
func Unit(k dimension.Kind) string {
	switch k {
	case dimension.Angle3P, dimension.Angle4P:
		return "°"
	default:
		return ""
	}
}

// FormatDimension formats a dimension with its current value. The center
// of d must be up to date.
func FormatDimension(m *mesh.Mesh, d *dimension.Dimension) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-9s %s", d.Kind, FormatMeasurement(d.Value(m), Unit(d.Kind)))
	if d.Kind != dimension.Linear {
		fmt.Fprintf(&b, "  center %s", FormatVector(d.Center))
	}
	return b.String()
}
