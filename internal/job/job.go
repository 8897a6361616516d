// Package job reads dimension job files. A job lists dimensions by the
// coordinates of their controlling vertices (or by the index of a detected
// feature) together with the value each one should be set to.
package job

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/philipparndt/godim/pkg/dimension"
	"github.com/philipparndt/godim/pkg/feature"
	"github.com/philipparndt/godim/pkg/geometry"
	"github.com/philipparndt/godim/pkg/mesh"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

// DefaultTolerance is the largest distance between a job point and the
// mesh vertex it selects
const DefaultTolerance = 1e-3

var (
	ErrEmpty      = errors.New("job has no dimensions")
	ErrNoVertex   = errors.New("no vertex near point")
	ErrNoFeature  = errors.New("feature index out of range")
	ErrBadBinding = errors.New("dimension needs either points or a feature")
)

// Job is a decoded job file
type Job struct {
	Tolerance  float64 `yaml:"tolerance,omitempty"`
	Dimensions []Entry `yaml:"dimensions"`
}

// Entry describes one dimension
type Entry struct {
	Name string         `yaml:"name,omitempty"`
	Type dimension.Kind `yaml:"type"`

	Points  [][3]float64 `yaml:"points,omitempty"`
	Feature *int         `yaml:"feature,omitempty"`
	Extra   [][3]float64 `yaml:"extra,omitempty"`

	// Value is the target; entries without one are only measured
	Value       *float64    `yaml:"value,omitempty"`
	Dir         string      `yaml:"dir,omitempty"`
	Constraints []string    `yaml:"constraints,omitempty"`
	FPos        *[3]float64 `yaml:"fpos,omitempty"`
	DPosFact    *float64    `yaml:"dpos_fact,omitempty"`
}

// Load reads a job file
func Load(path string) (*Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read job %s: %w", path, err)
	}
	j, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return j, nil
}

// Parse decodes a job document. Unknown keys are rejected.
func Parse(data []byte) (*Job, error) {
	var j Job
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&j); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmpty
		}
		return nil, fmt.Errorf("failed to decode job: %w", err)
	}
	if len(j.Dimensions) == 0 {
		return nil, ErrEmpty
	}
	if j.Tolerance <= 0 {
		j.Tolerance = DefaultTolerance
	}
	for i, e := range j.Dimensions {
		if e.Type == 0 {
			return nil, fmt.Errorf("dimension %s: missing type", e.label(i))
		}
		if (len(e.Points) == 0) == (e.Feature == nil) {
			return nil, fmt.Errorf("dimension %s: %w", e.label(i), ErrBadBinding)
		}
	}
	return &j, nil
}

// Build resolves every entry against the mesh
func (j *Job) Build(m *mesh.Mesh, features []*feature.Feature) ([]*dimension.Dimension, error) {
	dims := make([]*dimension.Dimension, len(j.Dimensions))
	for i := range j.Dimensions {
		d, err := j.Dimensions[i].Build(m, features, j.Tolerance)
		if err != nil {
			return nil, fmt.Errorf("dimension %s: %w", j.Dimensions[i].label(i), err)
		}
		dims[i] = d
	}
	return dims, nil
}

// Build creates the dimension of the entry. Points select the nearest mesh
// vertex within tolerance.
func (e *Entry) Build(m *mesh.Mesh, features []*feature.Feature, tolerance float64) (*dimension.Dimension, error) {
	var (
		d   *dimension.Dimension
		err error
	)
	if e.Feature != nil {
		idx := *e.Feature
		if idx < 0 || idx >= len(features) {
			return nil, fmt.Errorf("%w: %d of %d", ErrNoFeature, idx, len(features))
		}
		d, err = dimension.FromFeature(e.Type, features[idx])
	} else {
		var verts []mesh.VertexID
		if verts, err = resolve(m, e.Points, tolerance); err != nil {
			return nil, err
		}
		d, err = dimension.New(e.Type, verts...)
	}
	if err != nil {
		return nil, err
	}

	if d.Extra, err = resolve(m, e.Extra, tolerance); err != nil {
		return nil, fmt.Errorf("extra: %w", err)
	}
	if d.Dir, err = dimension.ParseDirection(e.Dir); err != nil {
		return nil, err
	}
	if len(e.Constraints) > 0 {
		c, err := dimension.ParseConstraints(e.Constraints)
		if err != nil {
			return nil, err
		}
		for _, f := range []dimension.Constraint{dimension.PlaneConstraint, dimension.AxisConstraint, dimension.AllowSlideConstraint} {
			if c.Has(f) && !e.Type.ValidConstraint(f) {
				return nil, fmt.Errorf("constraint %s does not apply to %s", f, e.Type)
			}
		}
		d.Constraints = c | dimension.OverrideConstraint
	}
	if e.FPos != nil {
		d.FPos = vector(*e.FPos)
	}
	if e.DPosFact != nil {
		d.DPosFact = *e.DPosFact
	}

	if err := d.Validate(m); err != nil {
		return nil, err
	}
	d.Update(m)
	return d, nil
}

func (e *Entry) label(i int) string {
	if e.Name != "" {
		return e.Name
	}
	return fmt.Sprintf("#%d", i)
}

func resolve(m *mesh.Mesh, points [][3]float64, tolerance float64) ([]mesh.VertexID, error) {
	if len(points) == 0 {
		return nil, nil
	}
	bbox := m.BoundingBox()
	verts := make([]mesh.VertexID, 0, len(points))
	for _, p := range lo.Map(points, func(p [3]float64, _ int) geometry.Vector3 { return vector(p) }) {
		if !bbox.Contains(p, tolerance) {
			return nil, fmt.Errorf("%w %v (outside the model)", ErrNoVertex, p)
		}
		v, dist := m.NearestVertex(p)
		if v == mesh.NoVertex || dist > tolerance {
			return nil, fmt.Errorf("%w %v (tolerance %g)", ErrNoVertex, p, tolerance)
		}
		verts = append(verts, v)
	}
	return verts, nil
}

func vector(p [3]float64) geometry.Vector3 {
	return geometry.NewVector3(p[0], p[1], p[2])
}
