// Package loader turns .stl and .scad input files into meshes.
package loader

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/philipparndt/godim/pkg/mesh"
	"github.com/philipparndt/godim/pkg/openscad"
	"github.com/philipparndt/godim/pkg/stl"
	"github.com/rs/zerolog"
)

// Loader loads input models
type Loader struct {
	// WeldTolerance merges STL triangle corners into shared vertices
	WeldTolerance float64
	// Defines are passed on to OpenSCAD
	Defines map[string]string
	Log     zerolog.Logger
}

// New returns a loader welding with the given tolerance
func New(weld float64, log zerolog.Logger) *Loader {
	return &Loader{WeldTolerance: weld, Log: log}
}

func isOpenSCAD(path string) (bool, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".scad":
		return true, nil
	case ".stl":
		return false, nil
	default:
		return false, fmt.Errorf("unsupported file type: %s (expected .stl or .scad)", ext)
	}
}

func (l *Loader) renderer(path string) *openscad.Renderer {
	r := openscad.NewRenderer(filepath.Dir(path))
	r.Defines = l.Defines
	r.Log = l.Log
	return r
}

// Load reads the model at path. OpenSCAD sources are rendered first.
func (l *Loader) Load(ctx context.Context, path string) (*mesh.Mesh, error) {
	scad, err := isOpenSCAD(path)
	if err != nil {
		return nil, err
	}

	var model *stl.Model
	if scad {
		l.Log.Info().Str("file", path).Msg("rendering OpenSCAD file")
		model, err = l.renderer(path).Render(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("failed to render OpenSCAD file: %w", err)
		}
	} else {
		model, err = stl.Parse(path)
		if err != nil {
			return nil, fmt.Errorf("failed to parse STL file: %w", err)
		}
	}

	m := mesh.FromModel(model, l.WeldTolerance)
	l.Log.Debug().
		Int("triangles", len(model.Triangles)).
		Int("vertices", m.VertexCount()).
		Int("edges", m.EdgeCount()).
		Msg("mesh loaded")
	return m, nil
}

// Sources returns the files whose change invalidates the model at path:
// the file itself, plus every used or included file of an OpenSCAD source.
func (l *Loader) Sources(path string) ([]string, error) {
	scad, err := isOpenSCAD(path)
	if err != nil {
		return nil, err
	}
	if !scad {
		return []string{path}, nil
	}
	deps, err := l.renderer(path).ResolveDependencies(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve dependencies: %w", err)
	}
	return deps, nil
}
