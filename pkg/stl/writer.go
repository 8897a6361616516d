package stl

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/philipparndt/godim/pkg/geometry"
)

// Format selects the STL flavour written by WriteFile
type Format int

const (
	Binary Format = iota
	ASCII
)

// WriteFile writes the model to filename, creating or truncating it
func WriteFile(filename string, model *Model, format Format) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	w := bufio.NewWriter(file)
	if format == ASCII {
		err = WriteASCII(w, model)
	} else {
		err = WriteBinary(w, model)
	}
	if err == nil {
		err = w.Flush()
	}
	if cerr := file.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("failed to close %s: %w", filepath.Base(filename), cerr)
	}
	return err
}

// WriteASCII writes the model as an ASCII STL solid
func WriteASCII(w io.Writer, model *Model) error {
	name := strings.ReplaceAll(model.Name, "\n", " ")
	if _, err := fmt.Fprintf(w, "solid %s\n", name); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, t := range model.Triangles {
		n := facetNormal(t)
		if _, err := fmt.Fprintf(w, "  facet normal %e %e %e\n    outer loop\n", n.X, n.Y, n.Z); err != nil {
			return fmt.Errorf("failed to write triangle %d: %w", i, err)
		}
		for _, v := range t.Vertices() {
			if _, err := fmt.Fprintf(w, "      vertex %e %e %e\n", v.X, v.Y, v.Z); err != nil {
				return fmt.Errorf("failed to write triangle %d: %w", i, err)
			}
		}
		if _, err := io.WriteString(w, "    endloop\n  endfacet\n"); err != nil {
			return fmt.Errorf("failed to write triangle %d: %w", i, err)
		}
	}

	if _, err := fmt.Fprintf(w, "endsolid %s\n", name); err != nil {
		return fmt.Errorf("failed to write trailer: %w", err)
	}
	return nil
}

// WriteBinary writes the model as a binary STL file. Names longer than the
// 80 byte header are truncated. A name starting with "solid" is written
// with a prefix so that readers do not mistake the file for ASCII.
func WriteBinary(w io.Writer, model *Model) error {
	header := make([]byte, headerSize)
	name := model.Name
	if strings.HasPrefix(name, "solid") {
		name = "binary " + name
	}
	copy(header, name)
	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	if err := binary.Write(w, binary.LittleEndian, uint32(len(model.Triangles))); err != nil {
		return fmt.Errorf("failed to write triangle count: %w", err)
	}

	for i, t := range model.Triangles {
		record := facet{
			Normal:  float32s(facetNormal(t)),
			Corners: [3][3]float32{float32s(t.V1), float32s(t.V2), float32s(t.V3)},
		}
		if err := binary.Write(w, binary.LittleEndian, &record); err != nil {
			return fmt.Errorf("failed to write triangle %d: %w", i, err)
		}
	}
	return nil
}

// facetNormal returns the stored normal, or the winding normal when none
// was stored
func facetNormal(t geometry.Triangle) geometry.Vector3 {
	if t.Normal.IsZero() {
		return t.CalculateNormal()
	}
	return t.Normal
}

func float32s(v geometry.Vector3) [3]float32 {
	return [3]float32{float32(v.X), float32(v.Y), float32(v.Z)}
}
