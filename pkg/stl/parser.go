package stl

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/philipparndt/godim/pkg/geometry"
)

const (
	headerSize = 80
	facetSize  = 50
)

// facet is the little endian record of one binary triangle
type facet struct {
	Normal    [3]float32
	Corners   [3][3]float32
	Attribute uint16
}

// ErrEmpty is returned for a file without content
var ErrEmpty = errors.New("empty STL file")

// Parse reads an STL file in either format
func Parse(filename string) (*Model, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", filename, err)
	}
	return Decode(file, info.Size())
}

// Decode reads an STL model from r. size is the total byte size of the
// input, or -1 when unknown. A binary file is recognised by its size
// matching the triangle count in its header, so binary files whose header
// starts with "solid" are read correctly.
func Decode(r io.Reader, size int64) (*Model, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(headerSize + 4)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to read file header: %w", err)
	}
	if len(head) == 0 {
		return nil, ErrEmpty
	}

	if isBinary(head, size) {
		return decodeBinary(br)
	}
	return decodeASCII(br)
}

func isBinary(head []byte, size int64) bool {
	if size >= 0 && len(head) == headerSize+4 {
		count := int64(binary.LittleEndian.Uint32(head[headerSize:]))
		if headerSize+4+count*facetSize == size {
			return true
		}
	}
	return !bytes.HasPrefix(head, []byte("solid"))
}

func decodeASCII(r io.Reader) (*Model, error) {
	scanner := bufio.NewScanner(r)
	model := NewModel("")

	var (
		normal  geometry.Vector3
		corners []geometry.Vector3
		line    int
	)
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "solid":
			model.Name = strings.Join(fields[1:], " ")

		case "facet":
			if len(fields) != 5 || fields[1] != "normal" {
				return nil, fmt.Errorf("line %d: malformed facet", line)
			}
			n, err := parseVector(fields[2:])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			normal, corners = n, corners[:0]

		case "vertex":
			if len(fields) != 4 {
				return nil, fmt.Errorf("line %d: malformed vertex", line)
			}
			v, err := parseVector(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			corners = append(corners, v)

		case "endfacet":
			if len(corners) != 3 {
				return nil, fmt.Errorf("line %d: facet has %d vertices, expected 3", line, len(corners))
			}
			model.AddTriangle(geometry.NewTriangle(normal, corners[0], corners[1], corners[2]))
			corners = corners[:0]
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading ASCII STL: %w", err)
	}
	return model, nil
}

func parseVector(fields []string) (geometry.Vector3, error) {
	var c [3]float64
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return geometry.Vector3{}, fmt.Errorf("invalid number %q", f)
		}
		c[i] = v
	}
	return geometry.NewVector3(c[0], c[1], c[2]), nil
}

func decodeBinary(r io.Reader) (*Model, error) {
	var header [headerSize]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	model := NewModel(strings.TrimSpace(string(bytes.TrimRight(header[:], "\x00"))))

	var count uint32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("failed to read triangle count: %w", err)
	}
	// the count is untrusted until the records are read
	model.Triangles = make([]geometry.Triangle, 0, min(count, 1<<16))

	var f facet
	for i := uint32(0); i < count; i++ {
		if err := binary.Read(r, binary.LittleEndian, &f); err != nil {
			return nil, fmt.Errorf("failed to read triangle %d of %d: %w", i, count, err)
		}
		model.AddTriangle(geometry.NewTriangle(
			fromFloat32(f.Normal),
			fromFloat32(f.Corners[0]),
			fromFloat32(f.Corners[1]),
			fromFloat32(f.Corners[2]),
		))
	}
	return model, nil
}

func fromFloat32(v [3]float32) geometry.Vector3 {
	return geometry.NewVector3(float64(v[0]), float64(v[1]), float64(v[2]))
}
