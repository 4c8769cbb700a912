package formats

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/Faultbox/tessera/pkg/math"
	"github.com/Faultbox/tessera/pkg/shapes"
)

// OBJ format errors.
var (
	ErrInvalidOBJFace  = errors.New("invalid OBJ face")
	ErrOBJIndexRange   = errors.New("OBJ index out of range")
	ErrInvalidOBJValue = errors.New("invalid OBJ numeric value")
)

// OBJ is a parsed Wavefront OBJ file. Face indices are resolved to zero-based
// positions into the attribute lists.
type OBJ struct {
	Positions []math.Vec3
	Normals   []math.Vec3
	TexCoords []math.Vec2
	Faces     []shapes.Face
}

// HasNormals reports whether every face declares normal indices.
func (o *OBJ) HasNormals() bool {
	if len(o.Faces) == 0 {
		return false
	}
	for _, f := range o.Faces {
		if !f.HasNormals() {
			return false
		}
	}
	return true
}

// LoadOBJ reads and parses an OBJ file from disk.
func LoadOBJ(path string) (*OBJ, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading OBJ: %w", err)
	}
	obj, err := ParseOBJ(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return obj, nil
}

// ParseOBJ parses v, vt, vn and f statements. Other statements (groups,
// materials, smoothing) are ignored.
func ParseOBJ(r io.Reader) (*OBJ, error) {
	obj := &OBJ{}
	scanner := bufio.NewScanner(r)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		fields := strings.Fields(line)

		var err error
		switch fields[0] {
		case "v":
			var v math.Vec3
			v, err = parseVec3(fields[1:])
			obj.Positions = append(obj.Positions, v)
		case "vn":
			var v math.Vec3
			v, err = parseVec3(fields[1:])
			obj.Normals = append(obj.Normals, v)
		case "vt":
			var v math.Vec2
			v, err = parseVec2(fields[1:])
			obj.TexCoords = append(obj.TexCoords, v)
		case "f":
			var f shapes.Face
			f, err = obj.parseFace(fields[1:])
			obj.Faces = append(obj.Faces, f)
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading OBJ: %w", err)
	}
	return obj, nil
}

func parseFloats(fields []string, want int) ([]float32, error) {
	if len(fields) < want {
		return nil, fmt.Errorf("%w: expected %d values, got %d", ErrInvalidOBJValue, want, len(fields))
	}
	out := make([]float32, want)
	for i := range out {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidOBJValue, fields[i])
		}
		out[i] = float32(f)
	}
	return out, nil
}

func parseVec3(fields []string) (math.Vec3, error) {
	f, err := parseFloats(fields, 3)
	if err != nil {
		return math.Vec3{}, err
	}
	return math.Vec3{X: f[0], Y: f[1], Z: f[2]}, nil
}

func parseVec2(fields []string) (math.Vec2, error) {
	f, err := parseFloats(fields, 2)
	if err != nil {
		return math.Vec2{}, err
	}
	return math.Vec2{X: f[0], Y: f[1]}, nil
}

// parseFace reads corners of the form v, v/t, v//n or v/t/n.
func (o *OBJ) parseFace(corners []string) (shapes.Face, error) {
	var f shapes.Face
	if len(corners) < 3 {
		return f, fmt.Errorf("%w: %d corners", ErrInvalidOBJFace, len(corners))
	}

	for i, c := range corners {
		parts := strings.Split(c, "/")
		if len(parts) > 3 {
			return f, fmt.Errorf("%w: corner %q", ErrInvalidOBJFace, c)
		}

		v, err := resolveIndex(parts[0], len(o.Positions))
		if err != nil {
			return f, err
		}
		f.Position = append(f.Position, v)

		if len(parts) > 1 && parts[1] != "" {
			t, err := resolveIndex(parts[1], len(o.TexCoords))
			if err != nil {
				return f, err
			}
			f.UV = append(f.UV, t)
		}
		if len(parts) > 2 && parts[2] != "" {
			n, err := resolveIndex(parts[2], len(o.Normals))
			if err != nil {
				return f, err
			}
			f.Normal = append(f.Normal, n)
		}

		// Attributes must be declared on every corner or none.
		if (len(f.UV) != 0 && len(f.UV) != i+1) || (len(f.Normal) != 0 && len(f.Normal) != i+1) {
			return f, fmt.Errorf("%w: mixed corner formats", ErrInvalidOBJFace)
		}
	}
	return f, nil
}

// resolveIndex converts a 1-based or negative relative OBJ index into a
// zero-based index into a list of length n.
func resolveIndex(s string, n int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: index %q", ErrInvalidOBJFace, s)
	}
	switch {
	case i > 0:
		i--
	case i < 0:
		i += n
	default:
		return 0, fmt.Errorf("%w: index 0", ErrOBJIndexRange)
	}
	if i < 0 || i >= n {
		return 0, fmt.Errorf("%w: %s (have %d)", ErrOBJIndexRange, s, n)
	}
	return i, nil
}

// Triangles fan-triangulates every face into resolved vertices. Faces
// without normal indices take normals recovered from face geometry.
// The returned count is the number of positions no face touches.
func (o *OBJ) Triangles() ([]shapes.Triangle, int) {
	var recovered shapes.NormalReport
	needsRecovery := !o.HasNormals()
	if needsRecovery {
		recovered = shapes.RecoverNormalsReport(o.Positions, o.Faces)
	}

	var tris []shapes.Triangle
	for _, f := range o.Faces {
		for _, fan := range f.Fan() {
			var tri shapes.Triangle
			for k, corner := range fan {
				pi := f.Position[corner]
				v := shapes.Vertex{Position: o.Positions[pi]}
				if f.HasNormals() {
					v.Normal = o.Normals[f.Normal[corner]].Normalize()
				} else {
					v.Normal = recovered.Normals[pi]
				}
				if f.HasUVs() {
					v.UV = o.TexCoords[f.UV[corner]]
				}
				tri[k] = v
			}
			tris = append(tris, tri)
		}
	}
	return tris, recovered.Isolated
}

// Mesh builds the vertex buffer of a shapes.Mesh from the parsed file. The
// returned count is the number of positions no face touches.
func (o *OBJ) Mesh(name string, layout shapes.Layout) (shapes.Shape, int) {
	tris, isolated := o.Triangles()
	m := shapes.NewMesh(name, tris, layout)
	m.UpdateVertexData(0, 0)
	return m, isolated
}
