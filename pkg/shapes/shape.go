// Package shapes tessellates the built-in primitives (cube, cone, cylinder,
// sphere) into flat float32 vertex buffers and wraps imported meshes behind
// the same interface.
//
// Every buffer is a triangle list. Each vertex is written as position,
// normal, then optionally a texture coordinate and a tangent, depending on
// the Layout the shape was created with.
package shapes

import "fmt"

// Kind identifies a primitive type.
type Kind int

const (
	Cube Kind = iota
	Cone
	Cylinder
	Sphere
	Mesh
)

// Kinds lists the procedurally generated kinds.
var Kinds = []Kind{Cube, Cone, Cylinder, Sphere}

func (k Kind) String() string {
	switch k {
	case Cube:
		return "cube"
	case Cone:
		return "cone"
	case Cylinder:
		return "cylinder"
	case Sphere:
		return "sphere"
	case Mesh:
		return "mesh"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind maps a primitive name to its Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "cube":
		return Cube, nil
	case "cone":
		return Cone, nil
	case "cylinder":
		return Cylinder, nil
	case "sphere":
		return Sphere, nil
	case "mesh":
		return Mesh, nil
	}
	return 0, fmt.Errorf("unknown primitive kind %q", s)
}

// Layout selects which attributes are packed per vertex. Its value is the
// stride in float32 elements.
type Layout int

const (
	LayoutPN   Layout = 6  // position, normal
	LayoutPNT  Layout = 8  // position, normal, uv
	LayoutPNTT Layout = 11 // position, normal, uv, tangent
)

// Stride returns the number of float32 values per vertex.
func (l Layout) Stride() int { return int(l) }

// HasUV reports whether texture coordinates are packed.
func (l Layout) HasUV() bool { return l >= LayoutPNT }

// HasTangent reports whether tangents are packed.
func (l Layout) HasTangent() bool { return l >= LayoutPNTT }

func (l Layout) String() string {
	switch l {
	case LayoutPN:
		return "pn"
	case LayoutPNT:
		return "pnt"
	case LayoutPNTT:
		return "pntt"
	}
	return fmt.Sprintf("Layout(%d)", int(l))
}

// ParseLayout maps a layout name ("pn", "pnt", "pntt") to a Layout.
func ParseLayout(s string) (Layout, error) {
	switch s {
	case "pn":
		return LayoutPN, nil
	case "pnt":
		return LayoutPNT, nil
	case "pntt", "":
		return LayoutPNTT, nil
	}
	return 0, fmt.Errorf("unknown vertex layout %q", s)
}

// Minimum tessellation parameters per primitive. Smaller values are clamped.
const (
	MinCubeParam1     = 1
	MinConeParam1     = 1
	MinConeParam2     = 3
	MinCylinderParam1 = 1
	MinCylinderParam2 = 3
	MinSphereParam1   = 2
	MinSphereParam2   = 3
)

// Params holds the global tessellation parameters.
type Params struct {
	Param1 int // radial / latitude subdivisions
	Param2 int // angular subdivisions
}

// Shape is a primitive that owns its vertex buffer.
type Shape interface {
	// Kind returns the fixed primitive kind.
	Kind() Kind
	// UpdateVertexData regenerates the whole buffer. Parameters below the
	// primitive's minimums are clamped.
	UpdateVertexData(param1, param2 int)
	// VertexData returns the current buffer. It never regenerates.
	VertexData() []float32
	// Layout returns the per-vertex attribute layout.
	Layout() Layout
}

// New returns an empty generator for a built-in kind.
// It returns nil for Mesh, which needs geometry (see NewMesh).
func New(kind Kind, layout Layout) Shape {
	switch kind {
	case Cube:
		return NewCube(layout)
	case Cone:
		return NewCone(layout)
	case Cylinder:
		return NewCylinder(layout)
	case Sphere:
		return NewSphere(layout)
	}
	return nil
}

// generator is the state shared by the built-in primitives.
type generator struct {
	layout Layout
	param1 int
	param2 int
	data   []float32
}

func (g *generator) Layout() Layout        { return g.layout }
func (g *generator) VertexData() []float32 { return g.data }

// Clamped returns the parameters the last UpdateVertexData call used.
func (g *generator) Clamped() Params { return Params{Param1: g.param1, Param2: g.param2} }
