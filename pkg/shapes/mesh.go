package shapes

import "github.com/Faultbox/tessera/pkg/math"

// Vertex is a fully resolved mesh vertex.
type Vertex struct {
	Position math.Vec3
	Normal   math.Vec3
	UV       math.Vec2
}

// Triangle is one resolved mesh face.
type Triangle [3]Vertex

type mesh struct {
	name   string
	layout Layout
	tris   []Triangle
	built  bool
	data   []float32
}

// NewMesh wraps fixed imported geometry. The buffer is built on the first
// UpdateVertexData call and never again; tessellation does not apply.
func NewMesh(name string, tris []Triangle, layout Layout) Shape {
	return &mesh{name: name, layout: layout, tris: tris}
}

func (m *mesh) Kind() Kind            { return Mesh }
func (m *mesh) Layout() Layout        { return m.layout }
func (m *mesh) VertexData() []float32 { return m.data }

// Name returns the source file identity of the mesh.
func (m *mesh) Name() string { return m.name }

func (m *mesh) UpdateVertexData(_, _ int) {
	if m.built {
		return
	}
	w := newVertexWriter(m.layout, len(m.tris)*3)
	for _, tri := range m.tris {
		w.triangle(
			corner{p: tri[0].Position, n: tri[0].Normal, uv: tri[0].UV},
			corner{p: tri[1].Position, n: tri[1].Normal, uv: tri[1].UV},
			corner{p: tri[2].Position, n: tri[2].Normal, uv: tri[2].UV},
		)
	}
	m.data = w.data
	m.built = true
}
