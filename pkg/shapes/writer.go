package shapes

import "github.com/Faultbox/tessera/pkg/math"

// corner is one tile corner with its attributes.
type corner struct {
	p  math.Vec3
	n  math.Vec3
	uv math.Vec2
}

// vertexWriter appends vertices to a buffer in layout order.
type vertexWriter struct {
	layout Layout
	data   []float32
}

func newVertexWriter(layout Layout, capacity int) *vertexWriter {
	return &vertexWriter{layout: layout, data: make([]float32, 0, capacity*layout.Stride())}
}

func (w *vertexWriter) vertex(c corner, tangent math.Vec3) {
	w.data = append(w.data, c.p.X, c.p.Y, c.p.Z, c.n.X, c.n.Y, c.n.Z)
	if w.layout.HasUV() {
		w.data = append(w.data, c.uv.X, c.uv.Y)
	}
	if w.layout.HasTangent() {
		w.data = append(w.data, tangent.X, tangent.Y, tangent.Z)
	}
}

// triangle writes a, b, c sharing one tangent computed from their UVs.
func (w *vertexWriter) triangle(a, b, c corner) {
	w.triangleOr(a, b, c, FallbackTangent)
}

// triangleOr is triangle with the tangent used when the triangle collapses.
func (w *vertexWriter) triangleOr(a, b, c corner, collapsed math.Vec3) {
	var t math.Vec3
	if w.layout.HasTangent() {
		t = computeTangent(a.p, b.p, c.p, a.uv, b.uv, c.uv, collapsed)
	}
	w.vertex(a, t)
	w.vertex(b, t)
	w.vertex(c, t)
}

// tile writes the two triangles (tl, br, bl) and (tl, tr, br) used by the
// curved primitives.
func (w *vertexWriter) tile(tl, tr, bl, br corner) {
	w.tileOr(tl, tr, bl, br, FallbackTangent)
}

func (w *vertexWriter) tileOr(tl, tr, bl, br corner, collapsed math.Vec3) {
	w.triangleOr(tl, br, bl, collapsed)
	w.triangleOr(tl, tr, br, collapsed)
}
