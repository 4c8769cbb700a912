package gpu

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/tessera/internal/engine/registry"
	"github.com/Faultbox/tessera/internal/logger"
	"github.com/Faultbox/tessera/pkg/shapes"
)

type vertexArray struct {
	vao   uint32
	vbo   uint32
	count int32
}

// Buffers implements registry.Uploader on top of GL vertex buffers.
type Buffers struct {
	arrays map[registry.Key]*vertexArray
}

var _ registry.Uploader = (*Buffers)(nil)

// NewBuffers creates an empty set. A GL context must be current.
func NewBuffers() *Buffers {
	return &Buffers{arrays: make(map[registry.Key]*vertexArray)}
}

// Upload replaces the contents of the buffer for key, creating it on first use.
func (b *Buffers) Upload(key registry.Key, s shapes.Shape) {
	data := s.VertexData()
	layout := s.Layout()

	va, ok := b.arrays[key]
	if !ok {
		va = &vertexArray{}
		gl.GenVertexArrays(1, &va.vao)
		gl.GenBuffers(1, &va.vbo)
		b.arrays[key] = va

		gl.BindVertexArray(va.vao)
		gl.BindBuffer(gl.ARRAY_BUFFER, va.vbo)
		stride := StrideBytes(layout)
		for _, a := range Attributes(layout) {
			gl.EnableVertexAttribArray(a.Location)
			gl.VertexAttribPointerWithOffset(a.Location, a.Size, gl.FLOAT, false, stride, uintptr(a.Offset))
		}
	} else {
		gl.BindVertexArray(va.vao)
		gl.BindBuffer(gl.ARRAY_BUFFER, va.vbo)
	}

	if len(data) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
	} else {
		gl.BufferData(gl.ARRAY_BUFFER, 0, nil, gl.STATIC_DRAW)
	}
	va.count = int32(len(data) / layout.Stride())

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	logger.Debug("vertex buffer uploaded",
		zap.Stringer("key", key),
		zap.Int32("vertices", va.count))
}

// Release deletes the buffer for key.
func (b *Buffers) Release(key registry.Key) {
	va, ok := b.arrays[key]
	if !ok {
		return
	}
	gl.DeleteVertexArrays(1, &va.vao)
	gl.DeleteBuffers(1, &va.vbo)
	delete(b.arrays, key)
}

// Draw issues the draw call for key. Unknown keys draw nothing.
func (b *Buffers) Draw(key registry.Key) {
	va, ok := b.arrays[key]
	if !ok || va.count == 0 {
		return
	}
	gl.BindVertexArray(va.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, va.count)
	gl.BindVertexArray(0)
}

// Close releases every buffer.
func (b *Buffers) Close() {
	for k := range b.arrays {
		b.Release(k)
	}
}
