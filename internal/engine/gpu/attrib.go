// Package gpu keeps one vertex array per Shape Registry key.
package gpu

import "github.com/Faultbox/tessera/pkg/shapes"

// Attribute locations shared with the shaders.
const (
	LocPosition = 0
	LocNormal   = 1
	LocUV       = 2
	LocTangent  = 3
)

// Attribute describes one interleaved vertex attribute.
type Attribute struct {
	Location uint32
	Size     int32 // components
	Offset   int   // bytes from the start of the vertex
}

// Attributes returns the attribute pointers for layout. The order is always
// position, normal, uv, tangent.
func Attributes(layout shapes.Layout) []Attribute {
	attrs := []Attribute{
		{Location: LocPosition, Size: 3, Offset: 0},
		{Location: LocNormal, Size: 3, Offset: 3 * 4},
	}
	if layout.HasUV() {
		attrs = append(attrs, Attribute{Location: LocUV, Size: 2, Offset: 6 * 4})
	}
	if layout.HasTangent() {
		attrs = append(attrs, Attribute{Location: LocTangent, Size: 3, Offset: 8 * 4})
	}
	return attrs
}

// StrideBytes returns the size of one vertex in bytes.
func StrideBytes(layout shapes.Layout) int32 {
	return int32(layout.Stride() * 4)
}
