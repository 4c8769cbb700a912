// Package lighting packs world-space lights into the flat arrays the Phong
// shader reads.
package lighting

import (
	"github.com/Faultbox/tessera/pkg/scenegraph"
)

// MaxLights is the size of the light arrays in the shader.
const MaxLights = 8

// Buffer holds up to MaxLights lights laid out per field. Slots past Count
// are zero.
type Buffer struct {
	Count       int
	Kinds       [MaxLights]int32
	Positions   [MaxLights * 4]float32
	Directions  [MaxLights * 4]float32
	Colors      [MaxLights * 4]float32
	Attenuation [MaxLights * 3]float32
	Angles      [MaxLights]float32
	Penumbras   [MaxLights]float32
}

// Set replaces the buffer contents. It returns the number of lights that did
// not fit.
func (b *Buffer) Set(lights []scenegraph.RenderLight) (dropped int) {
	*b = Buffer{}
	for _, l := range lights {
		if !b.Add(l) {
			dropped++
		}
	}
	return dropped
}

// Add appends a light. Returns false if the buffer is full.
func (b *Buffer) Add(l scenegraph.RenderLight) bool {
	if b.Count >= MaxLights {
		return false
	}
	i := b.Count
	b.Kinds[i] = int32(l.Kind)
	copy(b.Positions[i*4:], l.Pos[:])
	copy(b.Directions[i*4:], l.Dir[:])
	copy(b.Colors[i*4:], l.Color[:])
	copy(b.Attenuation[i*3:], []float32{l.Function.X, l.Function.Y, l.Function.Z})
	b.Angles[i] = l.Angle
	b.Penumbras[i] = l.Penumbra
	b.Count++
	return true
}
