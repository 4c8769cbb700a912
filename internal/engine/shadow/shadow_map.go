// Package shadow provides depth-map shadows for directional and spot lights.
package shadow

import (
	"github.com/go-gl/gl/v4.1-core/gl"
)

// MaxMaps is the number of lights that can cast shadows at once.
const MaxMaps = 8

// DefaultResolution is the default shadow map resolution.
const DefaultResolution = 2048

// Map is one depth-only render target.
type Map struct {
	FBO          uint32
	DepthTexture uint32
	Resolution   int32
	prevFBO      int32
	prevViewport [4]int32
}

// NewMap creates a shadow map, or returns nil when the framebuffer is
// incomplete.
func NewMap(resolution int32) *Map {
	if resolution <= 0 {
		resolution = DefaultResolution
	}

	sm := &Map{Resolution: resolution}

	gl.GenFramebuffers(1, &sm.FBO)
	gl.BindFramebuffer(gl.FRAMEBUFFER, sm.FBO)

	gl.GenTextures(1, &sm.DepthTexture)
	gl.BindTexture(gl.TEXTURE_2D, sm.DepthTexture)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.DEPTH_COMPONENT24, resolution, resolution, 0,
		gl.DEPTH_COMPONENT, gl.FLOAT, nil)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)

	// Outside the light frustum everything is lit.
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_BORDER)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_BORDER)
	borderColor := []float32{1, 1, 1, 1}
	gl.TexParameterfv(gl.TEXTURE_2D, gl.TEXTURE_BORDER_COLOR, &borderColor[0])

	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.TEXTURE_2D, sm.DepthTexture, 0)
	gl.DrawBuffer(gl.NONE)
	gl.ReadBuffer(gl.NONE)

	if status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER); status != gl.FRAMEBUFFER_COMPLETE {
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
		sm.Destroy()
		return nil
	}

	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return sm
}

// Bind starts a depth pass into this map.
func (sm *Map) Bind() {
	gl.GetIntegerv(gl.FRAMEBUFFER_BINDING, &sm.prevFBO)
	gl.GetIntegerv(gl.VIEWPORT, &sm.prevViewport[0])

	gl.BindFramebuffer(gl.FRAMEBUFFER, sm.FBO)
	gl.Viewport(0, 0, sm.Resolution, sm.Resolution)
	gl.Clear(gl.DEPTH_BUFFER_BIT)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)

	// Front-face culling reduces shadow acne on closed shapes.
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.FRONT)
}

// Unbind ends the depth pass and restores the previous target and viewport.
func (sm *Map) Unbind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, uint32(sm.prevFBO))
	gl.Viewport(sm.prevViewport[0], sm.prevViewport[1], sm.prevViewport[2], sm.prevViewport[3])
	gl.CullFace(gl.BACK)
}

// BindTexture binds the depth texture to texture unit GL_TEXTURE0+unit.
func (sm *Map) BindTexture(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, sm.DepthTexture)
}

// Destroy releases the GPU resources.
func (sm *Map) Destroy() {
	if sm.FBO != 0 {
		gl.DeleteFramebuffers(1, &sm.FBO)
		sm.FBO = 0
	}
	if sm.DepthTexture != 0 {
		gl.DeleteTextures(1, &sm.DepthTexture)
		sm.DepthTexture = 0
	}
}

// IsValid returns true if the shadow map was created successfully.
func (sm *Map) IsValid() bool {
	return sm != nil && sm.FBO != 0 && sm.DepthTexture != 0
}

// Set holds one shadow map per light slot.
type Set struct {
	maps [MaxMaps]*Map
}

// NewSet allocates MaxMaps shadow maps. It returns nil if any of them
// could not be created.
func NewSet(resolution int32) *Set {
	s := &Set{}
	for i := range s.maps {
		s.maps[i] = NewMap(resolution)
		if !s.maps[i].IsValid() {
			s.Destroy()
			return nil
		}
	}
	return s
}

// Map returns the shadow map of light slot i.
func (s *Set) Map(i int) *Map {
	return s.maps[i]
}

// BindTextures binds every depth texture to units firstUnit..firstUnit+MaxMaps-1.
func (s *Set) BindTextures(firstUnit uint32) {
	for i, m := range s.maps {
		m.BindTexture(firstUnit + uint32(i))
	}
}

// Destroy releases every map.
func (s *Set) Destroy() {
	for i, m := range s.maps {
		if m != nil {
			m.Destroy()
			s.maps[i] = nil
		}
	}
}
