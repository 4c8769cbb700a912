// Package renderer draws a flattened scene with Phong shading and shadow maps.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/tessera/internal/engine/camera"
	"github.com/Faultbox/tessera/internal/engine/gpu"
	"github.com/Faultbox/tessera/internal/engine/lighting"
	"github.com/Faultbox/tessera/internal/engine/registry"
	"github.com/Faultbox/tessera/internal/engine/shader"
	"github.com/Faultbox/tessera/internal/engine/shader/shaders"
	"github.com/Faultbox/tessera/internal/engine/shadow"
	"github.com/Faultbox/tessera/internal/engine/texture"
	"github.com/Faultbox/tessera/internal/logger"
	"github.com/Faultbox/tessera/pkg/math"
	"github.com/Faultbox/tessera/pkg/scenegraph"
	"github.com/Faultbox/tessera/pkg/shapes"
)

// Texture units used by the main pass.
const (
	unitTexture    = 0
	unitNormal     = 1
	unitBump       = 2
	unitShadowBase = 3
)

// Config holds renderer configuration.
type Config struct {
	Width            int
	Height           int
	Layout           shapes.Layout
	ShadowResolution int32
}

// Options are the per-frame toggles.
type Options struct {
	Shadows  bool
	Textured bool
	Fog      bool
	FogColor [3]float32
	FogStart float32
	FogEnd   float32
}

// Renderer owns every GL resource needed to draw a scene.
type Renderer struct {
	config  Config
	options Options

	phong    *shader.Program
	depth    *shader.Program
	shadows  *shadow.Set
	buffers  *gpu.Buffers
	textures *texture.Cache
	lights   lighting.Buffer
	lightVPs [lighting.MaxLights]math.Mat4
	casts    [lighting.MaxLights]int32
	scene    *scenegraph.RenderData
	clearCol [4]float32
}

// New creates a renderer. It must be called after the GL context exists.
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config:   cfg,
		clearCol: [4]float32{0.1, 0.1, 0.15, 1},
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)

	var err error
	r.phong, err = shader.NewProgram(shaders.PhongVertexShader, shaders.PhongFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("phong shader: %w", err)
	}
	r.depth, err = shader.NewProgram(shaders.ShadowVertexShader, shaders.ShadowFragmentShader)
	if err != nil {
		r.Close()
		return nil, fmt.Errorf("shadow shader: %w", err)
	}

	r.shadows = shadow.NewSet(cfg.ShadowResolution)
	if r.shadows == nil {
		logger.Warn("shadow maps unavailable, shadows disabled")
	}

	r.buffers = gpu.NewBuffers()
	r.textures = texture.NewCache()
	r.Resize(cfg.Width, cfg.Height)
	return r, nil
}

// Uploader returns the vertex buffer set for the Shape Registry.
func (r *Renderer) Uploader() registry.Uploader {
	return r.buffers
}

// SetOptions replaces the per-frame toggles.
func (r *Renderer) SetOptions(o Options) {
	r.options = o
}

// SetScene installs a new render list. Textures not found on disk are
// reported in the error and the affected materials render untextured.
func (r *Renderer) SetScene(data *scenegraph.RenderData) error {
	r.scene = data
	if dropped := r.lights.Set(data.Lights); dropped > 0 {
		logger.Warn("scene has more lights than the shader supports",
			zap.Int("max", lighting.MaxLights),
			zap.Int("dropped", dropped))
	}
	for i := 0; i < r.lights.Count; i++ {
		l := data.Lights[i]
		r.lightVPs[i] = shadow.BiasedViewProj(l)
		r.casts[i] = 0
		if shadow.CastsShadow(l) {
			r.casts[i] = 1
		}
	}
	return r.textures.Sync(data.Shapes)
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Draw renders the current scene from cam into the bound framebuffer.
func (r *Renderer) Draw(cam *camera.Camera) {
	gl.ClearColor(r.clearCol[0], r.clearCol[1], r.clearCol[2], r.clearCol[3])
	if r.options.Fog {
		gl.ClearColor(r.options.FogColor[0], r.options.FogColor[1], r.options.FogColor[2], 1)
	}
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	if r.scene == nil {
		return
	}

	shadows := r.options.Shadows && r.shadows != nil
	if shadows {
		r.shadowPass()
	}
	r.mainPass(cam, shadows)
}

func (r *Renderer) shadowPass() {
	r.depth.Use()
	for i := 0; i < r.lights.Count; i++ {
		l := r.scene.Lights[i]
		vp, ok := shadow.LightViewProj(l)
		if !ok {
			continue
		}
		m := r.shadows.Map(i)
		m.Bind()
		r.depth.SetMat4("lightViewProj", vp)
		for _, s := range r.scene.Shapes {
			r.depth.SetMat4("modelMatrix", s.CTM)
			r.buffers.Draw(registry.KeyFor(s.Primitive.Kind, s.Primitive.MeshFile))
		}
		m.Unbind()
	}
}

func (r *Renderer) mainPass(cam *camera.Camera, shadows bool) {
	p := r.phong
	p.Use()

	g := r.scene.Globals
	p.SetFloat("ka", g.Ka)
	p.SetFloat("kd", g.Kd)
	p.SetFloat("ks", g.Ks)
	p.SetVec4("cameraPos", cam.Position())
	p.SetMat4("viewMatrix", cam.View())
	p.SetMat4("projectionMatrix", cam.Projection())
	p.SetBool("hasTangents", r.config.Layout.HasTangent())

	p.SetInt("numLights", int32(r.lights.Count))
	p.SetInts("lightType", r.lights.Kinds[:])
	p.SetVec4s("lightPos", r.lights.Positions[:])
	p.SetVec4s("lightDir", r.lights.Directions[:])
	p.SetVec4s("lightColor", r.lights.Colors[:])
	p.SetVec3s("lightAtten", r.lights.Attenuation[:])
	p.SetFloats("lightAngle", r.lights.Angles[:])
	p.SetFloats("lightPenumbra", r.lights.Penumbras[:])
	p.SetMat4s("depthBiasVPs", r.lightVPs[:])
	p.SetInts("castsShadow", r.casts[:])

	p.SetBool("shadowsEnabled", shadows)
	if shadows {
		r.shadows.BindTextures(unitShadowBase)
		units := make([]int32, shadow.MaxMaps)
		for i := range units {
			units[i] = int32(unitShadowBase + i)
		}
		p.SetInts("depthTextures", units)
	}

	p.SetBool("fogEnabled", r.options.Fog)
	p.SetVec3("fogColor", r.options.FogColor)
	p.SetFloat("fogStart", r.options.FogStart)
	p.SetFloat("fogEnd", r.options.FogEnd)

	for _, s := range r.scene.Shapes {
		p.SetMat4("modelMatrix", s.CTM)
		r.setMaterial(s.Primitive.Material)
		r.buffers.Draw(registry.KeyFor(s.Primitive.Kind, s.Primitive.MeshFile))
	}
	gl.UseProgram(0)
}

func (r *Renderer) setMaterial(m scenegraph.Material) {
	p := r.phong
	p.SetVec4("cAmbient", m.Ambient)
	p.SetVec4("cDiffuse", m.Diffuse)
	p.SetVec4("cSpecular", m.Specular)
	p.SetFloat("shininess", m.Shininess)
	p.SetFloat("blend", m.Blend)

	textured := r.options.Textured && r.config.Layout.HasUV()
	r.bindMap("textureMap", m.Texture, unitTexture, textured)
	r.bindMap("normalMap", m.Normal, unitNormal, textured)
	r.bindMap("bumpMap", m.Bump, unitBump, textured)
}

func (r *Renderer) bindMap(name string, tm scenegraph.TextureMap, unit uint32, enabled bool) {
	id, ok := r.textures.Get(tm.Filename)
	used := enabled && tm.Used && ok
	r.phong.SetBool(name+".used", used)
	if !used {
		return
	}
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, id)
	r.phong.SetInt(name+".sampler", int32(unit))
	r.phong.SetVec2(name+".repeat", tm.RepeatU, tm.RepeatV)
}

// Close releases every GL resource.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	if r.buffers != nil {
		r.buffers.Close()
	}
	if r.textures != nil {
		r.textures.Clear()
	}
	if r.shadows != nil {
		r.shadows.Destroy()
	}
	if r.depth != nil {
		r.depth.Delete()
	}
	if r.phong != nil {
		r.phong.Delete()
	}
}
