package shader

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/tessera/pkg/math"
)

// Program is a linked shader program with a uniform location cache.
// Setting a uniform the driver optimized out is a no-op.
type Program struct {
	ID       uint32
	uniforms map[string]int32
}

// NewProgram compiles and links the given sources.
func NewProgram(vertexSrc, fragmentSrc string) (*Program, error) {
	id, err := CompileProgram(vertexSrc, fragmentSrc)
	if err != nil {
		return nil, err
	}
	return &Program{ID: id, uniforms: make(map[string]int32)}, nil
}

// Use makes the program current.
func (p *Program) Use() {
	gl.UseProgram(p.ID)
}

// Uniform returns the cached location of name.
func (p *Program) Uniform(name string) int32 {
	if loc, ok := p.uniforms[name]; ok {
		return loc
	}
	loc := GetUniform(p.ID, name)
	p.uniforms[name] = loc
	return loc
}

func (p *Program) SetMat4(name string, m math.Mat4) {
	gl.UniformMatrix4fv(p.Uniform(name), 1, false, m.Ptr())
}

// SetMat4s uploads a mat4 array.
func (p *Program) SetMat4s(name string, ms []math.Mat4) {
	if len(ms) == 0 {
		return
	}
	gl.UniformMatrix4fv(p.Uniform(name), int32(len(ms)), false, ms[0].Ptr())
}

func (p *Program) SetVec4(name string, v math.Vec4) {
	gl.Uniform4f(p.Uniform(name), v[0], v[1], v[2], v[3])
}

func (p *Program) SetVec3(name string, v [3]float32) {
	gl.Uniform3f(p.Uniform(name), v[0], v[1], v[2])
}

func (p *Program) SetVec2(name string, x, y float32) {
	gl.Uniform2f(p.Uniform(name), x, y)
}

func (p *Program) SetFloat(name string, v float32) {
	gl.Uniform1f(p.Uniform(name), v)
}

func (p *Program) SetInt(name string, v int32) {
	gl.Uniform1i(p.Uniform(name), v)
}

func (p *Program) SetBool(name string, v bool) {
	var i int32
	if v {
		i = 1
	}
	gl.Uniform1i(p.Uniform(name), i)
}

// SetInts uploads an int array.
func (p *Program) SetInts(name string, v []int32) {
	if len(v) > 0 {
		gl.Uniform1iv(p.Uniform(name), int32(len(v)), &v[0])
	}
}

// SetFloats uploads a float array.
func (p *Program) SetFloats(name string, v []float32) {
	if len(v) > 0 {
		gl.Uniform1fv(p.Uniform(name), int32(len(v)), &v[0])
	}
}

// SetVec3s uploads a flat vec3 array.
func (p *Program) SetVec3s(name string, v []float32) {
	if len(v) >= 3 {
		gl.Uniform3fv(p.Uniform(name), int32(len(v)/3), &v[0])
	}
}

// SetVec4s uploads a flat vec4 array.
func (p *Program) SetVec4s(name string, v []float32) {
	if len(v) >= 4 {
		gl.Uniform4fv(p.Uniform(name), int32(len(v)/4), &v[0])
	}
}

// Delete releases the program.
func (p *Program) Delete() {
	if p.ID != 0 {
		gl.DeleteProgram(p.ID)
		p.ID = 0
	}
}
