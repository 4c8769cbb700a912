// Package shader compiles GLSL programs and caches their uniform locations.
package shader

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Error is a failed compile or link step together with the driver's log.
type Error struct {
	Stage string // "vertex", "fragment" or "link"
	Log   string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s shader: %s", e.Stage, strings.TrimRight(e.Log, "\x00\n "))
}

// CompileProgram compiles both stages and links them. Stage objects are
// deleted once linked or on failure.
func CompileProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	stages := []struct {
		kind uint32
		name string
		src  string
	}{
		{gl.VERTEX_SHADER, "vertex", vertexSrc},
		{gl.FRAGMENT_SHADER, "fragment", fragmentSrc},
	}

	program := gl.CreateProgram()
	for _, st := range stages {
		id, err := compileStage(st.kind, st.name, st.src)
		if err != nil {
			gl.DeleteProgram(program)
			return 0, err
		}
		gl.AttachShader(program, id)
		defer gl.DeleteShader(id)
	}
	gl.LinkProgram(program)

	var ok int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &ok)
	if ok == gl.FALSE {
		err := &Error{Stage: "link", Log: infoLog(program, gl.GetProgramiv, gl.GetProgramInfoLog)}
		gl.DeleteProgram(program)
		return 0, err
	}
	return program, nil
}

func compileStage(kind uint32, name, source string) (uint32, error) {
	id := gl.CreateShader(kind)
	src, free := gl.Strs(source + "\x00")
	gl.ShaderSource(id, 1, src, nil)
	free()
	gl.CompileShader(id)

	var ok int32
	gl.GetShaderiv(id, gl.COMPILE_STATUS, &ok)
	if ok == gl.FALSE {
		err := &Error{Stage: name, Log: infoLog(id, gl.GetShaderiv, gl.GetShaderInfoLog)}
		gl.DeleteShader(id)
		return 0, err
	}
	return id, nil
}

type (
	ivGetter  func(id, pname uint32, params *int32)
	logGetter func(id uint32, bufSize int32, length *int32, log *uint8)
)

func infoLog(id uint32, getiv ivGetter, getLog logGetter) string {
	var n int32
	getiv(id, gl.INFO_LOG_LENGTH, &n)
	if n == 0 {
		return ""
	}
	buf := make([]byte, n+1)
	getLog(id, n, nil, &buf[0])
	return string(buf)
}

// GetUniform returns the uniform location for name, or -1 if the uniform is
// missing or was optimized out.
func GetUniform(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}
