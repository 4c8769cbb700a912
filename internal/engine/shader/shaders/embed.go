// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// PhongVertexShader transforms vertices and builds the tangent frame.
//
//go:embed phong.vert
var PhongVertexShader string

// PhongFragmentShader shades with up to eight lights, material maps,
// shadow maps and fog.
//
//go:embed phong.frag
var PhongFragmentShader string

// ShadowVertexShader renders depth from a light's point of view.
//
//go:embed shadow.vert
var ShadowVertexShader string

// ShadowFragmentShader is the empty depth-only fragment stage.
//
//go:embed shadow.frag
var ShadowFragmentShader string
