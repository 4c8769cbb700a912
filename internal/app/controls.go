package app

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/tessera/internal/config"
	"github.com/Faultbox/tessera/internal/engine/renderer"
	"github.com/Faultbox/tessera/pkg/shapes"
)

// applyKey returns r with the setting bound to key changed, and whether
// key is a settings key at all.
//
//	[ ]  param1 down / up
//	- =  param2 down / up
//	F1   shadows
//	F2   fog
//	F3   textures
func applyKey(r config.RenderConfig, key sdl.Scancode) (config.RenderConfig, bool) {
	switch key {
	case sdl.SCANCODE_LEFTBRACKET:
		r.Param1 = max(1, r.Param1-1)
	case sdl.SCANCODE_RIGHTBRACKET:
		r.Param1++
	case sdl.SCANCODE_MINUS:
		r.Param2 = max(1, r.Param2-1)
	case sdl.SCANCODE_EQUALS:
		r.Param2++
	case sdl.SCANCODE_F1:
		r.Shadows = !r.Shadows
	case sdl.SCANCODE_F2:
		r.Fog = !r.Fog
	case sdl.SCANCODE_F3:
		r.Textured = !r.Textured
	default:
		return r, false
	}
	return r, true
}

func shapesParams(r config.RenderConfig) shapes.Params {
	return shapes.Params{Param1: r.Param1, Param2: r.Param2}
}

func renderOptions(r config.RenderConfig) renderer.Options {
	return renderer.Options{
		Shadows:  r.Shadows,
		Textured: r.Textured,
		Fog:      r.Fog,
		FogColor: r.FogColor,
		FogStart: r.FogStart,
		FogEnd:   r.FogEnd,
	}
}
