// Package config handles viewer configuration loading and management.
package config

import "time"

// Config holds all viewer settings.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Render  RenderConfig  `yaml:"render"`
	Scene   SceneConfig   `yaml:"scene"`
	Debug   DebugConfig   `yaml:"debug"`
	Logging LoggingConfig `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
}

// RenderConfig holds the settings the renderer and the shape registry read
// every frame. The app compares successive values to decide what to rebuild.
type RenderConfig struct {
	Param1           int        `yaml:"param1"` // radial / latitude subdivisions
	Param2           int        `yaml:"param2"` // angular subdivisions
	NearPlane        float32    `yaml:"near_plane"`
	FarPlane         float32    `yaml:"far_plane"`
	Layout           string     `yaml:"layout"` // pn, pnt or pntt
	Textured         bool       `yaml:"textured"`
	Shadows          bool       `yaml:"shadows"`
	ShadowResolution int32      `yaml:"shadow_resolution"`
	Fog              bool       `yaml:"fog"`
	FogColor         [3]float32 `yaml:"fog_color"`
	FogStart         float32    `yaml:"fog_start"`
	FogEnd           float32    `yaml:"fog_end"`
}

// TessellationChanged reports whether the primitives must be regenerated.
func (r RenderConfig) TessellationChanged(prev RenderConfig) bool {
	return r.Param1 != prev.Param1 || r.Param2 != prev.Param2
}

// PlanesChanged reports whether the projection matrix must be rebuilt.
func (r RenderConfig) PlanesChanged(prev RenderConfig) bool {
	return r.NearPlane != prev.NearPlane || r.FarPlane != prev.FarPlane
}

// SceneConfig holds the scene file settings.
type SceneConfig struct {
	Path     string        `yaml:"path"`
	Watch    bool          `yaml:"watch"`
	Debounce time.Duration `yaml:"debounce"`
}

// DebugConfig holds diagnostics settings.
type DebugConfig struct {
	ShowFPS       bool   `yaml:"show_fps"`
	ScreenshotDir string `yaml:"screenshot_dir"`
	Screenshot    string `yaml:"-"` // capture one frame to this file and exit
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "Tessera",
			Width:  1280,
			Height: 720,
			VSync:  true,
		},
		Render: RenderConfig{
			Param1:           5,
			Param2:           5,
			NearPlane:        0.1,
			FarPlane:         100,
			Layout:           "pntt",
			Textured:         true,
			Shadows:          true,
			ShadowResolution: 2048,
			FogColor:         [3]float32{0.5, 0.5, 0.55},
			FogStart:         10,
			FogEnd:           40,
		},
		Scene: SceneConfig{
			Debounce: 200 * time.Millisecond,
		},
		Debug: DebugConfig{
			ScreenshotDir: "screenshots",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
