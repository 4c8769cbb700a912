// Package app runs the interactive viewer: window, input, scene reloads
// and the frame loop.
package app

import (
	"fmt"
	"time"

	"github.com/chewxy/math32"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/tessera/internal/config"
	"github.com/Faultbox/tessera/internal/engine/camera"
	"github.com/Faultbox/tessera/internal/engine/debug"
	"github.com/Faultbox/tessera/internal/engine/input"
	"github.com/Faultbox/tessera/internal/engine/registry"
	"github.com/Faultbox/tessera/internal/engine/renderer"
	"github.com/Faultbox/tessera/internal/engine/watch"
	"github.com/Faultbox/tessera/internal/engine/window"
	"github.com/Faultbox/tessera/internal/logger"
	"github.com/Faultbox/tessera/pkg/math"
	"github.com/Faultbox/tessera/pkg/scenegraph"
	"github.com/Faultbox/tessera/pkg/shapes"
)

// defaultCamera is used until a scene is loaded.
var defaultCamera = scenegraph.CameraData{
	Pos:         math.Vec4{0, 0, 5, 1},
	Look:        math.Vec4{0, 0, -1, 0},
	Up:          math.Vec4{0, 1, 0, 0},
	HeightAngle: 30 * math32.Pi / 180,
}

// App is the viewer instance.
type App struct {
	cfg     *config.Config
	running bool

	window      *window.Window
	renderer    *renderer.Renderer
	input       *input.Input
	camera      *camera.Camera
	registry    *registry.Registry
	watcher     *watch.Watcher
	screenshots *debug.Screenshots

	scene *loadedScene
	log   *zap.Logger
}

// New opens the window, creates the renderer and loads the configured scene.
func New(cfg *config.Config) (*App, error) {
	a := &App{
		cfg: cfg,
		log: logger.Named("app"),
	}
	a.log.Info("initializing",
		zap.String("title", cfg.Window.Title),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
	)

	layout, err := shapes.ParseLayout(cfg.Render.Layout)
	if err != nil {
		return nil, err
	}

	capture := cfg.Debug.Screenshot != ""
	a.window, err = window.New(window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen && !capture,
		VSync:      cfg.Window.VSync,
		Hidden:     capture,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// The renderer needs the GL context the window just created.
	w, h := a.window.DrawableSize()
	a.renderer, err = renderer.New(renderer.Config{
		Width:            w,
		Height:           h,
		Layout:           layout,
		ShadowResolution: cfg.Render.ShadowResolution,
	})
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	a.renderer.SetOptions(renderOptions(cfg.Render))

	a.registry = registry.New(layout, registry.WithUploader(a.renderer.Uploader()))
	a.registry.Regenerate(shapesParams(cfg.Render))

	a.camera = camera.New(defaultCamera, w, h, cfg.Render.NearPlane, cfg.Render.FarPlane)
	a.input = input.New()
	a.screenshots = debug.NewScreenshots(cfg.Debug.ScreenshotDir, "tessera")

	if cfg.Scene.Watch && !capture {
		a.watcher, err = watch.New(cfg.Scene.Debounce)
		if err != nil {
			a.log.Warn("file watching disabled", zap.Error(err))
		}
	}

	if cfg.Scene.Path != "" {
		if err := a.load(true); err != nil {
			a.Close()
			return nil, err
		}
	}

	a.log.Info("initialized")
	return a, nil
}

// Run starts the frame loop. With a screenshot requested it draws one frame,
// saves it and returns.
func (a *App) Run() error {
	if path := a.cfg.Debug.Screenshot; path != "" {
		return a.capture(path)
	}

	a.running = true
	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	a.log.Info("starting frame loop")
	for a.running {
		now := time.Now()
		dt := float32(now.Sub(lastTime).Seconds())
		lastTime = now

		if a.input.Update() {
			a.running = false
			break
		}
		a.handleEvents()
		a.handleReloads()
		a.moveCamera(dt)

		a.renderer.Draw(a.camera)
		a.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			if a.cfg.Debug.ShowFPS {
				a.window.SetTitle(fmt.Sprintf("%s - %d fps", a.cfg.Window.Title, frameCount))
			}
			a.log.Debug("fps", zap.Int("count", frameCount), zap.Float32("dt_ms", dt*1000))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}
	return nil
}

// Close releases every resource in reverse creation order.
func (a *App) Close() {
	a.log.Info("closing")
	if a.watcher != nil {
		if err := a.watcher.Close(); err != nil {
			a.log.Warn("closing watcher", zap.Error(err))
		}
	}
	if a.registry != nil {
		a.registry.Close()
	}
	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}

// load reads the scene file and hands it to the renderer. resetCamera
// replaces the camera with the scene's; reloads keep the current view.
func (a *App) load(resetCamera bool) error {
	s, err := loadScene(a.cfg.Scene.Path, a.registry)
	if err != nil {
		return err
	}
	a.scene = s
	if resetCamera {
		a.camera.SetData(s.data.Camera)
	}
	if err := a.renderer.SetScene(&s.data); err != nil {
		a.log.Warn("some textures failed to load", zap.Error(err))
	}
	a.log.Debug("drawing", zap.Int("vertices", vertexCount(a.registry, s.data.Shapes)))

	if a.watcher != nil {
		if err := a.watcher.Set(s.files...); err != nil {
			a.log.Warn("watching scene files", zap.Error(err))
		}
	}
	return nil
}

func (a *App) handleReloads() {
	if a.watcher == nil {
		return
	}
	select {
	case changed := <-a.watcher.Changes():
		a.log.Info("files changed, reloading", zap.Strings("files", changed))
		if err := a.load(false); err != nil {
			a.log.Error("reload failed, keeping previous scene", zap.Error(err))
		}
	default:
	}
}

func (a *App) handleEvents() {
	for _, event := range a.input.Events() {
		switch event.Type {
		case input.EventWindowResize:
			w, h := a.window.DrawableSize()
			a.renderer.Resize(w, h)
			a.camera.Resize(w, h)
		case input.EventKeyDown:
			a.handleKey(event.Key)
		}
	}

	if dx, dy := a.input.Drag(); dx != 0 || dy != 0 {
		a.camera.Rotate(float32(dx), float32(dy))
	}
}

func (a *App) handleKey(key sdl.Scancode) {
	switch key {
	case sdl.SCANCODE_ESCAPE:
		a.running = false
		return
	case sdl.SCANCODE_F12:
		a.screenshot()
		return
	case sdl.SCANCODE_F5:
		if a.cfg.Scene.Path != "" {
			if err := a.load(true); err != nil {
				a.log.Error("reload failed", zap.Error(err))
			}
		}
		return
	}

	prev := a.cfg.Render
	next, ok := applyKey(prev, key)
	if !ok {
		return
	}
	a.cfg.Render = next
	a.applySettings(prev)
}

// applySettings pushes render settings that differ from prev to the
// registry, the camera and the renderer.
func (a *App) applySettings(prev config.RenderConfig) {
	r := a.cfg.Render
	if r.TessellationChanged(prev) {
		a.registry.Regenerate(shapesParams(r))
		a.log.Info("tessellation changed", zap.Int("param1", r.Param1), zap.Int("param2", r.Param2))
	}
	if r.PlanesChanged(prev) {
		a.camera.SetPlanes(r.NearPlane, r.FarPlane)
	}
	a.renderer.SetOptions(renderOptions(r))
}

var moveKeys = []struct {
	key sdl.Scancode
	dir camera.Direction
}{
	{sdl.SCANCODE_W, camera.Forward},
	{sdl.SCANCODE_S, camera.Backward},
	{sdl.SCANCODE_A, camera.Left},
	{sdl.SCANCODE_D, camera.Right},
	{sdl.SCANCODE_SPACE, camera.Up},
	{sdl.SCANCODE_LCTRL, camera.Down},
}

func (a *App) moveCamera(dt float32) {
	for _, m := range moveKeys {
		if a.input.IsKeyHeld(m.key) {
			a.camera.Move(m.dir, dt)
		}
	}
}

func (a *App) screenshot() {
	pixels, w, h, err := a.renderer.ReadFrame(a.camera)
	if err == nil {
		var path string
		if path, err = a.screenshots.Capture(pixels, w, h); err == nil {
			a.log.Info("screenshot saved", zap.String("file", path))
			return
		}
	}
	a.log.Error("screenshot failed", zap.Error(err))
}

func (a *App) capture(path string) error {
	pixels, w, h, err := a.renderer.ReadFrame(a.camera)
	if err != nil {
		return fmt.Errorf("capturing %s: %w", path, err)
	}
	if err := debug.SavePNG(path, pixels, w, h); err != nil {
		return err
	}
	a.log.Info("screenshot saved", zap.String("file", path))
	return nil
}
