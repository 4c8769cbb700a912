package renderer

import (
	"github.com/Faultbox/tessera/internal/engine/camera"
	"github.com/Faultbox/tessera/internal/engine/framebuffer"
)

// ReadFrame draws one frame into an offscreen framebuffer of the viewport
// size and returns its bottom-up RGBA pixels.
func (r *Renderer) ReadFrame(cam *camera.Camera) (pixels []byte, width, height int, err error) {
	width, height = r.config.Width, r.config.Height
	fb, err := framebuffer.New(int32(width), int32(height))
	if err != nil {
		return nil, 0, 0, err
	}
	defer fb.Destroy()

	restore := fb.Bind()
	r.Draw(cam)
	pixels = fb.ReadPixels()
	restore()
	return pixels, width, height, nil
}
