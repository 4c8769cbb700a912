package texture

import (
	"errors"
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/tessera/internal/logger"
	"github.com/Faultbox/tessera/pkg/scenegraph"
)

// DefaultMaxSize caps the uploaded texture size.
const DefaultMaxSize = 4096

// Cache owns one GL texture per image file referenced by the scene's
// texture, normal and bump maps.
type Cache struct {
	textures map[string]uint32
	maxSize  int
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{
		textures: make(map[string]uint32),
		maxSize:  DefaultMaxSize,
	}
}

// Files returns the distinct image files used by shapes in first-seen order.
func Files(shapes []scenegraph.RenderShape) []string {
	seen := make(map[string]bool)
	var files []string
	for _, s := range shapes {
		m := s.Primitive.Material
		for _, tm := range []scenegraph.TextureMap{m.Texture, m.Normal, m.Bump} {
			if !tm.Used || tm.Filename == "" || seen[tm.Filename] {
				continue
			}
			seen[tm.Filename] = true
			files = append(files, tm.Filename)
		}
	}
	return files
}

// Sync drops every texture and uploads the images the shapes reference.
// Files that fail to load are skipped and reported in the returned error.
func (c *Cache) Sync(shapes []scenegraph.RenderShape) error {
	c.Clear()

	var errs []error
	for _, f := range Files(shapes) {
		id, err := c.upload(f)
		if err != nil {
			errs = append(errs, fmt.Errorf("texture %s: %w", f, err))
			continue
		}
		c.textures[f] = id
	}
	logger.Debug("textures synced", zap.Int("count", len(c.textures)))
	return errors.Join(errs...)
}

// Get returns the texture for file.
func (c *Cache) Get(file string) (uint32, bool) {
	id, ok := c.textures[file]
	return id, ok
}

// Clear deletes every texture.
func (c *Cache) Clear() {
	for f, id := range c.textures {
		gl.DeleteTextures(1, &id)
		delete(c.textures, f)
	}
}

func (c *Cache) upload(file string) (uint32, error) {
	img, err := Load(file)
	if err != nil {
		return 0, err
	}
	img = Fit(img, c.maxSize)

	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA,
		int32(img.Rect.Dx()), int32(img.Rect.Dy()), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	logger.Debug("texture uploaded",
		zap.String("file", file),
		zap.Int("width", img.Rect.Dx()),
		zap.Int("height", img.Rect.Dy()))
	return id, nil
}
