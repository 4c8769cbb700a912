// Package debug provides frame capture helpers.
package debug

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"
)

// Screenshots writes captured frames as PNG files.
type Screenshots struct {
	outputDir string
	prefix    string
	now       func() time.Time
}

// NewScreenshots creates a writer that names files <prefix>_<timestamp>.png
// inside outputDir.
func NewScreenshots(outputDir, prefix string) *Screenshots {
	return &Screenshots{outputDir: outputDir, prefix: prefix, now: time.Now}
}

// NextName returns the file name the next capture would use.
func (s *Screenshots) NextName() string {
	name := fmt.Sprintf("%s_%s.png", s.prefix, s.now().Format("2006-01-02_15-04-05.000"))
	if s.outputDir != "" {
		name = filepath.Join(s.outputDir, name)
	}
	return name
}

// Capture saves bottom-up RGBA pixels under a generated name and returns it.
func (s *Screenshots) Capture(pixels []byte, width, height int) (string, error) {
	name := s.NextName()
	if err := SavePNG(name, pixels, width, height); err != nil {
		return "", err
	}
	return name, nil
}

// ImageFromPixels converts bottom-up RGBA rows, as read back from OpenGL,
// into a top-down image.
func ImageFromPixels(pixels []byte, width, height int) (*image.RGBA, error) {
	if len(pixels) != width*height*4 {
		return nil, fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	rowSize := width * 4
	for y := 0; y < height; y++ {
		src := (height - 1 - y) * rowSize
		copy(img.Pix[y*img.Stride:y*img.Stride+rowSize], pixels[src:src+rowSize])
	}
	return img, nil
}

// SavePNG writes bottom-up RGBA pixels to path, creating parent directories.
func SavePNG(path string, pixels []byte, width, height int) error {
	img, err := ImageFromPixels(pixels, width, height)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output dir: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("encoding PNG: %w", err)
	}
	return nil
}
