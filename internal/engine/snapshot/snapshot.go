// Package snapshot saves rendered frames as PNG files.
package snapshot

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"
)

// Writer names and writes snapshot files.
type Writer struct {
	dir    string
	prefix string

	// now is replaced in tests.
	now func() time.Time
}

// NewWriter creates a writer that saves into dir; an empty dir means the
// working directory.
func NewWriter(dir, prefix string) *Writer {
	if prefix == "" {
		prefix = "robostage"
	}
	return &Writer{dir: dir, prefix: prefix, now: time.Now}
}

// Filename returns the path the next snapshot will be written to.
func (w *Writer) Filename() string {
	name := fmt.Sprintf("%s_%s.png", w.prefix, w.now().Format("2006-01-02_15-04-05.000"))
	if w.dir != "" {
		name = filepath.Join(w.dir, name)
	}
	return name
}

// FromPixels converts bottom-up RGBA rows, as glReadPixels returns them,
// into a top-down image.
func FromPixels(pixels []byte, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid size %dx%d", width, height)
	}
	if len(pixels) != width*height*4 {
		return nil, fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	row := width * 4
	for y := 0; y < height; y++ {
		src := (height - 1 - y) * row
		dst := y * img.Stride
		copy(img.Pix[dst:dst+row], pixels[src:src+row])
	}
	return img, nil
}

// WritePixels flips and saves a framebuffer read-back.
func (w *Writer) WritePixels(pixels []byte, width, height int) (string, error) {
	img, err := FromPixels(pixels, width, height)
	if err != nil {
		return "", err
	}
	return w.Write(img)
}

// Write saves img and returns the file path.
func (w *Writer) Write(img image.Image) (string, error) {
	if w.dir != "" {
		if err := os.MkdirAll(w.dir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	name := w.Filename()
	file, err := os.Create(name)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}

	if err := png.Encode(file, img); err != nil {
		file.Close()
		return "", fmt.Errorf("encoding PNG: %w", err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("closing %s: %w", name, err)
	}
	return name, nil
}
