package snapshot

import (
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func fixedWriter(dir string) *Writer {
	w := NewWriter(dir, "test")
	w.now = func() time.Time { return time.Date(2026, 3, 1, 12, 30, 5, 250e6, time.UTC) }
	return w
}

func TestFilename(t *testing.T) {
	tests := []struct {
		dir  string
		want string
	}{
		{"", "test_2026-03-01_12-30-05.250.png"},
		{"shots", filepath.Join("shots", "test_2026-03-01_12-30-05.250.png")},
	}
	for _, tt := range tests {
		if got := fixedWriter(tt.dir).Filename(); got != tt.want {
			t.Errorf("Filename() in %q = %q, want %q", tt.dir, got, tt.want)
		}
	}
}

func TestDefaultPrefix(t *testing.T) {
	w := NewWriter("", "")
	if !strings.HasPrefix(w.Filename(), "robostage_") {
		t.Errorf("Filename() = %q, want robostage_ prefix", w.Filename())
	}
}

func TestFromPixelsFlips(t *testing.T) {
	// Two rows, bottom red then top blue.
	pixels := []byte{
		255, 0, 0, 255,
		0, 0, 255, 255,
	}
	img, err := FromPixels(pixels, 1, 2)
	if err != nil {
		t.Fatal(err)
	}
	if got := img.RGBAAt(0, 0); got != (color.RGBA{0, 0, 255, 255}) {
		t.Errorf("top pixel = %v, want blue", got)
	}
	if got := img.RGBAAt(0, 1); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("bottom pixel = %v, want red", got)
	}
}

func TestFromPixelsRejectsBadInput(t *testing.T) {
	tests := []struct {
		name    string
		n, w, h int
	}{
		{"short", 7, 1, 2},
		{"zero width", 0, 0, 2},
		{"negative height", 4, 1, -1},
	}
	for _, tt := range tests {
		if _, err := FromPixels(make([]byte, tt.n), tt.w, tt.h); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}
}

func TestWritePixels(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	w := fixedWriter(dir)

	pixels := make([]byte, 4*3*2)
	for i := range pixels {
		pixels[i] = 200
	}
	if _, err := w.WritePixels(pixels, 4, 3); err == nil {
		t.Fatal("expected size mismatch for 4x3")
	}

	name, err := w.WritePixels(pixels, 3, 2)
	if err != nil {
		t.Fatalf("WritePixels: %v", err)
	}

	f, err := os.Open(name)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 3 || b.Dy() != 2 {
		t.Errorf("bounds = %v, want 3x2", b)
	}
}
