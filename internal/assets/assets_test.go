package assets

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestManagerSearchOrder(t *testing.T) {
	low := t.TempDir()
	high := t.TempDir()
	writeFile(t, low, "models/bot.yaml", "low")
	writeFile(t, low, "only-low.yaml", "low only")
	writeFile(t, high, "models/bot.yaml", "high")

	m := NewManager()
	for _, dir := range []string{low, high} {
		if err := m.AddSearchPath(dir); err != nil {
			t.Fatalf("AddSearchPath(%s): %v", dir, err)
		}
	}

	tests := []struct {
		path string
		want string
	}{
		{"models/bot.yaml", "high"},
		{"only-low.yaml", "low only"},
	}
	for _, tt := range tests {
		data, err := m.Load(tt.path)
		if err != nil {
			t.Fatalf("Load(%s): %v", tt.path, err)
		}
		if string(data) != tt.want {
			t.Errorf("Load(%s) = %q, want %q", tt.path, data, tt.want)
		}
	}

	if got := m.SearchPaths(); len(got) != 2 || got[0] != high {
		t.Errorf("SearchPaths() = %v, want high priority first", got)
	}
}

func TestManagerNotFound(t *testing.T) {
	m := NewManager()
	if err := m.AddSearchPath(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	_, err := m.Load("missing.yaml")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Load(missing) error = %v, want ErrNotFound", err)
	}

	_, err = m.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Load(absolute missing) error = %v, want ErrNotFound", err)
	}
}

func TestManagerAbsolutePath(t *testing.T) {
	path := writeFile(t, t.TempDir(), "abs.yaml", "absolute")
	m := NewManager()
	data, err := m.Load(path)
	if err != nil || string(data) != "absolute" {
		t.Errorf("Load(abs) = %q, %v", data, err)
	}
}

func TestAddSearchPathRejectsFiles(t *testing.T) {
	m := NewManager()
	file := writeFile(t, t.TempDir(), "file.txt", "x")
	if err := m.AddSearchPath(file); err == nil {
		t.Error("AddSearchPath(file) should fail")
	}
	if err := m.AddSearchPath(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("AddSearchPath(missing) should fail")
	}
}

func TestManagerCachesReads(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.yaml", "first")
	m := NewManager()
	if err := m.AddSearchPath(dir); err != nil {
		t.Fatal(err)
	}

	if _, err := m.Load("a.yaml"); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("second"), 0644); err != nil {
		t.Fatal(err)
	}
	data, _ := m.Load("a.yaml")
	if string(data) != "first" {
		t.Errorf("cached Load = %q, want first", data)
	}
	hits, misses := m.cache.Stats()
	if hits != 1 || misses != 1 {
		t.Errorf("Stats() = %d hits %d misses, want 1/1", hits, misses)
	}

	m.Close()
	if hits, misses := m.cache.Stats(); hits != 0 || misses != 0 {
		t.Error("Close should clear the cache")
	}
}
