// Package assets finds, decodes and caches robot models.
package assets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

var (
	// ErrNotFound is returned when no search path holds the requested file.
	ErrNotFound = errors.New("asset not found")
	// ErrMissingBone is returned when a model lacks a bone the rig requires.
	ErrMissingBone = errors.New("required bone missing")
	// ErrMissingClip is returned when a model lacks a required clip.
	ErrMissingClip = errors.New("required clip missing")
	// ErrInvalid is returned for structurally malformed model files.
	ErrInvalid = errors.New("invalid model")
)

// Manager loads files from a list of directories.
type Manager struct {
	dirs  []string
	cache *Cache
	mu    sync.RWMutex
}

// NewManager creates a new asset manager.
func NewManager() *Manager {
	return &Manager{
		cache: NewCache(),
	}
}

// AddSearchPath adds a directory to the manager.
// Directories are searched in reverse order (last added = highest priority).
func (m *Manager) AddSearchPath(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("opening search path %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("search path %s is not a directory", dir)
	}

	m.mu.Lock()
	m.dirs = append(m.dirs, dir)
	m.mu.Unlock()

	return nil
}

// SearchPaths returns the configured directories in priority order.
func (m *Manager) SearchPaths() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, 0, len(m.dirs))
	for i := len(m.dirs) - 1; i >= 0; i-- {
		out = append(out, m.dirs[i])
	}
	return out
}

// Load reads a file from the search paths. Absolute paths bypass the search.
func (m *Manager) Load(path string) ([]byte, error) {
	// Check cache first
	if data, ok := m.cache.Get(path); ok {
		return data, nil
	}

	if filepath.IsAbs(path) {
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
			}
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		m.cache.Set(path, data)
		return data, nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	// Search directories in reverse order
	for i := len(m.dirs) - 1; i >= 0; i-- {
		data, err := os.ReadFile(filepath.Join(m.dirs[i], filepath.FromSlash(path)))
		if err == nil {
			m.cache.Set(path, data)
			return data, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
}

// Close drops all search paths and cached data.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.dirs = nil
	m.cache.Clear()
}

// Cache is a simple in-memory cache for loaded assets.
type Cache struct {
	data map[string][]byte
	mu   sync.RWMutex

	// Stats
	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string][]byte),
	}
}

// Get retrieves an item from cache.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return data, ok
}

// Set stores an item in cache.
func (c *Cache) Set(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
}

// Clear clears the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string][]byte)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}
