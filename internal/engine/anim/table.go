package anim

import (
	"sort"
)

// ClipTable maps clip names to clips. Bones listed as reserved at construction
// never appear in any stored clip; those bones are driven procedurally.
type ClipTable struct {
	clips    map[string]*Clip
	reserved []string
}

// NewClipTable builds a table, stripping tracks for the reserved bones.
// Later clips with a duplicate name replace earlier ones.
func NewClipTable(clips []*Clip, reserved ...string) *ClipTable {
	t := &ClipTable{
		clips:    make(map[string]*Clip, len(clips)),
		reserved: reserved,
	}
	for _, c := range clips {
		t.Add(c)
	}
	return t
}

// Add inserts a clip with the reserved bone tracks stripped.
func (t *ClipTable) Add(c *Clip) {
	if c == nil || c.Name == "" {
		return
	}
	t.clips[c.Name] = c.Without(t.reserved...)
}

// Get returns the named clip.
func (t *ClipTable) Get(name string) (*Clip, bool) {
	c, ok := t.clips[name]
	return c, ok
}

// Has reports whether the named clip exists.
func (t *ClipTable) Has(name string) bool {
	_, ok := t.clips[name]
	return ok
}

// Len returns the number of clips.
func (t *ClipTable) Len() int {
	return len(t.clips)
}

// Names returns the clip names sorted.
func (t *ClipTable) Names() []string {
	names := make([]string, 0, len(t.clips))
	for n := range t.clips {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
