// Package anim plays skeletal motion clips and arbitrates which clip is active.
package anim

import (
	"github.com/Faultbox/robostage/pkg/math"
)

// Track animates one bone. Rotations and Translations are either empty or
// aligned with Times, which must be ascending and in seconds.
type Track struct {
	Bone         string
	Times        []float32
	Rotations    []math.Quat
	Translations []math.Vec3
}

// Clip is a named, time-parameterized set of bone tracks.
type Clip struct {
	Name     string
	Duration float32 // Seconds; derived from the last key when zero
	Tracks   []Track
}

// NewClip creates a clip and fills in a missing duration from its keys.
func NewClip(name string, duration float32, tracks []Track) *Clip {
	c := &Clip{Name: name, Duration: duration, Tracks: tracks}
	if c.Duration <= 0 {
		for i := range tracks {
			if n := len(tracks[i].Times); n > 0 && tracks[i].Times[n-1] > c.Duration {
				c.Duration = tracks[i].Times[n-1]
			}
		}
	}
	return c
}

// Without returns a copy of the clip with tracks for the named bones removed.
func (c *Clip) Without(bones ...string) *Clip {
	drop := make(map[string]bool, len(bones))
	for _, b := range bones {
		if b != "" {
			drop[b] = true
		}
	}
	out := &Clip{Name: c.Name, Duration: c.Duration, Tracks: make([]Track, 0, len(c.Tracks))}
	for _, t := range c.Tracks {
		if !drop[t.Bone] {
			out.Tracks = append(out.Tracks, t)
		}
	}
	return out
}

// HasTrack reports whether the clip animates the bone.
func (c *Clip) HasTrack(bone string) bool {
	for i := range c.Tracks {
		if c.Tracks[i].Bone == bone {
			return true
		}
	}
	return false
}

// keySpan finds the keys surrounding t and the blend factor between them.
func keySpan(times []float32, t float32) (i0, i1 int, f float32) {
	if len(times) == 0 {
		return 0, 0, 0
	}
	if t <= times[0] {
		return 0, 0, 0
	}
	last := len(times) - 1
	if t >= times[last] {
		return last, last, 0
	}
	for i := 1; i <= last; i++ {
		if times[i] > t {
			i0, i1 = i-1, i
			break
		}
	}
	if span := times[i1] - times[i0]; span > 0 {
		f = (t - times[i0]) / span
	}
	return i0, i1, f
}

// SampleRotation returns the rotation at time t. ok is false for tracks
// without rotation keys.
func (tr *Track) SampleRotation(t float32) (q math.Quat, ok bool) {
	if len(tr.Rotations) == 0 || len(tr.Rotations) != len(tr.Times) {
		return math.QuatIdentity(), false
	}
	i0, i1, f := keySpan(tr.Times, t)
	if i0 == i1 {
		return tr.Rotations[i0], true
	}
	return tr.Rotations[i0].Slerp(tr.Rotations[i1], f), true
}

// SampleTranslation returns the translation at time t. ok is false for tracks
// without translation keys.
func (tr *Track) SampleTranslation(t float32) (v math.Vec3, ok bool) {
	if len(tr.Translations) == 0 || len(tr.Translations) != len(tr.Times) {
		return math.Vec3{}, false
	}
	i0, i1, f := keySpan(tr.Times, t)
	if i0 == i1 {
		return tr.Translations[i0], true
	}
	return tr.Translations[i0].Lerp(tr.Translations[i1], f), true
}
