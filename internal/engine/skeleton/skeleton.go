// Package skeleton holds a bone hierarchy and its world transforms.
package skeleton

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Faultbox/robostage/pkg/math"
)

var (
	// ErrDuplicateBone is returned when two bones share a name.
	ErrDuplicateBone = errors.New("duplicate bone name")
	// ErrParentOrder is returned when a bone references a parent that does not precede it.
	ErrParentOrder = errors.New("bone parent must precede child")
)

// NoParent marks a root bone.
const NoParent = -1

// Bone is one joint of the hierarchy. Translation and Rotation are the current
// local pose; World is refreshed by UpdateWorld.
type Bone struct {
	Name   string
	Parent int

	RestTranslation math.Vec3
	RestRotation    math.Quat

	Translation math.Vec3
	Rotation    math.Quat

	World math.Mat4
}

// Skeleton is a list of bones ordered parents-first.
type Skeleton struct {
	Bones []Bone
	Root  math.Mat4 // Actor transform applied above every root bone

	byName map[string]int
}

// New builds a skeleton. Bones must be ordered so every parent precedes its children.
func New(bones []Bone) (*Skeleton, error) {
	s := &Skeleton{
		Bones:  make([]Bone, len(bones)),
		Root:   math.Identity(),
		byName: make(map[string]int, len(bones)),
	}
	copy(s.Bones, bones)

	for i := range s.Bones {
		b := &s.Bones[i]
		if _, dup := s.byName[b.Name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateBone, b.Name)
		}
		if b.Parent != NoParent && (b.Parent < 0 || b.Parent >= i) {
			return nil, fmt.Errorf("%w: %q has parent %d", ErrParentOrder, b.Name, b.Parent)
		}
		if b.RestRotation == (math.Quat{}) {
			b.RestRotation = math.QuatIdentity()
		}
		s.byName[b.Name] = i
	}

	s.ResetPose()
	s.UpdateWorld()
	return s, nil
}

// Index returns the index of the bone with the exact name.
func (s *Skeleton) Index(name string) (int, bool) {
	i, ok := s.byName[name]
	return i, ok
}

// Find locates a bone by exact name first, then by case-insensitive substring.
// Assets name bones inconsistently ("Head", "mixamorig:Head", "head_jnt").
func (s *Skeleton) Find(hint string) (int, bool) {
	if i, ok := s.byName[hint]; ok {
		return i, true
	}
	lower := strings.ToLower(hint)
	for i := range s.Bones {
		name := strings.ToLower(s.Bones[i].Name)
		if name == lower {
			return i, true
		}
	}
	for i := range s.Bones {
		name := strings.ToLower(s.Bones[i].Name)
		if strings.Contains(name, lower) && !strings.Contains(name, "end") && !strings.Contains(name, "top") {
			return i, true
		}
	}
	return 0, false
}

// ResetPose puts every bone back at its rest transform.
func (s *Skeleton) ResetPose() {
	for i := range s.Bones {
		s.Bones[i].Translation = s.Bones[i].RestTranslation
		s.Bones[i].Rotation = s.Bones[i].RestRotation
	}
}

// UpdateWorld recomputes world matrices from the local pose.
func (s *Skeleton) UpdateWorld() {
	one := math.Vec3{X: 1, Y: 1, Z: 1}
	for i := range s.Bones {
		b := &s.Bones[i]
		local := math.Compose(b.Translation, b.Rotation, one)
		if b.Parent == NoParent {
			b.World = s.Root.Mul(local)
		} else {
			b.World = s.Bones[b.Parent].World.Mul(local)
		}
	}
}

// WorldPosition returns the world-space origin of bone i.
func (s *Skeleton) WorldPosition(i int) math.Vec3 {
	return s.Bones[i].World.Translation()
}

// Matrices copies the world matrices into dst, growing it as needed.
func (s *Skeleton) Matrices(dst []math.Mat4) []math.Mat4 {
	dst = dst[:0]
	for i := range s.Bones {
		dst = append(dst, s.Bones[i].World)
	}
	return dst
}

// Names returns the bone names in hierarchy order.
func (s *Skeleton) Names() []string {
	names := make([]string, len(s.Bones))
	for i := range s.Bones {
		names[i] = s.Bones[i].Name
	}
	return names
}
