package assets

import (
	"fmt"

	"github.com/Faultbox/robostage/internal/engine/anim"
	"github.com/Faultbox/robostage/internal/engine/skeleton"
	"github.com/Faultbox/robostage/pkg/math"
)

// Shape is the primitive a part is drawn with.
type Shape string

const (
	ShapeBox      Shape = "box"
	ShapeSphere   Shape = "sphere"
	ShapeCylinder Shape = "cylinder"
)

// Material is a flat PBR-ish surface description.
type Material struct {
	Color     [3]float32
	Emissive  [3]float32
	Intensity float32 // Emissive intensity; animated for glowing parts
	Metalness float32
	Roughness float32
}

// Part is a primitive rigidly attached to a bone. Size is the full extent for
// boxes, the per-axis radius for spheres and (radius, height, radius) for
// cylinders.
type Part struct {
	Name     string
	Bone     int
	Shape    Shape
	Size     math.Vec3
	Offset   math.Vec3
	Material string
}

// Attachment is a separate set of parts parented onto one bone, with its own
// materials.
type Attachment struct {
	Name      string
	Bone      int
	Parts     []Part
	Materials map[string]Material
}

// Model is a loaded robot: skeleton, clips, body parts and an optional attachment.
type Model struct {
	Name       string
	Skeleton   *skeleton.Skeleton
	Clips      *anim.ClipTable
	Parts      []Part
	Materials  map[string]Material
	Attachment *Attachment

	Head int // Bone index driven by the look-at rig
	Neck int // -1 when absent
	Body int // Bone that leans with the stride; -1 when absent
}

// Gestures returns the one-shot clip names, everything except the gait clips.
func (m *Model) Gestures() []string {
	var out []string
	for _, name := range m.Clips.Names() {
		switch name {
		case anim.ClipIdle, anim.ClipWalking, anim.ClipRunning:
		default:
			out = append(out, name)
		}
	}
	return out
}

// Attach binds an attachment to the bone matching hint.
func (m *Model) Attach(a *Attachment, hint string) error {
	idx, ok := m.Skeleton.Find(hint)
	if !ok {
		return fmt.Errorf("%w: attachment %q wants %q", ErrMissingBone, a.Name, hint)
	}
	a.Bone = idx
	for i := range a.Parts {
		a.Parts[i].Bone = idx
	}
	m.Attachment = a
	return nil
}

// newModel resolves the rig bones, builds the clip table with the rig bones
// stripped and checks the required clips.
func newModel(name string, skel *skeleton.Skeleton, clips []*anim.Clip) (*Model, error) {
	head, ok := skel.Find("head")
	if !ok {
		return nil, fmt.Errorf("%w: %s has no head bone", ErrMissingBone, name)
	}
	neck, ok := skel.Find("neck")
	if !ok {
		neck = -1
	}

	body, ok := skel.Find("body")
	if !ok {
		if body, ok = skel.Find("spine"); !ok {
			body = -1
		}
	}

	reserved := []string{skel.Bones[head].Name}
	if neck >= 0 {
		reserved = append(reserved, skel.Bones[neck].Name)
	}
	table := anim.NewClipTable(clips, reserved...)
	if !table.Has(anim.ClipIdle) {
		return nil, fmt.Errorf("%w: %s has no %s clip", ErrMissingClip, name, anim.ClipIdle)
	}

	return &Model{
		Name:      name,
		Skeleton:  skel,
		Clips:     table,
		Materials: make(map[string]Material),
		Head:      head,
		Neck:      neck,
		Body:      body,
	}, nil
}
