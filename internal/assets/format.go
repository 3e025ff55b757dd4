package assets

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/robostage/internal/engine/anim"
	"github.com/Faultbox/robostage/internal/engine/skeleton"
	"github.com/Faultbox/robostage/pkg/math"
)

// modelFile is the YAML layout of a model. Vectors are [x, y, z], quaternions
// [x, y, z, w], times seconds.
type modelFile struct {
	Name      string                  `yaml:"name"`
	Bones     []boneFile              `yaml:"bones"`
	Parts     []partFile              `yaml:"parts"`
	Materials map[string]materialFile `yaml:"materials"`
	Clips     []clipFile              `yaml:"clips"`
}

type boneFile struct {
	Name        string     `yaml:"name"`
	Parent      string     `yaml:"parent,omitempty"`
	Translation [3]float32 `yaml:"translation"`
	Rotation    []float32  `yaml:"rotation,omitempty"`
}

type partFile struct {
	Name     string     `yaml:"name"`
	Bone     string     `yaml:"bone"`
	Shape    Shape      `yaml:"shape"`
	Size     [3]float32 `yaml:"size"`
	Offset   [3]float32 `yaml:"offset"`
	Material string     `yaml:"material"`
}

type materialFile struct {
	Color     [3]float32 `yaml:"color"`
	Emissive  [3]float32 `yaml:"emissive"`
	Intensity float32    `yaml:"intensity"`
	Metalness float32    `yaml:"metalness"`
	Roughness float32    `yaml:"roughness"`
}

type clipFile struct {
	Name     string      `yaml:"name"`
	Duration float32     `yaml:"duration"`
	Tracks   []trackFile `yaml:"tracks"`
}

type trackFile struct {
	Bone         string       `yaml:"bone"`
	Times        []float32    `yaml:"times"`
	Rotations    [][4]float32 `yaml:"rotations,omitempty"`
	Translations [][3]float32 `yaml:"translations,omitempty"`
}

// attachmentFile is the YAML layout of an attachment. Parts ignore their bone
// field; everything rides on Bone.
type attachmentFile struct {
	Name      string                  `yaml:"name"`
	Bone      string                  `yaml:"bone"`
	Parts     []partFile              `yaml:"parts"`
	Materials map[string]materialFile `yaml:"materials"`
}

func vec(a [3]float32) math.Vec3 {
	return math.Vec3{X: a[0], Y: a[1], Z: a[2]}
}

func (f materialFile) material() Material {
	return Material(f)
}

// DecodeModel parses a YAML model.
func DecodeModel(data []byte) (*Model, error) {
	var f modelFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if f.Name == "" {
		f.Name = "model"
	}

	bones := make([]skeleton.Bone, 0, len(f.Bones))
	index := make(map[string]int, len(f.Bones))
	for i, b := range f.Bones {
		parent := skeleton.NoParent
		if b.Parent != "" {
			p, ok := index[b.Parent]
			if !ok {
				return nil, fmt.Errorf("%w: bone %q parent %q is not declared before it", ErrInvalid, b.Name, b.Parent)
			}
			parent = p
		}
		rest := math.QuatIdentity()
		if len(b.Rotation) != 0 {
			if len(b.Rotation) != 4 {
				return nil, fmt.Errorf("%w: bone %q rotation needs 4 components", ErrInvalid, b.Name)
			}
			rest = math.Quat{X: b.Rotation[0], Y: b.Rotation[1], Z: b.Rotation[2], W: b.Rotation[3]}.Normalize()
		}
		bones = append(bones, skeleton.Bone{
			Name:            b.Name,
			Parent:          parent,
			RestTranslation: vec(b.Translation),
			RestRotation:    rest,
		})
		index[b.Name] = i
	}
	skel, err := skeleton.New(bones)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	clips := make([]*anim.Clip, 0, len(f.Clips))
	for _, c := range f.Clips {
		tracks := make([]anim.Track, 0, len(c.Tracks))
		for _, t := range c.Tracks {
			if len(t.Rotations) != 0 && len(t.Rotations) != len(t.Times) {
				return nil, fmt.Errorf("%w: clip %q bone %q has %d rotations for %d times", ErrInvalid, c.Name, t.Bone, len(t.Rotations), len(t.Times))
			}
			if len(t.Translations) != 0 && len(t.Translations) != len(t.Times) {
				return nil, fmt.Errorf("%w: clip %q bone %q has %d translations for %d times", ErrInvalid, c.Name, t.Bone, len(t.Translations), len(t.Times))
			}
			tr := anim.Track{Bone: t.Bone, Times: t.Times}
			for _, q := range t.Rotations {
				tr.Rotations = append(tr.Rotations, math.Quat{X: q[0], Y: q[1], Z: q[2], W: q[3]}.Normalize())
			}
			for _, v := range t.Translations {
				tr.Translations = append(tr.Translations, vec(v))
			}
			tracks = append(tracks, tr)
		}
		clips = append(clips, anim.NewClip(c.Name, c.Duration, tracks))
	}

	m, err := newModel(f.Name, skel, clips)
	if err != nil {
		return nil, err
	}
	for name, mat := range f.Materials {
		m.Materials[name] = mat.material()
	}
	m.Parts, err = decodeParts(f.Parts, func(p partFile) (int, error) {
		i, ok := skel.Index(p.Bone)
		if !ok {
			return 0, fmt.Errorf("%w: part %q references unknown bone %q", ErrInvalid, p.Name, p.Bone)
		}
		return i, nil
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

// DecodeAttachment parses a YAML attachment. The returned attachment is not
// yet bound; pass it and its bone hint to Model.Attach.
func DecodeAttachment(data []byte) (*Attachment, string, error) {
	var f attachmentFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if f.Bone == "" {
		f.Bone = "head"
	}
	a := &Attachment{Name: f.Name, Materials: make(map[string]Material, len(f.Materials))}
	for name, mat := range f.Materials {
		a.Materials[name] = mat.material()
	}
	parts, err := decodeParts(f.Parts, func(partFile) (int, error) { return 0, nil })
	if err != nil {
		return nil, "", err
	}
	a.Parts = parts
	return a, f.Bone, nil
}

func decodeParts(in []partFile, bone func(partFile) (int, error)) ([]Part, error) {
	out := make([]Part, 0, len(in))
	for _, p := range in {
		switch p.Shape {
		case ShapeBox, ShapeSphere, ShapeCylinder:
		default:
			return nil, fmt.Errorf("%w: part %q has unknown shape %q", ErrInvalid, p.Name, p.Shape)
		}
		idx, err := bone(p)
		if err != nil {
			return nil, err
		}
		out = append(out, Part{
			Name:     p.Name,
			Bone:     idx,
			Shape:    p.Shape,
			Size:     vec(p.Size),
			Offset:   vec(p.Offset),
			Material: p.Material,
		})
	}
	return out, nil
}
