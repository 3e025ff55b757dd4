package scene

import (
	"github.com/Faultbox/robostage/internal/assets"
	"github.com/Faultbox/robostage/internal/engine/character"
	"github.com/Faultbox/robostage/internal/engine/driver"
	"github.com/Faultbox/robostage/internal/engine/model"
	"github.com/Faultbox/robostage/internal/engine/particles"
	"github.com/Faultbox/robostage/pkg/math"
)

// ShapePlane is the ground primitive. Parts never use it.
const ShapePlane assets.Shape = "plane"

// DrawItem is one primitive ready to draw.
type DrawItem struct {
	Shape     assets.Shape
	Model     math.Mat4
	Normal    math.Mat4
	Color     [3]float32
	Emissive  [3]float32 // Already scaled by intensity
	Metalness float32
	Roughness float32
}

// BuildDrawList appends a draw item for every part of the frame's model,
// body first, then the attachment. Glowing materials take their intensity
// from the frame's flourish.
func BuildDrawList(f *driver.Frame, dst []DrawItem) []DrawItem {
	dst = dst[:0]
	if f == nil || f.Model == nil {
		return dst
	}
	m := f.Model
	bones := m.Skeleton.Bones

	emit := func(p assets.Part, mats map[string]assets.Material) {
		if p.Bone < 0 || p.Bone >= len(bones) {
			return
		}
		mat := mats[p.Material]
		mw := model.PartMatrix(bones[p.Bone].World, p.Offset, p.Size)
		intensity := glowIntensity(p.Material, mat.Intensity, f.Glow)
		dst = append(dst, DrawItem{
			Shape:     p.Shape,
			Model:     mw,
			Normal:    mw.NormalMatrix(),
			Color:     mat.Color,
			Emissive:  scale3(mat.Emissive, intensity),
			Metalness: mat.Metalness,
			Roughness: mat.Roughness,
		})
	}

	for _, p := range m.Parts {
		emit(p, m.Materials)
	}
	if a := m.Attachment; a != nil {
		for _, p := range a.Parts {
			emit(p, a.Materials)
		}
	}
	return dst
}

// glowIntensity picks the animated intensity for the pulsing materials. A
// zero flourish value keeps the material's own intensity.
func glowIntensity(material string, base float32, g character.FlourishFrame) float32 {
	var v float32
	switch material {
	case assets.MaterialEye:
		v = g.EyeGlow
	case assets.MaterialEyeRing:
		v = g.RingGlow
	case assets.MaterialAntenna:
		v = g.AntennaGlow
	}
	if v == 0 {
		return base
	}
	return v
}

func scale3(c [3]float32, s float32) [3]float32 {
	return [3]float32{c[0] * s, c[1] * s, c[2] * s}
}

// ParticleFloats is the per-instance layout: a model matrix then a color.
const ParticleFloats = 16 + 3

// ParticleInstances appends one instance record per particle: its model
// matrix (box stretched along the velocity) then its color.
func ParticleInstances(w *particles.Whirlpool, dst []float32) []float32 {
	dst = dst[:0]
	if w == nil {
		return dst
	}
	for i := range w.Particles {
		p := &w.Particles[i]
		m := math.Translate(p.Position.X, p.Position.Y, p.Position.Z).
			Mul(p.Heading().ToMat4()).
			Mul(math.Scale(p.Scale, p.Scale, p.ScaleZ))
		dst = append(dst, m[:]...)
		dst = append(dst, p.Color[:]...)
	}
	return dst
}
