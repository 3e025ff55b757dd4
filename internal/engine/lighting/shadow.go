package lighting

import (
	"github.com/Faultbox/robostage/pkg/math"
)

// ShadowCamera describes the key light's orthographic shadow frustum.
type ShadowCamera struct {
	// Position of the light; the camera looks at Target.
	Position math.Vec3
	Target   math.Vec3

	// HalfSize is half the width of the square orthographic frustum.
	HalfSize float32
	Near     float32
	Far      float32

	Resolution int32

	// Radius is the PCF filter radius in texels.
	Radius float32
}

// DefaultShadowCamera matches the key light: 20x20 units around the origin,
// a 1024 map and a soft 4 texel edge.
func DefaultShadowCamera() ShadowCamera {
	return ShadowCamera{
		Position:   math.Vec3{X: 5, Y: 10, Z: 7},
		HalfSize:   10,
		Near:       0.5,
		Far:        30,
		Resolution: 1024,
		Radius:     4,
	}
}

// LightMatrix returns the view-projection of the shadow camera.
func (c ShadowCamera) LightMatrix() math.Mat4 {
	dir := c.Target.Sub(c.Position).Normalize()

	up := math.Vec3{Y: 1}
	if math.Abs(dir.Y) > 0.99 {
		up = math.Vec3{Z: 1}
	}

	view := math.LookAt(c.Position, c.Target, up)
	proj := math.Ortho(-c.HalfSize, c.HalfSize, -c.HalfSize, c.HalfSize, c.Near, c.Far)
	return proj.Mul(view)
}

// TexelSize returns the size of one shadow map texel in UV space.
func (c ShadowCamera) TexelSize() float32 {
	if c.Resolution <= 0 {
		return 0
	}
	return 1 / float32(c.Resolution)
}
