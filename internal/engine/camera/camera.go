// Package camera provides the perspective camera and the screen-space bound derived from it.
package camera

import (
	"github.com/Faultbox/robostage/pkg/math"
)

// PerspectiveCamera looks from Position at Target.
type PerspectiveCamera struct {
	Position math.Vec3
	Target   math.Vec3

	FovY   float32 // Vertical field of view (radians)
	Aspect float32 // Width / height
	Near   float32
	Far    float32
}

// NewPerspectiveCamera creates a camera with the stage's default framing.
func NewPerspectiveCamera() *PerspectiveCamera {
	return &PerspectiveCamera{
		Position: math.Vec3{X: 0, Y: 2.8, Z: 7},
		Target:   math.Vec3{X: 0, Y: 1.2, Z: 0},
		FovY:     math.Radians(45),
		Aspect:   16.0 / 9.0,
		Near:     0.1,
		Far:      100,
	}
}

// SetViewport updates the aspect ratio. A zero height keeps the previous aspect.
func (c *PerspectiveCamera) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.Aspect = float32(width) / float32(height)
}

// ViewMatrix returns the view matrix for this camera.
func (c *PerspectiveCamera) ViewMatrix() math.Mat4 {
	up := math.Vec3{X: 0, Y: 1, Z: 0}
	return math.LookAt(c.Position, c.Target, up)
}

// ProjectionMatrix returns the perspective projection matrix.
func (c *PerspectiveCamera) ProjectionMatrix() math.Mat4 {
	return math.Perspective(c.FovY, c.Aspect, c.Near, c.Far)
}

// ViewProjection returns projection * view.
func (c *PerspectiveCamera) ViewProjection() math.Mat4 {
	return c.ProjectionMatrix().Mul(c.ViewMatrix())
}

// VisibleHalfWidth returns half the width of the view frustum at the given
// distance from the camera.
func (c *PerspectiveCamera) VisibleHalfWidth(distance float32) float32 {
	return math.Tan(c.FovY/2) * distance * c.Aspect
}

// Bounds is the horizontal range the actor may occupy.
type Bounds struct {
	// Margin scales the visible half width (1 = edge of the screen).
	Margin float32

	halfWidth float32
}

// NewBounds creates bounds for the camera's current aspect.
func NewBounds(cam *PerspectiveCamera, margin float32) *Bounds {
	b := &Bounds{Margin: margin}
	b.Recompute(cam)
	return b
}

// Recompute derives the half width from the camera's fov, aspect and its
// distance to the actor plane (z = 0). It is a pure function of those inputs
// and never negative.
func (b *Bounds) Recompute(cam *PerspectiveCamera) {
	distance := math.Abs(cam.Position.Z)
	b.halfWidth = max(cam.VisibleHalfWidth(distance)*b.Margin, 0)
}

// Resize applies a new viewport size to the camera and recomputes the bound.
func (b *Bounds) Resize(cam *PerspectiveCamera, width, height int) {
	cam.SetViewport(width, height)
	b.Recompute(cam)
}

// HalfWidth returns the current bound.
func (b *Bounds) HalfWidth() float32 {
	return b.halfWidth
}

// Clamp limits x to the bound.
func (b *Bounds) Clamp(x float32) float32 {
	return math.Clamp(x, -b.halfWidth, b.halfWidth)
}
