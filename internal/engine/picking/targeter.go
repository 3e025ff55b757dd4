package picking

import (
	"github.com/Faultbox/robostage/internal/engine/camera"
	"github.com/Faultbox/robostage/internal/engine/input"
	"github.com/Faultbox/robostage/pkg/math"
)

// Targeter projects the control signal onto the ground plane.
type Targeter struct {
	PlaneY float32 // Ground plane height

	// Depth window for ground hits.
	MinZ, MaxZ float32

	// Fallback point used when the ray misses the ground:
	// (signal.X*halfWidth, Baseline + signal.Y*Scale, 0).
	Baseline float32
	Scale    float32
}

// NewTargeter creates a targeter for a ground plane at y = 0.
func NewTargeter() *Targeter {
	return &Targeter{
		PlaneY:   0,
		MinZ:     -4,
		MaxZ:     6,
		Baseline: 1.2,
		Scale:    1.5,
	}
}

// Aim returns the world-space aim point for the signal. It never fails: a ray
// that is parallel to the ground or hits it behind the camera resolves to the
// fallback point. hit reports which of the two was used.
func (t *Targeter) Aim(sig input.ControlSignal, cam *camera.PerspectiveCamera, halfWidth float32) (aim math.Vec3, hit bool) {
	ray := NDCRay(sig.X, sig.Y, cam.ViewProjection().Inverse())
	if p, ok := ray.IntersectPlaneY(t.PlaneY); ok {
		p.X = math.Clamp(p.X, -halfWidth, halfWidth)
		p.Z = math.Clamp(p.Z, t.MinZ, t.MaxZ)
		return p, true
	}
	return t.Fallback(sig, halfWidth), false
}

// Fallback returns the synthetic aim point derived directly from the signal.
func (t *Targeter) Fallback(sig input.ControlSignal, halfWidth float32) math.Vec3 {
	return math.Vec3{
		X: math.Clamp(sig.X*halfWidth, -halfWidth, halfWidth),
		Y: t.Baseline + sig.Y*t.Scale,
		Z: 0,
	}
}
