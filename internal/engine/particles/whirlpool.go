// Package particles simulates the whirlpool backdrop: boxes that spiral
// toward the cursor's projection on the z = 0 plane.
package particles

import (
	"math/rand/v2"

	"github.com/Faultbox/robostage/internal/engine/camera"
	"github.com/Faultbox/robostage/internal/engine/input"
	"github.com/Faultbox/robostage/internal/engine/picking"
	"github.com/Faultbox/robostage/pkg/math"
)

// Particle is one instanced box. Positions are in backdrop units.
type Particle struct {
	Position   math.Vec3
	Velocity   math.Vec3
	Scale      float32 // X/Y scale
	ScaleZ     float32 // Length along the velocity
	Attraction float32 // Acceleration toward the target per reference frame
	VLimit     float32 // Per-component speed limit
	Color      [3]float32
}

// referenceRate is the frame rate the per-frame constants were tuned for.
const referenceRate = 60

// Whirlpool owns the particles and the backdrop camera they are seen through.
type Whirlpool struct {
	Particles []Particle
	Target    math.Vec3
	Camera    *camera.PerspectiveCamera
}

// NewWhirlpool spawns count particles in a 200-unit cube. The same seed always
// produces the same swarm.
func NewWhirlpool(count int, seed uint64) *Whirlpool {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	spread := func(r float32) float32 { return (rng.Float32() - 0.5) * r }
	between := func(lo, hi float32) float32 { return lo + rng.Float32()*(hi-lo) }

	w := &Whirlpool{
		Particles: make([]Particle, count),
		Camera: &camera.PerspectiveCamera{
			Position: math.Vec3{Z: 200},
			FovY:     math.Radians(50),
			Aspect:   16.0 / 9.0,
			Near:     0.1,
			Far:      2000,
		},
	}
	for i := range w.Particles {
		w.Particles[i] = Particle{
			Position:   math.Vec3{X: spread(200), Y: spread(200), Z: spread(200)},
			Velocity:   math.Vec3{X: spread(2), Y: spread(2), Z: spread(2)},
			Scale:      between(0.2, 1),
			ScaleZ:     between(0.1, 1),
			Attraction: 0.03 + between(-0.01, 0.01),
			VLimit:     1.2 + between(-0.1, 0.1),
			Color:      [3]float32{rng.Float32(), rng.Float32(), rng.Float32()},
		}
	}
	return w
}

// SetViewport updates the backdrop camera's aspect.
func (w *Whirlpool) SetViewport(width, height int) {
	w.Camera.SetViewport(width, height)
}

// Aim moves the target to where the signal's ray meets z = 0. The target is
// kept when there is no input or the ray runs parallel to the plane.
func (w *Whirlpool) Aim(sig input.ControlSignal) {
	if !sig.HasInput {
		return
	}
	ray := picking.NDCRay(sig.X, sig.Y, w.Camera.ViewProjection().Inverse())
	if p, ok := ray.IntersectPlaneZ(0); ok {
		w.Target = p
	}
}

// Update advances every particle by dt seconds.
func (w *Whirlpool) Update(dt float32) {
	if dt <= 0 {
		return
	}
	k := dt * referenceRate
	for i := range w.Particles {
		p := &w.Particles[i]
		pull := w.Target.Sub(p.Position).Normalize().Scale(p.Attraction * k)
		p.Velocity = p.Velocity.Add(pull)
		p.Velocity.X = math.Clamp(p.Velocity.X, -p.VLimit, p.VLimit)
		p.Velocity.Y = math.Clamp(p.Velocity.Y, -p.VLimit, p.VLimit)
		p.Velocity.Z = math.Clamp(p.Velocity.Z, -p.VLimit, p.VLimit)
		p.Position = p.Position.Add(p.Velocity.Scale(k))
	}
}

// Heading returns the rotation that points a particle's +Z along its velocity.
func (p *Particle) Heading() math.Quat {
	v := p.Velocity
	if v.Length() < 1e-6 {
		return math.QuatIdentity()
	}
	yaw := math.Atan2(v.X, v.Z)
	pitch := math.Atan2(-v.Y, v.XZ().Length())
	return math.QuatFromYawPitch(yaw, pitch)
}
