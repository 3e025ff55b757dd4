// Package lookat turns the robot's head and neck toward the aim point.
package lookat

import (
	"github.com/Faultbox/robostage/internal/engine/character"
	"github.com/Faultbox/robostage/internal/engine/input"
	"github.com/Faultbox/robostage/internal/engine/skeleton"
	"github.com/Faultbox/robostage/pkg/math"
)

// Config tunes the rig. Angles are radians, rates 1/s. Positive pitch looks down.
type Config struct {
	YawLimit        float32
	PitchUp         float32 // Most upward pitch (negative)
	PitchDown       float32 // Most downward pitch (positive)
	TargetRate      float32 // Attention lag on the clamped target
	HeadRate        float32 // Head inertia toward the smoothed target
	NeckShare       float32 // Fraction of head rotation passed to the neck
	NeckRate        float32
	FacingThreshold float32 // |rotationY| below this counts as facing the camera
}

// DefaultConfig returns the tuning used by the robot.
func DefaultConfig() Config {
	return Config{
		YawLimit:        1.0,
		PitchUp:         -0.5,
		PitchDown:       0.6,
		TargetRate:      4,
		HeadRate:        10,
		NeckShare:       0.32,
		NeckRate:        3,
		FacingThreshold: 0.35,
	}
}

// Angles is a yaw/pitch pair.
type Angles struct {
	Yaw, Pitch float32
}

// Rig drives the head and optional neck bone. Its smoothed state persists
// across ticks.
type Rig struct {
	cfg  Config
	head int
	neck int // -1 when the skeleton has no neck

	target Angles // First filter: smoothed clamped target
	headA  Angles // Second filter: head bone
	neckA  Angles
}

// New creates a rig for the given bone indices. Pass -1 for a missing neck.
func New(cfg Config, head, neck int) *Rig {
	return &Rig{cfg: cfg, head: head, neck: neck}
}

// Head returns the smoothed head angles.
func (r *Rig) Head() Angles { return r.headA }

// Neck returns the smoothed neck angles.
func (r *Rig) Neck() Angles { return r.neckA }

// Target returns the smoothed target angles.
func (r *Rig) Target() Angles { return r.target }

// Clamp limits a desired head orientation to the natural glance range.
func (r *Rig) Clamp(a Angles) Angles {
	return Angles{
		Yaw:   math.Clamp(a.Yaw, -r.cfg.YawLimit, r.cfg.YawLimit),
		Pitch: math.Clamp(a.Pitch, r.cfg.PitchUp, r.cfg.PitchDown),
	}
}

// Desired returns the clamped head orientation for this tick. When the body
// faces the camera the signal maps linearly; otherwise the angle from the head
// to the aim point is measured and corrected for the body rotation.
func (r *Rig) Desired(sig input.ControlSignal, aim, headPos math.Vec3, bodyYaw float32) Angles {
	if !sig.HasInput {
		return Angles{}
	}
	if character.FacesCamera(bodyYaw, r.cfg.FacingThreshold) {
		return r.Clamp(Angles{
			Yaw:   sig.X * r.cfg.YawLimit,
			Pitch: -sig.Y * r.cfg.PitchDown,
		})
	}

	d := aim.Sub(headPos)
	horizontal := d.XZ().Length()
	return r.Clamp(Angles{
		Yaw:   math.WrapAngle(math.Atan2(d.X, d.Z) - bodyYaw),
		Pitch: math.Atan2(-d.Y, horizontal),
	})
}

// Update runs both filters toward desired and the neck filter toward its share
// of the head.
func (r *Rig) Update(desired Angles, dt float32) {
	desired = r.Clamp(desired)
	r.target.Yaw = math.Damp(r.target.Yaw, desired.Yaw, r.cfg.TargetRate, dt)
	r.target.Pitch = math.Damp(r.target.Pitch, desired.Pitch, r.cfg.TargetRate, dt)

	r.headA.Yaw = math.Damp(r.headA.Yaw, r.target.Yaw, r.cfg.HeadRate, dt)
	r.headA.Pitch = math.Damp(r.headA.Pitch, r.target.Pitch, r.cfg.HeadRate, dt)

	if r.neck >= 0 {
		r.neckA.Yaw = math.Damp(r.neckA.Yaw, r.headA.Yaw*r.cfg.NeckShare, r.cfg.NeckRate, dt)
		r.neckA.Pitch = math.Damp(r.neckA.Pitch, r.headA.Pitch*r.cfg.NeckShare, r.cfg.NeckRate, dt)
	}
}

// Apply composes the smoothed angles onto the posed head and neck bones and
// refreshes world matrices. It must run after the clip pose is applied.
func (r *Rig) Apply(s *skeleton.Skeleton) {
	if r.head < 0 || r.head >= len(s.Bones) {
		return
	}
	if r.neck >= 0 && r.neck < len(s.Bones) {
		b := &s.Bones[r.neck]
		b.Rotation = b.Rotation.Mul(math.QuatFromYawPitch(r.neckA.Yaw, r.neckA.Pitch))
	}
	b := &s.Bones[r.head]
	b.Rotation = b.Rotation.Mul(math.QuatFromYawPitch(r.headA.Yaw, r.headA.Pitch))
	s.UpdateWorld()
}

// Step is Desired, Update and Apply in order for one tick. The skeleton's
// world matrices must already reflect this tick's clip pose.
func (r *Rig) Step(s *skeleton.Skeleton, sig input.ControlSignal, aim math.Vec3, bodyYaw, dt float32) {
	if r.head < 0 || r.head >= len(s.Bones) {
		return
	}
	r.Update(r.Desired(sig, aim, s.WorldPosition(r.head), bodyYaw), dt)
	r.Apply(s)
}
