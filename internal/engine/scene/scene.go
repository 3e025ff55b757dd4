// Package scene turns a driver frame into everything the GPU needs for it:
// lit primitives for the robot, the ground, the lights and the particle
// instances. It makes no GL calls.
package scene

import (
	"github.com/Faultbox/robostage/internal/assets"
	"github.com/Faultbox/robostage/internal/engine/driver"
	"github.com/Faultbox/robostage/internal/engine/lighting"
	"github.com/Faultbox/robostage/internal/engine/model"
	"github.com/Faultbox/robostage/pkg/math"
)

// Config contains scene configuration options.
type Config struct {
	GroundExtent  float32
	GroundY       float32
	GroundOpacity float32
	Exposure      float32
}

// DefaultConfig returns the stage look: a dark, glossy 30x30 floor.
func DefaultConfig() Config {
	return Config{
		GroundExtent:  30,
		GroundY:       0,
		GroundOpacity: 0.6,
		Exposure:      1.2,
	}
}

// Scene is the per-frame render input. Build overwrites it in place so the
// slices are reused across frames.
type Scene struct {
	Config Config
	Lights *lighting.Stage

	ViewProj  math.Mat4
	CameraPos [3]float32

	// LightSpace projects world positions into the key light's shadow map.
	LightSpace math.Mat4

	// Empty while the model is loading.
	Items  []DrawItem
	Ground DrawItem

	// Zero when the backdrop is disabled.
	BackdropViewProj math.Mat4
	Particles        []float32
	ParticleCount    int
}

var groundMaterial = assets.Material{
	Color:     [3]float32{0.031, 0.031, 0.031},
	Metalness: 0.8,
	Roughness: 0.4,
}

// New creates a scene.
func New(cfg Config) *Scene {
	ground := model.GroundMatrix(cfg.GroundExtent, cfg.GroundY)
	lights := lighting.NewStage()
	return &Scene{
		Config:     cfg,
		Lights:     lights,
		LightSpace: lights.Shadow.LightMatrix(),

		Ground: DrawItem{
			Shape:     ShapePlane,
			Model:     ground,
			Normal:    ground.NormalMatrix(),
			Color:     groundMaterial.Color,
			Metalness: groundMaterial.Metalness,
			Roughness: groundMaterial.Roughness,
		},
	}
}

// Build fills the scene from f.
func (s *Scene) Build(f *driver.Frame) {
	cam := f.Camera
	s.ViewProj = cam.ViewProjection()
	s.CameraPos = cam.Position.Array()

	s.Items = BuildDrawList(f, s.Items)
	if m := f.Model; m != nil && m.Head >= 0 {
		head := m.Skeleton.WorldPosition(m.Head)
		s.Lights.Follow(head, f.Pose.Position, f.Glow.EyeGlow)
	} else {
		s.Lights.Points.Clear()
	}

	s.Particles = ParticleInstances(f.Whirlpool, s.Particles)
	s.ParticleCount = len(s.Particles) / ParticleFloats
	if f.Whirlpool != nil {
		s.BackdropViewProj = f.Whirlpool.Camera.ViewProjection()
	}
}
