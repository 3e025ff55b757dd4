// Package lighting describes the lights around the robot: a fixed key and
// fill pair plus glows that follow the rig.
package lighting

import (
	"github.com/Faultbox/robostage/pkg/math"
)

// Directional is a light infinitely far away.
type Directional struct {
	// Direction points from the scene toward the light.
	Direction [3]float32
	Color     [3]float32
	Intensity float32
}

// FromPosition makes a directional light shining from pos toward the origin.
func FromPosition(pos math.Vec3, color [3]float32, intensity float32) Directional {
	return Directional{Direction: pos.Normalize().Array(), Color: color, Intensity: intensity}
}

// Radiance returns the color scaled by intensity.
func (d Directional) Radiance() [3]float32 {
	return [3]float32{d.Color[0] * d.Intensity, d.Color[1] * d.Intensity, d.Color[2] * d.Intensity}
}

var glowColor = [3]float32{0, 0.898, 1}

// Stage is the full light setup for one frame.
type Stage struct {
	Ambient [3]float32
	Key     Directional
	Fill    Directional
	Points  *PointLightBuffer

	// Shadow is the key light's shadow frustum.
	Shadow ShadowCamera
}

// NewStage returns the default studio setup: a white key from above right,
// a dim blue fill from behind left and soft white ambient.
func NewStage() *Stage {
	shadow := DefaultShadowCamera()
	return &Stage{
		Ambient: [3]float32{0.5, 0.5, 0.5},
		Key:     FromPosition(shadow.Position, [3]float32{1, 1, 1}, 1.2),
		Fill:    FromPosition(math.Vec3{X: -3, Y: 5, Z: -5}, [3]float32{0.533, 0.533, 1}, 0.3),
		Points:  NewPointLightBuffer(),
		Shadow:  shadow,
	}
}

// Follow places the glow lights for this frame: one in front of the head
// pulsing with the eyes, one on the ground under the robot.
func (s *Stage) Follow(head, root math.Vec3, eyeGlow float32) {
	s.Points.Clear()
	s.Points.AddLight(PointLight{
		Position:  [3]float32{head.X, head.Y, head.Z + 0.8},
		Color:     glowColor,
		Range:     6,
		Intensity: eyeGlow * 0.6,
	})
	s.Points.AddLight(PointLight{
		Position:  [3]float32{root.X, 0.05, root.Z},
		Color:     glowColor,
		Range:     4,
		Intensity: 0.5,
	})
}
