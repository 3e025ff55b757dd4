package character

import (
	"github.com/Faultbox/robostage/pkg/math"
)

// Flourish is the procedural motion layered over the baked clips: a bob while
// walking, breathing while idle, a forward lean and the glow pulses.
type Flourish struct {
	phase float32
	lean  float32
}

// FlourishFrame is the procedural output for one tick.
type FlourishFrame struct {
	BodyY       float32 // Root height offset
	Lean        float32 // Body pitch (radians, forward positive)
	EyeGlow     float32 // Eye emissive intensity
	RingGlow    float32 // Eye ring emissive intensity
	AntennaGlow float32 // Antenna tip emissive intensity
}

const (
	walkBob      = 0.04
	breathBob    = 0.025
	breathRate   = 1.5
	movingLean   = 0.08
	leanRate     = 3.0
	eyeBase      = 2.5
	eyeSwing     = 0.8
	eyeRate      = 4.0
	ringShare    = 0.6
	antennaBase  = 2.0
	antennaSwing = 1.5
	antennaRate  = 6.0
)

// Update advances the flourish. elapsed is the animation clock in seconds.
func (f *Flourish) Update(g Gait, speed, elapsed, dt float32) FlourishFrame {
	var out FlourishFrame

	if g != GaitIdle {
		f.phase += dt * (6 + speed*2)
		out.BodyY = math.Abs(math.Sin(f.phase*2)) * walkBob
		f.lean = math.Damp(f.lean, movingLean, leanRate, dt)
	} else {
		out.BodyY = math.Sin(elapsed*breathRate) * breathBob
		f.lean = math.Damp(f.lean, 0, leanRate, dt)
	}
	out.Lean = f.lean

	out.EyeGlow = eyeBase + math.Sin(elapsed*eyeRate)*eyeSwing
	out.RingGlow = out.EyeGlow * ringShare
	out.AntennaGlow = antennaBase + math.Sin(elapsed*antennaRate)*antennaSwing
	return out
}

// Phase returns the stride phase in radians.
func (f *Flourish) Phase() float32 {
	return f.phase
}
