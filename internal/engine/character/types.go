// Package character drives the robot across the stage: speed ramp, gait, facing
// and the procedural motion layered on top of the baked clips.
package character

import (
	"github.com/Faultbox/robostage/pkg/math"
)

// Gait is the locomotion state used to pick a motion clip.
type Gait int

const (
	GaitIdle Gait = iota
	GaitWalk
	GaitRun
)

// Clip names the motion clip that plays for each gait.
func (g Gait) Clip() string {
	switch g {
	case GaitWalk:
		return "Walking"
	case GaitRun:
		return "Running"
	default:
		return "Idle"
	}
}

func (g Gait) String() string {
	switch g {
	case GaitWalk:
		return "walk"
	case GaitRun:
		return "run"
	default:
		return "idle"
	}
}

// Pose is the actor's root state. Facing is +1 (screen right) or -1 (screen left).
type Pose struct {
	Position  math.Vec3
	Facing    float32
	RotationY float32
	Speed     float32
}

// Config tunes the locomotion controller. Rates are in 1/s.
type Config struct {
	Deadzone     float32 // Distance under which the actor stops chasing the target
	SpeedGain    float32 // Target speed per unit of remaining distance
	SpeedCap     float32 // Maximum target speed (units/s)
	SpeedRate    float32 // Speed ramp rate
	MoveEpsilon  float32 // Speeds at or below this count as standing still
	RunThreshold float32 // Speeds above this select the run gait
	TurnRate     float32 // Rotation easing rate
}

// DefaultConfig returns the tuning used by the robot.
func DefaultConfig() Config {
	return Config{
		Deadzone:     0.3,
		SpeedGain:    1.5,
		SpeedCap:     3.0,
		SpeedRate:    5.0,
		MoveEpsilon:  0.05,
		RunThreshold: 1.8,
		TurnRate:     8.0,
	}
}
