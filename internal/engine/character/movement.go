package character

import (
	"github.com/Faultbox/robostage/internal/engine/input"
	"github.com/Faultbox/robostage/pkg/math"
)

// Locomotion owns the actor pose and advances it once per tick.
type Locomotion struct {
	cfg  Config
	pose Pose
	gait Gait
}

// NewLocomotion creates a controller with the actor at the origin facing the camera.
func NewLocomotion(cfg Config) *Locomotion {
	return &Locomotion{
		cfg:  cfg,
		pose: Pose{Facing: 1},
	}
}

// Pose returns the current actor pose.
func (l *Locomotion) Pose() Pose {
	return l.pose
}

// Gait returns the gait selected on the last update.
func (l *Locomotion) Gait() Gait {
	return l.gait
}

// Place moves the actor without animating, clamped to the bound.
func (l *Locomotion) Place(x, halfWidth float32) {
	l.pose.Position.X = math.Clamp(x, -halfWidth, halfWidth)
	l.pose.Speed = 0
	l.gait = GaitIdle
}

// TargetX maps the control signal onto the travel axis. Before the first input
// event the actor holds its current position.
func TargetX(sig input.ControlSignal, halfWidth, current float32) float32 {
	if !sig.HasInput {
		return current
	}
	return math.Clamp(sig.X*halfWidth, -halfWidth, halfWidth)
}

// Update advances the pose toward targetX by dt seconds and returns the new gait.
func (l *Locomotion) Update(targetX, halfWidth, dt float32) Gait {
	p := &l.pose
	delta := targetX - p.Position.X
	dist := math.Abs(delta)

	var targetSpeed float32
	if dist > l.cfg.Deadzone {
		targetSpeed = dist * l.cfg.SpeedGain
		if targetSpeed > l.cfg.SpeedCap {
			targetSpeed = l.cfg.SpeedCap
		}
	}
	p.Speed = math.Damp(p.Speed, targetSpeed, l.cfg.SpeedRate, dt)

	l.gait = SelectGait(p.Speed, l.cfg.MoveEpsilon, l.cfg.RunThreshold)
	if l.gait != GaitIdle && dist > 0 {
		step := p.Speed * dt
		if step > dist {
			step = dist
		}
		dir := math.Sign(delta)
		p.Position.X += dir * step
		p.Facing = dir
	}
	p.Position.X = math.Clamp(p.Position.X, -halfWidth, halfWidth)

	p.RotationY = math.DampAngle(p.RotationY, TargetRotation(l.gait, p.Facing), l.cfg.TurnRate, dt)
	return l.gait
}

// SelectGait classifies a speed. Speeds at or below epsilon are idle.
func SelectGait(speed, epsilon, runThreshold float32) Gait {
	switch {
	case speed <= epsilon:
		return GaitIdle
	case speed > runThreshold:
		return GaitRun
	default:
		return GaitWalk
	}
}
