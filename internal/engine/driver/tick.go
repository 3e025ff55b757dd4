package driver

import (
	"errors"

	"go.uber.org/zap"

	"github.com/Faultbox/robostage/internal/assets"
	"github.com/Faultbox/robostage/internal/engine/anim"
	"github.com/Faultbox/robostage/internal/engine/character"
	"github.com/Faultbox/robostage/internal/engine/lookat"
	"github.com/Faultbox/robostage/pkg/math"
)

var axisX = math.Vec3{X: 1}

// Tick advances the rig by dt seconds and renders. dt is clamped to the
// configured maximum so a stalled host does not launch the actor.
func (d *Driver) Tick(dt float32) *Frame {
	if d.phase == PhaseDisposed {
		return nil
	}
	dt = math.Clamp(dt, 0, d.maxDelta)
	s := &d.state

	if d.phase == PhaseLoading {
		d.pollLoad()
	}

	sig := s.Sampler.Signal()
	hw := s.Bounds.HalfWidth()
	s.Aim, _ = s.Targeter.Aim(sig, s.Camera, hw)
	s.Elapsed += dt

	f := &Frame{
		Phase:     d.phase,
		Elapsed:   s.Elapsed,
		Camera:    s.Camera,
		HalfWidth: hw,
		Signal:    sig,
		Aim:       s.Aim,
		Whirlpool: s.Whirlpool,
	}

	if d.phase == PhaseReady || d.phase == PhaseRunning {
		d.setPhase(PhaseRunning)
		d.step(f, dt)
	}

	if s.Whirlpool != nil {
		s.Whirlpool.Aim(sig)
		s.Whirlpool.Update(dt)
	}

	f.Phase = d.phase
	d.renderer.Render(f)
	return f
}

// step runs locomotion, clip blending and gaze for a ready model.
func (d *Driver) step(f *Frame, dt float32) {
	s := &d.state
	m := s.Model
	skel := m.Skeleton

	for _, g := range d.gestures {
		if s.Layer.TriggerGesture(g) && d.cue != nil {
			d.cue.Cue(g)
		}
	}
	d.gestures = d.gestures[:0]

	sig := f.Signal
	pose := s.Locomotion.Pose()
	gait := s.Locomotion.Update(character.TargetX(sig, f.HalfWidth, pose.Position.X), f.HalfWidth, dt)
	pose = s.Locomotion.Pose()
	s.Layer.RequestClip(gait.Clip())

	glow := s.Flourish.Update(gait, pose.Speed, s.Elapsed, dt)
	skel.Root = math.Translate(pose.Position.X, pose.Position.Y+glow.BodyY, pose.Position.Z).
		Mul(math.RotateY(pose.RotationY))
	s.Layer.Update(dt)

	if m.Body >= 0 && glow.Lean != 0 {
		b := &skel.Bones[m.Body]
		b.Rotation = b.Rotation.Mul(math.QuatFromAxisAngle(axisX, glow.Lean))
		skel.UpdateWorld()
	}

	s.LookAt.Step(skel, sig, s.Aim, pose.RotationY, dt)

	f.Model = m
	f.Pose = pose
	f.Gait = gait
	f.Clip = s.Layer.Active()
	f.Head = s.LookAt.Head()
	f.Glow = glow
}

func (d *Driver) pollLoad() {
	if d.pending == nil {
		return
	}
	m, done, err := d.pending.Poll()
	if !done {
		return
	}
	d.pending = nil
	if err == nil {
		err = d.renderer.Upload(m)
		if err == nil {
			d.uploaded = true
		}
	}
	if err != nil {
		d.failLoad(err)
		return
	}
	d.setup(m)
}

func (d *Driver) failLoad(err error) {
	d.log.Warn("model failed to load; staying in loading phase",
		zap.Error(err), zap.Bool("not_found", errors.Is(err, assets.ErrNotFound)))
	if d.OnLoadFailed != nil {
		d.OnLoadFailed(err)
	}
}

func (d *Driver) setup(m *assets.Model) {
	rc := d.cfg.Rig
	s := &d.state

	s.Model = m
	s.Locomotion = character.NewLocomotion(character.Config{
		Deadzone:     rc.Deadzone,
		SpeedGain:    rc.SpeedGain,
		SpeedCap:     rc.SpeedCap,
		SpeedRate:    rc.SpeedRate,
		MoveEpsilon:  rc.MoveEpsilon,
		RunThreshold: rc.RunThreshold,
		TurnRate:     rc.TurnRate,
	})
	s.Layer = anim.NewLayer(anim.LayerConfig{
		Fade:        rc.FadeSeconds,
		GestureFade: rc.GestureFadeSeconds,
	}, anim.NewMixer(m.Skeleton), m.Clips)
	s.Layer.OnTransition = func(from, to anim.State) {
		d.log.Debug("clip", zap.String("from", from.Clip), zap.String("to", to.Clip), zap.Stringer("state", to.Kind))
	}
	s.LookAt = lookat.New(lookat.Config{
		YawLimit:        rc.YawLimit,
		PitchUp:         rc.PitchUp,
		PitchDown:       rc.PitchDown,
		TargetRate:      rc.TargetRate,
		HeadRate:        rc.HeadRate,
		NeckShare:       rc.NeckShare,
		NeckRate:        rc.NeckRate,
		FacingThreshold: rc.FacingThreshold,
	}, m.Head, m.Neck)
	s.Flourish = character.Flourish{}

	d.setPhase(PhaseReady)
}
