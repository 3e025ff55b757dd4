// Package driver runs the per-frame update of the robot: input, aim,
// locomotion, clip blending and gaze, in that order, then hands a frame to
// the renderer and asks the host for the next tick.
package driver

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/robostage/internal/assets"
	"github.com/Faultbox/robostage/internal/config"
	"github.com/Faultbox/robostage/internal/engine/anim"
	"github.com/Faultbox/robostage/internal/engine/camera"
	"github.com/Faultbox/robostage/internal/engine/character"
	"github.com/Faultbox/robostage/internal/engine/input"
	"github.com/Faultbox/robostage/internal/engine/lookat"
	"github.com/Faultbox/robostage/internal/engine/particles"
	"github.com/Faultbox/robostage/internal/engine/picking"
	"github.com/Faultbox/robostage/internal/logger"
	"github.com/Faultbox/robostage/pkg/math"
)

// Phase is the driver lifecycle state.
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseReady
	PhaseRunning
	PhaseDisposed
)

func (p Phase) String() string {
	switch p {
	case PhaseReady:
		return "ready"
	case PhaseRunning:
		return "running"
	case PhaseDisposed:
		return "disposed"
	default:
		return "loading"
	}
}

// FrameID identifies a scheduled frame callback.
type FrameID uint64

// Scheduler is the host's frame pacing primitive. The callback receives a
// monotonic timestamp.
type Scheduler interface {
	RequestFrame(cb func(now time.Duration)) FrameID
	CancelFrame(id FrameID)
}

// Renderer draws frames. Upload runs once when the model becomes ready;
// Release frees everything Upload acquired.
type Renderer interface {
	Upload(m *assets.Model) error
	Render(f *Frame)
	Release()
}

// EventSource delivers host input events into a sampler until the returned
// function is called.
type EventSource interface {
	Listen(s *input.Sampler) (remove func())
}

// CuePlayer plays a sound when a gesture starts.
type CuePlayer interface {
	Cue(gesture string)
}

// Frame is everything the renderer needs for one tick.
type Frame struct {
	Phase   Phase
	Elapsed float32

	Camera    *camera.PerspectiveCamera
	HalfWidth float32
	Signal    input.ControlSignal
	Aim       math.Vec3

	// Nil while loading.
	Model *assets.Model
	Pose  character.Pose
	Gait  character.Gait
	Clip  string
	Head  lookat.Angles
	Glow  character.FlourishFrame

	// Nil when the backdrop is disabled.
	Whirlpool *particles.Whirlpool
}

// RigState is the per-instance state shared by the tick steps. Everything
// the robot remembers between frames lives here.
type RigState struct {
	Sampler   *input.Sampler
	Camera    *camera.PerspectiveCamera
	Bounds    *camera.Bounds
	Targeter  *picking.Targeter
	Whirlpool *particles.Whirlpool

	// Set once the model is ready.
	Model      *assets.Model
	Locomotion *character.Locomotion
	Flourish   character.Flourish
	Layer      *anim.Layer
	LookAt     *lookat.Rig

	Elapsed float32
	Aim     math.Vec3
}

// Driver owns a RigState and advances it once per scheduled frame.
type Driver struct {
	cfg   *config.Config
	state RigState
	phase Phase

	loader  *assets.Loader
	pending *assets.Pending

	sched     Scheduler
	frameID   FrameID
	scheduled bool
	last      time.Duration
	hasLast   bool

	renderer Renderer
	uploaded bool
	cue      CuePlayer

	listeners []func()
	gestures  []string
	maxDelta  float32

	// OnLoadFailed, if set, is told why the model never became ready. The
	// driver itself stays in the loading phase either way.
	OnLoadFailed func(err error)

	log *zap.Logger
}

// New creates a driver. Nothing runs until Mount.
func New(cfg *config.Config, loader *assets.Loader, sched Scheduler, r Renderer) *Driver {
	cam := &camera.PerspectiveCamera{
		Position: vec(cfg.Camera.Position),
		Target:   vec(cfg.Camera.Target),
		FovY:     math.Radians(cfg.Camera.FovDegrees),
		Aspect:   float32(cfg.Graphics.Width) / float32(cfg.Graphics.Height),
		Near:     cfg.Camera.Near,
		Far:      cfg.Camera.Far,
	}

	d := &Driver{
		cfg:      cfg,
		loader:   loader,
		sched:    sched,
		renderer: r,
		maxDelta: float32(cfg.Rig.MaxDeltaMs) / 1000,
		log:      logger.Named("driver"),
	}
	d.state = RigState{
		Sampler: input.NewSampler(float32(cfg.Graphics.Width), float32(cfg.Graphics.Height), input.TiltConfig{
			Range:       cfg.Rig.TiltRange,
			NeutralBeta: cfg.Rig.NeutralBeta,
		}),
		Camera:   cam,
		Bounds:   camera.NewBounds(cam, cfg.Camera.BoundMargin),
		Targeter: picking.NewTargeter(),
	}
	if cfg.Effects.Whirlpool && cfg.Effects.ParticleCount > 0 {
		d.state.Whirlpool = particles.NewWhirlpool(cfg.Effects.ParticleCount, uint64(cfg.Effects.ParticleSeed))
		d.state.Whirlpool.SetViewport(cfg.Graphics.Width, cfg.Graphics.Height)
	}
	return d
}

func vec(a [3]float32) math.Vec3 {
	return math.Vec3{X: a[0], Y: a[1], Z: a[2]}
}

// SetCuePlayer sets the gesture sound player. Nil disables cues.
func (d *Driver) SetCuePlayer(c CuePlayer) {
	d.cue = c
}

// Phase returns the lifecycle phase.
func (d *Driver) Phase() Phase { return d.phase }

// State exposes the rig state for hosts and tests.
func (d *Driver) State() *RigState { return &d.state }

// Sampler returns the input cell hosts write events into.
func (d *Driver) Sampler() *input.Sampler { return d.state.Sampler }

// Mount starts loading the model, registers the input sources and schedules
// the first frame.
func (d *Driver) Mount(ctx context.Context, sources ...EventSource) {
	if d.phase == PhaseDisposed {
		return
	}
	d.pending = d.loader.LoadAsync(ctx, d.cfg.Assets.Rig, d.cfg.Assets.Attachment)
	for _, src := range sources {
		d.listeners = append(d.listeners, src.Listen(d.state.Sampler))
	}
	d.log.Info("mounted", zap.String("model", d.cfg.Assets.Rig), zap.Int("sources", len(sources)))
	d.schedule()
}

// TriggerGesture queues a one-shot clip for the next tick. Gestures fired
// before the model is ready are dropped.
func (d *Driver) TriggerGesture(name string) {
	if d.phase != PhaseRunning {
		d.log.Debug("gesture before model ready", zap.String("clip", name))
		return
	}
	d.gestures = append(d.gestures, name)
}

// Resize recomputes the screen bound and input normalization for a new
// viewport. The actor is re-clamped on the next tick.
func (d *Driver) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	d.state.Bounds.Resize(d.state.Camera, width, height)
	d.state.Sampler.SetViewport(float32(width), float32(height))
	if d.state.Whirlpool != nil {
		d.state.Whirlpool.SetViewport(width, height)
	}
}

// Dispose cancels the pending frame, removes input listeners, drops any
// in-flight load and releases GPU resources. It is safe to call twice.
func (d *Driver) Dispose() {
	if d.phase == PhaseDisposed {
		return
	}
	if d.scheduled {
		d.sched.CancelFrame(d.frameID)
		d.scheduled = false
	}
	for _, remove := range d.listeners {
		remove()
	}
	d.listeners = nil
	if d.pending != nil {
		d.pending.Discard()
		d.pending = nil
	}
	if d.uploaded {
		d.renderer.Release()
		d.uploaded = false
	}
	d.gestures = nil
	d.setPhase(PhaseDisposed)
}

func (d *Driver) schedule() {
	d.frameID = d.sched.RequestFrame(d.onFrame)
	d.scheduled = true
}

func (d *Driver) onFrame(now time.Duration) {
	d.scheduled = false
	if d.phase == PhaseDisposed {
		return
	}
	var dt float32
	if d.hasLast {
		dt = float32((now - d.last).Seconds())
	}
	d.last, d.hasLast = now, true

	d.Tick(dt)
	if d.phase != PhaseDisposed {
		d.schedule()
	}
}

func (d *Driver) setPhase(p Phase) {
	if d.phase == p {
		return
	}
	d.log.Info("phase", zap.Stringer("from", d.phase), zap.Stringer("to", p))
	d.phase = p
}
