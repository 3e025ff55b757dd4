package anim

import (
	"go.uber.org/zap"

	"github.com/Faultbox/robostage/internal/logger"
)

// StateKind tags the blend layer state.
type StateKind int

const (
	StateIdle StateKind = iota
	StateWalking
	StateRunning
	StateGesture
)

func (k StateKind) String() string {
	switch k {
	case StateWalking:
		return "walking"
	case StateRunning:
		return "running"
	case StateGesture:
		return "gesture"
	default:
		return "idle"
	}
}

// Gait clip names.
const (
	ClipIdle    = "Idle"
	ClipWalking = "Walking"
	ClipRunning = "Running"
)

// State is the tagged blend state. Clip is the playing clip; for StateGesture
// it names the gesture.
type State struct {
	Kind StateKind
	Clip string
}

func stateFor(clip string) State {
	switch clip {
	case ClipWalking:
		return State{Kind: StateWalking, Clip: clip}
	case ClipRunning:
		return State{Kind: StateRunning, Clip: clip}
	case ClipIdle:
		return State{Kind: StateIdle, Clip: clip}
	default:
		// Any other looping clip behaves like idle for arbitration purposes.
		return State{Kind: StateIdle, Clip: clip}
	}
}

type event int

const (
	eventGait event = iota
	eventGesture
	eventFinished
)

// transitions lists which events each state accepts. Anything absent is ignored.
var transitions = map[StateKind]map[event]bool{
	StateIdle:    {eventGait: true, eventGesture: true},
	StateWalking: {eventGait: true, eventGesture: true},
	StateRunning: {eventGait: true, eventGesture: true},
	StateGesture: {eventFinished: true},
}

// LayerConfig holds crossfade durations in seconds.
type LayerConfig struct {
	Fade        float32 // Gait to gait
	GestureFade float32 // Into and out of a gesture
}

// DefaultLayerConfig returns the fades used by the robot.
func DefaultLayerConfig() LayerConfig {
	return LayerConfig{Fade: 0.3, GestureFade: 0.2}
}

// Layer arbitrates clip selection. Gait requests switch between looping clips;
// a gesture takes exclusive control until its one-shot clip finishes, then
// the layer fades back to the most recently requested gait clip.
type Layer struct {
	cfg   LayerConfig
	mixer *Mixer
	table *ClipTable
	log   *zap.Logger

	state     State
	exclusive bool
	gaitClip  string // Latest gait request, honored when a gesture ends

	// OnTransition, if set, is called after every clip change.
	OnTransition func(from, to State)
}

// NewLayer creates a layer and starts the idle clip if the table has one.
func NewLayer(cfg LayerConfig, mixer *Mixer, table *ClipTable) *Layer {
	l := &Layer{
		cfg:      cfg,
		mixer:    mixer,
		table:    table,
		log:      logger.Named("anim"),
		gaitClip: ClipIdle,
	}
	mixer.OnFinished(l.handleFinished)
	if c, ok := table.Get(ClipIdle); ok {
		mixer.Play(mixer.Action(c), true, 0)
		l.state = stateFor(ClipIdle)
	}
	return l
}

// State returns the current blend state.
func (l *Layer) State() State { return l.state }

// Active returns the name of the clip in control.
func (l *Layer) Active() string { return l.state.Clip }

// Exclusive reports whether a gesture currently holds the layer.
func (l *Layer) Exclusive() bool { return l.exclusive }

// RequestClip asks for a gait clip. It is a no-op when the clip is already
// active, while a gesture is in progress, or when the clip is unknown.
func (l *Layer) RequestClip(name string) bool {
	l.gaitClip = name
	if !l.accepts(eventGait) || name == l.state.Clip {
		return false
	}
	c, ok := l.table.Get(name)
	if !ok {
		return false
	}
	l.mixer.CrossFade(l.mixer.Action(c), true, l.cfg.Fade)
	l.enter(stateFor(name), false)
	return true
}

// TriggerGesture plays a one-shot clip that preempts any gait. Unknown clips
// and triggers during another gesture are ignored.
func (l *Layer) TriggerGesture(name string) bool {
	if !l.accepts(eventGesture) {
		l.log.Debug("gesture ignored", zap.String("clip", name), zap.String("playing", l.state.Clip))
		return false
	}
	c, ok := l.table.Get(name)
	if !ok {
		l.log.Debug("unknown gesture", zap.String("clip", name))
		return false
	}
	l.mixer.CrossFade(l.mixer.Action(c), false, l.cfg.GestureFade)
	l.enter(State{Kind: StateGesture, Clip: name}, true)
	return true
}

// Update advances the mixer and applies the blended pose to the skeleton.
func (l *Layer) Update(dt float32) {
	l.mixer.Update(dt)
	l.mixer.Apply()
}

func (l *Layer) handleFinished(clip string) {
	if !l.accepts(eventFinished) || clip != l.state.Clip {
		return
	}
	next := l.gaitClip
	c, ok := l.table.Get(next)
	if !ok {
		next = ClipIdle
		c, ok = l.table.Get(next)
	}
	if !ok {
		// Nothing to return to; keep holding the gesture's last frame.
		l.enter(State{Kind: StateIdle, Clip: l.state.Clip}, false)
		return
	}
	l.mixer.CrossFade(l.mixer.Action(c), true, l.cfg.GestureFade)
	l.enter(stateFor(next), false)
}

func (l *Layer) accepts(e event) bool {
	return transitions[l.state.Kind][e]
}

func (l *Layer) enter(to State, exclusive bool) {
	from := l.state
	l.state = to
	l.exclusive = exclusive
	if l.OnTransition != nil {
		l.OnTransition(from, to)
	}
}
