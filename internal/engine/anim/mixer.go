package anim

import (
	gomath "math"

	"github.com/Faultbox/robostage/internal/engine/skeleton"
	"github.com/Faultbox/robostage/pkg/math"
)

// Action is the playback state of one clip inside a mixer.
type Action struct {
	clip    *Clip
	binding []int // Bone index per track, -1 when the skeleton lacks the bone

	time     float32
	weight   float32
	loop     bool
	finished bool

	fading      bool
	fadeFrom    float32
	fadeTo      float32
	fadeElapsed float32
	fadeDur     float32
}

// Clip returns the clip being played.
func (a *Action) Clip() *Clip { return a.clip }

// Time returns the playback position in seconds.
func (a *Action) Time() float32 { return a.time }

// Weight returns the current blend weight.
func (a *Action) Weight() float32 { return a.weight }

// Finished reports whether a one-shot action has reached its last frame.
func (a *Action) Finished() bool { return a.finished }

func (a *Action) fade(to, duration float32) {
	if duration <= 0 {
		a.weight = to
		a.fading = false
		return
	}
	a.fading = true
	a.fadeFrom = a.weight
	a.fadeTo = to
	a.fadeElapsed = 0
	a.fadeDur = duration
}

// Mixer blends any number of actions onto a skeleton.
type Mixer struct {
	skel    *skeleton.Skeleton
	actions map[string]*Action
	active  []*Action

	onFinished func(clip string)
	finished   []string

	rotAcc   []math.Quat
	rotW     []float32
	transAcc []math.Vec3
	transW   []float32
}

// NewMixer creates a mixer bound to a skeleton.
func NewMixer(skel *skeleton.Skeleton) *Mixer {
	n := len(skel.Bones)
	return &Mixer{
		skel:     skel,
		actions:  make(map[string]*Action),
		rotAcc:   make([]math.Quat, n),
		rotW:     make([]float32, n),
		transAcc: make([]math.Vec3, n),
		transW:   make([]float32, n),
	}
}

// OnFinished registers the callback fired when a one-shot action completes.
// It runs after the mixer update, so it may start or fade other actions.
func (m *Mixer) OnFinished(fn func(clip string)) {
	m.onFinished = fn
}

// Action returns the cached action for a clip, binding it on first use.
func (m *Mixer) Action(c *Clip) *Action {
	if a, ok := m.actions[c.Name]; ok && a.clip == c {
		return a
	}
	a := &Action{clip: c, binding: make([]int, len(c.Tracks))}
	for i := range c.Tracks {
		a.binding[i] = -1
		if idx, ok := m.skel.Index(c.Tracks[i].Bone); ok {
			a.binding[i] = idx
		}
	}
	m.actions[c.Name] = a
	return a
}

// Play restarts the action from its first frame and fades it in.
func (m *Mixer) Play(a *Action, loop bool, fadeIn float32) {
	a.time = 0
	a.loop = loop
	a.finished = false
	if !m.isActive(a) {
		a.weight = 0
		m.active = append(m.active, a)
	}
	a.fade(1, fadeIn)
}

// FadeOut fades the action to zero weight; it leaves the mixer once silent.
func (m *Mixer) FadeOut(a *Action, duration float32) {
	if !m.isActive(a) {
		return
	}
	a.fade(0, duration)
	if a.weight == 0 && !a.fading {
		m.remove(a)
	}
}

// CrossFade starts to while every other active action fades out over the same
// duration. Both run during the fade.
func (m *Mixer) CrossFade(to *Action, loop bool, duration float32) {
	for _, a := range append([]*Action(nil), m.active...) {
		if a != to {
			m.FadeOut(a, duration)
		}
	}
	m.Play(to, loop, duration)
}

// Active returns the actions currently contributing to the pose.
func (m *Mixer) Active() []*Action {
	return m.active
}

// Update advances clip time and fade weights by dt seconds.
func (m *Mixer) Update(dt float32) {
	if dt < 0 {
		dt = 0
	}
	m.finished = m.finished[:0]

	kept := m.active[:0]
	for _, a := range m.active {
		m.advance(a, dt)
		if a.fading {
			a.fadeElapsed += dt
			t := a.fadeElapsed / a.fadeDur
			if t >= 1 {
				t = 1
				a.fading = false
			}
			a.weight = math.Lerp(a.fadeFrom, a.fadeTo, t)
		}
		if a.weight <= 0 && !a.fading {
			continue
		}
		kept = append(kept, a)
	}
	for i := len(kept); i < len(m.active); i++ {
		m.active[i] = nil
	}
	m.active = kept

	if m.onFinished != nil {
		for _, name := range m.finished {
			m.onFinished(name)
		}
	}
}

func (m *Mixer) advance(a *Action, dt float32) {
	d := a.clip.Duration
	if a.finished {
		return
	}
	a.time += dt
	if d <= 0 {
		a.time = 0
		if !a.loop {
			a.finished = true
			m.finished = append(m.finished, a.clip.Name)
		}
		return
	}
	if a.loop {
		if a.time >= d {
			a.time = float32(gomath.Mod(float64(a.time), float64(d)))
		}
		return
	}
	if a.time >= d {
		a.time = d // Hold the last frame
		a.finished = true
		m.finished = append(m.finished, a.clip.Name)
	}
}

// Apply resets the skeleton to rest, blends all active actions by weight and
// refreshes world matrices. Weight below one is filled with the rest pose.
func (m *Mixer) Apply() {
	s := m.skel
	s.ResetPose()
	for i := range m.rotW {
		m.rotW[i] = 0
		m.transW[i] = 0
	}

	for _, a := range m.active {
		w := a.weight
		if w <= 0 {
			continue
		}
		for ti := range a.clip.Tracks {
			b := a.binding[ti]
			if b < 0 {
				continue
			}
			tr := &a.clip.Tracks[ti]
			if q, ok := tr.SampleRotation(a.time); ok {
				if m.rotW[b] == 0 {
					m.rotAcc[b] = q
				} else {
					m.rotAcc[b] = m.rotAcc[b].Slerp(q, w/(m.rotW[b]+w))
				}
				m.rotW[b] += w
			}
			if v, ok := tr.SampleTranslation(a.time); ok {
				if m.transW[b] == 0 {
					m.transAcc[b] = v
				} else {
					m.transAcc[b] = m.transAcc[b].Lerp(v, w/(m.transW[b]+w))
				}
				m.transW[b] += w
			}
		}
	}

	for i := range s.Bones {
		bone := &s.Bones[i]
		if w := m.rotW[i]; w > 0 {
			if w >= 1 {
				bone.Rotation = m.rotAcc[i]
			} else {
				bone.Rotation = bone.RestRotation.Slerp(m.rotAcc[i], w)
			}
		}
		if w := m.transW[i]; w > 0 {
			if w >= 1 {
				bone.Translation = m.transAcc[i]
			} else {
				bone.Translation = bone.RestTranslation.Lerp(m.transAcc[i], w)
			}
		}
	}
	s.UpdateWorld()
}

func (m *Mixer) isActive(a *Action) bool {
	for _, x := range m.active {
		if x == a {
			return true
		}
	}
	return false
}

func (m *Mixer) remove(a *Action) {
	for i, x := range m.active {
		if x == a {
			m.active = append(m.active[:i], m.active[i+1:]...)
			return
		}
	}
}
