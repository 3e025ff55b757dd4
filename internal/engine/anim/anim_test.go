package anim

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/robostage/internal/engine/skeleton"
	"github.com/Faultbox/robostage/pkg/math"
)

const eps = 1e-4

var yAxis = math.Vec3{X: 0, Y: 1, Z: 0}

func testSkeleton(t *testing.T) *skeleton.Skeleton {
	t.Helper()
	s, err := skeleton.New([]skeleton.Bone{
		{Name: "Root", Parent: skeleton.NoParent},
		{Name: "Body", Parent: 0, RestTranslation: math.Vec3{Y: 1}},
		{Name: "Neck", Parent: 1, RestTranslation: math.Vec3{Y: 0.5}},
		{Name: "Head", Parent: 2, RestTranslation: math.Vec3{Y: 0.3}},
	})
	if err != nil {
		t.Fatalf("skeleton.New: %v", err)
	}
	return s
}

// bodyClip moves Body to height y for the whole clip and turns Head, which the
// table is expected to strip.
func bodyClip(name string, duration, y float32) *Clip {
	return NewClip(name, duration, []Track{
		{
			Bone:         "Body",
			Times:        []float32{0, duration},
			Translations: []math.Vec3{{Y: y}, {Y: y}},
		},
		{
			Bone:      "Head",
			Times:     []float32{0, duration},
			Rotations: []math.Quat{math.QuatIdentity(), math.QuatFromAxisAngle(yAxis, 1)},
		},
	})
}

func testTable() *ClipTable {
	return NewClipTable([]*Clip{
		bodyClip(ClipIdle, 2, 1),
		bodyClip(ClipWalking, 1, 2),
		bodyClip(ClipRunning, 0.6, 3),
		bodyClip("Wave", 1, 4),
		bodyClip("Nod", 0.5, 5),
	}, "Head", "Neck")
}

func TestSampleRotation(t *testing.T) {
	tr := Track{
		Bone:      "Body",
		Times:     []float32{0, 1},
		Rotations: []math.Quat{math.QuatIdentity(), math.QuatFromAxisAngle(yAxis, gomath.Pi/2)},
	}

	tests := []struct {
		time float32
		want float32 // Angle about Y
	}{
		{-1, 0},
		{0, 0},
		{0.5, gomath.Pi / 4},
		{1, gomath.Pi / 2},
		{5, gomath.Pi / 2},
	}
	for _, tt := range tests {
		q, ok := tr.SampleRotation(tt.time)
		if !ok {
			t.Fatalf("SampleRotation(%v) not ok", tt.time)
		}
		want := math.QuatFromAxisAngle(yAxis, tt.want)
		if d := math.Abs(q.Dot(want)); d < 1-eps {
			t.Errorf("SampleRotation(%v) = %v, want %v", tt.time, q, want)
		}
	}

	if _, ok := tr.SampleTranslation(0.5); ok {
		t.Error("track without translation keys should report !ok")
	}
}

func TestSampleTranslation(t *testing.T) {
	tr := Track{
		Times:        []float32{0, 1, 3},
		Translations: []math.Vec3{{X: 0}, {X: 1}, {X: 5}},
	}
	tests := []struct {
		time float32
		want float32
	}{
		{0.5, 0.5},
		{1, 1},
		{2, 3},
		{9, 5},
	}
	for _, tt := range tests {
		v, _ := tr.SampleTranslation(tt.time)
		if math.Abs(v.X-tt.want) > eps {
			t.Errorf("SampleTranslation(%v).X = %v, want %v", tt.time, v.X, tt.want)
		}
	}
}

func TestNewClipDerivesDuration(t *testing.T) {
	c := NewClip("x", 0, []Track{{Times: []float32{0, 0.4}}, {Times: []float32{0, 1.25}}})
	if c.Duration != 1.25 {
		t.Errorf("Duration = %v, want 1.25", c.Duration)
	}
}

func TestClipTableStripsReservedBones(t *testing.T) {
	table := testTable()

	for _, name := range table.Names() {
		c, _ := table.Get(name)
		if c.HasTrack("Head") || c.HasTrack("Neck") {
			t.Errorf("clip %q kept a reserved track", name)
		}
		if !c.HasTrack("Body") {
			t.Errorf("clip %q lost its body track", name)
		}
	}

	want := []string{"Idle", "Nod", "Running", "Walking", "Wave"}
	got := table.Names()
	if len(got) != len(want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Names() = %v, want %v", got, want)
			break
		}
	}
}

func TestMixerCrossFadeOverlaps(t *testing.T) {
	s := testSkeleton(t)
	table := testTable()
	m := NewMixer(s)

	idle, _ := table.Get(ClipIdle)
	walk, _ := table.Get(ClipWalking)
	m.Play(m.Action(idle), true, 0)
	m.CrossFade(m.Action(walk), true, 0.4)

	m.Update(0.2)
	if n := len(m.Active()); n != 2 {
		t.Fatalf("mid-fade active actions = %d, want 2", n)
	}
	if w := m.Action(walk).Weight(); math.Abs(w-0.5) > eps {
		t.Errorf("incoming weight = %v, want 0.5", w)
	}
	m.Apply()
	body, _ := s.Index("Body")
	if y := s.Bones[body].Translation.Y; math.Abs(y-1.5) > eps {
		t.Errorf("blended body height = %v, want 1.5", y)
	}

	m.Update(0.3)
	if n := len(m.Active()); n != 1 {
		t.Fatalf("after fade active actions = %d, want 1", n)
	}
	m.Apply()
	if y := s.Bones[body].Translation.Y; math.Abs(y-2) > eps {
		t.Errorf("body height = %v, want 2", y)
	}
}

func TestMixerRestFillsMissingWeight(t *testing.T) {
	s := testSkeleton(t)
	table := testTable()
	m := NewMixer(s)

	walk, _ := table.Get(ClipWalking)
	m.Play(m.Action(walk), true, 1)
	m.Update(0.25)
	m.Apply()

	body, _ := s.Index("Body")
	// Rest height 1, clip height 2, weight 0.25.
	if y := s.Bones[body].Translation.Y; math.Abs(y-1.25) > eps {
		t.Errorf("body height = %v, want 1.25", y)
	}
}

func TestMixerOneShotFinishesOnceAndHolds(t *testing.T) {
	s := testSkeleton(t)
	table := testTable()
	m := NewMixer(s)

	var calls int
	m.OnFinished(func(clip string) {
		if clip == "Wave" {
			calls++
		}
	})

	wave, _ := table.Get("Wave")
	a := m.Action(wave)
	m.Play(a, false, 0)
	for i := 0; i < 30; i++ {
		m.Update(0.1)
	}

	if calls != 1 {
		t.Errorf("finished fired %d times, want 1", calls)
	}
	if !a.Finished() || a.Time() != wave.Duration {
		t.Errorf("action time = %v finished = %v, want held at %v", a.Time(), a.Finished(), wave.Duration)
	}
	if a.Weight() != 1 {
		t.Errorf("held action weight = %v, want 1", a.Weight())
	}
}

func TestMixerLoopWraps(t *testing.T) {
	s := testSkeleton(t)
	table := testTable()
	m := NewMixer(s)

	run, _ := table.Get(ClipRunning)
	a := m.Action(run)
	m.Play(a, true, 0)
	m.Update(1.0)
	if got := a.Time(); math.Abs(got-0.4) > eps {
		t.Errorf("looped time = %v, want 0.4", got)
	}
	if a.Finished() {
		t.Error("looping action should never finish")
	}
}

func TestMixerIgnoresUnboundBones(t *testing.T) {
	s := testSkeleton(t)
	m := NewMixer(s)
	c := NewClip("Tail", 1, []Track{{Bone: "Tail", Times: []float32{0}, Translations: []math.Vec3{{X: 9}}}})
	m.Play(m.Action(c), true, 0)
	m.Update(0.1)
	m.Apply()

	for i := range s.Bones {
		if s.Bones[i].Translation != s.Bones[i].RestTranslation {
			t.Errorf("bone %q moved by a track for a missing bone", s.Bones[i].Name)
		}
	}
}

func newTestLayer(t *testing.T) (*Layer, *[][2]State) {
	t.Helper()
	s := testSkeleton(t)
	l := NewLayer(DefaultLayerConfig(), NewMixer(s), testTable())
	var log [][2]State
	l.OnTransition = func(from, to State) {
		log = append(log, [2]State{from, to})
	}
	return l, &log
}

func TestLayerStartsIdle(t *testing.T) {
	l, _ := newTestLayer(t)
	if l.State().Kind != StateIdle || l.Active() != ClipIdle {
		t.Errorf("initial state = %+v", l.State())
	}
}

func TestLayerRequestClip(t *testing.T) {
	tests := []struct {
		name    string
		clip    string
		changed bool
		want    StateKind
	}{
		{"already active", ClipIdle, false, StateIdle},
		{"walk", ClipWalking, true, StateWalking},
		{"run", ClipRunning, true, StateRunning},
		{"unknown", "Moonwalk", false, StateIdle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, _ := newTestLayer(t)
			if got := l.RequestClip(tt.clip); got != tt.changed {
				t.Errorf("RequestClip(%q) = %v, want %v", tt.clip, got, tt.changed)
			}
			if l.State().Kind != tt.want {
				t.Errorf("state = %v, want %v", l.State().Kind, tt.want)
			}
		})
	}
}

func TestLayerGestureExclusivity(t *testing.T) {
	l, log := newTestLayer(t)
	l.RequestClip(ClipWalking)

	if !l.TriggerGesture("Wave") {
		t.Fatal("TriggerGesture(Wave) rejected")
	}
	if !l.Exclusive() || l.Active() != "Wave" {
		t.Fatalf("after trigger state = %+v exclusive = %v", l.State(), l.Exclusive())
	}

	if l.RequestClip(ClipRunning) {
		t.Error("gait request during gesture should be ignored")
	}
	if l.TriggerGesture("Nod") {
		t.Error("second gesture during gesture should be ignored")
	}
	l.Update(0.5)
	if l.Active() != "Wave" {
		t.Errorf("active mid-gesture = %q, want Wave", l.Active())
	}

	for i := 0; i < 20; i++ {
		l.RequestClip(ClipRunning)
		l.Update(0.1)
	}

	if l.Exclusive() {
		t.Error("exclusivity should clear after the gesture finishes")
	}
	if l.Active() != ClipRunning {
		t.Errorf("active after gesture = %q, want Running", l.Active())
	}

	var fadeBacks int
	for _, tr := range *log {
		if tr[0].Kind == StateGesture {
			fadeBacks++
		}
	}
	if fadeBacks != 1 {
		t.Errorf("fade backs = %d, want exactly 1 (%v)", fadeBacks, *log)
	}
}

func TestLayerUnknownGesture(t *testing.T) {
	l, log := newTestLayer(t)
	if l.TriggerGesture("Backflip") {
		t.Error("unknown gesture accepted")
	}
	if l.Exclusive() || len(*log) != 0 {
		t.Errorf("unknown gesture changed state: %+v", l.State())
	}
}

func TestLayerGesturePreemptsEveryGait(t *testing.T) {
	for _, gait := range []string{ClipIdle, ClipWalking, ClipRunning} {
		l, _ := newTestLayer(t)
		l.RequestClip(gait)
		if !l.TriggerGesture("Nod") || l.State().Kind != StateGesture {
			t.Errorf("gesture did not preempt %s", gait)
		}
	}
}

func TestScenarioGestureMidWalk(t *testing.T) {
	l, _ := newTestLayer(t)
	const dt = float32(1.0 / 60)

	for i := 0; i < 30; i++ {
		l.RequestClip(ClipWalking)
		l.Update(dt)
	}
	if l.Active() != ClipWalking {
		t.Fatalf("active = %q, want Walking", l.Active())
	}

	l.TriggerGesture("Wave")
	l.Update(dt)
	if l.Active() != "Wave" {
		t.Fatalf("active one tick after trigger = %q, want Wave", l.Active())
	}

	// Wave lasts one second; keep asking for Walking the whole time.
	for i := 0; i < 50; i++ {
		if l.RequestClip(ClipWalking) {
			t.Fatalf("tick %d: gait request changed clip during gesture", i)
		}
		l.Update(dt)
		if l.Active() != "Wave" {
			t.Fatalf("tick %d: active = %q during gesture", i, l.Active())
		}
	}
	for i := 0; i < 20; i++ {
		l.RequestClip(ClipWalking)
		l.Update(dt)
	}
	if l.Active() != ClipWalking {
		t.Errorf("active after gesture = %q, want Walking", l.Active())
	}
}
