package particles

import (
	"testing"

	"github.com/Faultbox/robostage/internal/engine/input"
	"github.com/Faultbox/robostage/pkg/math"
)

func TestNewWhirlpoolDeterministic(t *testing.T) {
	a := NewWhirlpool(50, 7)
	b := NewWhirlpool(50, 7)
	c := NewWhirlpool(50, 8)

	if len(a.Particles) != 50 {
		t.Fatalf("got %d particles, want 50", len(a.Particles))
	}
	for i := range a.Particles {
		if a.Particles[i] != b.Particles[i] {
			t.Fatalf("particle %d differs for the same seed", i)
		}
	}
	if a.Particles[0] == c.Particles[0] {
		t.Error("different seeds produced the same first particle")
	}

	for i, p := range a.Particles {
		if math.Abs(p.Position.X) > 100 || math.Abs(p.Position.Y) > 100 || math.Abs(p.Position.Z) > 100 {
			t.Errorf("particle %d spawned outside the cube: %v", i, p.Position)
		}
		if p.Scale < 0.2 || p.Scale > 1 || p.VLimit < 1.1 || p.VLimit > 1.3 {
			t.Errorf("particle %d has out-of-range parameters: %+v", i, p)
		}
	}
}

func TestUpdateRespectsSpeedLimit(t *testing.T) {
	w := NewWhirlpool(200, 1)
	for i := 0; i < 300; i++ {
		w.Update(1.0 / 60)
		for j, p := range w.Particles {
			v := p.Velocity
			if math.Abs(v.X) > p.VLimit || math.Abs(v.Y) > p.VLimit || math.Abs(v.Z) > p.VLimit {
				t.Fatalf("tick %d particle %d velocity %v exceeds %v", i, j, v, p.VLimit)
			}
		}
	}
}

func singleParticle() *Whirlpool {
	w := NewWhirlpool(0, 1)
	w.Particles = []Particle{{Position: math.Vec3{X: 100}, Attraction: 0.03, VLimit: 1.2, Scale: 1, ScaleZ: 1}}
	return w
}

func TestParticleFallsTowardTarget(t *testing.T) {
	w := singleParticle()
	for i := 0; i < 60; i++ {
		w.Update(1.0 / 60)
	}
	p := w.Particles[0]
	if p.Position.X >= 100 || p.Position.X <= 0 {
		t.Errorf("x after one second = %v, want between target and start", p.Position.X)
	}
	if p.Position.Y != 0 || p.Position.Z != 0 {
		t.Errorf("particle left the x axis: %v", p.Position)
	}
	if p.Velocity.X != -1.2 {
		t.Errorf("velocity = %v, want clamped at -1.2", p.Velocity.X)
	}
}

func TestUpdateIndependentOfFrameRate(t *testing.T) {
	coarse, fine := singleParticle(), singleParticle()
	for i := 0; i < 60; i++ {
		coarse.Update(1.0 / 60)
	}
	for i := 0; i < 120; i++ {
		fine.Update(1.0 / 120)
	}
	a, b := coarse.Particles[0].Position.X, fine.Particles[0].Position.X
	if math.Abs(a-b) > 1 {
		t.Errorf("after one second: 60Hz x = %v, 120Hz x = %v", a, b)
	}
}

func TestUpdateIgnoresNonPositiveDelta(t *testing.T) {
	w := NewWhirlpool(10, 1)
	before := append([]Particle(nil), w.Particles...)
	w.Update(0)
	w.Update(-1)
	for i := range before {
		if before[i] != w.Particles[i] {
			t.Fatal("non-positive dt moved particles")
		}
	}
}

func TestAim(t *testing.T) {
	w := NewWhirlpool(1, 1)

	w.Aim(input.ControlSignal{X: 1, Y: 1})
	if w.Target != (math.Vec3{}) {
		t.Errorf("target moved without input: %v", w.Target)
	}

	w.Aim(input.ControlSignal{HasInput: true})
	if w.Target.Length() > 1e-2 {
		t.Errorf("center signal target = %v, want origin", w.Target)
	}

	w.Aim(input.ControlSignal{X: 1, Y: -1, HasInput: true})
	if w.Target.X <= 0 || w.Target.Y >= 0 || math.Abs(w.Target.Z) > 1e-2 {
		t.Errorf("corner signal target = %v, want +x -y on z=0", w.Target)
	}
	// Half height at z=0 is tan(25°)*200 ≈ 93.3.
	if math.Abs(w.Target.Y+93.26) > 0.5 {
		t.Errorf("target y = %v, want about -93.3", w.Target.Y)
	}
}

func TestHeading(t *testing.T) {
	p := Particle{Velocity: math.Vec3{X: 1, Y: -1, Z: 0.5}}
	fwd := p.Heading().Rotate(math.Vec3{Z: 1})
	want := p.Velocity.Normalize()
	if fwd.Distance(want) > 1e-4 {
		t.Errorf("heading forward = %v, want %v", fwd, want)
	}

	still := Particle{}
	if still.Heading() != math.QuatIdentity() {
		t.Error("zero velocity should keep the identity heading")
	}
}
