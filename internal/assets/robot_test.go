package assets

import (
	"testing"

	"github.com/Faultbox/robostage/internal/engine/anim"
	"github.com/Faultbox/robostage/pkg/math"
)

func TestRobotLayout(t *testing.T) {
	m := Robot()

	if m.Skeleton.Bones[m.Head].Name != "Head" || m.Skeleton.Bones[m.Neck].Name != "Neck" {
		t.Fatalf("rig bones resolved to %d/%d", m.Head, m.Neck)
	}
	if got := m.Skeleton.WorldPosition(m.Head); got.Distance(v3(0, 2.32, 0)) > 1e-4 {
		t.Errorf("head rest position = %v, want (0, 2.32, 0)", got)
	}

	for _, clip := range []string{anim.ClipIdle, anim.ClipWalking, anim.ClipRunning, "Wave", "Bow", "Jump"} {
		c, ok := m.Clips.Get(clip)
		if !ok {
			t.Errorf("missing clip %q", clip)
			continue
		}
		if c.HasTrack("Head") || c.HasTrack("Neck") {
			t.Errorf("clip %q still drives the head or neck", clip)
		}
		if c.Duration <= 0 {
			t.Errorf("clip %q has no duration", clip)
		}
	}

	want := []string{"Bow", "Jump", "Wave"}
	got := m.Gestures()
	if len(got) != len(want) {
		t.Fatalf("Gestures() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Gestures() = %v, want %v", got, want)
		}
	}
}

func TestRobotPartsReferenceKnownData(t *testing.T) {
	m := Robot()
	for _, p := range m.Parts {
		if p.Bone < 0 || p.Bone >= len(m.Skeleton.Bones) {
			t.Errorf("part %q bound to bone %d", p.Name, p.Bone)
		}
		if _, ok := m.Materials[p.Material]; !ok {
			t.Errorf("part %q uses unknown material %q", p.Name, p.Material)
		}
	}

	a := m.Attachment
	if a == nil {
		t.Fatal("robot should carry its visor")
	}
	if a.Bone != m.Head {
		t.Errorf("visor bound to bone %d, want head %d", a.Bone, m.Head)
	}
	for _, p := range a.Parts {
		if _, ok := a.Materials[p.Material]; !ok {
			t.Errorf("visor part %q uses material %q outside its own set", p.Name, p.Material)
		}
	}
	for _, name := range []string{MaterialEye, MaterialEyeRing, MaterialAntenna} {
		if mat := a.Materials[name]; mat.Intensity <= 0 {
			t.Errorf("material %q should glow", name)
		}
	}
}

func TestRobotClipsLoopSeamlessly(t *testing.T) {
	m := Robot()
	for _, name := range []string{anim.ClipWalking, anim.ClipRunning} {
		c, _ := m.Clips.Get(name)
		for _, tr := range c.Tracks {
			first, _ := tr.SampleRotation(0)
			last, _ := tr.SampleRotation(c.Duration)
			if d := math.Abs(first.Dot(last)); d < 1-1e-4 {
				t.Errorf("%s/%s does not close its loop", name, tr.Bone)
			}
		}
	}
}

func TestHex(t *testing.T) {
	got := hex(0xff8000)
	if got[0] != 1 || got[2] != 0 || math.Abs(got[1]-128.0/255) > 1e-6 {
		t.Errorf("hex(0xff8000) = %v", got)
	}
}
