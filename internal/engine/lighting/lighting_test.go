package lighting

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/robostage/pkg/math"
)

func TestPointLightBufferCapacity(t *testing.T) {
	b := NewPointLightBuffer()
	for i := 0; i < MaxPointLights; i++ {
		if !b.AddLight(PointLight{Range: 1}) {
			t.Fatalf("light %d rejected", i)
		}
	}
	if b.AddLight(PointLight{}) {
		t.Error("buffer accepted a light past capacity")
	}
	b.Clear()
	if b.Count != 0 || len(b.Lights) != 0 {
		t.Errorf("after Clear count = %d len = %d", b.Count, len(b.Lights))
	}
}

func TestPointLightDefaultsRange(t *testing.T) {
	b := NewPointLightBuffer()
	b.AddLight(PointLight{Range: -3})
	if b.Lights[0].Range != 1 {
		t.Errorf("range = %v, want 1", b.Lights[0].Range)
	}
}

func TestFlatUploads(t *testing.T) {
	b := NewPointLightBuffer()
	b.AddLight(PointLight{Position: [3]float32{1, 2, 3}, Color: [3]float32{1, 0.5, 0}, Range: 6, Intensity: 2})

	pos := b.Positions()
	if len(pos) != MaxPointLights*3 || pos[0] != 1 || pos[1] != 2 || pos[2] != 3 || pos[3] != 0 {
		t.Errorf("positions = %v", pos)
	}
	col := b.Colors()
	if col[0] != 2 || col[1] != 1 || col[2] != 0 {
		t.Errorf("colors = %v, want intensity premultiplied", col[:3])
	}
	if r := b.Ranges(); r[0] != 6 || r[1] != 0 {
		t.Errorf("ranges = %v", r)
	}
}

func TestFromPosition(t *testing.T) {
	d := FromPosition(math.Vec3{Y: 10}, [3]float32{1, 1, 1}, 1.2)
	if d.Direction != [3]float32{0, 1, 0} {
		t.Errorf("direction = %v, want straight up", d.Direction)
	}
	if r := d.Radiance(); r[0] != 1.2 {
		t.Errorf("radiance = %v", r)
	}
}

func TestFollow(t *testing.T) {
	s := NewStage()
	s.Follow(math.Vec3{X: 1, Y: 2.3, Z: 0}, math.Vec3{X: 1}, 2.5)
	s.Follow(math.Vec3{X: 2, Y: 2.3, Z: 0}, math.Vec3{X: 2}, 3)

	if s.Points.Count != 2 {
		t.Fatalf("points = %d, want 2 (Follow replaces, not appends)", s.Points.Count)
	}
	eye, ground := s.Points.Lights[0], s.Points.Lights[1]
	if eye.Position != [3]float32{2, 2.3, 0.8} {
		t.Errorf("eye glow at %v", eye.Position)
	}
	if d := eye.Intensity - 1.8; d > 1e-6 || d < -1e-6 {
		t.Errorf("eye glow intensity = %v, want 1.8", eye.Intensity)
	}
	if ground.Position != [3]float32{2, 0.05, 0} {
		t.Errorf("ground glow at %v", ground.Position)
	}
}

func TestShadowCameraCoversStage(t *testing.T) {
	c := DefaultShadowCamera()
	m := c.LightMatrix()

	center := m.TransformPoint([3]float32{0, 0, 0})
	if math.Abs(center[0]) > 1e-4 || math.Abs(center[1]) > 1e-4 {
		t.Errorf("target projects to %v, want the map center", center)
	}

	points := [][3]float32{
		{5, 0, 5}, {-5, 0, 5}, {5, 0, -5}, {-5, 0, -5},
		{0, 3, 0},
	}
	for _, p := range points {
		got := m.TransformPoint(p)
		for i, v := range got {
			if v < -1 || v > 1 {
				t.Errorf("%v projects to %v: axis %d outside the frustum", p, got, i)
			}
		}
	}
}

func TestShadowCameraVertical(t *testing.T) {
	c := DefaultShadowCamera()
	c.Position = math.Vec3{Y: 10}
	m := c.LightMatrix()
	for _, v := range m {
		if gomath.IsNaN(float64(v)) {
			t.Fatalf("overhead light produced NaN: %v", m)
		}
	}
}

func TestShadowTexelSize(t *testing.T) {
	c := DefaultShadowCamera()
	if got := c.TexelSize(); got != 1.0/1024 {
		t.Errorf("TexelSize() = %v, want 1/1024", got)
	}
	c.Resolution = 0
	if got := c.TexelSize(); got != 0 {
		t.Errorf("TexelSize() with no map = %v, want 0", got)
	}
}
