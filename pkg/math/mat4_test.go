package math

import (
	"math"
	"testing"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	// Diagonal should be 1
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	// Off-diagonal should be 0
	if m[1] != 0 || m[4] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(1, 2, 3)
	id := Identity()
	result := m.Mul(id)

	for i := 0; i < 16; i++ {
		if result[i] != m[i] {
			t.Errorf("M * I should equal M, element %d: got %f, want %f", i, result[i], m[i])
		}
	}
}

func TestTranslate(t *testing.T) {
	m := Translate(5, 10, 15)

	// Translation should be in column 4 (indices 12, 13, 14)
	if m[12] != 5 || m[13] != 10 || m[14] != 15 {
		t.Errorf("Translate: got (%f, %f, %f), want (5, 10, 15)", m[12], m[13], m[14])
	}
}

func TestScale(t *testing.T) {
	m := Scale(2, 3, 4)

	if m[0] != 2 || m[5] != 3 || m[10] != 4 {
		t.Errorf("Scale diagonal: got (%f, %f, %f), want (2, 3, 4)", m[0], m[5], m[10])
	}
}

func TestTransformPoint(t *testing.T) {
	// Translate by (10, 20, 30)
	m := Translate(10, 20, 30)
	p := [3]float32{1, 2, 3}
	result := m.TransformPoint(p)

	expected := [3]float32{11, 22, 33}
	if result != expected {
		t.Errorf("TransformPoint: got %v, want %v", result, expected)
	}
}

func TestTransformPointScale(t *testing.T) {
	m := Scale(2, 2, 2)
	p := [3]float32{1, 2, 3}
	result := m.TransformPoint(p)

	expected := [3]float32{2, 4, 6}
	if result != expected {
		t.Errorf("TransformPoint with scale: got %v, want %v", result, expected)
	}
}

func TestRotateY90(t *testing.T) {
	m := RotateY(float32(math.Pi / 2)) // 90 degrees
	p := [3]float32{1, 0, 0}           // Point on X axis
	result := m.TransformPoint(p)

	// After 90 degree Y rotation, (1,0,0) should become approximately (0,0,-1)
	if abs(result[0]) > 0.001 || abs(result[1]) > 0.001 || abs(result[2]+1) > 0.001 {
		t.Errorf("RotateY 90: got %v, want (0, 0, -1)", result)
	}
}

func TestPerspective(t *testing.T) {
	fov := float32(math.Pi / 4) // 45 degrees
	aspect := float32(1.0)
	near := float32(0.1)
	far := float32(100.0)

	m := Perspective(fov, aspect, near, far)

	// Should be a valid projection matrix (not identity)
	if m[0] == 0 || m[5] == 0 {
		t.Error("Perspective should have non-zero elements")
	}
	// Element [15] should be 0 for perspective projection
	if m[15] != 0 {
		t.Errorf("Perspective [15] should be 0, got %f", m[15])
	}
	// Element [11] should be -1 for perspective projection
	if m[11] != -1 {
		t.Errorf("Perspective [11] should be -1, got %f", m[11])
	}
}

func TestLookAt(t *testing.T) {
	eye := Vec3{0, 0, 5}
	center := Vec3{0, 0, 0}
	up := Vec3{0, 1, 0}

	m := LookAt(eye, center, up)

	// Transform eye position - should result in origin (or close to it)
	// This is a simple sanity check
	if m[15] != 1 {
		t.Errorf("LookAt [15] should be 1, got %f", m[15])
	}
}

func TestInverse(t *testing.T) {
	m := Translate(3, -2, 5).Mul(RotateY(0.7)).Mul(Scale(2, 2, 2))
	p := [3]float32{1, 2, 3}
	back := m.Inverse().TransformPoint(m.TransformPoint(p))

	for i := 0; i < 3; i++ {
		if abs(back[i]-p[i]) > 0.001 {
			t.Errorf("Inverse round trip component %d: got %f, want %f", i, back[i], p[i])
		}
	}
}

func TestCompose(t *testing.T) {
	r := QuatFromAxisAngle(Vec3{X: 0, Y: 1, Z: 0}, float32(math.Pi/2))
	m := Compose(Vec3{X: 1, Y: 2, Z: 3}, r, Vec3{X: 1, Y: 1, Z: 1})
	got := m.TransformVec3(Vec3{X: 1, Y: 0, Z: 0})

	// (1,0,0) rotates to (0,0,-1) then translates
	want := Vec3{X: 1, Y: 2, Z: 2}
	if abs(got.X-want.X) > 0.001 || abs(got.Y-want.Y) > 0.001 || abs(got.Z-want.Z) > 0.001 {
		t.Errorf("Compose: got %v, want %v", got, want)
	}
	if m.Translation() != (Vec3{X: 1, Y: 2, Z: 3}) {
		t.Errorf("Translation: got %v", m.Translation())
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func TestTranspose(t *testing.T) {
	m := Translate(1, 2, 3)
	tr := m.Transpose()
	if tr[3] != 1 || tr[7] != 2 || tr[11] != 3 || tr[12] != 0 {
		t.Errorf("Transpose: got %v", tr)
	}
	if m.Transpose().Transpose() != m {
		t.Error("double transpose should be identity")
	}
}

func TestNormalMatrix(t *testing.T) {
	m := Translate(5, 0, 0).Mul(Scale(2, 1, 4))
	n := m.NormalMatrix()

	want := Scale(0.5, 1, 0.25)
	for i := range want {
		if abs(n[i]-want[i]) > 1e-5 {
			t.Fatalf("NormalMatrix: got %v, want %v", n, want)
		}
	}
}

func TestOrtho(t *testing.T) {
	m := Ortho(-10, 10, -10, 10, 0.5, 30)
	tests := []struct {
		in   [3]float32
		want [3]float32
	}{
		{[3]float32{10, 10, -0.5}, [3]float32{1, 1, -1}},
		{[3]float32{-10, -10, -30}, [3]float32{-1, -1, 1}},
		{[3]float32{0, 5, -15.25}, [3]float32{0, 0.5, 0}},
	}
	for _, tt := range tests {
		got := m.TransformPoint(tt.in)
		for i := range got {
			if abs(got[i]-tt.want[i]) > 1e-5 {
				t.Errorf("Ortho * %v = %v, want %v", tt.in, got, tt.want)
				break
			}
		}
	}
}
