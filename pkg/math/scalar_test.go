package math

import (
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		v, lo, hi, want float32
	}{
		{0.5, 0, 1, 0.5},
		{-3, -1, 1, -1},
		{7, -1, 1, 1},
	}
	for _, tt := range tests {
		if got := Clamp(tt.v, tt.lo, tt.hi); got != tt.want {
			t.Errorf("Clamp(%v, %v, %v) = %v, want %v", tt.v, tt.lo, tt.hi, got, tt.want)
		}
	}
}

func TestWrapAngle(t *testing.T) {
	tests := []struct {
		in, want float32
	}{
		{0, 0},
		{float32(3 * math.Pi / 2), float32(-math.Pi / 2)},
		{float32(-3 * math.Pi / 2), float32(math.Pi / 2)},
		{float32(5 * math.Pi), float32(math.Pi)},
	}
	for _, tt := range tests {
		if got := WrapAngle(tt.in); abs(got-tt.want) > 0.0001 {
			t.Errorf("WrapAngle(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDampFactorIndependentOfStep(t *testing.T) {
	// One second in 60 steps and in 120 steps must land in the same place.
	coarse, fine := float32(0), float32(0)
	for i := 0; i < 60; i++ {
		coarse = Damp(coarse, 1, 3, 1.0/60)
	}
	for i := 0; i < 120; i++ {
		fine = Damp(fine, 1, 3, 1.0/120)
	}
	if abs(coarse-fine) > 0.0005 {
		t.Errorf("coarse %v vs fine %v differ", coarse, fine)
	}
	want := 1 - float32(math.Exp(-3))
	if abs(coarse-want) > 0.0005 {
		t.Errorf("after 1s got %v, want %v", coarse, want)
	}
}

func TestDampFactorDegenerate(t *testing.T) {
	if DampFactor(5, 0) != 0 || DampFactor(0, 1) != 0 || DampFactor(5, -1) != 0 {
		t.Error("DampFactor should be 0 for non-positive rate or dt")
	}
}

func TestDampAngleShortestArc(t *testing.T) {
	// From just below +π to just above -π should move forward across the seam.
	cur := float32(math.Pi - 0.1)
	got := DampAngle(cur, float32(-math.Pi+0.1), 100, 1)
	if WrapAngle(got) > 0 && WrapAngle(got) < cur {
		t.Errorf("DampAngle went the long way: %v", got)
	}
}

func TestSign(t *testing.T) {
	if Sign(-2) != -1 || Sign(0) != 0 || Sign(0.1) != 1 {
		t.Error("Sign mismatch")
	}
}
