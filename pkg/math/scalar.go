package math

import "math"

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Lerp interpolates from a toward b by t.
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// Abs returns |v|.
func Abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

// Sign returns -1, 0 or 1.
func Sign(v float32) float32 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// DampFactor returns the interpolation factor 1 - e^(-rate*dt).
// Applying it every tick converges at the same wall-clock speed for any tick length.
func DampFactor(rate, dt float32) float32 {
	if dt <= 0 || rate <= 0 {
		return 0
	}
	return 1 - float32(math.Exp(float64(-rate*dt)))
}

// Damp moves current toward target with DampFactor(rate, dt).
func Damp(current, target, rate, dt float32) float32 {
	return Lerp(current, target, DampFactor(rate, dt))
}

// WrapAngle normalizes an angle to (-π, π].
func WrapAngle(a float32) float32 {
	const twoPi = 2 * math.Pi
	for a > math.Pi {
		a -= twoPi
	}
	for a <= -math.Pi {
		a += twoPi
	}
	return a
}

// DampAngle eases an angle toward target along the shortest arc.
func DampAngle(current, target, rate, dt float32) float32 {
	return current + WrapAngle(target-current)*DampFactor(rate, dt)
}

// Atan2 is a float32 wrapper around math.Atan2.
func Atan2(y, x float32) float32 {
	return float32(math.Atan2(float64(y), float64(x)))
}

// Sin is a float32 wrapper around math.Sin.
func Sin(a float32) float32 {
	return float32(math.Sin(float64(a)))
}

// Tan is a float32 wrapper around math.Tan.
func Tan(a float32) float32 {
	return float32(math.Tan(float64(a)))
}

// Radians converts degrees to radians.
func Radians(deg float32) float32 {
	return deg * math.Pi / 180
}
