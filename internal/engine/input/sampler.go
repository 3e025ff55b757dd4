// Package input normalizes pointer, touch and tilt events into one control signal.
package input

import (
	gomath "math"

	"github.com/Faultbox/robostage/pkg/math"
)

// ControlSignal is the host-agnostic steering input.
// X and Y are in [-1, 1] with +X right and +Y up.
type ControlSignal struct {
	X, Y     float32
	HasInput bool
}

// Rect is a region of the host surface in host units.
type Rect struct {
	Left, Top, Width, Height float32
}

// Point is a single pointer or touch location in host units.
type Point struct {
	X, Y float32
}

// TiltConfig maps device orientation angles (degrees) onto the signal.
type TiltConfig struct {
	// Range is the tilt, in degrees, that produces a full-scale signal.
	Range float32
	// NeutralBeta is the front-back tilt at which Y reads zero.
	NeutralBeta float32
}

// DefaultTilt matches a phone held at a comfortable reading angle.
func DefaultTilt() TiltConfig {
	return TiltConfig{Range: 30, NeutralBeta: 45}
}

// Sampler stores the latest control signal. Events overwrite it; nothing decays.
// It is written by the host's event callbacks and read once per frame on the
// same thread, so it carries no lock.
type Sampler struct {
	signal    ControlSignal
	viewport  Rect
	container Rect
	contained bool
	tilt      TiltConfig
}

// NewSampler creates a sampler for a viewport of the given size.
func NewSampler(width, height float32, tilt TiltConfig) *Sampler {
	return &Sampler{
		viewport: Rect{Width: width, Height: height},
		tilt:     tilt,
	}
}

// SetViewport updates the viewport size used for normalization.
func (s *Sampler) SetViewport(width, height float32) {
	s.viewport.Width = width
	s.viewport.Height = height
}

// SetContainer normalizes pointer events against r instead of the viewport.
func (s *Sampler) SetContainer(r Rect) {
	s.container = r
	s.contained = true
}

// ClearContainer reverts to viewport normalization.
func (s *Sampler) ClearContainer() {
	s.contained = false
}

// PointerMove records a pointer position.
func (s *Sampler) PointerMove(x, y float32) {
	r := s.viewport
	if s.contained {
		r = s.container
	}
	if r.Width <= 0 || r.Height <= 0 {
		return
	}
	s.signal.X = math.Clamp((x-r.Left)/r.Width*2-1, -1, 1)
	s.signal.Y = math.Clamp(-((y-r.Top)/r.Height*2 - 1), -1, 1)
	s.signal.HasInput = true
}

// TouchMove records the first active touch. An empty list is ignored.
func (s *Sampler) TouchMove(touches []Point) {
	if len(touches) == 0 {
		return
	}
	s.PointerMove(touches[0].X, touches[0].Y)
}

// Orientation records device tilt. gamma is left-right, beta is front-back,
// both in degrees as reported by the host.
func (s *Sampler) Orientation(gamma, beta float32) {
	if s.tilt.Range <= 0 {
		return
	}
	s.signal.X = math.Clamp(gamma/s.tilt.Range, -1, 1)
	s.signal.Y = math.Clamp((s.tilt.NeutralBeta-beta)/s.tilt.Range, -1, 1)
	s.signal.HasInput = true
}

// GravityTilt converts an accelerometer reading into the gamma and beta
// angles Orientation takes. Axes follow the device: +X right, +Y toward the
// top edge, +Z out of the screen. Lying flat reads (0, 0); held upright in
// portrait reads beta 90.
func GravityTilt(ax, ay, az float32) (gamma, beta float32) {
	x, y, z := float64(ax), float64(ay), float64(az)
	if x == 0 && y == 0 && z == 0 {
		return 0, 0
	}
	beta = float32(gomath.Atan2(y, z) * 180 / gomath.Pi)
	gamma = float32(gomath.Atan2(-x, gomath.Hypot(y, z)) * 180 / gomath.Pi)
	return gamma, beta
}

// Signal returns the latest control signal.
func (s *Sampler) Signal() ControlSignal {
	return s.signal
}

// Set overwrites the signal directly. Scripted hosts and tests use it.
func (s *Sampler) Set(sig ControlSignal) {
	sig.X = math.Clamp(sig.X, -1, 1)
	sig.Y = math.Clamp(sig.Y, -1, 1)
	s.signal = sig
}
