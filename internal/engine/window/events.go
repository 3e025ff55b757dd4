package window

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/robostage/internal/engine/input"
)

// Events fans SDL events out to the registered samplers and host callbacks.
// It implements the driver's event source.
type Events struct {
	samplers map[int]*input.Sampler
	next     int
	touch    [1]input.Point

	// Window size in points, for normalizing touch coordinates.
	width, height float32

	// OnResize receives the new size in points.
	OnResize func(width, height int)
	// OnKey receives key presses (not repeats).
	OnKey func(key sdl.Keycode)
}

// NewEvents creates an event hub for a window of the given size.
func NewEvents(width, height int) *Events {
	return &Events{
		samplers: make(map[int]*input.Sampler),
		width:    float32(width),
		height:   float32(height),
	}
}

// Listen delivers pointer and touch events to s until the returned function
// is called.
func (e *Events) Listen(s *input.Sampler) func() {
	id := e.next
	e.next++
	e.samplers[id] = s
	return func() { delete(e.samplers, id) }
}

// Poll drains the SDL queue. It returns false once the user asked to quit.
func (e *Events) Poll() bool {
	running := true
	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		if !e.Dispatch(ev) {
			running = false
		}
	}
	return running
}

// Dispatch handles one event and reports whether the host should keep
// running.
func (e *Events) Dispatch(ev sdl.Event) bool {
	switch ev := ev.(type) {
	case *sdl.QuitEvent:
		return false

	case *sdl.MouseMotionEvent:
		for _, s := range e.samplers {
			s.PointerMove(float32(ev.X), float32(ev.Y))
		}

	case *sdl.TouchFingerEvent:
		if ev.Type == sdl.FINGERUP {
			break
		}
		// Finger coordinates are normalized to the window.
		e.touch[0] = input.Point{X: ev.X * e.width, Y: ev.Y * e.height}
		for _, s := range e.samplers {
			s.TouchMove(e.touch[:])
		}

	case *sdl.SensorEvent:
		// Only accelerometers are opened; Data holds m/s^2 per device axis.
		gamma, beta := input.GravityTilt(ev.Data[0], ev.Data[1], ev.Data[2])
		for _, s := range e.samplers {
			s.Orientation(gamma, beta)
		}

	case *sdl.WindowEvent:
		if ev.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
			e.width, e.height = float32(ev.Data1), float32(ev.Data2)
			if e.OnResize != nil {
				e.OnResize(int(ev.Data1), int(ev.Data2))
			}
		}

	case *sdl.KeyboardEvent:
		if ev.Type == sdl.KEYDOWN && ev.Repeat == 0 {
			if ev.Keysym.Sym == sdl.K_ESCAPE {
				return false
			}
			if e.OnKey != nil {
				e.OnKey(ev.Keysym.Sym)
			}
		}
	}
	return true
}
