// Package term hosts the rig in a terminal: tcell mouse input drives the
// sampler and the skeleton is drawn as a stick figure.
package term

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/Faultbox/robostage/internal/assets"
	"github.com/Faultbox/robostage/internal/engine/driver"
	"github.com/Faultbox/robostage/pkg/math"
)

// CellAspect is how many times taller than wide a terminal cell is.
const CellAspect = 2

var (
	styleStatus = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	styleGround = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleBone   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleJoint  = tcell.StyleDefault.Foreground(tcell.ColorLightGray)
	styleHead   = tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)
	styleAim    = tcell.StyleDefault.Foreground(tcell.ColorYellow)
)

// Renderer draws frames onto a tcell screen.
type Renderer struct {
	screen tcell.Screen
	model  *assets.Model
	Frames int
}

var _ driver.Renderer = (*Renderer)(nil)

// NewRenderer creates a renderer for screen.
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Upload keeps the model for drawing. There is nothing to allocate.
func (r *Renderer) Upload(m *assets.Model) error {
	r.model = m
	return nil
}

// Release forgets the model.
func (r *Renderer) Release() {
	r.model = nil
}

// Render draws one frame and shows it.
func (r *Renderer) Render(f *driver.Frame) {
	r.Frames++
	s := r.screen
	s.Clear()
	cols, rows := s.Size()
	if cols <= 0 || rows <= 0 {
		return
	}

	if f.Model == nil {
		msg := "loading..."
		r.text((cols-len(msg))/2, rows/2, msg, styleStatus)
		s.Show()
		return
	}

	vp := f.Camera.ViewProjection()
	project := func(p math.Vec3) (int, int, bool) {
		c := vp.MulVec4(math.Vec4{p.X, p.Y, p.Z, 1})
		if c[3] <= 0 {
			return 0, 0, false
		}
		x := (c[0]/c[3] + 1) / 2 * float32(cols)
		y := (1 - c[1]/c[3]) / 2 * float32(rows)
		return int(x), int(y), true
	}

	// Ground line across the bound.
	if hw := f.HalfWidth; hw > 0 {
		for i := 0; i <= 2*cols; i++ {
			x := -hw + hw*float32(i)/float32(cols)
			if cx, cy, ok := project(math.Vec3{X: x}); ok {
				r.put(cx, cy, '_', styleGround)
			}
		}
	}

	skel := f.Model.Skeleton
	for i, b := range skel.Bones {
		if b.Parent < 0 {
			continue
		}
		x0, y0, ok0 := project(skel.WorldPosition(b.Parent))
		x1, y1, ok1 := project(skel.WorldPosition(i))
		if ok0 && ok1 {
			r.line(x0, y0, x1, y1, '.', styleBone)
		}
	}
	for i := range skel.Bones {
		if x, y, ok := project(skel.WorldPosition(i)); ok {
			r.put(x, y, 'o', styleJoint)
		}
	}
	if m := f.Model; m.Head >= 0 {
		if x, y, ok := project(skel.WorldPosition(m.Head)); ok {
			r.put(x, y, headRune(f.Head.Yaw), styleHead)
		}
	}
	if f.Signal.HasInput {
		if x, y, ok := project(f.Aim); ok {
			r.put(x, y, 'x', styleAim)
		}
	}

	r.text(0, 0, Status(f), styleStatus)
	r.text(0, rows-1, "mouse: steer   1-9: gestures   q: quit", styleStatus)
	s.Show()
}

// Status is the one-line summary shown at the top of the screen.
func Status(f *driver.Frame) string {
	if f.Model == nil {
		return fmt.Sprintf("%s  t=%.1fs", f.Phase, f.Elapsed)
	}
	return fmt.Sprintf("%s  %s  clip=%s  x=%+.2f  yaw=%+.2f pitch=%+.2f",
		f.Phase, f.Gait, f.Clip, f.Pose.Position.X, f.Head.Yaw, f.Head.Pitch)
}

// headRune shows which way the head is turned.
func headRune(yaw float32) rune {
	switch {
	case yaw > 0.25:
		return '>'
	case yaw < -0.25:
		return '<'
	default:
		return '@'
	}
}

func (r *Renderer) put(x, y int, ch rune, style tcell.Style) {
	cols, rows := r.screen.Size()
	if x < 0 || y < 0 || x >= cols || y >= rows {
		return
	}
	r.screen.SetContent(x, y, ch, nil, style)
}

func (r *Renderer) text(x, y int, s string, style tcell.Style) {
	for i, ch := range []rune(s) {
		r.put(x+i, y, ch, style)
	}
}

// line draws a Bresenham line.
func (r *Renderer) line(x0, y0, x1, y1 int, ch rune, style tcell.Style) {
	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		r.put(x0, y0, ch, style)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
