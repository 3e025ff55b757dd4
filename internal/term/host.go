package term

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/Faultbox/robostage/internal/assets"
	"github.com/Faultbox/robostage/internal/config"
	"github.com/Faultbox/robostage/internal/engine/driver"
	"github.com/Faultbox/robostage/internal/engine/input"
	"github.com/Faultbox/robostage/internal/logger"
)

// FrameInterval is the terminal host's frame period.
const FrameInterval = 16 * time.Millisecond

// Host runs a driver against a tcell screen.
type Host struct {
	screen   tcell.Screen
	driver   *driver.Driver
	queue    *driver.FrameQueue
	renderer *Renderer
	samplers map[int]*input.Sampler
	next     int
	log      *zap.Logger
}

// NewHost wires a driver to screen. The screen must already be initialized.
func NewHost(cfg *config.Config, screen tcell.Screen, loader *assets.Loader) *Host {
	h := &Host{
		screen:   screen,
		queue:    driver.NewFrameQueue(),
		renderer: NewRenderer(screen),
		samplers: make(map[int]*input.Sampler),
		log:      logger.Named("term"),
	}
	h.driver = driver.New(cfg, loader, h.queue, h.renderer)
	cols, rows := screen.Size()
	h.resize(cols, rows)
	return h
}

// Driver returns the hosted driver.
func (h *Host) Driver() *driver.Driver { return h.driver }

// Listen implements the driver's event source.
func (h *Host) Listen(s *input.Sampler) func() {
	id := h.next
	h.next++
	h.samplers[id] = s
	return func() { delete(h.samplers, id) }
}

// Handle applies one terminal event. It returns false when the user quits.
func (h *Host) Handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventMouse:
		x, y := ev.Position()
		for _, s := range h.samplers {
			s.PointerMove(float32(x)+0.5, (float32(y)+0.5)*CellAspect)
		}

	case *tcell.EventResize:
		h.resize(ev.Size())
		h.screen.Sync()

	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyRune:
			r := ev.Rune()
			if r == 'q' {
				return false
			}
			if r >= '1' && r <= '9' {
				h.gesture(int(r - '1'))
			}
		}
	}
	return true
}

func (h *Host) resize(cols, rows int) {
	h.driver.Resize(cols, rows*CellAspect)
}

func (h *Host) gesture(i int) {
	m := h.driver.State().Model
	if m == nil {
		return
	}
	if g := m.Gestures(); i < len(g) {
		h.driver.TriggerGesture(g[i])
	}
}

// Run mounts the driver and drives frames until the user quits or ctx ends.
func (h *Host) Run(ctx context.Context) {
	h.screen.EnableMouse(tcell.MouseMotionEvents)
	h.driver.Mount(ctx, h)
	defer h.driver.Dispose()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := h.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(FrameInterval)
	defer ticker.Stop()
	start := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok || !h.Handle(ev) {
				h.log.Info("quit requested")
				return
			}
		case <-ticker.C:
			h.queue.RunFrame(time.Since(start))
		}
	}
}
