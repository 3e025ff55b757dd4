// Package stage is the desktop host: it owns the window, the renderer and
// the frame loop, and feeds SDL input into the driver.
package stage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/robostage/internal/assets"
	"github.com/Faultbox/robostage/internal/config"
	"github.com/Faultbox/robostage/internal/engine/audio"
	"github.com/Faultbox/robostage/internal/engine/driver"
	"github.com/Faultbox/robostage/internal/engine/renderer"
	"github.com/Faultbox/robostage/internal/engine/scene"
	"github.com/Faultbox/robostage/internal/engine/snapshot"
	"github.com/Faultbox/robostage/internal/engine/window"
	"github.com/Faultbox/robostage/internal/logger"
)

// Title is the window title.
const Title = "robostage"

// Stage is the desktop host instance.
type Stage struct {
	config   *config.Config
	window   *window.Window
	renderer *renderer.Renderer
	events   *window.Events
	audio    *audio.Manager
	assets   *assets.Manager

	queue  *driver.FrameQueue
	driver *driver.Driver

	snapshots    *snapshot.Writer
	wantSnapshot bool

	running bool
	log     *zap.Logger
}

// New opens the window and wires the driver to it.
func New(cfg *config.Config) (*Stage, error) {
	s := &Stage{
		config:    cfg,
		queue:     driver.NewFrameQueue(),
		assets:    assets.NewManager(),
		snapshots: snapshot.NewWriter(cfg.Graphics.SnapshotDir, Title),
		log:       logger.Named("stage"),
	}
	s.log.Info("initializing stage",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
	)

	for _, dir := range cfg.Assets.SearchPaths {
		if err := s.assets.AddSearchPath(dir); err != nil {
			s.log.Warn("skipping asset path", zap.String("path", dir), zap.Error(err))
		}
	}

	var err error
	s.window, err = window.New(window.Config{
		Title:      Title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Renderer AFTER window, since the OpenGL context must exist
	fbw, fbh := s.window.GetDrawableSize()
	s.renderer, err = renderer.New(renderer.Config{
		Width:  fbw,
		Height: fbh,
		Scene:  scene.DefaultConfig(),
	})
	if err != nil {
		s.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	w, h := s.window.GetSize()
	s.events = window.NewEvents(w, h)
	s.events.OnResize = s.resize
	s.events.OnKey = s.key

	s.driver = driver.New(cfg, assets.NewLoader(s.assets), s.queue, s.renderer)
	s.driver.Resize(w, h)
	s.driver.OnLoadFailed = func(err error) {
		s.window.SetTitle(Title + " (model failed to load)")
	}

	if cfg.Audio.Enabled {
		s.initAudio()
	}

	s.log.Info("stage initialized")
	return s, nil
}

func (s *Stage) initAudio() {
	a := audio.New(float64(s.config.Audio.Volume))
	if err := a.Init(); err != nil {
		s.log.Warn("audio disabled", zap.Error(err))
		return
	}
	for _, g := range []string{"Wave", "Bow", "Jump"} {
		data, err := s.assets.Load("cues/" + g + ".wav")
		if errors.Is(err, assets.ErrNotFound) {
			continue
		}
		if err == nil {
			err = a.LoadCue(g, data)
		}
		if err != nil {
			s.log.Warn("gesture cue", zap.String("gesture", g), zap.Error(err))
		}
	}
	s.audio = a
	s.driver.SetCuePlayer(a)
}

// Run drives frames until the window closes or ctx is cancelled.
func (s *Stage) Run(ctx context.Context) error {
	s.running = true
	s.driver.Mount(ctx, s.events)

	start := time.Now()
	frameCount := 0
	fpsTimer := start

	s.log.Info("starting frame loop")

	for s.running {
		if ctx.Err() != nil || !s.events.Poll() {
			break
		}

		if s.queue.RunFrame(time.Since(start)) == 0 {
			// Nothing asked for a frame: the driver is gone.
			break
		}
		if s.wantSnapshot {
			s.wantSnapshot = false
			s.saveSnapshot()
		}
		s.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			s.log.Debug("fps", zap.Int("count", frameCount), zap.Stringer("phase", s.driver.Phase()))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	s.running = false
	return nil
}

// Close tears down the driver, then the GPU and the window.
func (s *Stage) Close() {
	s.log.Info("closing stage")

	if s.driver != nil {
		s.driver.Dispose()
	}
	if s.audio != nil {
		s.audio.Close()
	}
	if s.renderer != nil {
		s.renderer.Close()
	}
	if s.window != nil {
		s.window.Close()
	}
	s.assets.Close()
}

func (s *Stage) resize(width, height int) {
	s.driver.Resize(width, height)
	fbw, fbh := s.window.GetDrawableSize()
	s.renderer.Resize(fbw, fbh)
}

func (s *Stage) saveSnapshot() {
	pixels, w, h := s.renderer.ReadPixels()
	name, err := s.snapshots.WritePixels(pixels, w, h)
	if err != nil {
		s.log.Warn("snapshot failed", zap.Error(err))
		return
	}
	s.log.Info("snapshot saved", zap.String("file", name))
}

// key maps the number row onto the model's gestures in name order. F12
// saves the next frame.
func (s *Stage) key(k sdl.Keycode) {
	if k == sdl.K_F12 {
		s.wantSnapshot = true
		return
	}
	if k < sdl.K_1 || k > sdl.K_9 {
		return
	}
	m := s.driver.State().Model
	if m == nil {
		return
	}
	gestures := m.Gestures()
	if i := int(k - sdl.K_1); i < len(gestures) {
		s.driver.TriggerGesture(gestures[i])
	}
}
