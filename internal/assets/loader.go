package assets

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/Faultbox/robostage/internal/logger"
)

// NoAttachment disables the attachment when passed as its name.
const NoAttachment = "none"

// Loader builds models from files or the built-in robot.
type Loader struct {
	manager *Manager
	log     *zap.Logger
}

// NewLoader creates a loader reading through m.
func NewLoader(m *Manager) *Loader {
	return &Loader{manager: m, log: logger.Named("assets")}
}

// Load builds the named model and binds the named attachment to its head.
// An empty model name or RobotName selects the built-in robot, which brings
// its own visor unless attachment names a file or NoAttachment.
func (l *Loader) Load(ctx context.Context, model, attachment string) (*Model, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var m *Model
	if model == "" || strings.EqualFold(model, RobotName) {
		m = Robot()
	} else {
		data, err := l.manager.Load(model)
		if err != nil {
			return nil, fmt.Errorf("loading model: %w", err)
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		m, err = DecodeModel(data)
		if err != nil {
			return nil, fmt.Errorf("decoding %s: %w", model, err)
		}
	}

	switch attachment {
	case "":
	case NoAttachment:
		m.Attachment = nil
	default:
		data, err := l.manager.Load(attachment)
		if err != nil {
			return nil, fmt.Errorf("loading attachment: %w", err)
		}
		a, hint, err := DecodeAttachment(data)
		if err != nil {
			return nil, fmt.Errorf("decoding %s: %w", attachment, err)
		}
		if err := m.Attach(a, hint); err != nil {
			return nil, err
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	l.log.Info("model loaded",
		zap.String("model", m.Name),
		zap.Int("bones", len(m.Skeleton.Bones)),
		zap.Int("clips", m.Clips.Len()),
		zap.Int("parts", len(m.Parts)),
		zap.Bool("attachment", m.Attachment != nil))
	return m, nil
}

// LoadAsync starts Load on its own goroutine and returns immediately.
func (l *Loader) LoadAsync(ctx context.Context, model, attachment string) *Pending {
	ctx, cancel := context.WithCancel(ctx)
	p := &Pending{done: make(chan struct{}), cancel: cancel}
	p.alive.Store(true)

	go func() {
		defer close(p.done)
		m, err := l.Load(ctx, model, attachment)
		if !p.alive.Load() {
			l.log.Debug("discarding load result after dispose", zap.String("model", model))
			return
		}
		p.model, p.err = m, err
	}()
	return p
}

// Pending is an in-flight asynchronous load. The owner polls it once per tick.
type Pending struct {
	done   chan struct{}
	cancel context.CancelFunc
	alive  atomic.Bool

	model *Model
	err   error
}

// Poll reports whether the load has completed and, if so, its result. It
// never blocks. A discarded load never reports a model.
func (p *Pending) Poll() (m *Model, done bool, err error) {
	select {
	case <-p.done:
	default:
		return nil, false, nil
	}
	if !p.alive.Load() {
		return nil, true, context.Canceled
	}
	return p.model, true, p.err
}

// Wait blocks until the load completes or ctx ends.
func (p *Pending) Wait(ctx context.Context) (*Model, error) {
	select {
	case <-p.done:
		m, _, err := p.Poll()
		return m, err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Discard marks the load dead and cancels it. Its result, if any arrives, is
// dropped without being handed to anyone.
func (p *Pending) Discard() {
	p.alive.Store(false)
	p.cancel()
}
