package assets

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newTestLoader(t *testing.T, files map[string]string) *Loader {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		writeFile(t, dir, name, content)
	}
	m := NewManager()
	if err := m.AddSearchPath(dir); err != nil {
		t.Fatal(err)
	}
	return NewLoader(m)
}

func TestLoadBuiltinRobot(t *testing.T) {
	l := newTestLoader(t, nil)
	for _, name := range []string{"", "robot", "Robot"} {
		m, err := l.Load(context.Background(), name, "")
		if err != nil {
			t.Fatalf("Load(%q): %v", name, err)
		}
		if m.Name != RobotName || m.Attachment == nil {
			t.Errorf("Load(%q) = %q attachment=%v", name, m.Name, m.Attachment != nil)
		}
	}
}

func TestLoadWithoutAttachment(t *testing.T) {
	l := newTestLoader(t, nil)
	m, err := l.Load(context.Background(), "", NoAttachment)
	if err != nil {
		t.Fatal(err)
	}
	if m.Attachment != nil {
		t.Error("attachment should be dropped")
	}
}

func TestLoadFileModelAndAttachment(t *testing.T) {
	l := newTestLoader(t, map[string]string{
		"stick.yaml":   minimalModel,
		"goggles.yaml": "name: goggles\nbone: neck\nparts:\n  - name: band\n    shape: cylinder\n",
	})
	m, err := l.Load(context.Background(), "stick.yaml", "goggles.yaml")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if m.Name != "stick" || m.Attachment == nil || m.Attachment.Bone != m.Neck {
		t.Errorf("loaded %q with attachment %+v", m.Name, m.Attachment)
	}
}

func TestLoadErrors(t *testing.T) {
	l := newTestLoader(t, map[string]string{"broken.yaml": "bones: ["})

	tests := []struct {
		name       string
		model, att string
		want       error
	}{
		{"missing model", "nope.yaml", "", ErrNotFound},
		{"malformed model", "broken.yaml", "", ErrInvalid},
		{"missing attachment", "", "nope.yaml", ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := l.Load(context.Background(), tt.model, tt.att)
			if !errors.Is(err, tt.want) {
				t.Errorf("Load() error = %v, want %v", err, tt.want)
			}
		})
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := l.Load(ctx, "", ""); !errors.Is(err, context.Canceled) {
		t.Errorf("Load(cancelled) error = %v", err)
	}
}

func TestLoadAsyncPolls(t *testing.T) {
	l := newTestLoader(t, nil)
	p := l.LoadAsync(context.Background(), "", "")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	m, err := p.Wait(ctx)
	if err != nil || m == nil {
		t.Fatalf("Wait() = %v, %v", m, err)
	}

	got, done, err := p.Poll()
	if !done || err != nil || got != m {
		t.Errorf("Poll() after completion = %v, %v, %v", got, done, err)
	}
}

func TestLoadAsyncReportsFailure(t *testing.T) {
	l := newTestLoader(t, nil)
	p := l.LoadAsync(context.Background(), "nope.yaml", "")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := p.Wait(ctx); !errors.Is(err, ErrNotFound) {
		t.Errorf("Wait() error = %v, want ErrNotFound", err)
	}
}

func TestDiscardDropsResult(t *testing.T) {
	l := newTestLoader(t, nil)
	p := l.LoadAsync(context.Background(), "", "")
	p.Discard()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	m, err := p.Wait(ctx)
	if m != nil {
		t.Error("discarded load handed out a model")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Wait() error = %v, want context.Canceled", err)
	}
}
