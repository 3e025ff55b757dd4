// Package audio plays the short tones that accompany gestures.
package audio

import (
	"bytes"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/generators"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
	"go.uber.org/zap"

	"github.com/Faultbox/robostage/internal/logger"
)

// DefaultSampleRate is the speaker sample rate.
const DefaultSampleRate = beep.SampleRate(44100)

// noteLength is the duration of one note of a synthesized cue.
const noteLength = 90 * time.Millisecond

// melodies are the built-in cues, in Hz. Gestures without an entry get
// fallbackMelody.
var melodies = map[string][]float64{
	"Wave": {660, 880},
	"Bow":  {523.25, 392},
	"Jump": {440, 660, 990},
}

var fallbackMelody = []float64{660}

// Manager mixes gesture cues onto the speaker. The zero volume mutes it.
type Manager struct {
	mu sync.RWMutex

	initialized bool
	speakerOn   bool
	sampleRate  beep.SampleRate
	volume      float64

	// Recorded cues replace the synthesized melody for their gesture.
	recorded map[string]*beep.Buffer

	mixer *beep.Mixer
	log   *zap.Logger
}

// New creates a manager at the given volume (0.0 to 1.0).
func New(volume float64) *Manager {
	return &Manager{
		sampleRate: DefaultSampleRate,
		volume:     clamp(volume, 0, 1),
		recorded:   make(map[string]*beep.Buffer),
		mixer:      &beep.Mixer{},
		log:        logger.Named("audio"),
	}
}

// Init opens the speaker and starts the mixer.
func (m *Manager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}

	err := speaker.Init(m.sampleRate, m.sampleRate.N(time.Second/30))
	if err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(m.mixer)

	m.initialized = true
	m.speakerOn = true
	return nil
}

// Close silences the speaker.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.speakerOn {
		speaker.Clear()
	}
	m.mixer.Clear()
	m.initialized = false
	m.speakerOn = false
}

// SetVolume sets the cue volume (0.0 to 1.0).
func (m *Manager) SetVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.volume = clamp(vol, 0, 1)
}

// Volume returns the cue volume.
func (m *Manager) Volume() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.volume
}

// LoadCue decodes a WAV recording and uses it for gesture from now on.
func (m *Manager) LoadCue(gesture string, data []byte) error {
	streamer, format, err := wav.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("decode wav %s: %w", gesture, err)
	}
	defer streamer.Close()

	var src beep.Streamer = streamer
	if format.SampleRate != m.sampleRate {
		src = beep.Resample(4, format.SampleRate, m.sampleRate, streamer)
	}
	buf := beep.NewBuffer(beep.Format{SampleRate: m.sampleRate, NumChannels: 2, Precision: 2})
	buf.Append(src)

	m.mu.Lock()
	m.recorded[gesture] = buf
	m.mu.Unlock()
	return nil
}

// Cue starts the sound for gesture. It never blocks on the speaker and is
// a no-op before Init.
func (m *Manager) Cue(gesture string) {
	m.mu.RLock()
	initialized, speakerOn, vol := m.initialized, m.speakerOn, m.volume
	m.mu.RUnlock()

	if !initialized || vol <= 0 {
		return
	}

	s, err := m.streamer(gesture)
	if err != nil {
		m.log.Warn("cue unavailable", zap.String("gesture", gesture), zap.Error(err))
		return
	}
	v := &effects.Volume{
		Streamer: s,
		Base:     2,
		Volume:   gainExponent(vol),
	}

	if speakerOn {
		speaker.Lock()
		defer speaker.Unlock()
	}
	m.mixer.Add(v)
}

// streamer builds a fresh stream for one playback of gesture.
func (m *Manager) streamer(gesture string) (beep.Streamer, error) {
	m.mu.RLock()
	buf, ok := m.recorded[gesture]
	m.mu.RUnlock()
	if ok {
		return buf.Streamer(0, buf.Len()), nil
	}

	notes, ok := melodies[gesture]
	if !ok {
		notes = fallbackMelody
	}
	parts := make([]beep.Streamer, 0, len(notes))
	for _, freq := range notes {
		tone, err := generators.SineTone(m.sampleRate, freq)
		if err != nil {
			return nil, err
		}
		parts = append(parts, beep.Take(m.sampleRate.N(noteLength), tone))
	}
	return beep.Seq(parts...), nil
}

// gainExponent converts a 0-1 volume to a base-2 exponent for
// effects.Volume.
func gainExponent(vol float64) float64 {
	if vol <= 0 {
		return -16
	}
	return math.Log2(vol)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
