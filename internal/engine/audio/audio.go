// Package audio plays short sound effects through a shared mixer.
package audio

import (
	"bytes"
	"fmt"
	"io"
	gomath "math"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
)

// DefaultSampleRate is the speaker output rate.
const DefaultSampleRate = beep.SampleRate(44100)

// Clip is a decoded sound held in memory at the output sample rate.
type Clip struct {
	buf *beep.Buffer
}

// Len returns the clip length in samples.
func (c *Clip) Len() int {
	return c.buf.Len()
}

// Duration returns the playback length.
func (c *Clip) Duration() time.Duration {
	return c.buf.Format().SampleRate.D(c.buf.Len())
}

// DecodeClip decodes WAV or MP3 data, chosen by the extension of name, and
// resamples it to DefaultSampleRate.
func DecodeClip(data []byte, name string) (*Clip, error) {
	rc := io.NopCloser(bytes.NewReader(data))

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
		err      error
	)
	switch ext := strings.ToLower(name[strings.LastIndex(name, ".")+1:]); ext {
	case "wav":
		streamer, format, err = wav.Decode(rc)
	case "mp3":
		streamer, format, err = mp3.Decode(rc)
	default:
		return nil, fmt.Errorf("unsupported audio format %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	defer streamer.Close()

	var src beep.Streamer = streamer
	if format.SampleRate != DefaultSampleRate {
		src = beep.Resample(4, format.SampleRate, DefaultSampleRate, streamer)
	}

	buf := beep.NewBuffer(beep.Format{SampleRate: DefaultSampleRate, NumChannels: 2, Precision: 2})
	buf.Append(src)
	return &Clip{buf: buf}, nil
}

// Manager owns the speaker and the effects mixer.
type Manager struct {
	mu sync.RWMutex

	initialized bool
	muted       bool

	// Volumes in [0, 1].
	masterVolume float64
	sfxVolLevel  float64

	mixer *beep.Mixer
}

// New creates a manager at full volume.
func New() *Manager {
	return &Manager{
		masterVolume: 1.0,
		sfxVolLevel:  1.0,
		mixer:        &beep.Mixer{},
	}
}

// Init opens the audio device.
func (m *Manager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}
	if err := speaker.Init(DefaultSampleRate, DefaultSampleRate.N(time.Second/30)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(m.mixer)
	m.initialized = true
	return nil
}

// Close stops playback.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		speaker.Clear()
	}
	m.initialized = false
}

// IsInitialized reports whether Init succeeded.
func (m *Manager) IsInitialized() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.initialized
}

// SetMasterVolume sets the master volume, clamped to [0, 1].
func (m *Manager) SetMasterVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.masterVolume = clamp(vol, 0, 1)
}

// SetSFXVolume sets the effects volume, clamped to [0, 1].
func (m *Manager) SetSFXVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sfxVolLevel = clamp(vol, 0, 1)
}

// SetMuted silences all new playback.
func (m *Manager) SetMuted(muted bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.muted = muted
}

// Muted reports the mute state.
func (m *Manager) Muted() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.muted
}

// MasterVolume returns the master volume.
func (m *Manager) MasterVolume() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.masterVolume
}

// SFXVolume returns the effects volume.
func (m *Manager) SFXVolume() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sfxVolLevel
}

// Play mixes a clip in. Overlapping plays are allowed.
func (m *Manager) Play(c *Clip) error {
	m.mu.RLock()
	initialized, muted := m.initialized, m.muted
	vol := m.masterVolume * m.sfxVolLevel
	m.mu.RUnlock()

	if !initialized {
		return fmt.Errorf("audio not initialized")
	}
	if muted || vol <= 0 {
		return nil
	}

	speaker.Lock()
	m.mixer.Add(&effects.Volume{
		Streamer: c.buf.Streamer(0, c.buf.Len()),
		Base:     2,
		Volume:   volumeToExponent(vol),
	})
	speaker.Unlock()
	return nil
}

// PlaySFX decodes and plays data in one step.
func (m *Manager) PlaySFX(data []byte, name string) error {
	c, err := DecodeClip(data, name)
	if err != nil {
		return err
	}
	return m.Play(c)
}

// volumeToExponent maps linear gain to the base-2 exponent effects.Volume
// expects: 1 -> 0, 0.5 -> -1.
func volumeToExponent(vol float64) float64 {
	if vol <= 0 {
		return -100
	}
	return gomath.Log2(vol)
}

// volumeToDb converts linear gain to decibels.
func volumeToDb(vol float64) float64 {
	if vol <= 0 {
		return -100
	}
	return 20 * gomath.Log10(vol)
}

func clamp(v, lo, hi float64) float64 {
	return gomath.Min(gomath.Max(v, lo), hi)
}
