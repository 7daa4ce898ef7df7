// Package audio provides the resource service: decoded sounds kept in
// memory under a label. No output device is opened; behaviors fetch the
// buffers and decide what to do with them.
package audio

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/wav"

	"github.com/vovakirdan/polygove/internal/core"
)

// SampleRate is used for synthesized tones.
const SampleRate = beep.SampleRate(44100)

var (
	ErrSoundNotFound = errors.New("audio: sound not found")
	ErrDuplicateName = errors.New("audio: label already loaded")
)

// Resources is the resource service.
type Resources struct {
	mu        sync.Mutex
	lifecycle core.Lifecycle
	log       *log.Logger
	sounds    map[string]*beep.Buffer
}

// New creates a stopped resource service. A nil logger discards output.
func New(logger *log.Logger) *Resources {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Resources{
		log:    logger,
		sounds: make(map[string]*beep.Buffer),
	}
}

// Name identifies the service.
func (r *Resources) Name() string { return "resource" }

// StartUp allows loading.
func (r *Resources) StartUp() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lifecycle.MarkStarted()
}

// ShutDown releases every sound.
func (r *Resources) ShutDown() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.lifecycle.MarkStopped(); err != nil {
		return err
	}
	r.sounds = make(map[string]*beep.Buffer)
	return nil
}

// IsStarted reports whether sounds can be loaded.
func (r *Resources) IsStarted() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lifecycle.IsStarted()
}

// LoadSound decodes the WAV file at path and keeps it under label.
func (r *Resources) LoadSound(path, label string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("audio: cannot open %s: %w", path, err)
	}
	defer f.Close()

	streamer, format, err := wav.Decode(f)
	if err != nil {
		return fmt.Errorf("audio: cannot decode %s: %w", path, err)
	}
	defer streamer.Close()

	buf := beep.NewBuffer(format)
	buf.Append(streamer)
	if err := streamer.Err(); err != nil {
		return fmt.Errorf("audio: cannot read %s: %w", path, err)
	}

	if err := r.store(label, buf); err != nil {
		return err
	}
	r.log.Debug("sound loaded", "label", label, "path", path, "samples", buf.Len())
	return nil
}

// LoadTone synthesizes a sine tone of the given frequency and duration and
// keeps it under label.
func (r *Resources) LoadTone(label string, freq float64, d time.Duration) error {
	sine, err := generators.SineTone(SampleRate, freq)
	if err != nil {
		return fmt.Errorf("audio: cannot synthesize %s: %w", label, err)
	}
	buf := beep.NewBuffer(beep.Format{SampleRate: SampleRate, NumChannels: 2, Precision: 2})
	buf.Append(beep.Take(SampleRate.N(d), sine))

	if err := r.store(label, buf); err != nil {
		return err
	}
	r.log.Debug("tone loaded", "label", label, "freq", freq, "duration", d)
	return nil
}

func (r *Resources) store(label string, buf *beep.Buffer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.lifecycle.IsStarted() {
		return core.ErrNotStarted
	}
	if _, ok := r.sounds[label]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateName, label)
	}
	r.sounds[label] = buf
	return nil
}

// Sound returns the buffer stored under label.
func (r *Resources) Sound(label string) (*beep.Buffer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	buf, ok := r.sounds[label]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrSoundNotFound, label)
	}
	return buf, nil
}

// UnloadSound forgets the sound stored under label.
func (r *Resources) UnloadSound(label string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sounds[label]; !ok {
		return fmt.Errorf("%w: %q", ErrSoundNotFound, label)
	}
	delete(r.sounds, label)
	return nil
}

// Labels returns the loaded labels in sorted order.
func (r *Resources) Labels() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.sounds))
	for l := range r.sounds {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}
