package render

import (
	"sync"

	"github.com/vovakirdan/polygove/internal/core"
	"github.com/vovakirdan/polygove/internal/world"
)

// Op is the kind of a recorded call.
type Op int

const (
	OpDraw Op = iota
	OpDrawBox
	OpClear
)

func (o Op) String() string {
	switch o {
	case OpDraw:
		return "draw"
	case OpDrawBox:
		return "box"
	case OpClear:
		return "clear"
	default:
		return "unknown"
	}
}

// Call is one recorded backend call.
type Call struct {
	Op     Op
	Entity world.ID
	Type   string
	Model  world.Model
	Box    core.Box
}

// Totals counts calls across all frames.
type Totals struct {
	Frames int
	Draws  int
	Boxes  int
	Clears int
}

// Recorder is a backend that remembers the calls of the current frame and
// counts every call. Headless runs and tests use it.
type Recorder struct {
	mu     sync.Mutex
	calls  []Call
	camera world.Camera
	totals Totals
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) BeginFrame(cam world.Camera) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = r.calls[:0]
	r.camera = cam
}

func (r *Recorder) EndFrame() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.totals.Frames++
}

func (r *Recorder) Draw(e *world.Entity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, Call{Op: OpDraw, Entity: e.ID(), Type: e.Type(), Model: e.Model(), Box: e.Box()})
	r.totals.Draws++
}

func (r *Recorder) DrawBox(b core.Box) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, Call{Op: OpDrawBox, Box: b})
	r.totals.Boxes++
}

func (r *Recorder) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, Call{Op: OpClear})
	r.totals.Clears++
}

// Calls returns the calls of the last frame.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Call, len(r.calls))
	copy(out, r.calls)
	return out
}

// Camera returns the camera of the last frame.
func (r *Recorder) Camera() world.Camera {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.camera
}

// Totals returns the call counters.
func (r *Recorder) Totals() Totals {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.totals
}
