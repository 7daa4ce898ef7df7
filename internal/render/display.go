package render

import (
	"github.com/vovakirdan/polygove/internal/core"
	"github.com/vovakirdan/polygove/internal/world"
)

// Display is the display service. It forwards drawing to a backend while
// started and ignores it otherwise.
type Display struct {
	core.Lifecycle
	backend world.Renderer
}

// NewDisplay wraps backend. A nil backend draws nothing.
func NewDisplay(backend world.Renderer) *Display {
	return &Display{backend: backend}
}

// Name identifies the service.
func (d *Display) Name() string { return "display" }

// StartUp enables drawing.
func (d *Display) StartUp() error { return d.MarkStarted() }

// ShutDown disables drawing.
func (d *Display) ShutDown() error { return d.MarkStopped() }

// Backend returns the wrapped backend.
func (d *Display) Backend() world.Renderer { return d.backend }

func (d *Display) active() bool {
	return d.IsStarted() && d.backend != nil
}

func (d *Display) BeginFrame(cam world.Camera) {
	if fr, ok := d.backend.(world.FrameRenderer); ok && d.active() {
		fr.BeginFrame(cam)
	}
}

func (d *Display) EndFrame() {
	if fr, ok := d.backend.(world.FrameRenderer); ok && d.active() {
		fr.EndFrame()
	}
}

func (d *Display) Draw(e *world.Entity) {
	if d.active() {
		d.backend.Draw(e)
	}
}

func (d *Display) DrawBox(b core.Box) {
	if d.active() {
		d.backend.DrawBox(b)
	}
}

func (d *Display) Clear() {
	if d.active() {
		d.backend.Clear()
	}
}
