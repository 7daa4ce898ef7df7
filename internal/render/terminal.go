package render

import (
	"sync"

	"github.com/vovakirdan/polygove/internal/core"
	"github.com/vovakirdan/polygove/internal/world"
)

// boxGlyph marks bounding box corners, vertexGlyph shape vertices.
const (
	boxGlyph    = '+'
	vertexGlyph = '.'
)

// shapeVertices are the outline points of each shape in model space.
var shapeVertices = map[core.Shape][]core.Vector{
	core.ShapeCube: {
		core.Vec(-0.5, -0.5, -0.5), core.Vec(0.5, -0.5, -0.5),
		core.Vec(-0.5, 0.5, -0.5), core.Vec(0.5, 0.5, -0.5),
		core.Vec(-0.5, -0.5, 0.5), core.Vec(0.5, -0.5, 0.5),
		core.Vec(-0.5, 0.5, 0.5), core.Vec(0.5, 0.5, 0.5),
	},
	core.ShapeSphere: {
		core.Vec(-0.5, 0, 0), core.Vec(0.5, 0, 0),
		core.Vec(0, -0.5, 0), core.Vec(0, 0.5, 0),
		core.Vec(0, 0, -0.5), core.Vec(0, 0, 0.5),
	},
	core.ShapePyramid: {
		core.Vec(-0.5, -0.5, -0.5), core.Vec(0.5, -0.5, -0.5),
		core.Vec(-0.5, -0.5, 0.5), core.Vec(0.5, -0.5, 0.5),
		core.Vec(0, 0.5, 0),
	},
}

// Terminal draws entities as glyphs on a Screen through a perspective
// projection. Drawing happens on the loop goroutine; finished frames are
// handed to a publisher and kept for Frame, both safe to read from other
// goroutines.
type Terminal struct {
	lens   Lens
	screen *Screen
	proj   Projector

	mu        sync.Mutex
	frame     *Screen
	frames    int
	resizeW   int
	resizeH   int
	publisher func(*Screen)
}

// NewTerminal creates a backend with a width x height viewport.
func NewTerminal(width, height int, lens Lens) *Terminal {
	return &Terminal{
		lens:   lens,
		screen: NewScreen(width, height),
	}
}

// SetPublisher registers fn to receive every finished frame. The screen
// passed to fn must not be modified.
func (t *Terminal) SetPublisher(fn func(*Screen)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.publisher = fn
}

// Resize changes the viewport from the next frame on.
func (t *Terminal) Resize(width, height int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.resizeW, t.resizeH = width, height
}

// BeginFrame clears the buffer and sets up the projection for cam.
func (t *Terminal) BeginFrame(cam world.Camera) {
	t.mu.Lock()
	if t.resizeW > 0 && t.resizeH > 0 {
		t.screen.Resize(t.resizeW, t.resizeH)
		t.resizeW, t.resizeH = 0, 0
	}
	t.mu.Unlock()

	t.screen.Clear()
	t.proj = NewProjector(cam, t.lens, t.screen.Width(), t.screen.Height())
}

// Draw plots the entity's shape glyph at its model translate and the
// shape's vertices placed by the model matrix. Vertices never cover the
// center cell.
func (t *Terminal) Draw(e *world.Entity) {
	m := e.Model()
	if m.Shape == core.ShapeNone {
		return
	}
	cx, cy, depth, ok := t.proj.Project(m.Translate)
	if ok {
		t.screen.Plot(cx, cy, m.Shape.Glyph(), m.Color, depth)
	}

	mat := m.Matrix()
	for _, v := range shapeVertices[m.Shape] {
		x, y, d, vis := t.proj.Project(core.TransformPoint(mat, v))
		if !vis || (ok && x == cx && y == cy) {
			continue
		}
		t.screen.Plot(x, y, vertexGlyph, m.Color, d)
	}
}

// DrawBox plots the corners of b.
func (t *Terminal) DrawBox(b core.Box) {
	for _, c := range b.Corners() {
		if x, y, depth, ok := t.proj.Project(c); ok {
			t.screen.Plot(x, y, boxGlyph, core.ColorGray, depth)
		}
	}
}

// Clear blanks the buffer.
func (t *Terminal) Clear() {
	t.screen.Clear()
}

// EndFrame publishes a copy of the buffer.
func (t *Terminal) EndFrame() {
	frame := t.screen.Clone()

	t.mu.Lock()
	t.frame = frame
	t.frames++
	publish := t.publisher
	t.mu.Unlock()

	if publish != nil {
		publish(frame)
	}
}

// Frame returns the last finished frame, or nil before the first one.
// The returned screen must not be modified.
func (t *Terminal) Frame() *Screen {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.frame
}

// Frames returns how many frames have been finished.
func (t *Terminal) Frames() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.frames
}
