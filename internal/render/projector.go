package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/polygove/internal/core"
	"github.com/vovakirdan/polygove/internal/world"
)

// cellAspect is the height of a terminal cell relative to its width.
const cellAspect = 2.0

// Lens holds the perspective parameters.
type Lens struct {
	FOV  float64 // vertical field of view, degrees
	Near float64
	Far  float64
}

// DefaultLens is a 60 degree lens with a 0.1..100 depth range.
func DefaultLens() Lens {
	return Lens{FOV: 60, Near: 0.1, Far: 100}
}

// Projector maps world points to screen cells for one camera.
type Projector struct {
	viewProj mgl64.Mat4
	width    int
	height   int
}

// NewProjector builds the view-projection for cam on a width x height
// cell grid.
func NewProjector(cam world.Camera, lens Lens, width, height int) Projector {
	aspect := 1.0
	if height > 0 {
		aspect = float64(width) / (cellAspect * float64(height))
	}
	proj := mgl64.Perspective(mgl64.DegToRad(lens.FOV), aspect, lens.Near, lens.Far)
	return Projector{
		viewProj: proj.Mul4(cam.View()),
		width:    width,
		height:   height,
	}
}

// Project returns the cell p falls on and its distance along the view
// axis. ok is false when p is behind the camera, outside the frustum, or
// the camera is degenerate.
func (p Projector) Project(v core.Vector) (x, y int, depth float64, ok bool) {
	if p.width <= 0 || p.height <= 0 {
		return 0, 0, 0, false
	}
	clip := p.viewProj.Mul4x1(v.Vec3().Vec4(1))
	w := clip.W()
	if !(w > 0) {
		return 0, 0, 0, false
	}
	ndc := clip.Vec3().Mul(1 / w)
	for _, c := range ndc {
		if math.IsNaN(c) || c < -1 || c > 1 {
			return 0, 0, 0, false
		}
	}
	x = int(math.Round((ndc.X() + 1) / 2 * float64(p.width-1)))
	y = int(math.Round((1 - ndc.Y()) / 2 * float64(p.height-1)))
	return x, y, w, true
}
