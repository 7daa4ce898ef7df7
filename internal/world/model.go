package world

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/polygove/internal/core"
)

// Model is the drawable description of an entity.
type Model struct {
	Shape       core.Shape
	Color       core.Color
	Translate   core.Vector // world position the model is drawn at
	Scale       core.Vector
	RotateAngle float64 // degrees
	RotateAxis  core.Vector
	BoxSize     core.Vector // collision extents before scaling
}

// DefaultModel is a unit cube with no rotation.
func DefaultModel() Model {
	return Model{
		Shape:      core.ShapeCube,
		Scale:      core.Vec(1, 1, 1),
		RotateAxis: core.Vec(0, 1, 0),
		BoxSize:    core.Vec(1, 1, 1),
	}
}

// Matrix returns the world transform used to draw the model.
func (m Model) Matrix() mgl64.Mat4 {
	return core.ModelMatrix(m.Translate, m.Scale, m.RotateAngle, m.RotateAxis)
}
