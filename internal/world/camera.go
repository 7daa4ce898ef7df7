package world

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/polygove/internal/core"
)

// Camera is the eye/at/up triple a renderer builds its view from.
type Camera struct {
	Eye core.Vector
	At  core.Vector
	Up  core.Vector
}

// DefaultCamera looks at the origin from slightly above and in front.
func DefaultCamera() Camera {
	return Camera{
		Eye: core.Vec(0, 2, 4),
		At:  core.Zero,
		Up:  core.Vec(0, 1, 0),
	}
}

// View returns the look-at matrix.
func (c Camera) View() mgl64.Mat4 {
	return mgl64.LookAtV(c.Eye.Vec3(), c.At.Vec3(), c.Up.Vec3())
}

// Camera returns the current camera.
func (w *World) Camera() Camera { return w.camera }

// SetCamera replaces the camera. Follow targets keep overriding their
// component on the next move.
func (w *World) SetCamera(c Camera) { w.camera = c }

// FollowEye makes the camera eye track e. A nil e stops tracking.
func (w *World) FollowEye(e *Entity) {
	w.followEye = w.track(e, func(c *Camera, p core.Vector) { c.Eye = p })
}

// FollowAt makes the camera target track e. A nil e stops tracking.
func (w *World) FollowAt(e *Entity) {
	w.followAt = w.track(e, func(c *Camera, p core.Vector) { c.At = p })
}

// FollowUp makes the camera up vector track e. A nil e stops tracking.
func (w *World) FollowUp(e *Entity) {
	w.followUp = w.track(e, func(c *Camera, p core.Vector) { c.Up = p })
}

func (w *World) track(e *Entity, set func(*Camera, core.Vector)) ID {
	if e == nil {
		return 0
	}
	set(&w.camera, e.position)
	return e.id
}

// Following returns the ids tracked by eye, at and up; zero means none.
func (w *World) Following() (eye, at, up ID) {
	return w.followEye, w.followAt, w.followUp
}

func (w *World) follow(e *Entity) {
	if w.followEye == e.id {
		w.camera.Eye = e.position
	}
	if w.followAt == e.id {
		w.camera.At = e.position
	}
	if w.followUp == e.id {
		w.camera.Up = e.position
	}
}

func (w *World) unfollow(id ID) {
	if w.followEye == id {
		w.followEye = 0
	}
	if w.followAt == id {
		w.followAt = 0
	}
	if w.followUp == id {
		w.followUp = 0
	}
}
