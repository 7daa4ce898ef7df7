package world

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/polygove/internal/core"
)

// AddChild attaches child under parent. Both must be registered. The
// child's position is thereafter relative to the parent. A child that
// already has a parent, or an attachment that would close a loop, is
// refused and nothing changes.
func (w *World) AddChild(parent, child *Entity) error {
	if _, ok := w.members[parent.id]; !ok {
		return ErrNotFound
	}
	if _, ok := w.members[child.id]; !ok {
		return ErrNotFound
	}
	if child.parent != 0 {
		return ErrHasParent
	}
	for a := parent; a != nil; a = a.Parent() {
		if a == child {
			return ErrCycle
		}
	}

	child.parent = parent.id
	parent.children = append(parent.children, child.id)
	child.position = core.TransformPoint(w.parentMatrix(child), child.local)
	child.refreshModel()
	return nil
}

// RemoveChild detaches child from parent. The child keeps its current
// world position and becomes a root.
func (w *World) RemoveChild(parent, child *Entity) error {
	if child.parent != parent.id || parent.id == 0 {
		return ErrNotFound
	}
	w.unlink(parent, child)
	return nil
}

func (w *World) unlink(parent, child *Entity) {
	for i, id := range parent.children {
		if id == child.id {
			parent.children = append(parent.children[:i], parent.children[i+1:]...)
			break
		}
	}
	child.parent = 0
	shift := child.local.Sub(child.initial)
	child.local = child.position
	child.initial = child.position.Sub(shift)
}

// detach cuts every hierarchy link of e before it leaves the world.
func (w *World) detach(e *Entity) {
	if p := e.Parent(); p != nil {
		w.unlink(p, e)
	}
	for _, c := range e.Children() {
		w.unlink(e, c)
	}
	e.children = nil
}

// parentMatrix composes the local matrices of every ancestor of e, root
// first, so that it maps e's local position into world space.
func (w *World) parentMatrix(e *Entity) mgl64.Mat4 {
	m := mgl64.Ident4()
	for a := e.Parent(); a != nil; a = a.Parent() {
		m = a.localMatrix().Mul4(m)
	}
	return m
}
