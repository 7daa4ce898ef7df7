package world

import (
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/polygove/internal/core"
)

// ID identifies an entity for the lifetime of the process. Zero is never
// assigned.
type ID uint64

var lastID atomic.Uint64

func nextID() ID {
	return ID(lastID.Add(1))
}

// DefaultType is the type tag of a freshly created entity.
const DefaultType = "Object"

// Behavior reacts to events delivered to an entity. The return value
// reports whether the event was handled; it never stops delivery to other
// entities.
type Behavior interface {
	HandleEvent(self *Entity, ev Event) bool
}

// BehaviorFunc adapts a function to Behavior.
type BehaviorFunc func(self *Entity, ev Event) bool

func (f BehaviorFunc) HandleEvent(self *Entity, ev Event) bool {
	return f(self, ev)
}

// Entity is a simulated object with a transform, an optional place in a
// parent/child hierarchy and a behavior.
//
// For a root entity local and position coincide. For a child, initial and
// local are expressed in the parent's space and position is the resulting
// world position.
type Entity struct {
	id    ID
	typ   string
	world *World

	initial     core.Vector
	local       core.Vector // initial plus accumulated translation
	position    core.Vector
	direction   core.Vector
	speed       float64
	rotateSpeed float64
	solidness   Solidness

	model Model
	box   core.Box

	parent   ID
	children []ID

	behavior Behavior
}

func newEntity(typ string, b Behavior) *Entity {
	if typ == "" {
		typ = DefaultType
	}
	e := &Entity{
		id:        nextID(),
		typ:       typ,
		solidness: Hard,
		model:     DefaultModel(),
		behavior:  b,
	}
	e.refreshModel()
	return e
}

// ID returns the process-unique identifier.
func (e *Entity) ID() ID { return e.id }

// Type returns the type tag.
func (e *Entity) Type() string { return e.typ }

// SetType changes the type tag.
func (e *Entity) SetType(t string) { e.typ = t }

// World returns the world the entity is registered with.
func (e *Entity) World() *World { return e.world }

// Position returns the current world position.
func (e *Entity) Position() core.Vector { return e.position }

// SetPosition places the entity at p without collision checks. For a child
// p is relative to the parent.
func (e *Entity) SetPosition(p core.Vector) {
	e.initial = p
	e.local = p
	if e.world != nil && e.parent != 0 {
		e.position = core.TransformPoint(e.world.parentMatrix(e), p)
	} else {
		e.position = p
	}
	e.refreshModel()
}

// InitialPosition returns the position given to the last SetPosition.
func (e *Entity) InitialPosition() core.Vector { return e.initial }

// Translation returns the displacement accumulated since SetPosition.
func (e *Entity) Translation() core.Vector { return e.local.Sub(e.initial) }

// Direction returns the unit direction of travel.
func (e *Entity) Direction() core.Vector { return e.direction }

// SetDirection sets the direction of travel as given.
func (e *Entity) SetDirection(d core.Vector) { e.direction = d }

// Speed returns the scalar speed in units per tick.
func (e *Entity) Speed() float64 { return e.speed }

// SetSpeed sets the scalar speed.
func (e *Entity) SetSpeed(s float64) { e.speed = s }

// Velocity returns direction scaled by speed.
func (e *Entity) Velocity() core.Vector {
	return e.direction.Scale(e.speed)
}

// SetVelocity splits v into a unit direction and a speed. The zero vector
// stops the entity.
func (e *Entity) SetVelocity(v core.Vector) {
	m := v.Magnitude()
	if m == 0 {
		e.direction = core.Zero
		e.speed = 0
		return
	}
	e.direction = v.Normalize()
	e.speed = m
}

// RotateSpeed returns the rotation added to the model angle every tick, in
// degrees.
func (e *Entity) RotateSpeed() float64 { return e.rotateSpeed }

// SetRotateSpeed sets the per-tick rotation in degrees.
func (e *Entity) SetRotateSpeed(s float64) { e.rotateSpeed = s }

// Solidness returns the collision class.
func (e *Entity) Solidness() Solidness { return e.solidness }

// SetSolidness changes the collision class. Unknown values are rejected
// and leave the entity unchanged.
func (e *Entity) SetSolidness(s Solidness) error {
	if !s.Valid() {
		return ErrInvalidSolidness
	}
	e.solidness = s
	return nil
}

// IsSolid reports whether the entity takes part in collisions.
func (e *Entity) IsSolid() bool { return e.solidness.IsSolid() }

// Model returns a copy of the drawable description.
func (e *Entity) Model() Model { return e.model }

// SetModel replaces the model. Its translate and box are moved to the
// current position.
func (e *Entity) SetModel(m Model) {
	e.model = m
	e.refreshModel()
}

// SetColor changes the model color.
func (e *Entity) SetColor(c core.Color) { e.model.Color = c }

// SetShape changes the model shape.
func (e *Entity) SetShape(s core.Shape) { e.model.Shape = s }

// SetScale changes the model scale and resizes the box.
func (e *Entity) SetScale(s core.Vector) {
	e.model.Scale = s
	e.refreshModel()
}

// SetRotation sets the model angle in degrees and its axis.
func (e *Entity) SetRotation(angleDeg float64, axis core.Vector) {
	e.model.RotateAngle = angleDeg
	e.model.RotateAxis = axis
}

// SetBoxSize sets the unscaled collision extents.
func (e *Entity) SetBoxSize(size core.Vector) {
	e.model.BoxSize = size
	e.refreshModel()
}

// Box returns the world-space bounding box.
func (e *Entity) Box() core.Box { return e.box }

// UpdateModel advances the rotation by the rotate speed and moves the
// model and box to the current position.
func (e *Entity) UpdateModel() {
	e.model.RotateAngle += e.rotateSpeed
	e.refreshModel()
}

func (e *Entity) refreshModel() {
	e.model.Translate = e.position
	e.box = core.NewBox(e.position, e.model.BoxSize).Scaled(e.model.Scale)
}

// localMatrix is the transform this entity applies to its children.
func (e *Entity) localMatrix() mgl64.Mat4 {
	return core.ModelMatrix(e.local, e.model.Scale, e.model.RotateAngle, e.model.RotateAxis)
}

// PredictPosition returns where the entity would be after one tick of
// travel, composed through every ancestor's transform.
func (e *Entity) PredictPosition() core.Vector {
	pos, _ := e.predict()
	return pos
}

// predict returns the next world position and the local position it was
// derived from.
func (e *Entity) predict() (pos, local core.Vector) {
	local = e.local.Add(e.Velocity())
	if e.world == nil || e.parent == 0 {
		return local, local
	}
	return core.TransformPoint(e.world.parentMatrix(e), local), local
}

// toLocal maps a world position into the parent's space.
func (e *Entity) toLocal(p core.Vector) core.Vector {
	if e.world == nil || e.parent == 0 {
		return p
	}
	return core.InverseTransformPoint(e.world.parentMatrix(e), p)
}

// commit records a completed move to world position p, local in the
// parent's space.
func (e *Entity) commit(p, local core.Vector) {
	e.position = p
	e.local = local
	e.refreshModel()
}

// HandleEvent passes ev to the behavior. Entities without a behavior
// ignore every event.
func (e *Entity) HandleEvent(ev Event) bool {
	if e.behavior == nil {
		return false
	}
	return e.behavior.HandleEvent(e, ev)
}

// Behavior returns the attached behavior, possibly nil.
func (e *Entity) Behavior() Behavior { return e.behavior }

// SetBehavior replaces the behavior.
func (e *Entity) SetBehavior(b Behavior) { e.behavior = b }

// Parent returns the parent entity, or nil.
func (e *Entity) Parent() *Entity {
	if e.world == nil || e.parent == 0 {
		return nil
	}
	p, _ := e.world.Lookup(e.parent)
	return p
}

// Children returns the child entities in attachment order.
func (e *Entity) Children() []*Entity {
	if e.world == nil {
		return nil
	}
	out := make([]*Entity, 0, len(e.children))
	for _, id := range e.children {
		if c, ok := e.world.Lookup(id); ok {
			out = append(out, c)
		}
	}
	return out
}
