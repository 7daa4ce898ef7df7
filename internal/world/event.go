package world

import "github.com/vovakirdan/polygove/internal/core"

// EventKind tags the variant carried by an Event.
type EventKind int

const (
	KindStep EventKind = iota
	KindCollision
	KindKeyboard
	KindMouse
)

func (k EventKind) String() string {
	switch k {
	case KindStep:
		return "step"
	case KindCollision:
		return "collision"
	case KindKeyboard:
		return "keyboard"
	case KindMouse:
		return "mouse"
	default:
		return "unknown"
	}
}

// Event is delivered to entity behaviors. The concrete types are
// StepEvent, CollisionEvent, KeyboardEvent and MouseEvent.
type Event interface {
	Kind() EventKind
}

// StepEvent is broadcast by the loop every few ticks.
type StepEvent struct {
	Count int // loop tick at which the event was raised
}

func (StepEvent) Kind() EventKind { return KindStep }

// CollisionEvent is sent to both entities when a solid mover would overlap
// another solid entity.
type CollisionEvent struct {
	Mover    *Entity
	Other    *Entity
	Position core.Vector // destination of the attempted move
}

func (CollisionEvent) Kind() EventKind { return KindCollision }

// Involves reports whether e is one of the two parties.
func (c CollisionEvent) Involves(e *Entity) bool {
	return c.Mover == e || c.Other == e
}

// Counterpart returns the party that is not e.
func (c CollisionEvent) Counterpart(e *Entity) *Entity {
	if c.Mover == e {
		return c.Other
	}
	return c.Mover
}

// KeyAction distinguishes keyboard events.
type KeyAction int

const (
	KeyPress KeyAction = iota
	KeyDown
	KeyUp
)

func (a KeyAction) String() string {
	switch a {
	case KeyPress:
		return "press"
	case KeyDown:
		return "down"
	case KeyUp:
		return "up"
	default:
		return "unknown"
	}
}

// KeyboardEvent carries a key name such as "a", "space" or "left".
type KeyboardEvent struct {
	Key    string
	Action KeyAction
}

func (KeyboardEvent) Kind() EventKind { return KindKeyboard }

// MouseAction distinguishes mouse events.
type MouseAction int

const (
	MouseClick MouseAction = iota
	MouseDown
	MouseUp
	MouseMove
)

func (a MouseAction) String() string {
	switch a {
	case MouseClick:
		return "click"
	case MouseDown:
		return "down"
	case MouseUp:
		return "up"
	case MouseMove:
		return "move"
	default:
		return "unknown"
	}
}

// MouseEvent carries a pointer position in screen cells.
type MouseEvent struct {
	X, Y   int
	Action MouseAction
}

func (MouseEvent) Kind() EventKind { return KindMouse }
