// Package world holds the live entity registry and runs the per-tick
// update: movement prediction, collision dispatch, move rejection and the
// end-of-tick deletion sweep.
package world

import (
	"errors"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/polygove/internal/core"
)

// Recoverable registry, movement and hierarchy errors.
var (
	ErrAlreadyPresent   = errors.New("world: entity already present")
	ErrNotFound         = errors.New("world: entity not found")
	ErrAlreadyMarked    = errors.New("world: entity already marked for deletion")
	ErrMoveRejected     = errors.New("world: move rejected by hard collision")
	ErrHasParent        = errors.New("world: child already has a parent")
	ErrCycle            = errors.New("world: hierarchy cycle")
	ErrInvalidSolidness = errors.New("world: invalid solidness")
)

// Renderer is the drawing backend the world hands its entities to.
type Renderer interface {
	Draw(e *Entity)
	DrawBox(b core.Box)
	Clear()
}

// FrameRenderer is a Renderer that wants to know where a frame starts and
// ends and which camera to use.
type FrameRenderer interface {
	Renderer
	BeginFrame(cam Camera)
	EndFrame()
}

// Stats counts what the update tick has done since start-up.
type Stats struct {
	Moves      int // committed moves
	Collisions int // collision pairs dispatched
	Rejected   int // moves vetoed by a hard/hard pair
	Removed    int // entities removed by the deletion sweep
}

// World is the registry of active entities. It is driven from a single
// goroutine and performs no locking.
type World struct {
	core.Lifecycle

	log *log.Logger

	active  []*Entity
	members map[ID]*Entity
	pending []*Entity
	marked  map[ID]bool

	camera    Camera
	followEye ID
	followAt  ID
	followUp  ID

	drawBoxes bool
	stats     Stats

	// dispatching is non-zero while Update or OnEvent walks active.
	dispatching int
}

// New creates an empty world. A nil logger discards output.
func New(logger *log.Logger) *World {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &World{
		log:     logger,
		members: make(map[ID]*Entity),
		marked:  make(map[ID]bool),
		camera:  DefaultCamera(),
	}
}

// Name identifies the service.
func (w *World) Name() string { return "world" }

// StartUp empties the world.
func (w *World) StartUp() error {
	if err := w.MarkStarted(); err != nil {
		return err
	}
	w.reset()
	return nil
}

// ShutDown removes entities still marked for deletion.
func (w *World) ShutDown() error {
	if err := w.MarkStopped(); err != nil {
		return err
	}
	w.sweep()
	return nil
}

func (w *World) reset() {
	w.active = nil
	w.members = make(map[ID]*Entity)
	w.pending = nil
	w.marked = make(map[ID]bool)
	w.followEye, w.followAt, w.followUp = 0, 0, 0
	w.stats = Stats{}
}

// NewEntity creates an entity with the given type tag and behavior and
// registers it.
func (w *World) NewEntity(typ string, b Behavior) *Entity {
	e := newEntity(typ, b)
	_ = w.Insert(e)
	return e
}

// Insert registers e at the end of the active list.
func (w *World) Insert(e *Entity) error {
	if _, ok := w.members[e.id]; ok {
		return ErrAlreadyPresent
	}
	e.world = w
	w.active = append(w.active, e)
	w.members[e.id] = e
	w.log.Debug("entity inserted", "id", e.id, "type", e.typ)
	return nil
}

// Remove unregisters e. Its hierarchy links are cleared and it stops being
// a camera target. Called from a behavior while the world is updating or
// broadcasting, the removal is deferred to the end-of-tick sweep.
func (w *World) Remove(e *Entity) error {
	if _, ok := w.members[e.id]; !ok {
		return ErrNotFound
	}
	if w.dispatching > 0 {
		if !w.marked[e.id] {
			_ = w.MarkForDelete(e)
		}
		return nil
	}
	for i, a := range w.active {
		if a == e {
			w.active = append(w.active[:i], w.active[i+1:]...)
			break
		}
	}
	w.detach(e)
	delete(w.members, e.id)
	w.unfollow(e.id)
	w.log.Debug("entity removed", "id", e.id, "type", e.typ)
	return nil
}

// MarkForDelete schedules e for removal at the end of the current tick.
func (w *World) MarkForDelete(e *Entity) error {
	if w.marked[e.id] {
		return ErrAlreadyMarked
	}
	w.marked[e.id] = true
	w.pending = append(w.pending, e)
	return nil
}

// IsMarked reports whether e is scheduled for removal.
func (w *World) IsMarked(e *Entity) bool {
	return w.marked[e.id]
}

// Entities returns the active entities in insertion order.
func (w *World) Entities() []*Entity {
	out := make([]*Entity, len(w.active))
	copy(out, w.active)
	return out
}

// EntitiesOfType returns the active entities whose type tag is typ, in
// insertion order.
func (w *World) EntitiesOfType(typ string) []*Entity {
	var out []*Entity
	for _, e := range w.active {
		if e.typ == typ {
			out = append(out, e)
		}
	}
	return out
}

// Lookup returns the active entity with the given id. Hierarchy links are
// resolved through it.
func (w *World) Lookup(id ID) (*Entity, bool) {
	e, ok := w.members[id]
	return e, ok
}

// Len returns the number of active entities.
func (w *World) Len() int { return len(w.active) }

// Stats returns the counters accumulated since start-up.
func (w *World) Stats() Stats { return w.stats }

// SetDrawBoxes toggles drawing of bounding boxes.
func (w *World) SetDrawBoxes(on bool) { w.drawBoxes = on }

// Update moves every active entity by one tick in insertion order, then
// removes the entities marked for deletion. Entities inserted during the
// tick are moved in the same tick.
func (w *World) Update() {
	w.dispatching++
	for i := 0; i < len(w.active); i++ {
		e := w.active[i]
		next, local := e.predict()
		if !next.Equal(e.position) {
			if err := w.move(e, next, local); err != nil {
				w.log.Debug("move rejected", "id", e.id, "to", next)
			}
		}
		e.UpdateModel()
	}
	w.dispatching--
	w.sweep()
}

func (w *World) sweep() {
	pending := w.pending
	w.pending = nil
	w.marked = make(map[ID]bool)
	for _, e := range pending {
		if err := w.Remove(e); err == nil {
			w.stats.Removed++
		}
	}
}

// MoveEntity tries to move e to the world position where. A solid mover
// sends a CollisionEvent to itself and then to every solid entity its box
// would overlap at where. If any of those pairs is hard against hard the
// whole move is refused with ErrMoveRejected and e stays put.
func (w *World) MoveEntity(e *Entity, where core.Vector) error {
	return w.move(e, where, e.toLocal(where))
}

func (w *World) move(e *Entity, where, local core.Vector) error {
	if e.IsSolid() {
		hits := w.collisions(e, e.box.Recenter(where))
		blocked := false
		for _, o := range hits {
			ev := CollisionEvent{Mover: e, Other: o, Position: where}
			e.HandleEvent(ev)
			o.HandleEvent(ev)
			w.stats.Collisions++
			if e.solidness == Hard && o.solidness == Hard {
				blocked = true
			}
		}
		if blocked {
			w.stats.Rejected++
			return ErrMoveRejected
		}
	}

	e.commit(where, local)
	w.stats.Moves++
	w.follow(e)
	return nil
}

// Collisions returns the solid entities other than e whose boxes overlap
// e's current box.
func (w *World) Collisions(e *Entity) []*Entity {
	return w.collisions(e, e.box)
}

func (w *World) collisions(e *Entity, box core.Box) []*Entity {
	var out []*Entity
	for _, o := range w.active {
		if o == e || !o.IsSolid() {
			continue
		}
		if box.Intersects(o.box) {
			out = append(out, o)
		}
	}
	return out
}

// OnEvent delivers ev to every active entity in order and returns how many
// received it. Handler results never stop delivery.
func (w *World) OnEvent(ev Event) int {
	w.dispatching++
	defer func() { w.dispatching-- }()
	n := 0
	for i := 0; i < len(w.active); i++ {
		w.active[i].HandleEvent(ev)
		n++
	}
	return n
}

// Draw hands every active entity to r, or tells r to clear when the world
// is empty.
func (w *World) Draw(r Renderer) {
	if r == nil {
		return
	}
	if fr, ok := r.(FrameRenderer); ok {
		fr.BeginFrame(w.camera)
		defer fr.EndFrame()
	}
	if len(w.active) == 0 {
		r.Clear()
		return
	}
	for _, e := range w.active {
		r.Draw(e)
		if w.drawBoxes {
			r.DrawBox(e.box)
		}
	}
}
