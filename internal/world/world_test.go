package world

import (
	"errors"
	"testing"

	"github.com/vovakirdan/polygove/internal/core"
)

// recorder collects the events an entity receives.
type recorder struct {
	events []Event
}

func (r *recorder) HandleEvent(_ *Entity, ev Event) bool {
	r.events = append(r.events, ev)
	return true
}

func (r *recorder) collisions() []CollisionEvent {
	var out []CollisionEvent
	for _, ev := range r.events {
		if c, ok := ev.(CollisionEvent); ok {
			out = append(out, c)
		}
	}
	return out
}

func TestInsertTwice(t *testing.T) {
	w := New(nil)
	e := w.NewEntity("", nil)

	if err := w.Insert(e); !errors.Is(err, ErrAlreadyPresent) {
		t.Errorf("Insert() twice = %v, expected ErrAlreadyPresent", err)
	}
	if got := len(w.Entities()); got != 1 {
		t.Errorf("len(Entities()) = %d, expected 1", got)
	}
}

func TestRemove(t *testing.T) {
	w := New(nil)
	a := w.NewEntity("", nil)
	b := w.NewEntity("", nil)
	c := w.NewEntity("", nil)

	if err := w.Remove(b); err != nil {
		t.Fatalf("Remove() = %v", err)
	}
	if err := w.Remove(b); !errors.Is(err, ErrNotFound) {
		t.Errorf("Remove() twice = %v, expected ErrNotFound", err)
	}

	got := w.Entities()
	if len(got) != 2 || got[0] != a || got[1] != c {
		t.Errorf("Entities() = %v, expected [a c] in order", got)
	}
}

func TestEntitiesOfType(t *testing.T) {
	w := New(nil)
	w.NewEntity("Wall", nil)
	b1 := w.NewEntity("Ball", nil)
	w.NewEntity("Wall", nil)
	b2 := w.NewEntity("Ball", nil)

	got := w.EntitiesOfType("Ball")
	if len(got) != 2 || got[0] != b1 || got[1] != b2 {
		t.Errorf("EntitiesOfType(Ball) = %v, expected [b1 b2]", got)
	}
	if got := w.EntitiesOfType("Nothing"); len(got) != 0 {
		t.Errorf("EntitiesOfType(Nothing) = %v, expected empty", got)
	}
}

func TestMarkForDelete(t *testing.T) {
	w := New(nil)
	keep := w.NewEntity("", nil)
	gone := w.NewEntity("", nil)

	if err := w.MarkForDelete(gone); err != nil {
		t.Fatalf("MarkForDelete() = %v", err)
	}
	if err := w.MarkForDelete(gone); !errors.Is(err, ErrAlreadyMarked) {
		t.Errorf("MarkForDelete() twice = %v, expected ErrAlreadyMarked", err)
	}
	if w.Len() != 2 {
		t.Errorf("Len() before Update = %d, expected 2", w.Len())
	}

	w.Update()

	got := w.Entities()
	if len(got) != 1 || got[0] != keep {
		t.Errorf("Entities() after Update = %v, expected only keep", got)
	}
	if w.IsMarked(gone) {
		t.Error("pending set should be empty after Update")
	}
	if w.Stats().Removed != 1 {
		t.Errorf("Stats().Removed = %d, expected 1", w.Stats().Removed)
	}
}

func TestMarkForDeleteAlreadyRemoved(t *testing.T) {
	w := New(nil)
	e := w.NewEntity("", nil)
	_ = w.MarkForDelete(e)
	_ = w.Remove(e)

	w.Update()
	if w.Len() != 0 {
		t.Errorf("Len() = %d, expected 0", w.Len())
	}
}

func TestUpdateMovesEntity(t *testing.T) {
	w := New(nil)
	e := w.NewEntity("", nil)
	e.SetVelocity(core.Vec(1, 0, 0))

	w.Update()
	w.Update()

	if got := e.Position(); !got.Equal(core.Vec(2, 0, 0)) {
		t.Errorf("Position() = %v, expected (2, 0, 0)", got)
	}
	if got := e.Model().Translate; !got.Equal(core.Vec(2, 0, 0)) {
		t.Errorf("Model().Translate = %v, expected (2, 0, 0)", got)
	}
	if got := e.Box().Center; !got.Equal(core.Vec(2, 0, 0)) {
		t.Errorf("Box().Center = %v, expected (2, 0, 0)", got)
	}
	if got := e.Translation(); !got.Equal(core.Vec(2, 0, 0)) {
		t.Errorf("Translation() = %v, expected (2, 0, 0)", got)
	}
}

func TestHardHardRejected(t *testing.T) {
	w := New(nil)
	rm, ro := &recorder{}, &recorder{}
	mover := w.NewEntity("", rm)
	other := w.NewEntity("", ro)
	other.SetPosition(core.Vec(2, 0, 0))

	err := w.MoveEntity(mover, core.Vec(1.5, 0, 0))
	if !errors.Is(err, ErrMoveRejected) {
		t.Fatalf("MoveEntity() = %v, expected ErrMoveRejected", err)
	}
	if got := mover.Position(); !got.Equal(core.Zero) {
		t.Errorf("Position() = %v, expected unchanged origin", got)
	}
	if len(rm.collisions()) != 1 || len(ro.collisions()) != 1 {
		t.Errorf("collision events = %d/%d, expected 1/1", len(rm.collisions()), len(ro.collisions()))
	}
	if w.Stats().Rejected != 1 {
		t.Errorf("Stats().Rejected = %d, expected 1", w.Stats().Rejected)
	}
}

func TestHardSoftAllowed(t *testing.T) {
	w := New(nil)
	rm, ro := &recorder{}, &recorder{}
	mover := w.NewEntity("", rm)
	other := w.NewEntity("", ro)
	other.SetPosition(core.Vec(2, 0, 0))
	_ = other.SetSolidness(Soft)

	if err := w.MoveEntity(mover, core.Vec(1.5, 0, 0)); err != nil {
		t.Fatalf("MoveEntity() = %v, expected success", err)
	}
	if got := mover.Position(); !got.Equal(core.Vec(1.5, 0, 0)) {
		t.Errorf("Position() = %v, expected (1.5, 0, 0)", got)
	}

	for name, r := range map[string]*recorder{"mover": rm, "other": ro} {
		cs := r.collisions()
		if len(cs) != 1 {
			t.Errorf("%s got %d collision events, expected 1", name, len(cs))
			continue
		}
		if cs[0].Mover != mover || cs[0].Other != other {
			t.Errorf("%s collision parties wrong: %+v", name, cs[0])
		}
		if !cs[0].Position.Equal(core.Vec(1.5, 0, 0)) {
			t.Errorf("%s collision Position = %v, expected destination", name, cs[0].Position)
		}
	}
}

func TestCollisionDeliveryOrder(t *testing.T) {
	w := New(nil)
	var order []ID
	log := BehaviorFunc(func(self *Entity, ev Event) bool {
		if _, ok := ev.(CollisionEvent); ok {
			order = append(order, self.ID())
		}
		return true
	})
	other := w.NewEntity("", log)
	mover := w.NewEntity("", log)
	_ = other.SetSolidness(Soft)

	_ = w.MoveEntity(mover, core.Vec(0.5, 0, 0))
	if len(order) != 2 || order[0] != mover.ID() || order[1] != other.ID() {
		t.Errorf("delivery order = %v, expected mover %d then other %d", order, mover.ID(), other.ID())
	}
}

func TestHardVetoIsAllOrNothing(t *testing.T) {
	w := New(nil)
	mover := w.NewEntity("", nil)
	soft := w.NewEntity("", nil)
	hard := w.NewEntity("", nil)
	_ = soft.SetSolidness(Soft)
	soft.SetPosition(core.Vec(1, 0, 0))
	hard.SetPosition(core.Vec(1.2, 0, 0))

	if err := w.MoveEntity(mover, core.Vec(0.8, 0, 0)); !errors.Is(err, ErrMoveRejected) {
		t.Errorf("MoveEntity() = %v, expected ErrMoveRejected", err)
	}
	if w.Stats().Collisions != 2 {
		t.Errorf("Stats().Collisions = %d, expected 2", w.Stats().Collisions)
	}
}

func TestSpectralIgnored(t *testing.T) {
	w := New(nil)
	ro := &recorder{}
	mover := w.NewEntity("", nil)
	ghost := w.NewEntity("", ro)
	_ = ghost.SetSolidness(Spectral)
	ghost.SetPosition(core.Vec(1, 0, 0))

	if err := w.MoveEntity(mover, core.Vec(1, 0, 0)); err != nil {
		t.Fatalf("MoveEntity() through spectral = %v", err)
	}
	if len(ro.events) != 0 {
		t.Errorf("spectral entity received %d events, expected 0", len(ro.events))
	}

	// A spectral mover passes through hard entities.
	if err := w.MoveEntity(ghost, core.Vec(1, 0, 0)); err != nil {
		t.Errorf("spectral MoveEntity() = %v, expected success", err)
	}
}

func TestUpdateRejectsAndKeepsRotating(t *testing.T) {
	w := New(nil)
	wall := w.NewEntity("Wall", nil)
	wall.SetPosition(core.Vec(1.5, 0, 0))
	ball := w.NewEntity("Ball", nil)
	ball.SetVelocity(core.Vec(1, 0, 0))
	ball.SetRotateSpeed(5)

	w.Update()

	if got := ball.Position(); !got.Equal(core.Zero) {
		t.Errorf("Position() = %v, expected blocked at origin", got)
	}
	if got := ball.Model().RotateAngle; got != 5 {
		t.Errorf("Model().RotateAngle = %v, expected 5", got)
	}
}

func TestOnEventBroadcast(t *testing.T) {
	w := New(nil)
	handled := BehaviorFunc(func(*Entity, Event) bool { return true })
	r := &recorder{}
	w.NewEntity("", handled)
	w.NewEntity("", nil)
	w.NewEntity("", r)

	if got := w.OnEvent(KeyboardEvent{Key: "a", Action: KeyPress}); got != 3 {
		t.Errorf("OnEvent() = %d, expected 3", got)
	}
	if len(r.events) != 1 {
		t.Errorf("last entity got %d events, expected 1", len(r.events))
	}
}

func TestRemoveDuringBroadcast(t *testing.T) {
	w := New(nil)
	rb, rc := &recorder{}, &recorder{}
	var b *Entity
	w.NewEntity("", BehaviorFunc(func(*Entity, Event) bool {
		return w.Remove(b) == nil
	}))
	b = w.NewEntity("", rb)
	w.NewEntity("", rc)

	if got := w.OnEvent(KeyboardEvent{Key: "x", Action: KeyPress}); got != 3 {
		t.Errorf("OnEvent() = %d, expected 3", got)
	}
	if len(rb.events) != 1 || len(rc.events) != 1 {
		t.Errorf("events = %d/%d, expected every entity to get one", len(rb.events), len(rc.events))
	}
	if !w.IsMarked(b) || w.Len() != 3 {
		t.Errorf("IsMarked() = %v, Len() = %d, expected removal deferred", w.IsMarked(b), w.Len())
	}

	w.Update()
	if _, ok := w.Lookup(b.ID()); ok {
		t.Error("removed entity still active after Update()")
	}
	if w.Stats().Removed != 1 {
		t.Errorf("Stats().Removed = %d, expected 1", w.Stats().Removed)
	}
}

func TestRemoveDuringUpdate(t *testing.T) {
	w := New(nil)
	mover := w.NewEntity("", BehaviorFunc(func(self *Entity, ev Event) bool {
		if _, ok := ev.(CollisionEvent); !ok {
			return false
		}
		return self.World().Remove(self) == nil
	}))
	mover.SetVelocity(core.Vec(0.1, 0, 0))
	next := w.NewEntity("", nil)
	next.SetPosition(core.Vec(10, 0, 0))
	next.SetVelocity(core.Vec(0, 1, 0))
	coin := w.NewEntity("", nil)
	_ = coin.SetSolidness(Soft)
	coin.SetPosition(core.Vec(0.5, 0, 0))

	w.Update()

	if got := next.Position(); !got.Equal(core.Vec(10, 1, 0)) {
		t.Errorf("Position() of the entity after the removed one = %v, expected (10, 1, 0)", got)
	}
	got := w.Entities()
	if len(got) != 2 || got[0] != next || got[1] != coin {
		t.Errorf("Entities() = %v, expected [next coin]", got)
	}
}

func TestCollisionsUsesCurrentBox(t *testing.T) {
	w := New(nil)
	rb := &recorder{}
	a := w.NewEntity("", nil)
	b := w.NewEntity("", rb)
	b.SetPosition(core.Vec(1, 0, 0))
	c := w.NewEntity("", nil)
	c.SetPosition(core.Vec(3, 0, 0))
	ghost := w.NewEntity("", nil)
	_ = ghost.SetSolidness(Spectral)
	ghost.SetPosition(core.Vec(0.5, 0, 0))

	if got := w.Collisions(a); len(got) != 1 || got[0] != b {
		t.Errorf("Collisions() = %v, expected [b]", got)
	}
	if len(rb.events) != 0 {
		t.Errorf("Collisions() dispatched %d events, expected none", len(rb.events))
	}

	a.SetPosition(core.Vec(2.5, 0, 0))
	if got := w.Collisions(a); len(got) != 1 || got[0] != c {
		t.Errorf("Collisions() after SetPosition = %v, expected [c]", got)
	}
}

func TestLookup(t *testing.T) {
	w := New(nil)
	e := w.NewEntity("", nil)

	if got, ok := w.Lookup(e.ID()); !ok || got != e {
		t.Errorf("Lookup(%d) = %v, %v, expected the entity", e.ID(), got, ok)
	}
	if _, ok := w.Lookup(0); ok {
		t.Error("Lookup(0) should fail")
	}
	_ = w.Remove(e)
	if _, ok := w.Lookup(e.ID()); ok {
		t.Error("Lookup() after Remove() should fail")
	}
}

type drawLog struct {
	drawn   []ID
	boxes   int
	clears  int
	begins  int
	ends    int
	lastCam Camera
}

func (d *drawLog) Draw(e *Entity)      { d.drawn = append(d.drawn, e.ID()) }
func (d *drawLog) DrawBox(core.Box)    { d.boxes++ }
func (d *drawLog) Clear()              { d.clears++ }
func (d *drawLog) BeginFrame(c Camera) { d.begins++; d.lastCam = c }
func (d *drawLog) EndFrame()           { d.ends++ }

func TestDraw(t *testing.T) {
	w := New(nil)
	d := &drawLog{}

	w.Draw(d)
	if d.clears != 1 || len(d.drawn) != 0 {
		t.Errorf("empty Draw: clears=%d drawn=%d, expected 1/0", d.clears, len(d.drawn))
	}

	a := w.NewEntity("", nil)
	b := w.NewEntity("", nil)
	w.SetDrawBoxes(true)
	w.Draw(d)

	if len(d.drawn) != 2 || d.drawn[0] != a.ID() || d.drawn[1] != b.ID() {
		t.Errorf("Draw order = %v, expected [%d %d]", d.drawn, a.ID(), b.ID())
	}
	if d.boxes != 2 {
		t.Errorf("boxes drawn = %d, expected 2", d.boxes)
	}
	if d.begins != 2 || d.ends != 2 {
		t.Errorf("frames = %d/%d, expected 2/2", d.begins, d.ends)
	}
}

func TestCameraFollow(t *testing.T) {
	w := New(nil)
	e := w.NewEntity("", nil)
	_ = e.SetSolidness(Spectral)
	e.SetVelocity(core.Vec(0, 0, 1))
	w.FollowAt(e)

	w.Update()
	if got := w.Camera().At; !got.Equal(core.Vec(0, 0, 1)) {
		t.Errorf("Camera().At = %v, expected (0, 0, 1)", got)
	}
	if got := w.Camera().Eye; !got.Equal(DefaultCamera().Eye) {
		t.Errorf("Camera().Eye = %v, expected unchanged", got)
	}

	_ = w.Remove(e)
	if _, at, _ := w.Following(); at != 0 {
		t.Errorf("Following() at = %d after Remove, expected 0", at)
	}
}

func TestWorldLifecycle(t *testing.T) {
	w := New(nil)
	if err := w.StartUp(); err != nil {
		t.Fatalf("StartUp() = %v", err)
	}
	if err := w.StartUp(); !errors.Is(err, core.ErrAlreadyStarted) {
		t.Errorf("second StartUp() = %v, expected ErrAlreadyStarted", err)
	}

	e := w.NewEntity("", nil)
	_ = w.MarkForDelete(e)

	if err := w.ShutDown(); err != nil {
		t.Fatalf("ShutDown() = %v", err)
	}
	if w.Len() != 0 {
		t.Errorf("Len() after ShutDown = %d, expected 0", w.Len())
	}
	if err := w.ShutDown(); !errors.Is(err, core.ErrNotStarted) {
		t.Errorf("second ShutDown() = %v, expected ErrNotStarted", err)
	}
	if w.IsStarted() {
		t.Error("IsStarted() = true after ShutDown")
	}
}
