// Package input buffers keyboard and mouse events produced by a terminal
// backend on its own goroutine and hands them to the world on the loop
// goroutine.
package input

import (
	"sync"

	"github.com/vovakirdan/polygove/internal/core"
	"github.com/vovakirdan/polygove/internal/world"
)

// Sink receives broadcast events. *world.World implements it.
type Sink interface {
	OnEvent(ev world.Event) int
}

// Queue is the input service. Push may be called from any goroutine;
// Collect is called by the loop once per tick.
type Queue struct {
	mu        sync.Mutex
	lifecycle core.Lifecycle
	pending   []world.Event
	dropped   int
}

// NewQueue creates a stopped queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Name identifies the service.
func (q *Queue) Name() string { return "input" }

// StartUp starts accepting events.
func (q *Queue) StartUp() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.lifecycle.MarkStarted()
}

// ShutDown stops accepting events and discards what is queued.
func (q *Queue) ShutDown() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if err := q.lifecycle.MarkStopped(); err != nil {
		return err
	}
	q.pending = nil
	return nil
}

// IsStarted reports whether events are accepted.
func (q *Queue) IsStarted() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.lifecycle.IsStarted()
}

// Push queues ev. Events pushed while stopped are dropped and Push
// returns false.
func (q *Queue) Push(ev world.Event) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if !q.lifecycle.IsStarted() {
		q.dropped++
		return false
	}
	q.pending = append(q.pending, ev)
	return true
}

// Len returns the number of queued events.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Dropped returns how many events were pushed while stopped.
func (q *Queue) Dropped() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.dropped
}

// Collect broadcasts every queued event to dst in arrival order and
// returns how many there were. The lock is not held while dst runs.
func (q *Queue) Collect(dst Sink) int {
	q.mu.Lock()
	batch := q.pending
	q.pending = nil
	q.mu.Unlock()

	for _, ev := range batch {
		dst.OnEvent(ev)
	}
	return len(batch)
}

// KeyPress builds a key press event.
func KeyPress(key string) world.Event {
	return world.KeyboardEvent{Key: key, Action: world.KeyPress}
}

// KeyDown builds a key down event.
func KeyDown(key string) world.Event {
	return world.KeyboardEvent{Key: key, Action: world.KeyDown}
}

// KeyUp builds a key up event.
func KeyUp(key string) world.Event {
	return world.KeyboardEvent{Key: key, Action: world.KeyUp}
}

// MouseClick builds a click at cell (x, y).
func MouseClick(x, y int) world.Event {
	return world.MouseEvent{X: x, Y: y, Action: world.MouseClick}
}

// MouseDown builds a button press at cell (x, y).
func MouseDown(x, y int) world.Event {
	return world.MouseEvent{X: x, Y: y, Action: world.MouseDown}
}

// MouseUp builds a button release at cell (x, y).
func MouseUp(x, y int) world.Event {
	return world.MouseEvent{X: x, Y: y, Action: world.MouseUp}
}

// MouseMove builds a pointer motion to cell (x, y).
func MouseMove(x, y int) world.Event {
	return world.MouseEvent{X: x, Y: y, Action: world.MouseMove}
}
