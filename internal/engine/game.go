package engine

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/polygove/internal/core"
	"github.com/vovakirdan/polygove/internal/input"
	"github.com/vovakirdan/polygove/internal/world"
)

// ErrStopped is returned by Run once the loop has already finished.
var ErrStopped = errors.New("engine: loop stopped")

// State is the loop state.
type State int32

const (
	Stopped State = iota
	Running
)

func (s State) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Running:
		return "running"
	default:
		return "unknown"
	}
}

// InputCollector drains pending input into the world once per tick.
type InputCollector interface {
	Collect(dst input.Sink) int
}

// Sleeper suspends the loop for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration)

// Options configures a Game.
type Options struct {
	Runtime  core.RuntimeConfig
	Logger   *log.Logger
	World    *world.World
	Input    InputCollector
	Renderer world.Renderer
	// Services are started in order before the world and stopped after it.
	Services []Service
	Sleep    Sleeper
	Now      func() time.Time
}

// Stats summarizes a run.
type Stats struct {
	Ticks      int
	Steps      int // step events broadcast
	Events     int // input events delivered
	Moves      int
	Collisions int
	Rejected   int
	Removed    int
	Entities   int
	Overshoot  time.Duration // accumulated sleep overshoot
	Slept      time.Duration
	Elapsed    time.Duration
}

// Game runs the fixed-cadence loop: input, periodic step event, world
// update, draw, then a pacing sleep corrected by the previous overshoot.
type Game struct {
	core.Lifecycle

	cfg      core.RuntimeConfig
	log      *log.Logger
	world    *world.World
	input    InputCollector
	renderer world.Renderer
	stack    *Stack
	sleep    Sleeper
	now      func() time.Time

	state    atomic.Int32
	gameOver atomic.Bool
	ticks    atomic.Int64

	mu    sync.Mutex
	stats Stats
}

// New creates a game from opts. A missing world is created.
func New(opts Options) *Game {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.World == nil {
		opts.World = world.New(opts.Logger)
	}
	if opts.Sleep == nil {
		opts.Sleep = sleepContext
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	services := append(append([]Service(nil), opts.Services...), opts.World)
	return &Game{
		cfg:      opts.Runtime.Normalize(),
		log:      opts.Logger,
		world:    opts.World,
		input:    opts.Input,
		renderer: opts.Renderer,
		stack:    NewStack(opts.Logger, services...),
		sleep:    opts.Sleep,
		now:      opts.Now,
	}
}

func sleepContext(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

// Name identifies the service.
func (g *Game) Name() string { return "game" }

// StartUp starts every service and puts the loop in the running state with
// a zero tick counter.
func (g *Game) StartUp() error {
	if err := g.MarkStarted(); err != nil {
		return err
	}
	if err := g.stack.StartUp(); err != nil {
		_ = g.MarkStopped()
		return err
	}
	g.ticks.Store(0)
	g.gameOver.Store(false)
	g.mu.Lock()
	g.stats = Stats{}
	g.mu.Unlock()
	g.state.Store(int32(Running))
	return nil
}

// ShutDown ends the loop and stops every service in reverse order.
func (g *Game) ShutDown() error {
	if err := g.MarkStopped(); err != nil {
		return err
	}
	g.gameOver.Store(true)
	g.state.Store(int32(Stopped))
	return g.stack.ShutDown()
}

// World returns the simulated world.
func (g *Game) World() *world.World { return g.world }

// FrameTime returns the target duration of one tick.
func (g *Game) FrameTime() time.Duration { return g.cfg.FrameTime }

// Ticks returns the number of completed ticks.
func (g *Game) Ticks() int { return int(g.ticks.Load()) }

// State returns the loop state.
func (g *Game) State() State { return State(g.state.Load()) }

// SetGameOver asks the loop to stop after the current tick. Safe to call
// from any goroutine.
func (g *Game) SetGameOver(over bool) { g.gameOver.Store(over) }

// GameOver reports whether the loop has been asked to stop.
func (g *Game) GameOver() bool { return g.gameOver.Load() }

// Stats returns a snapshot of the run counters. Safe to call from any
// goroutine.
func (g *Game) Stats() Stats {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.stats
}

// Run drives the loop until game over, the tick limit, or ctx is done.
// Cancellation is observed at tick boundaries and during the pacing sleep.
func (g *Game) Run(ctx context.Context) error {
	if !g.IsStarted() {
		return core.ErrNotStarted
	}
	if g.State() != Running {
		return ErrStopped
	}

	g.log.Info("loop started", "frame_time", g.cfg.FrameTime, "step_every", g.cfg.StepEvery, "entities", g.world.Len())
	start := g.now()
	clock := core.NewClockWithSource(g.now)
	var overshoot time.Duration

	for !g.GameOver() {
		if ctx.Err() != nil {
			g.SetGameOver(true)
			break
		}

		clock.Delta()

		events := 0
		if g.input != nil {
			events = g.input.Collect(g.world)
		}

		tick := int(g.ticks.Load())
		stepped := tick%g.cfg.StepEvery == 0
		if stepped {
			g.world.OnEvent(world.StepEvent{Count: tick})
		}

		g.world.Update()
		g.world.Draw(g.renderer)

		done := int(g.ticks.Add(1))
		if g.cfg.MaxTicks > 0 && done >= g.cfg.MaxTicks {
			g.SetGameOver(true)
		}

		work := micros(clock.Split())
		intended := g.cfg.FrameTime - work - overshoot
		var slept time.Duration
		if intended > 0 {
			clock.Delta()
			g.sleep(ctx, intended)
			slept = micros(clock.Split())
		}
		// A frame that ran long carries its excess into the next sleep.
		overshoot = max(0, slept-intended)

		g.record(func(s *Stats) {
			s.Ticks = done
			s.Events += events
			if stepped {
				s.Steps++
			}
			s.Overshoot += overshoot
			s.Slept += slept
		})
	}

	g.state.Store(int32(Stopped))
	g.record(func(s *Stats) { s.Elapsed = g.now().Sub(start) })
	st := g.Stats()
	g.log.Info("loop stopped", "ticks", st.Ticks, "collisions", st.Collisions, "rejected", st.Rejected, "elapsed", st.Elapsed)
	return nil
}

func (g *Game) record(update func(*Stats)) {
	ws := g.world.Stats()
	g.mu.Lock()
	defer g.mu.Unlock()
	update(&g.stats)
	g.stats.Moves = ws.Moves
	g.stats.Collisions = ws.Collisions
	g.stats.Rejected = ws.Rejected
	g.stats.Removed = ws.Removed
	g.stats.Entities = g.world.Len()
}

func micros(us int64) time.Duration {
	return time.Duration(us) * time.Microsecond
}
