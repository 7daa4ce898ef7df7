package scene

import (
	"errors"
	"fmt"
	"sort"

	"github.com/vovakirdan/polygove/internal/core"
	"github.com/vovakirdan/polygove/internal/world"
)

// QuitKey ends the run in every built-in scene.
const QuitKey = "q"

// BehaviorMaker builds a behavior bound to env.
type BehaviorMaker func(env Env) world.Behavior

var behaviors = map[string]BehaviorMaker{
	"tester":  func(env Env) world.Behavior { return NewTester(env) },
	"bouncer": func(env Env) world.Behavior { return &Bouncer{env: env} },
	"pickup":  func(env Env) world.Behavior { return &Pickup{env: env} },
	"spinner": func(env Env) world.Behavior { return &Spinner{env: env} },
	"pilot":   func(env Env) world.Behavior { return &Pilot{env: env, Thrust: 0.05} },
	"idle":    func(Env) world.Behavior { return nil },
}

// Behaviors returns the names accepted by MakeBehavior.
func Behaviors() []string {
	names := make([]string, 0, len(behaviors))
	for name := range behaviors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// MakeBehavior builds the named behavior. An empty name is idle.
func MakeBehavior(name string, env Env) (world.Behavior, error) {
	if name == "" {
		return nil, nil
	}
	mk, ok := behaviors[name]
	if !ok {
		return nil, fmt.Errorf("scene: unknown behavior %q", name)
	}
	return mk(env), nil
}

func isQuit(ev world.Event) bool {
	k, ok := ev.(world.KeyboardEvent)
	return ok && k.Action == world.KeyPress && k.Key == QuitKey
}

// Tester reverses direction every 200 ticks and reacts to the debug keys:
// q quits, a turns the model by 10 degrees, s and d toggle step and
// collision logging. Mouse clicks are logged.
type Tester struct {
	env           Env
	logSteps      bool
	logCollisions bool
}

func NewTester(env Env) *Tester {
	return &Tester{env: env}
}

func (t *Tester) HandleEvent(self *world.Entity, ev world.Event) bool {
	logger := t.env.logger()

	switch ev := ev.(type) {
	case world.StepEvent:
		if t.logSteps && ev.Count%20 == 0 {
			logger.Info("step", "entity", self.ID(), "count", ev.Count)
		}
		if ev.Count%200 == 0 {
			logger.Debug("reverse direction", "entity", self.ID(), "count", ev.Count)
			self.SetDirection(self.Direction().Scale(-1))
		}

	case world.CollisionEvent:
		if t.logCollisions {
			logger.Info("collision",
				"mover", ev.Mover.ID(), "other", ev.Other.ID(), "at", ev.Position)
			return true
		}

	case world.KeyboardEvent:
		if ev.Action != world.KeyPress {
			return false
		}
		switch ev.Key {
		case QuitKey:
			logger.Info("quit key", "entity", self.ID())
			t.env.quit()
			return true
		case "a":
			m := self.Model()
			self.SetRotation(m.RotateAngle+10, m.RotateAxis)
			return true
		case "s":
			t.logSteps = !t.logSteps
			logger.Info("step logging", "entity", self.ID(), "enabled", t.logSteps)
			return true
		case "d":
			t.logCollisions = !t.logCollisions
			logger.Info("collision logging", "entity", self.ID(), "enabled", t.logCollisions)
			return true
		}

	case world.MouseEvent:
		if ev.Action == world.MouseClick {
			logger.Info("click", "entity", self.ID(), "x", ev.X, "y", ev.Y)
			return true
		}
	}
	return false
}

// Bouncer reverses its direction whenever it touches a hard entity.
type Bouncer struct {
	env     Env
	Bounces int
}

func (b *Bouncer) HandleEvent(self *world.Entity, ev world.Event) bool {
	if isQuit(ev) {
		b.env.quit()
		return true
	}
	c, ok := ev.(world.CollisionEvent)
	if !ok || !c.Involves(self) {
		return false
	}
	if c.Counterpart(self).Solidness() != world.Hard {
		return false
	}
	self.SetDirection(self.Direction().Scale(-1))
	b.Bounces++
	b.env.logger().Debug("bounce", "entity", self.ID(), "count", b.Bounces)
	return true
}

// PickupSound is the resource label a pickup looks for when collected.
const PickupSound = "pickup"

// Pickup removes itself at the end of the tick it is touched in.
type Pickup struct {
	env Env
}

func (p *Pickup) HandleEvent(self *world.Entity, ev world.Event) bool {
	if _, ok := ev.(world.CollisionEvent); !ok {
		return false
	}
	w := self.World()
	if w == nil {
		return false
	}
	if err := w.MarkForDelete(self); err != nil {
		return !errors.Is(err, world.ErrAlreadyMarked)
	}
	logger := p.env.logger()
	if p.env.Sounds != nil {
		if buf, err := p.env.Sounds.Sound(PickupSound); err == nil {
			logger.Debug("pickup sound", "entity", self.ID(), "samples", buf.Len())
		}
	}
	logger.Info("picked up", "entity", self.ID(), "type", self.Type())
	return true
}

// MaxSpin bounds the rotate speed a Spinner can be driven to, in degrees per tick.
const MaxSpin = 10.0

// Spinner lets the keyboard control its rotation: space pauses and
// resumes, + and - change the speed.
type Spinner struct {
	env    Env
	paused float64
}

func (s *Spinner) HandleEvent(self *world.Entity, ev world.Event) bool {
	k, ok := ev.(world.KeyboardEvent)
	if !ok || k.Action != world.KeyPress {
		return false
	}
	switch k.Key {
	case QuitKey:
		s.env.quit()
	case "space":
		if self.RotateSpeed() != 0 {
			s.paused = self.RotateSpeed()
			self.SetRotateSpeed(0)
		} else {
			self.SetRotateSpeed(s.paused)
		}
	case "+":
		self.SetRotateSpeed(core.ClampF(self.RotateSpeed()+1, -MaxSpin, MaxSpin))
	case "-":
		self.SetRotateSpeed(core.ClampF(self.RotateSpeed()-1, -MaxSpin, MaxSpin))
	default:
		return false
	}
	return true
}

// Pilot steers with the arrow keys; space stops.
type Pilot struct {
	env    Env
	Thrust float64
}

var pilotKeys = map[string]core.Vector{
	"left":   core.Vec(-1, 0, 0),
	"right":  core.Vec(1, 0, 0),
	"up":     core.Vec(0, 1, 0),
	"down":   core.Vec(0, -1, 0),
	"pgup":   core.Vec(0, 0, -1),
	"pgdown": core.Vec(0, 0, 1),
}

func (p *Pilot) HandleEvent(self *world.Entity, ev world.Event) bool {
	k, ok := ev.(world.KeyboardEvent)
	if !ok || k.Action != world.KeyPress {
		return false
	}
	if k.Key == QuitKey {
		p.env.quit()
		return true
	}
	if k.Key == "space" {
		self.SetVelocity(core.Zero)
		return true
	}
	dir, ok := pilotKeys[k.Key]
	if !ok {
		return false
	}
	self.SetVelocity(dir.Scale(p.Thrust))
	return true
}
