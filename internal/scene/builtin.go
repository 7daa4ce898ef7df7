package scene

import (
	"github.com/vovakirdan/polygove/internal/core"
	"github.com/vovakirdan/polygove/internal/world"
)

func init() {
	Register("demo", func() Scene { return demo{} })
	Register("orbit", func() Scene { return orbit{} })
	Register("pinball", func() Scene { return pinball{} })
}

// demo is the two-cube smoke scene: a hard red cube drifting left and a
// soft blue cube drifting right, both driven by Tester.
type demo struct{}

func (demo) ID() string    { return "demo" }
func (demo) Title() string { return "Two Cubes" }

func (demo) Build(w *world.World, env Env) error {
	left := w.NewEntity("Test Object", NewTester(env))
	left.SetPosition(core.Vec(-1, 0, 0.1))
	left.SetVelocity(core.Vec(-0.01, 0, 0))
	left.SetRotateSpeed(1)
	left.SetColor(core.ColorRed)
	left.SetRotation(45, core.Vec(0, 1, 0))

	right := w.NewEntity("Test Object", NewTester(env))
	right.SetPosition(core.Vec(1, 0, 0))
	right.SetVelocity(core.Vec(0.01, 0, 0))
	right.SetRotateSpeed(-1)
	right.SetColor(core.ColorBlue)
	right.SetRotation(60, core.Vec(0, 1, 0))
	return right.SetSolidness(world.Soft)
}

// orbit spins a hub with two moons attached as children; the camera looks
// at the outer moon.
type orbit struct{}

func (orbit) ID() string    { return "orbit" }
func (orbit) Title() string { return "Orbit" }

func (orbit) Build(w *world.World, env Env) error {
	hub := w.NewEntity("Hub", &Spinner{env: env})
	hub.SetColor(core.ColorYellow)
	hub.SetShape(core.ShapeSphere)
	hub.SetRotateSpeed(2)
	if err := hub.SetSolidness(world.Spectral); err != nil {
		return err
	}

	moons := []struct {
		at    core.Vector
		color core.Color
	}{
		{core.Vec(2.5, 0, 0), core.ColorCyan},
		{core.Vec(-1.5, 0, 0), core.ColorMagenta},
	}
	var outer *world.Entity
	for _, m := range moons {
		moon := w.NewEntity("Moon", nil)
		moon.SetPosition(m.at)
		moon.SetColor(m.color)
		moon.SetShape(core.ShapeSphere)
		moon.SetScale(core.Vec(0.5, 0.5, 0.5))
		if err := moon.SetSolidness(world.Spectral); err != nil {
			return err
		}
		if err := w.AddChild(hub, moon); err != nil {
			return err
		}
		if outer == nil {
			outer = moon
		}
	}

	w.SetCamera(world.Camera{Eye: core.Vec(0, 4, 6), At: core.Zero, Up: core.Vec(0, 1, 0)})
	w.FollowAt(outer)
	return nil
}

// pinball bounces a ball between two hard walls through a row of soft
// pickups that vanish when touched.
type pinball struct{}

func (pinball) ID() string    { return "pinball" }
func (pinball) Title() string { return "Pinball" }

// PinballPickups is the number of pickups the pinball scene lays out.
const PinballPickups = 4

func (pinball) Build(w *world.World, env Env) error {
	for _, x := range []float64{-4, 4} {
		wall := w.NewEntity("Wall", nil)
		wall.SetPosition(core.Vec(x, 0, 0))
		wall.SetBoxSize(core.Vec(0.5, 4, 4))
		wall.SetColor(core.ColorGray)
	}

	ball := w.NewEntity("Ball", &Bouncer{env: env})
	ball.SetShape(core.ShapeSphere)
	ball.SetColor(core.ColorWhite)
	ball.SetVelocity(core.Vec(0.05, 0, 0))

	for _, x := range []float64{-2.5, -1.5, 1.5, 2.5} {
		p := w.NewEntity("Pickup", &Pickup{env: env})
		p.SetPosition(core.Vec(x, 0, 0))
		p.SetShape(core.ShapePyramid)
		p.SetColor(core.ColorGreen)
		p.SetBoxSize(core.Vec(0.5, 0.5, 0.5))
		if err := p.SetSolidness(world.Soft); err != nil {
			return err
		}
	}

	w.FollowAt(ball)
	return nil
}
