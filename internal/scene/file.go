package scene

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/polygove/internal/audio"
	"github.com/vovakirdan/polygove/internal/core"
	"github.com/vovakirdan/polygove/internal/world"
)

// File is a scene described in YAML. Use Scene to build it.
//
//	name: garage
//	camera:
//	  eye: [0, 3, 6]
//	  follow_at: car
//	entities:
//	  - name: car
//	    behavior: pilot
//	    color: red
//	  - name: wheel
//	    parent: car
//	    position: [0.5, -0.5, 0]
type File struct {
	Name     string       `yaml:"name"`
	Title    string       `yaml:"title"`
	Camera   FileCamera   `yaml:"camera"`
	Sounds   []FileSound  `yaml:"sounds"`
	Entities []FileEntity `yaml:"entities"`
}

// FileCamera sets the initial camera and its follow targets by entity name.
type FileCamera struct {
	Eye       []float64 `yaml:"eye"`
	At        []float64 `yaml:"at"`
	Up        []float64 `yaml:"up"`
	FollowEye string    `yaml:"follow_eye"`
	FollowAt  string    `yaml:"follow_at"`
	FollowUp  string    `yaml:"follow_up"`
}

// FileSound is a synthesized tone registered with the resource service.
type FileSound struct {
	Label      string  `yaml:"label"`
	Freq       float64 `yaml:"freq"`
	DurationMS int     `yaml:"duration_ms"`
}

// FileEntity describes one entity. Positions of entities with a parent are
// relative to it.
type FileEntity struct {
	Name        string    `yaml:"name"`
	Type        string    `yaml:"type"`
	Behavior    string    `yaml:"behavior"`
	Parent      string    `yaml:"parent"`
	Position    []float64 `yaml:"position"`
	Velocity    []float64 `yaml:"velocity"`
	RotateSpeed float64   `yaml:"rotate_speed"`
	RotateAngle float64   `yaml:"rotate_angle"`
	RotateAxis  []float64 `yaml:"rotate_axis"`
	Solidness   string    `yaml:"solidness"`
	Color       string    `yaml:"color"`
	Shape       string    `yaml:"shape"`
	Box         []float64 `yaml:"box"`
	Scale       []float64 `yaml:"scale"`
}

// ErrInvalidScene reports a scene file that parses but cannot be built.
var ErrInvalidScene = errors.New("scene: invalid scene file")

// LoadFile reads and checks a scene file. A missing name defaults to the
// file's base name.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scene: cannot read %s: %w", path, err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("scene: %s: %w", path, err)
	}
	if f.Name == "" {
		f.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return f, nil
}

// Parse decodes a scene document. Unknown keys are rejected.
func Parse(data []byte) (*File, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		return nil, err
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks names, vectors and references without touching a world.
func (f *File) Validate() error {
	names := make(map[string]bool, len(f.Entities))
	for i, e := range f.Entities {
		if e.Name != "" {
			if names[e.Name] {
				return fmt.Errorf("%w: duplicate entity name %q", ErrInvalidScene, e.Name)
			}
			names[e.Name] = true
		}
		for key, v := range map[string][]float64{
			"position": e.Position, "velocity": e.Velocity, "rotate_axis": e.RotateAxis,
			"box": e.Box, "scale": e.Scale,
		} {
			if v != nil && len(v) != 3 {
				return fmt.Errorf("%w: entity %d: %s needs 3 components", ErrInvalidScene, i, key)
			}
		}
		if _, ok := behaviors[e.Behavior]; e.Behavior != "" && !ok {
			return fmt.Errorf("%w: entity %d: unknown behavior %q", ErrInvalidScene, i, e.Behavior)
		}
	}
	for i, e := range f.Entities {
		if e.Parent == "" {
			continue
		}
		if !names[e.Parent] {
			return fmt.Errorf("%w: entity %d: unknown parent %q", ErrInvalidScene, i, e.Parent)
		}
		if e.Parent == e.Name {
			return fmt.Errorf("%w: entity %q is its own parent", ErrInvalidScene, e.Name)
		}
	}
	for _, target := range []string{f.Camera.FollowEye, f.Camera.FollowAt, f.Camera.FollowUp} {
		if target != "" && !names[target] {
			return fmt.Errorf("%w: camera follows unknown entity %q", ErrInvalidScene, target)
		}
	}
	for _, s := range f.Sounds {
		if s.Label == "" || s.Freq <= 0 || s.DurationMS <= 0 {
			return fmt.Errorf("%w: sound %q needs a label, freq and duration", ErrInvalidScene, s.Label)
		}
	}
	return nil
}

// Scene adapts the file to the Scene interface.
func (f *File) Scene() Scene { return fileScene{f} }

type fileScene struct {
	f *File
}

func (s fileScene) ID() string { return s.f.Name }

func (s fileScene) Title() string {
	if s.f.Title != "" {
		return s.f.Title
	}
	return s.f.Name
}

func (s fileScene) Build(w *world.World, env Env) error {
	f := s.f
	if env.Sounds != nil {
		for _, snd := range f.Sounds {
			d := time.Duration(snd.DurationMS) * time.Millisecond
			if err := env.Sounds.LoadTone(snd.Label, snd.Freq, d); err != nil && !errors.Is(err, audio.ErrDuplicateName) {
				return err
			}
		}
	}

	byName := make(map[string]*world.Entity, len(f.Entities))
	built := make([]*world.Entity, len(f.Entities))
	for i, def := range f.Entities {
		e, err := buildEntity(w, def, env)
		if err != nil {
			return fmt.Errorf("scene: entity %d: %w", i, err)
		}
		built[i] = e
		if def.Name != "" {
			byName[def.Name] = e
		}
	}
	for i, def := range f.Entities {
		if def.Parent == "" {
			continue
		}
		if err := w.AddChild(byName[def.Parent], built[i]); err != nil {
			return fmt.Errorf("scene: cannot attach %q to %q: %w", def.Name, def.Parent, err)
		}
	}

	cam := w.Camera()
	if len(f.Camera.Eye) == 3 {
		cam.Eye = core.VectorFromSlice(f.Camera.Eye)
	}
	if len(f.Camera.At) == 3 {
		cam.At = core.VectorFromSlice(f.Camera.At)
	}
	if len(f.Camera.Up) == 3 {
		cam.Up = core.VectorFromSlice(f.Camera.Up)
	}
	w.SetCamera(cam)
	if f.Camera.FollowEye != "" {
		w.FollowEye(byName[f.Camera.FollowEye])
	}
	if f.Camera.FollowAt != "" {
		w.FollowAt(byName[f.Camera.FollowAt])
	}
	if f.Camera.FollowUp != "" {
		w.FollowUp(byName[f.Camera.FollowUp])
	}
	return nil
}

func buildEntity(w *world.World, def FileEntity, env Env) (*world.Entity, error) {
	b, err := MakeBehavior(def.Behavior, env)
	if err != nil {
		return nil, err
	}
	solid, err := world.ParseSolidness(def.Solidness)
	if err != nil {
		return nil, err
	}
	color, err := core.ParseColor(def.Color)
	if err != nil {
		return nil, err
	}
	shape, err := core.ParseShape(def.Shape)
	if err != nil {
		return nil, err
	}

	e := w.NewEntity(def.Type, b)
	if err := e.SetSolidness(solid); err != nil {
		return nil, err
	}
	e.SetColor(color)
	e.SetShape(shape)
	if def.Box != nil {
		e.SetBoxSize(core.VectorFromSlice(def.Box))
	}
	if def.Scale != nil {
		e.SetScale(core.VectorFromSlice(def.Scale))
	}
	axis := e.Model().RotateAxis
	if def.RotateAxis != nil {
		axis = core.VectorFromSlice(def.RotateAxis)
	}
	e.SetRotation(def.RotateAngle, axis)
	e.SetRotateSpeed(def.RotateSpeed)
	e.SetPosition(core.VectorFromSlice(def.Position))
	e.SetVelocity(core.VectorFromSlice(def.Velocity))
	return e, nil
}
