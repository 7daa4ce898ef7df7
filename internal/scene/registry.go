// Package scene provides a global registry of scene factories together with
// the behaviors the built-in scenes and scene files use.
// Scenes register themselves in init() functions, allowing the CLI to
// discover and build them without hardcoded dependencies.
package scene

import (
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/polygove/internal/audio"
	"github.com/vovakirdan/polygove/internal/world"
)

// Env is what a scene and its behaviors may reach outside the world.
type Env struct {
	Logger *log.Logger
	// Quit ends the run; behaviors call it on the quit key.
	Quit func()
	// Sounds is optional.
	Sounds *audio.Resources
}

func (env Env) logger() *log.Logger {
	if env.Logger == nil {
		return log.New(io.Discard)
	}
	return env.Logger
}

func (env Env) quit() {
	if env.Quit != nil {
		env.Quit()
	}
}

// Scene populates a started world.
type Scene interface {
	// ID is the name used on the command line and in the run journal.
	ID() string
	Title() string
	// Build inserts the scene's entities and sets the camera.
	Build(w *world.World, env Env) error
}

// Info contains metadata about a registered scene.
type Info struct {
	ID    string
	Title string
}

// Factory creates a new instance of a scene.
type Factory func() Scene

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a scene factory to the registry.
// Panics if a scene with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("scene: %q already registered", id))
	}

	factories[id] = f
	titles[id] = f().Title()
}

// List returns all registered scenes sorted by ID.
func List() []Info {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Info, 0, len(factories))
	for id := range factories {
		result = append(result, Info{ID: id, Title: titles[id]})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a scene by its ID.
func Create(id string) (Scene, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("scene: unknown scene %q", id)
	}
	return f(), nil
}

// Exists checks if a scene with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
