package world

import (
	"fmt"
	"strings"
)

// Solidness decides how an entity takes part in collisions.
type Solidness uint8

const (
	// Hard entities collide and block other hard entities.
	Hard Solidness = iota + 1
	// Soft entities collide but never block.
	Soft
	// Spectral entities never collide.
	Spectral
)

// Valid reports whether s is one of the three defined values.
func (s Solidness) Valid() bool {
	return s == Hard || s == Soft || s == Spectral
}

// IsSolid reports whether s takes part in collisions.
func (s Solidness) IsSolid() bool {
	return s == Hard || s == Soft
}

func (s Solidness) String() string {
	switch s {
	case Hard:
		return "hard"
	case Soft:
		return "soft"
	case Spectral:
		return "spectral"
	default:
		return "invalid"
	}
}

// ParseSolidness resolves a solidness by name. The empty string is Hard.
func ParseSolidness(name string) (Solidness, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "hard":
		return Hard, nil
	case "soft":
		return Soft, nil
	case "spectral":
		return Spectral, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidSolidness, name)
	}
}
