package core

import (
	"fmt"
	"strings"
)

// Color is the material color of a model.
type Color uint8

// Model colors.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorBlue
	ColorYellow
	ColorMagenta
	ColorCyan
	ColorGray
	ColorWhite
	ColorBlack
)

var colorNames = map[Color]string{
	ColorDefault: "default",
	ColorRed:     "red",
	ColorGreen:   "green",
	ColorBlue:    "blue",
	ColorYellow:  "yellow",
	ColorMagenta: "magenta",
	ColorCyan:    "cyan",
	ColorGray:    "gray",
	ColorWhite:   "white",
	ColorBlack:   "black",
}

func (c Color) String() string {
	if name, ok := colorNames[c]; ok {
		return name
	}
	return "unknown"
}

// ParseColor resolves a color by name. The empty string is ColorDefault.
func ParseColor(name string) (Color, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return ColorDefault, nil
	}
	if name == "grey" {
		return ColorGray, nil
	}
	for c, n := range colorNames {
		if n == name {
			return c, nil
		}
	}
	return ColorDefault, fmt.Errorf("core: unknown color %q", name)
}

// Shape identifies the mesh a model is drawn with.
type Shape uint8

// Model shapes.
const (
	ShapeNone Shape = iota
	ShapeCube
	ShapeSphere
	ShapePyramid
)

func (s Shape) String() string {
	switch s {
	case ShapeNone:
		return "none"
	case ShapeCube:
		return "cube"
	case ShapeSphere:
		return "sphere"
	case ShapePyramid:
		return "pyramid"
	default:
		return "unknown"
	}
}

// Glyph is the rune a terminal backend uses for the shape.
func (s Shape) Glyph() rune {
	switch s {
	case ShapeCube:
		return '#'
	case ShapeSphere:
		return 'o'
	case ShapePyramid:
		return '^'
	default:
		return '*'
	}
}

// ParseShape resolves a shape by name. The empty string is ShapeCube.
func ParseShape(name string) (Shape, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "cube":
		return ShapeCube, nil
	case "sphere":
		return ShapeSphere, nil
	case "pyramid":
		return ShapePyramid, nil
	case "none":
		return ShapeNone, nil
	default:
		return ShapeNone, fmt.Errorf("core: unknown shape %q", name)
	}
}
