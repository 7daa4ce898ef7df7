package core

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vector is a 3D quantity used for positions, velocities, directions and
// sizes. Vectors are plain values; every operation returns a new Vector.
type Vector struct {
	X, Y, Z float64
}

// Vec constructs a Vector from components.
func Vec(x, y, z float64) Vector {
	return Vector{X: x, Y: y, Z: z}
}

// Zero is the origin.
var Zero = Vector{}

// Add returns v + o.
func (v Vector) Add(o Vector) Vector {
	return Vector{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns v - o.
func (v Vector) Sub(o Vector) Vector {
	return Vector{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale multiplies every component by s.
func (v Vector) Scale(s float64) Vector {
	return Vector{v.X * s, v.Y * s, v.Z * s}
}

// Mul multiplies component-wise.
func (v Vector) Mul(o Vector) Vector {
	return Vector{v.X * o.X, v.Y * o.Y, v.Z * o.Z}
}

// Abs returns the component-wise absolute value.
func (v Vector) Abs() Vector {
	return Vector{math.Abs(v.X), math.Abs(v.Y), math.Abs(v.Z)}
}

// Dot returns the scalar product.
func (v Vector) Dot(o Vector) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Cross returns the vector product.
func (v Vector) Cross(o Vector) Vector {
	return Vector{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

// Magnitude returns the Euclidean length.
func (v Vector) Magnitude() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Normalize returns the unit vector pointing the same way.
// The zero vector normalizes to itself.
func (v Vector) Normalize() Vector {
	m := v.Magnitude()
	if m == 0 {
		return v
	}
	return Vector{v.X / m, v.Y / m, v.Z / m}
}

// IsZero reports whether all components are zero.
func (v Vector) IsZero() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

// Equal compares component-wise with exact float equality.
func (v Vector) Equal(o Vector) bool {
	return v.X == o.X && v.Y == o.Y && v.Z == o.Z
}

// ApproxEqual compares component-wise within eps.
func (v Vector) ApproxEqual(o Vector, eps float64) bool {
	return math.Abs(v.X-o.X) <= eps && math.Abs(v.Y-o.Y) <= eps && math.Abs(v.Z-o.Z) <= eps
}

// Vec3 converts to the mathgl representation.
func (v Vector) Vec3() mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

// VectorFrom converts a mathgl vector.
func VectorFrom(v mgl64.Vec3) Vector {
	return Vector{v[0], v[1], v[2]}
}

// VectorFromSlice builds a vector from up to three components.
// Missing components are zero.
func VectorFromSlice(c []float64) Vector {
	var v Vector
	if len(c) > 0 {
		v.X = c[0]
	}
	if len(c) > 1 {
		v.Y = c[1]
	}
	if len(c) > 2 {
		v.Z = c[2]
	}
	return v
}

func (v Vector) String() string {
	return fmt.Sprintf("(%g, %g, %g)", v.X, v.Y, v.Z)
}
