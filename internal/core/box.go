package core

// Box is an axis-aligned bounding box described by its center and its full
// extents along each axis.
type Box struct {
	Center Vector
	Width  float64 // extent along X
	Height float64 // extent along Y
	Depth  float64 // extent along Z
}

// NewBox creates a box centered at c with the given size.
func NewBox(c Vector, size Vector) Box {
	return Box{Center: c, Width: size.X, Height: size.Y, Depth: size.Z}
}

// UnitBox is a 1x1x1 box at the origin, matching the cube model.
func UnitBox() Box {
	return NewBox(Zero, Vec(1, 1, 1))
}

// Size returns the full extents as a vector.
func (b Box) Size() Vector {
	return Vector{b.Width, b.Height, b.Depth}
}

// HalfExtents returns half of each extent.
func (b Box) HalfExtents() Vector {
	return b.Size().Abs().Scale(0.5)
}

// Min returns the corner with the smallest coordinates.
func (b Box) Min() Vector {
	return b.Center.Sub(b.HalfExtents())
}

// Max returns the corner with the largest coordinates.
func (b Box) Max() Vector {
	return b.Center.Add(b.HalfExtents())
}

// Recenter returns the same box moved to c.
func (b Box) Recenter(c Vector) Box {
	b.Center = c
	return b
}

// Scaled returns the box with every extent multiplied component-wise.
func (b Box) Scaled(s Vector) Box {
	return NewBox(b.Center, b.Size().Mul(s.Abs()))
}

// Intersects reports whether two boxes overlap. Touching faces count as
// overlap, so a zero-size box sitting on another box's surface intersects it.
func (b Box) Intersects(o Box) bool {
	bmin, bmax := b.Min(), b.Max()
	omin, omax := o.Min(), o.Max()
	if bmax.X < omin.X || omax.X < bmin.X {
		return false
	}
	if bmax.Y < omin.Y || omax.Y < bmin.Y {
		return false
	}
	if bmax.Z < omin.Z || omax.Z < bmin.Z {
		return false
	}
	return true
}

// Contains reports whether p lies inside or on the box.
func (b Box) Contains(p Vector) bool {
	lo, hi := b.Min(), b.Max()
	return p.X >= lo.X && p.X <= hi.X &&
		p.Y >= lo.Y && p.Y <= hi.Y &&
		p.Z >= lo.Z && p.Z <= hi.Z
}

// Corners returns the eight vertices of the box.
func (b Box) Corners() [8]Vector {
	lo, hi := b.Min(), b.Max()
	return [8]Vector{
		{lo.X, lo.Y, lo.Z}, {hi.X, lo.Y, lo.Z},
		{lo.X, hi.Y, lo.Z}, {hi.X, hi.Y, lo.Z},
		{lo.X, lo.Y, hi.Z}, {hi.X, lo.Y, hi.Z},
		{lo.X, hi.Y, hi.Z}, {hi.X, hi.Y, hi.Z},
	}
}
