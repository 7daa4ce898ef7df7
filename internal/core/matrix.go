package core

import "github.com/go-gl/mathgl/mgl64"

// ModelMatrix composes translate * scale * rotate, the order used when
// placing a model in its parent's space. The rotation is skipped when the
// angle is zero or the axis is degenerate.
func ModelMatrix(translate, scale Vector, angleDeg float64, axis Vector) mgl64.Mat4 {
	m := mgl64.Translate3D(translate.X, translate.Y, translate.Z).
		Mul4(mgl64.Scale3D(scale.X, scale.Y, scale.Z))
	if angleDeg != 0 && !axis.IsZero() {
		m = m.Mul4(mgl64.HomogRotate3D(mgl64.DegToRad(angleDeg), axis.Normalize().Vec3()))
	}
	return m
}

// TransformPoint applies m to the point p (w = 1).
func TransformPoint(m mgl64.Mat4, p Vector) Vector {
	return VectorFrom(m.Mul4x1(p.Vec3().Vec4(1)).Vec3())
}

// InverseTransformPoint maps p back through m. A singular m (for example a
// zero scale) yields p unchanged.
func InverseTransformPoint(m mgl64.Mat4, p Vector) Vector {
	if m.Det() == 0 {
		return p
	}
	return TransformPoint(m.Inv(), p)
}
