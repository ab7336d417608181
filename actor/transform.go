package actor

import "github.com/go-gl/mathgl/mgl64"

// Transform represents a local frame in 3D space, optionally nested under a parent
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
	Scale    mgl64.Vec3

	// Parent is nil for root transforms
	Parent *Transform
}

// NewTransform creates an identity transform
func NewTransform() Transform {
	return Transform{
		Position: mgl64.Vec3{0, 0, 0},
		Rotation: mgl64.QuatIdent(),
		Scale:    mgl64.Vec3{1, 1, 1},
	}
}

// TRS composes translation, rotation and scale as T * R * S
func TRS(position mgl64.Vec3, rotation mgl64.Quat, scale mgl64.Vec3) mgl64.Mat4 {
	t := mgl64.Translate3D(position.X(), position.Y(), position.Z())
	s := mgl64.Scale3D(scale.X(), scale.Y(), scale.Z())

	return t.Mul4(rotation.Normalize().Mat4()).Mul4(s)
}

// LocalMatrix maps this transform's space into its parent's space
func (t *Transform) LocalMatrix() mgl64.Mat4 {
	return TRS(t.Position, t.Rotation, t.Scale)
}

// LocalToWorld maps this transform's space into world space, walking up the parents
func (t *Transform) LocalToWorld() mgl64.Mat4 {
	if t.Parent == nil {
		return t.LocalMatrix()
	}
	return t.Parent.LocalToWorld().Mul4(t.LocalMatrix())
}

// WorldPosition returns the origin of this transform in world space
func (t *Transform) WorldPosition() mgl64.Vec3 {
	if t.Parent == nil {
		return t.Position
	}
	return t.Parent.TransformPoint(t.Position)
}

// WorldRotation returns the accumulated rotation of this transform
func (t *Transform) WorldRotation() mgl64.Quat {
	if t.Parent == nil {
		return t.Rotation.Normalize()
	}
	return t.Parent.WorldRotation().Mul(t.Rotation).Normalize()
}

// LossyScale flattens the hierarchy into a single world scale vector.
// It reads the diagonal of R^T * M where M is the linear part of the
// local-to-world matrix and R the world rotation. Shear introduced by a
// rotated child of a non-uniformly scaled parent is dropped.
func (t *Transform) LossyScale() mgl64.Vec3 {
	if t.Parent == nil {
		return t.Scale
	}

	linear := t.LocalToWorld().Mat3()
	rotation := t.WorldRotation().Mat4().Mat3()
	s := rotation.Transpose().Mul3(linear)

	return mgl64.Vec3{s.At(0, 0), s.At(1, 1), s.At(2, 2)}
}

// TransformPoint maps a point from local to world space
func (t *Transform) TransformPoint(point mgl64.Vec3) mgl64.Vec3 {
	return t.LocalToWorld().Mul4x1(point.Vec4(1)).Vec3()
}

// SetWorldPosition moves the transform so its origin lands on position in world space
func (t *Transform) SetWorldPosition(position mgl64.Vec3) {
	if t.Parent == nil {
		t.Position = position
		return
	}
	t.Position = t.Parent.LocalToWorld().Inv().Mul4x1(position.Vec4(1)).Vec3()
}

// SetWorldRotation orients the transform so its world rotation equals rotation
func (t *Transform) SetWorldRotation(rotation mgl64.Quat) {
	if t.Parent == nil {
		t.Rotation = rotation.Normalize()
		return
	}
	t.Rotation = t.Parent.WorldRotation().Inverse().Mul(rotation).Normalize()
}

// EulerToQuat builds a rotation from angles in degrees, applied around Z, then X, then Y
func EulerToQuat(degrees mgl64.Vec3) mgl64.Quat {
	return mgl64.QuatRotate(mgl64.DegToRad(degrees.Y()), mgl64.Vec3{0, 1, 0}).
		Mul(mgl64.QuatRotate(mgl64.DegToRad(degrees.X()), mgl64.Vec3{1, 0, 0})).
		Mul(mgl64.QuatRotate(mgl64.DegToRad(degrees.Z()), mgl64.Vec3{0, 0, 1}))
}
