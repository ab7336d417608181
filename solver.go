package pivot

import (
	"fmt"
	"math"

	"github.com/akmonengine/pivot/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// Frame is a pivot expressed in world space
type Frame struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
}

func (f Frame) finite() bool {
	for i := 0; i < 3; i++ {
		if !finite(f.Position[i]) || !finite(f.Rotation.V[i]) {
			return false
		}
	}
	return finite(f.Rotation.W)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// FrameOf returns the current world frame of an object
func FrameOf(o *actor.Object) Frame {
	return Frame{
		Position: o.Transform.WorldPosition(),
		Rotation: o.Transform.WorldRotation(),
	}
}

// SolveFromBoundsOffset places the pivot relative to the mesh bounding box.
// x, y and z are percentages of the box size along the local axes, measured
// from the box center: 0 is the center, -100 and 100 are one full size away.
// The orientation of the object is kept.
func SolveFromBoundsOffset(o *actor.Object, x, y, z float64) (Frame, error) {
	if o.Mesh == nil {
		return Frame{}, fmt.Errorf("%s: %w", o.Name, ErrNoMesh)
	}
	if !finite(x) || !finite(y) || !finite(z) {
		return Frame{}, fmt.Errorf("%s: bounds offset (%v, %v, %v): %w", o.Name, x, y, z, ErrInvalidTarget)
	}

	bounds := o.Mesh.Bounds()
	size := bounds.Size()

	localOffset := mgl64.Vec3{
		size.X() * (x / 100),
		size.Y() * (y / 100),
		size.Z() * (z / 100),
	}
	localPivot := bounds.Center().Add(localOffset)

	return Frame{
		Position: o.Transform.TransformPoint(localPivot),
		Rotation: o.Transform.WorldRotation(),
	}, nil
}

// SolveFromFrame uses an explicit world frame as the pivot
func SolveFromFrame(target Frame) Frame {
	return Frame{
		Position: target.Position,
		Rotation: target.Rotation,
	}
}
