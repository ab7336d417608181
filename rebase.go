package pivot

import (
	"fmt"
	"math"

	"github.com/akmonengine/pivot/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// scaleEpsilon is the smallest world scale component a frame can be inverted with
const scaleEpsilon = 1e-9

// Update is the transform change to apply to an object alongside its new mesh
type Update struct {
	WorldPosition mgl64.Vec3
	WorldRotation mgl64.Quat
	LocalScale    mgl64.Vec3
}

// Result carries a freshly built mesh and the transform that keeps it in place
type Result struct {
	Mesh   *actor.Mesh
	Update Update
}

// Rebase re-expresses the object's mesh relative to frame.
// Neither the object nor its mesh is modified: the returned mesh is a copy and
// the returned update must be committed by the caller. Applying both leaves every
// vertex at the same world position.
func Rebase(o *actor.Object, frame Frame) (Result, error) {
	if err := checkMesh(o); err != nil {
		return Result{}, err
	}
	if !frame.finite() {
		return Result{}, fmt.Errorf("%s: pivot frame %v %v: %w", o.Name, frame.Position, frame.Rotation, ErrInvalidTarget)
	}

	lossyScale := o.Transform.LossyScale()
	meshTransform, err := frameChange(o, frame.Position, frame.Rotation, lossyScale)
	if err != nil {
		return Result{}, err
	}

	mesh := transformMesh(o.Mesh, o.Mesh.Name+"_pivoted", meshTransform)

	return Result{
		Mesh: mesh,
		Update: Update{
			WorldPosition: frame.Position,
			WorldRotation: frame.Rotation,
			LocalScale:    o.Transform.Scale,
		},
	}, nil
}

// checkMesh rejects objects whose mesh is missing or whose indices and
// attributes would read past the vertices.
func checkMesh(o *actor.Object) error {
	if o.Mesh == nil {
		return fmt.Errorf("%s: %w", o.Name, ErrNoMesh)
	}
	if err := o.Mesh.Validate(); err != nil {
		return fmt.Errorf("%s: %w: %w", o.Name, ErrInvalidMesh, err)
	}
	return nil
}

// frameChange returns the matrix taking coordinates in the object's current
// local frame to the frame built from position, rotation and worldScale:
// inverse(new) * old. Both frames share the world scale, so the mesh absorbs
// only the change of origin and axes.
func frameChange(o *actor.Object, position mgl64.Vec3, rotation mgl64.Quat, worldScale mgl64.Vec3) (mgl64.Mat4, error) {
	for i := 0; i < 3; i++ {
		if math.Abs(worldScale[i]) < scaleEpsilon {
			return mgl64.Mat4{}, fmt.Errorf("%s: world scale %v: %w", o.Name, worldScale, ErrDegenerateTransform)
		}
	}

	oldLocalToWorld := o.Transform.LocalToWorld()
	newLocalToWorld := actor.TRS(position, rotation, worldScale)

	return newLocalToWorld.Inv().Mul4(oldLocalToWorld), nil
}

// transformMesh clones src and maps its vertices as points through m and its
// normals through the inverse transpose of m's linear part.
func transformMesh(src *actor.Mesh, name string, m mgl64.Mat4) *actor.Mesh {
	mesh := src.Clone(name)

	task(workersFor(len(mesh.Vertices)), len(mesh.Vertices), func(start, end int) {
		for i := start; i < end; i++ {
			mesh.Vertices[i] = m.Mul4x1(mesh.Vertices[i].Vec4(1)).Vec3()
		}
	})

	normalMatrix := m.Mat3().Inv().Transpose()
	task(workersFor(len(mesh.Normals)), len(mesh.Normals), func(start, end int) {
		for i := start; i < end; i++ {
			mesh.Normals[i] = actor.NormalizeOrZero(normalMatrix.Mul3x1(mesh.Normals[i]))
		}
	})

	mesh.RecalculateTangents()
	mesh.RecalculateBounds()

	return mesh
}
