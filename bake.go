package pivot

import (
	"github.com/akmonengine/pivot/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// BakeScale folds the object's local scale into its vertices and resets the
// scale to one. Position and rotation are kept.
func BakeScale(o *actor.Object) (Result, error) {
	if err := checkMesh(o); err != nil {
		return Result{}, err
	}

	scale := o.Transform.Scale
	mesh := o.Mesh.Clone(o.Mesh.Name + "_scaled")

	task(workersFor(len(mesh.Vertices)), len(mesh.Vertices), func(start, end int) {
		for i := start; i < end; i++ {
			v := mesh.Vertices[i]
			mesh.Vertices[i] = mgl64.Vec3{v.X() * scale.X(), v.Y() * scale.Y(), v.Z() * scale.Z()}
		}
	})

	if len(mesh.Triangles) > 0 {
		mesh.RecalculateNormals()
	} else if len(mesh.Normals) > 0 {
		// no faces to rebuild from, carry the authored normals through the scale
		normalMatrix := mgl64.Scale3D(scale.X(), scale.Y(), scale.Z()).Mat3().Inv().Transpose()
		for i, n := range mesh.Normals {
			mesh.Normals[i] = actor.NormalizeOrZero(normalMatrix.Mul3x1(n))
		}
	}
	mesh.RecalculateTangents()
	mesh.RecalculateBounds()

	return Result{
		Mesh: mesh,
		Update: Update{
			WorldPosition: o.Transform.WorldPosition(),
			WorldRotation: o.Transform.WorldRotation(),
			LocalScale:    mgl64.Vec3{1, 1, 1},
		},
	}, nil
}

// BakeRotation folds the object's world rotation into its vertices and sets
// the rotation to identity. Position and local scale are kept.
func BakeRotation(o *actor.Object) (Result, error) {
	if err := checkMesh(o); err != nil {
		return Result{}, err
	}

	position := o.Transform.WorldPosition()
	meshTransform, err := frameChange(o, position, mgl64.QuatIdent(), o.Transform.LossyScale())
	if err != nil {
		return Result{}, err
	}

	mesh := transformMesh(o.Mesh, o.Mesh.Name+"_rotated", meshTransform)

	return Result{
		Mesh: mesh,
		Update: Update{
			WorldPosition: position,
			WorldRotation: mgl64.QuatIdent(),
			LocalScale:    o.Transform.Scale,
		},
	}, nil
}
