package actor

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ShapeType represents the type of collision shape
type ShapeType int

const (
	ShapeTypeSphere ShapeType = iota
	ShapeTypeBox
	ShapeTypeMesh
)

func (s ShapeType) String() string {
	switch s {
	case ShapeTypeSphere:
		return "sphere"
	case ShapeTypeBox:
		return "box"
	case ShapeTypeMesh:
		return "mesh"
	default:
		return "unknown"
	}
}

// Collider is the interface that all collision shapes attached to an Object implement
type Collider interface {
	Type() ShapeType
	// ComputeAABB calculates the world-space axis-aligned bounding box for
	// the shape at the given transform
	ComputeAABB(transform *Transform) AABB
}

// MeshCollider uses triangle geometry as its collision shape.
// Mesh is compared by identity when the owning object's mesh is replaced.
type MeshCollider struct {
	Mesh   *Mesh
	Convex bool
}

func (c *MeshCollider) Type() ShapeType {
	return ShapeTypeMesh
}

func (c *MeshCollider) ComputeAABB(transform *Transform) AABB {
	if c.Mesh == nil {
		p := transform.WorldPosition()
		return AABB{Min: p, Max: p}
	}

	localToWorld := transform.LocalToWorld()
	aabb := AABB{}
	for i, v := range c.Mesh.Vertices {
		w := localToWorld.Mul4x1(v.Vec4(1)).Vec3()
		if i == 0 {
			aabb = AABB{Min: w, Max: w}
			continue
		}
		aabb = aabb.Encapsulate(w)
	}

	return aabb
}

// BoxCollider represents an oriented box collision shape
// The box is defined by its local center and half-extents (half-width, half-height, half-depth)
type BoxCollider struct {
	Center      mgl64.Vec3
	HalfExtents mgl64.Vec3
}

func (b *BoxCollider) Type() ShapeType {
	return ShapeTypeBox
}

func (b *BoxCollider) ComputeAABB(transform *Transform) AABB {
	local := AABB{
		Min: b.Center.Sub(b.HalfExtents),
		Max: b.Center.Add(b.HalfExtents),
	}

	return local.Transform(transform.LocalToWorld())
}

// SphereCollider represents a spherical collision shape
type SphereCollider struct {
	Center mgl64.Vec3
	Radius float64
}

func (s *SphereCollider) Type() ShapeType {
	return ShapeTypeSphere
}

// ComputeAABB calculates the axis-aligned bounding box for the sphere.
// The radius follows the largest absolute world scale axis.
func (s *SphereCollider) ComputeAABB(transform *Transform) AABB {
	scale := transform.LossyScale()
	maxScale := math.Max(math.Abs(scale.X()), math.Max(math.Abs(scale.Y()), math.Abs(scale.Z())))
	r := s.Radius * maxScale
	radiusVec := mgl64.Vec3{r, r, r}

	center := transform.TransformPoint(s.Center)

	return AABB{
		Min: center.Sub(radiusVec),
		Max: center.Add(radiusVec),
	}
}
