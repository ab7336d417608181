package actor

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// AABBFromPoints returns the smallest box enclosing every point.
// An empty set yields the zero box at the origin.
func AABBFromPoints(points []mgl64.Vec3) AABB {
	if len(points) == 0 {
		return AABB{}
	}

	aabb := AABB{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		aabb = aabb.Encapsulate(p)
	}

	return aabb
}

// Encapsulate grows the box to include point
func (a AABB) Encapsulate(point mgl64.Vec3) AABB {
	for i := 0; i < 3; i++ {
		a.Min[i] = math.Min(a.Min[i], point[i])
		a.Max[i] = math.Max(a.Max[i], point[i])
	}
	return a
}

// Center returns the midpoint of the box
func (a AABB) Center() mgl64.Vec3 {
	return a.Min.Add(a.Max).Mul(0.5)
}

// Size returns the full extent of the box along each axis
func (a AABB) Size() mgl64.Vec3 {
	return a.Max.Sub(a.Min)
}

// Extents returns half the size
func (a AABB) Extents() mgl64.Vec3 {
	return a.Size().Mul(0.5)
}

// ContainsPoint checks if a point is inside the AABB
func (a AABB) ContainsPoint(point mgl64.Vec3) bool {
	return point.X() >= a.Min.X() && point.X() <= a.Max.X() &&
		point.Y() >= a.Min.Y() && point.Y() <= a.Max.Y() &&
		point.Z() >= a.Min.Z() && point.Z() <= a.Max.Z()
}

// Transform returns the axis-aligned box enclosing the 8 corners of a mapped through m
func (a AABB) Transform(m mgl64.Mat4) AABB {
	corners := [8]mgl64.Vec3{
		{a.Min.X(), a.Min.Y(), a.Min.Z()},
		{a.Max.X(), a.Min.Y(), a.Min.Z()},
		{a.Min.X(), a.Max.Y(), a.Min.Z()},
		{a.Max.X(), a.Max.Y(), a.Min.Z()},
		{a.Min.X(), a.Min.Y(), a.Max.Z()},
		{a.Max.X(), a.Min.Y(), a.Max.Z()},
		{a.Min.X(), a.Max.Y(), a.Max.Z()},
		{a.Max.X(), a.Max.Y(), a.Max.Z()},
	}

	for i := range corners {
		corners[i] = m.Mul4x1(corners[i].Vec4(1)).Vec3()
	}

	return AABBFromPoints(corners[:])
}
