package actor

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// Mesh holds triangle geometry expressed in an object's local frame.
// Meshes may be shared between objects and colliders, so they are treated as
// copy-on-transform: operations Clone before writing.
type Mesh struct {
	ID   uuid.UUID
	Name string
	// AssetPath is set once the mesh has been persisted
	AssetPath string

	Vertices  []mgl64.Vec3
	Normals   []mgl64.Vec3
	Tangents  []mgl64.Vec4 // xyz direction, w handedness
	UVs       []mgl64.Vec2
	Triangles []uint32

	bounds      AABB
	boundsValid bool
}

// NewMesh creates a mesh with a fresh ID and computed bounds
func NewMesh(name string, vertices, normals []mgl64.Vec3, triangles []uint32) *Mesh {
	m := &Mesh{
		ID:        uuid.New(),
		Name:      name,
		Vertices:  vertices,
		Normals:   normals,
		Triangles: triangles,
	}
	m.RecalculateBounds()

	return m
}

// Clone deep-copies the geometry into a new, unpersisted mesh with its own ID
func (m *Mesh) Clone(name string) *Mesh {
	c := &Mesh{
		ID:          uuid.New(),
		Name:        name,
		Vertices:    append([]mgl64.Vec3(nil), m.Vertices...),
		Normals:     append([]mgl64.Vec3(nil), m.Normals...),
		Tangents:    append([]mgl64.Vec4(nil), m.Tangents...),
		UVs:         append([]mgl64.Vec2(nil), m.UVs...),
		Triangles:   append([]uint32(nil), m.Triangles...),
		bounds:      m.bounds,
		boundsValid: m.boundsValid,
	}

	return c
}

// Bounds returns the local-space bounding box, computing it if needed
func (m *Mesh) Bounds() AABB {
	if !m.boundsValid {
		m.RecalculateBounds()
	}
	return m.bounds
}

// RecalculateBounds refreshes the cached bounding box from the vertices
func (m *Mesh) RecalculateBounds() {
	m.bounds = AABBFromPoints(m.Vertices)
	m.boundsValid = true
}

// Validate checks that per-vertex attributes line up with the vertices
func (m *Mesh) Validate() error {
	n := len(m.Vertices)
	if len(m.Normals) != 0 && len(m.Normals) != n {
		return fmt.Errorf("mesh %q: %d normals for %d vertices", m.Name, len(m.Normals), n)
	}
	if len(m.UVs) != 0 && len(m.UVs) != n {
		return fmt.Errorf("mesh %q: %d uvs for %d vertices", m.Name, len(m.UVs), n)
	}
	if len(m.Tangents) != 0 && len(m.Tangents) != n {
		return fmt.Errorf("mesh %q: %d tangents for %d vertices", m.Name, len(m.Tangents), n)
	}
	if len(m.Triangles)%3 != 0 {
		return fmt.Errorf("mesh %q: triangle index count %d is not a multiple of 3", m.Name, len(m.Triangles))
	}
	for _, idx := range m.Triangles {
		if int(idx) >= n {
			return fmt.Errorf("mesh %q: triangle index %d out of range", m.Name, idx)
		}
	}

	return nil
}
