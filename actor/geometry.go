package actor

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const geometryEpsilon = 1e-12

// RecalculateNormals rebuilds smooth vertex normals from the triangles.
// Face normals are accumulated unnormalized so larger faces weigh more.
// A mesh without triangles keeps its normals.
func (m *Mesh) RecalculateNormals() {
	if len(m.Triangles) == 0 {
		return
	}

	normals := make([]mgl64.Vec3, len(m.Vertices))
	for i := 0; i+2 < len(m.Triangles); i += 3 {
		i0, i1, i2 := m.Triangles[i], m.Triangles[i+1], m.Triangles[i+2]

		edge1 := m.Vertices[i1].Sub(m.Vertices[i0])
		edge2 := m.Vertices[i2].Sub(m.Vertices[i0])
		face := edge1.Cross(edge2)

		normals[i0] = normals[i0].Add(face)
		normals[i1] = normals[i1].Add(face)
		normals[i2] = normals[i2].Add(face)
	}

	for i := range normals {
		normals[i] = NormalizeOrZero(normals[i])
	}
	m.Normals = normals
}

// RecalculateTangents rebuilds per-vertex tangents from UVs and normals.
// Tangents are cleared when the mesh lacks UVs, normals or triangles.
func (m *Mesh) RecalculateTangents() {
	n := len(m.Vertices)
	if len(m.Triangles) == 0 || len(m.UVs) != n || len(m.Normals) != n {
		m.Tangents = nil
		return
	}

	tan1 := make([]mgl64.Vec3, n)
	tan2 := make([]mgl64.Vec3, n)

	for i := 0; i+2 < len(m.Triangles); i += 3 {
		i0, i1, i2 := m.Triangles[i], m.Triangles[i+1], m.Triangles[i+2]

		edge1 := m.Vertices[i1].Sub(m.Vertices[i0])
		edge2 := m.Vertices[i2].Sub(m.Vertices[i0])

		deltaU1 := m.UVs[i1].X() - m.UVs[i0].X()
		deltaV1 := m.UVs[i1].Y() - m.UVs[i0].Y()
		deltaU2 := m.UVs[i2].X() - m.UVs[i0].X()
		deltaV2 := m.UVs[i2].Y() - m.UVs[i0].Y()

		dividend := deltaU1*deltaV2 - deltaU2*deltaV1
		if math.Abs(dividend) < geometryEpsilon {
			continue
		}
		fc := 1.0 / dividend

		sdir := edge1.Mul(deltaV2).Sub(edge2.Mul(deltaV1)).Mul(fc)
		tdir := edge2.Mul(deltaU1).Sub(edge1.Mul(deltaU2)).Mul(fc)

		for _, idx := range [3]uint32{i0, i1, i2} {
			tan1[idx] = tan1[idx].Add(sdir)
			tan2[idx] = tan2[idx].Add(tdir)
		}
	}

	tangents := make([]mgl64.Vec4, n)
	for i := range tangents {
		normal := m.Normals[i]
		t := tan1[i]

		// Gram-Schmidt against the normal
		tangent := NormalizeOrZero(t.Sub(normal.Mul(normal.Dot(t))))

		handedness := 1.0
		if normal.Cross(t).Dot(tan2[i]) < 0 {
			handedness = -1.0
		}
		tangents[i] = tangent.Vec4(handedness)
	}
	m.Tangents = tangents
}

// NormalizeOrZero returns the unit vector of v, or the zero vector when v is degenerate
func NormalizeOrZero(v mgl64.Vec3) mgl64.Vec3 {
	if v.Len() < geometryEpsilon {
		return mgl64.Vec3{}
	}
	return v.Normalize()
}
