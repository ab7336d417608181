package actor

import "github.com/go-gl/mathgl/mgl64"

// NewBoxMesh builds a box centered on center with 4 vertices per face, so
// every face carries its own normal and UV square.
func NewBoxMesh(name string, center, halfExtents mgl64.Vec3) *Mesh {
	hx, hy, hz := halfExtents.X(), halfExtents.Y(), halfExtents.Z()

	faces := []struct {
		normal   mgl64.Vec3
		vertices [4]mgl64.Vec3
	}{
		{mgl64.Vec3{1, 0, 0}, [4]mgl64.Vec3{{hx, -hy, -hz}, {hx, -hy, hz}, {hx, hy, hz}, {hx, hy, -hz}}},
		{mgl64.Vec3{-1, 0, 0}, [4]mgl64.Vec3{{-hx, -hy, hz}, {-hx, -hy, -hz}, {-hx, hy, -hz}, {-hx, hy, hz}}},
		{mgl64.Vec3{0, 1, 0}, [4]mgl64.Vec3{{-hx, hy, -hz}, {-hx, hy, hz}, {hx, hy, hz}, {hx, hy, -hz}}},
		{mgl64.Vec3{0, -1, 0}, [4]mgl64.Vec3{{-hx, -hy, hz}, {hx, -hy, hz}, {hx, -hy, -hz}, {-hx, -hy, -hz}}},
		{mgl64.Vec3{0, 0, 1}, [4]mgl64.Vec3{{-hx, -hy, hz}, {-hx, hy, hz}, {hx, hy, hz}, {hx, -hy, hz}}},
		{mgl64.Vec3{0, 0, -1}, [4]mgl64.Vec3{{hx, -hy, -hz}, {hx, hy, -hz}, {-hx, hy, -hz}, {-hx, -hy, -hz}}},
	}
	uvs := [4]mgl64.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

	var (
		vertices  []mgl64.Vec3
		normals   []mgl64.Vec3
		texcoords []mgl64.Vec2
		triangles []uint32
	)
	for _, face := range faces {
		base := uint32(len(vertices))
		for i, v := range face.vertices {
			vertices = append(vertices, v.Add(center))
			normals = append(normals, face.normal)
			texcoords = append(texcoords, uvs[i])
		}

		// wind counter-clockwise seen from outside
		edge1 := face.vertices[1].Sub(face.vertices[0])
		edge2 := face.vertices[2].Sub(face.vertices[0])
		if edge1.Cross(edge2).Dot(face.normal) >= 0 {
			triangles = append(triangles, base, base+1, base+2, base, base+2, base+3)
		} else {
			triangles = append(triangles, base, base+2, base+1, base, base+3, base+2)
		}
	}

	m := NewMesh(name, vertices, normals, triangles)
	m.UVs = texcoords
	m.RecalculateTangents()

	return m
}
