package scene

// File is the YAML layout of a scene document
type File struct {
	Meshes  []MeshSpec   `yaml:"meshes,omitempty"`
	Objects []ObjectSpec `yaml:"objects"`
}

// MeshSpec is either inline geometry or a reference to a stored mesh file.
// Objects and colliders refer to meshes by name; the same name always
// resolves to the same mesh instance.
type MeshSpec struct {
	Name      string       `yaml:"name"`
	File      string       `yaml:"file,omitempty"`
	Vertices  [][3]float64 `yaml:"vertices,omitempty,flow"`
	Normals   [][3]float64 `yaml:"normals,omitempty,flow"`
	UVs       [][2]float64 `yaml:"uvs,omitempty,flow"`
	Triangles []uint32     `yaml:"triangles,omitempty,flow"`
}

// TransformSpec holds local values. Rotation is a quaternion (x, y, z, w);
// Euler, in degrees applied Z then X then Y, is accepted when Rotation is absent.
type TransformSpec struct {
	Position [3]float64  `yaml:"position,flow"`
	Rotation *[4]float64 `yaml:"rotation,omitempty,flow"`
	Euler    *[3]float64 `yaml:"euler,omitempty,flow"`
	Scale    *[3]float64 `yaml:"scale,omitempty,flow"`
}

type ColliderSpec struct {
	Type        string     `yaml:"type"`
	Mesh        string     `yaml:"mesh,omitempty"`
	Convex      bool       `yaml:"convex,omitempty"`
	Center      [3]float64 `yaml:"center,omitempty,flow"`
	HalfExtents [3]float64 `yaml:"half_extents,omitempty,flow"`
	Radius      float64    `yaml:"radius,omitempty"`
}

type ObjectSpec struct {
	Name      string         `yaml:"name"`
	Transform TransformSpec  `yaml:"transform"`
	Mesh      string         `yaml:"mesh,omitempty"`
	Colliders []ColliderSpec `yaml:"colliders,omitempty"`
	Children  []ObjectSpec   `yaml:"children,omitempty"`
}
