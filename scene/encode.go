package scene

import (
	"fmt"
	"os"

	"github.com/akmonengine/pivot/actor"
	"gopkg.in/yaml.v3"
)

// Marshal encodes the scene as YAML. Meshes are emitted once per instance, so
// objects and colliders sharing a mesh keep sharing it when loaded back.
// Stored meshes are written as file references, transient ones inline.
func (s *Scene) Marshal() ([]byte, error) {
	e := encoder{names: make(map[*actor.Mesh]string), used: make(map[string]bool)}

	var file File
	for _, root := range s.Roots {
		file.Objects = append(file.Objects, e.object(root))
	}
	file.Meshes = e.meshes

	data, err := yaml.Marshal(&file)
	if err != nil {
		return nil, fmt.Errorf("scene: marshal: %w", err)
	}
	return data, nil
}

// Save writes the scene as YAML to path
func (s *Scene) Save(path string) error {
	data, err := s.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("scene: write %s: %w", path, err)
	}
	return nil
}

type encoder struct {
	names  map[*actor.Mesh]string
	used   map[string]bool
	meshes []MeshSpec
}

// meshName registers m on first sight under a name unique within the document
func (e *encoder) meshName(m *actor.Mesh) string {
	if m == nil {
		return ""
	}
	if name, ok := e.names[m]; ok {
		return name
	}

	base := m.Name
	if base == "" {
		base = "mesh"
	}
	name := base
	for i := 1; e.used[name]; i++ {
		name = fmt.Sprintf("%s_%d", base, i)
	}
	e.names[m] = name
	e.used[name] = true

	e.meshes = append(e.meshes, meshSpec(name, m))

	return name
}

func meshSpec(name string, m *actor.Mesh) MeshSpec {
	if m.AssetPath != "" {
		return MeshSpec{Name: name, File: m.AssetPath}
	}

	spec := MeshSpec{Name: name, Triangles: m.Triangles}
	for _, v := range m.Vertices {
		spec.Vertices = append(spec.Vertices, v)
	}
	for _, n := range m.Normals {
		spec.Normals = append(spec.Normals, n)
	}
	for _, uv := range m.UVs {
		spec.UVs = append(spec.UVs, uv)
	}
	return spec
}

func (e *encoder) object(o *actor.Object) ObjectSpec {
	r := o.Transform.Rotation
	scale := [3]float64(o.Transform.Scale)
	spec := ObjectSpec{
		Name: o.Name,
		Transform: TransformSpec{
			Position: o.Transform.Position,
			Rotation: &[4]float64{r.V.X(), r.V.Y(), r.V.Z(), r.W},
			Scale:    &scale,
		},
		Mesh: e.meshName(o.Mesh),
	}

	for _, c := range o.Colliders {
		switch c := c.(type) {
		case *actor.MeshCollider:
			spec.Colliders = append(spec.Colliders, ColliderSpec{
				Type:   c.Type().String(),
				Mesh:   e.meshName(c.Mesh),
				Convex: c.Convex,
			})
		case *actor.BoxCollider:
			spec.Colliders = append(spec.Colliders, ColliderSpec{
				Type:        c.Type().String(),
				Center:      c.Center,
				HalfExtents: c.HalfExtents,
			})
		case *actor.SphereCollider:
			spec.Colliders = append(spec.Colliders, ColliderSpec{
				Type:   c.Type().String(),
				Center: c.Center,
				Radius: c.Radius,
			})
		}
	}

	for _, child := range o.Children {
		spec.Children = append(spec.Children, e.object(child))
	}

	return spec
}
