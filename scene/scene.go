package scene

import (
	"fmt"
	"os"

	"github.com/akmonengine/pivot/actor"
	"github.com/akmonengine/pivot/store"
	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"
)

// Scene is a forest of objects together with the meshes they share
type Scene struct {
	Roots []*actor.Object
}

// Load reads a YAML scene. Stored mesh references are resolved through st,
// which may be nil when the scene only holds inline meshes.
func Load(path string, st *store.Store) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scene: read %s: %w", path, err)
	}

	s, err := Parse(data, st)
	if err != nil {
		return nil, fmt.Errorf("scene: %s: %w", path, err)
	}

	return s, nil
}

// Parse decodes a YAML scene document
func Parse(data []byte, st *store.Store) (*Scene, error) {
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}

	b := builder{store: st, meshes: make(map[string]*actor.Mesh)}
	for _, spec := range file.Meshes {
		if err := b.addMesh(spec); err != nil {
			return nil, err
		}
	}

	s := &Scene{}
	for _, spec := range file.Objects {
		o, err := b.object(spec)
		if err != nil {
			return nil, err
		}
		s.Roots = append(s.Roots, o)
	}

	return s, nil
}

// Find returns the first object with the given name, searching depth first
func (s *Scene) Find(name string) *actor.Object {
	for _, root := range s.Roots {
		if o := root.Find(name); o != nil {
			return o
		}
	}
	return nil
}

// Objects returns every object of the scene, depth first
func (s *Scene) Objects() []*actor.Object {
	var objects []*actor.Object
	for _, root := range s.Roots {
		root.Walk(func(o *actor.Object) {
			objects = append(objects, o)
		})
	}
	return objects
}

type builder struct {
	store  *store.Store
	meshes map[string]*actor.Mesh
}

func (b *builder) addMesh(spec MeshSpec) error {
	if spec.Name == "" {
		return fmt.Errorf("mesh without a name")
	}
	if _, ok := b.meshes[spec.Name]; ok {
		return fmt.Errorf("mesh %q declared twice", spec.Name)
	}

	if spec.File != "" {
		if b.store == nil {
			return fmt.Errorf("mesh %q: file %s needs a store", spec.Name, spec.File)
		}
		m, err := b.store.Load(spec.File)
		if err != nil {
			return fmt.Errorf("mesh %q: %w", spec.Name, err)
		}
		b.meshes[spec.Name] = m
		return nil
	}

	m := actor.NewMesh(spec.Name, toVec3s(spec.Vertices), toVec3s(spec.Normals), spec.Triangles)
	if len(spec.UVs) > 0 {
		m.UVs = make([]mgl64.Vec2, len(spec.UVs))
		for i, uv := range spec.UVs {
			m.UVs[i] = mgl64.Vec2(uv)
		}
	}
	if err := m.Validate(); err != nil {
		return err
	}
	m.RecalculateTangents()
	b.meshes[spec.Name] = m

	return nil
}

func (b *builder) mesh(name string) (*actor.Mesh, error) {
	if name == "" {
		return nil, nil
	}
	m, ok := b.meshes[name]
	if !ok {
		return nil, fmt.Errorf("unknown mesh %q", name)
	}
	return m, nil
}

func (b *builder) object(spec ObjectSpec) (*actor.Object, error) {
	o := actor.NewObject(spec.Name)
	o.Transform = transform(spec.Transform)

	m, err := b.mesh(spec.Mesh)
	if err != nil {
		return nil, fmt.Errorf("object %q: %w", spec.Name, err)
	}
	o.Mesh = m

	for _, cs := range spec.Colliders {
		c, err := b.collider(cs)
		if err != nil {
			return nil, fmt.Errorf("object %q: %w", spec.Name, err)
		}
		o.AddCollider(c)
	}

	for _, childSpec := range spec.Children {
		child, err := b.object(childSpec)
		if err != nil {
			return nil, err
		}
		o.AddChild(child)
	}

	return o, nil
}

func (b *builder) collider(spec ColliderSpec) (actor.Collider, error) {
	switch spec.Type {
	case actor.ShapeTypeMesh.String():
		m, err := b.mesh(spec.Mesh)
		if err != nil {
			return nil, err
		}
		return &actor.MeshCollider{Mesh: m, Convex: spec.Convex}, nil
	case actor.ShapeTypeBox.String():
		return &actor.BoxCollider{Center: spec.Center, HalfExtents: spec.HalfExtents}, nil
	case actor.ShapeTypeSphere.String():
		return &actor.SphereCollider{Center: spec.Center, Radius: spec.Radius}, nil
	default:
		return nil, fmt.Errorf("unknown collider type %q", spec.Type)
	}
}

func transform(spec TransformSpec) actor.Transform {
	t := actor.NewTransform()
	t.Position = spec.Position

	switch {
	case spec.Rotation != nil:
		r := spec.Rotation
		t.Rotation = mgl64.Quat{W: r[3], V: mgl64.Vec3{r[0], r[1], r[2]}}.Normalize()
	case spec.Euler != nil:
		t.Rotation = actor.EulerToQuat(*spec.Euler)
	}

	if spec.Scale != nil {
		t.Scale = *spec.Scale
	}

	return t
}

func toVec3s(in [][3]float64) []mgl64.Vec3 {
	if len(in) == 0 {
		return nil
	}
	out := make([]mgl64.Vec3, len(in))
	for i, v := range in {
		out[i] = v
	}
	return out
}
