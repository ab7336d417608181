package actor

// Object is a scene entity carrying an optional mesh and collision shapes
type Object struct {
	Name      string
	Transform Transform
	Mesh      *Mesh
	Colliders []Collider

	Children []*Object
	parent   *Object
}

// NewObject creates an object with an identity transform
func NewObject(name string) *Object {
	return &Object{
		Name:      name,
		Transform: NewTransform(),
	}
}

// Parent returns the object this one is attached to, or nil for roots
func (o *Object) Parent() *Object {
	return o.parent
}

// AddChild attaches child under o, keeping the child's local values
func (o *Object) AddChild(child *Object) {
	if child.parent != nil {
		child.parent.removeChild(child)
	}
	child.parent = o
	child.Transform.Parent = &o.Transform
	o.Children = append(o.Children, child)
}

func (o *Object) removeChild(child *Object) {
	k := -1
	for i, c := range o.Children {
		if c == child {
			k = i
			break
		}
	}

	if k != -1 {
		o.Children = append(o.Children[:k], o.Children[k+1:]...)
	}
	child.parent = nil
	child.Transform.Parent = nil
}

// AddCollider attaches a collision shape to the object
func (o *Object) AddCollider(c Collider) {
	o.Colliders = append(o.Colliders, c)
}

// Walk visits o and then every descendant, depth first
func (o *Object) Walk(fn func(*Object)) {
	fn(o)
	for _, child := range o.Children {
		child.Walk(fn)
	}
}

// MeshColliders returns every mesh collider on o and its descendants
func (o *Object) MeshColliders() []*MeshCollider {
	var colliders []*MeshCollider
	o.Walk(func(obj *Object) {
		for _, c := range obj.Colliders {
			if mc, ok := c.(*MeshCollider); ok {
				colliders = append(colliders, mc)
			}
		}
	})

	return colliders
}

// Find returns the first object named name among o and its descendants
func (o *Object) Find(name string) *Object {
	if o.Name == name {
		return o
	}
	for _, child := range o.Children {
		if found := child.Find(name); found != nil {
			return found
		}
	}

	return nil
}

// WorldBounds returns the world-space box of the object's mesh
func (o *Object) WorldBounds() (AABB, bool) {
	if o.Mesh == nil {
		return AABB{}, false
	}
	return o.Mesh.Bounds().Transform(o.Transform.LocalToWorld()), true
}
