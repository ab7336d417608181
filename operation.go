package pivot

import (
	"fmt"

	"github.com/akmonengine/pivot/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// Operation is one editor request applied to every target of a batch
type Operation interface {
	Name() string
	// prepare validates the request as a whole, before any object is touched
	prepare() error
	// compute builds the change for one object without mutating it
	compute(o *actor.Object) (change, error)
}

// change is what the editor commits for one object. A nil update leaves the transform alone.
type change struct {
	mesh   *actor.Mesh
	update *Update
}

func fromResult(r Result) change {
	update := r.Update
	return change{mesh: r.Mesh, update: &update}
}

// ApplyScale bakes local scale into the mesh
type ApplyScale struct{}

func (ApplyScale) Name() string   { return "Apply Scale" }
func (ApplyScale) prepare() error { return nil }

func (ApplyScale) compute(o *actor.Object) (change, error) {
	r, err := BakeScale(o)
	if err != nil {
		return change{}, err
	}
	return fromResult(r), nil
}

// ResetRotation bakes world rotation into the mesh
type ResetRotation struct{}

func (ResetRotation) Name() string   { return "Reset Rotation" }
func (ResetRotation) prepare() error { return nil }

func (ResetRotation) compute(o *actor.Object) (change, error) {
	r, err := BakeRotation(o)
	if err != nil {
		return change{}, err
	}
	return fromResult(r), nil
}

// MovePivotByBounds moves the pivot to an offset of the mesh bounding box center.
// X, Y and Z are signed percentages of the box size, clamped to [-100, 100].
type MovePivotByBounds struct {
	X, Y, Z float64
}

func (MovePivotByBounds) Name() string   { return "Move Pivot" }
func (MovePivotByBounds) prepare() error { return nil }

func (op MovePivotByBounds) compute(o *actor.Object) (change, error) {
	frame, err := SolveFromBoundsOffset(o,
		mgl64.Clamp(op.X, -100, 100),
		mgl64.Clamp(op.Y, -100, 100),
		mgl64.Clamp(op.Z, -100, 100),
	)
	if err != nil {
		return change{}, err
	}

	r, err := Rebase(o, frame)
	if err != nil {
		return change{}, err
	}
	return fromResult(r), nil
}

// MovePivotToFrame moves the pivot onto an explicit world frame. When Source is
// set its world frame is read at the moment each object is processed and Frame
// is ignored.
type MovePivotToFrame struct {
	Frame  Frame
	Source *actor.Object
}

func (MovePivotToFrame) Name() string   { return "Move Pivot" }
func (MovePivotToFrame) prepare() error { return nil }

func (op MovePivotToFrame) compute(o *actor.Object) (change, error) {
	target := op.Frame
	if op.Source != nil {
		if op.Source == o {
			return change{}, fmt.Errorf("%s: pivot source is the object itself: %w", o.Name, ErrInvalidTarget)
		}
		target = FrameOf(op.Source)
	}

	r, err := Rebase(o, SolveFromFrame(target))
	if err != nil {
		return change{}, err
	}
	return fromResult(r), nil
}

// Persister durably stores meshes
type Persister interface {
	// Validate checks that dir is an acceptable destination
	Validate(dir string) error
	// Contains reports whether the mesh is already stored
	Contains(m *actor.Mesh) bool
	// Save writes the mesh and returns the handle that should replace it
	Save(m *actor.Mesh, dir, name string) (*actor.Mesh, error)
}

// SaveMesh persists the transient mesh of every target as <object>_Mesh under Dir
type SaveMesh struct {
	Store Persister
	Dir   string
}

func (SaveMesh) Name() string { return "Save Mesh" }

func (op SaveMesh) prepare() error {
	if op.Store == nil {
		return fmt.Errorf("no store configured: %w", ErrPersistenceLocation)
	}
	if err := op.Store.Validate(op.Dir); err != nil {
		return fmt.Errorf("%w: %w", ErrPersistenceLocation, err)
	}
	return nil
}

func (op SaveMesh) compute(o *actor.Object) (change, error) {
	if o.Mesh == nil {
		return change{}, fmt.Errorf("%s: %w", o.Name, ErrNoMesh)
	}
	if op.Store.Contains(o.Mesh) {
		return change{}, fmt.Errorf("%s: %s: %w", o.Name, o.Mesh.AssetPath, ErrAlreadyPersisted)
	}

	saved, err := op.Store.Save(o.Mesh, op.Dir, o.Name+"_Mesh")
	if err != nil {
		return change{}, fmt.Errorf("%s: %w", o.Name, err)
	}
	return change{mesh: saved}, nil
}
