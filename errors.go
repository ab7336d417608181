package pivot

import "errors"

var (
	// ErrNoMesh is returned when the object has no mesh to operate on.
	ErrNoMesh = errors.New("no mesh")
	// ErrInvalidMesh is returned when per-vertex attributes or triangle indices do not match the vertices.
	ErrInvalidMesh = errors.New("invalid mesh")
	// ErrInvalidTarget is returned when a pivot frame is sourced from the object being re-pivoted
	// or is not made of finite numbers.
	ErrInvalidTarget = errors.New("invalid pivot target")
	// ErrNoTargets aborts an invocation whose target set is empty.
	ErrNoTargets = errors.New("no targets")
	// ErrPersistenceLocation aborts a save whose destination is outside the store root.
	ErrPersistenceLocation = errors.New("invalid persistence location")
	// ErrDegenerateTransform is returned when the world scale has a zero axis and the frame cannot be inverted.
	ErrDegenerateTransform = errors.New("degenerate transform")
	// ErrAlreadyPersisted is returned when saving a mesh that already lives in the store.
	ErrAlreadyPersisted = errors.New("mesh already persisted")
)
