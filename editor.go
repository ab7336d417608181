package pivot

import (
	"github.com/akmonengine/pivot/actor"
)

// Editor runs operations over batches of objects. Each object is its own
// success or failure domain; the whole batch forms one history entry.
// An Editor is not safe for concurrent use.
type Editor struct {
	// History is notified before every mutation; nil disables recording
	History Recorder
	// Diagnostics receives success, skip and abort notices; nil discards them
	Diagnostics Diagnostics
}

// NewEditor creates an editor that logs its diagnostics and records no history
func NewEditor() *Editor {
	return &Editor{
		Diagnostics: LogDiagnostics{},
	}
}

// Skip describes an object left untouched by a batch
type Skip struct {
	Object *actor.Object
	Err    error
}

// Report summarizes one Apply call
type Report struct {
	Operation string
	Succeeded []*actor.Object
	Skipped   []Skip
}

// ResolveTargets picks the explicit object when there is one, else the selection
func ResolveTargets(explicit *actor.Object, selection []*actor.Object) []*actor.Object {
	if explicit != nil {
		return []*actor.Object{explicit}
	}
	return selection
}

// Apply runs op over targets in order. Nil and repeated targets are dropped.
// ErrNoTargets and ErrPersistenceLocation abort before anything is mutated;
// every other failure skips its object and the batch carries on.
func (e *Editor) Apply(targets []*actor.Object, op Operation) (Report, error) {
	report := Report{Operation: op.Name()}

	targets = uniqueTargets(targets)
	if len(targets) == 0 {
		return report, e.abort(op, ErrNoTargets)
	}
	if err := op.prepare(); err != nil {
		return report, e.abort(op, err)
	}

	rec := e.recorder()
	rec.Begin(op.Name())
	defer rec.End()

	for _, o := range targets {
		c, err := op.compute(o)
		if err != nil {
			report.Skipped = append(report.Skipped, Skip{Object: o, Err: err})
			e.notify(SkipEvent{Operation: op.Name(), Object: o, Err: err})
			continue
		}

		updated := e.commit(o, c, rec)
		report.Succeeded = append(report.Succeeded, o)
		e.notify(SuccessEvent{Operation: op.Name(), Object: o, Mesh: c.mesh, CollidersUpdated: updated})
	}

	return report, nil
}

// commit installs the new mesh, applies the transform update and repoints the
// colliders that shared the old mesh.
func (e *Editor) commit(o *actor.Object, c change, rec Recorder) int {
	if c.update != nil {
		rec.RecordTransform(o)
	}
	rec.RecordMesh(o)

	original := o.Mesh
	o.Mesh = c.mesh

	if c.update != nil {
		o.Transform.SetWorldRotation(c.update.WorldRotation)
		o.Transform.SetWorldPosition(c.update.WorldPosition)
		o.Transform.Scale = c.update.LocalScale
	}

	return UpdateColliders(o, original, c.mesh, rec)
}

func (e *Editor) abort(op Operation, err error) error {
	e.notify(AbortEvent{Operation: op.Name(), Err: err})
	return err
}

func (e *Editor) notify(event Event) {
	if e.Diagnostics != nil {
		e.Diagnostics.Notify(event)
	}
}

func (e *Editor) recorder() Recorder {
	if e.History == nil {
		return nopRecorder{}
	}
	return e.History
}

func uniqueTargets(targets []*actor.Object) []*actor.Object {
	seen := make(map[*actor.Object]struct{}, len(targets))
	out := make([]*actor.Object, 0, len(targets))
	for _, o := range targets {
		if o == nil {
			continue
		}
		if _, ok := seen[o]; ok {
			continue
		}
		seen[o] = struct{}{}
		out = append(out, o)
	}

	return out
}
