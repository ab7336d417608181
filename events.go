package pivot

import (
	"github.com/akmonengine/pivot/actor"
	"github.com/akmonengine/pivot/core"
)

const (
	SUCCESS EventType = iota
	SKIP
	ABORT
)

type EventType uint8

func (t EventType) String() string {
	switch t {
	case SUCCESS:
		return "success"
	case SKIP:
		return "skip"
	case ABORT:
		return "abort"
	default:
		return "unknown"
	}
}

// Event interface - all events implement this
type Event interface {
	Type() EventType
}

// SuccessEvent is emitted once an object has been committed
type SuccessEvent struct {
	Operation        string
	Object           *actor.Object
	Mesh             *actor.Mesh
	CollidersUpdated int
}

func (e SuccessEvent) Type() EventType { return SUCCESS }

// SkipEvent is emitted when one object of a batch is left untouched
type SkipEvent struct {
	Operation string
	Object    *actor.Object
	Err       error
}

func (e SkipEvent) Type() EventType { return SKIP }

// AbortEvent is emitted when a whole invocation stops before mutating anything
type AbortEvent struct {
	Operation string
	Err       error
}

func (e AbortEvent) Type() EventType { return ABORT }

// Diagnostics receives informational notices. It never influences control flow.
type Diagnostics interface {
	Notify(event Event)
}

// LogDiagnostics writes every event through the structured logger
type LogDiagnostics struct{}

func (LogDiagnostics) Notify(event Event) {
	switch e := event.(type) {
	case SuccessEvent:
		core.With("op", e.Operation, "object", e.Object.Name, "mesh", e.Mesh.Name, "colliders", e.CollidersUpdated).
			Info("object updated")
	case SkipEvent:
		core.With("op", e.Operation, "object", e.Object.Name).Warn("object skipped", "err", e.Err)
	case AbortEvent:
		core.With("op", e.Operation).Error("operation aborted", "err", e.Err)
	}
}

// Events buffers notices in order; useful to inspect a batch after the fact
type Events struct {
	events []Event
}

func (e *Events) Notify(event Event) {
	e.events = append(e.events, event)
}

// All returns the buffered events
func (e *Events) All() []Event {
	return e.events
}

// OfType returns the buffered events of the given type
func (e *Events) OfType(t EventType) []Event {
	var out []Event
	for _, ev := range e.events {
		if ev.Type() == t {
			out = append(out, ev)
		}
	}
	return out
}

// Flush clears the buffer. Slices returned earlier by All are left intact.
func (e *Events) Flush() {
	e.events = nil
}
