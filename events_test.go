package pivot

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/akmonengine/pivot/actor"
	"github.com/akmonengine/pivot/core"
)

// =============================================================================
// Event Type Tests
// =============================================================================

func TestEventType_String(t *testing.T) {
	tests := []struct {
		eventType EventType
		expected  string
	}{
		{SUCCESS, "success"},
		{SKIP, "skip"},
		{ABORT, "abort"},
		{EventType(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.eventType.String(); got != tt.expected {
				t.Errorf("String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestEvents_Type(t *testing.T) {
	events := []struct {
		event    Event
		expected EventType
	}{
		{SuccessEvent{}, SUCCESS},
		{SkipEvent{}, SKIP},
		{AbortEvent{}, ABORT},
	}

	for _, e := range events {
		if got := e.event.Type(); got != e.expected {
			t.Errorf("Type() = %v, want %v", got, e.expected)
		}
	}
}

// =============================================================================
// Buffer Tests
// =============================================================================

func TestEvents_Buffer(t *testing.T) {
	events := &Events{}
	o := actor.NewObject("o")

	events.Notify(SuccessEvent{Operation: "Apply Scale", Object: o})
	events.Notify(SkipEvent{Operation: "Apply Scale", Object: o, Err: ErrNoMesh})
	events.Notify(SuccessEvent{Operation: "Apply Scale", Object: o})

	if len(events.All()) != 3 {
		t.Fatalf("All() has %d events, want 3", len(events.All()))
	}
	if got := len(events.OfType(SUCCESS)); got != 2 {
		t.Errorf("OfType(SUCCESS) = %d, want 2", got)
	}
	if got := len(events.OfType(ABORT)); got != 0 {
		t.Errorf("OfType(ABORT) = %d, want 0", got)
	}

	previous := events.All()
	events.Flush()
	if len(events.All()) != 0 {
		t.Errorf("All() after Flush = %d events", len(events.All()))
	}

	events.Notify(AbortEvent{Err: ErrNoTargets})
	if len(events.All()) != 1 {
		t.Errorf("buffer unusable after Flush")
	}
	if previous[0].Type() != SUCCESS {
		t.Errorf("events read before Flush were overwritten: %v", previous[0].Type())
	}
}

// =============================================================================
// Log Diagnostics Tests
// =============================================================================

func TestLogDiagnostics(t *testing.T) {
	var buf bytes.Buffer
	core.SetOutput(&buf)
	defer core.SetOutput(os.Stderr)

	o := actor.NewObject("crate")
	mesh := actor.NewMesh("crate_pivoted", nil, nil, nil)

	diagnostics := LogDiagnostics{}
	diagnostics.Notify(SuccessEvent{Operation: "Move Pivot", Object: o, Mesh: mesh, CollidersUpdated: 2})
	diagnostics.Notify(SkipEvent{Operation: "Move Pivot", Object: o, Err: errors.New("crate: no mesh")})
	diagnostics.Notify(AbortEvent{Operation: "Save Mesh", Err: ErrPersistenceLocation})

	out := buf.String()
	for _, want := range []string{"object updated", "crate_pivoted", "object skipped", "operation aborted", "Save Mesh"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}
