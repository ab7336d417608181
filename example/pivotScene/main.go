package main

import (
	"fmt"
	"math"

	"github.com/akmonengine/pivot"
	"github.com/akmonengine/pivot/actor"
	"github.com/akmonengine/pivot/history"
	"github.com/go-gl/mathgl/mgl64"
)

// SetupScene creates a scaled, rotated crate under a parent, sharing its mesh
// with a mesh collider, plus a handle object to use as pivot target
func SetupScene() (root, crate, handle *actor.Object) {
	root = actor.NewObject("Root")
	root.Transform.Position = mgl64.Vec3{0, 1, 0}
	root.Transform.Scale = mgl64.Vec3{2, 2, 2}

	mesh := actor.NewBoxMesh("Crate", mgl64.Vec3{0.5, 0.5, 0.5}, mgl64.Vec3{0.5, 0.5, 0.5})

	crate = actor.NewObject("Crate")
	crate.Transform.Position = mgl64.Vec3{3, 0, -2}
	crate.Transform.Rotation = mgl64.QuatRotate(mgl64.DegToRad(30), mgl64.Vec3{0, 1, 0})
	crate.Transform.Scale = mgl64.Vec3{1, 0.5, 2}
	crate.Mesh = mesh
	crate.AddCollider(&actor.MeshCollider{Mesh: mesh})
	crate.AddCollider(&actor.BoxCollider{Center: mgl64.Vec3{0.5, 0.5, 0.5}, HalfExtents: mgl64.Vec3{0.5, 0.5, 0.5}})
	root.AddChild(crate)

	handle = actor.NewObject("Handle")
	handle.Transform.Position = mgl64.Vec3{4, 2, -1}
	handle.Transform.Rotation = mgl64.QuatRotate(mgl64.DegToRad(90), mgl64.Vec3{0, 0, 1})

	return root, crate, handle
}

func worldVertices(o *actor.Object) []mgl64.Vec3 {
	out := make([]mgl64.Vec3, len(o.Mesh.Vertices))
	for i, v := range o.Mesh.Vertices {
		out[i] = o.Transform.TransformPoint(v)
	}
	return out
}

func printState(label string, o *actor.Object) {
	bounds, _ := o.WorldBounds()
	fmt.Printf("%s\n", label)
	fmt.Printf("  Pivot (world): %v\n", o.Transform.WorldPosition())
	fmt.Printf("  Rotation:      %v\n", o.Transform.WorldRotation())
	fmt.Printf("  Local scale:   %v\n", o.Transform.Scale)
	fmt.Printf("  Mesh:          %s (%d vertices)\n", o.Mesh.Name, len(o.Mesh.Vertices))
	fmt.Printf("  World bounds:  min=%v max=%v\n", bounds.Min, bounds.Max)
	for _, c := range o.Colliders {
		aabb := c.ComputeAABB(&o.Transform)
		fmt.Printf("  %-6s collider bounds: min=%v max=%v\n", c.Type(), aabb.Min, aabb.Max)
	}
}

func main() {
	_, crate, handle := SetupScene()

	journal := &history.Journal{}
	events := &pivot.Events{}
	editor := &pivot.Editor{History: journal, Diagnostics: events}

	printState("Initial", crate)
	before := worldVertices(crate)
	bounds, _ := crate.WorldBounds()

	steps := []pivot.Operation{
		pivot.MovePivotByBounds{X: 0, Y: -50, Z: 0},
		pivot.MovePivotToFrame{Source: handle},
		pivot.ResetRotation{},
		pivot.ApplyScale{},
	}

	successes, skips := 0, 0
	for _, op := range steps {
		report, err := editor.Apply([]*actor.Object{crate}, op)
		if err != nil {
			fmt.Printf("%s aborted: %v\n", op.Name(), err)
			continue
		}
		printState(fmt.Sprintf("After %s (%d skipped)", report.Operation, len(report.Skipped)), crate)

		drift := 0.0
		for i, v := range worldVertices(crate) {
			drift = math.Max(drift, v.Sub(before[i]).Len())
		}
		fmt.Printf("  Max vertex drift: %.3g\n", drift)
		fmt.Printf("  Pivot inside original bounds: %v\n", bounds.ContainsPoint(crate.Transform.WorldPosition()))

		for _, e := range events.OfType(pivot.SUCCESS) {
			fmt.Printf("  Colliders repointed: %d\n", e.(pivot.SuccessEvent).CollidersUpdated)
		}
		successes += len(events.OfType(pivot.SUCCESS))
		skips += len(events.OfType(pivot.SKIP))
		events.Flush()
	}

	for journal.Len() > 0 {
		label, _ := journal.Undo()
		fmt.Printf("Undo %s\n", label)
	}
	printState("After undo", crate)

	fmt.Printf("%d success notices, %d skip notices\n", successes, skips)
}
