package pivot

import (
	"errors"
	"math"
	"testing"

	"github.com/akmonengine/pivot/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// Helper functions
func vec3Equal(a, b mgl64.Vec3, tolerance float64) bool {
	return math.Abs(a.X()-b.X()) < tolerance &&
		math.Abs(a.Y()-b.Y()) < tolerance &&
		math.Abs(a.Z()-b.Z()) < tolerance
}

func floatEqual(a, b, tolerance float64) bool {
	return math.Abs(a-b) < tolerance
}

func quatEqual(a, b mgl64.Quat, tolerance float64) bool {
	same := math.Abs(a.W-b.W) < tolerance && vec3Equal(a.V, b.V, tolerance)
	opposite := math.Abs(a.W+b.W) < tolerance && vec3Equal(a.V, b.V.Mul(-1), tolerance)
	return same || opposite
}

func worldVertices(o *actor.Object) []mgl64.Vec3 {
	m := o.Transform.LocalToWorld()
	out := make([]mgl64.Vec3, len(o.Mesh.Vertices))
	for i, v := range o.Mesh.Vertices {
		out[i] = m.Mul4x1(v.Vec4(1)).Vec3()
	}
	return out
}

func worldNormals(o *actor.Object) []mgl64.Vec3 {
	m := o.Transform.LocalToWorld().Mat3().Inv().Transpose()
	out := make([]mgl64.Vec3, len(o.Mesh.Normals))
	for i, n := range o.Mesh.Normals {
		out[i] = actor.NormalizeOrZero(m.Mul3x1(n))
	}
	return out
}

func assertSameWorld(t *testing.T, want, got []mgl64.Vec3, what string) {
	t.Helper()
	if len(want) != len(got) {
		t.Fatalf("%s: got %d, want %d", what, len(got), len(want))
	}
	for i := range want {
		if !vec3Equal(want[i], got[i], 1e-9) {
			t.Errorf("%s %d moved: %v -> %v", what, i, want[i], got[i])
		}
	}
}

// apply commits a result the way the editor does
func apply(o *actor.Object, r Result) {
	o.Mesh = r.Mesh
	o.Transform.SetWorldRotation(r.Update.WorldRotation)
	o.Transform.SetWorldPosition(r.Update.WorldPosition)
	o.Transform.Scale = r.Update.LocalScale
}

func crate(name string) *actor.Object {
	o := actor.NewObject(name)
	o.Mesh = actor.NewBoxMesh(name+"_box", mgl64.Vec3{0, 1, 0}, mgl64.Vec3{1, 1, 0.5})
	return o
}

// =============================================================================
// Rebase Tests
// =============================================================================

func TestRebase_PreservesWorldAppearance(t *testing.T) {
	parent := actor.NewObject("parent")
	parent.Transform.Position = mgl64.Vec3{-3, 2, 0}
	parent.Transform.Rotation = mgl64.QuatRotate(0.8, mgl64.Vec3{0, 1, 0})
	parent.Transform.Scale = mgl64.Vec3{1.5, 1.5, 1.5}

	tests := []struct {
		name     string
		parent   *actor.Object
		position mgl64.Vec3
		rotation mgl64.Quat
		scale    mgl64.Vec3
		frame    Frame
	}{
		{
			name:     "Root, translation only",
			position: mgl64.Vec3{1, 2, 3},
			rotation: mgl64.QuatIdent(),
			scale:    mgl64.Vec3{1, 1, 1},
			frame:    Frame{Position: mgl64.Vec3{0, 0, 0}, Rotation: mgl64.QuatIdent()},
		},
		{
			name:     "Root, rotated non-uniform scale, new orientation",
			position: mgl64.Vec3{1, 2, 3},
			rotation: mgl64.QuatRotate(0.4, mgl64.Vec3{1, 0, 0}),
			scale:    mgl64.Vec3{2, 1, 0.5},
			frame:    Frame{Position: mgl64.Vec3{5, -1, 2}, Rotation: mgl64.QuatRotate(1.3, mgl64.Vec3{0, 0, 1})},
		},
		{
			name:     "Child of rotated uniformly scaled parent",
			parent:   parent,
			position: mgl64.Vec3{0, 1, 0},
			rotation: mgl64.QuatRotate(-0.5, mgl64.Vec3{1, 0, 1}.Normalize()),
			scale:    mgl64.Vec3{1, 2, 3},
			frame:    Frame{Position: mgl64.Vec3{2, 2, 2}, Rotation: mgl64.QuatRotate(2.1, mgl64.Vec3{0, 1, 1}.Normalize())},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := crate("crate")
			if tt.parent != nil {
				tt.parent.AddChild(o)
			}
			o.Transform.Position = tt.position
			o.Transform.Rotation = tt.rotation
			o.Transform.Scale = tt.scale

			beforeVertices := worldVertices(o)
			beforeNormals := worldNormals(o)

			r, err := Rebase(o, tt.frame)
			if err != nil {
				t.Fatalf("Rebase() error = %v", err)
			}
			apply(o, r)

			assertSameWorld(t, beforeVertices, worldVertices(o), "vertex")
			assertSameWorld(t, beforeNormals, worldNormals(o), "normal")

			if got := o.Transform.WorldPosition(); !vec3Equal(got, tt.frame.Position, 1e-9) {
				t.Errorf("WorldPosition() = %v, want %v", got, tt.frame.Position)
			}
			if got := o.Transform.WorldRotation(); !quatEqual(got, tt.frame.Rotation, 1e-9) {
				t.Errorf("WorldRotation() = %v, want %v", got, tt.frame.Rotation)
			}
			if o.Transform.Scale != tt.scale {
				t.Errorf("Scale = %v, want %v", o.Transform.Scale, tt.scale)
			}
		})
	}
}

func TestRebase_CopyOnTransform(t *testing.T) {
	o := crate("crate")
	original := o.Mesh
	firstVertex := original.Vertices[0]
	position := o.Transform.Position

	r, err := Rebase(o, Frame{Position: mgl64.Vec3{0, -5, 0}, Rotation: mgl64.QuatIdent()})
	if err != nil {
		t.Fatalf("Rebase() error = %v", err)
	}

	if r.Mesh == original {
		t.Fatal("Rebase() returned the source mesh")
	}
	if r.Mesh.ID == original.ID {
		t.Error("new mesh kept the source ID")
	}
	if r.Mesh.Name != "crate_box_pivoted" {
		t.Errorf("Name = %q, want crate_box_pivoted", r.Mesh.Name)
	}
	if o.Mesh != original || original.Vertices[0] != firstVertex || o.Transform.Position != position {
		t.Error("Rebase() mutated its input")
	}
	if len(r.Mesh.Tangents) != len(r.Mesh.Vertices) {
		t.Errorf("tangents not rebuilt: %d for %d vertices", len(r.Mesh.Tangents), len(r.Mesh.Vertices))
	}
}

func TestRebase_BoundsFollowPivot(t *testing.T) {
	o := crate("crate")
	o.Transform.Position = mgl64.Vec3{4, 0, 0}
	o.Transform.Rotation = mgl64.QuatRotate(math.Pi/3, mgl64.Vec3{0, 1, 0})

	frame, err := SolveFromBoundsOffset(o, 0, 50, 0)
	if err != nil {
		t.Fatalf("SolveFromBoundsOffset() error = %v", err)
	}
	r, err := Rebase(o, frame)
	if err != nil {
		t.Fatalf("Rebase() error = %v", err)
	}

	// pivot now sits at the top center of the box
	bounds := r.Mesh.Bounds()
	want := actor.AABB{Min: mgl64.Vec3{-1, -2, -0.5}, Max: mgl64.Vec3{1, 0, 0.5}}
	if !vec3Equal(bounds.Min, want.Min, 1e-9) || !vec3Equal(bounds.Max, want.Max, 1e-9) {
		t.Errorf("Bounds() = %v, want %v", bounds, want)
	}
}

func TestRebase_Errors(t *testing.T) {
	t.Run("No mesh", func(t *testing.T) {
		o := actor.NewObject("empty")
		_, err := Rebase(o, Frame{Rotation: mgl64.QuatIdent()})
		if !errors.Is(err, ErrNoMesh) {
			t.Errorf("Rebase() error = %v, want ErrNoMesh", err)
		}
	})

	t.Run("Index out of range", func(t *testing.T) {
		o := crate("broken")
		o.Mesh.Triangles[4] = uint32(len(o.Mesh.Vertices))
		_, err := Rebase(o, Frame{Rotation: mgl64.QuatIdent()})
		if !errors.Is(err, ErrInvalidMesh) {
			t.Errorf("Rebase() error = %v, want ErrInvalidMesh", err)
		}
	})

	t.Run("Non-finite frame", func(t *testing.T) {
		o := crate("crate")
		_, err := Rebase(o, Frame{Position: mgl64.Vec3{0, math.Inf(-1), 0}, Rotation: mgl64.QuatIdent()})
		if !errors.Is(err, ErrInvalidTarget) {
			t.Errorf("Rebase() error = %v, want ErrInvalidTarget", err)
		}
	})

	t.Run("Zero world scale", func(t *testing.T) {
		o := crate("flat")
		o.Transform.Scale = mgl64.Vec3{1, 0, 1}
		_, err := Rebase(o, Frame{Rotation: mgl64.QuatIdent()})
		if !errors.Is(err, ErrDegenerateTransform) {
			t.Errorf("Rebase() error = %v, want ErrDegenerateTransform", err)
		}
	})
}

func TestRebase_FlatMesh(t *testing.T) {
	// a quad has zero bounds height; any Y percentage lands on the plane
	o := actor.NewObject("quad")
	o.Mesh = actor.NewMesh("quad",
		[]mgl64.Vec3{{-1, 0, -1}, {1, 0, -1}, {1, 0, 1}, {-1, 0, 1}},
		[]mgl64.Vec3{{0, 1, 0}, {0, 1, 0}, {0, 1, 0}, {0, 1, 0}},
		[]uint32{0, 2, 1, 0, 3, 2},
	)
	o.Transform.Position = mgl64.Vec3{0, 3, 0}

	frame, err := SolveFromBoundsOffset(o, 100, 100, 0)
	if err != nil {
		t.Fatalf("SolveFromBoundsOffset() error = %v", err)
	}
	if want := (mgl64.Vec3{2, 3, 0}); !vec3Equal(frame.Position, want, 1e-12) {
		t.Errorf("frame position = %v, want %v", frame.Position, want)
	}

	before := worldVertices(o)
	r, err := Rebase(o, frame)
	if err != nil {
		t.Fatalf("Rebase() error = %v", err)
	}
	apply(o, r)
	assertSameWorld(t, before, worldVertices(o), "vertex")
}
