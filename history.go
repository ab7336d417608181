package pivot

import "github.com/akmonengine/pivot/actor"

// Recorder captures state before the editor mutates it so a batch can be undone
// as one step. Record calls always precede the mutation they describe.
type Recorder interface {
	Begin(label string)
	RecordTransform(o *actor.Object)
	RecordMesh(o *actor.Object)
	RecordCollider(c *actor.MeshCollider)
	End()
}

type nopRecorder struct{}

func (nopRecorder) Begin(string)                       {}
func (nopRecorder) RecordTransform(*actor.Object)      {}
func (nopRecorder) RecordMesh(*actor.Object)           {}
func (nopRecorder) RecordCollider(*actor.MeshCollider) {}
func (nopRecorder) End()                               {}
