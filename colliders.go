package pivot

import "github.com/akmonengine/pivot/actor"

// UpdateColliders repoints every mesh collider under root (root included) that
// references original to replacement. Matching is by pointer identity: a
// collider holding a different mesh with equal geometry is left alone.
// It returns the number of colliders changed.
func UpdateColliders(root *actor.Object, original, replacement *actor.Mesh, rec Recorder) int {
	if original == nil || replacement == nil {
		return 0
	}
	if rec == nil {
		rec = nopRecorder{}
	}

	updated := 0
	for _, collider := range root.MeshColliders() {
		if collider.Mesh != original {
			continue
		}
		rec.RecordCollider(collider)
		collider.Mesh = replacement
		updated++
	}

	return updated
}
