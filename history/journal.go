// Package history keeps undoable groups of editor mutations.
package history

import (
	"github.com/akmonengine/pivot/actor"
)

type entry struct {
	restore func()
}

// Group is one undo step
type Group struct {
	Label   string
	entries []entry
}

// Len returns the number of recorded entries
func (g *Group) Len() int {
	return len(g.entries)
}

// Journal records prior state before each mutation and restores whole groups
// on Undo. Records made outside Begin/End become single-entry groups.
type Journal struct {
	groups []*Group
	open   *Group
	depth  int
}

// Begin opens a group. Nested Begin calls join the outermost group.
func (j *Journal) Begin(label string) {
	if j.depth == 0 {
		j.open = &Group{Label: label}
	}
	j.depth++
}

// End closes the group opened by the matching Begin. Empty groups are dropped.
func (j *Journal) End() {
	if j.depth == 0 {
		return
	}
	j.depth--
	if j.depth > 0 {
		return
	}

	if j.open.Len() > 0 {
		j.groups = append(j.groups, j.open)
	}
	j.open = nil
}

// RecordTransform captures the object's local transform
func (j *Journal) RecordTransform(o *actor.Object) {
	t := o.Transform
	j.add(func() { o.Transform = t })
}

// RecordMesh captures the object's mesh reference
func (j *Journal) RecordMesh(o *actor.Object) {
	m := o.Mesh
	j.add(func() { o.Mesh = m })
}

// RecordCollider captures the collider's mesh reference
func (j *Journal) RecordCollider(c *actor.MeshCollider) {
	m := c.Mesh
	j.add(func() { c.Mesh = m })
}

func (j *Journal) add(restore func()) {
	if j.open == nil {
		j.groups = append(j.groups, &Group{entries: []entry{{restore: restore}}})
		return
	}
	j.open.entries = append(j.open.entries, entry{restore: restore})
}

// Len returns the number of undo steps available
func (j *Journal) Len() int {
	return len(j.groups)
}

// Peek returns the label of the next undo step
func (j *Journal) Peek() (string, bool) {
	if len(j.groups) == 0 {
		return "", false
	}
	return j.groups[len(j.groups)-1].Label, true
}

// Undo reverts the most recent group, restoring entries in reverse order so
// the earliest capture of any field wins. It returns the group's label.
func (j *Journal) Undo() (string, bool) {
	if len(j.groups) == 0 {
		return "", false
	}

	g := j.groups[len(j.groups)-1]
	j.groups = j.groups[:len(j.groups)-1]

	for i := len(g.entries) - 1; i >= 0; i-- {
		g.entries[i].restore()
	}

	return g.Label, true
}

// Clear drops every recorded group
func (j *Journal) Clear() {
	j.groups = nil
}
