// Package task implements the data engine of a personal task manager.
//
// The whole dataset lives in a single AppData snapshot: projects, a forest
// of tasks, tags and display settings. Snapshots are values. Every operation
// in this package takes a snapshot and returns a new one, copying the slices
// it changes and never writing through shared pointers, so an older snapshot
// stays valid after a newer one has been derived from it.
//
// The engines mirror what a front end needs:
//   - ApplyRecurrence resets completed habit tasks for a new day
//   - Reorder renumbers a sibling group after a drag-and-drop
//   - TaskProgress and ProjectProgress aggregate completion over the tree
//   - DeleteTask, DeleteProject and DeleteTag apply the deletion cascades
//
// Marshal and Unmarshal convert snapshots to and from their persisted JSON
// form.
package task
