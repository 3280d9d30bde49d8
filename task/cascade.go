package task

import (
	"errors"
	"fmt"
	"strings"

	"github.com/amonks/todoapp/internal/validation"
)

// ErrInvalidCascadeMode is returned for an unknown cascade mode.
var ErrInvalidCascadeMode = errors.New("invalid cascade mode")

// CascadeMode controls how far deleting a task reaches.
type CascadeMode string

const (
	// CascadeDirect deletes the task and its direct children. Grandchildren
	// stay behind with a parent ID that no longer resolves.
	CascadeDirect CascadeMode = "direct"

	// CascadeSubtree deletes the task and every descendant.
	CascadeSubtree CascadeMode = "subtree"
)

// IsValid reports whether m is a known mode.
func (m CascadeMode) IsValid() bool {
	return m == CascadeDirect || m == CascadeSubtree
}

// ParseCascadeMode parses a cascade mode. The empty string means CascadeDirect.
func ParseCascadeMode(value string) (CascadeMode, error) {
	mode := CascadeMode(strings.ToLower(strings.TrimSpace(value)))
	if mode == "" {
		return CascadeDirect, nil
	}
	if !mode.IsValid() {
		return "", validation.FormatInvalidValueError(ErrInvalidCascadeMode, value, []string{string(CascadeDirect), string(CascadeSubtree)})
	}
	return mode, nil
}

// DeleteTask removes the task with the given ID along with the children
// selected by mode.
func DeleteTask(data AppData, id string, mode CascadeMode) (AppData, error) {
	if indexOfTask(data.Tasks, id) < 0 {
		return data, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	if !mode.IsValid() {
		return data, validation.FormatInvalidValueError(ErrInvalidCascadeMode, mode, []CascadeMode{CascadeDirect, CascadeSubtree})
	}

	doomed := map[string]bool{id: true}
	switch mode {
	case CascadeDirect:
		for _, t := range data.Tasks {
			if parentID, ok := t.Parent(); ok && parentID == id {
				doomed[t.ID] = true
			}
		}
	case CascadeSubtree:
		children := childIndex(data.Tasks)
		queue := []string{id}
		for len(queue) > 0 {
			current := queue[0]
			queue = queue[1:]
			for _, c := range children[current] {
				childID := data.Tasks[c].ID
				if doomed[childID] {
					continue
				}
				doomed[childID] = true
				queue = append(queue, childID)
			}
		}
	}

	tasks := make([]Task, 0, len(data.Tasks))
	for _, t := range data.Tasks {
		if !doomed[t.ID] {
			tasks = append(tasks, t)
		}
	}
	data.Tasks = tasks
	return data, nil
}

// DeleteProject removes a project and every task it owns, at any depth.
func DeleteProject(data AppData, id string) (AppData, error) {
	idx := indexOfProject(data.Projects, id)
	if idx < 0 {
		return data, fmt.Errorf("%w: %s", ErrProjectNotFound, id)
	}

	projects := make([]Project, 0, len(data.Projects)-1)
	projects = append(projects, data.Projects[:idx]...)
	projects = append(projects, data.Projects[idx+1:]...)

	tasks := make([]Task, 0, len(data.Tasks))
	for _, t := range data.Tasks {
		if t.ProjectID != id {
			tasks = append(tasks, t)
		}
	}

	data.Projects = projects
	data.Tasks = tasks
	return data, nil
}

// DeleteTag removes a tag and strips its ID from every task. The tasks
// themselves are kept.
func DeleteTag(data AppData, id string) (AppData, error) {
	idx := indexOfTag(data.Tags, id)
	if idx < 0 {
		return data, fmt.Errorf("%w: %s", ErrTagNotFound, id)
	}

	tags := make([]Tag, 0, len(data.Tags)-1)
	tags = append(tags, data.Tags[:idx]...)
	tags = append(tags, data.Tags[idx+1:]...)

	tasks := append([]Task(nil), data.Tasks...)
	for i := range tasks {
		if !tasks[i].HasTag(id) {
			continue
		}
		kept := make([]string, 0, len(tasks[i].Tags)-1)
		for _, tagID := range tasks[i].Tags {
			if tagID != id {
				kept = append(kept, tagID)
			}
		}
		tasks[i].Tags = kept
	}

	data.Tags = tags
	data.Tasks = tasks
	return data, nil
}
