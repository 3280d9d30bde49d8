package task

import (
	"errors"
	"fmt"
	"sort"

	"github.com/amonks/todoapp/internal/validation"
)

var (
	// ErrUnknownReorderKind is returned for a reorder kind other than project or task.
	ErrUnknownReorderKind = errors.New("unknown reorder kind")

	// ErrIndexOutOfRange is returned when a reorder index falls outside its group.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrSourceMismatch is returned when the source index does not hold the moved item.
	ErrSourceMismatch = errors.New("source index does not hold the moved item")

	// ErrCrossGroupMove is returned when a drag targets a different sibling group.
	ErrCrossGroupMove = errors.New("moves between sibling groups are not supported")
)

// ReorderKind selects what a reorder request moves.
type ReorderKind string

const (
	ReorderProject ReorderKind = "project"
	ReorderTask    ReorderKind = "task"
)

// IsValid reports whether k is a known kind.
func (k ReorderKind) IsValid() bool {
	return k == ReorderProject || k == ReorderTask
}

// ProjectsGroup identifies the list of active projects.
const ProjectsGroup = "projects"

// ReorderRequest is the result of a drag gesture.
type ReorderRequest struct {
	Kind    ReorderKind
	MovedID string

	// SourceIndex and DestinationIndex are positions in the sibling group's
	// display order.
	SourceIndex      int
	DestinationIndex int

	// Group optionally names the droppable the item was dropped on. When set
	// it must equal the moved item's own group (see GroupOf); otherwise the
	// request is rejected as a cross-group move.
	Group string
}

// GroupOf returns the identifier of the sibling group a task belongs to:
// "task:<parentId>" for subtasks and "project:<projectId>" for root tasks.
func GroupOf(t Task) string {
	if parentID, ok := t.Parent(); ok {
		return "task:" + parentID
	}
	return "project:" + t.ProjectID
}

// Reorder applies req to data. Invalid requests are no-ops: the input is
// returned with changed == false. Use CheckReorder to learn why.
func Reorder(data AppData, req ReorderRequest) (AppData, bool) {
	switch req.Kind {
	case ReorderProject:
		return reorderProjects(data, req)
	case ReorderTask:
		return reorderTasks(data, req)
	default:
		return data, false
	}
}

// CheckReorder reports why req would be ignored by Reorder, or nil if it
// would be applied.
func CheckReorder(data AppData, req ReorderRequest) error {
	var group []int
	var moved string
	switch req.Kind {
	case ReorderProject:
		if indexOfProject(data.Projects, req.MovedID) < 0 {
			return fmt.Errorf("%w: %s", ErrProjectNotFound, req.MovedID)
		}
		if req.Group != "" && req.Group != ProjectsGroup {
			return fmt.Errorf("%w: %s", ErrCrossGroupMove, req.Group)
		}
		group = projectGroup(data.Projects)
		moved = req.MovedID
		if req.SourceIndex >= 0 && req.SourceIndex < len(group) {
			moved = data.Projects[group[req.SourceIndex]].ID
		}
	case ReorderTask:
		idx := indexOfTask(data.Tasks, req.MovedID)
		if idx < 0 {
			return fmt.Errorf("%w: %s", ErrTaskNotFound, req.MovedID)
		}
		own := GroupOf(data.Tasks[idx])
		if req.Group != "" && req.Group != own {
			return fmt.Errorf("%w: %s to %s", ErrCrossGroupMove, own, req.Group)
		}
		group = siblingGroup(data.Tasks, data.Tasks[idx])
		moved = req.MovedID
		if req.SourceIndex >= 0 && req.SourceIndex < len(group) {
			moved = data.Tasks[group[req.SourceIndex]].ID
		}
	default:
		return validation.FormatInvalidValueError(ErrUnknownReorderKind, req.Kind, []ReorderKind{ReorderProject, ReorderTask})
	}

	n := len(group)
	if req.SourceIndex < 0 || req.SourceIndex >= n {
		return fmt.Errorf("%w: source %d not in [0, %d)", ErrIndexOutOfRange, req.SourceIndex, n)
	}
	if req.DestinationIndex < 0 || req.DestinationIndex >= n {
		return fmt.Errorf("%w: destination %d not in [0, %d)", ErrIndexOutOfRange, req.DestinationIndex, n)
	}
	if moved != req.MovedID {
		return fmt.Errorf("%w: index %d holds %s", ErrSourceMismatch, req.SourceIndex, moved)
	}
	return nil
}

func reorderProjects(data AppData, req ReorderRequest) (AppData, bool) {
	if CheckReorder(data, req) != nil {
		return data, false
	}

	order := move(projectGroup(data.Projects), req.SourceIndex, req.DestinationIndex)
	if !needsRenumber(order, func(i int) int { return data.Projects[i].SortOrder }) {
		return data, false
	}

	projects := append([]Project(nil), data.Projects...)
	for pos, i := range order {
		projects[i].SortOrder = pos
	}
	data.Projects = projects
	return data, true
}

func reorderTasks(data AppData, req ReorderRequest) (AppData, bool) {
	if CheckReorder(data, req) != nil {
		return data, false
	}

	idx := indexOfTask(data.Tasks, req.MovedID)
	order := move(siblingGroup(data.Tasks, data.Tasks[idx]), req.SourceIndex, req.DestinationIndex)
	if !needsRenumber(order, func(i int) int { return data.Tasks[i].SortOrder }) {
		return data, false
	}

	tasks := append([]Task(nil), data.Tasks...)
	for pos, i := range order {
		tasks[i].SortOrder = pos
	}
	data.Tasks = tasks
	return data, true
}

// projectGroup returns indexes into projects of the non-archived projects in
// display order.
func projectGroup(projects []Project) []int {
	group := make([]int, 0, len(projects))
	for i, p := range projects {
		if !p.IsArchived {
			group = append(group, i)
		}
	}
	sort.SliceStable(group, func(a, b int) bool {
		return projects[group[a]].SortOrder < projects[group[b]].SortOrder
	})
	return group
}

// siblingGroup returns indexes into tasks of t's siblings (t included) in
// display order.
func siblingGroup(tasks []Task, t Task) []int {
	key := GroupOf(t)
	group := make([]int, 0)
	for i, other := range tasks {
		if GroupOf(other) == key {
			group = append(group, i)
		}
	}
	sort.SliceStable(group, func(a, b int) bool {
		return tasks[group[a]].SortOrder < tasks[group[b]].SortOrder
	})
	return group
}

// move returns a copy of order with the element at from spliced to to.
func move(order []int, from, to int) []int {
	out := make([]int, 0, len(order))
	out = append(out, order[:from]...)
	out = append(out, order[from+1:]...)
	moved := order[from]
	out = append(out, 0)
	copy(out[to+1:], out[to:])
	out[to] = moved
	return out
}

func needsRenumber(order []int, sortOrder func(int) int) bool {
	for pos, i := range order {
		if sortOrder(i) != pos {
			return true
		}
	}
	return false
}

func indexOfTask(tasks []Task, id string) int {
	for i := range tasks {
		if tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func indexOfProject(projects []Project, id string) int {
	for i := range projects {
		if projects[i].ID == id {
			return i
		}
	}
	return -1
}

func indexOfTag(tags []Tag, id string) int {
	for i := range tags {
		if tags[i].ID == id {
			return i
		}
	}
	return -1
}
