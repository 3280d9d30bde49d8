package task

import "math"

// TaskProgress returns the completion ratio of a task in [0, 1].
//
// A Done task counts as 1 whatever its children say. A task without children
// counts as 0. Otherwise the ratio is the mean of its children's ratios.
// Only children in the task's own project are considered. A task reached a
// second time along one path contributes 0, so malformed parent links cannot
// recurse forever. Unknown IDs yield 0.
func TaskProgress(data AppData, id string) float64 {
	children := childIndex(data.Tasks)
	byID := make(map[string]int, len(data.Tasks))
	for i := range data.Tasks {
		if _, ok := byID[data.Tasks[i].ID]; !ok {
			byID[data.Tasks[i].ID] = i
		}
	}
	idx, ok := byID[id]
	if !ok {
		return 0
	}
	return taskProgress(data.Tasks, children, idx, make(map[string]bool))
}

// ProjectProgress returns the mean progress of a project's root tasks as a
// whole percentage. A project without root tasks is at 0.
func ProjectProgress(data AppData, projectID string) int {
	children := childIndex(data.Tasks)
	total := 0.0
	count := 0
	for i := range data.Tasks {
		t := data.Tasks[i]
		if t.ProjectID != projectID || !t.IsRoot() {
			continue
		}
		total += taskProgress(data.Tasks, children, i, make(map[string]bool))
		count++
	}
	if count == 0 {
		return 0
	}
	return int(math.Round(total / float64(count) * 100))
}

func taskProgress(tasks []Task, children map[string][]int, idx int, path map[string]bool) float64 {
	t := tasks[idx]
	if path[t.ID] {
		return 0
	}
	if t.Status == StatusDone {
		return 1
	}

	var kids []int
	for _, c := range children[t.ID] {
		if tasks[c].ProjectID == t.ProjectID {
			kids = append(kids, c)
		}
	}
	if len(kids) == 0 {
		return 0
	}

	path[t.ID] = true
	defer delete(path, t.ID)

	sum := 0.0
	for _, c := range kids {
		sum += taskProgress(tasks, children, c, path)
	}
	return sum / float64(len(kids))
}

// childIndex maps parent IDs to indexes of their direct children.
func childIndex(tasks []Task) map[string][]int {
	children := make(map[string][]int)
	for i := range tasks {
		if parentID, ok := tasks[i].Parent(); ok {
			children[parentID] = append(children[parentID], i)
		}
	}
	return children
}
