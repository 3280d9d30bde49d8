package task

import (
	"testing"
	"time"
)

var testNow = time.Date(2025, 1, 2, 9, 30, 0, 0, time.UTC)

func newTestTask(id, projectID string, parentID *string, sortOrder int) Task {
	return Task{
		ID:        id,
		Content:   "task " + id,
		ProjectID: projectID,
		ParentID:  parentID,
		Status:    StatusTodo,
		Priority:  PriorityMedium,
		Tags:      []string{},
		CreatedAt: testNow,
		SortOrder: sortOrder,
	}
}

func parentRef(id string) *string {
	return &id
}

func mustFindTask(t *testing.T, data AppData, id string) Task {
	t.Helper()
	found, ok := FindTask(data, id)
	if !ok {
		t.Fatalf("task %s not found", id)
	}
	return found
}

func taskIDs(tasks []Task) []string {
	out := make([]string, len(tasks))
	for i, task := range tasks {
		out[i] = task.ID
	}
	return out
}

func projectIDs(projects []Project) []string {
	out := make([]string, len(projects))
	for i, p := range projects {
		out[i] = p.ID
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
