package task

import (
	"errors"
	"sort"
	"testing"
)

func orderFixture() AppData {
	data := Empty()
	data.Projects = []Project{
		{ID: "p1", Name: "Inbox", SortOrder: 0},
		{ID: "p2", Name: "Work", SortOrder: 1},
		{ID: "old", Name: "Old", SortOrder: 7, IsArchived: true},
		{ID: "p3", Name: "Home", SortOrder: 2},
	}
	data.Tasks = []Task{
		newTestTask("a", "p1", nil, 0),
		newTestTask("b", "p1", nil, 1),
		newTestTask("c", "p1", nil, 2),
		newTestTask("a1", "p1", parentRef("a"), 0),
		newTestTask("a2", "p1", parentRef("a"), 1),
		newTestTask("x", "p2", nil, 0),
	}
	return data
}

func TestReorderTasksMovesWithinGroup(t *testing.T) {
	data := orderFixture()

	got, changed := Reorder(data, ReorderRequest{Kind: ReorderTask, MovedID: "a", SourceIndex: 0, DestinationIndex: 2})
	if !changed {
		t.Fatal("expected reorder to change the snapshot")
	}

	if ids := taskIDs(RootTasks(got, "p1")); !equalStrings(ids, []string{"b", "c", "a"}) {
		t.Fatalf("expected order [b c a], got %v", ids)
	}
	for i, task := range RootTasks(got, "p1") {
		if task.SortOrder != i {
			t.Fatalf("expected %s sortOrder %d, got %d", task.ID, i, task.SortOrder)
		}
	}
	if mustFindTask(t, got, "a1").SortOrder != 0 || mustFindTask(t, got, "x").SortOrder != 0 {
		t.Fatal("expected tasks outside the sibling group to be untouched")
	}
	if mustFindTask(t, data, "a").SortOrder != 0 {
		t.Fatal("expected input snapshot to be left unmodified")
	}
}

func TestReorderTasksSubtaskGroup(t *testing.T) {
	data := orderFixture()

	got, changed := Reorder(data, ReorderRequest{Kind: ReorderTask, MovedID: "a2", SourceIndex: 1, DestinationIndex: 0, Group: "task:a"})
	if !changed {
		t.Fatal("expected reorder to change the snapshot")
	}
	if ids := taskIDs(Children(got, "a")); !equalStrings(ids, []string{"a2", "a1"}) {
		t.Fatalf("expected order [a2 a1], got %v", ids)
	}
	if ids := taskIDs(RootTasks(got, "p1")); !equalStrings(ids, []string{"a", "b", "c"}) {
		t.Fatalf("expected root order untouched, got %v", ids)
	}
}

func TestReorderDensifiesSparseGroup(t *testing.T) {
	data := Empty()
	data.Projects = []Project{{ID: "p1", Name: "Inbox"}}
	data.Tasks = []Task{
		newTestTask("a", "p1", nil, 10),
		newTestTask("b", "p1", nil, 5),
		newTestTask("c", "p1", nil, 5),
		newTestTask("d", "p1", nil, 40),
	}

	got, changed := Reorder(data, ReorderRequest{Kind: ReorderTask, MovedID: "d", SourceIndex: 3, DestinationIndex: 1})
	if !changed {
		t.Fatal("expected reorder to change the snapshot")
	}

	// Ties keep array order: b before c.
	if ids := taskIDs(RootTasks(got, "p1")); !equalStrings(ids, []string{"b", "d", "c", "a"}) {
		t.Fatalf("expected order [b d c a], got %v", ids)
	}

	var orders []int
	for _, task := range got.Tasks {
		orders = append(orders, task.SortOrder)
	}
	sort.Ints(orders)
	for i, order := range orders {
		if order != i {
			t.Fatalf("expected dense sortOrders 0..3, got %v", orders)
		}
	}
}

func TestReorderSameIndexIsNoOp(t *testing.T) {
	data := orderFixture()

	got, changed := Reorder(data, ReorderRequest{Kind: ReorderTask, MovedID: "b", SourceIndex: 1, DestinationIndex: 1})
	if changed {
		t.Fatal("expected no change")
	}
	if &got.Tasks[0] != &data.Tasks[0] {
		t.Fatal("expected the input snapshot back")
	}
}

func TestReorderProjectsSkipsArchived(t *testing.T) {
	data := orderFixture()

	got, changed := Reorder(data, ReorderRequest{Kind: ReorderProject, MovedID: "p3", SourceIndex: 2, DestinationIndex: 0, Group: ProjectsGroup})
	if !changed {
		t.Fatal("expected reorder to change the snapshot")
	}
	if ids := projectIDs(ActiveProjects(got)); !equalStrings(ids, []string{"p3", "p1", "p2"}) {
		t.Fatalf("expected order [p3 p1 p2], got %v", ids)
	}
	archived, _ := FindProject(got, "old")
	if archived.SortOrder != 7 {
		t.Fatalf("expected archived sortOrder 7 to be kept, got %d", archived.SortOrder)
	}
}

func TestReorderRejectsInvalidRequests(t *testing.T) {
	data := orderFixture()

	tests := []struct {
		name    string
		req     ReorderRequest
		wantErr error
	}{
		{"unknown task", ReorderRequest{Kind: ReorderTask, MovedID: "nope"}, ErrTaskNotFound},
		{"unknown project", ReorderRequest{Kind: ReorderProject, MovedID: "nope"}, ErrProjectNotFound},
		{"unknown kind", ReorderRequest{Kind: "tag", MovedID: "a"}, ErrUnknownReorderKind},
		{"negative source", ReorderRequest{Kind: ReorderTask, MovedID: "a", SourceIndex: -1}, ErrIndexOutOfRange},
		{"destination past end", ReorderRequest{Kind: ReorderTask, MovedID: "a", DestinationIndex: 3}, ErrIndexOutOfRange},
		{"source holds other task", ReorderRequest{Kind: ReorderTask, MovedID: "a", SourceIndex: 1, DestinationIndex: 2}, ErrSourceMismatch},
		{"cross group task", ReorderRequest{Kind: ReorderTask, MovedID: "a", DestinationIndex: 1, Group: "project:p2"}, ErrCrossGroupMove},
		{"archived project", ReorderRequest{Kind: ReorderProject, MovedID: "old", SourceIndex: 0, DestinationIndex: 1}, ErrSourceMismatch},
		{"cross group project", ReorderRequest{Kind: ReorderProject, MovedID: "p1", DestinationIndex: 1, Group: "project:p1"}, ErrCrossGroupMove},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := CheckReorder(data, tt.req); !errors.Is(err, tt.wantErr) {
				t.Fatalf("CheckReorder = %v, want %v", err, tt.wantErr)
			}
			got, changed := Reorder(data, tt.req)
			if changed {
				t.Fatal("expected invalid request to be a no-op")
			}
			if len(got.Tasks) != len(data.Tasks) || &got.Tasks[0] != &data.Tasks[0] {
				t.Fatal("expected the input snapshot back")
			}
		})
	}
}

func TestGroupOf(t *testing.T) {
	if got := GroupOf(newTestTask("a", "p1", nil, 0)); got != "project:p1" {
		t.Fatalf("expected project:p1, got %q", got)
	}
	if got := GroupOf(newTestTask("a1", "p1", parentRef("a"), 0)); got != "task:a" {
		t.Fatalf("expected task:a, got %q", got)
	}
}
