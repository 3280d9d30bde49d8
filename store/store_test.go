package store

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/amonks/todoapp/internal/kv"
	"github.com/amonks/todoapp/internal/logging"
	"github.com/amonks/todoapp/task"
	"github.com/charmbracelet/log"
)

var errDiskFull = errors.New("disk full")

// flakyKV fails writes while failing is set and counts successful ones.
type flakyKV struct {
	*kv.Memory
	failing bool
	writes  int
}

func (f *flakyKV) Set(key, value string) error {
	if f.failing {
		return errDiskFull
	}
	f.writes++
	return f.Memory.Set(key, value)
}

func newFlaky() *flakyKV {
	return &flakyKV{Memory: kv.NewMemory()}
}

func fixedToday(date string) func() task.Date {
	d := task.MustParseDate(date)
	return func() task.Date { return d }
}

func testLogger(buf *bytes.Buffer) *log.Logger {
	opts := logging.DefaultOptions()
	opts.Level = log.DebugLevel
	return logging.New(buf, opts)
}

func TestOpenMissingKeyIsEmpty(t *testing.T) {
	s := Open(kv.NewMemory(), Options{Today: fixedToday("2025-01-02")})

	got := s.Snapshot()
	if len(got.Projects) != 0 || len(got.Tasks) != 0 || len(got.Tags) != 0 {
		t.Fatalf("expected empty snapshot, got %+v", got)
	}
	if got.Settings != task.DefaultSettings() {
		t.Fatalf("expected default settings, got %+v", got.Settings)
	}
}

func TestOpenCorruptDataFallsBackToEmpty(t *testing.T) {
	for name, raw := range map[string]string{
		"not json":     "{{{",
		"missing keys": `{"projects": []}`,
	} {
		t.Run(name, func(t *testing.T) {
			backend := kv.NewMemory()
			if err := backend.Set(DefaultKey, raw); err != nil {
				t.Fatalf("seed: %v", err)
			}
			var buf bytes.Buffer
			s := Open(backend, Options{Logger: testLogger(&buf), Today: fixedToday("2025-01-02")})

			if got := s.Snapshot(); len(got.Projects) != 0 {
				t.Fatalf("expected empty snapshot, got %+v", got)
			}
			if !strings.Contains(buf.String(), "unreadable") {
				t.Fatalf("expected a warning, got %q", buf.String())
			}
		})
	}
}

func TestUpdatePersistsAndReloads(t *testing.T) {
	backend := kv.NewMemory()
	s := Open(backend, Options{Today: fixedToday("2025-01-02")})

	var project task.Project
	_, err := s.Update(func(data task.AppData) (task.AppData, error) {
		var err error
		data, project, err = task.AddProject(data, "Inbox")
		return data, err
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	reopened := Open(backend, Options{Today: fixedToday("2025-01-02")})
	got := reopened.Snapshot()
	if len(got.Projects) != 1 || got.Projects[0].ID != project.ID {
		t.Fatalf("expected persisted project, got %+v", got.Projects)
	}
}

func TestUpdateErrorLeavesStateUntouched(t *testing.T) {
	backend := newFlaky()
	s := Open(backend, Options{Today: fixedToday("2025-01-02")})

	_, err := s.Update(func(data task.AppData) (task.AppData, error) {
		data, _, err := task.AddProject(data, "")
		return data, err
	})
	if !errors.Is(err, task.ErrEmptyName) {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}
	if backend.writes != 0 {
		t.Fatalf("expected no writes, got %d", backend.writes)
	}

	_, err = s.Update(func(data task.AppData) (task.AppData, error) {
		return data, ErrUnchanged
	})
	if err != nil {
		t.Fatalf("expected ErrUnchanged to be swallowed, got %v", err)
	}
	if backend.writes != 0 {
		t.Fatalf("expected no writes, got %d", backend.writes)
	}
}

func TestSaveFailureKeepsInMemoryState(t *testing.T) {
	backend := newFlaky()
	backend.failing = true
	var buf bytes.Buffer
	s := Open(backend, Options{Logger: testLogger(&buf), Today: fixedToday("2025-01-02")})

	data, err := s.Update(func(data task.AppData) (task.AppData, error) {
		data, _, err := task.AddProject(data, "Inbox")
		return data, err
	})
	if err != nil {
		t.Fatalf("expected write failure not to surface, got %v", err)
	}
	if len(data.Projects) != 1 || len(s.Snapshot().Projects) != 1 {
		t.Fatal("expected in-memory state to keep the change")
	}
	if !errors.Is(s.SaveErr(), errDiskFull) {
		t.Fatalf("expected SaveErr to report disk full, got %v", s.SaveErr())
	}
	if !strings.Contains(buf.String(), "save failed") {
		t.Fatalf("expected error log, got %q", buf.String())
	}

	backend.failing = false
	s.Replace(s.Snapshot())
	if s.SaveErr() != nil {
		t.Fatalf("expected next save to succeed, got %v", s.SaveErr())
	}
}

func seedHabit(t *testing.T, backend KV, status task.Status, last string) {
	t.Helper()
	data := task.Empty()
	data.Projects = []task.Project{{ID: "p1", Name: "Habits"}}
	habit := task.Task{
		ID:           "h1",
		Content:      "Stretch",
		ProjectID:    "p1",
		Status:       status,
		Priority:     task.PriorityMedium,
		Tags:         []string{},
		RepeatConfig: &task.RepeatConfig{Type: task.RepeatDaily},
	}
	if last != "" {
		habit.LastCompletedDate = task.DatePtr(task.MustParseDate(last))
	}
	data.Tasks = []task.Task{habit}

	encoded, err := task.Marshal(data)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := backend.Set(DefaultKey, string(encoded)); err != nil {
		t.Fatalf("seed: %v", err)
	}
}

func TestOpenResetsHabitsForNewDay(t *testing.T) {
	backend := newFlaky()
	seedHabit(t, backend, task.StatusDone, "2025-01-01")
	backend.writes = 0

	s := Open(backend, Options{Today: fixedToday("2025-01-02")})

	got := s.Snapshot().Tasks[0]
	if got.Status != task.StatusTodo || got.LastCompletedDate != nil {
		t.Fatalf("expected habit reset, got %s %v", got.Status, got.LastCompletedDate)
	}
	if backend.writes != 1 {
		t.Fatalf("expected reset to be persisted once, got %d writes", backend.writes)
	}

	reopened := Open(backend, Options{Today: fixedToday("2025-01-02")})
	if reopened.Snapshot().Tasks[0].Status != task.StatusTodo {
		t.Fatal("expected reset to survive reopen")
	}
	if backend.writes != 1 {
		t.Fatalf("expected no write when nothing resets, got %d writes", backend.writes)
	}
}

func TestOpenKeepsHabitCompletedToday(t *testing.T) {
	backend := newFlaky()
	seedHabit(t, backend, task.StatusDone, "2025-01-02")
	backend.writes = 0

	s := Open(backend, Options{Today: fixedToday("2025-01-02")})
	if s.Snapshot().Tasks[0].Status != task.StatusDone {
		t.Fatal("expected habit completed today to stay done")
	}
	if backend.writes != 0 {
		t.Fatalf("expected no writes, got %d", backend.writes)
	}
}

func TestCompletingHabitSurvivesReplace(t *testing.T) {
	backend := newFlaky()
	seedHabit(t, backend, task.StatusTodo, "")
	s := Open(backend, Options{Today: fixedToday("2025-01-02")})

	data, err := s.Update(func(data task.AppData) (task.AppData, error) {
		return task.SetStatus(data, "h1", task.StatusDone, s.Today())
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if data.Tasks[0].Status != task.StatusDone {
		t.Fatal("expected habit to stay done on the day it was completed")
	}
}

func TestReorderLogsRejectedRequest(t *testing.T) {
	backend := newFlaky()
	var buf bytes.Buffer
	s := Open(backend, Options{Logger: testLogger(&buf), Today: fixedToday("2025-01-02")})

	_, changed := s.Reorder(task.ReorderRequest{Kind: task.ReorderTask, MovedID: "missing", SourceIndex: 0, DestinationIndex: 1})
	if changed {
		t.Fatal("expected no change")
	}
	if backend.writes != 0 {
		t.Fatalf("expected no writes, got %d", backend.writes)
	}
	if !strings.Contains(buf.String(), "reorder ignored") {
		t.Fatalf("expected debug log, got %q", buf.String())
	}
}

func TestReorderPersists(t *testing.T) {
	backend := newFlaky()
	s := Open(backend, Options{Today: fixedToday("2025-01-02")})
	for _, name := range []string{"A", "B", "C"} {
		if _, err := s.Update(func(data task.AppData) (task.AppData, error) {
			data, _, err := task.AddProject(data, name)
			return data, err
		}); err != nil {
			t.Fatalf("add project: %v", err)
		}
	}
	moved := task.ActiveProjects(s.Snapshot())[2].ID

	data, changed := s.Reorder(task.ReorderRequest{Kind: task.ReorderProject, MovedID: moved, SourceIndex: 2, DestinationIndex: 0})
	if !changed {
		t.Fatal("expected change")
	}
	if task.ActiveProjects(data)[0].ID != moved {
		t.Fatal("expected moved project first")
	}

	reopened := Open(backend, Options{Today: fixedToday("2025-01-02")})
	if task.ActiveProjects(reopened.Snapshot())[0].ID != moved {
		t.Fatal("expected reorder to be persisted")
	}
}

func TestCustomKey(t *testing.T) {
	backend := kv.NewMemory()
	s := Open(backend, Options{Key: "other", Today: fixedToday("2025-01-02")})
	s.Replace(task.Empty())

	if _, ok, _ := backend.Get("other"); !ok {
		t.Fatal("expected data under custom key")
	}
	if _, ok, _ := backend.Get(DefaultKey); ok {
		t.Fatal("expected nothing under the default key")
	}
}
