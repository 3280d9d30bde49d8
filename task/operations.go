package task

import (
	"fmt"
	"strings"
	"time"

	"github.com/amonks/todoapp/internal/ids"
	"github.com/amonks/todoapp/internal/validation"
)

// AddProject appends a new active project at the end of the project list.
func AddProject(data AppData, name string) (AppData, Project, error) {
	name = strings.TrimSpace(name)
	if err := ValidateName(name); err != nil {
		return data, Project{}, err
	}

	project := Project{
		ID:        ids.New(),
		Name:      name,
		SortOrder: len(data.Projects),
	}
	data.Projects = append(append([]Project(nil), data.Projects...), project)
	return data, project, nil
}

// RenameProject changes a project's name.
func RenameProject(data AppData, id, name string) (AppData, error) {
	name = strings.TrimSpace(name)
	if err := ValidateName(name); err != nil {
		return data, err
	}
	return withProject(data, id, func(p *Project) error {
		p.Name = name
		return nil
	})
}

// ArchiveProject hides a project from the active list. Its tasks are kept.
func ArchiveProject(data AppData, id string) (AppData, error) {
	return withProject(data, id, func(p *Project) error {
		p.IsArchived = true
		return nil
	})
}

// UnarchiveProject returns a project to the end of the active list.
func UnarchiveProject(data AppData, id string) (AppData, error) {
	next := 0
	for _, p := range data.Projects {
		if !p.IsArchived && p.ID != id && p.SortOrder >= next {
			next = p.SortOrder + 1
		}
	}
	return withProject(data, id, func(p *Project) error {
		if !p.IsArchived {
			return nil
		}
		p.IsArchived = false
		p.SortOrder = next
		return nil
	})
}

// TaskInput describes a task to create.
type TaskInput struct {
	Content string

	// ProjectID is required for root tasks. Subtasks always live in their
	// parent's project; a conflicting value is an error.
	ProjectID string
	ParentID  *string

	// Priority defaults to Medium.
	Priority Priority
	DueDate  *Date
	Tags     []string
	Repeat   *RepeatConfig
}

// AddTask creates a Todo task at the end of its sibling group. The
// creation time is stored in UTC at millisecond precision.
func AddTask(data AppData, input TaskInput, now time.Time) (AppData, Task, error) {
	t := Task{
		ID:           ids.New(),
		Content:      strings.TrimSpace(input.Content),
		ProjectID:    input.ProjectID,
		Status:       StatusTodo,
		Priority:     input.Priority,
		DueDate:      input.DueDate,
		Tags:         uniqueTags(input.Tags),
		CreatedAt:    now.UTC().Truncate(time.Millisecond),
		RepeatConfig: input.Repeat,
	}
	if t.Priority == "" {
		t.Priority = PriorityMedium
	}

	if input.ParentID != nil {
		idx := indexOfTask(data.Tasks, *input.ParentID)
		if idx < 0 {
			return data, Task{}, fmt.Errorf("%w: parent %s", ErrTaskNotFound, *input.ParentID)
		}
		parent := data.Tasks[idx]
		if t.ProjectID != "" && t.ProjectID != parent.ProjectID {
			return data, Task{}, fmt.Errorf("%w: parent %s belongs to project %s", ErrCrossGroupMove, parent.ID, parent.ProjectID)
		}
		t.ProjectID = parent.ProjectID
		t.ParentID = stringPtr(parent.ID)
	}
	if indexOfProject(data.Projects, t.ProjectID) < 0 {
		return data, Task{}, fmt.Errorf("%w: %s", ErrProjectNotFound, t.ProjectID)
	}
	for _, tagID := range t.Tags {
		if indexOfTag(data.Tags, tagID) < 0 {
			return data, Task{}, fmt.Errorf("%w: %s", ErrTagNotFound, tagID)
		}
	}
	if err := ValidateTask(&t); err != nil {
		return data, Task{}, err
	}

	group := GroupOf(t)
	for _, other := range data.Tasks {
		if GroupOf(other) == group && other.SortOrder >= t.SortOrder {
			t.SortOrder = other.SortOrder + 1
		}
	}

	data.Tasks = append(append([]Task(nil), data.Tasks...), t)
	return data, t, nil
}

// TaskPatch holds optional task updates. Nil pointers leave fields unchanged.
type TaskPatch struct {
	Content  *string
	Priority *Priority

	DueDate      *Date
	ClearDueDate bool

	// Repeat replaces the schedule; ClearRepeat removes it. Removing a
	// schedule also forgets the last completion date.
	Repeat      *RepeatConfig
	ClearRepeat bool

	Tags *[]string
}

// UpdateTask applies patch to the task with the given ID.
func UpdateTask(data AppData, id string, patch TaskPatch) (AppData, error) {
	if patch.Tags != nil {
		for _, tagID := range *patch.Tags {
			if indexOfTag(data.Tags, tagID) < 0 {
				return data, fmt.Errorf("%w: %s", ErrTagNotFound, tagID)
			}
		}
	}

	return withTask(data, id, func(t *Task) error {
		if patch.Content != nil {
			t.Content = strings.TrimSpace(*patch.Content)
		}
		if patch.Priority != nil {
			t.Priority = *patch.Priority
		}
		if patch.ClearDueDate {
			t.DueDate = nil
		} else if patch.DueDate != nil {
			t.DueDate = DatePtr(*patch.DueDate)
		}
		if patch.ClearRepeat {
			t.RepeatConfig = nil
			t.LastCompletedDate = nil
		} else if patch.Repeat != nil {
			repeat := *patch.Repeat
			t.RepeatConfig = &repeat
		}
		if patch.Tags != nil {
			t.Tags = uniqueTags(*patch.Tags)
		}
		return ValidateTask(t)
	})
}

// SetStatus moves a task to status. Completing a recurring task records
// today as its completion date; leaving Done clears it.
func SetStatus(data AppData, id string, status Status, today Date) (AppData, error) {
	if !status.IsValid() {
		return data, validation.FormatInvalidValueError(ErrInvalidStatus, status, ValidStatuses())
	}
	return withTask(data, id, func(t *Task) error {
		t.Status = status
		switch {
		case status == StatusDone && t.IsRecurring():
			t.LastCompletedDate = DatePtr(today)
		case status != StatusDone:
			t.LastCompletedDate = nil
		}
		return nil
	})
}

// CycleStatus advances a task Todo, InProgress, Done and back to Todo. It
// returns the new status.
func CycleStatus(data AppData, id string, today Date) (AppData, Status, error) {
	idx := indexOfTask(data.Tasks, id)
	if idx < 0 {
		return data, "", fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	next := data.Tasks[idx].Status.Next()
	data, err := SetStatus(data, id, next, today)
	return data, next, err
}

// AddTag creates a tag. An empty color selects DefaultTagColor.
func AddTag(data AppData, name, color string) (AppData, Tag, error) {
	name = strings.TrimSpace(name)
	if err := ValidateName(name); err != nil {
		return data, Tag{}, err
	}
	color = strings.TrimSpace(color)
	if color == "" {
		color = DefaultTagColor
	}

	tag := Tag{ID: ids.New(), Name: name, Color: color}
	data.Tags = append(append([]Tag(nil), data.Tags...), tag)
	return data, tag, nil
}

// TagPatch holds optional tag updates.
type TagPatch struct {
	Name  *string
	Color *string
}

// UpdateTag applies patch to the tag with the given ID.
func UpdateTag(data AppData, id string, patch TagPatch) (AppData, error) {
	idx := indexOfTag(data.Tags, id)
	if idx < 0 {
		return data, fmt.Errorf("%w: %s", ErrTagNotFound, id)
	}

	tag := data.Tags[idx]
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if err := ValidateName(name); err != nil {
			return data, err
		}
		tag.Name = name
	}
	if patch.Color != nil {
		tag.Color = strings.TrimSpace(*patch.Color)
		if tag.Color == "" {
			tag.Color = DefaultTagColor
		}
	}

	tags := append([]Tag(nil), data.Tags...)
	tags[idx] = tag
	data.Tags = tags
	return data, nil
}

// TagTask adds a tag to a task. Adding a tag twice is a no-op.
func TagTask(data AppData, taskID, tagID string) (AppData, error) {
	if indexOfTag(data.Tags, tagID) < 0 {
		return data, fmt.Errorf("%w: %s", ErrTagNotFound, tagID)
	}
	return withTask(data, taskID, func(t *Task) error {
		if !t.HasTag(tagID) {
			t.Tags = append(append([]string(nil), t.Tags...), tagID)
		}
		return nil
	})
}

// UntagTask removes a tag reference from a task. The tag itself need not
// exist, so dangling references can be cleaned up.
func UntagTask(data AppData, taskID, tagID string) (AppData, error) {
	return withTask(data, taskID, func(t *Task) error {
		kept := make([]string, 0, len(t.Tags))
		for _, id := range t.Tags {
			if id != tagID {
				kept = append(kept, id)
			}
		}
		t.Tags = kept
		return nil
	})
}

// ResolveTags returns the tags a task references, skipping IDs that no
// longer resolve.
func ResolveTags(data AppData, t Task) []Tag {
	tags := make([]Tag, 0, len(t.Tags))
	for _, id := range t.Tags {
		if idx := indexOfTag(data.Tags, id); idx >= 0 {
			tags = append(tags, data.Tags[idx])
		}
	}
	return tags
}

// SettingsPatch holds optional settings updates.
type SettingsPatch struct {
	Theme       *Theme
	AccentColor *string
}

// UpdateSettings applies patch to the display settings.
func UpdateSettings(data AppData, patch SettingsPatch) (AppData, error) {
	settings := data.Settings
	if patch.Theme != nil {
		settings.Theme = *patch.Theme
	}
	if patch.AccentColor != nil {
		settings.AccentColor = strings.TrimSpace(*patch.AccentColor)
	}
	if err := ValidateSettings(settings); err != nil {
		return data, err
	}
	data.Settings = settings
	return data, nil
}

func withTask(data AppData, id string, fn func(*Task) error) (AppData, error) {
	idx := indexOfTask(data.Tasks, id)
	if idx < 0 {
		return data, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	t := data.Tasks[idx]
	if err := fn(&t); err != nil {
		return data, err
	}
	tasks := append([]Task(nil), data.Tasks...)
	tasks[idx] = t
	data.Tasks = tasks
	return data, nil
}

func withProject(data AppData, id string, fn func(*Project) error) (AppData, error) {
	idx := indexOfProject(data.Projects, id)
	if idx < 0 {
		return data, fmt.Errorf("%w: %s", ErrProjectNotFound, id)
	}
	p := data.Projects[idx]
	if err := fn(&p); err != nil {
		return data, err
	}
	projects := append([]Project(nil), data.Projects...)
	projects[idx] = p
	data.Projects = projects
	return data, nil
}

func uniqueTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, id := range tags {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
