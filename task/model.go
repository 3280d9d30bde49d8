package task

import "time"

// Task is a node in a project's task forest.
//
// Field order and JSON names match the persisted snapshot format.
type Task struct {
	// ID is a unique, immutable identifier (UUIDv4).
	ID string `json:"id"`

	// Content is the task text.
	Content string `json:"content"`

	// ProjectID is the owning project. Immutable after creation.
	ProjectID string `json:"projectId"`

	// ParentID is the owning task, or nil for a root task.
	ParentID *string `json:"parentId"`

	Status   Status   `json:"status"`
	Priority Priority `json:"priority"`

	// DueDate is an optional calendar date.
	DueDate *Date `json:"dueDate"`

	// Tags holds tag IDs. Entries may dangle after a tag is deleted
	// elsewhere; readers filter them out with ResolveTags.
	Tags []string `json:"tags"`

	CreatedAt time.Time `json:"createdAt"`

	// SortOrder positions the task among its siblings.
	SortOrder int `json:"sortOrder"`

	// RepeatConfig marks the task as a recurring habit.
	RepeatConfig *RepeatConfig `json:"repeatConfig"`

	// LastCompletedDate is the day the habit was last marked done. Only
	// meaningful while RepeatConfig is set and Status is Done.
	LastCompletedDate *Date `json:"lastCompletedDate"`
}

// Parent returns the parent ID and whether the task has one.
func (t Task) Parent() (string, bool) {
	if t.ParentID == nil {
		return "", false
	}
	return *t.ParentID, true
}

// IsRoot reports whether the task has no parent.
func (t Task) IsRoot() bool {
	return t.ParentID == nil
}

// IsRecurring reports whether the task has a repeat schedule.
func (t Task) IsRecurring() bool {
	return t.RepeatConfig != nil
}

// HasTag reports whether the task references tagID.
func (t Task) HasTag(tagID string) bool {
	for _, id := range t.Tags {
		if id == tagID {
			return true
		}
	}
	return false
}

// Project groups tasks.
type Project struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	// SortOrder positions the project among non-archived projects.
	SortOrder int `json:"sortOrder"`

	IsArchived bool `json:"isArchived"`
}

// Tag labels tasks.
type Tag struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	// Color is a display string; the engine never interprets it.
	Color string `json:"color"`
}

// Settings holds presentation preferences.
type Settings struct {
	Theme       Theme  `json:"theme"`
	AccentColor string `json:"accentColor"`
}

// AppData is the root snapshot: the entire persisted state, always handled
// as one unit.
type AppData struct {
	Projects []Project `json:"projects"`
	Tasks    []Task    `json:"tasks"`
	Tags     []Tag     `json:"tags"`
	Settings Settings  `json:"settings"`
}

// DefaultSettings returns the settings of a fresh dataset.
func DefaultSettings() Settings {
	return Settings{
		Theme:       ThemeDark,
		AccentColor: DefaultAccentColor,
	}
}

// Empty returns the empty dataset used when nothing has been stored yet or
// the stored value cannot be read.
func Empty() AppData {
	return AppData{
		Projects: []Project{},
		Tasks:    []Task{},
		Tags:     []Tag{},
		Settings: DefaultSettings(),
	}
}

// Normalize replaces nil slices with empty ones and fills unset settings with
// defaults, so decoded and constructed snapshots compare equal.
func Normalize(data AppData) AppData {
	if data.Projects == nil {
		data.Projects = []Project{}
	}
	if data.Tags == nil {
		data.Tags = []Tag{}
	}
	if data.Tasks == nil {
		data.Tasks = []Task{}
	} else {
		tasks := data.Tasks
		copied := false
		for i := range tasks {
			if tasks[i].Tags != nil {
				continue
			}
			if !copied {
				tasks = append([]Task(nil), tasks...)
				copied = true
			}
			tasks[i].Tags = []string{}
		}
		data.Tasks = tasks
	}
	if data.Settings.Theme == "" {
		data.Settings.Theme = ThemeDark
	}
	if data.Settings.AccentColor == "" {
		data.Settings.AccentColor = DefaultAccentColor
	}
	return data
}

func stringPtr(value string) *string {
	return &value
}
