package task

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Marshal encodes a snapshot in its compact persisted form.
func Marshal(data AppData) ([]byte, error) {
	data = Normalize(data)
	encoded, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	return encoded, nil
}

// MarshalIndent encodes a snapshot with two-space indentation, the layout
// used for exported backups.
func MarshalIndent(data AppData) ([]byte, error) {
	data = Normalize(data)
	encoded, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	return encoded, nil
}

// snapshotShape mirrors AppData with pointer slices so missing keys can be
// told apart from empty lists.
type snapshotShape struct {
	Projects *[]Project `json:"projects"`
	Tasks    *[]Task    `json:"tasks"`
	Tags     *[]Tag     `json:"tags"`
	Settings *Settings  `json:"settings"`
}

// Unmarshal decodes a snapshot. The projects, tasks and tags keys must be
// present; missing settings fall back to defaults. Unknown keys are ignored.
func Unmarshal(encoded []byte) (AppData, error) {
	var shape snapshotShape
	if err := json.Unmarshal(encoded, &shape); err != nil {
		return AppData{}, fmt.Errorf("%w: %v", ErrMalformedSnapshot, err)
	}

	var missing []string
	if shape.Projects == nil {
		missing = append(missing, "projects")
	}
	if shape.Tasks == nil {
		missing = append(missing, "tasks")
	}
	if shape.Tags == nil {
		missing = append(missing, "tags")
	}
	if len(missing) > 0 {
		return AppData{}, fmt.Errorf("%w: missing %s", ErrMalformedSnapshot, strings.Join(missing, ", "))
	}

	data := AppData{
		Projects: *shape.Projects,
		Tasks:    *shape.Tasks,
		Tags:     *shape.Tags,
	}
	if shape.Settings != nil {
		data.Settings = *shape.Settings
	}
	return Normalize(data), nil
}
