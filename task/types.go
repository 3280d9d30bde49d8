package task

import (
	"strings"

	"github.com/amonks/todoapp/internal/validation"
)

// Status represents the state of a task.
type Status string

const (
	// StatusTodo indicates the task has not been started.
	StatusTodo Status = "Todo"

	// StatusInProgress indicates the task is being worked on.
	StatusInProgress Status = "InProgress"

	// StatusDone indicates the task is complete.
	StatusDone Status = "Done"
)

// ValidStatuses returns all valid status values.
func ValidStatuses() []Status {
	return []Status{StatusTodo, StatusInProgress, StatusDone}
}

// IsValid returns true if the status is a known valid value.
func (s Status) IsValid() bool {
	for _, valid := range ValidStatuses() {
		if s == valid {
			return true
		}
	}
	return false
}

// Next returns the status that follows s in the Todo, InProgress, Done cycle.
func (s Status) Next() Status {
	switch s {
	case StatusTodo:
		return StatusInProgress
	case StatusInProgress:
		return StatusDone
	default:
		return StatusTodo
	}
}

// Priority represents the importance of a task.
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium" // default
	PriorityLow    Priority = "Low"
)

// ValidPriorities returns all valid priority values, highest first.
func ValidPriorities() []Priority {
	return []Priority{PriorityHigh, PriorityMedium, PriorityLow}
}

// IsValid returns true if the priority is a known valid value.
func (p Priority) IsValid() bool {
	for _, valid := range ValidPriorities() {
		if p == valid {
			return true
		}
	}
	return false
}

// RepeatType is the schedule of a recurring task.
type RepeatType string

const (
	// RepeatDaily resets the task every day.
	RepeatDaily RepeatType = "daily"

	// RepeatWeekdays resets the task Monday through Friday.
	RepeatWeekdays RepeatType = "weekdays"
)

// ValidRepeatTypes returns all valid repeat types.
func ValidRepeatTypes() []RepeatType {
	return []RepeatType{RepeatDaily, RepeatWeekdays}
}

// IsValid returns true if the repeat type is a known valid value.
func (r RepeatType) IsValid() bool {
	for _, valid := range ValidRepeatTypes() {
		if r == valid {
			return true
		}
	}
	return false
}

// RepeatConfig marks a task as a recurring habit.
type RepeatConfig struct {
	Type RepeatType `json:"type"`
}

// Theme is the display mode stored in settings.
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// IsValid returns true if the theme is a known valid value.
func (t Theme) IsValid() bool {
	return t == ThemeDark || t == ThemeLight
}

// DefaultAccentColor is the accent color of a fresh dataset.
const DefaultAccentColor = "#2998ff"

// DefaultTagColor is used when a tag is created without a color.
const DefaultTagColor = "#3498db"

// AccentColors maps the named accent palette to display colors.
// Settings may hold any string; presentation falls back to blue.
var AccentColors = map[string]string{
	"blue":   "#3b82f6",
	"cyan":   "#06b6d4",
	"violet": "#8b5cf6",
	"orange": "#f97316",
}

// MaxContentLength is the maximum allowed length for task content.
const MaxContentLength = 2000

// ParseStatus resolves user input to a Status, ignoring case and the
// separators people tend to type ("in progress", "in_progress").
func ParseStatus(value string) (Status, error) {
	key := normalizeEnumInput(value)
	for _, status := range ValidStatuses() {
		if normalizeEnumInput(string(status)) == key {
			return status, nil
		}
	}
	return "", validation.FormatInvalidValueError(ErrInvalidStatus, Status(value), ValidStatuses())
}

// ParsePriority resolves user input to a Priority, ignoring case.
func ParsePriority(value string) (Priority, error) {
	key := normalizeEnumInput(value)
	for _, priority := range ValidPriorities() {
		if normalizeEnumInput(string(priority)) == key {
			return priority, nil
		}
	}
	return "", validation.FormatInvalidValueError(ErrInvalidPriority, Priority(value), ValidPriorities())
}

// ParseRepeatType resolves user input to a RepeatType, ignoring case.
func ParseRepeatType(value string) (RepeatType, error) {
	key := normalizeEnumInput(value)
	for _, repeat := range ValidRepeatTypes() {
		if string(repeat) == key {
			return repeat, nil
		}
	}
	return "", validation.FormatInvalidValueError(ErrInvalidRepeatType, RepeatType(value), ValidRepeatTypes())
}

func normalizeEnumInput(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	return strings.NewReplacer("_", "", "-", "", " ", "").Replace(value)
}
