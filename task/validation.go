package task

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

var (
	// ErrEmptyContent is returned when task content is empty.
	ErrEmptyContent = errors.New("content cannot be empty")

	// ErrContentTooLong is returned when task content exceeds MaxContentLength.
	ErrContentTooLong = errors.New("content exceeds maximum length")

	// ErrEmptyName is returned when a project or tag name is empty.
	ErrEmptyName = errors.New("name cannot be empty")

	// ErrInvalidStatus is returned when an invalid status is provided.
	ErrInvalidStatus = errors.New("invalid status")

	// ErrInvalidPriority is returned when an invalid priority is provided.
	ErrInvalidPriority = errors.New("invalid priority")

	// ErrInvalidRepeatType is returned when an invalid repeat type is provided.
	ErrInvalidRepeatType = errors.New("invalid repeat type")

	// ErrInvalidTheme is returned when an invalid theme is provided.
	ErrInvalidTheme = errors.New("invalid theme")

	// ErrEmptyAccentColor is returned when the accent color is blank.
	ErrEmptyAccentColor = errors.New("accent color cannot be empty")

	// ErrInvalidDate is returned when a date is not in YYYY-MM-DD form.
	ErrInvalidDate = errors.New("invalid date")

	// ErrTaskNotFound is returned when a task with the given ID doesn't exist.
	ErrTaskNotFound = errors.New("task not found")

	// ErrProjectNotFound is returned when a project with the given ID doesn't exist.
	ErrProjectNotFound = errors.New("project not found")

	// ErrTagNotFound is returned when a tag with the given ID doesn't exist.
	ErrTagNotFound = errors.New("tag not found")

	// ErrAmbiguousIDPrefix is returned when an ID prefix matches multiple entities.
	ErrAmbiguousIDPrefix = errors.New("ambiguous ID prefix")

	// ErrMalformedSnapshot is returned when persisted data lacks the required shape.
	ErrMalformedSnapshot = errors.New("malformed snapshot")
)

// ValidateContent checks if task content is valid.
func ValidateContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return ErrEmptyContent
	}
	if n := utf8.RuneCountInString(content); n > MaxContentLength {
		return fmt.Errorf("%w: %d > %d", ErrContentTooLong, n, MaxContentLength)
	}
	return nil
}

// ValidateName checks if a project or tag name is valid.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	return nil
}

// ValidateTask checks the fields of a task that operations are allowed to set.
func ValidateTask(t *Task) error {
	if err := ValidateContent(t.Content); err != nil {
		return err
	}
	if !t.Status.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, t.Status)
	}
	if !t.Priority.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, t.Priority)
	}
	if t.RepeatConfig != nil && !t.RepeatConfig.Type.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidRepeatType, t.RepeatConfig.Type)
	}
	if t.DueDate != nil && t.DueDate.IsZero() {
		return fmt.Errorf("%w: zero due date", ErrInvalidDate)
	}
	return nil
}

// ValidateSettings checks display settings.
func ValidateSettings(s Settings) error {
	if !s.Theme.IsValid() {
		return fmt.Errorf("%w: %q (want dark or light)", ErrInvalidTheme, s.Theme)
	}
	if strings.TrimSpace(s.AccentColor) == "" {
		return ErrEmptyAccentColor
	}
	return nil
}
