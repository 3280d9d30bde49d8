package main

import (
	"strings"

	"github.com/amonks/todoapp/task"
	"github.com/spf13/pflag"
)

// priorityValue is a pflag.Value accepting High, Medium or Low in any case.
type priorityValue struct {
	target *task.Priority
}

var _ pflag.Value = priorityValue{}

func newPriorityValue(target *task.Priority, def task.Priority) priorityValue {
	*target = def
	return priorityValue{target: target}
}

func (v priorityValue) String() string {
	if v.target == nil {
		return ""
	}
	return string(*v.target)
}

func (v priorityValue) Set(value string) error {
	parsed, err := task.ParsePriority(value)
	if err != nil {
		return err
	}
	*v.target = parsed
	return nil
}

func (priorityValue) Type() string { return "priority" }

// dateValue is a pflag.Value holding an optional YYYY-MM-DD date. The words
// "today", "tomorrow" and "none" are accepted too.
type dateValue struct {
	target *string
}

var _ pflag.Value = dateValue{}

func (v dateValue) String() string {
	if v.target == nil {
		return ""
	}
	return *v.target
}

func (v dateValue) Set(value string) error {
	value = strings.ToLower(strings.TrimSpace(value))
	switch value {
	case "today", "tomorrow", "none", "":
	default:
		if _, err := task.ParseDate(value); err != nil {
			return err
		}
	}
	*v.target = value
	return nil
}

func (dateValue) Type() string { return "date" }

// resolveDate turns a dateValue string into a date relative to today. A nil
// result means no date.
func resolveDate(value string, today task.Date) *task.Date {
	switch value {
	case "", "none":
		return nil
	case "today":
		return task.DatePtr(today)
	case "tomorrow":
		return task.DatePtr(today.AddDays(1))
	default:
		d := task.MustParseDate(value)
		return &d
	}
}

// repeatValue is a pflag.Value holding daily, weekdays or none.
type repeatValue struct {
	target *string
}

var _ pflag.Value = repeatValue{}

func (v repeatValue) String() string {
	if v.target == nil {
		return ""
	}
	return *v.target
}

func (v repeatValue) Set(value string) error {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "none" || value == "" {
		*v.target = "none"
		return nil
	}
	parsed, err := task.ParseRepeatType(value)
	if err != nil {
		return err
	}
	*v.target = string(parsed)
	return nil
}

func (repeatValue) Type() string { return "repeat" }

// resolveRepeat turns a repeatValue string into a schedule. A nil result
// means no schedule.
func resolveRepeat(value string) *task.RepeatConfig {
	if value == "" || value == "none" {
		return nil
	}
	return &task.RepeatConfig{Type: task.RepeatType(value)}
}
