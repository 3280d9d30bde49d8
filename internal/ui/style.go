package ui

import (
	"fmt"
	"strings"

	"github.com/amonks/todoapp/task"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

var (
	doneStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	progressStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	overdueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)

	priorityStyles = map[task.Priority]lipgloss.Style{
		task.PriorityHigh:   lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		task.PriorityMedium: lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		task.PriorityLow:    mutedStyle,
	}
)

func render(style lipgloss.Style, value string) string {
	if !ColorEnabled() {
		return value
	}
	return style.Render(value)
}

// StatusIcon returns a checkbox for a status.
func StatusIcon(status task.Status) string {
	switch status {
	case task.StatusDone:
		return render(doneStyle, "[x]")
	case task.StatusInProgress:
		return render(progressStyle, "[~]")
	default:
		return "[ ]"
	}
}

// PriorityLabel returns a colored priority name.
func PriorityLabel(priority task.Priority) string {
	style, ok := priorityStyles[priority]
	if !ok {
		return string(priority)
	}
	return render(style, string(priority))
}

// TagLabel returns "#name" in the tag's own color.
func TagLabel(tag task.Tag) string {
	return render(lipgloss.NewStyle().Foreground(lipgloss.Color(tag.Color)), "#"+tag.Name)
}

// TagList joins tag labels with spaces.
func TagList(tags []task.Tag) string {
	labels := make([]string, len(tags))
	for i, tag := range tags {
		labels[i] = TagLabel(tag)
	}
	return strings.Join(labels, " ")
}

// DueLabel describes a due date relative to today. Nil renders as "-".
func DueLabel(due *task.Date, today task.Date) string {
	if due == nil {
		return "-"
	}
	switch {
	case *due == today:
		return due.String() + " (today)"
	case due.Before(today):
		return render(overdueStyle, due.String()+" (overdue)")
	default:
		return due.String()
	}
}

// RepeatLabel names a repeat schedule. Nil renders as "-".
func RepeatLabel(repeat *task.RepeatConfig) string {
	if repeat == nil {
		return "-"
	}
	return string(repeat.Type)
}

// ProgressBar renders a percentage as a fixed-width bar like "[###-------] 30%".
func ProgressBar(percent, width int) string {
	percent = min(max(percent, 0), 100)
	if width < 1 {
		return fmt.Sprintf("%d%%", percent)
	}
	filled := percent * width / 100
	bar := strings.Repeat("#", filled) + strings.Repeat("-", width-filled)
	return fmt.Sprintf("[%s] %d%%", render(doneStyle, bar), percent)
}

// Wrap word-wraps text to width columns.
func Wrap(text string, width int) string {
	if width < 1 {
		return text
	}
	return wordwrap.String(text, width)
}

// Muted renders secondary text.
func Muted(value string) string {
	return render(mutedStyle, value)
}
