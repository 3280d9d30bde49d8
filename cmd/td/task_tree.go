package main

import (
	"fmt"
	"math"
	"strings"

	internalstrings "github.com/amonks/todoapp/internal/strings"
	"github.com/amonks/todoapp/internal/ui"
	"github.com/amonks/todoapp/task"
)

// formatTaskTree renders tasks and their subtasks with ASCII connectors.
// Done tasks are hidden unless includeDone is set; hiding a task hides its
// subtree.
func formatTaskTree(data task.AppData, roots []task.Task, today task.Date, includeDone bool, highlight func(string) string) string {
	var builder strings.Builder
	seen := map[string]bool{}
	visible := filterDone(roots, includeDone)
	for i, t := range visible {
		writeTaskNode(&builder, data, t, "", i == len(visible)-1, true, today, includeDone, highlight, seen)
	}
	return builder.String()
}

func writeTaskNode(builder *strings.Builder, data task.AppData, t task.Task, prefix string, isLast, isRoot bool,
	today task.Date, includeDone bool, highlight func(string) string, seen map[string]bool) {
	if seen[t.ID] {
		return
	}
	seen[t.ID] = true

	connector := "├── "
	if isLast {
		connector = "└── "
	}
	if isRoot {
		connector = ""
	}

	fmt.Fprintf(builder, "%s%s%s %s (%s)%s\n",
		prefix, connector, ui.StatusIcon(t.Status), internalstrings.FirstLine(t.Content), highlight(t.ID),
		taskAnnotations(data, t, today))

	childPrefix := prefix
	if !isRoot {
		if isLast {
			childPrefix += "    "
		} else {
			childPrefix += "│   "
		}
	}

	children := filterDone(task.Children(data, t.ID), includeDone)
	for i, child := range children {
		writeTaskNode(builder, data, child, childPrefix, i == len(children)-1, false, today, includeDone, highlight, seen)
	}
}

// taskAnnotations returns the trailing details shown after a task line.
// Medium priority and absent fields are omitted.
func taskAnnotations(data task.AppData, t task.Task, today task.Date) string {
	var parts []string
	if t.Priority != task.PriorityMedium {
		parts = append(parts, ui.PriorityLabel(t.Priority))
	}
	if t.DueDate != nil {
		parts = append(parts, "due "+ui.DueLabel(t.DueDate, today))
	}
	if t.RepeatConfig != nil {
		parts = append(parts, ui.RepeatLabel(t.RepeatConfig))
	}
	if tags := task.ResolveTags(data, t); len(tags) > 0 {
		parts = append(parts, ui.TagList(tags))
	}
	if len(task.Children(data, t.ID)) > 0 && t.Status != task.StatusDone {
		parts = append(parts, fmt.Sprintf("%d%%", percent(task.TaskProgress(data, t.ID))))
	}
	if len(parts) == 0 {
		return ""
	}
	return "  " + strings.Join(parts, "  ")
}

func filterDone(tasks []task.Task, includeDone bool) []task.Task {
	if includeDone {
		return tasks
	}
	filtered := make([]task.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Status != task.StatusDone {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

func percent(fraction float64) int {
	return int(math.Round(fraction * 100))
}
