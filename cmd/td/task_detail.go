package main

import (
	"fmt"
	"io"
	"strings"

	internalstrings "github.com/amonks/todoapp/internal/strings"

	"github.com/amonks/todoapp/internal/markdown"
	"github.com/amonks/todoapp/internal/ui"
	"github.com/amonks/todoapp/task"
)

const taskDetailLineWidth = 80

// printTaskDetail prints detailed information about a task.
func printTaskDetail(w io.Writer, data task.AppData, t task.Task, today task.Date, highlight func(string) string) {
	project, _ := task.FindProject(data, t.ProjectID)

	fmt.Fprintf(w, "ID:       %s\n", highlight(t.ID))
	fmt.Fprintf(w, "Project:  %s\n", project.Name)
	if ancestors := task.Ancestors(data, t.ID); len(ancestors) > 0 {
		names := make([]string, len(ancestors))
		for i, parent := range ancestors {
			names[len(ancestors)-1-i] = internalstrings.FirstLine(parent.Content)
		}
		fmt.Fprintf(w, "Parent:   %s\n", strings.Join(names, " > "))
	}
	fmt.Fprintf(w, "Status:   %s %s\n", ui.StatusIcon(t.Status), t.Status)
	fmt.Fprintf(w, "Priority: %s\n", ui.PriorityLabel(t.Priority))
	fmt.Fprintf(w, "Due:      %s\n", ui.DueLabel(t.DueDate, today))
	fmt.Fprintf(w, "Repeat:   %s\n", ui.RepeatLabel(t.RepeatConfig))
	if t.LastCompletedDate != nil {
		fmt.Fprintf(w, "Completed: %s\n", t.LastCompletedDate.String())
	}
	if tags := task.ResolveTags(data, t); len(tags) > 0 {
		fmt.Fprintf(w, "Tags:     %s\n", ui.TagList(tags))
	}
	fmt.Fprintf(w, "Created:  %s (%s)\n", t.CreatedAt.Format("2006-01-02 15:04:05"), ui.FormatTimeAgo(t.CreatedAt, now()))

	if children := task.Children(data, t.ID); len(children) > 0 {
		fmt.Fprintf(w, "Progress: %s\n", ui.ProgressBar(percent(task.TaskProgress(data, t.ID)), progressBarWidth))
		fmt.Fprintf(w, "\nSubtasks:\n%s", formatTaskTree(data, children, today, true, highlight))
	}

	fmt.Fprintf(w, "\nContent:\n%s\n", formatTaskContent(data, t.Content))
}

func formatTaskContent(data task.AppData, content string) string {
	style := markdown.StyleFor(string(data.Settings.Theme), ui.ColorEnabled())
	formatted := markdown.Render(style, taskDetailLineWidth, 2, content)
	if strings.TrimSpace(formatted) == "" {
		return "  -"
	}
	return formatted
}
