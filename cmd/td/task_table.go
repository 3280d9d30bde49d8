package main

import (
	"github.com/amonks/todoapp/internal/ui"
	"github.com/amonks/todoapp/task"

	internalstrings "github.com/amonks/todoapp/internal/strings"
)

func formatTaskTable(data task.AppData, tasks []task.Task, today task.Date, highlight func(string) string) string {
	projectNames := make(map[string]string, len(data.Projects))
	for _, p := range data.Projects {
		projectNames[p.ID] = p.Name
	}

	builder := ui.NewTableBuilder([]string{"ID", "STATUS", "PRI", "DUE", "REPEAT", "PROJECT", "TAGS", "CONTENT"}, len(tasks))
	for _, t := range tasks {
		tags := ui.TagList(task.ResolveTags(data, t))
		if tags == "" {
			tags = "-"
		}
		builder.AddRow(
			highlight(t.ID),
			ui.StatusIcon(t.Status),
			ui.PriorityLabel(t.Priority),
			ui.DueLabel(t.DueDate, today),
			ui.RepeatLabel(t.RepeatConfig),
			ui.TruncateTableCell(projectNames[t.ProjectID]),
			tags,
			ui.TruncateTableCell(internalstrings.FirstLine(t.Content)),
		)
	}
	return builder.String()
}
