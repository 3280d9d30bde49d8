package main

import (
	"fmt"
	"strconv"

	"github.com/amonks/todoapp/internal/ui"
	"github.com/amonks/todoapp/task"
)

// progressBarWidth is the number of cells in a rendered progress bar.
const progressBarWidth = 10

func formatProjectTable(data task.AppData, projects []task.Project, highlight func(string) string) string {
	counts := map[string]int{}
	for _, t := range data.Tasks {
		counts[t.ProjectID]++
	}

	builder := ui.NewTableBuilder([]string{"ID", "NAME", "PROGRESS", "TASKS"}, len(projects))
	for _, p := range projects {
		name := ui.TruncateTableCell(p.Name)
		if p.IsArchived {
			name += " " + ui.Muted("(archived)")
		}
		builder.AddRow(
			highlight(p.ID),
			name,
			ui.ProgressBar(task.ProjectProgress(data, p.ID), progressBarWidth),
			strconv.Itoa(counts[p.ID]),
		)
	}
	return builder.String()
}

func formatProjectHeader(data task.AppData, project task.Project) string {
	header := fmt.Sprintf("%s  %s", project.Name, ui.ProgressBar(task.ProjectProgress(data, project.ID), progressBarWidth))
	if project.IsArchived {
		header += " " + ui.Muted("(archived)")
	}
	return header + "\n\n"
}
