package main

import (
	"fmt"

	internalstrings "github.com/amonks/todoapp/internal/strings"
	"github.com/amonks/todoapp/internal/ui"
	"github.com/amonks/todoapp/task"
	"github.com/spf13/cobra"
)

var progressCmd = &cobra.Command{
	Use:   "progress [project]",
	Short: "Show completion progress of projects and their top-level tasks",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runProgress,
}

func init() {
	rootCmd.AddCommand(progressCmd)
}

func runProgress(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	data := a.snapshot()
	out := cmd.OutOrStdout()

	if len(args) == 0 {
		projects := task.ActiveProjects(data)
		if len(projects) == 0 {
			fmt.Fprintln(out, projectEmptyListMessage(len(data.Projects), false))
			return nil
		}
		builder := ui.NewTableBuilder([]string{"PROJECT", "PROGRESS"}, len(projects))
		for _, p := range projects {
			builder.AddRow(p.Name, ui.ProgressBar(task.ProjectProgress(data, p.ID), progressBarWidth))
		}
		fmt.Fprint(out, builder.String())
		return nil
	}

	id, err := task.ResolveProjectID(data, args[0])
	if err != nil {
		return err
	}
	project, _ := task.FindProject(data, id)
	fmt.Fprint(out, formatProjectHeader(data, project))

	roots := task.RootTasks(data, id)
	if len(roots) == 0 {
		fmt.Fprintln(out, "No tasks yet.")
		return nil
	}
	highlight := idHighlighter(data)
	builder := ui.NewTableBuilder([]string{"ID", "TASK", "PROGRESS"}, len(roots))
	for _, t := range roots {
		builder.AddRow(
			highlight(t.ID),
			ui.TruncateTableCell(internalstrings.FirstLine(t.Content)),
			ui.ProgressBar(percent(task.TaskProgress(data, t.ID)), progressBarWidth),
		)
	}
	fmt.Fprint(out, builder.String())
	return nil
}
