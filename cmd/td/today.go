package main

import (
	"fmt"
	"strings"

	"github.com/amonks/todoapp/internal/listflags"
	internalstrings "github.com/amonks/todoapp/internal/strings"
	"github.com/amonks/todoapp/internal/ui"
	"github.com/amonks/todoapp/task"
	"github.com/spf13/cobra"
)

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show tasks due today, overdue tasks and today's habits",
	Args:  cobra.NoArgs,
	RunE:  runToday,
}

var todayJSON bool

// todayWrapWidth is the column at which task text wraps in the today view.
const todayWrapWidth = 72

func init() {
	rootCmd.AddCommand(todayCmd)
	listflags.AddJSONFlag(todayCmd, &todayJSON)
}

// todaySectionJSON is one project group of the today view.
type todaySectionJSON struct {
	Project task.Project `json:"project"`
	Tasks   []task.Task  `json:"tasks"`
}

func runToday(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	data := a.snapshot()
	today := a.today()
	sections := task.TodayTasks(data, today)

	if todayJSON {
		items := make([]todaySectionJSON, 0, len(sections))
		for _, section := range sections {
			items = append(items, todaySectionJSON{Project: section.Project, Tasks: section.Tasks})
		}
		return encodeJSON(cmd.OutOrStdout(), items)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Today, %s %s\n", today.Weekday(), today)
	if len(sections) == 0 {
		fmt.Fprintln(out, "\nNothing due today.")
		return nil
	}

	highlight := idHighlighter(data)
	for _, section := range sections {
		fmt.Fprintf(out, "\n%s\n", section.Project.Name)
		for _, t := range section.Tasks {
			fmt.Fprint(out, formatTodayLine(data, t, today, highlight))
		}
	}
	return nil
}

func formatTodayLine(data task.AppData, t task.Task, today task.Date, highlight func(string) string) string {
	text := internalstrings.FirstLine(t.Content)
	if ancestors := task.Ancestors(data, t.ID); len(ancestors) > 0 {
		text = internalstrings.FirstLine(ancestors[0].Content) + " > " + text
	}

	lines := strings.Split(ui.Wrap(text, todayWrapWidth), "\n")
	var builder strings.Builder
	fmt.Fprintf(&builder, "  %s %s (%s)%s\n", ui.StatusIcon(t.Status), lines[0], highlight(t.ID), taskAnnotations(data, t, today))
	for _, line := range lines[1:] {
		fmt.Fprintf(&builder, "      %s\n", line)
	}
	return builder.String()
}
