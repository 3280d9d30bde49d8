package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/amonks/todoapp/internal/listflags"
	internalstrings "github.com/amonks/todoapp/internal/strings"
	"github.com/amonks/todoapp/task"
	"github.com/spf13/cobra"
)

var projectCmd = &cobra.Command{
	Use:     "project",
	Aliases: []string{"projects", "p"},
	Short:   "Manage projects",
}

var projectAddCmd = &cobra.Command{
	Use:   "add <name>...",
	Short: "Create a project",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runProjectAdd,
}

var projectListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List projects with their progress",
	Args:    cobra.NoArgs,
	RunE:    runProjectList,
}

var (
	projectListAll  bool
	projectListJSON bool
)

var projectShowCmd = &cobra.Command{
	Use:   "show <project>",
	Short: "Show a project's task tree",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectShow,
}

var projectShowAll bool

var projectRenameCmd = &cobra.Command{
	Use:   "rename <project> <name>...",
	Short: "Rename a project",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runProjectRename,
}

var projectArchiveCmd = &cobra.Command{
	Use:   "archive <project>",
	Short: "Archive a project",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectArchive,
}

var projectUnarchiveCmd = &cobra.Command{
	Use:   "unarchive <project>",
	Short: "Restore an archived project to the end of the list",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectUnarchive,
}

var projectDeleteCmd = &cobra.Command{
	Use:   "delete <project>",
	Short: "Delete a project and all of its tasks",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectDelete,
}

var projectDeleteYes bool

var projectMoveCmd = &cobra.Command{
	Use:   "move <project> <position>",
	Short: "Move a project to a 1-based position among active projects",
	Args:  cobra.ExactArgs(2),
	RunE:  runProjectMove,
}

func init() {
	rootCmd.AddCommand(projectCmd)
	projectCmd.AddCommand(projectAddCmd, projectListCmd, projectShowCmd, projectRenameCmd,
		projectArchiveCmd, projectUnarchiveCmd, projectDeleteCmd, projectMoveCmd)

	listflags.AddAllFlag(projectListCmd, &projectListAll, "Include archived projects")
	listflags.AddJSONFlag(projectListCmd, &projectListJSON)

	listflags.AddAllFlag(projectShowCmd, &projectShowAll, "Include done tasks")

	projectDeleteCmd.Flags().BoolVarP(&projectDeleteYes, "yes", "y", false, "Do not ask for confirmation")
}

// projectJSON is a project with its computed progress.
type projectJSON struct {
	task.Project
	Progress int `json:"progress"`
}

func runProjectAdd(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}

	var created task.Project
	data, err := a.update(func(data task.AppData) (task.AppData, error) {
		var err error
		data, created, err = task.AddProject(data, internalstrings.NormalizeWhitespace(strings.Join(args, " ")))
		return data, err
	})
	if err != nil {
		return err
	}

	highlight := idHighlighter(data)
	fmt.Fprintf(cmd.OutOrStdout(), "Created project %s: %s\n", highlight(created.ID), created.Name)
	return nil
}

func runProjectList(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	data := a.snapshot()

	projects := task.ActiveProjects(data)
	if projectListAll {
		projects = append(projects, task.ArchivedProjects(data)...)
	}

	if projectListJSON {
		items := make([]projectJSON, 0, len(projects))
		for _, p := range projects {
			items = append(items, projectJSON{Project: p, Progress: task.ProjectProgress(data, p.ID)})
		}
		return encodeJSON(cmd.OutOrStdout(), items)
	}

	if len(projects) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), projectEmptyListMessage(len(data.Projects), projectListAll))
		return nil
	}
	fmt.Fprint(cmd.OutOrStdout(), formatProjectTable(data, projects, idHighlighter(data)))
	return nil
}

func runProjectShow(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	data := a.snapshot()

	id, err := task.ResolveProjectID(data, args[0])
	if err != nil {
		return err
	}
	project, _ := task.FindProject(data, id)

	out := cmd.OutOrStdout()
	fmt.Fprint(out, formatProjectHeader(data, project))
	roots := task.RootTasks(data, id)
	if len(roots) == 0 {
		fmt.Fprintln(out, "No tasks yet.")
		return nil
	}
	fmt.Fprint(out, formatTaskTree(data, roots, a.today(), projectShowAll, idHighlighter(data)))
	return nil
}

func runProjectRename(cmd *cobra.Command, args []string) error {
	return mutateProject(cmd, args[0], "Renamed project", func(data task.AppData, id string) (task.AppData, error) {
		return task.RenameProject(data, id, internalstrings.NormalizeWhitespace(strings.Join(args[1:], " ")))
	})
}

func runProjectArchive(cmd *cobra.Command, args []string) error {
	return mutateProject(cmd, args[0], "Archived project", task.ArchiveProject)
}

func runProjectUnarchive(cmd *cobra.Command, args []string) error {
	return mutateProject(cmd, args[0], "Unarchived project", task.UnarchiveProject)
}

func runProjectDelete(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	before := a.snapshot()
	id, err := task.ResolveProjectID(before, args[0])
	if err != nil {
		return err
	}
	project, _ := task.FindProject(before, id)

	count := 0
	for _, t := range before.Tasks {
		if t.ProjectID == id {
			count++
		}
	}

	if count > 0 && !projectDeleteYes && stdinIsTerminal() {
		prompter := StdioPrompter{In: cmd.InOrStdin(), Out: cmd.OutOrStdout()}
		ok, err := prompter.Confirm(fmt.Sprintf("Delete project %q and its %d tasks?", project.Name, count))
		if err != nil {
			return fmt.Errorf("prompt: %w", err)
		}
		if !ok {
			return &exitError{code: 1, err: fmt.Errorf("aborted")}
		}
	}

	data, err := a.update(func(data task.AppData) (task.AppData, error) {
		return task.DeleteProject(data, id)
	})
	if err != nil {
		return err
	}

	a.logger.Info("deleted project", "id", id, "tasks", count)
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted project %s: %s (%s)\n", idHighlighter(data)(id), project.Name, pluralize(count, "task"))
	return nil
}

func runProjectMove(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	data := a.snapshot()

	id, err := task.ResolveProjectID(data, args[0])
	if err != nil {
		return err
	}
	position, err := parsePosition(args[1])
	if err != nil {
		return err
	}

	source := -1
	for i, p := range task.ActiveProjects(data) {
		if p.ID == id {
			source = i
		}
	}
	if source < 0 {
		return fmt.Errorf("project %s is archived", args[0])
	}

	req := task.ReorderRequest{
		Kind:             task.ReorderProject,
		MovedID:          id,
		SourceIndex:      source,
		DestinationIndex: position - 1,
		Group:            task.ProjectsGroup,
	}
	if err := task.CheckReorder(data, req); err != nil {
		return err
	}
	data, _ = a.store.Reorder(req)
	if err := a.store.SaveErr(); err != nil {
		return fmt.Errorf("changes not saved: %w", err)
	}

	project, _ := task.FindProject(data, id)
	fmt.Fprintf(cmd.OutOrStdout(), "Moved project %s to position %d\n", project.Name, position)
	return nil
}

// mutateProject resolves ref and applies fn to the project it names.
func mutateProject(cmd *cobra.Command, ref, verb string, fn func(task.AppData, string) (task.AppData, error)) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	id, err := task.ResolveProjectID(a.snapshot(), ref)
	if err != nil {
		return err
	}

	data, err := a.update(func(data task.AppData) (task.AppData, error) {
		return fn(data, id)
	})
	if err != nil {
		return err
	}

	project, _ := task.FindProject(data, id)
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %s\n", verb, idHighlighter(data)(id), project.Name)
	return nil
}

func parsePosition(value string) (int, error) {
	position, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || position < 1 {
		return 0, fmt.Errorf("invalid position %q: must be a positive number", value)
	}
	return position, nil
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
