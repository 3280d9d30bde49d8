package main

import (
	"fmt"
	"strings"

	"github.com/amonks/todoapp/internal/editor"
	"github.com/amonks/todoapp/internal/listflags"
	internalstrings "github.com/amonks/todoapp/internal/strings"
	"github.com/amonks/todoapp/task"
	"github.com/spf13/cobra"
)

var taskCmd = &cobra.Command{
	Use:     "task",
	Aliases: []string{"tasks", "t"},
	Short:   "Manage tasks and subtasks",
}

// task add
var taskAddCmd = &cobra.Command{
	Use:   "add [content]...",
	Short: "Create a task",
	Long: `Create a task.

Root tasks need --project. Subtasks take --parent and always live in their
parent's project.

When running interactively without content, opens $EDITOR on a TOML form.
Use --no-edit to skip the editor, or --edit to force it. Pass "-" as the
content to read it from stdin.`,
	RunE: runTaskAdd,
}

var (
	taskAddProject  string
	taskAddParent   string
	taskAddPriority task.Priority
	taskAddDue      string
	taskAddRepeat   string
	taskAddTags     []string
	taskAddEdit     bool
	taskAddNoEdit   bool
)

// task list
var taskListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks",
	Args:    cobra.NoArgs,
	RunE:    runTaskList,
}

var (
	taskListProject string
	taskListStatus  string
	taskListTag     string
	taskListAll     bool
	taskListJSON    bool
)

// task show
var taskShowCmd = &cobra.Command{
	Use:   "show <id>...",
	Short: "Show detailed information about tasks",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTaskShow,
}

var taskShowJSON bool

// task edit
var taskEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Update a task",
	Long: `Update a task.

When running interactively and no update flags are given, opens $EDITOR
on a TOML form. Use --no-edit to skip the editor, or --edit to force it.`,
	Args: cobra.ExactArgs(1),
	RunE: runTaskEdit,
}

var (
	taskEditContent  string
	taskEditPriority task.Priority
	taskEditDue      string
	taskEditRepeat   string
	taskEditTags     []string
	taskEditEdit     bool
	taskEditNoEdit   bool
)

// task start / done / reopen / cycle
var taskStartCmd = &cobra.Command{
	Use:   "start <id>...",
	Short: "Mark tasks as in progress",
	Args:  cobra.MinimumNArgs(1),
	RunE:  statusRunner(task.StatusInProgress, "Started"),
}

var taskDoneCmd = &cobra.Command{
	Use:   "done <id>...",
	Short: "Mark tasks as done",
	Args:  cobra.MinimumNArgs(1),
	RunE:  statusRunner(task.StatusDone, "Completed"),
}

var taskReopenCmd = &cobra.Command{
	Use:   "reopen <id>...",
	Short: "Mark tasks as todo again",
	Args:  cobra.MinimumNArgs(1),
	RunE:  statusRunner(task.StatusTodo, "Reopened"),
}

var taskCycleCmd = &cobra.Command{
	Use:   "cycle <id>...",
	Short: "Advance tasks from todo to in progress to done and back",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTaskCycle,
}

// task delete
var taskDeleteCmd = &cobra.Command{
	Use:   "delete <id>...",
	Short: "Delete tasks and their direct subtasks",
	Long: `Delete tasks and their direct subtasks.

Deeper descendants are kept unless --subtree is given or tasks.cascade is
set to "subtree" in the configuration.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTaskDelete,
}

var taskDeleteSubtree bool

// task move
var taskMoveCmd = &cobra.Command{
	Use:   "move <id> <position>",
	Short: "Move a task to a 1-based position among its siblings",
	Args:  cobra.ExactArgs(2),
	RunE:  runTaskMove,
}

// task tag / untag
var taskTagCmd = &cobra.Command{
	Use:   "tag <id> <tag>...",
	Short: "Add tags to a task",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runTaskTag,
}

var taskUntagCmd = &cobra.Command{
	Use:   "untag <id> <tag>...",
	Short: "Remove tags from a task",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runTaskUntag,
}

func init() {
	rootCmd.AddCommand(taskCmd)
	taskCmd.AddCommand(taskAddCmd, taskListCmd, taskShowCmd, taskEditCmd, taskStartCmd, taskDoneCmd,
		taskReopenCmd, taskCycleCmd, taskDeleteCmd, taskMoveCmd, taskTagCmd, taskUntagCmd)
	addTaskFlagAliases(taskAddCmd, taskEditCmd, taskListCmd)

	// task add flags
	taskAddCmd.Flags().StringVarP(&taskAddProject, "project", "p", "", "Project name or ID")
	taskAddCmd.Flags().StringVar(&taskAddParent, "parent", "", "Parent task ID for a subtask")
	taskAddCmd.Flags().Var(newPriorityValue(&taskAddPriority, task.PriorityMedium), "priority", "Priority (High, Medium, Low)")
	taskAddCmd.Flags().Var(dateValue{&taskAddDue}, "due", "Due date (YYYY-MM-DD, today, tomorrow)")
	taskAddCmd.Flags().Var(repeatValue{&taskAddRepeat}, "repeat", "Repeat schedule (daily, weekdays)")
	taskAddCmd.Flags().StringArrayVarP(&taskAddTags, "tag", "t", nil, "Tag name or ID (repeatable)")
	taskAddCmd.Flags().BoolVarP(&taskAddEdit, "edit", "e", false, "Open $EDITOR (default if interactive)")
	taskAddCmd.Flags().BoolVar(&taskAddNoEdit, "no-edit", false, "Do not open $EDITOR")

	// task list flags
	taskListCmd.Flags().StringVarP(&taskListProject, "project", "p", "", "Filter by project name or ID")
	taskListCmd.Flags().StringVar(&taskListStatus, "status", "", "Filter by status (Todo, InProgress, Done)")
	taskListCmd.Flags().StringVarP(&taskListTag, "tag", "t", "", "Filter by tag name or ID")
	listflags.AddAllFlag(taskListCmd, &taskListAll, "Include done tasks")
	listflags.AddJSONFlag(taskListCmd, &taskListJSON)

	// task show flags
	listflags.AddJSONFlag(taskShowCmd, &taskShowJSON)

	// task edit flags
	taskEditCmd.Flags().StringVarP(&taskEditContent, "content", "c", "", "New content (use '-' to read from stdin)")
	taskEditCmd.Flags().Var(newPriorityValue(&taskEditPriority, task.PriorityMedium), "priority", "New priority (High, Medium, Low)")
	taskEditCmd.Flags().Var(dateValue{&taskEditDue}, "due", "New due date (YYYY-MM-DD, today, tomorrow, none)")
	taskEditCmd.Flags().Var(repeatValue{&taskEditRepeat}, "repeat", "New repeat schedule (daily, weekdays, none)")
	taskEditCmd.Flags().StringArrayVarP(&taskEditTags, "tag", "t", nil, "Replace tags (repeatable)")
	taskEditCmd.Flags().BoolVarP(&taskEditEdit, "edit", "e", false, "Open $EDITOR (default if interactive)")
	taskEditCmd.Flags().BoolVar(&taskEditNoEdit, "no-edit", false, "Do not open $EDITOR")

	// task delete flags
	taskDeleteCmd.Flags().BoolVar(&taskDeleteSubtree, "subtree", false, "Delete all descendants")
}

func runTaskAdd(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	data := a.snapshot()
	today := a.today()

	content, err := resolveContentFromStdin(strings.Join(args, " "), cmd.InOrStdin())
	if err != nil {
		return err
	}

	input := task.TaskInput{
		Content:  content,
		Priority: taskAddPriority,
		DueDate:  resolveDate(taskAddDue, today),
		Repeat:   resolveRepeat(taskAddRepeat),
	}
	if taskAddProject != "" {
		if input.ProjectID, err = task.ResolveProjectID(data, taskAddProject); err != nil {
			return err
		}
	}
	if taskAddParent != "" {
		parentID, err := task.ResolveTaskID(data, taskAddParent)
		if err != nil {
			return err
		}
		input.ParentID = &parentID
	}
	if input.ProjectID == "" && input.ParentID == nil {
		return fmt.Errorf("--project or --parent is required")
	}

	tagRefs := taskAddTags
	if shouldUseEditor(len(args) > 0, taskAddEdit, taskAddNoEdit, editor.IsInteractive()) {
		form := editor.DefaultForm()
		form.Content = input.Content
		form.Priority = string(input.Priority)
		if input.DueDate != nil {
			form.Due = input.DueDate.String()
		}
		if input.Repeat != nil {
			form.Repeat = string(input.Repeat.Type)
		}
		form.Tags = append(form.Tags, tagRefs...)

		parsed, err := editor.EditTask(form)
		if err != nil {
			return err
		}
		input.Content = parsed.Content
		input.Priority = parsed.Priority
		input.DueDate = parsed.Due
		input.Repeat = parsed.Repeat
		tagRefs = parsed.Tags
	} else if len(args) == 0 {
		return fmt.Errorf("content is required (use --edit to open editor)")
	}

	if input.Tags, err = resolveTagIDs(data, tagRefs); err != nil {
		return err
	}

	var created task.Task
	data, err = a.update(func(data task.AppData) (task.AppData, error) {
		var err error
		data, created, err = task.AddTask(data, input, now())
		return data, err
	})
	if err != nil {
		return err
	}

	highlight := idHighlighter(data)
	fmt.Fprintf(cmd.OutOrStdout(), "Created task %s: %s\n", highlight(created.ID), internalstrings.FirstLine(created.Content))
	return nil
}

func runTaskList(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	data := a.snapshot()

	filter := func(task.Task) bool { return true }
	if taskListProject != "" {
		projectID, err := task.ResolveProjectID(data, taskListProject)
		if err != nil {
			return err
		}
		prev := filter
		filter = func(t task.Task) bool { return prev(t) && t.ProjectID == projectID }
	}
	var status task.Status
	if taskListStatus != "" {
		if status, err = task.ParseStatus(taskListStatus); err != nil {
			return err
		}
		prev := filter
		filter = func(t task.Task) bool { return prev(t) && t.Status == status }
	} else if !taskListAll {
		prev := filter
		filter = func(t task.Task) bool { return prev(t) && t.Status != task.StatusDone }
	}
	if taskListTag != "" {
		tagIDs, err := resolveTagIDs(data, []string{taskListTag})
		if err != nil {
			return err
		}
		prev := filter
		filter = func(t task.Task) bool { return prev(t) && len(tagIDs) == 1 && t.HasTag(tagIDs[0]) }
	}

	var tasks []task.Task
	hasDone := false
	for _, project := range append(task.ActiveProjects(data), task.ArchivedProjects(data)...) {
		for _, t := range projectTasksInTreeOrder(data, project.ID) {
			if t.Status == task.StatusDone {
				hasDone = true
			}
			if filter(t) {
				tasks = append(tasks, t)
			}
		}
	}

	if taskListJSON {
		if tasks == nil {
			tasks = []task.Task{}
		}
		return encodeJSON(cmd.OutOrStdout(), tasks)
	}

	if len(tasks) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), taskEmptyListMessage(len(data.Tasks), string(status), taskListAll, hasDone))
		return nil
	}
	fmt.Fprint(cmd.OutOrStdout(), formatTaskTable(data, tasks, a.today(), idHighlighter(data)))
	return nil
}

// projectTasksInTreeOrder returns a project's tasks depth first, each sibling
// group in display order. Tasks whose parent no longer exists follow the
// tree in array order.
func projectTasksInTreeOrder(data task.AppData, projectID string) []task.Task {
	var ordered []task.Task
	seen := map[string]bool{}
	var walk func([]task.Task)
	walk = func(group []task.Task) {
		for _, t := range group {
			if seen[t.ID] {
				continue
			}
			seen[t.ID] = true
			ordered = append(ordered, t)
			walk(task.Children(data, t.ID))
		}
	}
	walk(task.RootTasks(data, projectID))
	for _, t := range data.Tasks {
		if t.ProjectID == projectID && !seen[t.ID] {
			seen[t.ID] = true
			ordered = append(ordered, t)
		}
	}
	return ordered
}

func runTaskShow(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	data := a.snapshot()

	ids, err := resolveTaskIDs(data, args)
	if err != nil {
		return err
	}
	tasks := make([]task.Task, 0, len(ids))
	for _, id := range ids {
		t, _ := task.FindTask(data, id)
		tasks = append(tasks, t)
	}

	if taskShowJSON {
		return encodeJSON(cmd.OutOrStdout(), tasks)
	}

	highlight := idHighlighter(data)
	for i, t := range tasks {
		if i > 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "\n---")
		}
		printTaskDetail(cmd.OutOrStdout(), data, t, a.today(), highlight)
	}
	return nil
}

func runTaskEdit(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	data := a.snapshot()
	today := a.today()

	id, err := task.ResolveTaskID(data, args[0])
	if err != nil {
		return err
	}
	existing, _ := task.FindTask(data, id)

	if cmd.Flags().Changed("content") {
		if taskEditContent, err = resolveContentFromStdin(taskEditContent, cmd.InOrStdin()); err != nil {
			return err
		}
	}

	hasFlags := hasChangedFlags(cmd, "content", "priority", "due", "repeat", "tag")
	var patch task.TaskPatch
	var status *task.Status

	if shouldUseEditor(hasFlags, taskEditEdit, taskEditNoEdit, editor.IsInteractive()) {
		form := editor.FormFromTask(existing, tagNames(data, existing))
		if cmd.Flags().Changed("content") {
			form.Content = taskEditContent
		}
		if cmd.Flags().Changed("priority") {
			form.Priority = string(taskEditPriority)
		}
		if cmd.Flags().Changed("due") {
			form.Due = ""
			if due := resolveDate(taskEditDue, today); due != nil {
				form.Due = due.String()
			}
		}
		if cmd.Flags().Changed("repeat") {
			form.Repeat = ""
			if repeat := resolveRepeat(taskEditRepeat); repeat != nil {
				form.Repeat = string(repeat.Type)
			}
		}
		if cmd.Flags().Changed("tag") {
			form.Tags = taskEditTags
		}

		parsed, err := editor.EditTask(form)
		if err != nil {
			return err
		}
		tagIDs, err := resolveTagIDs(data, parsed.Tags)
		if err != nil {
			return err
		}
		patch = parsed.Patch(tagIDs)
		status = parsed.Status
	} else {
		if !hasFlags {
			return fmt.Errorf("at least one update flag is required (use --edit to open editor)")
		}
		if cmd.Flags().Changed("content") {
			patch.Content = &taskEditContent
		}
		if cmd.Flags().Changed("priority") {
			patch.Priority = &taskEditPriority
		}
		if cmd.Flags().Changed("due") {
			patch.DueDate = resolveDate(taskEditDue, today)
			patch.ClearDueDate = patch.DueDate == nil
		}
		if cmd.Flags().Changed("repeat") {
			patch.Repeat = resolveRepeat(taskEditRepeat)
			patch.ClearRepeat = patch.Repeat == nil
		}
		if cmd.Flags().Changed("tag") {
			tagIDs, err := resolveTagIDs(data, taskEditTags)
			if err != nil {
				return err
			}
			patch.Tags = &tagIDs
		}
	}

	data, err = a.update(func(data task.AppData) (task.AppData, error) {
		data, err := task.UpdateTask(data, id, patch)
		if err != nil || status == nil {
			return data, err
		}
		return task.SetStatus(data, id, *status, today)
	})
	if err != nil {
		return err
	}

	updated, _ := task.FindTask(data, id)
	fmt.Fprintf(cmd.OutOrStdout(), "Updated %s: %s\n", idHighlighter(data)(id), internalstrings.FirstLine(updated.Content))
	return nil
}

func statusRunner(status task.Status, verb string) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		ids, err := resolveTaskIDs(a.snapshot(), args)
		if err != nil {
			return err
		}

		data, err := a.update(func(data task.AppData) (task.AppData, error) {
			for _, id := range ids {
				if data, err = task.SetStatus(data, id, status, a.today()); err != nil {
					return data, err
				}
			}
			return data, nil
		})
		if err != nil {
			return err
		}

		highlight := idHighlighter(data)
		for _, id := range ids {
			t, _ := task.FindTask(data, id)
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %s\n", verb, highlight(id), internalstrings.FirstLine(t.Content))
		}
		return nil
	}
}

func runTaskCycle(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	ids, err := resolveTaskIDs(a.snapshot(), args)
	if err != nil {
		return err
	}

	statuses := make([]task.Status, len(ids))
	data, err := a.update(func(data task.AppData) (task.AppData, error) {
		for i, id := range ids {
			if data, statuses[i], err = task.CycleStatus(data, id, a.today()); err != nil {
				return data, err
			}
		}
		return data, nil
	})
	if err != nil {
		return err
	}

	highlight := idHighlighter(data)
	for i, id := range ids {
		t, _ := task.FindTask(data, id)
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %s\n", statuses[i], highlight(id), internalstrings.FirstLine(t.Content))
	}
	return nil
}

func runTaskDelete(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	before := a.snapshot()
	ids, err := resolveTaskIDs(before, args)
	if err != nil {
		return err
	}
	mode, err := a.cascadeMode(taskDeleteSubtree)
	if err != nil {
		return err
	}

	highlight := idHighlighter(before)
	data, err := a.update(func(data task.AppData) (task.AppData, error) {
		for _, id := range ids {
			if _, ok := task.FindTask(data, id); !ok {
				// Already removed as a subtask of an earlier argument.
				continue
			}
			if data, err = task.DeleteTask(data, id, mode); err != nil {
				return data, err
			}
		}
		return data, nil
	})
	if err != nil {
		return err
	}

	removed := len(before.Tasks) - len(data.Tasks)
	a.logger.Info("deleted tasks", "requested", len(ids), "removed", removed, "mode", string(mode))
	for _, id := range ids {
		t, _ := task.FindTask(before, id)
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s: %s\n", highlight(id), internalstrings.FirstLine(t.Content))
	}
	if extra := removed - len(ids); extra > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "Also deleted %s\n", pluralize(extra, "subtask"))
	}
	return nil
}

func runTaskMove(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	data := a.snapshot()

	id, err := task.ResolveTaskID(data, args[0])
	if err != nil {
		return err
	}
	position, err := parsePosition(args[1])
	if err != nil {
		return err
	}
	moved, _ := task.FindTask(data, id)

	siblings := task.RootTasks(data, moved.ProjectID)
	if parentID, ok := moved.Parent(); ok {
		siblings = task.Children(data, parentID)
	}
	source := -1
	for i, t := range siblings {
		if t.ID == id {
			source = i
		}
	}

	req := task.ReorderRequest{
		Kind:             task.ReorderTask,
		MovedID:          id,
		SourceIndex:      source,
		DestinationIndex: position - 1,
		Group:            task.GroupOf(moved),
	}
	if err := task.CheckReorder(data, req); err != nil {
		return err
	}
	data, _ = a.store.Reorder(req)
	if err := a.store.SaveErr(); err != nil {
		return fmt.Errorf("changes not saved: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Moved %s to position %d\n", idHighlighter(data)(id), position)
	return nil
}

func runTaskTag(cmd *cobra.Command, args []string) error {
	return retagTask(cmd, args, "Tagged", task.TagTask)
}

func runTaskUntag(cmd *cobra.Command, args []string) error {
	return retagTask(cmd, args, "Untagged", task.UntagTask)
}

func retagTask(cmd *cobra.Command, args []string, verb string, fn func(task.AppData, string, string) (task.AppData, error)) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	data := a.snapshot()

	id, err := task.ResolveTaskID(data, args[0])
	if err != nil {
		return err
	}
	tagIDs, err := resolveTagIDs(data, args[1:])
	if err != nil {
		return err
	}

	data, err = a.update(func(data task.AppData) (task.AppData, error) {
		for _, tagID := range tagIDs {
			if data, err = fn(data, id, tagID); err != nil {
				return data, err
			}
		}
		return data, nil
	})
	if err != nil {
		return err
	}

	t, _ := task.FindTask(data, id)
	tags := task.ResolveTags(data, t)
	names := make([]string, len(tags))
	for i, tag := range tags {
		names[i] = "#" + tag.Name
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %s\n", verb, idHighlighter(data)(id), strings.Join(names, " "))
	return nil
}
