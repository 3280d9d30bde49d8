package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/amonks/todoapp/internal/listflags"
	internalstrings "github.com/amonks/todoapp/internal/strings"
	"github.com/amonks/todoapp/internal/ui"
	"github.com/amonks/todoapp/task"
	"github.com/spf13/cobra"
)

var tagCmd = &cobra.Command{
	Use:   "tag",
	Short: "Manage tags",
}

var tagAddCmd = &cobra.Command{
	Use:   "add <name>...",
	Short: "Create a tag",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTagAdd,
}

var tagAddColor string

var tagListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tags",
	Args:    cobra.NoArgs,
	RunE:    runTagList,
}

var tagListJSON bool

var tagEditCmd = &cobra.Command{
	Use:   "edit <tag>",
	Short: "Rename or recolor a tag",
	Args:  cobra.ExactArgs(1),
	RunE:  runTagEdit,
}

var (
	tagEditName  string
	tagEditColor string
)

var tagDeleteCmd = &cobra.Command{
	Use:   "delete <tag>",
	Short: "Delete a tag and remove it from every task",
	Args:  cobra.ExactArgs(1),
	RunE:  runTagDelete,
}

func init() {
	rootCmd.AddCommand(tagCmd)
	tagCmd.AddCommand(tagAddCmd, tagListCmd, tagEditCmd, tagDeleteCmd)

	tagAddCmd.Flags().StringVar(&tagAddColor, "color", task.DefaultTagColor, "Display color")
	listflags.AddJSONFlag(tagListCmd, &tagListJSON)
	tagEditCmd.Flags().StringVar(&tagEditName, "name", "", "New name")
	tagEditCmd.Flags().StringVar(&tagEditColor, "color", "", "New color")
}

func runTagAdd(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}

	name := internalstrings.NormalizeWhitespace(strings.TrimPrefix(strings.Join(args, " "), "#"))
	for _, existing := range a.snapshot().Tags {
		if internalstrings.NormalizeLowerTrimSpace(existing.Name) == internalstrings.NormalizeLowerTrimSpace(name) {
			return fmt.Errorf("tag %q already exists", existing.Name)
		}
	}

	var created task.Tag
	data, err := a.update(func(data task.AppData) (task.AppData, error) {
		var err error
		data, created, err = task.AddTag(data, name, tagAddColor)
		return data, err
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created tag %s: %s\n", idHighlighter(data)(created.ID), ui.TagLabel(created))
	return nil
}

func runTagList(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	data := a.snapshot()

	tags := append([]task.Tag{}, data.Tags...)
	sort.SliceStable(tags, func(i, j int) bool {
		return internalstrings.NormalizeLowerTrimSpace(tags[i].Name) < internalstrings.NormalizeLowerTrimSpace(tags[j].Name)
	})

	if tagListJSON {
		return encodeJSON(cmd.OutOrStdout(), tags)
	}
	if len(tags) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No tags found.")
		return nil
	}

	counts := map[string]int{}
	for _, t := range data.Tasks {
		for _, tag := range task.ResolveTags(data, t) {
			counts[tag.ID]++
		}
	}

	highlight := idHighlighter(data)
	builder := ui.NewTableBuilder([]string{"ID", "TAG", "COLOR", "TASKS"}, len(tags))
	for _, tag := range tags {
		builder.AddRow(highlight(tag.ID), ui.TagLabel(tag), tag.Color, strconv.Itoa(counts[tag.ID]))
	}
	fmt.Fprint(cmd.OutOrStdout(), builder.String())
	return nil
}

func runTagEdit(cmd *cobra.Command, args []string) error {
	if !hasChangedFlags(cmd, "name", "color") {
		return fmt.Errorf("at least one of --name or --color is required")
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	id, err := task.ResolveTagID(a.snapshot(), args[0])
	if err != nil {
		return err
	}

	var patch task.TagPatch
	if cmd.Flags().Changed("name") {
		name := internalstrings.NormalizeWhitespace(strings.TrimPrefix(tagEditName, "#"))
		patch.Name = &name
	}
	if cmd.Flags().Changed("color") {
		patch.Color = &tagEditColor
	}

	data, err := a.update(func(data task.AppData) (task.AppData, error) {
		return task.UpdateTag(data, id, patch)
	})
	if err != nil {
		return err
	}

	tag, _ := task.FindTag(data, id)
	fmt.Fprintf(cmd.OutOrStdout(), "Updated tag %s: %s\n", idHighlighter(data)(id), ui.TagLabel(tag))
	return nil
}

func runTagDelete(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	before := a.snapshot()
	id, err := task.ResolveTagID(before, args[0])
	if err != nil {
		return err
	}
	tag, _ := task.FindTag(before, id)

	untagged := 0
	for _, t := range before.Tasks {
		if t.HasTag(id) {
			untagged++
		}
	}

	if _, err := a.update(func(data task.AppData) (task.AppData, error) {
		return task.DeleteTag(data, id)
	}); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Deleted tag #%s (removed from %s)\n", tag.Name, pluralize(untagged, "task"))
	return nil
}
