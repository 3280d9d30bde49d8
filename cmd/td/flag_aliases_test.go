package main

import (
	"strings"
	"testing"

	"github.com/amonks/todoapp/task"
	"github.com/spf13/cobra"
)

func TestPriorityAliasUsesSingleFlag(t *testing.T) {
	var priority task.Priority
	cmd := &cobra.Command{Use: "example"}
	addTaskFlagAliases(cmd)
	cmd.Flags().Var(newPriorityValue(&priority, task.PriorityMedium), "priority", "Example priority")

	if err := cmd.Flags().Set("prio", "high"); err != nil {
		t.Fatalf("set prio alias: %v", err)
	}
	if priority != task.PriorityHigh {
		t.Fatalf("expected priority to be set via alias, got %q", priority)
	}
	if !cmd.Flags().Changed("priority") {
		t.Fatal("expected priority flag to be marked as changed")
	}

	usage := cmd.Flags().FlagUsages()
	if strings.Contains(usage, "--prio ") {
		t.Fatalf("did not expect alias to appear in usage, got %q", usage)
	}
}

func TestDueDateAlias(t *testing.T) {
	var due string
	cmd := &cobra.Command{Use: "example"}
	addTaskFlagAliases(cmd)
	cmd.Flags().Var(dateValue{&due}, "due", "Example due date")

	if err := cmd.Flags().Parse([]string{"--due-date", "2025-03-04"}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if due != "2025-03-04" {
		t.Fatalf("expected due date via alias, got %q", due)
	}
}
