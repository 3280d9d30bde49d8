package main

import (
	"fmt"
	"strings"
)

func taskEmptyListMessage(total int, status string, includeAll bool, hasDone bool) string {
	if total == 0 {
		return "No tasks found."
	}

	status = strings.TrimSpace(status)
	if status != "" {
		return fmt.Sprintf("No tasks found with status %s.", status)
	}

	if !includeAll && hasDone {
		return "No open tasks found. Use --all to include done tasks."
	}

	return "No tasks found."
}

func projectEmptyListMessage(total int, includeAll bool) string {
	if total == 0 {
		return "No projects found."
	}

	if !includeAll {
		return "No active projects found. Use --all to include archived projects."
	}

	return "No projects found."
}
