package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/amonks/todoapp/task"
)

// resolveContentFromStdin replaces "-" with the contents of reader.
func resolveContentFromStdin(content string, reader io.Reader) (string, error) {
	if content != "-" {
		return content, nil
	}

	input, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("read content from stdin: %w", err)
	}

	return strings.TrimRight(string(input), "\r\n"), nil
}

// resolveTaskIDs expands every task reference in refs.
func resolveTaskIDs(data task.AppData, refs []string) ([]string, error) {
	ids := make([]string, 0, len(refs))
	for _, ref := range refs {
		id, err := task.ResolveTaskID(data, ref)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// resolveTagIDs expands tag names or ID prefixes.
func resolveTagIDs(data task.AppData, refs []string) ([]string, error) {
	ids := make([]string, 0, len(refs))
	for _, ref := range refs {
		ref = strings.TrimPrefix(strings.TrimSpace(ref), "#")
		if ref == "" {
			continue
		}
		id, err := task.ResolveTagID(data, ref)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// tagNames returns the names of a task's resolvable tags.
func tagNames(data task.AppData, t task.Task) []string {
	tags := task.ResolveTags(data, t)
	names := make([]string, len(tags))
	for i, tag := range tags {
		names[i] = tag.Name
	}
	return names
}
