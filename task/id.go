package task

import (
	"fmt"
	"strings"

	"github.com/amonks/todoapp/internal/ids"
)

// ResolveTaskID expands a task ID prefix to the full ID.
func ResolveTaskID(data AppData, prefix string) (string, error) {
	all := make([]string, len(data.Tasks))
	for i, t := range data.Tasks {
		all[i] = t.ID
	}
	return resolveID(all, prefix, ErrTaskNotFound)
}

// ResolveProjectID expands a project ID prefix to the full ID. An exact
// case-insensitive name match is accepted too.
func ResolveProjectID(data AppData, ref string) (string, error) {
	all := make([]string, len(data.Projects))
	for i, p := range data.Projects {
		if strings.EqualFold(p.Name, strings.TrimSpace(ref)) {
			return p.ID, nil
		}
		all[i] = p.ID
	}
	return resolveID(all, ref, ErrProjectNotFound)
}

// ResolveTagID expands a tag ID prefix to the full ID. An exact
// case-insensitive name match is accepted too.
func ResolveTagID(data AppData, ref string) (string, error) {
	all := make([]string, len(data.Tags))
	for i, tag := range data.Tags {
		if strings.EqualFold(tag.Name, strings.TrimSpace(ref)) {
			return tag.ID, nil
		}
		all[i] = tag.ID
	}
	return resolveID(all, ref, ErrTagNotFound)
}

// IDPrefixLengths returns the shortest unique prefix length of every task,
// project and tag ID, for highlighting in listings.
func IDPrefixLengths(data AppData) map[string]int {
	all := make([]string, 0, len(data.Tasks)+len(data.Projects)+len(data.Tags))
	for _, t := range data.Tasks {
		all = append(all, t.ID)
	}
	for _, p := range data.Projects {
		all = append(all, p.ID)
	}
	for _, tag := range data.Tags {
		all = append(all, tag.ID)
	}
	return ids.UniquePrefixLengths(all)
}

func resolveID(all []string, prefix string, notFound error) (string, error) {
	match, found, ambiguous := ids.MatchPrefix(all, prefix)
	if ambiguous {
		return "", fmt.Errorf("%w: %s", ErrAmbiguousIDPrefix, prefix)
	}
	if !found {
		return "", fmt.Errorf("%w: %s", notFound, prefix)
	}
	return match, nil
}
