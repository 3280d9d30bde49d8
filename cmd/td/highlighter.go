package main

import (
	"strings"

	"github.com/amonks/todoapp/internal/ui"
	"github.com/amonks/todoapp/task"
)

// shortIDLength is the minimum number of ID characters shown in listings.
const shortIDLength = 8

// idHighlighter returns a function that shortens an ID and highlights its
// unique prefix.
func idHighlighter(data task.AppData) func(string) string {
	prefixLengths := task.IDPrefixLengths(data)
	return logHighlighter(prefixLengths, func(id string, prefixLen int) string {
		return ui.HighlightID(ui.ShortID(id, prefixLen, shortIDLength), prefixLen)
	})
}

func logHighlighter(prefixLengths map[string]int, highlight func(string, int) string) func(string) string {
	if prefixLengths == nil {
		prefixLengths = map[string]int{}
	}
	return func(id string) string {
		if id == "" {
			return id
		}
		prefixLen, ok := prefixLengths[strings.ToLower(id)]
		if !ok {
			return highlight(id, 0)
		}
		return highlight(id, prefixLen)
	}
}
