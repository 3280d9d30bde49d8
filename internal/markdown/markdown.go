// Package markdown renders task text for the terminal.
package markdown

import (
	"strings"
	"sync"

	internalstrings "github.com/amonks/todoapp/internal/strings"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
	"github.com/muesli/reflow/indent"
)

// Style selects a glamour color scheme.
type Style string

const (
	StyleASCII Style = "ascii"
	StyleDark  Style = "dark"
	StyleLight Style = "light"
)

// StyleFor picks the scheme for a display theme. Without color everything
// renders as ASCII.
func StyleFor(theme string, color bool) Style {
	if !color {
		return StyleASCII
	}
	if theme == "light" {
		return StyleLight
	}
	return StyleDark
}

type renderer interface {
	Render(string) (string, error)
}

type rendererKey struct {
	style Style
	width int
}

var (
	rendererMu sync.Mutex
	renderers  = map[rendererKey]renderer{}
)

// Render formats markdown text wrapped to width and indented by indent
// spaces. If rendering fails the normalized input is returned as is.
func Render(style Style, width, indentBy int, input string) string {
	value := internalstrings.TrimTrailingNewlines(internalstrings.NormalizeNewlines(input))
	if strings.TrimSpace(value) == "" {
		return ""
	}
	renderWidth := max(width-max(indentBy, 0), 1)

	rendered := safeRender(markdownRenderer(style, renderWidth), value)
	rendered = strings.TrimLeft(internalstrings.TrimTrailingNewlines(rendered), "\n")
	if indentBy <= 0 {
		return rendered
	}
	return indent.String(rendered, uint(indentBy))
}

func safeRender(r renderer, value string) (out string) {
	if r == nil {
		return value
	}
	defer func() {
		if recover() != nil {
			out = value
		}
	}()
	formatted, err := r.Render(value)
	if err != nil {
		return value
	}
	return formatted
}

func markdownRenderer(style Style, width int) renderer {
	rendererMu.Lock()
	defer rendererMu.Unlock()

	key := rendererKey{style: style, width: width}
	if cached, ok := renderers[key]; ok {
		return cached
	}

	var config ansi.StyleConfig
	switch style {
	case StyleDark:
		config = styles.DarkStyleConfig
	case StyleLight:
		config = styles.LightStyleConfig
	default:
		config = styles.ASCIIStyleConfig
		config.Item.BlockPrefix = "- "
	}
	// Task text is rendered inline; drop glamour's document margin.
	zero := uint(0)
	config.Document.Margin = &zero

	created, err := glamour.NewTermRenderer(
		glamour.WithStyles(config),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}
	renderers[key] = created
	return created
}
