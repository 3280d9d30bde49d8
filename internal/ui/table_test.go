package ui

import (
	"strings"
	"testing"

	"github.com/muesli/reflow/ansi"
)

func TestFormatTableAlignsColumns(t *testing.T) {
	builder := NewTableBuilder([]string{"ID", "NAME", "PROGRESS"}, 2)
	builder.AddRow("ab", "Inbox", "50%")
	builder.AddRow("c", "Work stuff", "0%")

	expected := "" +
		"ID  NAME        PROGRESS\n" +
		"ab  Inbox       50%\n" +
		"c   Work stuff  0%\n"
	if got := builder.String(); got != expected {
		t.Fatalf("unexpected table:\n%s\nwant:\n%s", got, expected)
	}
	if builder.Len() != 2 {
		t.Fatalf("expected 2 rows, got %d", builder.Len())
	}
}

func TestFormatTableIgnoresANSIWidth(t *testing.T) {
	styled := "\x1b[1m\x1b[36mab\x1b[0m"
	got := FormatTable([]string{"ID", "X"}, [][]string{{styled, "y"}})

	lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")
	if ansi.PrintableRuneWidth(lines[0]) != ansi.PrintableRuneWidth(lines[1]) {
		t.Fatalf("expected aligned columns, got %q", got)
	}
}

func TestTruncateTableCell(t *testing.T) {
	if got := TruncateTableCell("Hello\nWorld\r\nAgain\tTab"); got != "Hello World Again Tab" {
		t.Fatalf("expected line breaks to normalize, got %q", got)
	}

	unicode := strings.Repeat("a", tableCellMaxWidth-1) + "é"
	if got := TruncateTableCell(unicode); got != unicode {
		t.Fatalf("expected value to remain untruncated, got %q", got)
	}

	long := strings.Repeat("a", tableCellMaxWidth+10)
	got := TruncateTableCell(long)
	if ansi.PrintableRuneWidth(got) != tableCellMaxWidth || !strings.HasSuffix(got, tableCellEllipsis) {
		t.Fatalf("expected truncated cell with ellipsis, got %q", got)
	}
}
