package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestStdioPrompterConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"Yes\n", true},
		{"n\n", false},
		{"\n", false},
		{"y", true},
	}
	for _, tt := range tests {
		var out bytes.Buffer
		prompter := StdioPrompter{In: strings.NewReader(tt.input), Out: &out}
		got, err := prompter.Confirm("Overwrite all data?")
		if err != nil {
			t.Fatalf("Confirm(%q) failed: %v", tt.input, err)
		}
		if got != tt.want {
			t.Fatalf("Confirm(%q) = %v, want %v", tt.input, got, tt.want)
		}
		if out.String() != "Overwrite all data? [y/n]: " {
			t.Fatalf("unexpected prompt %q", out.String())
		}
	}
}

func TestStdioPrompterEOF(t *testing.T) {
	prompter := StdioPrompter{In: strings.NewReader(""), Out: &bytes.Buffer{}}
	if _, err := prompter.Confirm("Continue?"); err == nil {
		t.Fatal("expected error on empty input")
	}
}
