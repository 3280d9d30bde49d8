package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Prompter is used to ask the user for confirmation.
type Prompter interface {
	// Confirm asks the user a yes/no question and returns true if they say yes.
	Confirm(message string) (bool, error)
}

// StdioPrompter implements Prompter using a reader and writer.
type StdioPrompter struct {
	In  io.Reader
	Out io.Writer
}

// Confirm asks the user a yes/no question.
func (p StdioPrompter) Confirm(message string) (bool, error) {
	fmt.Fprintf(p.Out, "%s [y/n]: ", message)
	response, err := bufio.NewReader(p.In).ReadString('\n')
	if err != nil && response == "" {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(response)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// stdinIsTerminal reports whether stdin is interactive.
func stdinIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}
