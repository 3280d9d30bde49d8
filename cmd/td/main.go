// Package main implements the td CLI tool.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	err := rootCmd.Execute()
	if closeErr := closeApp(); closeErr != nil && err == nil {
		fmt.Fprintln(os.Stderr, "Error:", closeErr)
		err = closeErr
	}
	if err != nil {
		var exitErr interface{ ExitCode() int }
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.ExitCode())
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "td",
	Short:        "td - projects, tasks, subtasks and daily habits",
	SilenceUsage: true,
}

var (
	rootBackend  string
	rootDataPath string
	rootLogLevel string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&rootBackend, "backend", "", "Storage backend (file, sqlite, memory)")
	rootCmd.PersistentFlags().StringVar(&rootDataPath, "data", "", "Data directory or database file")
	rootCmd.PersistentFlags().StringVar(&rootLogLevel, "log-level", "", "Log level (debug, info, warn, error)")
}

// exitError carries a process exit code out of a command.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }
func (e *exitError) ExitCode() int { return e.code }
