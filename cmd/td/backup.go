package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/amonks/todoapp/backup"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a JSON backup of all data",
	Long: `Write a JSON backup of all data.

Without -o the backup goes to stdout. When -o names a directory the file
is named todo-app-backup-<date>.json inside it.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

var exportOutput string

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace all data with a JSON backup",
	Long: `Replace all data with a JSON backup.

The backup fully replaces current projects, tasks, tags and settings. Use
"-" to read from stdin. On a terminal, asks for confirmation unless --yes
is given. An invalid backup leaves current data untouched.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

var importYes bool

func init() {
	rootCmd.AddCommand(exportCmd, importCmd)
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "-", "Output file or directory ('-' for stdout)")
	importCmd.Flags().BoolVarP(&importYes, "yes", "y", false, "Do not ask for confirmation")
}

func runExport(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	data := a.snapshot()

	if exportOutput == "" || exportOutput == "-" {
		return backup.Export(cmd.OutOrStdout(), data)
	}

	path := exportOutput
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, backup.Filename(a.today()))
	}

	var buf bytes.Buffer
	if err := backup.Export(&buf, data); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write backup: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Exported %s, %s and %s to %s\n",
		pluralize(len(data.Projects), "project"), pluralize(len(data.Tasks), "task"), pluralize(len(data.Tags), "tag"), path)
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	var input io.Reader
	if args[0] == "-" {
		input = cmd.InOrStdin()
	} else {
		file, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open backup: %w", err)
		}
		defer file.Close()
		input = file
	}

	a, err := openApp()
	if err != nil {
		return err
	}

	parsed, err := backup.Parse(input)
	if err != nil {
		return err
	}

	if !importYes && args[0] != "-" && stdinIsTerminal() {
		prompter := StdioPrompter{In: cmd.InOrStdin(), Out: cmd.OutOrStdout()}
		ok, err := prompter.Confirm("Overwrite all data?")
		if err != nil {
			return fmt.Errorf("prompt: %w", err)
		}
		if !ok {
			return &exitError{code: 1, err: fmt.Errorf("import aborted")}
		}
	}

	data := a.store.Replace(parsed)
	if err := a.store.SaveErr(); err != nil {
		return fmt.Errorf("changes not saved: %w", err)
	}

	a.logger.Info("imported backup", "projects", len(data.Projects), "tasks", len(data.Tasks), "tags", len(data.Tags))
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %s, %s and %s\n",
		pluralize(len(data.Projects), "project"), pluralize(len(data.Tasks), "task"), pluralize(len(data.Tags), "tag"))
	return nil
}
