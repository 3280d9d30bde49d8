// Package backup exports snapshots to JSON documents and imports them back.
package backup

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/amonks/todoapp/store"
	"github.com/amonks/todoapp/task"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// ErrInvalidBackup is returned when an import document is rejected.
var ErrInvalidBackup = errors.New("invalid backup")

//go:embed schema.json
var schemaJSON string

var schema = jsonschema.MustCompileString("backup.schema.json", schemaJSON)

// Filename suggests a file name for a backup taken on today.
func Filename(today task.Date) string {
	return "todo-app-backup-" + today.String() + ".json"
}

// Export writes data as an indented JSON document.
func Export(w io.Writer, data task.AppData) error {
	encoded, err := task.MarshalIndent(data)
	if err != nil {
		return err
	}
	encoded = append(encoded, '\n')
	if _, err := w.Write(encoded); err != nil {
		return fmt.Errorf("write backup: %w", err)
	}
	return nil
}

// Parse reads and checks a backup document. The projects, tasks and tags
// lists must be present; anything else malformed is reported as a generic
// ErrInvalidBackup.
func Parse(r io.Reader) (task.AppData, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return task.AppData{}, fmt.Errorf("read backup: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return task.AppData{}, fmt.Errorf("%w: not valid JSON: %v", ErrInvalidBackup, err)
	}
	if err := schema.Validate(doc); err != nil {
		return task.AppData{}, fmt.Errorf("%w: %s", ErrInvalidBackup, describe(err))
	}

	data, err := task.Unmarshal(raw)
	if err != nil {
		return task.AppData{}, fmt.Errorf("%w: %v", ErrInvalidBackup, err)
	}
	return data, nil
}

// Import parses a backup and, if it is valid, replaces the store's snapshot
// with it. On failure the store is left untouched.
func Import(s *store.Store, r io.Reader) (task.AppData, error) {
	data, err := Parse(r)
	if err != nil {
		return s.Snapshot(), err
	}
	return s.Replace(data), nil
}

// describe flattens a schema validation error to its leaf messages.
func describe(err error) string {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err.Error()
	}
	var msgs []string
	collect(ve, &msgs)
	if len(msgs) == 0 {
		return ve.Message
	}
	return strings.Join(msgs, "; ")
}

func collect(ve *jsonschema.ValidationError, msgs *[]string) {
	if len(ve.Causes) == 0 {
		location := ve.InstanceLocation
		if location == "" {
			location = "/"
		}
		*msgs = append(*msgs, location+": "+ve.Message)
		return
	}
	for _, cause := range ve.Causes {
		collect(cause, msgs)
	}
}
