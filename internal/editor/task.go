package editor

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/BurntSushi/toml"
	"github.com/amonks/todoapp/task"
)

// TaskForm is the data rendered into the task editing template.
type TaskForm struct {
	// IsUpdate is true when editing an existing task.
	IsUpdate bool
	ID       string
	Content  string
	Priority string
	Status   string
	Due      string
	Repeat   string
	// Tags holds tag names.
	Tags []string
}

// DefaultForm returns the form for a new task.
func DefaultForm() TaskForm {
	return TaskForm{
		Priority: string(task.PriorityMedium),
		Tags:     []string{},
	}
}

// FormFromTask returns the form for editing t. tagNames are the names of
// t's resolved tags.
func FormFromTask(t task.Task, tagNames []string) TaskForm {
	form := TaskForm{
		IsUpdate: true,
		ID:       t.ID,
		Content:  t.Content,
		Priority: string(t.Priority),
		Status:   string(t.Status),
		Tags:     append([]string{}, tagNames...),
	}
	if t.DueDate != nil {
		form.Due = t.DueDate.String()
	}
	if t.RepeatConfig != nil {
		form.Repeat = string(t.RepeatConfig.Type)
	}
	return form
}

var taskTemplate = template.Must(template.New("task").Funcs(template.FuncMap{
	"quoteList": func(values []string) string {
		quoted := make([]string, len(values))
		for i, v := range values {
			quoted[i] = fmt.Sprintf("%q", v)
		}
		return "[" + strings.Join(quoted, ", ") + "]"
	},
}).Parse(`priority = {{ printf "%q" .Priority }} # High, Medium, Low
{{- if .IsUpdate }}
status = {{ printf "%q" .Status }} # Todo, InProgress, Done
{{- end }}
due = {{ printf "%q" .Due }} # YYYY-MM-DD, empty for none
repeat = {{ printf "%q" .Repeat }} # daily, weekdays, empty for none
tags = {{ quoteList .Tags }}
---
{{ .Content }}
`))

// RenderTaskTOML renders the form as TOML frontmatter followed by the task
// content.
func RenderTaskTOML(form TaskForm) (string, error) {
	var buf bytes.Buffer
	if err := taskTemplate.Execute(&buf, form); err != nil {
		return "", fmt.Errorf("render template: %w", err)
	}
	return buf.String(), nil
}

// ParsedTask is the validated result of an editing session.
type ParsedTask struct {
	Content  string
	Priority task.Priority
	// Status is nil when the form had no status field.
	Status *task.Status
	Due    *task.Date
	Repeat *task.RepeatConfig
	// Tags holds tag names.
	Tags []string
}

type rawTask struct {
	Priority string   `toml:"priority"`
	Status   *string  `toml:"status"`
	Due      string   `toml:"due"`
	Repeat   string   `toml:"repeat"`
	Tags     []string `toml:"tags"`
}

// ParseTaskTOML parses and validates the editor output.
func ParseTaskTOML(content string) (*ParsedTask, error) {
	frontmatter, body := splitFrontmatter(content)

	var raw rawTask
	if _, err := toml.Decode(frontmatter, &raw); err != nil {
		return nil, fmt.Errorf("parse TOML: %w", err)
	}

	parsed := ParsedTask{
		Content: strings.TrimSpace(body),
		Tags:    []string{},
	}
	if err := task.ValidateContent(parsed.Content); err != nil {
		return nil, err
	}

	var err error
	if parsed.Priority, err = task.ParsePriority(raw.Priority); err != nil {
		return nil, err
	}
	if raw.Status != nil {
		status, err := task.ParseStatus(*raw.Status)
		if err != nil {
			return nil, err
		}
		parsed.Status = &status
	}
	if due := strings.TrimSpace(raw.Due); due != "" {
		date, err := task.ParseDate(due)
		if err != nil {
			return nil, err
		}
		parsed.Due = &date
	}
	if repeat := strings.TrimSpace(raw.Repeat); repeat != "" {
		repeatType, err := task.ParseRepeatType(repeat)
		if err != nil {
			return nil, err
		}
		parsed.Repeat = &task.RepeatConfig{Type: repeatType}
	}
	for _, name := range raw.Tags {
		if name = strings.TrimSpace(name); name != "" {
			parsed.Tags = append(parsed.Tags, name)
		}
	}

	return &parsed, nil
}

// Patch converts the parsed form into a task update. tagIDs are the
// resolved IDs of p.Tags.
func (p *ParsedTask) Patch(tagIDs []string) task.TaskPatch {
	patch := task.TaskPatch{
		Content:      &p.Content,
		Priority:     &p.Priority,
		DueDate:      p.Due,
		ClearDueDate: p.Due == nil,
		Repeat:       p.Repeat,
		ClearRepeat:  p.Repeat == nil,
		Tags:         &tagIDs,
	}
	return patch
}

// EditTask opens the editor on form and returns the parsed result.
func EditTask(form TaskForm) (*ParsedTask, error) {
	content, err := RenderTaskTOML(form)
	if err != nil {
		return nil, err
	}
	edited, err := EditString("td-task-*.md", content)
	if err != nil {
		return nil, err
	}
	return ParseTaskTOML(edited)
}

func splitFrontmatter(content string) (string, string) {
	content = strings.TrimLeft(content, "\n")
	if content == "" {
		return "", ""
	}

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) == "---" {
			return strings.Join(lines[:i], "\n"), strings.Join(lines[i+1:], "\n")
		}
	}
	return content, ""
}
