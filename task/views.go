package task

import "sort"

// ProjectTasks is one project section of a grouped task view.
type ProjectTasks struct {
	Project Project
	Tasks   []Task
}

// ActiveProjects returns non-archived projects in display order.
func ActiveProjects(data AppData) []Project {
	group := projectGroup(data.Projects)
	projects := make([]Project, 0, len(group))
	for _, i := range group {
		projects = append(projects, data.Projects[i])
	}
	return projects
}

// ArchivedProjects returns archived projects ordered by name.
func ArchivedProjects(data AppData) []Project {
	var projects []Project
	for _, p := range data.Projects {
		if p.IsArchived {
			projects = append(projects, p)
		}
	}
	sort.SliceStable(projects, func(i, j int) bool {
		return projects[i].Name < projects[j].Name
	})
	return projects
}

// RootTasks returns a project's top-level tasks in display order.
func RootTasks(data AppData, projectID string) []Task {
	return sortedGroup(data.Tasks, "project:"+projectID)
}

// Children returns a task's direct subtasks in display order.
func Children(data AppData, taskID string) []Task {
	return sortedGroup(data.Tasks, "task:"+taskID)
}

// Ancestors returns the chain of parents of a task, nearest parent first;
// reverse it for a root-to-parent breadcrumb. The walk stops at a missing
// parent or at the first task already seen.
func Ancestors(data AppData, taskID string) []Task {
	var chain []Task
	seen := map[string]bool{taskID: true}
	idx := indexOfTask(data.Tasks, taskID)
	for idx >= 0 {
		parentID, ok := data.Tasks[idx].Parent()
		if !ok || seen[parentID] {
			break
		}
		seen[parentID] = true
		idx = indexOfTask(data.Tasks, parentID)
		if idx >= 0 {
			chain = append(chain, data.Tasks[idx])
		}
	}
	return chain
}

// IsDueToday reports whether a task belongs in today's view: it is not Done
// and it is due today or earlier, or it is a habit scheduled for today.
func IsDueToday(t Task, today Date) bool {
	if t.Status == StatusDone {
		return false
	}
	if t.DueDate != nil && !t.DueDate.After(today) {
		return true
	}
	if t.RepeatConfig == nil {
		return false
	}
	switch t.RepeatConfig.Type {
	case RepeatDaily:
		return true
	case RepeatWeekdays:
		return today.IsWeekday()
	}
	return false
}

// TodayTasks groups the tasks due today by active project, in project
// display order. Projects with nothing due are omitted.
func TodayTasks(data AppData, today Date) []ProjectTasks {
	var sections []ProjectTasks
	for _, project := range ActiveProjects(data) {
		var tasks []Task
		for _, t := range data.Tasks {
			if t.ProjectID == project.ID && IsDueToday(t, today) {
				tasks = append(tasks, t)
			}
		}
		if len(tasks) == 0 {
			continue
		}
		sort.SliceStable(tasks, func(i, j int) bool {
			return tasks[i].SortOrder < tasks[j].SortOrder
		})
		sections = append(sections, ProjectTasks{Project: project, Tasks: tasks})
	}
	return sections
}

// FindTask returns the task with the given ID.
func FindTask(data AppData, id string) (Task, bool) {
	idx := indexOfTask(data.Tasks, id)
	if idx < 0 {
		return Task{}, false
	}
	return data.Tasks[idx], true
}

// FindProject returns the project with the given ID.
func FindProject(data AppData, id string) (Project, bool) {
	idx := indexOfProject(data.Projects, id)
	if idx < 0 {
		return Project{}, false
	}
	return data.Projects[idx], true
}

// FindTag returns the tag with the given ID.
func FindTag(data AppData, id string) (Tag, bool) {
	idx := indexOfTag(data.Tags, id)
	if idx < 0 {
		return Tag{}, false
	}
	return data.Tags[idx], true
}

func sortedGroup(tasks []Task, key string) []Task {
	var group []Task
	for _, t := range tasks {
		if GroupOf(t) == key {
			group = append(group, t)
		}
	}
	sort.SliceStable(group, func(i, j int) bool {
		return group[i].SortOrder < group[j].SortOrder
	})
	return group
}
