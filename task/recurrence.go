package task

// DueForReset reports whether a recurring task completed in an earlier cycle
// should return to Todo on today.
func DueForReset(t Task, today Date) bool {
	if t.RepeatConfig == nil || t.Status != StatusDone {
		return false
	}
	if t.LastCompletedDate != nil && *t.LastCompletedDate == today {
		return false
	}
	switch t.RepeatConfig.Type {
	case RepeatDaily:
		return true
	case RepeatWeekdays:
		return today.IsWeekday()
	default:
		return false
	}
}

// ApplyRecurrence resets every recurring task due for a new cycle to Todo and
// clears its completion date. It returns the number of tasks reset; when that
// is zero the input snapshot is returned as is.
//
// Applying it twice for the same day is the same as applying it once.
func ApplyRecurrence(data AppData, today Date) (AppData, int) {
	var tasks []Task
	reset := 0
	for i := range data.Tasks {
		if !DueForReset(data.Tasks[i], today) {
			continue
		}
		if tasks == nil {
			tasks = append([]Task(nil), data.Tasks...)
		}
		tasks[i].Status = StatusTodo
		tasks[i].LastCompletedDate = nil
		reset++
	}
	if reset == 0 {
		return data, 0
	}
	data.Tasks = tasks
	return data, reset
}
