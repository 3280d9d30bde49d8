package todoenv

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/amonks/todoapp/task"
)

// TodayEnvVar is the environment variable that pins the calendar date.
const TodayEnvVar = "TD_TODAY"

// TodayFunc returns the clock used for recurrence and due dates. When
// TodayEnvVar is set it returns that date on every call.
func TodayFunc() (func() task.Date, error) {
	value := strings.TrimSpace(os.Getenv(TodayEnvVar))
	if value == "" {
		return func() task.Date { return task.Today(time.Now()) }, nil
	}
	pinned, err := task.ParseDate(value)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", TodayEnvVar, err)
	}
	return func() task.Date { return pinned }, nil
}
