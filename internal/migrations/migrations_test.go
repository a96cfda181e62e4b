package migrations

import (
	"strings"
	"testing"
)

func TestCreateTasksSchema(t *testing.T) {
	sql := CreateTasks()
	for _, want := range []string{
		"CREATE TABLE IF NOT EXISTS tasks",
		"'To-Do', 'In Progress', 'Completed'",
		"due_date    DATE NOT NULL",
		"BEFORE UPDATE ON tasks",
	} {
		if !strings.Contains(sql, want) {
			t.Fatalf("schema missing %q", want)
		}
	}
}
