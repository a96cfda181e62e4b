// Package migrations embeds the SQL that creates the tasks schema.
package migrations

import "embed"

//go:embed *.sql
var files embed.FS

// CreateTasks is the DDL for the tasks table, its index and the
// updated_at trigger. Every statement is idempotent.
func CreateTasks() string {
	b, err := files.ReadFile("001_create_tasks.sql")
	if err != nil {
		panic(err)
	}
	return string(b)
}
