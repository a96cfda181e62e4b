// Package initdb prepares the tasks table: it creates the table when it is
// missing and seeds sample tasks when it is empty. Running it repeatedly is
// safe.
package initdb

import (
	"context"
	"fmt"
	"log/slog"

	"task_tracker/internal/domain"
	"task_tracker/internal/repository"
)

// Catalog is the database surface the initializer needs.
// repository.SchemaRepository implements it.
type Catalog interface {
	TableExists(ctx context.Context) (bool, error)
	CreateTable(ctx context.Context) error
	Columns(ctx context.Context) ([]repository.Column, error)
	Count(ctx context.Context) (int64, error)
	InsertTasks(ctx context.Context, tasks []domain.NewTask) (int64, error)
}

// Report summarizes what Run found and did.
type Report struct {
	Created bool
	Columns []repository.Column
	Count   int64
	Seeded  int64
}

// SampleTasks returns the rows inserted into an empty table, one per status.
func SampleTasks() []domain.NewTask {
	date := func(s string) *string { return &s }
	return []domain.NewTask{
		{
			Name:        "Complete Project Proposal",
			Description: "Write and submit the project proposal document",
			Status:      domain.StatusToDo,
			DueDate:     date("2023-05-15"),
		},
		{
			Name:        "Review Code",
			Description: "Review the latest code changes and provide feedback",
			Status:      domain.StatusInProgress,
			DueDate:     date("2023-05-10"),
		},
		{
			Name:        "Update Documentation",
			Description: "Update the project documentation with the latest changes",
			Status:      domain.StatusCompleted,
			DueDate:     date("2023-05-05"),
		},
	}
}

// Run checks, creates and seeds the tasks table. The first error stops it.
func Run(ctx context.Context, c Catalog, log *slog.Logger) (Report, error) {
	var rep Report

	exists, err := c.TableExists(ctx)
	if err != nil {
		return rep, fmt.Errorf("check tasks table: %w", err)
	}

	if !exists {
		log.Info("tasks table does not exist, creating it")
		if err := c.CreateTable(ctx); err != nil {
			return rep, fmt.Errorf("create tasks table: %w", err)
		}
		rep.Created = true
		log.Info("tasks table created")
		return seed(ctx, c, log, rep)
	}

	log.Info("tasks table already exists")
	cols, err := c.Columns(ctx)
	if err != nil {
		return rep, fmt.Errorf("describe tasks table: %w", err)
	}
	rep.Columns = cols
	for _, col := range cols {
		log.Info(fmt.Sprintf("- %s (%s)", col.Name, col.Type))
	}

	count, err := c.Count(ctx)
	if err != nil {
		return rep, fmt.Errorf("count tasks: %w", err)
	}
	rep.Count = count
	log.Info("tasks in database", "count", count)

	if count > 0 {
		return rep, nil
	}
	return seed(ctx, c, log, rep)
}

func seed(ctx context.Context, c Catalog, log *slog.Logger, rep Report) (Report, error) {
	n, err := c.InsertTasks(ctx, SampleTasks())
	if err != nil {
		return rep, fmt.Errorf("insert sample tasks: %w", err)
	}
	rep.Seeded = n
	rep.Count += n
	log.Info("sample tasks inserted", "count", n)
	return rep, nil
}
