package repository

import (
	"context"
	"fmt"
	"strings"

	"task_tracker/internal/domain"
	"task_tracker/internal/migrations"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Column describes one column of the tasks table.
type Column struct {
	Name string
	Type string
}

// SchemaRepository inspects and creates the tasks table.
type SchemaRepository struct {
	db *pgxpool.Pool
}

func NewSchemaRepository(db *pgxpool.Pool) *SchemaRepository {
	return &SchemaRepository{db: db}
}

func (r *SchemaRepository) TableExists(ctx context.Context) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT to_regclass('tasks') IS NOT NULL`).Scan(&exists)
	return exists, err
}

func (r *SchemaRepository) CreateTable(ctx context.Context) error {
	_, err := r.db.Exec(ctx, migrations.CreateTasks())
	return err
}

func (r *SchemaRepository) Columns(ctx context.Context) ([]Column, error) {
	rows, err := r.db.Query(ctx, `
SELECT column_name, data_type
FROM information_schema.columns
WHERE table_schema = current_schema() AND table_name = 'tasks'
ORDER BY ordinal_position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cols []Column
	for rows.Next() {
		var c Column
		if err := rows.Scan(&c.Name, &c.Type); err != nil {
			return nil, err
		}
		cols = append(cols, c)
	}
	return cols, rows.Err()
}

func (r *SchemaRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM tasks`).Scan(&n)
	return n, err
}

// InsertTasks writes all tasks with one multi-row INSERT and returns the
// number of rows inserted.
func (r *SchemaRepository) InsertTasks(ctx context.Context, tasks []domain.NewTask) (int64, error) {
	if len(tasks) == 0 {
		return 0, nil
	}
	query, args := insertTasksQuery(tasks)
	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func insertTasksQuery(tasks []domain.NewTask) (string, []any) {
	var sb strings.Builder
	sb.WriteString(`INSERT INTO tasks (name, description, status, due_date) VALUES `)
	args := make([]any, 0, len(tasks)*4)
	for i, t := range tasks {
		if i > 0 {
			sb.WriteString(", ")
		}
		n := i * 4
		fmt.Fprintf(&sb, "($%d, $%d, $%d, $%d::text::date)", n+1, n+2, n+3, n+4)
		args = append(args, t.Name, t.Description, string(t.Status), t.DueDate)
	}
	return sb.String(), args
}
