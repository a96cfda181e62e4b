package repository

import (
	"context"
	"errors"

	"task_tracker/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const taskColumns = `id, name, COALESCE(description, ''), status, to_char(due_date, 'YYYY-MM-DD'), created_at, updated_at`

type TaskRepository struct {
	db *pgxpool.Pool
}

func NewTaskRepository(db *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{db: db}
}

// List returns every task, newest first. Ties on created_at fall back to id
// so the order is stable.
func (r *TaskRepository) List(ctx context.Context) ([]domain.Task, error) {
	rows, err := r.db.Query(ctx, `SELECT `+taskColumns+` FROM tasks ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	res := make([]domain.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, t)
	}
	return res, rows.Err()
}

func (r *TaskRepository) GetByID(ctx context.Context, id int64) (domain.Task, error) {
	t, err := scanTask(r.db.QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Task{}, domain.ErrTaskNotFound
	}
	return t, err
}

// Create inserts t and returns the generated id.
func (r *TaskRepository) Create(ctx context.Context, t domain.NewTask) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO tasks (name, description, status, due_date) VALUES ($1, $2, $3, $4::text::date) RETURNING id`,
		t.Name, t.Description, string(t.Status), t.DueDate,
	).Scan(&id)
	return id, err
}

// UpdateStatus returns the number of rows matched by id.
func (r *TaskRepository) UpdateStatus(ctx context.Context, id int64, status domain.Status) (int64, error) {
	tag, err := r.db.Exec(ctx, `UPDATE tasks SET status = $1 WHERE id = $2`, string(status), id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// Delete returns the number of rows removed.
func (r *TaskRepository) Delete(ctx context.Context, id int64) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func scanTask(row pgx.Row) (domain.Task, error) {
	var (
		t      domain.Task
		status string
	)
	if err := row.Scan(&t.ID, &t.Name, &t.Description, &status, &t.DueDate, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return domain.Task{}, err
	}
	t.Status = domain.Status(status)
	return t, nil
}
