package domain

import (
	"errors"
	"time"
)

type Status string

const (
	StatusToDo       Status = "To-Do"
	StatusInProgress Status = "In Progress"
	StatusCompleted  Status = "Completed"
)

// Statuses lists every allowed status in workflow order.
var Statuses = []Status{StatusToDo, StatusInProgress, StatusCompleted}

// Valid reports whether s is one of the enumerated statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusToDo, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

var ErrTaskNotFound = errors.New("task not found")

type Task struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	Status      Status    `db:"status" json:"status"`
	DueDate     string    `db:"due_date" json:"due_date"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// NewTask is the insertable part of a task. DueDate is passed to the
// database as text and parsed there; nil stores NULL.
type NewTask struct {
	Name        string
	Description string
	Status      Status
	DueDate     *string
}
