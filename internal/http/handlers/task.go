package handlers

import (
	"context"
	"net/http"
	"strconv"

	"task_tracker/internal/domain"
	"task_tracker/internal/logger"

	"github.com/gin-gonic/gin"
)

// TaskStore is the persistence the task endpoints need.
// repository.TaskRepository implements it.
type TaskStore interface {
	List(ctx context.Context) ([]domain.Task, error)
	GetByID(ctx context.Context, id int64) (domain.Task, error)
	Create(ctx context.Context, t domain.NewTask) (int64, error)
	UpdateStatus(ctx context.Context, id int64, status domain.Status) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

type TaskHandler struct {
	store TaskStore
}

func NewTaskHandler(store TaskStore) *TaskHandler {
	return &TaskHandler{store: store}
}

const invalidStatusMessage = "Invalid status value. Must be one of: To-Do, In Progress, Completed"

// createTaskRequest uses the field names the frontend sends.
type createTaskRequest struct {
	TaskName    string        `json:"taskName"`
	Description string        `json:"description"`
	Status      domain.Status `json:"status"`
	DueDate     *string       `json:"dueDate"`
}

type updateStatusRequest struct {
	Status domain.Status `json:"status"`
}

// ListTasks returns all tasks, newest first.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	tasks, err := h.store.List(c.Request.Context())
	if err != nil {
		respondDBError(c, "list tasks", err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// CreateTask inserts a task and answers with the stored row. If the row
// can't be read back the insert still stands and only the id is returned.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, kindValidation, "Invalid request body")
		return
	}

	if req.TaskName == "" || req.Description == "" {
		respondError(c, http.StatusBadRequest, kindValidation, "Task name and description are required")
		return
	}

	status := req.Status
	if status == "" {
		status = domain.StatusToDo
	}

	ctx := c.Request.Context()
	id, err := h.store.Create(ctx, domain.NewTask{
		Name:        req.TaskName,
		Description: req.Description,
		Status:      status,
		DueDate:     req.DueDate,
	})
	if err != nil {
		if isBadField(err) {
			logger.WithContext(ctx).Error("database error", "op", "create task", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   kindDatabase,
				"message": "Invalid field name in the request",
				"code":    codeBadField,
			})
			return
		}
		respondDBError(c, "create task", err)
		return
	}

	task, err := h.store.GetByID(ctx, id)
	if err != nil {
		logger.WithContext(ctx).Warn("failed to fetch created task", "id", id, "error", err)
		c.JSON(http.StatusOK, gin.H{"id": id})
		return
	}
	c.JSON(http.StatusOK, task)
}

// UpdateTaskStatus sets the status of one task. Any status may follow any
// other.
func (h *TaskHandler) UpdateTaskStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, kindValidation, "Invalid request body")
		return
	}
	if req.Status == "" {
		respondError(c, http.StatusBadRequest, kindValidation, "Status is required")
		return
	}
	if !req.Status.Valid() {
		respondError(c, http.StatusBadRequest, kindValidation, invalidStatusMessage)
		return
	}

	id, ok := taskID(c)
	if !ok {
		respondTaskNotFound(c)
		return
	}

	ctx := c.Request.Context()
	n, err := h.store.UpdateStatus(ctx, id, req.Status)
	if err != nil {
		respondDBError(c, "update task", err)
		return
	}
	if n == 0 {
		respondTaskNotFound(c)
		return
	}

	task, err := h.store.GetByID(ctx, id)
	if err != nil {
		logger.WithContext(ctx).Warn("failed to fetch updated task", "id", id, "error", err)
		c.JSON(http.StatusOK, gin.H{"message": "Status updated successfully"})
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		respondTaskNotFound(c)
		return
	}

	n, err := h.store.Delete(c.Request.Context(), id)
	if err != nil {
		respondDBError(c, "delete task", err)
		return
	}
	if n == 0 {
		respondTaskNotFound(c)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully", "id": id})
}

// a path id that isn't a positive integer can't match any row
func taskID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
