package handlers

import (
	"errors"
	"net/http"

	"task_tracker/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	kindValidation = "Validation error"
	kindNotFound   = "Not found"
	kindDatabase   = "Database error"

	// SQLSTATE undefined_column, reported to clients under the MySQL name
	// the frontend already handles.
	sqlStateUndefinedColumn = "42703"
	codeBadField            = "ER_BAD_FIELD_ERROR"
)

func respondError(c *gin.Context, status int, kind, message string) {
	c.JSON(status, gin.H{"error": kind, "message": message})
}

func respondTaskNotFound(c *gin.Context) {
	respondError(c, http.StatusNotFound, kindNotFound, "Task not found")
}

// respondDBError logs err and passes the driver message and SQLSTATE code
// through to the client.
func respondDBError(c *gin.Context, op string, err error) {
	logger.WithContext(c.Request.Context()).Error("database error", "op", op, "error", err)

	body := gin.H{"error": kindDatabase, "message": err.Error()}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		body["message"] = pgErr.Message
		body["code"] = pgErr.Code
	}
	c.JSON(http.StatusInternalServerError, body)
}

func isBadField(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == sqlStateUndefinedColumn
}
