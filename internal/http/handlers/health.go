package handlers

import (
	"context"
	"net/http"
	"time"

	"task_tracker/internal/logger"

	"github.com/gin-gonic/gin"
)

const readinessTimeout = 3 * time.Second

// Pinger reports whether the database is reachable. *pgxpool.Pool
// satisfies it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves the liveness and readiness probes.
type HealthHandler struct {
	db        Pinger
	startTime time.Time
	version   string
}

func NewHealthHandler(db Pinger, version string) *HealthHandler {
	return &HealthHandler{
		db:        db,
		startTime: time.Now(),
		version:   version,
	}
}

type HealthResponse struct {
	Status    string            `json:"status"`
	Version   string            `json:"version,omitempty"`
	Uptime    string            `json:"uptime,omitempty"`
	Timestamp string            `json:"timestamp"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// Liveness answers as long as the process can serve HTTP.
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness pings the database; 503 when it is unreachable. The ping error
// is logged, not returned.
func (h *HealthHandler) Readiness(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
	defer cancel()

	resp := HealthResponse{
		Status:    "ok",
		Version:   h.version,
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    map[string]string{"database": "ok"},
	}
	code := http.StatusOK

	if err := h.db.Ping(ctx); err != nil {
		logger.WithContext(c.Request.Context()).Warn("readiness check failed", "error", err)
		resp.Status = "unavailable"
		resp.Checks["database"] = "unreachable"
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, resp)
}
