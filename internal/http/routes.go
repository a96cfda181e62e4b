package http

import (
	"net/http"
	"time"

	"task_tracker/internal/http/handlers"
	"task_tracker/internal/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	redis "github.com/redis/go-redis/v9"
)

// Options configures NewRouter. Redis may be nil, which disables rate
// limiting.
type Options struct {
	AllowedOrigins []string
	Version        string

	Redis           *redis.Client
	RateLimit       int
	RateLimitWindow time.Duration
}

// NewRouter builds the engine with the full middleware chain and all routes.
func NewRouter(store handlers.TaskStore, db handlers.Pinger, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.AccessLog(),
		middleware.Metrics(),
		middleware.ErrorHandler(),
		middleware.CORS(opts.AllowedOrigins),
	)

	RegisterRoutes(r, store, db, opts)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found", "message": "Route not found"})
	})
	return r
}

func RegisterRoutes(r *gin.Engine, store handlers.TaskStore, db handlers.Pinger, opts Options) {
	health := handlers.NewHealthHandler(db, opts.Version)

	// Probes and metrics (no rate limiting)
	r.GET("/healthz", health.Liveness)
	r.GET("/readyz", health.Readiness)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	tasks := handlers.NewTaskHandler(store)
	api := r.Group("/api/tasks")
	api.Use(middleware.RedisRateLimit(opts.Redis, opts.RateLimit, opts.RateLimitWindow))
	{
		api.GET("", tasks.ListTasks)
		api.POST("", tasks.CreateTask)
		api.PUT("/:id", tasks.UpdateTaskStatus)
		api.DELETE("/:id", tasks.DeleteTask)
	}
}
