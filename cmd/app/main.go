package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"task_tracker/internal/config"
	"task_tracker/internal/db"
	httpServer "task_tracker/internal/http"
	"task_tracker/internal/http/middleware"
	"task_tracker/internal/logger"
	"task_tracker/internal/repository"
)

// set with -ldflags "-X main.version=..."
var version = "dev"

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger.Init(cfg.LogLevel, cfg.LogJSON)

	dbPool, err := db.Open(context.Background(), cfg.DSN())
	if err != nil {
		return err
	}
	defer dbPool.Close()

	rdb := middleware.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if rdb != nil {
		defer rdb.Close()
	}

	r := httpServer.NewRouter(repository.NewTaskRepository(dbPool), dbPool, httpServer.Options{
		AllowedOrigins:  cfg.AllowedOrigins,
		Version:         version,
		Redis:           rdb,
		RateLimit:       cfg.APIRateLimit,
		RateLimitWindow: time.Duration(cfg.APIRateWindowSec) * time.Second,
	})

	ln, err := listen(cfg.AppPort)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server started", "port", cfg.AppPort, "cors_origins", cfg.AllowedOrigins, "version", version)
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err, ok := <-serveErr:
		if ok {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case sig := <-quit:
		logger.Info("shutting down server...", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Info("server exited")
	return nil
}

// listen binds the port up front so a port held by another process is
// reported before anything is served.
func listen(port string) (net.Listener, error) {
	ln, err := net.Listen("tcp", ":"+port)
	if err != nil {
		if errors.Is(err, syscall.EADDRINUSE) {
			return nil, fmt.Errorf("port %s is already in use, make sure no other instance is running: %w", port, err)
		}
		return nil, fmt.Errorf("listen on port %s: %w", port, err)
	}
	return ln, nil
}
