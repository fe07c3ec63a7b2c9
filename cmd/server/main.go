package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/hancomics/prodboard/internal/api"
	"github.com/hancomics/prodboard/internal/config"
	"github.com/hancomics/prodboard/internal/domain/activity"
	"github.com/hancomics/prodboard/internal/domain/delivery"
	"github.com/hancomics/prodboard/internal/domain/launch"
	"github.com/hancomics/prodboard/internal/domain/project"
	"github.com/hancomics/prodboard/internal/domain/task"
	"github.com/hancomics/prodboard/internal/domain/worker"
	"github.com/hancomics/prodboard/internal/mirror"
	"github.com/hancomics/prodboard/internal/sqlite"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	if err := ensureDBDir(cfg.DB.Path); err != nil {
		logger.Error("failed to prepare database path", "error", err)
		os.Exit(1)
	}

	db, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	projectRepo := sqlite.NewProjectRepository(db)
	launchRepo := sqlite.NewLaunchRepository(db)
	queueRepo := sqlite.NewMirrorQueueRepository(db)
	deliveryRepo := sqlite.NewDeliveryRepository(db)
	taskRepo := sqlite.NewTaskRepository(db)
	workerRepo := sqlite.NewWorkerRepository(db)
	activityRepo := sqlite.NewActivityRepository(db)

	taskSvc := task.NewService(taskRepo, projectRepo, logger)
	launchSvc := launch.NewService(launchRepo, queueRepo, activityRepo, cfg.PlatformIDs(), logger)
	projectSvc := project.NewService(projectRepo, activityRepo, taskSvc, launchSvc, logger)
	deliverySvc := delivery.NewService(deliveryRepo, launchSvc, projectRepo, activityRepo, logger)
	workerSvc := worker.NewService(workerRepo, logger)
	activitySvc := activity.NewService(activityRepo, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mirrorWorker := mirror.New(
		queueRepo,
		launchRepo,
		time.Duration(cfg.Mirror.IntervalSeconds)*time.Second,
		cfg.Mirror.BatchSize,
		cfg.Mirror.MaxAttempts,
		logger,
	)
	go mirrorWorker.Run(ctx)

	router := api.NewRouter(api.Handlers{
		Projects: api.NewProjectHandler(projectSvc),
		Launch:   api.NewLaunchHandler(launchSvc),
		Delivery: api.NewDeliveryHandler(deliverySvc),
		Tasks:    api.NewTaskHandler(taskSvc),
		Workers:  api.NewWorkerHandler(workerSvc),
		Activity: api.NewActivityHandler(activitySvc),
	}, cfg.Auth.Token, logger)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		logger.Info("server listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
		}
	}()

	waitForShutdown(logger, httpServer, cancel)
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func waitForShutdown(logger *slog.Logger, server *http.Server, cancel context.CancelFunc) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	cancel()

	ctx, cancelTimeout := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelTimeout()

	logger.Info("shutting down")
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
