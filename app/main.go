package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"todo-widget/app/config"
	"todo-widget/app/controllers"
	"todo-widget/app/feedback"
	"todo-widget/app/logging"
	"todo-widget/app/routes"
	"todo-widget/app/services"
	"todo-widget/app/storage"
)

func main() {
	fs := flag.NewFlagSet("todo", flag.ExitOnError)
	cfg, err := config.Load(fs, os.Args[1:])
	if err != nil {
		logging.New("error", "text", nil).Fatal("invalid configuration", "err", err)
	}
	logger := logging.New(cfg.LogLevel, cfg.LogFormat, nil)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize the storage backend
	backend, err := storage.Open(ctx, cfg.Storage)
	if err != nil {
		logger.Fatal("failed to open storage", "backend", cfg.Storage.Backend, "err", err)
	}
	defer backend.Close(context.Background())

	// Initialize the service layer
	taskStore := services.NewTaskStore(backend, cfg.Storage.Key, logger)

	// Initialize the controller layer
	slot := feedback.NewSlot(cfg.FeedbackDelay.Duration)
	defer slot.Stop()
	taskController := controllers.NewTaskController(taskStore, slot, services.NewClockIDs(nil), logger)
	if err := taskController.Load(ctx); err != nil {
		logger.Fatal("failed to load tasks", "err", err)
	}

	// Setup HTTP server
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           routes.NewRouter(taskController, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("server is running", "addr", cfg.Addr, "backend", cfg.Storage.Backend, "config", cfg.ConfigFile)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server stopped", "err", err)
	}
}
