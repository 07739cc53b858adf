package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"cadence/configs"
	"cadence/delivery/rest"
	"cadence/domain/repository"
	"cadence/infrastructure/logger"
	"cadence/repository/mysql"
	"cadence/repository/postgres"
	"cadence/server"
	"cadence/task"
)

func main() {
	if err := logger.InitFromEnv(); err != nil {
		panic(err)
	}
	defer logger.Sync()

	log := logger.Named("main")

	cfg, err := configs.LoadConfig("")
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	ctx := context.Background()

	var taskRepo repository.TaskRepository
	switch cfg.Database.Driver {
	case "mysql":
		db, err := mysql.NewConnection(&cfg.Database)
		if err != nil {
			log.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer mysql.Close(db)
		if err := mysql.EnsureSchema(db); err != nil {
			log.Fatal("Failed to apply schema", zap.Error(err))
		}
		taskRepo = mysql.NewTaskRepository(db)
	default:
		pool, err := postgres.NewPool(ctx, &cfg.Database)
		if err != nil {
			log.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer pool.Close()
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			log.Fatal("Failed to apply schema", zap.Error(err))
		}
		taskRepo = postgres.NewTaskRepository(pool)
	}

	taskService := task.NewService(taskRepo)

	reminder := task.NewReminder(taskRepo, task.ReminderConfig{
		Interval:  cfg.Reminder.Interval,
		Lookahead: cfg.Reminder.Lookahead,
		BatchSize: cfg.Reminder.BatchSize,
	}, logger.Named("reminder"))
	if err := reminder.Start(); err != nil {
		log.Fatal("Failed to start reminder sweeper", zap.Error(err))
	}

	h := rest.NewHandler(taskService, logger.Named("rest"))
	srv := server.NewServer(cfg.Server, h, logger.Get())

	shutdownCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed", zap.Error(err))
		}
	}()

	log.Info("Server started",
		zap.String("address", cfg.Server.Address()),
		zap.String("database", cfg.Database.Driver),
	)

	<-shutdownCtx.Done()
	log.Info("Shutting down server...")

	stopCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(stopCtx); err != nil {
		log.Error("Server shutdown failed", zap.Error(err))
	}

	reminder.Stop()
	log.Info("Server stopped")
}
