package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"tasktracker/internal/auth"
	"tasktracker/internal/config"
	"tasktracker/internal/database"
	"tasktracker/internal/domain"
	"tasktracker/internal/logger"
	"tasktracker/internal/repository"
	"tasktracker/internal/server"
	"tasktracker/internal/service"
	"tasktracker/internal/storage"
)

func gracefulShutdown(apiServer *http.Server, dbService database.Service, log *logrus.Logger, stopJobs context.CancelFunc, done chan bool) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	log.Info("shutting down gracefully, press Ctrl+C again to force")
	stop()
	stopJobs()

	// The server has 5 seconds to finish in-flight requests.
	ctxTimeout, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(ctxTimeout); err != nil {
		log.WithError(err).Error("server forced to shutdown")
	}

	if err := dbService.Close(); err != nil {
		log.WithError(err).Error("error closing database connection pool")
	}

	log.Info("server exiting")
	done <- true
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	log := logger.New(cfg.LogLevel)

	dbService, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	gormDB := dbService.GetDB()

	err = gormDB.AutoMigrate(
		&domain.User{},
		&domain.TaskList{},
		&domain.Task{},
		&domain.Checklist{},
		&domain.ChecklistItem{},
		&domain.Attachment{},
	)
	if err != nil {
		log.Fatalf("Failed to auto-migrate database: %v", err)
	}

	store, err := storage.NewMinIOStorage(context.Background(), cfg.Storage)
	if err != nil {
		log.Fatalf("Failed to initialize object storage: %v", err)
	}

	userRepo := repository.NewGormUserRepository(gormDB)
	taskRepo := repository.NewGormTaskRepository(gormDB)
	taskListRepo := repository.NewGormTaskListRepository(gormDB)
	checklistRepo := repository.NewGormChecklistRepository(gormDB)

	tokens := auth.NewTokenManager(cfg.SecretKey, cfg.TokenTTL())

	authService := service.NewAuthService(userRepo, tokens, log, cfg.Testing)
	taskService := service.NewTaskService(taskRepo, taskListRepo, store, log)
	taskListService := service.NewTaskListService(taskListRepo)
	checklistService := service.NewChecklistService(checklistRepo, taskRepo)

	// Background due-soon reminder, independent of request handling.
	jobCtx, stopJobs := context.WithCancel(context.Background())
	reminder := service.NewReminder(taskRepo, log, cfg.ReminderInterval)
	go reminder.Run(jobCtx)

	apiServer := server.NewServer(server.Deps{
		Config:     cfg,
		Log:        log,
		DB:         dbService,
		Tokens:     tokens,
		Auth:       authService,
		Tasks:      taskService,
		TaskLists:  taskListService,
		Checklists: checklistService,
	})

	done := make(chan bool, 1)
	go gracefulShutdown(apiServer, dbService, log, stopJobs, done)

	log.WithField("addr", apiServer.Addr).Info("starting server")
	err = apiServer.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("HTTP server ListenAndServe error: %v", err)
	}

	<-done
	log.Info("graceful shutdown complete")
}
