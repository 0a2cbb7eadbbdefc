package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"gorm.io/gorm"

	appService "remindmail/internal/application/service"
	"remindmail/internal/config"
	"remindmail/internal/infrastructure/database/sqlite"
	"remindmail/internal/infrastructure/mail"
	"remindmail/internal/infrastructure/scheduler"
	"remindmail/internal/interfaces/api/handler"
	"remindmail/internal/interfaces/api/router"
	appLogger "remindmail/internal/pkg/logger"
)

func gracefulShutdown(apiServer *http.Server, schedulerSvc appService.SchedulerService, db *gorm.DB, appLog appLogger.Logger, done chan bool) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()
	appLog.Info("Shutting down gracefully, press Ctrl+C again to force")

	appLog.Info("Stopping scheduler...")
	schedulerSvc.Stop()

	appLog.Info("Closing database connection...")
	if err := sqlite.CloseDB(db); err != nil {
		appLog.Error("Error closing database", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		appLog.Error("Server forced to shutdown", err)
	}

	appLog.Info("Server exiting")
	done <- true
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLog, err := appLogger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	appLog.Info("Logger initialized.")

	db, err := sqlite.NewDB(cfg.Database.Path)
	if err != nil {
		appLog.Error("Failed to initialize database", err)
		os.Exit(1)
	}
	userRepo := sqlite.NewUserRepository(db)
	reminderRepo := sqlite.NewReminderRepository(db)
	appLog.Info("Database and repositories initialized.")

	mailClient := mail.NewClient(cfg.SMTP, appLog)
	cronScheduler := scheduler.NewScheduler(appLog)

	schedulerSvc := appService.NewSchedulerService(cronScheduler, mailClient, reminderRepo, userRepo, appLog)
	userSvc := appService.NewUserService(userRepo, appLog)
	reminderSvc := appService.NewReminderService(reminderRepo, userSvc, schedulerSvc, appLog)
	appLog.Info("Application services initialized.")

	if err := schedulerSvc.InitializeSchedules(context.Background()); err != nil {
		// Keep starting; missing triggers are recreated on the next update of each
		// reminder, and a restart retries the full scan.
		appLog.Error("Failed to initialize schedules on startup", err)
	}

	reminderHandler := handler.NewReminderHandler(reminderSvc, appLog)
	echoRouter := router.NewRouter(&router.Config{
		ReminderHandler: reminderHandler,
		Logger:          appLog,
	})

	apiServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      echoRouter,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	done := make(chan bool, 1)
	go gracefulShutdown(apiServer, schedulerSvc, db, appLog, done)

	appLog.Info(fmt.Sprintf("Server starting on port %d", cfg.Port))
	if err := apiServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		appLog.Error("HTTP server ListenAndServe error", err)
		os.Exit(1)
	}

	<-done
	appLog.Info("Graceful shutdown complete.")
}
