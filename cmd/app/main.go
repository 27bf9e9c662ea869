package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"parkease/internal/config"
	"parkease/internal/db"
	"parkease/internal/logger"
	"parkease/internal/notification"
	"parkease/internal/server"
	"parkease/internal/user"
)

// userEmailLookup adapts the user repository for notification delivery.
type userEmailLookup struct {
	repo user.Repository
}

func (l userEmailLookup) FindEmail(ctx context.Context, userID int) (string, string, error) {
	u, err := l.repo.FindByID(ctx, userID)
	if err != nil {
		return "", "", err
	}
	return u.Email, u.Name, nil
}

func main() {
	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}

	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("failed to connect to database: %v", err)
	}
	defer database.Close()

	if err := db.RunMigrations(database, "migrations"); err != nil {
		logger.Fatalf("failed to run migrations: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})

	notificationSvc := notification.NewService(
		notification.NewRepository(database),
		redisClient,
		userEmailLookup{repo: user.NewRepository(database)},
		notification.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			User:     cfg.SMTPUser,
			Pass:     cfg.SMTPPass,
			From:     cfg.EmailFrom,
			FromName: cfg.EmailFromName,
		},
	)

	workerCtx, stopWorker := context.WithCancel(context.Background())
	go notificationSvc.Start(workerCtx)

	srv := server.New(database, cfg, notificationSvc)

	go func() {
		logger.Info("server starting", "port", cfg.Port)
		if err := srv.Start(cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	stopWorker()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("forced shutdown: %v", err)
	}

	if err := notificationSvc.Close(); err != nil {
		logger.Errorf("failed to close redis: %v", err)
	}

	logger.Info("server stopped")
}
