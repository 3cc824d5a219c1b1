package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/filedepot/filedepot-go/internal/config"
	"github.com/filedepot/filedepot-go/internal/mailer"
	"github.com/filedepot/filedepot-go/internal/queue"
	"github.com/filedepot/filedepot-go/internal/repository"
	"github.com/filedepot/filedepot-go/internal/worker"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.Load()
	ctx := context.Background()

	db, err := repository.NewMongo(ctx, cfg.DBHost, cfg.DBPort, cfg.DBDatabase)
	if err != nil {
		slog.Error("document store connection failed", "error", err)
		os.Exit(1)
	}

	userRepo := repository.NewUserRepository(db)
	fileRepo := repository.NewFileRepository(db)

	var sender mailer.Sender
	gmail, err := mailer.NewGmail(ctx, cfg.GmailCredentials, cfg.GmailToken, cfg.GmailSender)
	if err != nil {
		slog.Warn("gmail mailer unavailable — welcome emails will fail and retry", "error", err)
		sender = mailer.Disabled{}
	} else {
		sender = gmail
	}

	thumbnails := worker.NewThumbnailProcessor(fileRepo)
	welcome := worker.NewWelcomeProcessor(userRepo, sender)

	srv := queue.NewServer(cfg.RedisAddr(), cfg.WorkerConcurrency)
	srv.Handle(queue.TaskThumbnailGenerate, thumbnails.Process)
	srv.Handle(queue.TaskWelcomeEmail, welcome.Process)

	go func() {
		slog.Info("worker starting", "concurrency", cfg.WorkerConcurrency)
		if err := srv.Run(); err != nil {
			slog.Error("worker error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down worker")
	srv.Shutdown()

	closeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.Close(closeCtx); err != nil {
		slog.Warn("document store close failed", "error", err)
	}

	slog.Info("worker stopped")
}
