package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/filedepot/filedepot-go/internal/config"
	"github.com/filedepot/filedepot-go/internal/handler"
	"github.com/filedepot/filedepot-go/internal/middleware"
	"github.com/filedepot/filedepot-go/internal/queue"
	"github.com/filedepot/filedepot-go/internal/repository"
	"github.com/filedepot/filedepot-go/internal/service"
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

	rdb := repository.NewRedis(cfg.RedisHost, cfg.RedisPort)
	sessions := repository.NewSessionStore(rdb)

	userRepo := repository.NewUserRepository(db)
	fileRepo := repository.NewFileRepository(db)
	jobs := queue.NewClient(cfg.RedisAddr())

	authService := service.NewAuthService(userRepo, sessions)
	usersService := service.NewUsersService(userRepo, jobs)
	filesService := service.NewFilesService(fileRepo, jobs, cfg.FolderPath)
	statsService := service.NewStatsService(userRepo, fileRepo, db, sessions)

	appHandler := handler.NewAppHandler(statsService)
	authHandler := handler.NewAuthHandler(authService)
	usersHandler := handler.NewUsersHandler(usersService, authService)
	filesHandler := handler.NewFilesHandler(filesService, authService)

	r := chi.NewRouter()
	r.Use(middleware.Logger)

	r.Get("/status", appHandler.HandleStatus)
	r.Get("/stats", appHandler.HandleStats)
	r.Get("/disconnect", authHandler.HandleDisconnect)
	r.Get("/files/{id}/data", filesHandler.HandleData)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(5, 10))
		r.Post("/users", usersHandler.HandleRegister)
		r.Get("/connect", authHandler.HandleConnect)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.SessionAuth(authService))
		r.Get("/users/me", usersHandler.HandleMe)
		r.Get("/delete", usersHandler.HandleDelete)
		r.Post("/files", filesHandler.HandleUpload)
		r.Get("/files", filesHandler.HandleList)
		r.Get("/files/{id}", filesHandler.HandleGet)
		r.Put("/files/{id}/publish", filesHandler.HandlePublish)
		r.Put("/files/{id}/unpublish", filesHandler.HandleUnpublish)
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	if err := jobs.Close(); err != nil {
		slog.Warn("queue client close failed", "error", err)
	}
	if err := rdb.Close(); err != nil {
		slog.Warn("session store close failed", "error", err)
	}
	if err := db.Close(shutdownCtx); err != nil {
		slog.Warn("document store close failed", "error", err)
	}

	slog.Info("server stopped")
}
