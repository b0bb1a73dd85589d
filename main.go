package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/matchbook/matchbook/internal/config"
	"github.com/matchbook/matchbook/internal/domain"
	"github.com/matchbook/matchbook/internal/handler"
	"github.com/matchbook/matchbook/internal/repository/filesystem"
	"github.com/matchbook/matchbook/internal/repository/sqlite"
	"github.com/matchbook/matchbook/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logOpts := &slog.HandlerOptions{Level: cfg.LogLevel}
	logger := slog.New(slog.NewMultiHandler(
		slog.NewTextHandler(os.Stdout, logOpts),
		slog.NewJSONHandler(os.Stderr, logOpts),
	))
	slog.SetDefault(logger)

	db, err := sqlite.New(cfg.DatabasePath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Migrate(context.Background()); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("database migrations applied")

	files, err := avatarStore(cfg, db)
	if err != nil {
		slog.Error("failed to open avatar store", "error", err)
		os.Exit(1)
	}
	slog.Info("avatar store ready", "backend", cfg.AvatarStore)

	avatarService := service.NewAvatarService(files)
	authService := service.NewAuthService(db.Users(), cfg.JWTSecret, cfg.BcryptCost)
	userService := service.NewUserService(db.Users(), avatarService, cfg.PageSize)
	postService := service.NewPostService(db.Posts(), cfg.PageSize)
	socialService := service.NewSocialService(db.Users(), db.Follows(), cfg.PageSize)

	// Five login/signup attempts per IP, refilling one every twelve seconds.
	limiter := service.NewTokenBucket(1.0/12, 5)
	defer limiter.Stop()

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, handler.Services{
		Auth:         authService,
		Users:        userService,
		Posts:        postService,
		Social:       socialService,
		Avatars:      avatarService,
		Limiter:      limiter,
		DB:           db,
		CookieSecure: cfg.CookieSecure,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler.Chain(mux, cfg.TrustProxy),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

func avatarStore(cfg *config.Config, db *sqlite.DB) (domain.FileStore, error) {
	if cfg.AvatarStore == config.AvatarStoreSQLite {
		return db.FileStore(), nil
	}
	store, err := filesystem.New(cfg.UploadDir)
	if err != nil {
		return nil, err
	}
	return store, nil
}
