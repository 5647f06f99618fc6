package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/salafuz/admin-panel/internal/logger"
	"github.com/salafuz/admin-panel/internal/server"
	"github.com/salafuz/admin-panel/internal/server/config"
	"github.com/salafuz/admin-panel/internal/server/jwt"
	"github.com/salafuz/admin-panel/internal/server/middleware"
	"github.com/salafuz/admin-panel/internal/server/storage/files"
	"github.com/salafuz/admin-panel/internal/server/storage/sqlite"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// tokenCleanupInterval период удаления истекших refresh токенов
const tokenCleanupInterval = time.Hour

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	// Флаги переопределяют переменные окружения
	showVersion := flag.Bool("version", false, "Show version information")
	flag.StringVar(&cfg.Address, "addr", cfg.Address, "Listen address")
	flag.StringVar(&cfg.DBPath, "db", cfg.DBPath, "Path to SQLite database")
	flag.StringVar(&cfg.UploadDir, "uploads", cfg.UploadDir, "Directory for uploaded images")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error")
	flag.Parse()

	if *showVersion {
		printVersion()
		return 0
	}

	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := serve(ctx, cfg, log); err != nil {
		log.Error("server failed", "error", err)
		return 1
	}
	return 0
}

func serve(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	// 1. Хранилища
	db, err := sqlite.New(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("failed to close database", "error", err)
		}
	}()

	uploads, err := files.New(cfg.UploadDir)
	if err != nil {
		return fmt.Errorf("open upload dir: %w", err)
	}

	if err := server.EnsureAdmin(ctx, db, cfg.AdminLogin, cfg.AdminPassword, log); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	// 2. HTTP
	proxies, err := middleware.ParseTrustedProxies(cfg.TrustedProxies)
	if err != nil {
		return fmt.Errorf("parse SERVER_TRUSTED_PROXIES: %w", err)
	}
	limiter := middleware.NewRateLimiter(cfg.LoginRate, cfg.LoginWindow, log, middleware.WithTrustedProxies(proxies))
	defer limiter.Stop()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	router := server.NewRouter(server.Options{
		Logger:       log,
		Store:        db,
		Files:        uploads,
		Tokens:       jwt.NewService(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL),
		LoginLimiter: limiter,
		Registry:     registry,
		Version:      Version,
		MaxUpload:    cfg.MaxUploadBytes,
	})

	srv := &http.Server{
		Addr:              cfg.Address,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       time.Minute,
		WriteTimeout:      time.Minute,
		IdleTimeout:       2 * time.Minute,
	}

	go cleanupTokens(ctx, db, log)

	errCh := make(chan error, 1)
	go func() {
		log.Info("server started", "addr", cfg.Address, "version", Version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	// 3. Graceful shutdown
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

type expiredTokenDeleter interface {
	DeleteExpiredTokens(ctx context.Context) (int, error)
}

// cleanupTokens периодически удаляет истекшие refresh токены
func cleanupTokens(ctx context.Context, tokens expiredTokenDeleter, log *slog.Logger) {
	ticker := time.NewTicker(tokenCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := tokens.DeleteExpiredTokens(ctx)
			if err != nil {
				log.Warn("failed to delete expired tokens", "error", err)
				continue
			}
			if n > 0 {
				log.Info("expired tokens deleted", "count", n)
			}
		}
	}
}

func printVersion() {
	fmt.Printf("Admin Panel Server\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
