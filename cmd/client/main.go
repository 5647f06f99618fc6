package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/salafuz/admin-panel/internal/client/api"
	"github.com/salafuz/admin-panel/internal/client/auth"
	"github.com/salafuz/admin-panel/internal/client/cli"
	"github.com/salafuz/admin-panel/internal/client/config"
	"github.com/salafuz/admin-panel/internal/client/iocli"
	"github.com/salafuz/admin-panel/internal/client/storage/boltdb"
	"github.com/salafuz/admin-panel/internal/client/store"
	"github.com/salafuz/admin-panel/internal/logger"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	// Глобальные флаги переопределяют переменные окружения
	showVersion := flag.Bool("version", false, "Show version information")
	flag.StringVar(&cfg.BaseURL, "server", cfg.BaseURL, "API base URL")
	flag.StringVar(&cfg.DBPath, "db", cfg.DBPath, "Path to local session database")
	flag.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "Request timeout")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error")
	flag.Parse()

	if *showVersion {
		printVersion()
		return 0
	}

	stdio := iocli.NewStdio()
	args := flag.Args()
	if len(args) == 0 {
		cli.PrintUsage(stdio)
		return 1
	}

	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Открываем BoltDB storage
	boltStorage, err := boltdb.New(ctx, cfg.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		return 1
	}
	defer func() {
		if err := boltStorage.Close(); err != nil {
			log.Error("failed to close database", "error", err)
		}
	}()

	apiClient := api.NewClient(cfg.BaseURL, api.WithTimeout(cfg.Timeout), api.WithLogger(log))

	session := auth.NewManager(apiClient, boltStorage, apiClient, log)
	apiClient.UseSession(session)
	if err := session.Restore(ctx); err != nil {
		log.Warn("failed to restore session", "error", err)
	}

	c := cli.New(stdio, apiClient, session, store.NewStores(apiClient, log), boltStorage)

	start := time.Now()
	if err := c.Run(ctx, args); err != nil {
		log.Debug("command failed", "command", args[0], "duration", time.Since(start), "error", err)
		if !errors.Is(err, cli.ErrUsage) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return 1
	}

	return 0
}

func printVersion() {
	fmt.Printf("Admin Panel Client\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
