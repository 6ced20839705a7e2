package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"salespipe/internal/config"
	"salespipe/internal/core"
	"salespipe/internal/logging"
	"salespipe/internal/sink"
	"salespipe/internal/store"
	"salespipe/internal/web"
)

func main() {
	// Load .env if present (Overload overwrites existing env vars).
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"data_dir", cfg.Storage.DataDir,
		"upload_max_concurrent", cfg.Upload.MaxConcurrent,
		"sink_enabled", cfg.Database.SinkEnabled(),
	)

	artifacts, err := store.NewFileStore(cfg.Storage.DataDir)
	if err != nil {
		slog.Error("failed to create artifact store", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	// The database is optional: without DATABASE_URL the ingestion
	// endpoint reports the sink as unconfigured and everything else
	// still works.
	var dataSink core.Sink
	var pool *pgxpool.Pool
	if cfg.Database.SinkEnabled() {
		poolConfig, err := pgxpool.ParseConfig(cfg.Database.URL)
		if err != nil {
			slog.Error("failed to parse database URL", "error", err)
			os.Exit(1)
		}
		poolConfig.MaxConns = int32(cfg.Database.MaxConns)
		poolConfig.MinConns = int32(cfg.Database.MinConns)
		poolConfig.MaxConnLifetime = cfg.Database.MaxConnLifetime
		poolConfig.MaxConnIdleTime = cfg.Database.MaxConnIdleTime

		pool, err = pgxpool.NewWithConfig(ctx, poolConfig)
		if err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		if err := pool.Ping(ctx); err != nil {
			slog.Error("failed to ping database", "error", err)
			os.Exit(1)
		}

		dataSink, err = sink.New(ctx, pool)
		if err != nil {
			slog.Error("failed to initialize sink", "error", err)
			os.Exit(1)
		}
		slog.Info("persistence sink ready")
	}

	service := core.NewService(artifacts, dataSink, core.Options{
		MaxConcurrentRuns: cfg.Upload.MaxConcurrent,
		MaxWaitTime:       cfg.Upload.MaxWaitTime,
	})

	server := web.NewServer(service, cfg)

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if status := service.LimiterStatus(); status.Active > 0 {
			slog.Info("waiting for runs to complete", "active", status.Active)
			if err := service.WaitForRuns(shutdownCtx); err != nil {
				slog.Warn("runs did not complete in time", "error", err)
			}
		}

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	slog.Info("server starting", "addr", cfg.Server.Addr())
	if err := server.Start(); err != nil {
		slog.Info("server stopped", "error", err)
	}
}
