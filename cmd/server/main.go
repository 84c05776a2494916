// Package main implements the entry point for the cards API server, which
// issues, reads, updates and deletes payment cards keyed by mobile number.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"

	"github.com/phrazzld/cards-api/internal/config"
	"github.com/phrazzld/cards-api/internal/platform/logger"
	"github.com/phrazzld/cards-api/internal/platform/postgres"
)

func main() {
	migrateCmd := flag.String("migrate", "",
		"run a database migration command and exit (up, down, status, version, reset, redo)")
	flag.Parse()

	if err := run(context.Background(), *migrateCmd); err != nil {
		log.Fatalf("cards-api: %v", err)
	}
}

// run loads configuration, then either executes a migration command or serves HTTP until shutdown.
func run(ctx context.Context, migrateCmd string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	l.Info("Server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("database_backend", cfg.Database.Backend),
		slog.Bool("cache_enabled", cfg.Redis.URL != ""),
		slog.Bool("auth_enabled", cfg.Auth.Enabled()))

	if migrateCmd != "" {
		return handleMigrations(ctx, cfg, l, migrateCmd, flag.Args()...)
	}

	db, err := setupAppDatabase(ctx, cfg, l)
	if err != nil {
		return err
	}

	app, err := newApplication(ctx, cfg, l, db)
	if err != nil {
		if db != nil {
			_ = db.Close()
		}
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.startHTTPServer(ctx, app.setupRouter())
}

// handleMigrations executes a goose command against the configured database and returns.
func handleMigrations(ctx context.Context, cfg *config.Config, l *slog.Logger, command string, args ...string) error {
	if cfg.Database.Backend != config.BackendPostgres {
		return fmt.Errorf("migrations require the %q backend, configured backend is %q",
			config.BackendPostgres, cfg.Database.Backend)
	}

	db, err := setupAppDatabase(ctx, cfg, l)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	l.Info("Executing migrations", slog.String("command", command))
	if err := postgres.RunMigrations(ctx, db, command, l, args...); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	l.Info("Migrations finished", slog.String("command", command))
	return nil
}
