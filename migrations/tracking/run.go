// Command tracking applies the tracking schema migrations.
package main

import (
	"context"
	"embed"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ghuser/hourglass/pkg/config"
	"github.com/ghuser/hourglass/pkg/logger"
	"github.com/ghuser/hourglass/pkg/migrator"
)

const versionTable = "tracking_goose_version"

//go:embed *.sql
var MigrationsFS embed.FS

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	applied, err := migrator.RunMigrations(ctx, cfg.DatabaseURL, versionTable, MigrationsFS)
	if err != nil {
		log.Error("failed to run migrations", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	log.Info("tracking migrations applied", "count", len(applied), "versions", applied)
}
