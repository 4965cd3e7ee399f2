package main

import (
	"log/slog"
	"os"

	"github.com/sandervrielink/millionaire-1/internal/config"
	"github.com/sandervrielink/millionaire-1/internal/migrate"
)

// runMigrateCommand applies migrations and exits. Useful as a one-shot
// container command before rolling out a new server version.
func runMigrateCommand(cfg config.Config, log *slog.Logger) {
	if err := migrate.Up(cfg.Postgres.URL, cfg.Postgres.MigrationsDir, log); err != nil {
		log.Error("migrations", "err", err)
		os.Exit(1)
	}
}
