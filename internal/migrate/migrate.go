package migrate

import (
	"fmt"
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// Up applies every pending migration in dir against the database at dbURL.
// Errors come back to the caller; nothing here exits the process.
func Up(dbURL, dir string, log *slog.Logger) error {
	db, err := goose.OpenDBWithDriver("pgx", dbURL)
	if err != nil {
		return fmt.Errorf("migrations: open db: %w", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil && log != nil {
			log.Warn("migrations: close db", "error", cerr)
		}
	}()

	if log != nil {
		log.Info("applying migrations", "dir", dir)
	}
	if err := goose.Up(db, dir); err != nil {
		return fmt.Errorf("migrations: up: %w", err)
	}
	if log != nil {
		log.Info("migrations up to date")
	}
	return nil
}
