package main

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"facethewall/internal/config"
	"facethewall/internal/logging"
)

func main() {
	logging.SetGlobalLogger(logging.New(logging.Config{Level: "info", Format: "text"}))

	if len(os.Args) != 2 || (os.Args[1] != "up" && os.Args[1] != "down") {
		log.Fatal().Msg("Usage: migrate [up|down]")
	}

	config.LoadEnvFiles()
	dbCfg, err := config.LoadDatabase()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load database config")
	}
	if dbCfg.URL == "" {
		log.Fatal().Msg("DATABASE_URL is required (or DB_HOST, DB_USER, DB_NAME)")
	}

	db, err := sql.Open("postgres", dbCfg.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create postgres driver")
	}

	sourceURL, err := migrationsSource(os.Getenv("MIGRATIONS_DIR"))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to locate migrations")
	}

	m, err := migrate.NewWithDatabaseInstance(sourceURL, "postgres", driver)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create migrate instance")
	}

	if os.Args[1] == "up" {
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatal().Err(err).Msg("Failed to run migrations")
		}
		log.Info().Msg("Migrations applied successfully")
		return
	}

	if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Fatal().Err(err).Msg("Failed to rollback migrations")
	}
	log.Info().Msg("Migrations rolled back successfully")
}

// migrationsSource resolves the migrations directory to a file:// URL. It
// defaults to ./migrations relative to the working directory.
func migrationsSource(dir string) (string, error) {
	if dir == "" {
		dir = "migrations"
	}
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", dir, err)
	}
	if info, err := os.Stat(absPath); err != nil || !info.IsDir() {
		return "", fmt.Errorf("migrations directory %s not found", absPath)
	}
	return "file://" + filepath.ToSlash(absPath), nil
}
