// filepath: internal/repository/migration.go
package repository

import (
	"fmt"

	"github.com/knkgun/gallery/internal/db/migrations"
	"github.com/knkgun/gallery/internal/logging"
	"github.com/pressly/goose/v3"
)

// setupGoose points goose at the embedded migrations.
func setupGoose() error {
	goose.SetBaseFS(migrations.FS)
	goose.SetLogger(logging.Log)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	return nil
}

func (s *Repository) versionTableExists() (bool, error) {
	var count int
	err := s.DB.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='goose_db_version'").Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// EnsureSchemaBootstrapped migrates a brand-new database to the latest schema. A database
// that already has a version table is left alone; upgrading it is the job of `migrate up`.
func (s *Repository) EnsureSchemaBootstrapped() error {
	exists, err := s.versionTableExists()
	if err != nil {
		return fmt.Errorf("failed to inspect database: %w", err)
	}
	if exists {
		return nil
	}

	logging.Log.Info("Fresh database detected, applying migrations...")
	return s.Migrate("up")
}

// ValidateSchema fails if the database is behind the embedded migrations.
func (s *Repository) ValidateSchema() error {
	if err := setupGoose(); err != nil {
		return err
	}

	latest, err := latestMigrationVersion()
	if err != nil {
		return err
	}

	exists, err := s.versionTableExists()
	if err != nil {
		return fmt.Errorf("failed to inspect database: %w", err)
	}
	if !exists {
		return fmt.Errorf("database schema is outdated (current: 0, latest: %d), run 'gallery migrate up'", latest)
	}

	current, err := goose.GetDBVersion(s.DB)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if current < latest {
		return fmt.Errorf("database schema is outdated (current: %d, latest: %d), run 'gallery migrate up'", current, latest)
	}
	return nil
}

// Migrate runs a goose command (up, down or status) against the embedded migrations.
func (s *Repository) Migrate(command string) error {
	if err := setupGoose(); err != nil {
		return err
	}

	// The migrations directory is embedded, so "." is the root of the embedded FS.
	dir := "."

	var gooseErr error
	switch command {
	case "up":
		gooseErr = goose.Up(s.DB, dir)
	case "down":
		gooseErr = goose.Down(s.DB, dir)
	case "status":
		gooseErr = goose.Status(s.DB, dir)
	default:
		return fmt.Errorf("unknown migration command: %s", command)
	}

	if gooseErr != nil {
		return fmt.Errorf("migration failed: %w", gooseErr)
	}
	return nil
}

func latestMigrationVersion() (int64, error) {
	all, err := goose.CollectMigrations(".", 0, goose.MaxVersion)
	if err != nil {
		return 0, fmt.Errorf("failed to collect migrations: %w", err)
	}
	last, err := all.Last()
	if err != nil {
		return 0, fmt.Errorf("no migrations embedded: %w", err)
	}
	return last.Version, nil
}
