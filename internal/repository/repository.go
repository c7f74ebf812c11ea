// filepath: internal/repository/repository.go
package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/knkgun/gallery/internal/config"
	"github.com/patrickmn/go-cache"

	_ "modernc.org/sqlite" // SQLite driver
)

// Repository is the sqlite backed store of file identities and cached previews.
type Repository struct {
	DB      *sql.DB
	Cache   *cache.Cache                  // file id memo
	Builder squirrel.StatementBuilderType // SQL Query Builder
}

// NewRepository opens the database configured in cfg. The schema is not touched; see
// EnsureSchemaBootstrapped and the migrate command.
func NewRepository(cfg *config.Config) (*Repository, error) {
	db, err := sql.Open("sqlite", cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", cfg.Database.Path, err)
	}

	// sqlite serialises writers anyway; one connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA busy_timeout = 5000;",
		"PRAGMA foreign_keys = ON;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to configure database (%s): %w", p, err)
		}
	}

	return &Repository{
		DB:      db,
		Cache:   cache.New(10*time.Minute, 20*time.Minute),
		Builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}, nil
}

// Close closes the underlying database.
func (s *Repository) Close() error {
	return s.DB.Close()
}
