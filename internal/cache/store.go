// Package cache holds the preview cache stores: the sqlite table (default), an in-process
// go-cache map and a shared redis instance.
package cache

import (
	"fmt"

	"github.com/knkgun/gallery/internal/config"
	"github.com/knkgun/gallery/internal/preview"
)

// Store is a preview.CacheStore the application owns and has to close.
type Store interface {
	preview.CacheStore
	Backend() string
	Close() error
}

// New creates the store selected by cfg.Cache.Backend. repo is only used by the sqlite backend.
func New(cfg *config.Config, repo PreviewRepository) (Store, error) {
	switch cfg.Cache.Backend {
	case config.CacheBackendSQLite, "":
		if repo == nil {
			return nil, fmt.Errorf("sqlite cache backend needs a repository")
		}
		return NewSQLiteStore(repo), nil
	case config.CacheBackendMemory:
		return NewMemoryStore(cfg.CacheExpiration), nil
	case config.CacheBackendRedis:
		return NewRedisStore(RedisOptions{
			Addr:       cfg.Cache.RedisAddr,
			Password:   cfg.Cache.RedisPassword,
			DB:         cfg.Cache.RedisDB,
			Expiration: cfg.CacheExpiration,
		})
	default:
		return nil, fmt.Errorf("unknown cache backend: %s", cfg.Cache.Backend)
	}
}
