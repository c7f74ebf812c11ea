// filepath: internal/cli/app.go
package cli

import (
	"fmt"

	"github.com/knkgun/gallery/internal/cache"
	"github.com/knkgun/gallery/internal/config"
	"github.com/knkgun/gallery/internal/icons"
	"github.com/knkgun/gallery/internal/logging"
	"github.com/knkgun/gallery/internal/media"
	"github.com/knkgun/gallery/internal/preview"
	"github.com/knkgun/gallery/internal/repository"
	"github.com/knkgun/gallery/internal/storage"
)

// app holds the preview pipeline shared by the server and the preview command.
type app struct {
	Repo     *repository.Repository
	Store    cache.Store
	Engine   *media.Engine
	Previews *preview.Service
}

// newApp opens the database and wires the preview pipeline.
func newApp(cfg *config.Config) (*app, error) {
	repo, err := repository.NewRepository(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize repository: %w", err)
	}

	// --- Conditional Auto-migrate on startup ---
	if err := repo.EnsureSchemaBootstrapped(); err != nil {
		repo.Close()
		return nil, fmt.Errorf("failed to bootstrap database: %w", err)
	}
	if err := repo.ValidateSchema(); err != nil {
		logging.Log.Error("---------------------------------------------------------------")
		logging.Log.Errorf("CRITICAL DATABASE ERROR: %v", err)
		logging.Log.Error("---------------------------------------------------------------")
		repo.Close()
		return nil, err
	}

	store, err := cache.New(cfg, repo)
	if err != nil {
		repo.Close()
		return nil, fmt.Errorf("failed to initialize preview cache: %w", err)
	}

	var converter *media.Converter
	if cfg.Preview.SVGEnabled {
		converter = media.NewConverter(cfg.Preview.ConvertPath)
		if !converter.Available() {
			logging.Log.Warn("SVG previews are enabled but ImageMagick convert was not found, SVGs are served as they are.")
		}
	}

	engine := media.NewEngine(store, converter, cfg.Preview.SVGEnabled)
	resolver := storage.NewResolver(cfg.Database.StorageRoot, repo)
	iconProvider := icons.NewProvider(cfg.Preview.IconDir)

	previews := preview.NewService(resolver, engine, store, iconProvider, cfg.Preview.SquareThumbnailWidth)
	previews.MaxDownloadSize = cfg.MaxDownloadSizeBytes

	return &app{
		Repo:     repo,
		Store:    store,
		Engine:   engine,
		Previews: previews,
	}, nil
}

// Close releases the cache store and the database.
func (a *app) Close() {
	if err := a.Store.Close(); err != nil {
		logging.Log.Warnf("Failed to close preview cache: %v", err)
	}
	if err := a.Repo.Close(); err != nil {
		logging.Log.Warnf("Failed to close database: %v", err)
	}
}
