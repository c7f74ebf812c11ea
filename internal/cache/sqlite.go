package cache

import (
	"context"
	"errors"

	"github.com/knkgun/gallery/internal/config"
	"github.com/knkgun/gallery/internal/preview"
	"github.com/knkgun/gallery/internal/shared"
)

// PreviewRepository is the part of the repository the sqlite store needs.
type PreviewRepository interface {
	PutPreview(ctx context.Context, key preview.CacheKey, data []byte) error
	GetPreview(ctx context.Context, key preview.CacheKey) ([]byte, error)
}

// SQLiteStore keeps previews in the preview_cache table.
type SQLiteStore struct {
	repo PreviewRepository
}

var _ Store = (*SQLiteStore)(nil)

func NewSQLiteStore(repo PreviewRepository) *SQLiteStore {
	return &SQLiteStore{repo: repo}
}

func (s *SQLiteStore) Write(ctx context.Context, key preview.CacheKey, data []byte) error {
	return s.repo.PutPreview(ctx, key, data)
}

func (s *SQLiteStore) Read(ctx context.Context, key preview.CacheKey) ([]byte, error) {
	data, err := s.repo.GetPreview(ctx, key)
	if errors.Is(err, shared.ErrPreviewNotFound) {
		return nil, preview.ErrCacheMiss
	}
	return data, err
}

func (s *SQLiteStore) Backend() string { return config.CacheBackendSQLite }

// Close is a no-op, the repository is closed by its owner.
func (s *SQLiteStore) Close() error { return nil }
