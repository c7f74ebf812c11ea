// filepath: internal/repository/previews.go
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/knkgun/gallery/internal/models"
	"github.com/knkgun/gallery/internal/preview"
	"github.com/knkgun/gallery/internal/shared"
)

func previewKeyEq(key preview.CacheKey) squirrel.Eq {
	return squirrel.Eq{
		"owner":       key.Owner,
		"file_id":     key.FileID,
		"max_x":       key.MaxX,
		"max_y":       key.MaxY,
		"keep_aspect": key.KeepAspect,
	}
}

// PutPreview stores an encoded preview, replacing any previous entry for the same key.
func (s *Repository) PutPreview(ctx context.Context, key preview.CacheKey, data []byte) error {
	query, args, err := s.Builder.
		Insert("preview_cache").
		Columns("owner", "file_id", "max_x", "max_y", "keep_aspect", "data", "size", "created_at").
		Values(key.Owner, key.FileID, key.MaxX, key.MaxY, key.KeepAspect, data, len(data), time.Now().Unix()).
		Suffix(`ON CONFLICT(owner, file_id, max_x, max_y, keep_aspect)
			DO UPDATE SET data = excluded.data, size = excluded.size, created_at = excluded.created_at`).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := s.DB.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to store preview %s: %w", key, err)
	}
	return nil
}

// GetPreview returns the encoded preview stored for key, or shared.ErrPreviewNotFound.
func (s *Repository) GetPreview(ctx context.Context, key preview.CacheKey) ([]byte, error) {
	query, args, err := s.Builder.
		Select("data").
		From("preview_cache").
		Where(previewKeyEq(key)).
		ToSql()
	if err != nil {
		return nil, err
	}

	var data []byte
	if err := s.DB.QueryRowContext(ctx, query, args...).Scan(&data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, shared.ErrPreviewNotFound
		}
		return nil, fmt.Errorf("failed to load preview %s: %w", key, err)
	}
	return data, nil
}

// DeletePreviewsOlderThan removes previews stored before cutoff and returns how many went.
func (s *Repository) DeletePreviewsOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	query, args, err := s.Builder.
		Delete("preview_cache").
		Where(squirrel.Lt{"created_at": cutoff.Unix()}).
		ToSql()
	if err != nil {
		return 0, err
	}
	res, err := s.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to purge previews: %w", err)
	}
	return res.RowsAffected()
}

// CountPreviews returns the number and total size of stored previews.
func (s *Repository) CountPreviews(ctx context.Context) (*models.CacheStats, error) {
	query, args, err := s.Builder.
		Select("COUNT(*)", "COALESCE(SUM(size), 0)").
		From("preview_cache").
		ToSql()
	if err != nil {
		return nil, err
	}

	stats := &models.CacheStats{}
	if err := s.DB.QueryRowContext(ctx, query, args...).Scan(&stats.PreviewCount, &stats.TotalBytes); err != nil {
		return nil, fmt.Errorf("failed to count previews: %w", err)
	}
	return stats, nil
}
