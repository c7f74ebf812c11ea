// filepath: internal/repository/files.go
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/knkgun/gallery/internal/shared"
	"github.com/oklog/ulid/v2"
	"github.com/patrickmn/go-cache"
)

// GetOrCreateFileID returns the stable id of owner's file at path, allocating a new ULID the
// first time the file is seen.
func (s *Repository) GetOrCreateFileID(ctx context.Context, owner, path string) (string, error) {
	if strings.TrimSpace(owner) == "" {
		return "", fmt.Errorf("file owner: %w", shared.ErrInvalidName)
	}

	memoKey := owner + "\x00" + path
	if id, found := s.Cache.Get(memoKey); found {
		return id.(string), nil
	}

	// Insert first and ignore conflicts, so concurrent callers agree on one id.
	insert, args, err := s.Builder.
		Insert("files").
		Columns("id", "owner", "path", "created_at").
		Values(ulid.Make().String(), owner, path, time.Now().Unix()).
		Suffix("ON CONFLICT(owner, path) DO NOTHING").
		ToSql()
	if err != nil {
		return "", err
	}
	if _, err := s.DB.ExecContext(ctx, insert, args...); err != nil {
		return "", fmt.Errorf("failed to register file: %w", err)
	}

	query, args, err := s.Builder.
		Select("id").
		From("files").
		Where("owner = ? AND path = ?", owner, path).
		ToSql()
	if err != nil {
		return "", err
	}

	var id string
	if err := s.DB.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("file %s/%s vanished after insert", owner, path)
		}
		return "", err
	}

	s.Cache.Set(memoKey, id, cache.DefaultExpiration)
	return id, nil
}
