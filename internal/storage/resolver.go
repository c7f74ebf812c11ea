// filepath: internal/storage/resolver.go
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/knkgun/gallery/internal/logging"
	"github.com/knkgun/gallery/internal/media"
	"github.com/knkgun/gallery/internal/preview"
)

// FileIndex hands out stable file ids.
type FileIndex interface {
	GetOrCreateFileID(ctx context.Context, owner, path string) (string, error)
}

// Resolver finds gallery files below Root. Each owner's files live in <Root>/<owner>/files.
type Resolver struct {
	Root  string
	Files FileIndex
}

var _ preview.FileResolver = (*Resolver)(nil)

func NewResolver(root string, files FileIndex) *Resolver {
	return &Resolver{Root: root, Files: files}
}

// OwnerRoot returns the directory holding owner's files.
func (r *Resolver) OwnerRoot(owner string) (string, error) {
	if owner == "" || owner == "." || owner == ".." || strings.ContainsAny(owner, `/\`) {
		return "", fmt.Errorf("%w: bad owner %q", preview.ErrInvalidPath, owner)
	}
	return filepath.Join(r.Root, owner, "files"), nil
}

// Resolve returns the SourceFile for path in owner's gallery.
func (r *Resolver) Resolve(ctx context.Context, owner, path string) (*preview.SourceFile, error) {
	base, err := r.OwnerRoot(owner)
	if err != nil {
		return nil, err
	}

	// --- SECURITY: Prevent Path Traversal ---
	full := filepath.Join(base, filepath.FromSlash(path))
	if full == base || !strings.HasPrefix(full, base+string(filepath.Separator)) {
		return nil, fmt.Errorf("%w: %q", preview.ErrInvalidPath, path)
	}
	rel := filepath.ToSlash(strings.TrimPrefix(full, base+string(filepath.Separator)))

	info, err := os.Stat(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", preview.ErrFileNotFound, rel)
		}
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a folder", preview.ErrFileNotFound, rel)
	}

	mediaType, err := detectFile(full)
	if err != nil {
		return nil, err
	}

	id, err := r.Files.GetOrCreateFileID(ctx, owner, rel)
	if err != nil {
		return nil, fmt.Errorf("could not get id for %s: %w", rel, err)
	}

	logging.Log.Debugf("[storage] resolved %s/%s to %s (%s)", owner, rel, id, mediaType)

	return &preview.SourceFile{
		ID:        id,
		Owner:     owner,
		Path:      rel,
		MediaType: mediaType,
		Size:      info.Size(),
		Opener: func() (io.ReadCloser, error) {
			return os.Open(full)
		},
	}, nil
}

func detectFile(full string) (string, error) {
	f, err := os.Open(full)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return media.DetectMediaType(f, filepath.Base(full))
}
