package cache

import (
	"context"
	"time"

	"github.com/knkgun/gallery/internal/config"
	"github.com/knkgun/gallery/internal/preview"
	gocache "github.com/patrickmn/go-cache"
)

// MemoryStore keeps previews in process memory. Entries expire after the configured time.
type MemoryStore struct {
	items *gocache.Cache
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates a MemoryStore. A zero expiration keeps entries forever.
func NewMemoryStore(expiration time.Duration) *MemoryStore {
	if expiration <= 0 {
		expiration = gocache.NoExpiration
	}
	return &MemoryStore{items: gocache.New(expiration, 10*time.Minute)}
}

func (s *MemoryStore) Write(_ context.Context, key preview.CacheKey, data []byte) error {
	stored := make([]byte, len(data))
	copy(stored, data)
	s.items.Set(key.String(), stored, gocache.DefaultExpiration)
	return nil
}

func (s *MemoryStore) Read(_ context.Context, key preview.CacheKey) ([]byte, error) {
	v, found := s.items.Get(key.String())
	if !found {
		return nil, preview.ErrCacheMiss
	}
	return v.([]byte), nil
}

func (s *MemoryStore) Backend() string { return config.CacheBackendMemory }

func (s *MemoryStore) Close() error { return nil }
