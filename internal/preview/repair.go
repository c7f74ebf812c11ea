package preview

import (
	"bytes"
	"context"
	"image"
	"image/png"

	"github.com/knkgun/gallery/internal/logging"
	"github.com/knkgun/gallery/internal/metrics"
)

// CacheRepairer overwrites a broken cached preview with a fixed one.
type CacheRepairer struct {
	Store CacheStore
}

// NewCacheRepairer creates a CacheRepairer writing to store.
func NewCacheRepairer(store CacheStore) *CacheRepairer {
	return &CacheRepairer{Store: store}
}

// Repair stores fixed under key and returns what the cache now holds. If the cache can't be
// written or read back, fixed itself is returned.
func (r *CacheRepairer) Repair(ctx context.Context, key CacheKey, fixed image.Image) image.Image {
	data, err := encodePNG(fixed)
	if err != nil {
		logging.Log.Warnf("[preview] cache repair for %s skipped: %v", key, err)
		metrics.CacheRepairs.WithLabelValues("uncached").Inc()
		return fixed
	}

	if err := r.Store.Write(ctx, key, data); err != nil {
		logging.Log.Warnf("[preview] could not store fixed preview %s: %v", key, err)
		metrics.CacheRepairs.WithLabelValues("uncached").Inc()
		return fixed
	}

	cached, err := r.Store.Read(ctx, key)
	if err != nil {
		logging.Log.Warnf("[preview] could not read back fixed preview %s: %v", key, err)
		metrics.CacheRepairs.WithLabelValues("uncached").Inc()
		return fixed
	}
	img, err := png.Decode(bytes.NewReader(cached))
	if err != nil {
		logging.Log.Warnf("[preview] cached preview %s is not a valid png: %v", key, err)
		metrics.CacheRepairs.WithLabelValues("uncached").Inc()
		return fixed
	}

	logging.Log.Debugf("[preview] cache repaired for %s", key)
	metrics.CacheRepairs.WithLabelValues("cached").Inc()
	return img
}
