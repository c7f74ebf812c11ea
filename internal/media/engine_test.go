// filepath: internal/media/engine_test.go
package media

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"sync"
	"testing"

	"github.com/knkgun/gallery/internal/preview"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestImage creates an in-memory PNG of the given size.
func createTestImage(t *testing.T, width, height int) []byte {
	t.Helper()
	if width <= 0 || height <= 0 {
		t.Fatalf("createTestImage helper: invalid dimensions %dx%d", width, height)
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	blue := color.RGBA{0, 0, 255, 255}
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, blue)
		}
	}

	buf := new(bytes.Buffer)
	if err := png.Encode(buf, img); err != nil {
		t.Fatalf("Failed to encode test image: %v", err)
	}
	return buf.Bytes()
}

func testFile(mediaType string, data []byte) *preview.SourceFile {
	return &preview.SourceFile{
		ID:        "01JA0000000000000000000000",
		Owner:     "alice",
		Path:      "pictures/test",
		MediaType: mediaType,
		Size:      int64(len(data)),
		Opener: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}
}

type mapStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMapStore() *mapStore { return &mapStore{data: map[string][]byte{}} }

func (s *mapStore) Write(_ context.Context, key preview.CacheKey, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key.String()] = data
	return nil
}

func (s *mapStore) Read(_ context.Context, key preview.CacheKey) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.data[key.String()]
	if !ok {
		return nil, preview.ErrCacheMiss
	}
	return d, nil
}

func TestScale(t *testing.T) {
	testCases := []struct {
		name           string
		origWidth      int
		origHeight     int
		opts           preview.GenerateOptions
		expectedWidth  int
		expectedHeight int
	}{
		{"Landscape (600x400)", 600, 400, preview.GenerateOptions{MaxX: 200, MaxY: 200, KeepAspect: true}, 200, 133},
		{"Portrait (400x600)", 400, 600, preview.GenerateOptions{MaxX: 200, MaxY: 200, KeepAspect: true}, 133, 200},
		{"Square (500x500)", 500, 500, preview.GenerateOptions{MaxX: 200, MaxY: 200, KeepAspect: true}, 200, 200},
		{"Small (100x50) - Does not scale up", 100, 50, preview.GenerateOptions{MaxX: 200, MaxY: 200, KeepAspect: true}, 100, 50},
		{"Small (100x50) - Scaling up", 100, 50, preview.GenerateOptions{MaxX: 200, MaxY: 200, KeepAspect: true, ScalingUp: true}, 200, 100},
		{"Crop (600x400)", 600, 400, preview.GenerateOptions{MaxX: 200, MaxY: 200}, 200, 200},
		{"Crop too small falls back to fit", 300, 100, preview.GenerateOptions{MaxX: 200, MaxY: 200}, 200, 66},
		{"Width only", 800, 400, preview.GenerateOptions{MaxX: 400, KeepAspect: true}, 400, 200},
		{"No bounds", 800, 400, preview.GenerateOptions{KeepAspect: true}, 800, 400},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			src := image.NewNRGBA(image.Rect(0, 0, tc.origWidth, tc.origHeight))
			out := Scale(src, tc.opts)
			assert.Equal(t, tc.expectedWidth, out.Bounds().Dx(), "width")
			assert.Equal(t, tc.expectedHeight, out.Bounds().Dy(), "height")
		})
	}
}

func TestEngine_GenerateStoresAndReusesPreview(t *testing.T) {
	store := newMapStore()
	engine := NewEngine(store, nil, false)
	file := testFile("image/png", createTestImage(t, 600, 400))
	opts := preview.GenerateOptions{MaxX: 200, MaxY: 200, KeepAspect: true}

	img, err := engine.Generate(context.Background(), file, opts)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 200, 133), img.Bounds())
	require.Len(t, store.data, 1)

	// A repaired entry in the cache wins over rendering.
	repaired := image.NewNRGBA(image.Rect(0, 0, 200, 200))
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, repaired))
	require.NoError(t, store.Write(context.Background(), preview.CacheKeyFor(file, opts), buf.Bytes()))

	img, err = engine.Generate(context.Background(), file, opts)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 200, 200), img.Bounds())
}

func TestEngine_GenerateFailures(t *testing.T) {
	engine := NewEngine(nil, nil, false)

	t.Run("Corrupt data", func(t *testing.T) {
		_, err := engine.Generate(context.Background(), testFile("image/png", []byte("this is not a valid image")), preview.GenerateOptions{MaxX: 200, MaxY: 200})
		require.Error(t, err)
		assert.True(t, errors.Is(err, preview.ErrGenerationFailed))
	})

	t.Run("Unsupported type", func(t *testing.T) {
		_, err := engine.Generate(context.Background(), testFile("application/pdf", []byte("%PDF-1.4")), preview.GenerateOptions{MaxX: 200, MaxY: 200})
		assert.ErrorIs(t, err, preview.ErrGenerationFailed)
	})

	t.Run("Unreadable file", func(t *testing.T) {
		file := testFile("image/png", nil)
		file.Opener = nil
		_, err := engine.Generate(context.Background(), file, preview.GenerateOptions{MaxX: 200, MaxY: 200})
		assert.ErrorIs(t, err, preview.ErrGenerationFailed)
	})
}

func TestEngine_IsMimeSupported(t *testing.T) {
	engine := NewEngine(nil, NewConverter("/nonexistent/convert"), false)

	assert.True(t, engine.IsMimeSupported("image/jpeg"))
	assert.True(t, engine.IsMimeSupported("image/webp"))
	assert.True(t, engine.IsMimeSupported("image/tiff"))
	assert.False(t, engine.IsMimeSupported("application/pdf"))
	assert.False(t, engine.IsMimeSupported(preview.MediaTypeSVG), "svg is disabled")
}
