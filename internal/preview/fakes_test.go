package preview

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockEngine is a testify mock of PreviewEngine.
type MockEngine struct {
	mock.Mock
}

func (m *MockEngine) IsMimeSupported(mediaType string) bool {
	return m.Called(mediaType).Bool(0)
}

func (m *MockEngine) Generate(ctx context.Context, file *SourceFile, opts GenerateOptions) (image.Image, error) {
	args := m.Called(ctx, file, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(image.Image), args.Error(1)
}

// MockResolver is a testify mock of FileResolver.
type MockResolver struct {
	mock.Mock
}

func (m *MockResolver) Resolve(ctx context.Context, owner, path string) (*SourceFile, error) {
	args := m.Called(ctx, owner, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*SourceFile), args.Error(1)
}

// stubIcons always returns the same icon.
type stubIcons struct {
	icon image.Image
}

func (s stubIcons) IconFor(string) image.Image { return s.icon }

// memoryStore is a CacheStore backed by a map.
type memoryStore struct {
	mu       sync.Mutex
	data     map[string][]byte
	writeErr error
	readErr  error
	writes   int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{data: map[string][]byte{}}
}

func (s *memoryStore) Write(_ context.Context, key CacheKey, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writes++
	if s.writeErr != nil {
		return s.writeErr
	}
	s.data[key.String()] = append([]byte(nil), data...)
	return nil
}

func (s *memoryStore) Read(_ context.Context, key CacheKey) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.readErr != nil {
		return nil, s.readErr
	}
	data, ok := s.data[key.String()]
	if !ok {
		return nil, ErrCacheMiss
	}
	return data, nil
}

var (
	_ PreviewEngine    = (*MockEngine)(nil)
	_ FileResolver     = (*MockResolver)(nil)
	_ CacheStore       = (*memoryStore)(nil)
	_ MimeIconProvider = stubIcons{}
)

func sourceFile(path, mediaType string, content []byte) *SourceFile {
	return &SourceFile{
		ID:        "01J9ZK3V6Q8P4W1B2C3D4E5F6G",
		Owner:     "alice",
		Path:      path,
		MediaType: mediaType,
		Size:      int64(len(content)),
		Opener: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(content)), nil
		},
	}
}

// streamTracker counts the streams handed out by a tracked file and how many were closed.
type streamTracker struct {
	mu     sync.Mutex
	opened int
	closed int
}

func (t *streamTracker) counts() (opened, closed int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.opened, t.closed
}

type trackedStream struct {
	io.Reader
	tracker *streamTracker
}

func (s *trackedStream) Close() error {
	s.tracker.mu.Lock()
	defer s.tracker.mu.Unlock()
	s.tracker.closed++
	return nil
}

// trackedFile is a SourceFile whose streams are built by newReader and counted by the
// returned tracker.
func trackedFile(path, mediaType string, size int64, newReader func() io.Reader) (*SourceFile, *streamTracker) {
	tracker := &streamTracker{}
	file := &SourceFile{
		ID:        "01J9ZK3V6Q8P4W1B2C3D4E5F6J",
		Owner:     "alice",
		Path:      path,
		MediaType: mediaType,
		Size:      size,
		Opener: func() (io.ReadCloser, error) {
			tracker.mu.Lock()
			defer tracker.mu.Unlock()
			tracker.opened++
			return &trackedStream{Reader: newReader(), tracker: tracker}, nil
		},
	}
	return file, tracker
}

func failingFile(path, mediaType string) *SourceFile {
	return &SourceFile{
		ID:        "01J9ZK3V6Q8P4W1B2C3D4E5F6H",
		Owner:     "alice",
		Path:      path,
		MediaType: mediaType,
		Opener: func() (io.ReadCloser, error) {
			return nil, errors.New("permission denied")
		},
	}
}

func pngBytes(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}
