package preview

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type serviceFixture struct {
	engine   *MockEngine
	resolver *MockResolver
	store    *memoryStore
	icon     image.Image
	service  *Service
}

func newServiceFixture() *serviceFixture {
	f := &serviceFixture{
		engine:   new(MockEngine),
		resolver: new(MockResolver),
		store:    newMemoryStore(),
		icon:     solidImage(128, 128, color.NRGBA{B: 255, A: 255}),
	}
	f.service = NewService(f.resolver, f.engine, f.store, stubIcons{icon: f.icon}, DefaultSquareThumbnailWidth)
	return f
}

func mustRequest(t *testing.T, maxX, maxY int) Request {
	t.Helper()
	req, err := NewRequest(maxX, maxY)
	require.NoError(t, err)
	return req
}

func TestResolveFile_AnimatedGIFServedAsOriginal(t *testing.T) {
	f := newServiceFixture()
	content := gifStream(frameHeader(0x2C), frameHeader(0x2C), frameHeader(0x2C))
	file := sourceFile("holiday/cat.gif", MediaTypeGIF, content)
	f.engine.On("IsMimeSupported", MediaTypeGIF).Return(true)

	res, err := f.service.ResolveFile(context.Background(), mustRequest(t, 200, 200), file)

	require.NoError(t, err)
	assert.Equal(t, KindDownload, res.Kind)
	assert.Equal(t, MediaTypeGIF, res.MediaType)
	assert.Equal(t, StatusOK, res.Status)
	assert.Equal(t, content, res.Bytes)
	assert.Equal(t, "holiday/cat.gif", res.Path)
	f.engine.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything, mock.Anything)
}

func TestResolveFile_AnimatedGIFAsStillThumbnail(t *testing.T) {
	f := newServiceFixture()
	file := sourceFile("cat.gif", MediaTypeGIF, gifStream(frameHeader(0x2C), frameHeader(0x2C)))
	req, err := ThumbnailRequest(200, 200, true)
	require.NoError(t, err)

	f.engine.On("IsMimeSupported", MediaTypeGIF).Return(true)
	f.engine.On("Generate", mock.Anything, file, GenerateOptions{MaxX: 200, MaxY: 200, KeepAspect: true}).
		Return(solidImage(200, 200, opaqueRed), nil)

	res, err := f.service.ResolveFile(context.Background(), req, file)

	require.NoError(t, err)
	assert.Equal(t, KindPreview, res.Kind)
	assert.True(t, res.Encoded)
	f.engine.AssertExpectations(t)
}

func TestResolveFile_RepairsMisshapenThumbnail(t *testing.T) {
	f := newServiceFixture()
	file := sourceFile("photo.jpg", "image/jpeg", []byte("jpeg"))
	f.engine.On("IsMimeSupported", "image/jpeg").Return(true)
	f.engine.On("Generate", mock.Anything, file, GenerateOptions{MaxX: 200, MaxY: 200, KeepAspect: true}).
		Return(solidImage(150, 300, opaqueRed), nil)

	res, err := f.service.ResolveFile(context.Background(), mustRequest(t, 200, 200), file)

	require.NoError(t, err)
	assert.Equal(t, KindPreview, res.Kind)
	assert.Equal(t, MediaTypePNG, res.MediaType)
	assert.Equal(t, StatusOK, res.Status)
	require.Equal(t, image.Rect(0, 0, 200, 200), res.Bitmap.Bounds())

	_, _, _, a := res.Bitmap.At(10, 100).RGBA()
	assert.Zero(t, a, "content must be centered horizontally")
	r, _, _, a := res.Bitmap.At(100, 100).RGBA()
	assert.Equal(t, uint32(0xffff), r)
	assert.Equal(t, uint32(0xffff), a)

	key := CacheKey{Owner: "alice", FileID: file.ID, MaxX: 200, MaxY: 200, KeepAspect: true}
	_, err = f.store.Read(context.Background(), key)
	assert.NoError(t, err, "fixed preview must be cached")
}

func TestResolveFile_GenerationFailureServesIcon(t *testing.T) {
	f := newServiceFixture()
	file := sourceFile("broken.png", MediaTypePNG, []byte("\x89PNG garbage"))
	f.engine.On("IsMimeSupported", MediaTypePNG).Return(true)
	f.engine.On("Generate", mock.Anything, file, mock.Anything).Return(nil, ErrGenerationFailed)

	res, err := f.service.ResolveFile(context.Background(), mustRequest(t, 200, 200), file)

	require.NoError(t, err)
	assert.Same(t, f.icon, res.Bitmap)
	assert.Equal(t, MediaTypePNG, res.MediaType)
	assert.Equal(t, StatusUnsupportedMediaType, res.Status)
}

func TestResolveFile_UnsupportedSVGServedAsOriginal(t *testing.T) {
	f := newServiceFixture()
	content := []byte(`<svg xmlns="http://www.w3.org/2000/svg"/>`)
	file := sourceFile("logo.svg", MediaTypeSVG, content)
	f.engine.On("IsMimeSupported", MediaTypeSVG).Return(false)

	res, err := f.service.ResolveFile(context.Background(), mustRequest(t, 200, 200), file)

	require.NoError(t, err)
	assert.Equal(t, KindDownload, res.Kind)
	assert.Equal(t, MediaTypeSVG, res.MediaType)
	assert.Equal(t, content, res.Bytes)
	f.engine.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything, mock.Anything)
}

func TestResolveFile_ForcedDownload(t *testing.T) {
	f := newServiceFixture()
	content := []byte("jpeg bytes")
	file := sourceFile("photo.jpg", "image/jpeg", content)
	f.engine.On("IsMimeSupported", "image/jpeg").Return(true)

	res, err := f.service.ResolveFile(context.Background(), DownloadRequest(), file)

	require.NoError(t, err)
	assert.Equal(t, KindDownload, res.Kind)
	assert.Equal(t, "image/jpeg", res.MediaType)
	assert.Equal(t, content, res.Bytes)
}

func TestResolveFile_EncodeAsText(t *testing.T) {
	f := newServiceFixture()
	file := sourceFile("photo.jpg", "image/jpeg", []byte("jpeg"))
	f.engine.On("IsMimeSupported", "image/jpeg").Return(true)
	f.engine.On("Generate", mock.Anything, file, mock.Anything).Return(solidImage(200, 120, opaqueRed), nil)

	res, err := f.service.ResolveFile(context.Background(), mustRequest(t, 200, 200).WithEncodeAsText(true), file)
	require.NoError(t, err)
	require.True(t, res.Encoded)

	raw, err := DecodeText(res.Text)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 200, 200), img.Bounds())
}

func TestResolveFile_StreamFailureIsFatal(t *testing.T) {
	f := newServiceFixture()
	f.engine.On("IsMimeSupported", MediaTypeGIF).Return(true)

	_, err := f.service.ResolveFile(context.Background(), mustRequest(t, 200, 200), failingFile("cat.gif", MediaTypeGIF))

	assert.ErrorIs(t, err, ErrStreamRead)
	f.engine.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything, mock.Anything)
}

func TestResolveFile_RejectsNegativeDimensions(t *testing.T) {
	f := newServiceFixture()

	_, err := f.service.ResolveFile(context.Background(), Request{MaxX: -5, MaxY: 200}, sourceFile("a.jpg", "image/jpeg", nil))

	assert.ErrorIs(t, err, ErrInvalidRequest)
	f.engine.AssertNotCalled(t, "IsMimeSupported", mock.Anything)
}

func TestResolve_UsesFileResolver(t *testing.T) {
	f := newServiceFixture()
	file := sourceFile("docs/readme.svg", MediaTypeSVG, []byte("<svg/>"))
	f.resolver.On("Resolve", mock.Anything, "alice", "docs/readme.svg").Return(file, nil)
	f.resolver.On("Resolve", mock.Anything, "alice", "missing.jpg").Return(nil, ErrFileNotFound)
	f.engine.On("IsMimeSupported", MediaTypeSVG).Return(false)

	res, err := f.service.Resolve(context.Background(), "alice", "docs/readme.svg", mustRequest(t, 200, 200))
	require.NoError(t, err)
	assert.Equal(t, "docs/readme.svg", res.Path)

	_, err = f.service.Resolve(context.Background(), "alice", "missing.jpg", mustRequest(t, 200, 200))
	assert.True(t, errors.Is(err, ErrFileNotFound))
}

func TestResolveFile_ReleasesStreams(t *testing.T) {
	t.Run("animation scan stops early", func(t *testing.T) {
		f := newServiceFixture()
		chunk := make([]byte, ChunkSize)
		copy(chunk[10:], frameHeader(0x2C))
		copy(chunk[500:], frameHeader(0x2C))
		file, tracker := trackedFile("cat.gif", MediaTypeGIF, int64(len(chunk)), func() io.Reader {
			return io.MultiReader(bytes.NewReader(chunk), iotest.ErrReader(errors.New("not reached")))
		})
		req, err := ThumbnailRequest(200, 200, true)
		require.NoError(t, err)
		f.engine.On("IsMimeSupported", MediaTypeGIF).Return(true)
		f.engine.On("Generate", mock.Anything, file, mock.Anything).Return(solidImage(200, 200, opaqueRed), nil)

		_, err = f.service.ResolveFile(context.Background(), req, file)

		require.NoError(t, err)
		opened, closed := tracker.counts()
		assert.Equal(t, 1, opened)
		assert.Equal(t, opened, closed)
	})

	t.Run("animation scan fails", func(t *testing.T) {
		f := newServiceFixture()
		content := gifStream(frameHeader(0x2C))
		file, tracker := trackedFile("cat.gif", MediaTypeGIF, int64(len(content)), func() io.Reader {
			return iotest.TimeoutReader(iotest.OneByteReader(bytes.NewReader(content)))
		})

		_, err := f.service.ResolveFile(context.Background(), mustRequest(t, 200, 200), file)

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrStreamRead)
		assert.ErrorIs(t, err, iotest.ErrTimeout)
		opened, closed := tracker.counts()
		assert.Equal(t, 1, opened)
		assert.Equal(t, opened, closed)
	})

	t.Run("original served", func(t *testing.T) {
		f := newServiceFixture()
		content := []byte("jpeg bytes")
		file, tracker := trackedFile("photo.jpg", "image/jpeg", int64(len(content)), func() io.Reader {
			return bytes.NewReader(content)
		})
		f.engine.On("IsMimeSupported", "image/jpeg").Return(true)

		res, err := f.service.ResolveFile(context.Background(), DownloadRequest(), file)

		require.NoError(t, err)
		assert.Equal(t, content, res.Bytes)
		opened, closed := tracker.counts()
		assert.Equal(t, 1, opened)
		assert.Equal(t, opened, closed)
	})
}

func TestResolveFile_DownloadLimit(t *testing.T) {
	t.Run("oversized file is never opened", func(t *testing.T) {
		f := newServiceFixture()
		f.service.MaxDownloadSize = 1 << 20
		file, tracker := trackedFile("huge.jpg", "image/jpeg", 4<<30, func() io.Reader {
			return bytes.NewReader(nil)
		})
		f.engine.On("IsMimeSupported", "image/jpeg").Return(true)

		res, err := f.service.ResolveFile(context.Background(), DownloadRequest(), file)

		require.Error(t, err)
		assert.Nil(t, res)
		assert.ErrorIs(t, err, ErrTooLarge)
		opened, _ := tracker.counts()
		assert.Zero(t, opened)
	})

	t.Run("file grown past the limit", func(t *testing.T) {
		f := newServiceFixture()
		f.service.MaxDownloadSize = 16
		content := bytes.Repeat([]byte{0x42}, 64)
		file, tracker := trackedFile("photo.jpg", "image/jpeg", 8, func() io.Reader {
			return bytes.NewReader(content)
		})
		f.engine.On("IsMimeSupported", "image/jpeg").Return(true)

		_, err := f.service.ResolveFile(context.Background(), DownloadRequest(), file)

		assert.ErrorIs(t, err, ErrTooLarge)
		opened, closed := tracker.counts()
		assert.Equal(t, 1, opened)
		assert.Equal(t, 1, closed)
	})

	t.Run("within the limit", func(t *testing.T) {
		f := newServiceFixture()
		f.service.MaxDownloadSize = 16
		content := bytes.Repeat([]byte{0x42}, 16)
		file, _ := trackedFile("photo.jpg", "image/jpeg", 16, func() io.Reader {
			return bytes.NewReader(content)
		})
		f.engine.On("IsMimeSupported", "image/jpeg").Return(true)

		res, err := f.service.ResolveFile(context.Background(), DownloadRequest(), file)

		require.NoError(t, err)
		assert.Equal(t, content, res.Bytes)
	})
}
