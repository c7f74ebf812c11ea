package preview

import (
	"bytes"
	"errors"
	"io"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func frameHeader(terminator byte) []byte {
	return []byte{0x00, 0x21, 0xF9, 0x04, 0x04, 0x0A, 0x00, 0xFF, 0x00, terminator}
}

// gifStream builds a stream with the given headers separated by filler bytes.
func gifStream(headers ...[]byte) []byte {
	var buf bytes.Buffer
	buf.WriteString("GIF89a")
	buf.Write(bytes.Repeat([]byte{0x7F}, 32))
	for _, h := range headers {
		buf.Write(h)
		buf.Write(bytes.Repeat([]byte{0x7F}, 64))
	}
	return buf.Bytes()
}

func TestIsAnimated(t *testing.T) {
	testCases := []struct {
		name     string
		data     []byte
		expected bool
	}{
		{name: "empty stream", data: nil, expected: false},
		{name: "no frame header", data: gifStream(), expected: false},
		{name: "single frame", data: gifStream(frameHeader(0x2C)), expected: false},
		{name: "two frames", data: gifStream(frameHeader(0x2C), frameHeader(0x2C)), expected: true},
		{name: "three frames", data: gifStream(frameHeader(0x2C), frameHeader(0x2C), frameHeader(0x2C)), expected: true},
		{name: "photoshop terminator", data: gifStream(frameHeader(0x21), frameHeader(0x21)), expected: true},
		{name: "wrong terminator is ignored", data: gifStream(frameHeader(0x2C), frameHeader(0x3B)), expected: false},
		{name: "adjacent headers", data: append(frameHeader(0x2C), frameHeader(0x2C)...), expected: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			animated, err := IsAnimated(bytes.NewReader(tc.data))
			require.NoError(t, err)
			assert.Equal(t, tc.expected, animated)
		})
	}
}

func TestIsAnimated_HeadersInDifferentChunks(t *testing.T) {
	data := make([]byte, ChunkSize*2)
	copy(data[100:], frameHeader(0x2C))
	copy(data[ChunkSize+100:], frameHeader(0x2C))

	animated, err := IsAnimated(bytes.NewReader(data))
	require.NoError(t, err)
	assert.True(t, animated)
}

func TestIsAnimated_HeaderAcrossChunkBoundaryIsNotCounted(t *testing.T) {
	data := make([]byte, ChunkSize*2)
	copy(data[100:], frameHeader(0x2C))
	copy(data[ChunkSize-5:], frameHeader(0x2C))

	animated, err := IsAnimated(bytes.NewReader(data))
	require.NoError(t, err)
	assert.False(t, animated)
}

func TestIsAnimated_StopsAfterTwoHeaders(t *testing.T) {
	chunk := make([]byte, ChunkSize)
	copy(chunk[10:], frameHeader(0x2C))
	copy(chunk[500:], frameHeader(0x2C))

	// The reader fails after the first chunk; the scan must not get there.
	r := io.MultiReader(bytes.NewReader(chunk), iotest.ErrReader(errors.New("disk gone")))

	animated, err := IsAnimated(r)
	require.NoError(t, err)
	assert.True(t, animated)
}

func TestIsAnimated_ReadError(t *testing.T) {
	r := io.MultiReader(bytes.NewReader(gifStream(frameHeader(0x2C))), iotest.ErrReader(errors.New("disk gone")))

	_, err := IsAnimated(r)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStreamRead)
}

func TestCountFrameHeaders(t *testing.T) {
	assert.Equal(t, 0, countFrameHeaders(frameHeader(0x2C)[:9]))
	assert.Equal(t, 1, countFrameHeaders(frameHeader(0x2C)))
	assert.Equal(t, 3, countFrameHeaders(bytes.Repeat(frameHeader(0x21), 3)))
}
