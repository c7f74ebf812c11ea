package preview

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

// ChunkSize is how much of the file IsAnimated reads at a time.
const ChunkSize = 100 * 1024

// A GIF frame starts with a graphic control extension followed by an image descriptor:
//
//	00 21 F9 04 | 4 variable bytes | 00 2C
//
// Some encoders (Photoshop) write 00 21 instead of 00 2C.
var frameHeaderPrefix = []byte{0x00, 0x21, 0xF9, 0x04}

const frameHeaderLen = 10

// IsAnimated reports whether a GIF stream holds more than one frame. It stops reading as soon
// as two frame headers have been seen. Headers are counted per chunk, so one that straddles
// two chunks is not counted.
func IsAnimated(r io.Reader) (bool, error) {
	buf := make([]byte, ChunkSize)
	count := 0
	for count < 2 {
		n, err := io.ReadFull(r, buf)
		if n > 0 {
			count += countFrameHeaders(buf[:n])
		}
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			break
		}
		if err != nil {
			return false, fmt.Errorf("%w: %w", ErrStreamRead, err)
		}
	}
	return count > 1, nil
}

// countFrameHeaders counts non-overlapping frame headers in chunk.
func countFrameHeaders(chunk []byte) int {
	count := 0
	for i := 0; i+frameHeaderLen <= len(chunk); {
		j := bytes.Index(chunk[i:], frameHeaderPrefix)
		if j < 0 {
			break
		}
		start := i + j
		if start+frameHeaderLen > len(chunk) {
			break
		}
		if chunk[start+8] == 0x00 && (chunk[start+9] == 0x2C || chunk[start+9] == 0x21) {
			count++
			i = start + frameHeaderLen
			continue
		}
		i = start + 1
	}
	return count
}
