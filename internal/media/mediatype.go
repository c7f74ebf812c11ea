// filepath: internal/media/mediatype.go
package media

import (
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

const mediaTypeOctetStream = "application/octet-stream"

// DetectMediaType sniffs the media type of content. When the content is not conclusive the
// extension of name is used instead.
func DetectMediaType(r io.Reader, name string) (string, error) {
	m, err := mimetype.DetectReader(r)
	if err != nil {
		return "", fmt.Errorf("failed to detect media type: %w", err)
	}

	detected := normalizeMediaType(m.String())
	if detected != mediaTypeOctetStream && detected != "text/plain" {
		return detected, nil
	}

	if byExt := mime.TypeByExtension(strings.ToLower(filepath.Ext(name))); byExt != "" {
		return normalizeMediaType(byExt), nil
	}
	return detected, nil
}

// normalizeMediaType drops parameters and maps aliases onto the names the rest of the
// service compares against.
func normalizeMediaType(mediaType string) string {
	if i := strings.IndexByte(mediaType, ';'); i >= 0 {
		mediaType = mediaType[:i]
	}
	mediaType = strings.ToLower(strings.TrimSpace(mediaType))

	switch mediaType {
	case "image/jpg", "image/pjpeg":
		return "image/jpeg"
	case "image/x-ms-bmp", "image/x-bmp":
		return "image/bmp"
	case "image/svg":
		return "image/svg+xml"
	}
	return mediaType
}
