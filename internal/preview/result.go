package preview

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
)

// Kind tells what a Result carries.
type Kind int

const (
	KindPreview Kind = iota
	KindDownload
)

func (k Kind) String() string {
	if k == KindDownload {
		return "download"
	}
	return "preview"
}

// Status is the outcome reported to the client.
type Status int

const (
	StatusOK Status = iota
	StatusUnsupportedMediaType
)

func (s Status) String() string {
	if s == StatusUnsupportedMediaType {
		return "unsupported media type"
	}
	return "ok"
}

// Result is what the Service hands back for one request.
type Result struct {
	Kind      Kind
	Bitmap    image.Image // set for KindPreview
	Bytes     []byte      // set for KindDownload
	MediaType string
	Status    Status
	Path      string

	// Encoded is true once the payload has been turned into Text.
	Encoded bool
	Text    string
}

// Binary returns the payload for binary transport: the PNG form of a bitmap or the raw
// downloaded bytes.
func (r *Result) Binary() ([]byte, error) {
	if r.Kind == KindPreview {
		return encodePNG(r.Bitmap)
	}
	return r.Bytes, nil
}

// Encode applies the transport encoding. With asText set, bitmaps are PNG encoded and then
// base64 encoded and downloads are base64 encoded as they are. Otherwise r is returned as is.
func Encode(r *Result, asText bool) (*Result, error) {
	if !asText {
		return r, nil
	}
	raw, err := r.Binary()
	if err != nil {
		return nil, err
	}
	out := *r
	out.Encoded = true
	out.Text = base64.StdEncoding.EncodeToString(raw)
	return &out, nil
}

// DecodeText reverses the text transport encoding.
func DecodeText(text string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(text)
}

func encodePNG(img image.Image) ([]byte, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: no bitmap to encode", ErrInvalidDimensions)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode preview to png: %w", err)
	}
	return buf.Bytes(), nil
}
