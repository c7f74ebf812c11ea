package preview

// Decision is the outcome of Decide.
type Decision int

const (
	GeneratePreview Decision = iota
	ServeOriginal
)

func (d Decision) String() string {
	switch d {
	case GeneratePreview:
		return "generate_preview"
	case ServeOriginal:
		return "serve_original"
	default:
		return "unknown"
	}
}

// Decide tells whether a preview should be generated for file or whether the original should
// be sent as-is.
func Decide(file *SourceFile, animated, svgSupported bool, req Request) Decision {
	if req.ForceDownload {
		return ServeOriginal
	}
	// SVGs can't be rasterized without a converter.
	if file.MediaType == MediaTypeSVG && !svgSupported {
		return ServeOriginal
	}
	// A still preview of an animated GIF loses the animation.
	if file.MediaType == MediaTypeGIF && req.AnimatedPreview && animated {
		return ServeOriginal
	}
	return GeneratePreview
}
