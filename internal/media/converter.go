// filepath: internal/media/converter.go
package media

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/knkgun/gallery/internal/logging"
)

// Converter wraps the ImageMagick `convert` executable used to rasterize SVG files.
type Converter struct {
	configuredPath string
	path           string
	checkOnce      sync.Once
}

// NewConverter creates a Converter. The executable is looked up on first use: the configured
// path if it exists, otherwise `convert` on the system PATH.
func NewConverter(configuredPath string) *Converter {
	return &Converter{configuredPath: configuredPath}
}

func (c *Converter) detect() {
	c.checkOnce.Do(func() {
		if c.configuredPath != "" {
			if _, err := os.Stat(c.configuredPath); err == nil {
				logging.Log.Infof("Using configured ImageMagick path: %s", c.configuredPath)
				c.path = c.configuredPath
				return
			}
			logging.Log.Warnf("Configured convert_path '%s' not found, falling back to system PATH.", c.configuredPath)
		}

		path, err := exec.LookPath("convert")
		if err != nil {
			logging.Log.Warn("---------------------------------------------------------")
			logging.Log.Warn("ImageMagick 'convert' not found in configured path or system PATH.")
			logging.Log.Warn("SVG previews will be DISABLED, SVG files are sent as-is.")
			logging.Log.Warn("---------------------------------------------------------")
			return
		}
		logging.Log.Infof("ImageMagick found in PATH: %s. SVG previews enabled.", path)
		c.path = path
	})
}

// Available reports whether the executable was found.
func (c *Converter) Available() bool {
	c.detect()
	return c.path != ""
}

// Path returns the detected executable path, or "" if there is none.
func (c *Converter) Path() string {
	c.detect()
	return c.path
}

// RasterizeSVG pipes an SVG document through convert and decodes the PNG it produces.
func (c *Converter) RasterizeSVG(ctx context.Context, svg io.Reader) (image.Image, error) {
	if !c.Available() {
		return nil, fmt.Errorf("imagemagick is not available")
	}

	cmdArgs := []string{
		"-background", "none",
		"svg:-", // Read from stdin
		"png:-", // Write to stdout
	}
	cmd := exec.CommandContext(ctx, c.path, cmdArgs...)
	cmd.Stdin = svg

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logging.Log.Debugf("Starting SVG rasterization: %s %s", c.path, strings.Join(cmdArgs, " "))

	if err := cmd.Run(); err != nil {
		logging.Log.Errorf("convert execution failed: %v\nconvert output:\n%s", err, stderr.String())
		return nil, fmt.Errorf("convert error: %s", strings.TrimSpace(stderr.String()))
	}

	img, err := imaging.Decode(&stdout)
	if err != nil {
		return nil, fmt.Errorf("failed to decode rasterized svg: %w", err)
	}
	return img, nil
}
