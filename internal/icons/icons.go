// Package icons provides the fallback bitmaps served when no preview can be generated.
package icons

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/fogleman/gg"
	"github.com/knkgun/gallery/internal/logging"
	"github.com/knkgun/gallery/internal/preview"
	"github.com/patrickmn/go-cache"
	"golang.org/x/image/font/basicfont"
)

// IconSize is the edge length of drawn icons.
const IconSize = 128

// Provider looks icons up in Dir and draws one when there is no file for a media type.
// Icons are memoised per media type.
type Provider struct {
	Dir   string
	icons *cache.Cache
}

var _ preview.MimeIconProvider = (*Provider)(nil)

// NewProvider creates a Provider reading from dir. dir may be empty.
func NewProvider(dir string) *Provider {
	return &Provider{
		Dir:   dir,
		icons: cache.New(cache.NoExpiration, 0),
	}
}

// IconFor returns the icon for mediaType.
func (p *Provider) IconFor(mediaType string) image.Image {
	mediaType = strings.ToLower(strings.TrimSpace(mediaType))
	if icon, found := p.icons.Get(mediaType); found {
		return icon.(image.Image)
	}

	icon := p.fromDir(mediaType)
	if icon == nil {
		icon = Draw(mediaType)
	}
	p.icons.Set(mediaType, icon, cache.NoExpiration)
	return icon
}

// candidates lists the file names tried for mediaType, most specific first.
func candidates(mediaType string) []string {
	major, minor, _ := strings.Cut(mediaType, "/")
	var names []string
	if major != "" && minor != "" {
		names = append(names, major+"-"+sanitize(minor)+".png")
	}
	if major != "" {
		names = append(names, major+".png")
	}
	return append(names, "file.png")
}

func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '.':
			return r
		default:
			return '-'
		}
	}, s)
}

func (p *Provider) fromDir(mediaType string) image.Image {
	if p.Dir == "" {
		return nil
	}
	for _, name := range candidates(mediaType) {
		path := filepath.Join(p.Dir, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		img, err := gg.LoadPNG(path)
		if err != nil {
			logging.Log.Warnf("[icons] could not load %s: %v", path, err)
			continue
		}
		return img
	}
	return nil
}

var majorColors = map[string]color.NRGBA{
	"image":       {R: 0x4c, G: 0xaf, B: 0x50, A: 0xff},
	"video":       {R: 0xe5, G: 0x39, B: 0x35, A: 0xff},
	"audio":       {R: 0x8e, G: 0x24, B: 0xaa, A: 0xff},
	"text":        {R: 0x60, G: 0x7d, B: 0x8b, A: 0xff},
	"application": {R: 0x1e, G: 0x88, B: 0xe5, A: 0xff},
}

var defaultColor = color.NRGBA{R: 0x9e, G: 0x9e, B: 0x9e, A: 0xff}

// Draw renders a page icon labelled with the subtype of mediaType.
func Draw(mediaType string) image.Image {
	major, minor, _ := strings.Cut(mediaType, "/")
	accent, ok := majorColors[major]
	if !ok {
		accent = defaultColor
	}

	const (
		margin = 20.0
		fold   = 28.0
	)
	size := float64(IconSize)
	dc := gg.NewContext(IconSize, IconSize)

	// page with a folded corner
	dc.MoveTo(margin, 8)
	dc.LineTo(size-margin-fold, 8)
	dc.LineTo(size-margin, 8+fold)
	dc.LineTo(size-margin, size-8)
	dc.LineTo(margin, size-8)
	dc.ClosePath()
	dc.SetColor(color.White)
	dc.FillPreserve()
	dc.SetColor(accent)
	dc.SetLineWidth(3)
	dc.Stroke()

	dc.MoveTo(size-margin-fold, 8)
	dc.LineTo(size-margin-fold, 8+fold)
	dc.LineTo(size-margin, 8+fold)
	dc.Stroke()

	// label band
	dc.DrawRectangle(margin, size/2, size-2*margin, 26)
	dc.Fill()

	label := strings.ToUpper(minor)
	if label == "" {
		label = "FILE"
	}
	if len(label) > 10 {
		label = label[:10]
	}
	dc.SetFontFace(basicfont.Face7x13)
	dc.SetColor(color.White)
	dc.DrawStringAnchored(label, size/2, size/2+13, 0.5, 0.35)

	return dc.Image()
}
