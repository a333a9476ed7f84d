package sink

import (
	"bytes"
	"hash/fnv"
	"image/color"
	"math"

	"git.sr.ht/~sbinet/gg"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/imagewall/pkg/model"
	"github.com/matzehuels/imagewall/pkg/pipeline"
)

// Placeholder palette, picked per identity.
var palette = []color.RGBA{
	{0x50, 0xfa, 0x7b, 0xff},
	{0x8b, 0xe9, 0xfd, 0xff},
	{0xff, 0x79, 0xc6, 0xff},
	{0xbd, 0x93, 0xf9, 0xff},
	{0xff, 0xb8, 0x6c, 0xff},
	{0xf1, 0xfa, 0x8c, 0xff},
	{0xff, 0x55, 0x55, 0xff},
	{0x62, 0x72, 0xa4, 0xff},
}

var (
	bgDark  = color.RGBA{0x1e, 0x1e, 0x2e, 0xff}
	outline = color.RGBA{0xf8, 0xf8, 0xf2, 0xff}
)

const (
	lowResOutline  = 1.0
	highResOutline = 3.0
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale      float64
	background color.Color
	logger     *log.Logger
}

// WithScale sets the PNG scale factor (default 1).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// WithPNGBackground sets the canvas colour.
func WithPNGBackground(c color.Color) PNGOption {
	return func(r *pngRenderer) { r.background = c }
}

// WithPNGLogger is the PNG counterpart of [WithLogger].
func WithPNGLogger(l *log.Logger) PNGOption {
	return func(r *pngRenderer) { r.logger = l }
}

// RenderPNG renders a placeholder preview of f. It leaves out the same
// points as [RenderSVG].
func RenderPNG(f *pipeline.Frame, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 1, background: bgDark}
	for _, opt := range opts {
		opt(&r)
	}
	if r.scale <= 0 {
		r.scale = 1
	}
	if r.logger == nil {
		r.logger = discardLogger()
	}

	w, h := canvasSize(f)
	dc := gg.NewContext(max(1, int(math.Ceil(w*r.scale))), max(1, int(math.Ceil(h*r.scale))))
	dc.SetColor(r.background)
	dc.Clear()
	dc.Scale(r.scale, r.scale)

	if !f.Hidden {
		for _, p := range f.Points {
			if drawable(p, r.logger) {
				drawPoint(dc, p)
			}
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func drawPoint(dc *gg.Context, p model.PositionedPoint) {
	base := placeholderColor(p.Identity())
	alpha := uint8(math.Round(255 * clamp01(p.Emphasis)))
	fill := color.NRGBA{R: base.R, G: base.G, B: base.B, A: alpha}

	trace := func() {
		if p.Shape == model.ShapeCircle {
			dc.DrawCircle(p.X, p.Y, p.Radius)
			return
		}
		b := p.Bounds()
		dc.DrawRectangle(b.X, b.Y, b.W, b.H)
	}

	dc.SetColor(fill)
	trace()
	dc.Fill()

	dc.SetColor(color.NRGBA{R: outline.R, G: outline.G, B: outline.B, A: alpha})
	dc.SetLineWidth(outlineWidth(p))
	trace()
	dc.Stroke()
}

// outlineWidth marks points that show their high-resolution image.
func outlineWidth(p model.PositionedPoint) float64 {
	if p.Image != "" && p.Image == p.Point.ImageHighRes && p.Image != p.Point.ImageLowRes {
		return highResOutline
	}
	return lowResOutline
}

func placeholderColor(id model.Identity) color.RGBA {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id.Key))
	return palette[h.Sum32()%uint32(len(palette))]
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return min(max(v, 0), 1)
}
