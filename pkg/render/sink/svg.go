package sink

import (
	"bytes"
	"fmt"
	"html"
	"math"

	svg "github.com/ajstarks/svgo/float"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/imagewall/pkg/hover"
	"github.com/matzehuels/imagewall/pkg/model"
	"github.com/matzehuels/imagewall/pkg/pipeline"
)

const pointInteractionCSS = `
    .point { cursor: pointer; }`

const pointInteractionJS = `
    function place(el, box) {
      const [x, y, w, h] = box.split(' ');
      el.setAttribute('x', x); el.setAttribute('y', y);
      el.setAttribute('width', w); el.setAttribute('height', h);
    }
    document.querySelectorAll('.point').forEach(el => {
      el.addEventListener('mouseenter', () => { el.parentNode.appendChild(el); place(el, el.dataset.hover); });
      el.addEventListener('mouseleave', () => place(el, el.dataset.base));
    });`

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	title       string
	interactive bool
	background  string
	logger      *log.Logger
}

// WithTitle sets the document title.
func WithTitle(s string) SVGOption { return func(r *svgRenderer) { r.title = s } }

// WithoutInteraction omits the hover script.
func WithoutInteraction() SVGOption { return func(r *svgRenderer) { r.interactive = false } }

// WithBackground fills the canvas with a CSS colour.
func WithBackground(c string) SVGOption { return func(r *svgRenderer) { r.background = c } }

// WithLogger receives a warning for every point skipped over an unsafe
// image reference.
func WithLogger(l *log.Logger) SVGOption { return func(r *svgRenderer) { r.logger = l } }

// RenderSVG renders f as an SVG document. Points without a usable image
// reference are left out.
func RenderSVG(f *pipeline.Frame, opts ...SVGOption) ([]byte, error) {
	r := svgRenderer{interactive: true}
	for _, opt := range opts {
		opt(&r)
	}
	if r.logger == nil {
		r.logger = discardLogger()
	}

	w, h := canvasSize(f)
	var buf bytes.Buffer
	canvas := svg.New(&buf)

	attrs := []string{fmt.Sprintf(`viewBox="0 0 %.2f %.2f"`, w, h)}
	if f.Hidden {
		attrs = append(attrs, `visibility="hidden"`)
	}
	canvas.Start(w, h, attrs...)
	if r.title != "" {
		canvas.Title(r.title)
	}
	if r.background != "" {
		canvas.Rect(0, 0, w, h, "fill:"+r.background)
	}

	if !f.Hidden {
		canvas.Gid("points")
		for _, p := range f.Points {
			if drawable(p, r.logger) {
				writePoint(canvas, p)
			}
		}
		canvas.Gend()

		if r.interactive {
			canvas.Style("text/css", pointInteractionCSS)
			canvas.Script("application/javascript", pointInteractionJS)
		}
	}

	canvas.End()
	return buf.Bytes(), nil
}

func writePoint(canvas *svg.SVG, p model.PositionedPoint) {
	base := p.Bounds()
	// Image sizes are whole pixels; the data attributes keep exact boxes.
	canvas.Image(base.X, base.Y, pixels(base.W), pixels(base.H), html.EscapeString(p.Image),
		`class="point"`,
		fmt.Sprintf(`opacity="%.2f"`, p.Emphasis),
		fmt.Sprintf(`data-key="%s"`, html.EscapeString(p.Identity().Key)),
		fmt.Sprintf(`data-index="%d"`, p.Index),
		fmt.Sprintf(`data-base="%s"`, box(base)),
		fmt.Sprintf(`data-hover="%s"`, box(hover.Enlarge(p))),
	)
}

func box(r model.Rect) string {
	return fmt.Sprintf("%.2f %.2f %.2f %.2f", r.X, r.Y, r.W, r.H)
}

func pixels(v float64) int {
	return int(math.Round(max(v, 0)))
}

// canvasSize is the viewport, grown to the grid's total height when the
// grid overflows vertically.
func canvasSize(f *pipeline.Frame) (float64, float64) {
	return f.Viewport.Width, max(f.Viewport.Height, f.TotalHeight)
}
