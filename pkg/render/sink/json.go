package sink

import (
	"encoding/json"

	"github.com/matzehuels/imagewall/pkg/hover"
	"github.com/matzehuels/imagewall/pkg/model"
	"github.com/matzehuels/imagewall/pkg/pipeline"
	"github.com/matzehuels/imagewall/pkg/reconcile"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	diff   bool
	indent bool
}

// WithJSONDiff includes the entered/updated/exited keys of the frame.
func WithJSONDiff() JSONOption { return func(r *jsonRenderer) { r.diff = true } }

// WithJSONIndent pretty-prints the output.
func WithJSONIndent() JSONOption { return func(r *jsonRenderer) { r.indent = true } }

type jsonOutput struct {
	Cycle     uint64      `json:"cycle"`
	Mode      model.Mode  `json:"mode"`
	Width     float64     `json:"width"`
	Height    float64     `json:"height"`
	Columns   int         `json:"columns,omitempty"`
	Hidden    bool        `json:"hidden"`
	Selection []string    `json:"selection"`
	Points    []jsonPoint `json:"points"`
	Diff      *jsonDiff   `json:"diff,omitempty"`
}

type jsonPoint struct {
	Key      string     `json:"key"`
	Index    int        `json:"index"`
	Shape    string     `json:"shape"`
	X        float64    `json:"x"`
	Y        float64    `json:"y"`
	Side     float64    `json:"side,omitempty"`
	Radius   float64    `json:"radius,omitempty"`
	Value    *float64   `json:"value,omitempty"`
	Image    string     `json:"image"`
	Emphasis float64    `json:"emphasis"`
	Base     model.Rect `json:"base"`
	Hover    model.Rect `json:"hover"`
}

type jsonDiff struct {
	Entered []string `json:"entered"`
	Updated []string `json:"updated"`
	Exited  []string `json:"exited"`
}

// RenderJSON exports f for external renderers.
func RenderJSON(f *pipeline.Frame, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	w, h := canvasSize(f)
	out := jsonOutput{
		Cycle:     f.Cycle,
		Mode:      f.Mode,
		Width:     w,
		Height:    h,
		Columns:   f.Columns,
		Hidden:    f.Hidden,
		Selection: f.Selection,
		Points:    make([]jsonPoint, len(f.Points)),
	}
	if out.Selection == nil {
		out.Selection = []string{}
	}

	for i, p := range f.Points {
		out.Points[i] = jsonPoint{
			Key:      p.Identity().Key,
			Index:    p.Index,
			Shape:    p.Shape.String(),
			X:        p.X,
			Y:        p.Y,
			Side:     p.Side,
			Radius:   p.Radius,
			Value:    p.Point.FiniteValue(),
			Image:    p.Image,
			Emphasis: p.Emphasis,
			Base:     hover.Reset(p),
			Hover:    hover.Enlarge(p),
		}
	}

	if r.diff {
		out.Diff = &jsonDiff{
			Entered: keys(f.Diff.Entered),
			Updated: keys(f.Diff.Updated),
			Exited:  keys(f.Diff.Exited),
		}
	}

	if r.indent {
		return json.MarshalIndent(out, "", "  ")
	}
	return json.Marshal(out)
}

func keys(points []model.PositionedPoint) []string {
	out := make([]string, len(points))
	for i, p := range points {
		out[i] = reconcile.Key(p)
	}
	return out
}
