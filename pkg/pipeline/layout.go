package pipeline

import (
	"encoding/json"

	"github.com/matzehuels/imagewall/pkg/layout/grid"
	"github.com/matzehuels/imagewall/pkg/layout/pack"
	"github.com/matzehuels/imagewall/pkg/model"
	"github.com/matzehuels/imagewall/pkg/resolution"
)

// Layout is the geometry of one update: positioned points in input order
// with their resolved image, before any emphasis is applied.
type Layout struct {
	Mode     model.Mode              `json:"mode"`
	Viewport model.Viewport          `json:"viewport"`
	Points   []model.PositionedPoint `json:"points"`

	// Grid only.
	Columns     int     `json:"columns,omitempty"`
	TotalHeight float64 `json:"total_height,omitempty"`

	// Circle pack only. The container never reaches Points.
	Container *pack.Node `json:"container,omitempty"`
	Weights   []float64  `json:"weights,omitempty"`
}

// Empty reports whether the layout holds no points.
func (l Layout) Empty() bool { return len(l.Points) == 0 }

// ComputeLayout lays out points under opts and resolves each point's image.
// opts must already be validated.
func ComputeLayout(points []model.DataPoint, opts Options) Layout {
	s := opts.Settings
	l := Layout{Mode: s.Mode, Viewport: opts.Viewport}

	switch s.Mode {
	case model.ModeGrid:
		r := grid.Layout(points, opts.Viewport, s.MaxColumns)
		l.Points = r.Points
		l.Columns = r.Columns
		l.TotalHeight = r.TotalHeight
	default:
		r := pack.Layout(points, opts.Viewport, s.Mode, s.TopListWeightFactor)
		l.Points = r.Points
		l.Weights = r.Weights
		if c, ok := r.Container(); ok {
			l.Container = &c
		}
	}

	l.Points = resolution.Annotate(l.Points, s.ResolutionThreshold)
	return l
}

// MarshalLayout serializes a layout for caching. JSON has no NaN or
// infinities, so non-finite point values are written as absent.
func MarshalLayout(l Layout) ([]byte, error) {
	points := make([]model.PositionedPoint, len(l.Points))
	for i, p := range l.Points {
		p.Point.Value = p.Point.FiniteValue()
		points[i] = p
	}
	l.Points = points
	return json.Marshal(l)
}

// UnmarshalLayout restores a layout written by MarshalLayout.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	err := json.Unmarshal(data, &l)
	return l, err
}
