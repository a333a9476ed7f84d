package selection

import (
	"github.com/ErikKalkoken/go-set"

	"github.com/matzehuels/imagewall/pkg/model"
)

// Emphasis levels.
const (
	Full   = 1.0
	Dimmed = 0.5
)

// Emphasis returns the emphasis of id under sel.
func Emphasis(id model.Identity, sel Selection) float64 {
	if sel.IsEmpty() || sel.Contains(id) {
		return Full
	}
	return Dimmed
}

// Emphasize returns copies of points with Emphasis set from sel.
func Emphasize(points []model.PositionedPoint, sel Selection) []model.PositionedPoint {
	out := make([]model.PositionedPoint, len(points))
	for i, p := range points {
		p.Emphasis = Emphasis(p.Identity(), sel)
		out[i] = p
	}
	return out
}

// Optimistic returns copies of points where the point targeted by intent
// is fully emphasized and every other point keeps its current emphasis.
func Optimistic(points []model.PositionedPoint, intent ToggleIntent) []model.PositionedPoint {
	out := make([]model.PositionedPoint, len(points))
	for i, p := range points {
		if p.Identity().Matches(intent.Identity) {
			p.Emphasis = Full
		}
		out[i] = p
	}
	return out
}

// =============================================================================
// Highlighter
// =============================================================================

// Policy decides how a selection-change notification repaints a frame.
type Policy int

const (
	// PolicyRecompute recomputes every point on every notification.
	PolicyRecompute Policy = iota

	// PolicyDelta repaints only points whose membership changed. When the
	// selection becomes empty because another visual cleared it, points
	// that were never members keep their stale dimmed emphasis.
	PolicyDelta
)

func (p Policy) String() string {
	if p == PolicyDelta {
		return "delta"
	}
	return "recompute"
}

// Highlighter applies selection notifications to an already emphasized
// frame under a Policy.
type Highlighter struct {
	Policy Policy
}

// Apply repaints points for a move from prev to next.
func (h Highlighter) Apply(points []model.PositionedPoint, prev, next Selection) []model.PositionedPoint {
	if h.Policy != PolicyDelta {
		return Emphasize(points, next)
	}

	var changed set.Set[string]
	for _, k := range prev.Changed(next) {
		changed.Add(k)
	}

	out := make([]model.PositionedPoint, len(points))
	for i, p := range points {
		if id := p.Identity(); id.Valid() && changed.Contains(id.Key) {
			p.Emphasis = Emphasis(id, next)
		}
		out[i] = p
	}
	return out
}
