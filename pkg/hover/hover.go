// Package hover computes the enlarged box shown while the pointer rests on a
// point, and the box it returns to afterwards. It keeps no state.
package hover

import "github.com/matzehuels/imagewall/pkg/model"

const (
	// GridGrowth is how far an enlarged cell extends past each edge, as a
	// fraction of the side. The enlarged side is 1.2 times the original.
	GridGrowth = 0.1
	// CircleScale is the enlarged box side as a multiple of the radius.
	CircleScale = 2.8
)

// Enlarge returns the box for a hovered point. Grid cells grow by 10% of
// their side on every edge; circles get a square box of 2.8 radii around
// their centre.
func Enlarge(p model.PositionedPoint) model.Rect {
	if p.Shape == model.ShapeCircle {
		side := CircleScale * p.Radius
		return model.Rect{X: p.X - side/2, Y: p.Y - side/2, W: side, H: side}
	}
	grow := GridGrowth * p.Side
	side := p.Side + 2*grow
	return model.Rect{X: p.X - grow, Y: p.Y - grow, W: side, H: side}
}

// Reset returns the resting box for p.
func Reset(p model.PositionedPoint) model.Rect { return p.Bounds() }
