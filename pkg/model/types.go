package model

import "math"

// =============================================================================
// Identity
// =============================================================================

// Identity is an opaque token used for selection matching.
// Two identities are equal when their keys are equal; an empty key is
// malformed and never matches anything, including another empty key.
type Identity struct {
	Key string `json:"key"`
}

// ID returns an Identity for key.
func ID(key string) Identity { return Identity{Key: key} }

// Valid reports whether the identity carries a usable key.
func (i Identity) Valid() bool { return i.Key != "" }

// Matches reports whether i and other denote the same item.
func (i Identity) Matches(other Identity) bool {
	return i.Valid() && i.Key == other.Key
}

// String returns the key.
func (i Identity) String() string { return i.Key }

// =============================================================================
// DataPoint
// =============================================================================

// DataPoint is one visualizable item.
type DataPoint struct {
	// Value is the weight driving layout size. nil means unweighted.
	Value        *float64 `json:"value,omitempty"`
	ImageLowRes  string   `json:"image,omitempty"`
	ImageHighRes string   `json:"image_hq,omitempty"`
	Identity     Identity `json:"identity"`
}

// Weighted reports whether the point carries a value.
func (p DataPoint) Weighted() bool { return p.Value != nil }

// FiniteValue returns Value, or nil when it is NaN or infinite.
func (p DataPoint) FiniteValue() *float64 {
	if p.Value == nil || math.IsNaN(*p.Value) || math.IsInf(*p.Value, 0) {
		return nil
	}
	return p.Value
}

// HasImage reports whether at least one image reference is bound.
func (p DataPoint) HasImage() bool {
	return p.ImageLowRes != "" || p.ImageHighRes != ""
}

// WithImageFallback returns a copy where a missing image role is filled
// from the other one. Points with no image at all are returned unchanged.
func (p DataPoint) WithImageFallback() DataPoint {
	switch {
	case p.ImageLowRes == "" && p.ImageHighRes != "":
		p.ImageLowRes = p.ImageHighRes
	case p.ImageHighRes == "" && p.ImageLowRes != "":
		p.ImageHighRes = p.ImageLowRes
	}
	return p
}

// Float returns a pointer to v, for building weighted points in literals.
func Float(v float64) *float64 { return &v }

// =============================================================================
// Viewport
// =============================================================================

// Viewport is the bounded area a layout must fit in.
type Viewport struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Normalize clamps negative or non-finite dimensions to zero.
func (v Viewport) Normalize() Viewport {
	return Viewport{Width: nonNegative(v.Width), Height: nonNegative(v.Height)}
}

// Empty reports whether the viewport has no drawable area.
func (v Viewport) Empty() bool { return v.Width <= 0 || v.Height <= 0 }

func nonNegative(f float64) float64 {
	if math.IsNaN(f) || f < 0 {
		return 0
	}
	if math.IsInf(f, 1) {
		return math.MaxFloat64
	}
	return f
}

// =============================================================================
// Geometry
// =============================================================================

// Shape discriminates the geometry carried by a PositionedPoint.
type Shape int

const (
	// ShapeSquare is a grid cell: X, Y is the top-left corner, Side the edge.
	ShapeSquare Shape = iota
	// ShapeCircle is a packed circle: X, Y is the centre, Radius the radius.
	ShapeCircle
)

func (s Shape) String() string {
	if s == ShapeCircle {
		return "circle"
	}
	return "square"
}

// Rect is an axis-aligned box in viewport coordinates.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"width"`
	H float64 `json:"height"`
}

// PositionedPoint is a DataPoint plus layout geometry, the resolved image
// reference and an emphasis in [0,1]. It is created fresh every update
// cycle and never mutated after creation.
type PositionedPoint struct {
	Point    DataPoint `json:"point"`
	Index    int       `json:"index"`
	Shape    Shape     `json:"shape"`
	X        float64   `json:"x"`
	Y        float64   `json:"y"`
	Side     float64   `json:"side,omitempty"`
	Radius   float64   `json:"radius,omitempty"`
	Image    string    `json:"image,omitempty"`
	Emphasis float64   `json:"emphasis"`
}

// Identity returns the identity of the underlying point.
func (p PositionedPoint) Identity() Identity { return p.Point.Identity }

// RenderedSize is the linear on-screen extent: the cell side for squares,
// the diameter for circles.
func (p PositionedPoint) RenderedSize() float64 {
	if p.Shape == ShapeCircle {
		return p.Radius * 2
	}
	return p.Side
}

// Bounds returns the box a renderer paints the image into.
func (p PositionedPoint) Bounds() Rect {
	if p.Shape == ShapeCircle {
		return Rect{X: p.X - p.Radius, Y: p.Y - p.Radius, W: p.Radius * 2, H: p.Radius * 2}
	}
	return Rect{X: p.X, Y: p.Y, W: p.Side, H: p.Side}
}
