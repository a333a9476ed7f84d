package pack

import "github.com/matzehuels/imagewall/pkg/model"

// Kind tags a packed node.
type Kind int

const (
	// KindContainer is the enclosing circle. It carries no data point.
	KindContainer Kind = iota
	// KindLeaf is a circle carrying one input point.
	KindLeaf
)

func (k Kind) String() string {
	if k == KindLeaf {
		return "leaf"
	}
	return "container"
}

// Node is one circle of a packed hierarchy.
type Node struct {
	Kind   Kind    `json:"kind"`
	X      float64 `json:"x"` // centre
	Y      float64 `json:"y"`
	R      float64 `json:"r"`
	Weight float64 `json:"weight"`
	Depth  int     `json:"depth"`

	// Index and Point are set for leaves only.
	Index int             `json:"index"`
	Point model.DataPoint `json:"point"`
}

// IsLeaf reports whether the node carries a data point.
func (n Node) IsLeaf() bool { return n.Kind == KindLeaf }

// Leaves returns the leaf nodes of nodes, dropping the container.
func Leaves(nodes []Node) []Node {
	out := make([]Node, 0, len(nodes))
	for _, n := range nodes {
		if n.IsLeaf() {
			out = append(out, n)
		}
	}
	return out
}

// Positioned converts a leaf into a circle-shaped positioned point.
func (n Node) Positioned() model.PositionedPoint {
	return model.PositionedPoint{
		Point:    n.Point,
		Index:    n.Index,
		Shape:    model.ShapeCircle,
		X:        n.X,
		Y:        n.Y,
		Radius:   n.R,
		Emphasis: 1,
	}
}
