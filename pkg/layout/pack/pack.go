package pack

import (
	"cmp"
	"math"
	"math/rand/v2"
	"slices"

	"github.com/matzehuels/imagewall/pkg/model"
)

// Fixed shuffle seeds for the enclosing-circle search.
const (
	seedHi = uint64(0x1664525)
	seedLo = uint64(0x3c6ef35f)
)

// Result is a computed circle-pack layout.
type Result struct {
	// Nodes holds the container first, then the leaves in placement
	// (descending weight) order.
	Nodes []Node

	// Points holds one circle per input point, in input order.
	Points []model.PositionedPoint

	// Weights holds the derived weight of each input point.
	Weights []float64
}

// Container returns the container node, if any.
func (r Result) Container() (Node, bool) {
	for _, n := range r.Nodes {
		if n.Kind == KindContainer {
			return n, true
		}
	}
	return Node{}, false
}

// Layout derives weights for points under mode and packs them into vp.
// Grid mode has no weighting policy of its own; it is packed
// proportionally.
func Layout(points []model.DataPoint, vp model.Viewport, mode model.Mode, topListFactor float64) Result {
	if len(points) == 0 {
		return Result{}
	}
	weights := Weights(points, mode, topListFactor)
	if weights == nil {
		weights = ProportionalWeights(points)
	}
	return PackWeights(points, weights, vp)
}

// PackWeights packs points with explicit weights into vp. weights must be
// as long as points; non-finite and negative weights count as zero.
//
// Each leaf gets radius sqrt(weight), leaves are placed in descending
// weight order, and the result is scaled so the container circle spans
// min(width, height) and is centred in the viewport.
func PackWeights(points []model.DataPoint, weights []float64, vp model.Viewport) Result {
	n := len(points)
	if n == 0 {
		return Result{}
	}
	vp = vp.Normalize()

	ws := make([]float64, n)
	for i := range ws {
		if i < len(weights) {
			ws[i] = clampWeight(weights[i])
		}
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(ws[b], ws[a])
	})

	circles := make([]*circle, n)
	for rank, idx := range order {
		circles[rank] = &circle{r: math.Sqrt(ws[idx])}
	}

	rng := rand.New(rand.NewPCG(seedHi, seedLo))
	rootR := packSiblings(circles, rng)

	var k float64
	if rootR > 0 {
		k = math.Min(vp.Width, vp.Height) / (2 * rootR)
	}
	cx, cy := vp.Width/2, vp.Height/2

	nodes := make([]Node, 0, n+1)
	nodes = append(nodes, Node{
		Kind:   KindContainer,
		X:      cx,
		Y:      cy,
		R:      rootR * k,
		Weight: sum(ws),
		Index:  -1,
	})

	positioned := make([]model.PositionedPoint, n)
	for rank, idx := range order {
		c := circles[rank]
		leaf := Node{
			Kind:   KindLeaf,
			X:      cx + c.x*k,
			Y:      cy + c.y*k,
			R:      c.r * k,
			Weight: ws[idx],
			Depth:  1,
			Index:  idx,
			Point:  points[idx],
		}
		nodes = append(nodes, leaf)
		positioned[idx] = leaf.Positioned()
	}

	return Result{Nodes: nodes, Points: positioned, Weights: ws}
}

func clampWeight(w float64) float64 {
	if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
		return 0
	}
	return w
}

func sum(ws []float64) float64 {
	var s float64
	for _, w := range ws {
		s += w
	}
	return s
}
