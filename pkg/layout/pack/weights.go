package pack

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/matzehuels/imagewall/pkg/model"
)

// Weights derives a packing weight for every point under mode.
// Grid mode has no weights and yields nil.
func Weights(points []model.DataPoint, mode model.Mode, topListFactor float64) []float64 {
	switch mode {
	case model.ModeCirclePackWeighted:
		return ProportionalWeights(points)
	case model.ModeCirclePackTopList:
		return TopListWeights(len(points), topListFactor)
	default:
		return nil
	}
}

// ProportionalWeights shifts values so the smallest one still gets a
// visible circle: w = v - min + 0.1*|max| + 1. min and max range over the
// finite values only. A null, NaN or infinite value weighs exactly 1.
func ProportionalWeights(points []model.DataPoint) []float64 {
	values := make([]float64, 0, len(points))
	for _, p := range points {
		if v := p.FiniteValue(); v != nil {
			values = append(values, *v)
		}
	}

	var lo, pad float64
	if len(values) > 0 {
		lo = floats.Min(values)
		pad = math.Abs(floats.Max(values)) * 0.1
	}

	weights := make([]float64, len(points))
	for i, p := range points {
		v := p.FiniteValue()
		if v == nil {
			weights[i] = 1
			continue
		}
		weights[i] = *v - lo + pad + 1
	}
	return weights
}

// TopListWeights ranks points by input order. The top point weighs
// n*n*factor*0.1; point i > 0 weighs n-i, decaying linearly.
func TopListWeights(n int, factor float64) []float64 {
	weights := make([]float64, n)
	for i := range weights {
		if i == 0 {
			weights[i] = float64(n) * float64(n) * factor * 0.1
			continue
		}
		weights[i] = float64(n - i)
	}
	return weights
}
