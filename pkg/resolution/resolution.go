// Package resolution picks between the low- and high-resolution image of a
// point based on how large it is rendered.
//
// Only elements that are large on screen receive the costly asset:
//
//	img := resolution.Select(p.RenderedSize(), settings.ResolutionThreshold, p.Point)
//
// The comparison is strict, so a point rendered exactly at the threshold
// still gets the low-resolution image.
package resolution

import "github.com/matzehuels/imagewall/pkg/model"

// Select returns the high-resolution reference when renderedSize exceeds
// threshold and the low-resolution reference otherwise. A negative
// threshold is treated as zero. Empty references are passed through.
func Select(renderedSize, threshold float64, p model.DataPoint) string {
	if threshold < 0 {
		threshold = 0
	}
	if renderedSize > threshold {
		return p.ImageHighRes
	}
	return p.ImageLowRes
}

// IsHighRes reports whether Select would pick the high-resolution image.
func IsHighRes(renderedSize, threshold float64) bool {
	return renderedSize > max(threshold, 0)
}

// Annotate returns copies of points with Image resolved from each point's
// rendered size.
func Annotate(points []model.PositionedPoint, threshold float64) []model.PositionedPoint {
	out := make([]model.PositionedPoint, len(points))
	for i, p := range points {
		p.Image = Select(p.RenderedSize(), threshold, p.Point)
		out[i] = p
	}
	return out
}
