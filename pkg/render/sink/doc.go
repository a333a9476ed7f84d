// Package sink provides output format renderers for imagewall frames.
//
// # Overview
//
// A "sink" transforms a [pipeline.Frame] into a final output format.
// This package provides renderers for:
//
//   - SVG: one image element per point, with hover enlargement
//   - PNG: a placeholder preview that shows geometry and emphasis
//   - JSON: frame export for external renderers
//
// # SVG Output
//
// [RenderSVG] writes each point as an <image> referencing the resolution
// chosen for it, with its emphasis as opacity. Every element carries its
// resting and enlarged boxes as data attributes, and a small script swaps
// between them on pointer enter and leave:
//
//	svg, err := sink.RenderSVG(frame, sink.WithTitle("Cities"))
//
// A hidden frame (empty dataset) renders as an empty, hidden document. A
// point with no image reference renders as nothing, and one with an unsafe
// reference is skipped with a warning on the [WithLogger] logger.
//
// # PNG Output
//
// [RenderPNG] rasterizes the frame without fetching any image: each point
// is a tile or disc in a colour derived from its identity, with alpha equal
// to its emphasis. Points showing their high-resolution image are outlined
// more heavily.
//
//	png, err := sink.RenderPNG(frame, sink.WithScale(2))
//
// # JSON Output
//
// [RenderJSON] exports the frame including hover geometry:
//
//	data, err := sink.RenderJSON(frame, sink.WithJSONDiff())
//
// [pipeline.Frame]: github.com/matzehuels/imagewall/pkg/pipeline.Frame
package sink
